package sim

import (
	"fmt"
	"math"

	"github.com/vovakirdan/minigames/internal/config"
	"github.com/vovakirdan/minigames/internal/core"
)

// Origin is where a spawn table introduces its entities.
type Origin int

const (
	OriginTop    Origin = iota // Above the top edge, moving down
	OriginBottom               // Below the bottom edge, moving up
	OriginEdges                // At the left or right edge, moving inward
)

// String returns the config name of the origin.
func (o Origin) String() string {
	switch o {
	case OriginTop:
		return "top"
	case OriginBottom:
		return "bottom"
	case OriginEdges:
		return "edges"
	default:
		return "unknown"
	}
}

// ParseOrigin converts a config name to an Origin.
func ParseOrigin(s string) (Origin, error) {
	switch s {
	case "top":
		return OriginTop, nil
	case "bottom":
		return OriginBottom, nil
	case "edges":
		return OriginEdges, nil
	default:
		return 0, fmt.Errorf("sim: origin %q: %w", s, ErrUnknownOrigin)
	}
}

// SpawnRule is one weighted entry of a spawn table.
type SpawnRule struct {
	Name             string
	Category         Category
	Motion           Motion
	Weight           float64
	W, H             float64
	Speed            float64
	Health           int
	Points           int
	LevelSpeedFactor float64
	Color            core.Color
	Group            int
	GroupSize        int
	CaptureRadius    float64
}

// SpeedAt returns the rule speed at a session level, before difficulty scaling.
func (r SpawnRule) SpeedAt(level int) float64 {
	return r.Speed * (1 + float64(max(level-1, 0))*r.LevelSpeedFactor)
}

// SpawnTable is a set of rules sharing an origin and a cooldown.
type SpawnTable struct {
	Name        string
	Origin      Origin
	Rules       []SpawnRule
	BaseDelay   int
	FloorDelay  int
	LevelFactor int
	Jitter      int
	MaxAlive    int
}

// TotalWeight returns the sum of rule weights.
func (t SpawnTable) TotalWeight() float64 {
	total := 0.0
	for _, r := range t.Rules {
		total += r.Weight
	}
	return total
}

// Validate reports ErrInvalidSpawnTable for empty tables, negative weights
// or a total weight that is not positive.
func (t SpawnTable) Validate() error {
	if len(t.Rules) == 0 {
		return fmt.Errorf("sim: table %q has no rules: %w", t.Name, ErrInvalidSpawnTable)
	}
	for _, r := range t.Rules {
		if r.Weight < 0 || math.IsNaN(r.Weight) || math.IsInf(r.Weight, 0) {
			return fmt.Errorf("sim: table %q rule %q weight %v: %w", t.Name, r.Name, r.Weight, ErrInvalidSpawnTable)
		}
	}
	if t.TotalWeight() <= 0 {
		return fmt.Errorf("sim: table %q total weight is zero: %w", t.Name, ErrInvalidSpawnTable)
	}
	return nil
}

// Pick performs roulette-wheel selection for a draw u in [0, TotalWeight).
// Weights are subtracted in table order until the running value goes negative.
func (t SpawnTable) Pick(u float64) int {
	last := -1
	for i, r := range t.Rules {
		if r.Weight <= 0 {
			continue
		}
		last = i
		u -= r.Weight
		if u < 0 {
			return i
		}
	}
	// Rounding can leave u at exactly zero after the final rule
	return last
}

// Cooldown returns the ticks until the next spawn at a level:
// max(floor, base - level*factor) after applying the difficulty scale.
func (t SpawnTable) Cooldown(level int, scale float64) int {
	delay := float64(t.BaseDelay-level*t.LevelFactor) * scale
	return max(t.FloorDelay, int(math.Round(delay)), 1)
}

// TableFromConfig converts a YAML spawn table.
func TableFromConfig(c config.SpawnTableConfig) (SpawnTable, error) {
	origin, err := ParseOrigin(c.Origin)
	if err != nil {
		return SpawnTable{Name: c.Name}, err
	}

	t := SpawnTable{
		Name:        c.Name,
		Origin:      origin,
		BaseDelay:   c.BaseDelay,
		FloorDelay:  c.FloorDelay,
		LevelFactor: c.LevelFactor,
		Jitter:      max(c.Jitter, 0),
		MaxAlive:    c.MaxAlive,
		Rules:       make([]SpawnRule, 0, len(c.Rules)),
	}
	for _, rc := range c.Rules {
		cat, err := ParseCategory(rc.Category)
		if err != nil {
			return t, fmt.Errorf("sim: table %q rule %q: %w", c.Name, rc.Name, err)
		}
		motion, err := ParseMotion(rc.Motion)
		if err != nil {
			return t, fmt.Errorf("sim: table %q rule %q: %w", c.Name, rc.Name, err)
		}
		color, err := core.ParseColor(rc.Color)
		if err != nil {
			color = core.ColorDefault
		}
		t.Rules = append(t.Rules, SpawnRule{
			Name:             rc.Name,
			Category:         cat,
			Motion:           motion,
			Weight:           rc.Weight,
			W:                max(rc.Width, 1),
			H:                max(rc.Height, 1),
			Speed:            rc.Speed,
			Health:           rc.Health,
			Points:           max(rc.Points, 0),
			LevelSpeedFactor: rc.LevelSpeedFactor,
			Color:            color,
			Group:            rc.Group,
			GroupSize:        max(rc.GroupSize, 1),
			CaptureRadius:    rc.CaptureRadius,
		})
	}
	return t, nil
}

// Scheduler drives one spawn table. It is idle until its first eligible tick,
// then waits for a deadline on the session play clock. The play clock only
// advances while playing, so a paused session keeps its remaining wait.
type Scheduler struct {
	table SpawnTable
	err   error

	waiting   bool
	deadline  uint64
	suspended bool
	remaining uint64
}

// NewScheduler creates a scheduler. An invalid table yields a disabled
// scheduler whose Err reports why.
func NewScheduler(t SpawnTable) *Scheduler {
	return &Scheduler{table: t, err: t.Validate()}
}

// Table returns the scheduled table.
func (s *Scheduler) Table() SpawnTable {
	return s.table
}

// Err returns the validation error that disabled the scheduler, if any.
func (s *Scheduler) Err() error {
	return s.err
}

// Update selects a rule when the scheduler is idle or its deadline elapsed,
// and schedules the next deadline. Returns false when nothing is due, when
// the session is not playing, or when the table is disabled.
func (s *Scheduler) Update(clock uint64, status Status, level int, delayScale float64, rng *RNG) (SpawnRule, bool) {
	if s.err != nil || status != StatusPlaying || s.suspended {
		return SpawnRule{}, false
	}
	if s.waiting && clock < s.deadline {
		return SpawnRule{}, false
	}

	rule := s.table.Rules[s.table.Pick(rng.Float64()*s.table.TotalWeight())]

	delay := uint64(s.table.Cooldown(level, delayScale)) //#nosec G115 -- cooldown is at least 1
	if s.table.Jitter > 0 {
		delay += uint64(rng.Intn(s.table.Jitter + 1)) //#nosec G115 -- Intn is non-negative
	}
	s.waiting = true
	s.deadline = clock + delay
	return rule, true
}

// Suspend freezes the pending deadline, keeping the remaining wait.
func (s *Scheduler) Suspend(clock uint64) {
	if s.suspended {
		return
	}
	s.suspended = true
	s.remaining = 0
	if s.waiting && s.deadline > clock {
		s.remaining = s.deadline - clock
	}
}

// Resume re-arms a suspended deadline relative to clock.
func (s *Scheduler) Resume(clock uint64) {
	if !s.suspended {
		return
	}
	s.suspended = false
	if s.waiting {
		s.deadline = clock + s.remaining
	}
}

// Cancel drops any pending deadline. The next eligible tick spawns at once.
func (s *Scheduler) Cancel() {
	s.waiting = false
	s.suspended = false
	s.deadline = 0
	s.remaining = 0
}

// Remaining returns the ticks left before the next spawn and whether a
// deadline is pending.
func (s *Scheduler) Remaining(clock uint64) (uint64, bool) {
	switch {
	case !s.waiting:
		return 0, false
	case s.suspended:
		return s.remaining, true
	case s.deadline > clock:
		return s.deadline - clock, true
	default:
		return 0, true
	}
}

// Place builds the entities for one spawn of rule at the table origin.
// Steering rules with a group size spawn a whole school at once.
// Ids are left zero for the caller to assign.
func Place(t SpawnTable, r SpawnRule, field core.Rect, margin, speed float64, rng *RNG) []*Entity {
	n := 1
	if r.Motion == MotionSteering {
		n = r.GroupSize
	}

	base := newSpawned(t, r)
	switch t.Origin {
	case OriginTop:
		base.Pos = core.V(field.X+rng.Range(0, max(field.W-r.W, 0)), max(field.Y-r.H, field.Y-margin))
		base.Vel = core.V(0, speed)
	case OriginBottom:
		base.Pos = core.V(field.X+rng.Range(0, max(field.W-r.W, 0)), min(field.Bottom(), field.Bottom()+margin-r.H))
		base.Vel = core.V(0, -speed)
	case OriginEdges:
		// Keep the upper band clear for the player row
		top := field.Y + field.H*0.15
		bottom := max(field.Bottom()-r.H, top)
		base.Pos.Y = rng.Range(top, bottom)
		if rng.Intn(2) == 0 {
			base.Pos.X = field.X
			base.Vel = core.V(speed, 0)
		} else {
			base.Pos.X = field.Right() - r.W
			base.Vel = core.V(-speed, 0)
		}
	}

	out := make([]*Entity, 0, n)
	for i := range n {
		e := base
		if i > 0 {
			// Followers trail the leader inward with a small vertical spread
			step := float64(i) * (r.W + 1)
			if e.Vel.X < 0 {
				step = -step
			}
			e.Pos.X = core.ClampF(e.Pos.X+step, field.X, max(field.Right()-r.W, field.X))
			e.Pos.Y = core.ClampF(e.Pos.Y+rng.Range(-1.5, 1.5), field.Y, max(field.Bottom()-r.H, field.Y))
		}
		out = append(out, &e)
	}
	return out
}

func newSpawned(t SpawnTable, r SpawnRule) Entity {
	e := Entity{
		Category:      r.Category,
		Motion:        r.Motion,
		Kind:          r.Name,
		Source:        t.Name,
		W:             r.W,
		H:             r.H,
		Points:        r.Points,
		Group:         r.Group,
		Color:         r.Color,
		CaptureRadius: r.CaptureRadius,
	}
	if r.Category == CategoryHostile {
		e.MaxHealth = max(r.Health, 1)
		e.Health = e.MaxHealth
	}
	return e
}
