package sim

import (
	"math"

	"github.com/vovakirdan/minigames/internal/config"
	"github.com/vovakirdan/minigames/internal/core"
)

// Movement advances entities by their kinematic rule and prunes the ones
// that left the playfield or became unusable.
type Movement struct {
	Field     core.Rect
	Margin    float64 // Fall-through entities are pruned this far past an edge
	Schooling config.SchoolingConfig
}

// Update moves every live entity by dt ticks and returns the pruned ids.
// Captured entities are left alone.
func (m *Movement) Update(store *Store, dt float64) []EntityID {
	var pruned []EntityID
	all := store.All()
	bias := m.schoolingBias(all)
	outer := m.Field.Inset(-m.Margin)

	for _, e := range all {
		if !e.Finite() || e.Dead() {
			pruned = append(pruned, e.ID)
			continue
		}
		if e.Captured {
			continue
		}

		switch e.Motion {
		case MotionPlayerControlled:
			m.clamp(e)
		case MotionLinearReflecting:
			e.Pos = e.Pos.Add(e.Vel.Scale(dt))
			m.reflect(e)
		case MotionSteering:
			e.Pos = e.Pos.Add(e.Vel.Scale(dt))
			e.Pos.Y += bias[e.ID]
			m.reflect(e)
		case MotionDirectedFall:
			e.Pos = e.Pos.Add(e.Vel.Scale(dt))
			if !outer.ContainsRect(e.Bounds()) {
				pruned = append(pruned, e.ID)
				continue
			}
		}

		if !e.Finite() {
			pruned = append(pruned, e.ID)
		}
	}

	for _, id := range pruned {
		store.Remove(id)
	}
	return pruned
}

// schoolingBias computes the vertical pull of every steering entity toward
// the centroid of its neighbours. All offsets come from pre-move positions.
func (m *Movement) schoolingBias(all []*Entity) map[EntityID]float64 {
	var school []*Entity
	for _, e := range all {
		if e.Motion == MotionSteering && !e.Captured && e.Finite() {
			school = append(school, e)
		}
	}
	if len(school) < 2 || m.Schooling.Damping <= 0 {
		return nil
	}

	bias := make(map[EntityID]float64, len(school))
	for _, e := range school {
		c := e.Center()
		sumY, n := 0.0, 0
		for _, o := range school {
			if o.Group != e.Group {
				continue
			}
			oc := o.Center()
			if math.Abs(oc.X-c.X) > m.Schooling.NeighborX || math.Abs(oc.Y-c.Y) > m.Schooling.NeighborY {
				continue
			}
			sumY += oc.Y
			n++
		}
		if n > 1 {
			bias[e.ID] = (sumY/float64(n) - c.Y) * m.Schooling.Damping
		}
	}
	return bias
}

// reflect keeps e inside the field, inverting the velocity component of any
// bound it crossed and placing it exactly on that bound.
func (m *Movement) reflect(e *Entity) {
	maxX := max(m.Field.Right()-e.W, m.Field.X)
	maxY := max(m.Field.Bottom()-e.H, m.Field.Y)

	if e.Pos.X < m.Field.X {
		e.Pos.X = m.Field.X
		e.Vel.X = math.Abs(e.Vel.X)
	} else if e.Pos.X > maxX {
		e.Pos.X = maxX
		e.Vel.X = -math.Abs(e.Vel.X)
	}

	if e.Pos.Y < m.Field.Y {
		e.Pos.Y = m.Field.Y
		e.Vel.Y = math.Abs(e.Vel.Y)
	} else if e.Pos.Y > maxY {
		e.Pos.Y = maxY
		e.Vel.Y = -math.Abs(e.Vel.Y)
	}
}

// clamp keeps e inside the field without touching its velocity.
func (m *Movement) clamp(e *Entity) {
	e.Pos.X = core.ClampF(e.Pos.X, m.Field.X, max(m.Field.Right()-e.W, m.Field.X))
	e.Pos.Y = core.ClampF(e.Pos.Y, m.Field.Y, max(m.Field.Bottom()-e.H, m.Field.Y))
}
