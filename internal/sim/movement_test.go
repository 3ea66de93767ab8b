package sim

import (
	"math"
	"slices"
	"testing"

	"github.com/vovakirdan/minigames/internal/config"
	"github.com/vovakirdan/minigames/internal/core"
)

func newMovement() *Movement {
	return &Movement{
		Field:     core.NewRect(0, 0, 40, 20),
		Margin:    4,
		Schooling: config.SchoolingConfig{NeighborX: 12, NeighborY: 3, Damping: 0.1},
	}
}

func TestReflectAtBounds(t *testing.T) {
	tests := []struct {
		name    string
		pos     core.Vec
		vel     core.Vec
		wantPos core.Vec
		wantVel core.Vec
	}{
		{"right", core.V(37.5, 5), core.V(1, 0), core.V(38, 5), core.V(-1, 0)},
		{"left", core.V(0.5, 5), core.V(-1, 0), core.V(0, 5), core.V(1, 0)},
		{"bottom", core.V(10, 18.8), core.V(0, 0.5), core.V(10, 19), core.V(0, -0.5)},
		{"top", core.V(10, 0.2), core.V(0, -0.5), core.V(10, 0), core.V(0, 0.5)},
		{"inside", core.V(10, 10), core.V(1, 1), core.V(11, 11), core.V(1, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMovement()
			s := NewStore()
			e := &Entity{ID: 1, Category: CategoryCatchable, Motion: MotionLinearReflecting, Pos: tt.pos, Vel: tt.vel, W: 2, H: 1}
			if err := s.Insert(e); err != nil {
				t.Fatal(err)
			}

			m.Update(s, 1)

			if e.Pos != tt.wantPos {
				t.Errorf("pos = %v, want %v", e.Pos, tt.wantPos)
			}
			if e.Vel != tt.wantVel {
				t.Errorf("vel = %v, want %v", e.Vel, tt.wantVel)
			}
		})
	}
}

func TestSteeringPullsTowardCentroid(t *testing.T) {
	m := newMovement()
	s := NewStore()
	a := &Entity{ID: 1, Category: CategoryCatchable, Motion: MotionSteering, Pos: core.V(10, 10), W: 2, H: 1, Group: 1}
	b := &Entity{ID: 2, Category: CategoryCatchable, Motion: MotionSteering, Pos: core.V(12, 12), W: 2, H: 1, Group: 1}
	loner := &Entity{ID: 3, Category: CategoryCatchable, Motion: MotionSteering, Pos: core.V(14, 11), W: 2, H: 1, Group: 2}
	far := &Entity{ID: 4, Category: CategoryCatchable, Motion: MotionSteering, Pos: core.V(35, 10), W: 2, H: 1, Group: 1}
	for _, e := range []*Entity{a, b, loner, far} {
		if err := s.Insert(e); err != nil {
			t.Fatal(err)
		}
	}

	m.Update(s, 1)

	// Centroid of a and b is y=11.5 (centers), 10% of the offset per tick
	if math.Abs(a.Pos.Y-10.1) > 1e-9 {
		t.Errorf("a.y = %v, want 10.1", a.Pos.Y)
	}
	if math.Abs(b.Pos.Y-11.9) > 1e-9 {
		t.Errorf("b.y = %v, want 11.9", b.Pos.Y)
	}
	if loner.Pos.Y != 11 {
		t.Errorf("other group moved: y = %v", loner.Pos.Y)
	}
	if far.Pos.Y != 10 {
		t.Errorf("out-of-range neighbour moved: y = %v", far.Pos.Y)
	}
}

func TestDirectedFallPrunedPastMargin(t *testing.T) {
	m := newMovement()
	s := NewStore()
	falling := &Entity{ID: 1, Category: CategoryHostile, Motion: MotionDirectedFall, Pos: core.V(5, 21), Vel: core.V(0, 1), W: 1, H: 1, Health: 1, MaxHealth: 1}
	edge := &Entity{ID: 2, Category: CategoryHostile, Motion: MotionDirectedFall, Pos: core.V(5, 20), Vel: core.V(0, 1), W: 1, H: 1, Health: 1, MaxHealth: 1}
	rising := &Entity{ID: 3, Category: CategoryProjectile, Motion: MotionDirectedFall, Pos: core.V(5, -3.5), Vel: core.V(0, -1), W: 1, H: 1}
	for _, e := range []*Entity{falling, edge, rising} {
		if err := s.Insert(e); err != nil {
			t.Fatal(err)
		}
	}

	pruned := m.Update(s, 1)

	// falling reaches y=22 (inside margin), edge y=21, rising y=-4.5 (outside)
	if !slices.Equal(pruned, []EntityID{3}) {
		t.Errorf("pruned = %v, want [3]", pruned)
	}
	for range 2 {
		m.Update(s, 1)
	}
	if _, ok := s.Get(1); ok {
		t.Error("entity past the margin was not pruned")
	}
	if _, ok := s.Get(2); !ok {
		t.Error("entity inside the margin was pruned early")
	}
}

func TestNonFiniteEntitiesPruned(t *testing.T) {
	m := newMovement()
	s := NewStore()
	bad := []*Entity{
		{ID: 1, Category: CategoryCatchable, Motion: MotionLinearReflecting, Pos: core.V(math.NaN(), 1), W: 1, H: 1},
		{ID: 2, Category: CategoryHostile, Motion: MotionDirectedFall, Pos: core.V(1, 1), Vel: core.V(0, math.Inf(1)), W: 1, H: 1},
	}
	for _, e := range bad {
		if err := s.Insert(e); err != nil {
			t.Fatal(err)
		}
	}

	pruned := m.Update(s, 1)
	if len(pruned) != 2 || s.Len() != 0 {
		t.Errorf("pruned %v, %d left", pruned, s.Len())
	}
}

func TestPlayerClampedAndCapturedFrozen(t *testing.T) {
	m := newMovement()
	s := NewStore()
	player := &Entity{ID: 1, Category: CategoryPlayer, Motion: MotionPlayerControlled, Pos: core.V(-5, 30), W: 5, H: 1}
	caught := &Entity{ID: 2, Category: CategoryCatchable, Motion: MotionLinearReflecting, Pos: core.V(3, 3), Vel: core.V(1, 0), W: 2, H: 1, Captured: true}
	for _, e := range []*Entity{player, caught} {
		if err := s.Insert(e); err != nil {
			t.Fatal(err)
		}
	}

	m.Update(s, 1)

	if player.Pos != core.V(0, 19) {
		t.Errorf("player pos = %v, want (0,19)", player.Pos)
	}
	if caught.Pos != core.V(3, 3) {
		t.Errorf("captured entity moved to %v", caught.Pos)
	}
}
