package sim

import (
	"fmt"

	"github.com/vovakirdan/minigames/internal/core"
)

// EntityID identifies a live entity. IDs are allocated monotonically per session.
type EntityID uint64

// Category is the interaction class of an entity.
type Category int

const (
	CategoryPlayer Category = iota
	CategoryHostile
	CategoryProjectile
	CategoryCatchable
	categoryCount // Sentinel for index sizing
)

// String returns the config name of the category.
func (c Category) String() string {
	switch c {
	case CategoryPlayer:
		return "player"
	case CategoryHostile:
		return "hostile"
	case CategoryProjectile:
		return "projectile"
	case CategoryCatchable:
		return "catchable"
	default:
		return "unknown"
	}
}

// ParseCategory converts a config name to a Category.
func ParseCategory(s string) (Category, error) {
	for c := range categoryCount {
		if c.String() == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("sim: category %q: %w", s, ErrUnknownCategory)
}

// Motion is the kinematic rule applied to an entity each tick.
type Motion int

const (
	MotionLinearReflecting Motion = iota // Roams, bounces off playfield bounds
	MotionSteering                       // Linear reflecting plus vertical pull toward its school
	MotionDirectedFall                   // Constant velocity, pruned past the margin
	MotionPlayerControlled               // Moved only by commands
)

// String returns the config name of the motion.
func (m Motion) String() string {
	switch m {
	case MotionLinearReflecting:
		return "linear_reflecting"
	case MotionSteering:
		return "steering"
	case MotionDirectedFall:
		return "directed_fall"
	case MotionPlayerControlled:
		return "player_controlled"
	default:
		return "unknown"
	}
}

// ParseMotion converts a config name to a Motion.
func ParseMotion(s string) (Motion, error) {
	for _, m := range []Motion{MotionLinearReflecting, MotionSteering, MotionDirectedFall, MotionPlayerControlled} {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("sim: motion %q: %w", s, ErrUnknownMotion)
}

// Entity is any simulated game object.
type Entity struct {
	ID       EntityID
	Category Category
	Motion   Motion
	Kind     string // Spawn rule name ("scout", "tuna", ...)
	Source   string // Spawn table that produced it, empty for player and projectiles

	Pos  core.Vec // Top-left corner
	Vel  core.Vec // Cells per tick
	W, H float64

	Health    int // Only meaningful when MaxHealth > 0
	MaxHealth int
	Points    int
	Group     int // Schooling group for steering entities

	Color         core.Color
	CaptureRadius float64

	Captured  bool
	ReleaseIn int // Ticks until a captured entity is detached
}

// Bounds returns the entity's bounding box.
func (e *Entity) Bounds() core.Rect {
	return core.NewRect(e.Pos.X, e.Pos.Y, e.W, e.H)
}

// Center returns the center of the entity's bounding box.
func (e *Entity) Center() core.Vec {
	return e.Bounds().Center()
}

// Finite reports whether position and velocity are usable numbers.
func (e *Entity) Finite() bool {
	return e.Pos.Finite() && e.Vel.Finite()
}

// Dead reports whether a health-bearing entity has run out of health.
func (e *Entity) Dead() bool {
	return e.MaxHealth > 0 && e.Health <= 0
}
