package game

import (
	"errors"
	"fmt"

	"github.com/beka-birhanu/maze3d/service/i"
	"github.com/beka-birhanu/maze3d/world"
	"github.com/google/uuid"
)

// panelHalfThickness is the collision half thickness given to floor and
// ceiling panels. Panels are placed so their gameplay-facing surface lands
// exactly on the panel's world-space plane.
const panelHalfThickness = 0.1

// ErrInvalidPlayerShape reports a player configuration whose capsule cannot
// be constructed, e.g. a radius at or above the configured half height.
var ErrInvalidPlayerShape = errors.New("invalid player shape")

// PlayerConfig holds the physical tuning of the player body.
type PlayerConfig struct {
	Radius     float64 // Capsule radius
	HalfHeight float64 // Capsule half height, floor to center
	Mass       float64 // Body mass
	Friction   float64 // Ground friction coefficient
	MaxSpeed   float64 // Horizontal speed clamp
	JumpSpeed  float64 // Upward velocity applied on a grounded jump
}

// WorldBuilder instantiates physics colliders from world geometry: one static
// box per wall and per panel, a dynamic capsule for the player and the goal
// sensor. It records every handle it creates so Teardown can remove exactly
// what it built. Not safe for concurrent use; the owning session serializes
// access.
type WorldBuilder struct {
	physics i.PhysicsService
	statics []uuid.UUID
	player  uuid.UUID
	goal    uuid.UUID
	built   bool
}

// NewWorldBuilder creates a builder on top of the given physics service.
func NewWorldBuilder(physics i.PhysicsService) *WorldBuilder {
	return &WorldBuilder{physics: physics}
}

// Build creates every collider the geometry calls for. On any failure the
// partially built world is torn down before the error is returned, so a
// failed build leaves the physics service untouched.
func (b *WorldBuilder) Build(geo *world.Geometry, pc PlayerConfig) error {
	if pc.HalfHeight <= pc.Radius {
		return fmt.Errorf("%w: radius %v, half height %v", ErrInvalidPlayerShape, pc.Radius, pc.HalfHeight)
	}

	if err := b.build(geo, pc); err != nil {
		b.Teardown()
		return err
	}
	b.built = true
	return nil
}

func (b *WorldBuilder) build(geo *world.Geometry, pc PlayerConfig) error {
	for _, w := range geo.Walls {
		shape := i.Box(w.Length/2, w.Height/2, w.Thickness/2)
		handle, err := b.physics.CreateStaticCollider(shape, world.Transform{Position: w.Center, Yaw: w.Yaw})
		if err != nil {
			return fmt.Errorf("wall collider: %w", err)
		}
		b.statics = append(b.statics, handle)
	}

	for _, p := range geo.Floors {
		// Floor tops must land exactly on the panel plane.
		center := world.Vec3{X: p.Center.X, Y: p.Center.Y - panelHalfThickness, Z: p.Center.Z}
		handle, err := b.physics.CreateStaticCollider(
			i.Box(p.Size/2, panelHalfThickness, p.Size/2),
			world.Transform{Position: center},
		)
		if err != nil {
			return fmt.Errorf("floor collider: %w", err)
		}
		b.statics = append(b.statics, handle)
	}

	for _, p := range geo.Ceilings {
		center := world.Vec3{X: p.Center.X, Y: p.Center.Y + panelHalfThickness, Z: p.Center.Z}
		handle, err := b.physics.CreateStaticCollider(
			i.Box(p.Size/2, panelHalfThickness, p.Size/2),
			world.Transform{Position: center},
		)
		if err != nil {
			return fmt.Errorf("ceiling collider: %w", err)
		}
		b.statics = append(b.statics, handle)
	}

	player, err := b.physics.CreateDynamicBody(
		i.Capsule(pc.Radius, pc.HalfHeight-pc.Radius),
		geo.Spawn, pc.Mass, pc.Friction,
	)
	if err != nil {
		return fmt.Errorf("player body: %w", err)
	}
	b.player = player

	goal, err := b.physics.CreateSensor(
		i.Sphere(geo.Goal.Radius),
		world.Transform{Position: geo.Goal.Center},
	)
	if err != nil {
		return fmt.Errorf("goal sensor: %w", err)
	}
	b.goal = goal

	return nil
}

// PlayerHandle returns the player body handle, or uuid.Nil before a build.
func (b *WorldBuilder) PlayerHandle() uuid.UUID { return b.player }

// GoalHandle returns the goal sensor handle, or uuid.Nil before a build.
func (b *WorldBuilder) GoalHandle() uuid.UUID { return b.goal }

// Built reports whether the builder currently owns a live world.
func (b *WorldBuilder) Built() bool { return b.built }

// Teardown destroys every collider, body and sensor this builder created.
// Idempotent: calling it twice, or before any build, is a no-op. Handles the
// service already dropped are skipped silently.
func (b *WorldBuilder) Teardown() {
	for _, handle := range b.statics {
		_ = b.physics.Destroy(handle)
	}
	b.statics = nil

	if b.player != uuid.Nil {
		_ = b.physics.Destroy(b.player)
		b.player = uuid.Nil
	}
	if b.goal != uuid.Nil {
		_ = b.physics.Destroy(b.goal)
		b.goal = uuid.Nil
	}
	b.built = false
}
