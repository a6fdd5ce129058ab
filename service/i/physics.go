package i

import (
	"errors"

	"github.com/beka-birhanu/maze3d/world"
	"github.com/google/uuid"
)

// ErrStaleHandle reports an operation on a body, collider or sensor handle
// the physics service no longer knows, typically one invalidated by a prior
// teardown. Consumers must treat it as a signal to no-op, never as a fault
// to surface to the player.
var ErrStaleHandle = errors.New("stale physics handle")

// ShapeKind discriminates the collision shapes the physics service accepts.
type ShapeKind uint8

const (
	ShapeBox ShapeKind = iota
	ShapeSphere
	ShapeCapsule
)

// Shape describes a collision volume. HalfExtents applies to boxes; Radius
// to spheres and capsules; HalfHeight to the cylindrical section of a capsule.
type Shape struct {
	Kind        ShapeKind
	HalfExtents world.Vec3
	Radius      float64
	HalfHeight  float64
}

// Box returns a box shape with the given half extents.
func Box(halfX, halfY, halfZ float64) Shape {
	return Shape{Kind: ShapeBox, HalfExtents: world.Vec3{X: halfX, Y: halfY, Z: halfZ}}
}

// Sphere returns a sphere shape with the given radius.
func Sphere(radius float64) Shape {
	return Shape{Kind: ShapeSphere, Radius: radius}
}

// Capsule returns a vertical capsule with the given radius and cylindrical
// half height.
func Capsule(radius, halfHeight float64) Shape {
	return Shape{Kind: ShapeCapsule, Radius: radius, HalfHeight: halfHeight}
}

// PhysicsService is the rigid-body simulation the game core builds its world
// in. The core treats it as an opaque capability: it creates colliders,
// advances the simulation once per tick and queries per-body state, but never
// looks inside the solver. Every create call returns an opaque handle;
// operations on destroyed handles fail with ErrStaleHandle.
type PhysicsService interface {
	// CreateStaticCollider registers an immovable collision volume.
	CreateStaticCollider(shape Shape, transform world.Transform) (uuid.UUID, error)

	// CreateDynamicBody registers a movable body with the given mass and friction.
	CreateDynamicBody(shape Shape, transform world.Transform, mass, friction float64) (uuid.UUID, error)

	// CreateSensor registers a non-colliding overlap volume.
	CreateSensor(shape Shape, transform world.Transform) (uuid.UUID, error)

	// Destroy removes the collider, body or sensor behind the handle.
	Destroy(handle uuid.UUID) error

	// Step advances the simulation by dt seconds.
	Step(dt float64)

	// BodyTransform returns the current transform of a dynamic body.
	BodyTransform(handle uuid.UUID) (world.Transform, error)

	// SetBodyYaw sets the heading of a dynamic body.
	SetBodyYaw(handle uuid.UUID, yaw float64) error

	// BodyVelocity returns the current velocity of a dynamic body.
	BodyVelocity(handle uuid.UUID) (world.Vec3, error)

	// SetBodyVelocity overrides the velocity of a dynamic body. The next Step
	// integrates and collision-resolves it.
	SetBodyVelocity(handle uuid.UUID, velocity world.Vec3) error

	// Grounded reports whether the body rested on a static surface during the
	// last Step.
	Grounded(handle uuid.UUID) (bool, error)

	// SensorOverlaps reports whether the body currently overlaps the sensor.
	SensorOverlaps(sensor, body uuid.UUID) (bool, error)

	// ColliderCount returns the number of live colliders, bodies and sensors.
	ColliderCount() int
}
