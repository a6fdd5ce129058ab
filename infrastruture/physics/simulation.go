/*
Package physics is an in-process rigid-body simulation implementing the
i.PhysicsService contract: static axis-aligned colliders, dynamic bodies
integrated with axis-separated collision resolution, and non-colliding
sensors for overlap detection. Handles are uuids; any operation on a handle
destroyed earlier fails with i.ErrStaleHandle.

The solver is deliberately simple. Bodies are resolved against static
axis-aligned bounding boxes one axis at a time, which is exact for the
grid-aligned walls the maze world produces and lets the player slide along
walls instead of sticking to them.
*/
package physics

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/beka-birhanu/maze3d/service/i"
	"github.com/beka-birhanu/maze3d/world"
	"github.com/google/uuid"
)

const (
	defaultGravity = 9.81

	// groundProbe is how far below a resting body the solver looks for
	// support before clearing its grounded flag.
	groundProbe = 0.02

	// skin keeps resolved bodies a hair away from the surface they hit so
	// the next step does not start inside it.
	skin = 1e-4
)

// ErrDegenerateShape reports a collision shape with a non-positive extent.
// Zero-thickness colliders make contact resolution ill-defined and are
// rejected at creation.
var ErrDegenerateShape = errors.New("degenerate collision shape")

type staticCollider struct {
	min world.Vec3
	max world.Vec3
}

type dynamicBody struct {
	shape    i.Shape
	half     world.Vec3 // Body half extents used for collision
	pos      world.Vec3
	yaw      float64
	vel      world.Vec3
	mass     float64
	friction float64
	grounded bool
}

type sensorVolume struct {
	center world.Vec3
	radius float64
}

// Simulation is a self-contained physics world. Safe for concurrent use.
type Simulation struct {
	gravity      float64
	statics      map[uuid.UUID]*staticCollider
	bodies       map[uuid.UUID]*dynamicBody
	sensors      map[uuid.UUID]*sensorVolume
	sync.RWMutex // Lock for synchronizing access.
}

// interface compliance check
var _ i.PhysicsService = &Simulation{}

// New creates an empty simulation with default gravity.
func New() *Simulation {
	return NewWithGravity(defaultGravity)
}

// NewWithGravity creates an empty simulation with the given downward
// acceleration in world units per second squared.
func NewWithGravity(gravity float64) *Simulation {
	return &Simulation{
		gravity: gravity,
		statics: make(map[uuid.UUID]*staticCollider),
		bodies:  make(map[uuid.UUID]*dynamicBody),
		sensors: make(map[uuid.UUID]*sensorVolume),
	}
}

// halfExtents bounds a shape with a box for collision purposes.
func halfExtents(shape i.Shape) (world.Vec3, error) {
	var h world.Vec3
	switch shape.Kind {
	case i.ShapeBox:
		h = shape.HalfExtents
	case i.ShapeSphere:
		h = world.Vec3{X: shape.Radius, Y: shape.Radius, Z: shape.Radius}
	case i.ShapeCapsule:
		h = world.Vec3{X: shape.Radius, Y: shape.HalfHeight + shape.Radius, Z: shape.Radius}
	default:
		return h, fmt.Errorf("%w: unknown shape kind %d", ErrDegenerateShape, shape.Kind)
	}
	if h.X <= 0 || h.Y <= 0 || h.Z <= 0 {
		return h, fmt.Errorf("%w: half extents %+v", ErrDegenerateShape, h)
	}
	return h, nil
}

// boundingRadius bounds a shape with a sphere for overlap purposes.
func boundingRadius(shape i.Shape) float64 {
	switch shape.Kind {
	case i.ShapeSphere:
		return shape.Radius
	case i.ShapeCapsule:
		return shape.HalfHeight + shape.Radius
	default:
		h := shape.HalfExtents
		return math.Sqrt(h.X*h.X + h.Y*h.Y + h.Z*h.Z)
	}
}

// rotatedHalf widens box half extents so the axis-aligned bounds cover the
// shape under the given yaw. Exact for the right-angle headings the maze
// world uses.
func rotatedHalf(h world.Vec3, yaw float64) world.Vec3 {
	c, s := math.Abs(math.Cos(yaw)), math.Abs(math.Sin(yaw))
	return world.Vec3{
		X: c*h.X + s*h.Z,
		Y: h.Y,
		Z: s*h.X + c*h.Z,
	}
}

// CreateStaticCollider registers an immovable collision volume.
func (sim *Simulation) CreateStaticCollider(shape i.Shape, transform world.Transform) (uuid.UUID, error) {
	h, err := halfExtents(shape)
	if err != nil {
		return uuid.Nil, err
	}
	h = rotatedHalf(h, transform.Yaw)

	sim.Lock()
	defer sim.Unlock()
	id := uuid.New()
	sim.statics[id] = &staticCollider{
		min: transform.Position.Sub(h),
		max: transform.Position.Add(h),
	}
	return id, nil
}

// CreateDynamicBody registers a movable body with the given mass and friction.
func (sim *Simulation) CreateDynamicBody(shape i.Shape, transform world.Transform, mass, friction float64) (uuid.UUID, error) {
	h, err := halfExtents(shape)
	if err != nil {
		return uuid.Nil, err
	}
	if mass <= 0 {
		return uuid.Nil, fmt.Errorf("%w: mass %v", ErrDegenerateShape, mass)
	}

	sim.Lock()
	defer sim.Unlock()
	id := uuid.New()
	sim.bodies[id] = &dynamicBody{
		shape:    shape,
		half:     h,
		pos:      transform.Position,
		yaw:      transform.Yaw,
		mass:     mass,
		friction: friction,
	}
	return id, nil
}

// CreateSensor registers a non-colliding overlap volume.
func (sim *Simulation) CreateSensor(shape i.Shape, transform world.Transform) (uuid.UUID, error) {
	r := boundingRadius(shape)
	if r <= 0 {
		return uuid.Nil, fmt.Errorf("%w: sensor radius %v", ErrDegenerateShape, r)
	}

	sim.Lock()
	defer sim.Unlock()
	id := uuid.New()
	sim.sensors[id] = &sensorVolume{center: transform.Position, radius: r}
	return id, nil
}

// Destroy removes the collider, body or sensor behind the handle.
func (sim *Simulation) Destroy(handle uuid.UUID) error {
	sim.Lock()
	defer sim.Unlock()
	if _, ok := sim.statics[handle]; ok {
		delete(sim.statics, handle)
		return nil
	}
	if _, ok := sim.bodies[handle]; ok {
		delete(sim.bodies, handle)
		return nil
	}
	if _, ok := sim.sensors[handle]; ok {
		delete(sim.sensors, handle)
		return nil
	}
	return i.ErrStaleHandle
}

// ColliderCount returns the number of live colliders, bodies and sensors.
func (sim *Simulation) ColliderCount() int {
	sim.RLock()
	defer sim.RUnlock()
	return len(sim.statics) + len(sim.bodies) + len(sim.sensors)
}

// Step advances every dynamic body by dt seconds: gravity while airborne,
// ground friction, then axis-separated integration against the statics.
func (sim *Simulation) Step(dt float64) {
	if dt <= 0 {
		return
	}

	sim.Lock()
	defer sim.Unlock()
	for _, b := range sim.bodies {
		if !b.grounded {
			b.vel.Y -= sim.gravity * dt
		} else if b.friction > 0 {
			damp := math.Max(0, 1-b.friction*dt)
			b.vel.X *= damp
			b.vel.Z *= damp
		}

		sim.moveAxis(b, axisX, b.vel.X*dt)
		sim.moveAxis(b, axisZ, b.vel.Z*dt)
		sim.moveAxis(b, axisY, b.vel.Y*dt)
		b.grounded = sim.supported(b)
	}
}

type axis int

const (
	axisX axis = iota
	axisY
	axisZ
)

func component(v world.Vec3, a axis) float64 {
	switch a {
	case axisX:
		return v.X
	case axisY:
		return v.Y
	default:
		return v.Z
	}
}

func setComponent(v *world.Vec3, a axis, value float64) {
	switch a {
	case axisX:
		v.X = value
	case axisY:
		v.Y = value
	default:
		v.Z = value
	}
}

// moveAxis translates the body along one axis and clamps it back against any
// static collider it penetrates, killing the velocity on that axis.
func (sim *Simulation) moveAxis(b *dynamicBody, a axis, delta float64) {
	if delta == 0 {
		return
	}
	setComponent(&b.pos, a, component(b.pos, a)+delta)

	for _, s := range sim.statics {
		if !overlaps(b, s) {
			continue
		}
		if delta > 0 {
			setComponent(&b.pos, a, component(s.min, a)-component(b.half, a)-skin)
		} else {
			setComponent(&b.pos, a, component(s.max, a)+component(b.half, a)+skin)
		}
		setComponent(&b.vel, a, 0)
	}
}

// overlaps reports axis-aligned overlap between a body and a static collider.
func overlaps(b *dynamicBody, s *staticCollider) bool {
	return b.pos.X-b.half.X < s.max.X && b.pos.X+b.half.X > s.min.X &&
		b.pos.Y-b.half.Y < s.max.Y && b.pos.Y+b.half.Y > s.min.Y &&
		b.pos.Z-b.half.Z < s.max.Z && b.pos.Z+b.half.Z > s.min.Z
}

// supported probes just below the body for a static surface close enough to
// stand on.
func (sim *Simulation) supported(b *dynamicBody) bool {
	if b.vel.Y > 0 {
		return false
	}
	bottom := b.pos.Y - b.half.Y
	for _, s := range sim.statics {
		if b.pos.X-b.half.X >= s.max.X || b.pos.X+b.half.X <= s.min.X ||
			b.pos.Z-b.half.Z >= s.max.Z || b.pos.Z+b.half.Z <= s.min.Z {
			continue
		}
		if bottom >= s.max.Y-skin && bottom-s.max.Y <= groundProbe {
			return true
		}
	}
	return false
}

// BodyTransform returns the current transform of a dynamic body.
func (sim *Simulation) BodyTransform(handle uuid.UUID) (world.Transform, error) {
	sim.RLock()
	defer sim.RUnlock()
	b, ok := sim.bodies[handle]
	if !ok {
		return world.Transform{}, i.ErrStaleHandle
	}
	return world.Transform{Position: b.pos, Yaw: b.yaw}, nil
}

// SetBodyPosition teleports a dynamic body, e.g. for respawns. The next Step
// resolves any resulting penetration.
func (sim *Simulation) SetBodyPosition(handle uuid.UUID, position world.Vec3) error {
	sim.Lock()
	defer sim.Unlock()
	b, ok := sim.bodies[handle]
	if !ok {
		return i.ErrStaleHandle
	}
	b.pos = position
	return nil
}

// SetBodyYaw sets the heading of a dynamic body.
func (sim *Simulation) SetBodyYaw(handle uuid.UUID, yaw float64) error {
	sim.Lock()
	defer sim.Unlock()
	b, ok := sim.bodies[handle]
	if !ok {
		return i.ErrStaleHandle
	}
	b.yaw = yaw
	return nil
}

// BodyVelocity returns the current velocity of a dynamic body.
func (sim *Simulation) BodyVelocity(handle uuid.UUID) (world.Vec3, error) {
	sim.RLock()
	defer sim.RUnlock()
	b, ok := sim.bodies[handle]
	if !ok {
		return world.Vec3{}, i.ErrStaleHandle
	}
	return b.vel, nil
}

// SetBodyVelocity overrides the velocity of a dynamic body.
func (sim *Simulation) SetBodyVelocity(handle uuid.UUID, velocity world.Vec3) error {
	sim.Lock()
	defer sim.Unlock()
	b, ok := sim.bodies[handle]
	if !ok {
		return i.ErrStaleHandle
	}
	b.vel = velocity
	return nil
}

// Grounded reports whether the body rested on a static surface during the
// last Step.
func (sim *Simulation) Grounded(handle uuid.UUID) (bool, error) {
	sim.RLock()
	defer sim.RUnlock()
	b, ok := sim.bodies[handle]
	if !ok {
		return false, i.ErrStaleHandle
	}
	return b.grounded, nil
}

// SensorOverlaps reports whether the body's center lies within the sensor
// volume.
func (sim *Simulation) SensorOverlaps(sensor, body uuid.UUID) (bool, error) {
	sim.RLock()
	defer sim.RUnlock()
	s, ok := sim.sensors[sensor]
	if !ok {
		return false, i.ErrStaleHandle
	}
	b, ok := sim.bodies[body]
	if !ok {
		return false, i.ErrStaleHandle
	}
	return b.pos.Sub(s.center).Length() <= s.radius, nil
}
