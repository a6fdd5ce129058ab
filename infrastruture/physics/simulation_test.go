package physics

import (
	"math"
	"testing"

	"github.com/beka-birhanu/maze3d/service/i"
	"github.com/beka-birhanu/maze3d/world"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flatFloor adds a wide static slab whose top surface sits at y=0.
func flatFloor(t *testing.T, sim *Simulation) uuid.UUID {
	t.Helper()
	handle, err := sim.CreateStaticCollider(
		i.Box(50, 0.5, 50),
		world.Transform{Position: world.Vec3{Y: -0.5}},
	)
	require.NoError(t, err)
	return handle
}

func spawnBody(t *testing.T, sim *Simulation, pos world.Vec3) uuid.UUID {
	t.Helper()
	handle, err := sim.CreateDynamicBody(
		i.Capsule(0.3, 0.6),
		world.Transform{Position: pos},
		70, 0,
	)
	require.NoError(t, err)
	return handle
}

func TestBodyFallsAndLands(t *testing.T) {
	sim := New()
	flatFloor(t, sim)
	body := spawnBody(t, sim, world.Vec3{Y: 3})

	grounded, err := sim.Grounded(body)
	require.NoError(t, err)
	assert.False(t, grounded)

	// Two seconds of simulation is plenty to fall three units.
	for i := 0; i < 120; i++ {
		sim.Step(1.0 / 60)
	}

	grounded, err = sim.Grounded(body)
	require.NoError(t, err)
	assert.True(t, grounded)

	transform, err := sim.BodyTransform(body)
	require.NoError(t, err)
	assert.InDelta(t, 0.9, transform.Position.Y, 0.01, "body should rest with its bottom on the floor")

	velocity, err := sim.BodyVelocity(body)
	require.NoError(t, err)
	assert.Zero(t, velocity.Y)
}

func TestGroundedBodyStaysGroundedWhileStill(t *testing.T) {
	sim := New()
	flatFloor(t, sim)
	body := spawnBody(t, sim, world.Vec3{Y: 0.9})

	for i := 0; i < 30; i++ {
		sim.Step(1.0 / 60)
		grounded, err := sim.Grounded(body)
		require.NoError(t, err)
		if grounded {
			break
		}
	}

	// Once settled the flag must not flicker between steps.
	for i := 0; i < 30; i++ {
		sim.Step(1.0 / 60)
		grounded, err := sim.Grounded(body)
		require.NoError(t, err)
		assert.True(t, grounded)
	}
}

func TestWallStopsHorizontalMotion(t *testing.T) {
	sim := New()
	flatFloor(t, sim)

	// Wall across the X axis at x=2.
	_, err := sim.CreateStaticCollider(
		i.Box(0.1, 1.5, 5),
		world.Transform{Position: world.Vec3{X: 2, Y: 1.5}},
	)
	require.NoError(t, err)

	body := spawnBody(t, sim, world.Vec3{Y: 0.9})
	require.NoError(t, sim.SetBodyVelocity(body, world.Vec3{X: 4}))

	for i := 0; i < 120; i++ {
		sim.Step(1.0 / 60)
		require.NoError(t, sim.SetBodyVelocity(body, world.Vec3{X: 4}))
	}

	transform, err := sim.BodyTransform(body)
	require.NoError(t, err)
	assert.Less(t, transform.Position.X, 2.0, "body must not pass through the wall")
	assert.InDelta(t, 2.0-0.1-0.3, transform.Position.X, 0.01, "body should rest against the wall")
}

func TestYawedWallCollidesAlongItsLength(t *testing.T) {
	sim := New()

	// A quarter-turn yaw swaps the box's horizontal extents, so a wall thin
	// on X becomes a barrier across Z.
	_, err := sim.CreateStaticCollider(
		i.Box(0.1, 1, 1),
		world.Transform{Position: world.Vec3{Z: 2, Y: 1}, Yaw: math.Pi / 2},
	)
	require.NoError(t, err)

	body := spawnBody(t, sim, world.Vec3{Y: 1})
	require.NoError(t, sim.SetBodyVelocity(body, world.Vec3{Z: 3}))
	for i := 0; i < 60; i++ {
		sim.Step(1.0 / 60)
		require.NoError(t, sim.SetBodyVelocity(body, world.Vec3{Z: 3}))
	}

	transform, err := sim.BodyTransform(body)
	require.NoError(t, err)
	assert.Less(t, transform.Position.Z, 2.0)
}

func TestSensorOverlap(t *testing.T) {
	sim := New()
	sensor, err := sim.CreateSensor(
		i.Sphere(0.6),
		world.Transform{Position: world.Vec3{X: 5, Y: 0.9, Z: 5}},
	)
	require.NoError(t, err)

	body := spawnBody(t, sim, world.Vec3{Y: 0.9})

	overlap, err := sim.SensorOverlaps(sensor, body)
	require.NoError(t, err)
	assert.False(t, overlap)

	require.NoError(t, sim.SetBodyPosition(body, world.Vec3{X: 5.2, Y: 0.9, Z: 5}))
	overlap, err = sim.SensorOverlaps(sensor, body)
	require.NoError(t, err)
	assert.True(t, overlap)
}

func TestStaleHandles(t *testing.T) {
	sim := New()
	body := spawnBody(t, sim, world.Vec3{Y: 1})
	require.NoError(t, sim.Destroy(body))

	_, err := sim.BodyTransform(body)
	assert.ErrorIs(t, err, i.ErrStaleHandle)
	_, err = sim.BodyVelocity(body)
	assert.ErrorIs(t, err, i.ErrStaleHandle)
	_, err = sim.Grounded(body)
	assert.ErrorIs(t, err, i.ErrStaleHandle)
	assert.ErrorIs(t, sim.SetBodyVelocity(body, world.Vec3{}), i.ErrStaleHandle)
	assert.ErrorIs(t, sim.SetBodyPosition(body, world.Vec3{}), i.ErrStaleHandle)
	assert.ErrorIs(t, sim.SetBodyYaw(body, 1), i.ErrStaleHandle)
	assert.ErrorIs(t, sim.Destroy(body), i.ErrStaleHandle)
	assert.ErrorIs(t, sim.Destroy(uuid.New()), i.ErrStaleHandle)
}

func TestDestroyEmptiesTheWorld(t *testing.T) {
	sim := New()
	handles := []uuid.UUID{
		flatFloor(t, sim),
		spawnBody(t, sim, world.Vec3{Y: 1}),
	}
	sensor, err := sim.CreateSensor(i.Sphere(1), world.Transform{})
	require.NoError(t, err)
	handles = append(handles, sensor)

	assert.Equal(t, 3, sim.ColliderCount())
	for _, h := range handles {
		require.NoError(t, sim.Destroy(h))
	}
	assert.Zero(t, sim.ColliderCount())

	// Stepping an empty world is a no-op, not a fault.
	sim.Step(1.0 / 60)
}

func TestDegenerateShapesRejected(t *testing.T) {
	sim := New()

	_, err := sim.CreateStaticCollider(i.Box(0, 1, 1), world.Transform{})
	assert.ErrorIs(t, err, ErrDegenerateShape)

	_, err = sim.CreateSensor(i.Sphere(0), world.Transform{})
	assert.ErrorIs(t, err, ErrDegenerateShape)

	_, err = sim.CreateDynamicBody(i.Capsule(0.3, 0.6), world.Transform{}, 0, 0)
	assert.ErrorIs(t, err, ErrDegenerateShape)
}
