package game

import (
	"math"

	"github.com/beka-birhanu/maze3d/service/i"
	"github.com/beka-birhanu/maze3d/world"
	"github.com/google/uuid"
)

// Controller translates input intents into motion on the player's physics
// body. Apply must run before the physics step of a tick and Observe after
// it, so the controller never reads half-updated state. Every physics call
// tolerates i.ErrStaleHandle by no-op-ing: a controller outliving its world
// goes quiet instead of faulting.
type Controller struct {
	physics   i.PhysicsService
	body      uuid.UUID
	goal      uuid.UUID
	maxSpeed  float64
	jumpSpeed float64
	yaw       float64
	snapshot  i.PlayerSnapshot
	won       bool
	onGoal    func()
}

// NewController creates a controller for the given body and goal sensor.
// onGoal fires exactly once, on the first observed goal-sensor contact.
func NewController(physics i.PhysicsService, body, goal uuid.UUID, spawn world.Transform, pc PlayerConfig, onGoal func()) *Controller {
	return &Controller{
		physics:   physics,
		body:      body,
		goal:      goal,
		maxSpeed:  pc.MaxSpeed,
		jumpSpeed: pc.JumpSpeed,
		yaw:       spawn.Yaw,
		snapshot: i.PlayerSnapshot{
			Position: spawn.Position,
			Yaw:      spawn.Yaw,
		},
		onGoal: onGoal,
	}
}

// Apply turns one tick's intent into body velocity: look delta rotates the
// heading, movement is resolved on the local forward/strafe axes and clamped
// to the speed limit, and a jump adds vertical velocity only while grounded.
func (c *Controller) Apply(intent i.Intent) {
	grounded, err := c.physics.Grounded(c.body)
	if err != nil {
		return
	}
	velocity, err := c.physics.BodyVelocity(c.body)
	if err != nil {
		return
	}

	c.yaw = normalizeYaw(c.yaw + intent.LookYaw)

	forward := world.Vec3{X: math.Sin(c.yaw), Z: math.Cos(c.yaw)}
	right := world.Vec3{X: math.Cos(c.yaw), Z: -math.Sin(c.yaw)}

	horizontal := forward.Scale(intent.Forward).Add(right.Scale(intent.Strafe))
	if l := horizontal.Length(); l > 1 {
		horizontal = horizontal.Scale(1 / l)
	}
	horizontal = horizontal.Scale(c.maxSpeed)

	velocity.X = horizontal.X
	velocity.Z = horizontal.Z
	if intent.Jump && grounded {
		velocity.Y = c.jumpSpeed
	}

	if err := c.physics.SetBodyVelocity(c.body, velocity); err != nil {
		return
	}
	_ = c.physics.SetBodyYaw(c.body, c.yaw)
}

// Observe reads the post-step body state into the controller's snapshot and
// checks the goal sensor, signaling the first contact.
func (c *Controller) Observe() {
	transform, err := c.physics.BodyTransform(c.body)
	if err != nil {
		return
	}
	velocity, err := c.physics.BodyVelocity(c.body)
	if err != nil {
		return
	}
	grounded, err := c.physics.Grounded(c.body)
	if err != nil {
		return
	}

	c.snapshot = i.PlayerSnapshot{
		Position: transform.Position,
		Yaw:      transform.Yaw,
		Velocity: velocity,
		Grounded: grounded,
	}

	if c.won {
		return
	}
	reached, err := c.physics.SensorOverlaps(c.goal, c.body)
	if err != nil || !reached {
		return
	}
	c.won = true
	if c.onGoal != nil {
		c.onGoal()
	}
}

// Snapshot returns the player state read by the last Observe.
func (c *Controller) Snapshot() i.PlayerSnapshot {
	return c.snapshot
}

// normalizeYaw wraps a heading into (-pi, pi].
func normalizeYaw(yaw float64) float64 {
	for yaw > math.Pi {
		yaw -= 2 * math.Pi
	}
	for yaw <= -math.Pi {
		yaw += 2 * math.Pi
	}
	return yaw
}
