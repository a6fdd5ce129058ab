package i

import (
	"github.com/beka-birhanu/maze3d/world"
	"github.com/google/uuid"
)

// Intent is one tick's worth of normalized player input: movement on the
// local forward/strafe axes in [-1, 1], a look delta in radians and a jump
// request.
type Intent struct {
	Forward float64 `json:"forward"`
	Strafe  float64 `json:"strafe"`
	LookYaw float64 `json:"look_yaw"`
	Jump    bool    `json:"jump"`
}

// PlayerSnapshot is the read-only view of the player body after a tick.
type PlayerSnapshot struct {
	Position world.Vec3 `json:"position"`
	Yaw      float64    `json:"yaw"`
	Velocity world.Vec3 `json:"velocity"`
	Grounded bool       `json:"grounded"`
}

// GameSnapshot is the per-tick state handed to rendering collaborators.
// Version increases monotonically with every tick so consumers can discard
// stale frames.
type GameSnapshot struct {
	State   string         `json:"state"`
	Version int64          `json:"version"`
	Player  PlayerSnapshot `json:"player"`
}

// GameSession is one playthrough: a generated maze, its physics world and the
// player moving through it, sequenced by the game state machine.
type GameSession interface {
	// Start consumes a seed and runs the full generation pipeline. Ignored
	// unless the session is in the menu state.
	Start(seed int64) error

	// Tick advances the session by dt seconds.
	Tick(dt float64)

	// SetIntent stages the input applied on the next tick.
	SetIntent(Intent)

	// Reset tears the current world down and regenerates from a fresh seed.
	// Ignored unless the session is playing or won.
	Reset(seed int64) error

	// State returns the current state machine state name.
	State() string

	// Snapshot returns the latest per-tick state.
	Snapshot() GameSnapshot

	// Geometry returns the immutable world layout of the current maze, or
	// nil while in the menu state.
	Geometry() *world.Geometry

	// Stop tears the session down for good.
	Stop()
}

// SessionManager owns the live game sessions and their tick loops.
type SessionManager interface {
	// NewSession creates a session from explicit dimensions and seed and
	// returns its ID.
	NewSession(width, height int, seed int64) (uuid.UUID, error)

	// Session returns the live session with the given ID.
	Session(id uuid.UUID) (GameSession, error)

	// EndSession stops and removes a session.
	EndSession(id uuid.UUID) error
}
