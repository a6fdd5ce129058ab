/*
Package game sequences one playthrough: maze generation, world assembly,
physics world construction and the per-tick player simulation, all driven by
a small fixed state machine (Menu, Generating, Playing, Won).

A tick runs named phases in fixed order: controller-apply, physics-step,
controller-observe (which includes the goal check). The maze and its world
geometry are built synchronously inside a state transition and are immutable
afterwards, so the Playing state never sees a partially assembled world.
*/
package game

import (
	"log"
	"sync"

	"github.com/beka-birhanu/maze3d/config"
	"github.com/beka-birhanu/maze3d/maze"
	"github.com/beka-birhanu/maze3d/service/i"
	"github.com/beka-birhanu/maze3d/world"
)

// Config holds everything a session needs to run.
type Config struct {
	MazeWidth  int              // Maze width in cells
	MazeHeight int              // Maze height in cells
	World      world.Config     // Sizing constants for world assembly
	Player     PlayerConfig     // Player body tuning
	Physics    i.PhysicsService // Physics backend the session builds into
	Logger     *log.Logger      // Session log destination
}

// Session is one playthrough. It owns the maze, the derived geometry, the
// physics world built from it and the player controller, and it is the only
// place those lifecycles are created or destroyed.
type Session struct {
	cfg          Config
	sm           *StateMachine
	builder      *WorldBuilder
	controller   *Controller
	maze         *maze.Maze
	geo          *world.Geometry
	intent       i.Intent
	version      int64
	logger       *log.Logger
	sync.RWMutex // Lock for synchronizing access.
}

// interface compliance check
var _ i.GameSession = &Session{}

// NewSession creates a session in the menu state. Nothing is generated until
// Start consumes a seed.
func NewSession(cfg Config) *Session {
	return &Session{
		cfg:     cfg,
		sm:      NewStateMachine(),
		builder: NewWorldBuilder(cfg.Physics),
		logger:  cfg.Logger,
	}
}

// Start consumes a seed and runs the generation pipeline. A Start outside
// the menu state is ignored; a running world is only replaced through Reset,
// which tears it down first. A rejected maze request (ErrInvalidDimensions)
// aborts the transition, returns the session to the menu state and surfaces
// the error.
func (s *Session) Start(seed int64) error {
	s.Lock()
	defer s.Unlock()

	if s.sm.Current() != StateMenu {
		return nil
	}
	if !s.sm.TransitionTo(StateGenerating) {
		return nil
	}
	return s.generate(seed)
}

// generate runs maze -> world -> physics synchronously. Caller holds the
// lock and has already moved the state machine into Generating.
func (s *Session) generate(seed int64) error {
	m, err := maze.New(s.cfg.MazeWidth, s.cfg.MazeHeight, maze.NewRand(seed))
	if err != nil {
		s.logger.Printf("%s[ERROR]%s generating maze: %s", config.LogErrorColor, config.LogColorReset, err)
		s.sm.TransitionTo(StateMenu)
		return err
	}

	geo, err := world.Assemble(m, s.cfg.World)
	if err != nil {
		s.logger.Printf("%s[ERROR]%s assembling world: %s", config.LogErrorColor, config.LogColorReset, err)
		s.sm.TransitionTo(StateMenu)
		return err
	}

	if err := s.builder.Build(geo, s.cfg.Player); err != nil {
		s.logger.Printf("%s[ERROR]%s building physics world: %s", config.LogErrorColor, config.LogColorReset, err)
		s.sm.TransitionTo(StateMenu)
		return err
	}

	s.maze = m
	s.geo = geo
	s.intent = i.Intent{}
	s.controller = NewController(
		s.cfg.Physics,
		s.builder.PlayerHandle(),
		s.builder.GoalHandle(),
		geo.Spawn,
		s.cfg.Player,
		func() { s.sm.TransitionTo(StateWon) },
	)

	s.sm.TransitionTo(StatePlaying)
	s.logger.Printf("%s[INFO]%s world ready: %dx%d, goal %d cells out\n%s",
		config.LogInfoColor, config.LogColorReset,
		m.Width(), m.Height(), m.GoalDistance(), m)
	return nil
}

// Tick advances the session by dt seconds. Input is applied before the
// physics step and results are read only after it. Ticks outside the
// playing state do nothing.
func (s *Session) Tick(dt float64) {
	s.Lock()
	defer s.Unlock()

	if s.sm.Current() != StatePlaying {
		return
	}

	intent := s.intent
	// Deltas and edge-triggered flags are consumed once per tick; held
	// movement axes persist until the client says otherwise.
	s.intent.LookYaw = 0
	s.intent.Jump = false

	s.controller.Apply(intent)
	s.cfg.Physics.Step(dt)
	s.controller.Observe()
	s.version++
}

// SetIntent stages the input applied on the next tick.
func (s *Session) SetIntent(intent i.Intent) {
	s.Lock()
	defer s.Unlock()
	s.intent = intent
}

// Reset tears the current world down and regenerates from a fresh seed.
// Resets are only honored mid-game or after a win; anything else is ignored.
// Teardown completes before any new collider exists, so two worlds never
// coexist.
func (s *Session) Reset(seed int64) error {
	s.Lock()
	defer s.Unlock()

	if s.sm.Current() != StatePlaying && s.sm.Current() != StateWon {
		return nil
	}
	if !s.sm.TransitionTo(StateGenerating) {
		return nil
	}

	s.teardown()
	return s.generate(seed)
}

// teardown destroys the physics world and drops the per-playthrough state.
// Caller holds the lock.
func (s *Session) teardown() {
	s.builder.Teardown()
	s.controller = nil
	s.maze = nil
	s.geo = nil
	s.intent = i.Intent{}
}

// State returns the current state machine state name.
func (s *Session) State() string {
	return s.sm.Current().String()
}

// Snapshot returns the latest per-tick state.
func (s *Session) Snapshot() i.GameSnapshot {
	s.RLock()
	defer s.RUnlock()

	snap := i.GameSnapshot{
		State:   s.sm.Current().String(),
		Version: s.version,
	}
	if s.controller != nil {
		snap.Player = s.controller.Snapshot()
	}
	return snap
}

// Geometry returns the immutable world layout of the current maze, or nil
// while no world exists.
func (s *Session) Geometry() *world.Geometry {
	s.RLock()
	defer s.RUnlock()
	return s.geo
}

// Maze returns the current maze graph, or nil while no world exists.
func (s *Session) Maze() *maze.Maze {
	s.RLock()
	defer s.RUnlock()
	return s.maze
}

// Stop tears the session down for good.
func (s *Session) Stop() {
	s.Lock()
	defer s.Unlock()
	s.teardown()
}
