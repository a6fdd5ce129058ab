package service

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/beka-birhanu/maze3d/config"
	"github.com/beka-birhanu/maze3d/service/i"
	"github.com/google/uuid"
)

const (
	minTickRate = 1
	maxTickRate = 120

	maxSessions = 64
)

var (
	ErrNoSession       = errors.New("no such session")
	ErrTooManySessions = errors.New("session limit reached")
)

// SessionFactory builds a fresh game session for the given maze dimensions,
// with its own physics world.
type SessionFactory func(width, height int) (i.GameSession, error)

// GameSessionManager owns the live game sessions and their tick loops. Each
// session runs on its own ticker goroutine at the configured rate until the
// session ends.
type GameSessionManager struct {
	sessions       map[uuid.UUID]*managedSession
	sessionFactory SessionFactory
	tickRate       int
	logger         *log.Logger
	sync.RWMutex
}

// interface compliance check
var _ i.SessionManager = &GameSessionManager{}

type managedSession struct {
	session i.GameSession
	stop    chan struct{}
}

// Config holds the dependencies for creating a GameSessionManager.
type Config struct {
	SessionFactory SessionFactory
	TickRate       int // Simulation ticks per second
	Logger         *log.Logger
}

// NewGameSessionManager creates a manager from the given configuration.
func NewGameSessionManager(c *Config) (*GameSessionManager, error) {
	if c.SessionFactory == nil {
		return nil, errors.New("session factory is required")
	}
	if c.TickRate < minTickRate || c.TickRate > maxTickRate {
		return nil, errors.New("tick rate out of range")
	}

	return &GameSessionManager{
		sessions:       make(map[uuid.UUID]*managedSession),
		sessionFactory: c.SessionFactory,
		tickRate:       c.TickRate,
		logger:         c.Logger,
	}, nil
}

// NewSession creates a session for the given dimensions, starts it with the
// seed and spins up its tick loop. Generation failures surface to the caller
// and leave no session behind.
func (g *GameSessionManager) NewSession(width, height int, seed int64) (uuid.UUID, error) {
	g.Lock()
	defer g.Unlock()

	if len(g.sessions) >= maxSessions {
		return uuid.Nil, ErrTooManySessions
	}

	session, err := g.sessionFactory(width, height)
	if err != nil {
		g.logger.Printf("%s[ERROR]%s creating game session: %s", config.LogErrorColor, config.LogColorReset, err)
		return uuid.Nil, err
	}

	if err := session.Start(seed); err != nil {
		g.logger.Printf("%s[ERROR]%s starting game session: %s", config.LogErrorColor, config.LogColorReset, err)
		session.Stop()
		return uuid.Nil, err
	}

	id := uuid.New()
	ms := &managedSession{session: session, stop: make(chan struct{})}
	g.sessions[id] = ms
	go g.runTicks(id, ms)

	g.logger.Printf("%s[INFO]%s started game session %s (%dx%d, seed %d)",
		config.LogInfoColor, config.LogColorReset, id, width, height, seed)
	return id, nil
}

// runTicks drives one session at the configured rate until it is stopped.
func (g *GameSessionManager) runTicks(id uuid.UUID, ms *managedSession) {
	interval := time.Second / time.Duration(g.tickRate)
	dt := interval.Seconds()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ms.stop:
			return
		case <-ticker.C:
			ms.session.Tick(dt)
		}
	}
}

// Session returns the live session with the given ID.
func (g *GameSessionManager) Session(id uuid.UUID) (i.GameSession, error) {
	g.RLock()
	defer g.RUnlock()
	ms, ok := g.sessions[id]
	if !ok {
		return nil, ErrNoSession
	}
	return ms.session, nil
}

// EndSession stops a session's tick loop, tears its world down and removes it.
func (g *GameSessionManager) EndSession(id uuid.UUID) error {
	g.Lock()
	defer g.Unlock()
	ms, ok := g.sessions[id]
	if !ok {
		return ErrNoSession
	}
	close(ms.stop)
	ms.session.Stop()
	delete(g.sessions, id)
	g.logger.Printf("%s[INFO]%s ended game session %s", config.LogInfoColor, config.LogColorReset, id)
	return nil
}

// StopAll ends every live session, e.g. on shutdown.
func (g *GameSessionManager) StopAll() {
	g.Lock()
	defer g.Unlock()
	for id, ms := range g.sessions {
		close(ms.stop)
		ms.session.Stop()
		delete(g.sessions, id)
	}
}
