package service

import (
	"errors"
	"io"
	"log"
	"sync/atomic"
	"testing"
	"time"

	"github.com/beka-birhanu/maze3d/service/i"
	"github.com/beka-birhanu/maze3d/world"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSession is a minimal GameSession recording lifecycle calls.
type stubSession struct {
	ticks    atomic.Int64
	stopped  atomic.Bool
	startErr error
}

func (s *stubSession) Start(seed int64) error { return s.startErr }

func (s *stubSession) Tick(dt float64) { s.ticks.Add(1) }

func (s *stubSession) SetIntent(i.Intent) {}

func (s *stubSession) Reset(seed int64) error { return nil }

func (s *stubSession) State() string { return "Playing" }

func (s *stubSession) Snapshot() i.GameSnapshot { return i.GameSnapshot{} }

func (s *stubSession) Geometry() *world.Geometry { return nil }

func (s *stubSession) Stop() { s.stopped.Store(true) }

func testManager(t *testing.T, factory SessionFactory) *GameSessionManager {
	t.Helper()
	m, err := NewGameSessionManager(&Config{
		SessionFactory: factory,
		TickRate:       60,
		Logger:         log.New(io.Discard, "", 0),
	})
	require.NoError(t, err)
	return m
}

func TestNewSessionRunsTickLoop(t *testing.T) {
	stub := &stubSession{}
	m := testManager(t, func(w, h int) (i.GameSession, error) { return stub, nil })

	id, err := m.NewSession(3, 3, 7)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, id)

	got, err := m.Session(id)
	require.NoError(t, err)
	assert.Same(t, i.GameSession(stub), got)

	assert.Eventually(t, func() bool { return stub.ticks.Load() > 2 },
		time.Second, 5*time.Millisecond, "the tick loop should be driving the session")

	require.NoError(t, m.EndSession(id))
	assert.True(t, stub.stopped.Load())

	_, err = m.Session(id)
	assert.ErrorIs(t, err, ErrNoSession)
	assert.ErrorIs(t, m.EndSession(id), ErrNoSession)
}

func TestNewSessionSurfacesStartFailure(t *testing.T) {
	startErr := errors.New("generation rejected")
	stub := &stubSession{startErr: startErr}
	m := testManager(t, func(w, h int) (i.GameSession, error) { return stub, nil })

	_, err := m.NewSession(1, 5, 7)
	assert.ErrorIs(t, err, startErr)
	assert.True(t, stub.stopped.Load(), "a session that failed to start must be torn down")
}

func TestSessionLimit(t *testing.T) {
	m := testManager(t, func(w, h int) (i.GameSession, error) { return &stubSession{}, nil })

	for i := 0; i < maxSessions; i++ {
		_, err := m.NewSession(3, 3, 1)
		require.NoError(t, err)
	}
	_, err := m.NewSession(3, 3, 1)
	assert.ErrorIs(t, err, ErrTooManySessions)

	m.StopAll()
	_, err = m.NewSession(3, 3, 1)
	assert.NoError(t, err)
}

func TestNewGameSessionManagerValidation(t *testing.T) {
	logger := log.New(io.Discard, "", 0)

	_, err := NewGameSessionManager(&Config{TickRate: 60, Logger: logger})
	assert.Error(t, err)

	_, err = NewGameSessionManager(&Config{
		SessionFactory: func(w, h int) (i.GameSession, error) { return &stubSession{}, nil },
		TickRate:       0,
		Logger:         logger,
	})
	assert.Error(t, err)
}
