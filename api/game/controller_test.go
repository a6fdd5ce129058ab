package gameapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/beka-birhanu/maze3d/maze"
	"github.com/beka-birhanu/maze3d/service/i"
	"github.com/beka-birhanu/maze3d/world"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSession records the calls the controller makes.
type fakeSession struct {
	state     string
	intent    i.Intent
	resetSeed int64
}

func (f *fakeSession) Start(seed int64) error { return nil }

func (f *fakeSession) Tick(dt float64) {}

func (f *fakeSession) SetIntent(intent i.Intent) { f.intent = intent }

func (f *fakeSession) Reset(seed int64) error { f.resetSeed = seed; return nil }

func (f *fakeSession) State() string { return f.state }

func (f *fakeSession) Snapshot() i.GameSnapshot { return i.GameSnapshot{State: f.state, Version: 3} }

func (f *fakeSession) Geometry() *world.Geometry { return &world.Geometry{} }

func (f *fakeSession) Stop() {}

// fakeManager is an in-memory SessionManager over fakeSessions.
type fakeManager struct {
	sessions  map[uuid.UUID]*fakeSession
	createErr error
}

func (f *fakeManager) NewSession(width, height int, seed int64) (uuid.UUID, error) {
	if f.createErr != nil {
		return uuid.Nil, f.createErr
	}
	id := uuid.New()
	f.sessions[id] = &fakeSession{state: "Playing"}
	return id, nil
}

func (f *fakeManager) Session(id uuid.UUID) (i.GameSession, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, fmt.Errorf("no such session")
	}
	return s, nil
}

func (f *fakeManager) EndSession(id uuid.UUID) error {
	if _, ok := f.sessions[id]; !ok {
		return fmt.Errorf("no such session")
	}
	delete(f.sessions, id)
	return nil
}

func setupRouter(t *testing.T, manager *fakeManager) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	controller, err := NewGameController(manager, 10, 10)
	require.NoError(t, err)

	router := gin.New()
	controller.RegisterRoutes(router.Group("/api/v1"))
	return router
}

func doJSON(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateGame(t *testing.T) {
	manager := &fakeManager{sessions: make(map[uuid.UUID]*fakeSession)}
	router := setupRouter(t, manager)

	seed := int64(42)
	w := doJSON(router, http.MethodPost, "/api/v1/game/", CreateGameRequest{Width: 5, Height: 5, Seed: &seed})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp CreateGameResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEqual(t, uuid.Nil, resp.ID)
	assert.Equal(t, "Playing", resp.State)
}

func TestCreateGameRejectsBadDimensions(t *testing.T) {
	manager := &fakeManager{
		sessions:  make(map[uuid.UUID]*fakeSession),
		createErr: maze.ErrInvalidDimensions,
	}
	router := setupRouter(t, manager)

	w := doJSON(router, http.MethodPost, "/api/v1/game/", CreateGameRequest{Width: 1, Height: 5})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSessionRoutes(t *testing.T) {
	manager := &fakeManager{sessions: make(map[uuid.UUID]*fakeSession)}
	router := setupRouter(t, manager)

	id, err := manager.NewSession(5, 5, 1)
	require.NoError(t, err)
	session := manager.sessions[id]

	t.Run("state", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/api/v1/game/"+id.String()+"/state", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var snap i.GameSnapshot
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
		assert.Equal(t, "Playing", snap.State)
		assert.Equal(t, int64(3), snap.Version)
	})

	t.Run("info includes geometry", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/api/v1/game/"+id.String(), nil)
		require.Equal(t, http.StatusOK, w.Code)

		var info GameInfoResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
		assert.Equal(t, id, info.ID)
		assert.NotNil(t, info.Geometry)
	})

	t.Run("input stages intent", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/api/v1/game/"+id.String()+"/input",
			i.Intent{Forward: 1, Jump: true})
		require.Equal(t, http.StatusAccepted, w.Code)
		assert.Equal(t, 1.0, session.intent.Forward)
		assert.True(t, session.intent.Jump)
	})

	t.Run("reset forwards seed", func(t *testing.T) {
		seed := int64(99)
		w := doJSON(router, http.MethodPost, "/api/v1/game/"+id.String()+"/reset", ResetRequest{Seed: &seed})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, seed, session.resetSeed)
	})

	t.Run("end removes the session", func(t *testing.T) {
		w := doJSON(router, http.MethodDelete, "/api/v1/game/"+id.String(), nil)
		require.Equal(t, http.StatusNoContent, w.Code)

		w = doJSON(router, http.MethodGet, "/api/v1/game/"+id.String()+"/state", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("unknown id", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/api/v1/game/"+uuid.NewString()+"/state", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/api/v1/game/not-a-uuid/state", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
