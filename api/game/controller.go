package gameapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/beka-birhanu/maze3d/maze"
	"github.com/beka-birhanu/maze3d/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GameController manages game session operations over HTTP.
type GameController struct {
	sessionManager i.SessionManager
	defaultWidth   int
	defaultHeight  int
}

// NewGameController initializes a GameController. The default dimensions are
// used when a create request omits them.
func NewGameController(sm i.SessionManager, defaultWidth, defaultHeight int) (*GameController, error) {
	if sm == nil {
		return nil, errors.New("session manager is required")
	}
	return &GameController{
		sessionManager: sm,
		defaultWidth:   defaultWidth,
		defaultHeight:  defaultHeight,
	}, nil
}

// RegisterRoutes registers the game session routes.
func (gc *GameController) RegisterRoutes(route *gin.RouterGroup) {
	games := route.Group("/game")
	{
		games.POST("/", gc.create)
		games.GET("/:ID", gc.info)
		games.GET("/:ID/state", gc.state)
		games.POST("/:ID/input", gc.input)
		games.POST("/:ID/reset", gc.reset)
		games.DELETE("/:ID", gc.end)
		games.GET("/:ID/ws", gc.stream)
	}
}

// create handles session creation requests.
func (gc *GameController) create(ctx *gin.Context) {
	var request CreateGameRequest
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	width, height := request.Width, request.Height
	if width == 0 {
		width = gc.defaultWidth
	}
	if height == 0 {
		height = gc.defaultHeight
	}

	seed := time.Now().UnixNano()
	if request.Seed != nil {
		seed = *request.Seed
	}

	id, err := gc.sessionManager.NewSession(width, height, seed)
	if err != nil {
		if errors.Is(err, maze.ErrInvalidDimensions) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while creating game session"})
		return
	}

	session, err := gc.sessionManager.Session(id)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while creating game session"})
		return
	}

	ctx.JSON(http.StatusCreated, CreateGameResponse{ID: id, State: session.State()})
}

// sessionFromPath resolves the session named by the :ID path parameter and
// returns it with its parsed id.
func (gc *GameController) sessionFromPath(ctx *gin.Context) (i.GameSession, uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return nil, uuid.Nil, false
	}

	session, err := gc.sessionManager.Session(id)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "no such session"})
		return nil, uuid.Nil, false
	}
	return session, id, true
}

// info returns the world layout and the latest snapshot of a session.
func (gc *GameController) info(ctx *gin.Context) {
	session, id, ok := gc.sessionFromPath(ctx)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, GameInfoResponse{
		ID:       id,
		Geometry: session.Geometry(),
		Snapshot: session.Snapshot(),
	})
}

// state returns the latest snapshot of a session.
func (gc *GameController) state(ctx *gin.Context) {
	session, _, ok := gc.sessionFromPath(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, session.Snapshot())
}

// input stages the intent applied on the session's next tick.
func (gc *GameController) input(ctx *gin.Context) {
	session, _, ok := gc.sessionFromPath(ctx)
	if !ok {
		return
	}

	var intent i.Intent
	if err := ctx.ShouldBind(&intent); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session.SetIntent(intent)
	ctx.Status(http.StatusAccepted)
}

// reset restarts a session with a fresh maze.
func (gc *GameController) reset(ctx *gin.Context) {
	session, _, ok := gc.sessionFromPath(ctx)
	if !ok {
		return
	}

	var request ResetRequest
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	seed := time.Now().UnixNano()
	if request.Seed != nil {
		seed = *request.Seed
	}

	if err := session.Reset(seed); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while resetting game session"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"state": session.State()})
}

// end stops a session and destroys its world.
func (gc *GameController) end(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return
	}

	if err := gc.sessionManager.EndSession(id); err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "no such session"})
		return
	}
	ctx.Status(http.StatusNoContent)
}
