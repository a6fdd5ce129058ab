package main

import (
	"fmt"
	"log"
	"os"

	"github.com/beka-birhanu/maze3d/api"
	gameapi "github.com/beka-birhanu/maze3d/api/game"
	api_i "github.com/beka-birhanu/maze3d/api/i"
	"github.com/beka-birhanu/maze3d/config"
	"github.com/beka-birhanu/maze3d/game"
	"github.com/beka-birhanu/maze3d/infrastruture/physics"
	"github.com/beka-birhanu/maze3d/service"
	"github.com/beka-birhanu/maze3d/service/i"
	"github.com/beka-birhanu/maze3d/world"
	"github.com/gin-gonic/gin"
)

// Global variables for dependencies
var (
	cfg            config.Config
	sessionManager i.SessionManager
	gameController api_i.Controller
	router         *api.Router
	appLogger      *log.Logger
)

// sessionFactory builds a game session with its own physics world for the
// requested maze dimensions.
func sessionFactory(sessionLogger *log.Logger) service.SessionFactory {
	return func(width, height int) (i.GameSession, error) {
		return game.NewSession(game.Config{
			MazeWidth:  width,
			MazeHeight: height,
			World: world.Config{
				CellSize:         cfg.CellSize,
				WallHeight:       cfg.WallHeight,
				WallThickness:    cfg.WallThickness,
				PlayerHalfHeight: cfg.PlayerHalfHeight,
				GoalRadius:       cfg.GoalRadius,
			},
			Player: game.PlayerConfig{
				Radius:     cfg.PlayerRadius,
				HalfHeight: cfg.PlayerHalfHeight,
				Mass:       cfg.PlayerMass,
				Friction:   cfg.PlayerFriction,
				MaxSpeed:   cfg.PlayerMaxSpeed,
				JumpSpeed:  cfg.PlayerJumpSpeed,
			},
			Physics: physics.New(),
			Logger:  sessionLogger,
		}), nil
	}
}

func initSessionManager() {
	sessionLogger := log.New(os.Stdout, fmt.Sprintf("%s[GAME]%s ", config.ColorCyan, config.ColorReset), log.LstdFlags)

	var err error
	sessionManager, err = service.NewGameSessionManager(&service.Config{
		SessionFactory: sessionFactory(sessionLogger),
		TickRate:       cfg.TickRate,
		Logger:         log.New(os.Stdout, fmt.Sprintf("%s[SESSION-MANAGER]%s ", config.ColorMagenta, config.ColorReset), log.LstdFlags),
	})
	if err != nil {
		appLogger.Printf("%s[ERROR]%s creating session manager: %v", config.LogErrorColor, config.LogColorReset, err)
		os.Exit(1)
	}
	appLogger.Printf("%s[INFO]%s session manager initialized", config.LogInfoColor, config.LogColorReset)
}

func initGameController() {
	var err error
	gameController, err = gameapi.NewGameController(sessionManager, cfg.MazeWidth, cfg.MazeHeight)
	if err != nil {
		appLogger.Printf("%s[ERROR]%s creating game controller: %v", config.LogErrorColor, config.LogColorReset, err)
		os.Exit(1)
	}
	appLogger.Printf("%s[INFO]%s game controller initialized", config.LogInfoColor, config.LogColorReset)
}

func initRouter() {
	router = api.NewRouter(api.Config{
		Addr:        fmt.Sprintf("%s:%v", cfg.HostIP, cfg.RESTPort),
		BaseURL:     "/api",
		StaticDir:   cfg.StaticDir,
		Controllers: []api_i.Controller{gameController},
	})
	appLogger.Printf("%s[INFO]%s router initialized", config.LogInfoColor, config.LogColorReset)
}

func main() {
	appLogger = log.New(os.Stdout, fmt.Sprintf("%s[APP]%s ", config.ColorGreen, config.ColorReset), log.LstdFlags)

	cfg = config.Load()
	gin.SetMode(cfg.GinMode)

	initSessionManager()
	initGameController()
	initRouter()

	// Run HTTP server
	if err := router.Run(); err != nil {
		appLogger.Printf("%s[ERROR]%s starting server: %v", config.LogErrorColor, config.LogColorReset, err)
		os.Exit(1)
	}
}
