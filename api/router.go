package api

import (
	"net/http"

	"github.com/beka-birhanu/maze3d/api/i"
	"github.com/gin-gonic/gin"
)

// Router manages the HTTP server and its dependencies: the game controllers
// and the static browser assets.
type Router struct {
	addr        string
	baseURL     string
	staticDir   string
	controllers []i.Controller
}

// Config holds configuration settings for creating a new Router instance.
type Config struct {
	Addr        string // Address to listen on
	BaseURL     string // Base URL for API routes
	StaticDir   string // Directory of browser assets, served under /app
	Controllers []i.Controller
}

// NewRouter creates a new Router instance with the given configuration.
func NewRouter(config Config) *Router {
	return &Router{
		addr:        config.Addr,
		baseURL:     config.BaseURL,
		staticDir:   config.StaticDir,
		controllers: config.Controllers,
	}
}

// Run starts the HTTP server. API routes are grouped under the base URL and
// the browser build is served under /app, with the root redirecting there.
func (r *Router) Run() error {
	gin.ForceConsoleColor()
	router := gin.Default()

	// Setting up routes under baseURL
	api := router.Group(r.baseURL)
	{
		routes := api.Group("/v1")
		{
			for _, c := range r.controllers {
				c.RegisterRoutes(routes)
			}
		}
	}

	if r.staticDir != "" {
		router.Static("/app", r.staticDir)
		router.GET("/", func(ctx *gin.Context) {
			ctx.Redirect(http.StatusFound, "/app")
		})
	}

	return router.Run(r.addr)
}
