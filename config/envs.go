package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	HostIP     string // Host IP for the server
	RESTPort   int    // Port for the REST API
	StaticDir  string // Directory of browser assets served at the root path
	GinMode    string // Mode for the Gin framework (e.g., release, debug, test)
	MazeWidth  int    // Default maze width (number of columns)
	MazeHeight int    // Default maze height (number of rows)
	TickRate   int    // Simulation ticks per second

	CellSize         float64 // World units per grid cell
	WallHeight       float64 // Wall height in world units
	WallThickness    float64 // Wall thickness in world units
	PlayerHalfHeight float64 // Half-height of the player capsule
	PlayerRadius     float64 // Radius of the player capsule
	PlayerMass       float64 // Mass of the player body
	PlayerFriction   float64 // Ground friction coefficient of the player body
	PlayerMaxSpeed   float64 // Horizontal speed clamp in world units per second
	PlayerJumpSpeed  float64 // Upward velocity applied on a grounded jump
	GoalRadius       float64 // Radius of the goal trigger volume
}

// Load initializes and returns the application configuration.
// It loads environment variables from a .env file when one exists;
// every value carries a default so an empty environment still runs.
func Load() Config {
	// Load .env file if available
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	return Config{
		HostIP:     getEnvWithDefault("HOST_IP", "0.0.0.0"),
		RESTPort:   getEnvAsIntWithDefault("REST_PORT", 8080),
		StaticDir:  getEnvWithDefault("STATIC_DIR", "./web/dist"),
		GinMode:    getEnvWithDefault("GIN_MODE", "release"),
		MazeWidth:  getEnvAsIntWithDefault("MAZE_WIDTH", 10),
		MazeHeight: getEnvAsIntWithDefault("MAZE_HEIGHT", 10),
		TickRate:   getEnvAsIntWithDefault("TICK_RATE", 30),

		CellSize:         getEnvAsFloatWithDefault("CELL_SIZE", 2.0),
		WallHeight:       getEnvAsFloatWithDefault("WALL_HEIGHT", 2.5),
		WallThickness:    getEnvAsFloatWithDefault("WALL_THICKNESS", 0.2),
		PlayerHalfHeight: getEnvAsFloatWithDefault("PLAYER_HALF_HEIGHT", 0.9),
		PlayerRadius:     getEnvAsFloatWithDefault("PLAYER_RADIUS", 0.3),
		PlayerMass:       getEnvAsFloatWithDefault("PLAYER_MASS", 70),
		PlayerFriction:   getEnvAsFloatWithDefault("PLAYER_FRICTION", 6),
		PlayerMaxSpeed:   getEnvAsFloatWithDefault("PLAYER_MAX_SPEED", 4.5),
		PlayerJumpSpeed:  getEnvAsFloatWithDefault("PLAYER_JUMP_SPEED", 5),
		GoalRadius:       getEnvAsFloatWithDefault("GOAL_RADIUS", 0.6),
	}
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsIntWithDefault retrieves the value of an environment variable as an integer,
// or returns a default value if not set. Logs a fatal error if the value cannot be parsed.
func getEnvAsIntWithDefault(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}

// getEnvAsFloatWithDefault retrieves the value of an environment variable as a float,
// or returns a default value if not set. Logs a fatal error if the value cannot be parsed.
func getEnvAsFloatWithDefault(key string, defaultValue float64) float64 {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be a number: %v", key, err)
	}
	return value
}
