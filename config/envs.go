package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	HostIP        string        // Host IP for the server
	RESTPort      int           // Port for the REST API
	GinMode       string        // Mode for the Gin framework (e.g., release, debug, test)
	DBHost        string        // Hostname or IP address for the database
	DBPort        int           // Port number for the database
	DBUser        string        // Username for the database
	DBPassword    string        // Password for the database
	DBName        string        // Name of the database
	RedisAddr     string        // host:port of the snapshot cache
	RedisPassword string        // Password for the snapshot cache
	SnapshotTTL   time.Duration // How long cached snapshots live
	JWTSecret     string        // Secret key for JWT signing
	JWTIssuer     string        // Issuer claim for JWTs
	MaxMazeSize   int           // Largest accepted grid dimension
	StepInterval  time.Duration // Default pace of the watch stream
}

// Load reads configuration from the environment, after loading a .env file
// when one is present.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	env := &reader{}
	c := Config{
		HostIP:        env.mustGet("HOST_IP"),
		RESTPort:      env.mustGetInt("REST_PORT"),
		GinMode:       getEnvWithDefault("GIN_MODE", "release"),
		DBHost:        env.mustGet("DB_HOST"),
		DBPort:        env.mustGetInt("DB_PORT"),
		DBUser:        env.mustGet("DB_USER"),
		DBPassword:    env.mustGet("DB_PASS"),
		DBName:        env.mustGet("DB_NAME"),
		RedisAddr:     env.mustGet("REDIS_ADDR"),
		RedisPassword: getEnvWithDefault("REDIS_PASSWORD", ""),
		SnapshotTTL:   time.Duration(env.getIntWithDefault("SNAPSHOT_TTL_SECONDS", 3600)) * time.Second,
		JWTSecret:     env.mustGet("JWT_SECRET"),
		JWTIssuer:     env.mustGet("JWT_ISSUER"),
		MaxMazeSize:   env.getIntWithDefault("MAX_MAZE_SIZE", 64),
		StepInterval:  time.Duration(env.getIntWithDefault("STEP_INTERVAL_MS", 100)) * time.Millisecond,
	}
	if env.err != nil {
		return Config{}, env.err
	}

	if c.MaxMazeSize < 1 {
		return Config{}, fmt.Errorf("MAX_MAZE_SIZE must be positive, got %d", c.MaxMazeSize)
	}
	if c.StepInterval <= 0 {
		return Config{}, fmt.Errorf("STEP_INTERVAL_MS must be positive, got %s", c.StepInterval)
	}
	return c, nil
}

// reader collects the first lookup failure so Load can report it once.
type reader struct {
	err error
}

// mustGet retrieves the value of a required environment variable.
func (r *reader) mustGet(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists && r.err == nil {
		r.err = fmt.Errorf("environment variable %s is not set", key)
	}
	return value
}

// mustGetInt retrieves a required environment variable as an integer.
func (r *reader) mustGetInt(key string) int {
	valueStr := r.mustGet(key)
	if valueStr == "" {
		return 0
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil && r.err == nil {
		r.err = fmt.Errorf("environment variable %s must be an integer: %w", key, err)
	}
	return value
}

// getIntWithDefault retrieves an optional integer environment variable.
func (r *reader) getIntWithDefault(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil && r.err == nil {
		r.err = fmt.Errorf("environment variable %s must be an integer: %w", key, err)
	}
	return value
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
