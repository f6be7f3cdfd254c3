package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable. Secrets are required; everything else falls back
// to a default suitable for a local single-process deployment.
type Config struct {
	Env          string // application environment (e.g. "dev", "prod")
	Port         string // HTTP port to listen on
	DBPath       string // path to the SQLite storage file
	Seed         bool   // load the demo data set on startup when the store is empty
	JWTSecret    string // secret used to sign JWTs
	AccessTTLMin int    // access token time-to-live in minutes
	BcryptCost   int    // bcrypt cost for password hashing
	AMQPURL      string // broker URL for purchase events; empty disables publishing
}

// Load reads configuration values from environment variables and returns a
// Config. JWT_SECRET is enforced by must(); a missing value causes the
// program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:          getenv("APP_ENV", "dev"),
		Port:         getenv("APP_PORT", "8080"),
		DBPath:       getenv("DB_PATH", "cinema.db"), // fixed local filename by default
		Seed:         getenv("APP_SEED", "false") == "true",
		JWTSecret:    must("JWT_SECRET"),
		AccessTTLMin: mustAtoi(getenv("ACCESS_TOKEN_TTL_MIN", "30")),
		BcryptCost:   mustAtoi(getenv("BCRYPT_COST", "10")),
		AMQPURL:      os.Getenv("RABBITMQ_URL"), // empty allowed
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// getenv returns the value of key or def when unset/empty.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func mustAtoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int in config: %q", s)
	}
	return n
}
