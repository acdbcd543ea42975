package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration values.  Each field corresponds
// to an environment variable.  The web client needs very little: where it
// listens, where the backend lives, and how sessions are signed.
type Config struct {
	Env           string        // application environment (e.g. "dev", "prod")
	Port          string        // HTTP port to listen on
	BackendURL    string        // base URL of the GoTicket REST backend
	SessionSecret string        // secret used to sign session cookies
	SessionTTL    time.Duration // session cookie lifetime
	HTTPTimeout   time.Duration // per-request timeout for backend calls
	StatsRefresh  time.Duration // manager dashboard stats poll interval
	WorkflowTTL   time.Duration // idle TTL for per-session booking workflows
}

// Load reads configuration from the environment, after sourcing a local
// .env file if one exists.  Required variables are enforced by must();
// missing values exit with a fatal log message so a misconfigured instance
// never serves traffic.
func Load() Config {
	_ = godotenv.Load()
	return Config{
		Env:           getenv("APP_ENV", "dev"),
		Port:          getenv("APP_PORT", "3000"),
		BackendURL:    must("BACKEND_URL"),
		SessionSecret: must("SESSION_SECRET"),
		SessionTTL:    getdur("SESSION_TTL", 12*time.Hour),
		HTTPTimeout:   getdur("HTTP_TIMEOUT", 15*time.Second),
		StatsRefresh:  getdur("STATS_REFRESH", 30*time.Second),
		WorkflowTTL:   getdur("WORKFLOW_TTL", 30*time.Minute),
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getdur(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("invalid duration for %s: %q", key, v)
	}
	return d
}
