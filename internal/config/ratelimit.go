package config

import (
	"strconv"
	"time"
)

// LoginRateConfig bounds login attempts per client address over a fixed
// window.  Credentials are forwarded to the backend, so this limiter is
// only a brake on brute-forcing through this front end; it disables
// itself without Redis.
type LoginRateConfig struct {
	Enabled  bool
	Attempts int
	Window   time.Duration
	Prefix   string
}

// LoadLoginRateConfig reads limiter settings from the environment.
func LoadLoginRateConfig() LoginRateConfig {
	cfg := LoginRateConfig{
		Enabled:  getenv("LOGIN_RATE_ENABLED", "true") == "true",
		Attempts: 10,
		Window:   getdur("LOGIN_RATE_WINDOW", time.Minute),
		Prefix:   getenv("LOGIN_RATE_PREFIX", "lr"),
	}
	if v := getenv("LOGIN_RATE_ATTEMPTS", ""); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Attempts = n
		}
	}
	return cfg
}
