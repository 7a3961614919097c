package server

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/time/rate"
)

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	cfg := &Config{
		Address:         "",
		Port:            8080,
		RateLimit:       100, // 100 req/s
		RateLimitBurst:  200, // burst of 200
		MaxBodyBytes:    4 << 20,
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    30 * time.Second,
		IdleTimeout:     120 * time.Second,
		RequestTimeout:  10 * time.Second,
		ShutdownTimeout: 30 * time.Second,
	}

	// Override with environment variables if set
	if portStr := os.Getenv("PORT"); portStr != "" {
		var port int
		if _, err := fmt.Sscanf(portStr, "%d", &port); err == nil {
			cfg.Port = port
		}
	}

	if rlStr := os.Getenv("RATE_LIMIT"); rlStr != "" {
		var rl float64
		if _, err := fmt.Sscanf(rlStr, "%f", &rl); err == nil && rl > 0 {
			cfg.RateLimit = rate.Limit(rl)
		}
	}

	return cfg
}
