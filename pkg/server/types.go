package server

import (
	"time"

	"golang.org/x/time/rate"
)

// Config holds server configuration
type Config struct {
	// Server configuration
	Address string
	Port    int

	// Rate limiting configuration
	RateLimit      rate.Limit // requests per second
	RateLimitBurst int        // burst size

	// Request limits
	MaxBodyBytes int64

	// Timeouts
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

// ValidateRequest is the body of POST /v1/validate. Schema and Config are
// embedded as JSON values and decoded through the shared document parser,
// which keeps key order intact.
type ValidateRequest struct {
	Schema         rawDocument `json:"schema"`
	Config         rawDocument `json:"config"`
	AllowExtraKeys *bool       `json:"allow_extra_keys,omitempty"`
}

// CheckSchemaRequest is the body of POST /v1/schema/check.
type CheckSchemaRequest struct {
	Schema rawDocument `json:"schema"`
}
