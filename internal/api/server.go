package api

import "github.com/vytor/hippomemory/internal/metrics"

// Server serves the game's static files from WebRoot.
type Server struct {
	WebRoot            string
	Production         bool
	RateLimitPerMinute int
	Metrics            *metrics.Metrics
}
