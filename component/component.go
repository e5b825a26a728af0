// Package component defines the lifecycle contract shared by the gallery's
// infrastructure pieces (storage, redis, listing repository, HTTP server) and
// a registry that starts them in order and stops them in reverse.
package component

import "context"

// HealthStatus represents the health state of a component.
type HealthStatus string

const (
	StatusHealthy   HealthStatus = "healthy"
	StatusUnhealthy HealthStatus = "unhealthy"
	StatusDegraded  HealthStatus = "degraded"
)

// Health holds health information for a component.
type Health struct {
	Name    string       `json:"name"`
	Status  HealthStatus `json:"status"`
	Message string       `json:"message,omitempty"`
}

// Component is a lifecycle-managed infrastructure piece.
type Component interface {
	// Name returns the unique registration name.
	Name() string
	// Start connects or allocates resources.
	Start(ctx context.Context) error
	// Stop releases resources.
	Stop(ctx context.Context) error
	// Health reports the current status.
	Health(ctx context.Context) Health
}

// Description is the one-line summary logged at startup.
type Description struct {
	Name    string
	Type    string
	Details string
}

// Describable is optionally implemented by components to self-report in the
// startup log.
type Describable interface {
	Describe() Description
}
