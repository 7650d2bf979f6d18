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

// Component is a lifecycle-managed client.
type Component interface {
	// Name returns the unique registration name.
	Name() string

	// Start builds the component's resources.
	Start(ctx context.Context) error

	// Stop releases resources. It must be safe to call after a failed Start.
	Stop(ctx context.Context) error

	// Health returns the current health status.
	Health(ctx context.Context) Health
}

// Description is a one-line summary a component reports about itself.
type Description struct {
	// Name is the display name. Empty means the component's Name().
	Name string
	// Type categorizes the component, e.g. "http-client".
	Type string
	// Details is free text such as the base URL.
	Details string
}

// Describable is optionally implemented by components to report a
// Description.
type Describable interface {
	Describe() Description
}
