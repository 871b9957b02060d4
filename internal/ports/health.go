package ports

import "context"

// HealthChecker is implemented by components that can report their health,
// such as the settings API client.
type HealthChecker interface {
	// Name identifies the component in readiness output (e.g. "settings-api").
	Name() string

	// HealthCheck returns nil when healthy. It must respect ctx deadlines.
	HealthCheck(ctx context.Context) error
}

// HealthRegistry collects checkers for the readiness endpoint.
type HealthRegistry interface {
	Register(checker HealthChecker)

	// CheckAll runs every checker and returns results keyed by name. A nil
	// value means healthy.
	CheckAll(ctx context.Context) map[string]error
}
