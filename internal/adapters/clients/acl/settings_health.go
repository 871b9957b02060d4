package acl

import (
	"context"
	"fmt"
)

// Name returns the identifier used when this component is registered with
// the health registry.
func (c *SettingsClient) Name() string {
	return "settings-api"
}

// HealthCheck reports the settings API's availability from the circuit
// breaker state. No network call is made.
//
// This is downstream status, not readiness: the panels already surface
// backend failures to the user, and gating readiness on the breaker would
// keep it from ever seeing the traffic it needs to close again.
func (c *SettingsClient) HealthCheck(_ context.Context) error {
	state := c.req.CircuitBreakerState()
	switch state {
	case "closed":
		return nil
	case "half-open":
		return fmt.Errorf("%s: degraded (circuit breaker half-open)", c.Name())
	case "open":
		return fmt.Errorf("%s: failing (circuit breaker open)", c.Name())
	default:
		return fmt.Errorf("%s: unknown circuit breaker state %q", c.Name(), state)
	}
}
