// Package gateway adapts the external text-completion service. The service
// may be absent entirely (no credentials), which is modelled as its own
// Gateway implementation rather than a nil client.
package gateway

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned by the unconfigured gateway. A configuration
// problem is distinct from a failed remote call and maps to a different HTTP
// status and escalation behavior upstream.
var ErrNotConfigured = errors.New("completion service is not configured")

// Gateway is the boundary to the text-completion service. Complete sends the
// ordered message texts with a system instruction and returns the reply text.
// Exactly one attempt is made; retries are not the gateway's concern.
type Gateway interface {
	Configured() bool
	Complete(ctx context.Context, systemInstruction string, messages []string) (string, error)
}

// Unconfigured returns the gateway used when no credentials are present.
func Unconfigured() Gateway {
	return unconfigured{}
}

type unconfigured struct{}

func (unconfigured) Configured() bool { return false }

func (unconfigured) Complete(context.Context, string, []string) (string, error) {
	return "", ErrNotConfigured
}
