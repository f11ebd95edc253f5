// Package system defines the lifecycle contract for long-running client
// components.
package system

import "context"

// Service is a lifecycle-managed component. Background components of the
// client (such as the exchange-rate refresher) implement it so the host can
// start and stop them deterministically.
type Service interface {
	Name() string
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}
