// Package delivery defines the entry points through which the outside world
// reaches the application.
package delivery

import "context"

// Delivery is implemented by every transport the application serves on.
type Delivery interface {
	// Serve blocks, accepting requests until the context is canceled or the
	// transport is shut down.
	Serve(ctx context.Context) error
}
