// Package delivery defines the contract every transport front of the
// application satisfies.
package delivery

import "context"

// Delivery is a long-running transport (an HTTP server) started by main.
type Delivery interface {
	Serve(ctx context.Context) error
}
