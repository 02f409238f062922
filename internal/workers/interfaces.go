// Package workers runs the background jobs of the server process.
// It defines the Worker interface and a Workers aggregate that runs several
// workers side by side until their context is cancelled.
package workers

import "context"

// Worker is a background job.
//
// Run blocks until ctx is cancelled. Implementations must not return early
// on transient failures; they log and retry on the next tick instead.
type Worker interface {
	Run(ctx context.Context)
}
