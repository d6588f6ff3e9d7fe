package port

import "context"

// SizeHints is the best-effort grow hint cache consulted when a container
// mounts. Implementations swallow their own failures.
type SizeHints interface {
	// Lookup returns the stored grow for a container, if any.
	Lookup(ctx context.Context, containerName string) (float64, bool)
	// Remember stores the grow for a container.
	Remember(ctx context.Context, containerName string, grow float64)
}
