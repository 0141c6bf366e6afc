package port

import "context"

// HTTPRenderer mediates between HTTP handlers and the descriptor getter use
// case. It provides caching capabilities and returns both the JSON
// representation of the result as well as an ETag value derived from it.
type HTTPRenderer interface {
	// RenderGetDescriptor returns the cached JSON result and its ETag if
	// available or executes the underlying use case and caches the output
	// otherwise.
	RenderGetDescriptor(ctx context.Context, getter DescriptorGetter, id int64) ([]byte, string, error)
}
