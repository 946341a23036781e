package secondary

import "context"

// ResourceSpec carries the document metadata the engine is allowed to see.
// Content bytes are opaque.
type ResourceSpec struct {
	Filename string
	MimeType string
}

// ContentStore defines the secondary port to the external content-addressed
// storage service.
type ContentStore interface {
	// Put stores content and returns an opaque reference.
	Put(ctx context.Context, content []byte, spec ResourceSpec) (string, error)

	// Get retrieves content and its metadata by reference.
	Get(ctx context.Context, ref string) ([]byte, *ResourceSpec, error)
}
