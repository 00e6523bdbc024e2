// Package vision abstracts the external vision-capable completion service
// used to estimate water content from food photos.
package vision

import (
	"context"
	"io"
)

// FileRef is the opaque reference the service hands back for an uploaded image.
type FileRef struct {
	ID string
}

// Request is a single-turn completion request: one instruction plus one
// previously uploaded image.
type Request struct {
	Model       string
	Instruction string
	FileID      string
}

// Client abstracts completion-service providers.
type Client interface {
	UploadImage(ctx context.Context, fileName string, r io.Reader) (FileRef, error)
	Complete(ctx context.Context, req Request) (Response, error)
}
