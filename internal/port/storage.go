package port

import (
	"context"
	"io"
)

// StoreInput encapsulates the parameters needed to archive an object.
type StoreInput struct {
	Key         string
	Body        io.Reader
	ContentType string
	Size        int64
}

// StoreOutput contains the result of a successful archive write.
type StoreOutput struct {
	Location string
}

// ObjectStorage abstracts where rendered invoice PDFs are archived.
type ObjectStorage interface {
	Store(ctx context.Context, input StoreInput) (*StoreOutput, error)
	// PresignedURL returns a time-limited download URL for the object.
	// Local backends return a file path instead.
	PresignedURL(ctx context.Context, key string, expirySeconds int64) (string, error)
}
