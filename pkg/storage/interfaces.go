package storage

import (
	"context"
	"io"
)

// UploadResult is the permanent reference the object store assigns to a blob.
// PublicID is what Delete needs to remove it again.
type UploadResult struct {
	URL      string
	PublicID string
}

type ObjectStorage interface {
	Upload(ctx context.Context, filename string, src io.Reader) (*UploadResult, error)
	Delete(ctx context.Context, publicID string) error
}
