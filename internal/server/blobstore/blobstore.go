// Package blobstore stores media binaries in an S3-compatible backend.
// The rest of the server only needs "store blob, get back a stable key and
// a retrieval URL" and "delete by key", so the surface is kept to that.
package blobstore

import (
	"context"
	"io"
)

// Store is the capability the media service depends on. S3Store is the
// production implementation; tests substitute an in-memory fake.
type Store interface {
	// Put uploads the blob under key and returns its public URL.
	Put(ctx context.Context, key, contentType string, body io.Reader) (string, error)

	// Delete removes the blob. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// PresignGet returns a short-lived download URL for the blob.
	PresignGet(ctx context.Context, key string) (string, error)
}
