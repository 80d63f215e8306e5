package storage

import (
	"context"
	"errors"
)

var ErrBlobNotFound = errors.New("blob not found")

// BlobStore keeps one opaque document per key. Each collection of the HR
// state is written as a whole under its own key.
type BlobStore interface {
	// Put replaces the blob stored under key
	Put(ctx context.Context, key string, data []byte) error

	// Get returns ErrBlobNotFound when nothing was stored under key
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete removes a blob; deleting a missing key is not an error
	Delete(ctx context.Context, key string) error

	// Exists checks if a blob exists
	Exists(ctx context.Context, key string) (bool, error)
}

// BatchPutter is implemented by stores that can write several blobs atomically.
type BatchPutter interface {
	PutMany(ctx context.Context, blobs map[string][]byte) error
}
