package storage

import "context"

// Provider flags, chosen once at process start via STORAGE_PROVIDER.
const (
	ProviderBucket = "bucket"
	ProviderCDN    = "cdn"
)

// BlobStorage is the uniform upload/delete contract over interchangeable
// backends. Upload returns the backend's canonical public URL for the
// stored object. A single failed attempt surfaces directly; there is no
// retry or fallback between backends.
type BlobStorage interface {
	Upload(ctx context.Context, localPath, key, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}
