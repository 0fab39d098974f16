package blobstore

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
)

// Store is the blob storage capability used for media and avatar objects:
// persist bytes under a path hint and get back a public URL, or delete by
// that URL. Deletion on blip removal is best-effort at the call site.
type Store interface {
	Store(ctx context.Context, data []byte, pathHint string) (string, error)
	Delete(ctx context.Context, objectURL string) error
}

// BucketStore implements Store on a Cloud Storage bucket (the Firebase
// project's default bucket).
type BucketStore struct {
	bucket     *storage.BucketHandle
	bucketName string
}

// NewBucketStore creates a Store over the given bucket
func NewBucketStore(bucket *storage.BucketHandle, bucketName string) *BucketStore {
	return &BucketStore{bucket: bucket, bucketName: bucketName}
}

// Store writes the bytes under pathHint with a generated object name and
// returns the object's public URL.
func (s *BucketStore) Store(ctx context.Context, data []byte, pathHint string) (string, error) {
	objectName := fmt.Sprintf("%s/%s", strings.Trim(pathHint, "/"), uuid.NewString())

	w := s.bucket.Object(objectName).NewWriter(ctx)
	if _, err := w.Write(data); err != nil {
		w.Close()
		return "", fmt.Errorf("writing object %s: %w", objectName, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalizing object %s: %w", objectName, err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucketName, objectName), nil
}

// Delete removes the object a previously returned URL points at
func (s *BucketStore) Delete(ctx context.Context, objectURL string) error {
	parsed, err := url.Parse(objectURL)
	if err != nil {
		return fmt.Errorf("parsing object URL: %w", err)
	}

	objectName := strings.TrimPrefix(parsed.Path, "/"+s.bucketName+"/")
	objectName = strings.TrimPrefix(objectName, "/")
	if objectName == "" {
		return fmt.Errorf("object URL %q has no object path", objectURL)
	}

	return s.bucket.Object(objectName).Delete(ctx)
}
