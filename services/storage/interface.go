package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotConfigured is returned by the placeholder store when no image host credentials are set.
var ErrNotConfigured = errors.New("image host is not configured")

// ImageStore defines the image host operations the API needs.
type ImageStore interface {
	// UploadImage stores a PNG under folder and returns its public delivery URL.
	UploadImage(ctx context.Context, file io.Reader, folder string) (string, error)
	// DeleteImage removes an image by its public id.
	DeleteImage(ctx context.Context, publicID string) error
}

// unconfiguredStore stands in when Cloudinary credentials are absent.
type unconfiguredStore struct{}

func (unconfiguredStore) UploadImage(context.Context, io.Reader, string) (string, error) {
	return "", ErrNotConfigured
}

func (unconfiguredStore) DeleteImage(context.Context, string) error {
	return ErrNotConfigured
}

// Unconfigured returns an ImageStore whose every call fails with ErrNotConfigured.
func Unconfigured() ImageStore {
	return unconfiguredStore{}
}
