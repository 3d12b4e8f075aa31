package storage

import (
	"context"
	"fmt"
	"io"

	"businessconnect/config"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const (
	// BusinessImagesFolder holds gallery and icon uploads.
	BusinessImagesFolder = "business_images"
)

// CloudinaryStore implements ImageStore on Cloudinary.
type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryStore builds a store from the configured credentials.
func NewCloudinaryStore() (*CloudinaryStore, error) {
	cfg := config.AppConfig
	if cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
		return nil, fmt.Errorf("cloudinary credentials not set in configuration: %w", ErrNotConfigured)
	}
	cld, err := cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return &CloudinaryStore{cld: cld}, nil
}

// UploadImage uploads a PNG into folder and returns its secure URL.
func (s *CloudinaryStore) UploadImage(ctx context.Context, file io.Reader, folder string) (string, error) {
	params := uploader.UploadParams{
		Folder:       folder,
		ResourceType: "image",
		Format:       "png",
	}
	result, err := s.cld.Upload.Upload(ctx, file, params)
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("failed to upload image: %s", result.Error.Message)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("failed to upload image: no URL returned")
	}
	return result.SecureURL, nil
}

// DeleteImage destroys an image by public id.
func (s *CloudinaryStore) DeleteImage(ctx context.Context, publicID string) error {
	result, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("failed to delete image %s: %w", publicID, err)
	}
	if result.Error.Message != "" {
		return fmt.Errorf("failed to delete image %s: %s", publicID, result.Error.Message)
	}
	return nil
}
