package business

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"businessconnect/models"
	"businessconnect/services/policy"
	"businessconnect/services/storage"
	"businessconnect/utils"
)

// MaxImageSize is the largest accepted upload, in bytes.
const MaxImageSize = 5 << 20

// UploadImage stores a PNG on the image host for use as an icon or gallery image.
func (s *DefaultBusinessService) UploadImage(ctx context.Context, actor policy.Actor, upload ImageUpload) (string, error) {
	if upload.File == nil {
		return "", utils.BadRequest("No file uploaded")
	}
	if upload.Size > MaxImageSize {
		return "", utils.BadRequest("Image must be 5MB or smaller")
	}

	data, err := io.ReadAll(io.LimitReader(upload.File, MaxImageSize+1))
	if err != nil {
		return "", utils.BadRequest("Failed to read uploaded file")
	}
	if len(data) == 0 {
		return "", utils.BadRequest("No file uploaded")
	}
	if len(data) > MaxImageSize {
		return "", utils.BadRequest("Image must be 5MB or smaller")
	}
	if http.DetectContentType(data) != "image/png" {
		return "", utils.BadRequest("Only PNG images are allowed")
	}

	url, err := s.Images.UploadImage(ctx, bytes.NewReader(data), storage.BusinessImagesFolder)
	if errors.Is(err, storage.ErrNotConfigured) {
		return "", utils.ServiceUnavailable("Image uploads are not available", err)
	}
	if err != nil {
		return "", utils.Internal("Failed to upload image", err)
	}

	s.Activity.Record(ctx, actor.ID, models.ActivityBusinessUpdate,
		fmt.Sprintf("%s uploaded an image for business assets", actor.Name), nil)
	return url, nil
}
