package services

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/parla-app/parla-backend/pkg/utils"
)

// MaxAvatarBytes is the largest accepted avatar image (5 MB source size).
const MaxAvatarBytes = 5 << 20

// AvatarIngester turns an uploaded image into the string stored on the
// user record. Implementations must reject images over MaxAvatarBytes.
type AvatarIngester interface {
	Ingest(ctx context.Context, contentType string, data []byte) (string, error)
}

func checkAvatarSize(data []byte) error {
	if len(data) > MaxAvatarBytes {
		return &utils.ValidationError{
			Field:   "avatar",
			Code:    utils.CodeSizeExceeded,
			Message: "Image must be smaller than 5 MB",
		}
	}
	return nil
}

// InlineIngester encodes the image as a data URI stored directly on the
// record, mirroring how the web client persists avatars locally.
type InlineIngester struct{}

func NewInlineIngester() *InlineIngester {
	return &InlineIngester{}
}

func (s *InlineIngester) Ingest(_ context.Context, contentType string, data []byte) (string, error) {
	if err := checkAvatarSize(data); err != nil {
		return "", err
	}
	if contentType == "" {
		contentType = "image/png"
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// CloudinaryIngester uploads avatars to Cloudinary and stores the
// secure URL instead of inline image data.
type CloudinaryIngester struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryIngester(cloudName, apiKey, apiSecret string) (*CloudinaryIngester, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}

	return &CloudinaryIngester{cld: cld, folder: "avatars"}, nil
}

func (s *CloudinaryIngester) Ingest(ctx context.Context, _ string, data []byte) (string, error) {
	if err := checkAvatarSize(data); err != nil {
		return "", err
	}

	uploadResult, err := s.cld.Upload.Upload(ctx, data, uploader.UploadParams{
		Folder:       s.folder,
		ResourceType: "image",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to Cloudinary: %w", err)
	}

	return uploadResult.SecureURL, nil
}
