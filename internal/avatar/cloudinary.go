package avatar

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Uploader stores a user's avatar image and returns its public URL.
type Uploader interface {
	UploadAvatar(ctx context.Context, email string, file io.Reader) (string, error)
}

// CloudinaryUploader uploads avatars to Cloudinary under a per-user public
// ID so re-uploads overwrite the previous image.
type CloudinaryUploader struct {
	client *cloudinary.Cloudinary
}

// NewCloudinary creates an uploader from Cloudinary credentials.
func NewCloudinary(cloudName, apiKey, apiSecret string) (*CloudinaryUploader, error) {
	client, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}
	return &CloudinaryUploader{client: client}, nil
}

// UploadAvatar pushes the file and returns a 250x250 fill-cropped URL.
func (u *CloudinaryUploader) UploadAvatar(ctx context.Context, email string, file io.Reader) (string, error) {
	publicID := fmt.Sprintf("cloud_store/%s", email)
	_, err := u.client.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:  publicID,
		Overwrite: api.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("upload avatar: %w", err)
	}

	img, err := u.client.Image(publicID)
	if err != nil {
		return "", fmt.Errorf("build avatar url: %w", err)
	}
	img.Transformation = "c_fill,h_250,w_250"
	url, err := img.String()
	if err != nil {
		return "", fmt.Errorf("build avatar url: %w", err)
	}
	return url, nil
}
