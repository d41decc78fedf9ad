package avatar

import (
	"context"
	"errors"
	"io"
)

// ErrNotConfigured is returned when no image host credentials were provided.
var ErrNotConfigured = errors.New("avatar uploads are not configured")

// DisabledUploader rejects uploads. It stands in when Cloudinary credentials
// are absent so the rest of the API can still run.
type DisabledUploader struct{}

func (DisabledUploader) UploadAvatar(ctx context.Context, email string, file io.Reader) (string, error) {
	return "", ErrNotConfigured
}
