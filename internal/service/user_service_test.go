package service

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"contactsapi/internal/model"
)

// MockUploader is a mock implementation of avatar.Uploader.
type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) UploadAvatar(ctx context.Context, email string, file io.Reader) (string, error) {
	args := m.Called(ctx, email, file)
	return args.String(0), args.Error(1)
}

func TestUserService_UpdateAvatar(t *testing.T) {
	user := &model.User{ID: 1, Email: "user@example.com"}
	file := strings.NewReader("image-bytes")
	const url = "https://res.example.com/cloud_store/user@example.com"

	uploader := new(MockUploader)
	uploader.On("UploadAvatar", mock.Anything, "user@example.com", file).Return(url, nil)

	mockRepo := new(MockUserRepository)
	updated := &model.User{ID: 1, Email: "user@example.com", Avatar: url}
	mockRepo.On("UpdateAvatar", mock.Anything, "user@example.com", url).Return(updated, nil)

	svc := NewUserService(mockRepo, uploader)
	got, err := svc.UpdateAvatar(context.Background(), user, file)

	assert.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, url, got.Avatar)
	mockRepo.AssertExpectations(t)
	uploader.AssertExpectations(t)
}

func TestUserService_UpdateAvatar_UploadFailure(t *testing.T) {
	user := &model.User{ID: 1, Email: "user@example.com"}

	uploader := new(MockUploader)
	uploader.On("UploadAvatar", mock.Anything, "user@example.com", mock.Anything).Return("", assert.AnError)

	mockRepo := new(MockUserRepository)

	svc := NewUserService(mockRepo, uploader)
	got, err := svc.UpdateAvatar(context.Background(), user, strings.NewReader("image-bytes"))

	assert.Error(t, err)
	assert.Nil(t, got)
	// nothing is written when the upload itself fails
	mockRepo.AssertNotCalled(t, "UpdateAvatar")
}
