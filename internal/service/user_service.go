package service

import (
	"context"
	"fmt"
	"io"

	"contactsapi/internal/avatar"
	"contactsapi/internal/model"
	"contactsapi/internal/repository"
)

// UserService handles profile operations on the authenticated user.
type UserService interface {
	UpdateAvatar(ctx context.Context, user *model.User, file io.Reader) (*model.User, error)
}

type userService struct {
	users    repository.UserRepository
	uploader avatar.Uploader
}

// NewUserService creates a new user service.
func NewUserService(users repository.UserRepository, uploader avatar.Uploader) UserService {
	return &userService{users: users, uploader: uploader}
}

// UpdateAvatar uploads the image and stores its delivery URL on the user.
func (s *userService) UpdateAvatar(ctx context.Context, user *model.User, file io.Reader) (*model.User, error) {
	url, err := s.uploader.UploadAvatar(ctx, user.Email, file)
	if err != nil {
		return nil, fmt.Errorf("upload avatar: %w", err)
	}
	updated, err := s.users.UpdateAvatar(ctx, user.Email, url)
	if err != nil {
		return nil, fmt.Errorf("store avatar url: %w", err)
	}
	return updated, nil
}
