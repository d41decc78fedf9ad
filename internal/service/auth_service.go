package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"contactsapi/internal/auth"
	"contactsapi/internal/avatar"
	apperrors "contactsapi/internal/errors"
	"contactsapi/internal/mailer"
	"contactsapi/internal/model"
	"contactsapi/internal/repository"
)

// TokenPair is the credential set returned by login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// AuthService handles signup, login, refresh rotation and email confirmation.
type AuthService interface {
	Signup(ctx context.Context, username, email, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	ConfirmEmail(ctx context.Context, token string) (string, error)
	RequestEmail(ctx context.Context, email string) (string, error)
}

type authService struct {
	users   repository.UserRepository
	tokens  *auth.TokenService
	mail    mailer.Mailer
	baseURL string
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, tokens *auth.TokenService, mail mailer.Mailer, baseURL string) AuthService {
	return &authService{
		users:   users,
		tokens:  tokens,
		mail:    mail,
		baseURL: baseURL,
	}
}

// Signup creates an unconfirmed user and queues a verification email.
// The email send is fire and forget; its failure never fails the signup.
func (s *authService) Signup(ctx context.Context, username, email, password string) (*model.User, error) {
	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrAccountExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
		Avatar:       avatar.GravatarURL(email),
		Role:         model.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// a concurrent signup can slip past the existence check and lose
		// the race at the unique email index
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrAccountExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.dispatchVerification(user.Email, user.Username)

	return user, nil
}

// Login authenticates a confirmed user and rotates in a fresh token pair.
func (s *authService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.ErrInvalidEmail
	}
	if !user.Confirmed {
		return nil, apperrors.ErrEmailNotConfirmed
	}
	if !auth.VerifyPassword(password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidPassword
	}
	return s.rotate(ctx, user)
}

// Refresh validates a refresh token and rotates the pair. A presented token
// that no longer matches the stored one signals reuse of a rotated token:
// the stored token is cleared so the session cannot be resurrected.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	email, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.ErrCredentials
	}

	if user.RefreshToken == nil || *user.RefreshToken != refreshToken {
		if err := s.users.UpdateRefreshToken(ctx, user, nil); err != nil {
			log.Printf("clear refresh token for %s: %v", user.Email, err)
		}
		return nil, apperrors.ErrInvalidRefreshToken
	}

	return s.rotate(ctx, user)
}

// ConfirmEmail flips the confirmed flag for the token's subject. Confirming
// an already-confirmed address is an idempotent success with no write.
func (s *authService) ConfirmEmail(ctx context.Context, token string) (string, error) {
	email, err := s.tokens.VerifyEmailToken(token)
	if err != nil {
		return "", err
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", apperrors.ErrVerification
	}
	if user.Confirmed {
		return "Your email is already confirmed", nil
	}
	if err := s.users.ConfirmEmail(ctx, email); err != nil {
		return "", fmt.Errorf("confirm email: %w", err)
	}
	return "Email confirmed", nil
}

// RequestEmail re-queues a verification email for an unconfirmed account.
// The response does not reveal whether the address exists.
func (s *authService) RequestEmail(ctx context.Context, email string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "Check your email for confirmation.", nil
	}
	if user.Confirmed {
		return "Your email is already confirmed", nil
	}
	s.dispatchVerification(user.Email, user.Username)
	return "Check your email for confirmation.", nil
}

// rotate issues a fresh access+refresh pair and persists the new refresh
// token as the user's only valid one.
func (s *authService) rotate(ctx context.Context, user *model.User) (*TokenPair, error) {
	accessToken, err := s.tokens.IssueAccessToken(user.Email, 0)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	refreshToken, err := s.tokens.IssueRefreshToken(user.Email, 0)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}
	if err := s.users.UpdateRefreshToken(ctx, user, &refreshToken); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}
	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
	}, nil
}

// dispatchVerification sends the confirmation mail on a background goroutine.
// Delivery failures are logged, never surfaced.
func (s *authService) dispatchVerification(email, username string) {
	token, err := s.tokens.IssueEmailToken(email)
	if err != nil {
		log.Printf("issue email token for %s: %v", email, err)
		return
	}
	link := fmt.Sprintf("%s/email/confirmed_email/%s", s.baseURL, token)
	go func() {
		if err := s.mail.SendVerification(email, username, link); err != nil {
			log.Printf("send verification mail to %s: %v", email, err)
		}
	}()
}
