package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrAccountExists is returned when signing up with an email that is taken.
	ErrAccountExists = errors.New("Account already exists")
	// ErrInvalidEmail is returned when login finds no account for the email.
	ErrInvalidEmail = errors.New("Invalid email")
	// ErrEmailNotConfirmed is returned when login is attempted before email verification.
	ErrEmailNotConfirmed = errors.New("Email not confirmed")
	// ErrInvalidPassword is returned when the password does not match.
	ErrInvalidPassword = errors.New("Invalid password")
	// ErrCredentials covers every token-path failure with one opaque message.
	ErrCredentials = errors.New("Could not validate credentials")
	// ErrInvalidRefreshToken is returned on refresh-token mismatch or reuse.
	ErrInvalidRefreshToken = errors.New("Invalid refresh token")
	// ErrEmailToken is returned for a bad email-verification token.
	ErrEmailToken = errors.New("Invalid token for email verification")
	// ErrVerification is returned when a verification token names no account.
	ErrVerification = errors.New("Verification error")
	// ErrForbidden is returned when the user's role is not permitted.
	ErrForbidden = errors.New("FORBIDDEN")
	// ErrContactNotFound is returned when a contact lookup misses.
	ErrContactNotFound = errors.New("Contact not found")
	// ErrContactExists is returned when creating a duplicate contact.
	ErrContactExists = errors.New("Contact already exists!")
	// ErrUserNotFound is returned when a user lookup misses.
	ErrUserNotFound = errors.New("User not found")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// StatusFor maps domain errors to HTTP status codes. Token failures share a
// deliberately generic message; only the status distinguishes them.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrAccountExists), errors.Is(err, ErrContactExists):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidEmail), errors.Is(err, ErrEmailNotConfirmed),
		errors.Is(err, ErrInvalidPassword), errors.Is(err, ErrCredentials),
		errors.Is(err, ErrInvalidRefreshToken):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrEmailToken):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrVerification):
		return http.StatusBadRequest
	case errors.Is(err, ErrContactNotFound), errors.Is(err, ErrUserNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
