package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	apperrors "contactsapi/internal/errors"
)

const (
	// ScopeAccess marks tokens accepted by VerifyAccessToken.
	ScopeAccess = "access_token"
	// ScopeRefresh marks tokens accepted by VerifyRefreshToken.
	ScopeRefresh = "refresh_token"

	// AccessTokenExpiry is the default lifetime of access tokens.
	AccessTokenExpiry = 15 * time.Minute
	// RefreshTokenExpiry is the default lifetime of refresh tokens.
	RefreshTokenExpiry = 7 * 24 * time.Hour
	// EmailTokenExpiry is the lifetime of email-verification tokens.
	EmailTokenExpiry = 7 * 24 * time.Hour
)

// Claims is the signed claim set carried by every token. Email-verification
// tokens are issued without a scope claim; access and refresh tokens always
// carry one, and a token of the wrong scope is rejected even when the
// signature checks out.
type Claims struct {
	Scope string `json:"scope,omitempty"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies access, refresh and email-verification
// tokens. It is stateless: the secret and signing method are fixed at
// construction and every call depends only on its input and the clock.
type TokenService struct {
	secret []byte
	method jwt.SigningMethod
}

// NewTokenService builds a token service for the given secret and HMAC
// algorithm name (HS256, HS384 or HS512).
func NewTokenService(secret, algorithm string) (*TokenService, error) {
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("unknown signing algorithm %q", algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("signing algorithm %q is not an HMAC method", algorithm)
	}
	return &TokenService{secret: []byte(secret), method: method}, nil
}

// IssueAccessToken signs a short-lived access token for the subject email.
// A non-positive ttl selects the default expiry.
func (s *TokenService) IssueAccessToken(email string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = AccessTokenExpiry
	}
	return s.sign(email, ScopeAccess, ttl, "")
}

// IssueRefreshToken signs a long-lived refresh token for the subject email.
// A non-positive ttl selects the default expiry.
func (s *TokenService) IssueRefreshToken(email string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = RefreshTokenExpiry
	}
	return s.sign(email, ScopeRefresh, ttl, uuid.New().String())
}

// IssueEmailToken signs an email-verification token. Unlike the other two
// kinds it carries no scope claim; that asymmetry is part of the contract.
func (s *TokenService) IssueEmailToken(email string) (string, error) {
	return s.sign(email, "", EmailTokenExpiry, "")
}

// VerifyAccessToken returns the subject email of a valid access token.
func (s *TokenService) VerifyAccessToken(token string) (string, error) {
	return s.verifyScoped(token, ScopeAccess)
}

// VerifyRefreshToken returns the subject email of a valid refresh token.
func (s *TokenService) VerifyRefreshToken(token string) (string, error) {
	return s.verifyScoped(token, ScopeRefresh)
}

// VerifyEmailToken returns the subject email of a valid email-verification
// token. Failures surface as a distinct error kind because confirmation is
// reached through a GET link, not an Authorization header.
func (s *TokenService) VerifyEmailToken(token string) (string, error) {
	claims, err := s.parse(token)
	if err != nil {
		return "", apperrors.ErrEmailToken
	}
	return claims.Subject, nil
}

func (s *TokenService) sign(email, scope string, ttl time.Duration, jti string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
}

// verifyScoped collapses every failure (bad signature, expiry, wrong scope,
// empty subject) into the same opaque error so the response body leaks
// nothing about which check tripped.
func (s *TokenService) verifyScoped(token, scope string) (string, error) {
	claims, err := s.parse(token)
	if err != nil {
		return "", apperrors.ErrCredentials
	}
	if claims.Scope != scope || claims.Subject == "" {
		return "", apperrors.ErrCredentials
	}
	return claims.Subject, nil
}

func (s *TokenService) parse(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != s.method.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
