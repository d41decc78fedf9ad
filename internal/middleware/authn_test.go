package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"contactsapi/internal/auth"
	"contactsapi/internal/model"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepo) UpdateRefreshToken(ctx context.Context, user *model.User, token *string) error {
	args := m.Called(ctx, user, token)
	return args.Error(0)
}

func (m *mockUserRepo) ConfirmEmail(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *mockUserRepo) UpdateAvatar(ctx context.Context, email, url string) (*model.User, error) {
	args := m.Called(ctx, email, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func newTokens(t *testing.T) *auth.TokenService {
	t.Helper()
	tokens, err := auth.NewTokenService("test-secret", "HS256")
	require.NoError(t, err)
	return tokens
}

func performProtected(t *testing.T, tokens *auth.TokenService, users *mockUserRepo, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.GET("/secret", func(c echo.Context) error {
		user, ok := CurrentUser(c)
		require.True(t, ok)
		return c.String(http.StatusOK, user.Email)
	}, Authenticate(tokens, users))

	req := httptest.NewRequest(http.MethodGet, "/secret", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuthenticate_ResolvesUser(t *testing.T) {
	tokens := newTokens(t)
	accessToken, err := tokens.IssueAccessToken("user@example.com", 0)
	require.NoError(t, err)

	users := new(mockUserRepo)
	users.On("FindByEmail", mock.Anything, "user@example.com").
		Return(&model.User{ID: 1, Email: "user@example.com", Role: model.RoleUser}, nil)

	rec := performProtected(t, tokens, users, "Bearer "+accessToken)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user@example.com", rec.Body.String())
	users.AssertNumberOfCalls(t, "FindByEmail", 1)
}

func TestAuthenticate_OpaqueFailures(t *testing.T) {
	tokens := newTokens(t)

	accessToken, err := tokens.IssueAccessToken("ghost@example.com", 0)
	require.NoError(t, err)
	refreshToken, err := tokens.IssueRefreshToken("user@example.com", 0)
	require.NoError(t, err)

	tests := []struct {
		name       string
		authHeader string
		setupMock  func(*mockUserRepo)
	}{
		{
			name:       "missing header",
			authHeader: "",
			setupMock:  func(m *mockUserRepo) {},
		},
		{
			name:       "garbage token",
			authHeader: "Bearer not-a-token",
			setupMock:  func(m *mockUserRepo) {},
		},
		{
			name:       "refresh token on an access route",
			authHeader: "Bearer " + refreshToken,
			setupMock:  func(m *mockUserRepo) {},
		},
		{
			name:       "valid token for unknown user",
			authHeader: "Bearer " + accessToken,
			setupMock: func(m *mockUserRepo) {
				m.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
		},
	}

	var bodies []string
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(mockUserRepo)
			tt.setupMock(users)

			rec := performProtected(t, tokens, users, tt.authHeader)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), "Could not validate credentials")
			bodies = append(bodies, rec.Body.String())
		})
	}

	// every failure mode answers with the exact same body
	for _, body := range bodies {
		assert.Equal(t, bodies[0], body)
	}
}
