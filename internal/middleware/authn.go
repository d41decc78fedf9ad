package middleware

import (
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"contactsapi/internal/auth"
	apperrors "contactsapi/internal/errors"
	"contactsapi/internal/model"
	"contactsapi/internal/repository"
)

// CurrentUserKey is the echo context key holding the authenticated user.
const CurrentUserKey = "current_user"

// Authenticate resolves the bearer access token into a user and stores it on
// the context. Each request re-verifies signature, expiry and scope and does
// exactly one store lookup; nothing is cached across requests. Every failure
// mode answers with the same opaque 401 so responses cannot be used to
// enumerate accounts or probe token internals.
func Authenticate(tokens *auth.TokenService, users repository.UserRepository) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey: CurrentUserKey,
		ParseTokenFunc: func(c echo.Context, tokenStr string) (interface{}, error) {
			email, err := tokens.VerifyAccessToken(tokenStr)
			if err != nil {
				return nil, err
			}
			user, err := users.FindByEmail(c.Request().Context(), email)
			if err != nil {
				return nil, apperrors.ErrCredentials
			}
			return user, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
			return echo.NewHTTPError(http.StatusUnauthorized,
				apperrors.ErrorResponse{Detail: apperrors.ErrCredentials.Error()})
		},
	})
}

// CurrentUser returns the authenticated user stored by Authenticate.
func CurrentUser(c echo.Context) (*model.User, bool) {
	user, ok := c.Get(CurrentUserKey).(*model.User)
	return user, ok
}
