package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	apperrors "contactsapi/internal/errors"
	"contactsapi/internal/model"
)

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name    string
		role    model.Role
		allowed []model.Role
		wantErr error
	}{
		{"admin on admin route", model.RoleAdmin, []model.Role{model.RoleAdmin, model.RoleModerator}, nil},
		{"moderator on admin route", model.RoleModerator, []model.Role{model.RoleAdmin, model.RoleModerator}, nil},
		{"user on admin route", model.RoleUser, []model.Role{model.RoleAdmin, model.RoleModerator}, apperrors.ErrForbidden},
		{"empty allowed set", model.RoleAdmin, nil, apperrors.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.role, tt.allowed)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRequireRoles(t *testing.T) {
	e := echo.New()
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	guard := RequireRoles(model.RoleAdmin, model.RoleModerator)(next)

	tests := []struct {
		name       string
		user       interface{}
		wantStatus int
	}{
		{"allowed role passes", &model.User{Role: model.RoleAdmin}, http.StatusOK},
		{"disallowed role is forbidden despite valid token", &model.User{Role: model.RoleUser}, http.StatusForbidden},
		{"missing user is unauthorized", nil, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			if tt.user != nil {
				c.Set(CurrentUserKey, tt.user)
			}

			err := guard(c)
			if tt.wantStatus == http.StatusOK {
				assert.NoError(t, err)
				return
			}
			httpErr, ok := err.(*echo.HTTPError)
			assert.True(t, ok)
			assert.Equal(t, tt.wantStatus, httpErr.Code)
		})
	}
}
