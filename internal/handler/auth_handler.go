package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "contactsapi/internal/errors"
	"contactsapi/internal/middleware"
	"contactsapi/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// SignupRequest represents a user registration request.
type SignupRequest struct {
	Username string `json:"username" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Signup godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Registration data"
// @Success 201 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Signup(c.Request().Context(), req.Username, req.Email, req.Password)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, user)
}

// Login godoc
// @Summary Authenticate and receive a token pair
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Account email"
// @Param password formData string true "Password"
// @Success 200 {object} service.TokenPair
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	// OAuth2 password form: the username field carries the email.
	email := c.FormValue("username")
	password := c.FormValue("password")
	if email == "" || password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username and password are required")
	}

	pair, err := h.authService.Login(c.Request().Context(), email, password)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, pair)
}

// Refresh godoc
// @Summary Rotate the refresh token and receive a new pair
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.TokenPair
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/refresh_token [get]
func (h *AuthHandler) Refresh(c echo.Context) error {
	token, ok := bearerToken(c)
	if !ok {
		return serviceError(apperrors.ErrCredentials)
	}

	pair, err := h.authService.Refresh(c.Request().Context(), token)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, pair)
}

// Secret godoc
// @Summary Protected demo route
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/secret [get]
func (h *AuthHandler) Secret(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return serviceError(apperrors.ErrCredentials)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "secret router",
		"owner":   user.Email,
	})
}

// bearerToken pulls the credential out of the Authorization header.
func bearerToken(c echo.Context) (string, bool) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	const prefix = "bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return header[len(prefix):], true
}

// serviceError converts a domain error into an echo HTTP error with the
// status from the error taxonomy and the error's own message.
func serviceError(err error) *echo.HTTPError {
	status := apperrors.StatusFor(err)
	if status == http.StatusInternalServerError {
		return echo.NewHTTPError(status, apperrors.ErrorResponse{Detail: "internal server error"})
	}
	return echo.NewHTTPError(status, apperrors.ErrorResponse{Detail: err.Error()})
}
