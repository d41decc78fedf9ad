package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"contactsapi/internal/service"
)

// EmailHandler handles email-verification endpoints.
type EmailHandler struct {
	authService service.AuthService
}

// NewEmailHandler creates a new email handler.
func NewEmailHandler(authService service.AuthService) *EmailHandler {
	return &EmailHandler{authService: authService}
}

// RequestEmailRequest asks for a fresh verification email.
type RequestEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ConfirmedEmail godoc
// @Summary Confirm an email address from a verification link
// @Tags email
// @Produce json
// @Param token path string true "Verification token"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /email/confirmed_email/{token} [get]
func (h *EmailHandler) ConfirmedEmail(c echo.Context) error {
	message, err := h.authService.ConfirmEmail(c.Request().Context(), c.Param("token"))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": message})
}

// RequestEmail godoc
// @Summary Request a new verification email
// @Tags email
// @Accept json
// @Produce json
// @Param request body RequestEmailRequest true "Account email"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Router /email/request_email [post]
func (h *EmailHandler) RequestEmail(c echo.Context) error {
	var req RequestEmailRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	message, err := h.authService.RequestEmail(c.Request().Context(), req.Email)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": message})
}
