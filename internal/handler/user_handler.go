package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "contactsapi/internal/errors"
	"contactsapi/internal/middleware"
	"contactsapi/internal/service"
)

// UserHandler handles profile endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Me godoc
// @Summary Current user profile
// @Tags user
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Router /user/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return serviceError(apperrors.ErrCredentials)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateAvatar godoc
// @Summary Upload a new avatar image
// @Tags user
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Avatar image"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Router /user/avatar [patch]
func (h *UserHandler) UpdateAvatar(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return serviceError(apperrors.ErrCredentials)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "could not read file")
	}
	defer file.Close()

	updated, err := h.userService.UpdateAvatar(c.Request().Context(), user, file)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, updated)
}
