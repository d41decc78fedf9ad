package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "contactsapi/internal/errors"
	"contactsapi/internal/middleware"
	"contactsapi/internal/model"
	"contactsapi/internal/service"
)

const dateLayout = "2006-01-02"

// ContactHandler handles address-book endpoints.
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler creates a new contact handler.
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// ContactRequest carries the writable contact fields.
type ContactRequest struct {
	Fullname    string `json:"fullname" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phone_number" validate:"required"`
	Birthday    string `json:"birthday" validate:"required"`
}

func (r *ContactRequest) toInput() (service.ContactInput, error) {
	birthday, err := time.Parse(dateLayout, r.Birthday)
	if err != nil {
		return service.ContactInput{}, err
	}
	return service.ContactInput{
		Fullname:    r.Fullname,
		Email:       r.Email,
		PhoneNumber: r.PhoneNumber,
		Birthday:    birthday,
	}, nil
}

// Create godoc
// @Summary Create a contact
// @Tags contacts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ContactRequest true "Contact data"
// @Success 201 {object} model.Contact
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /contacts/contacts [post]
func (h *ContactHandler) Create(c echo.Context) error {
	user, input, err := h.bindContact(c)
	if err != nil {
		return err
	}
	contact, err := h.contactService.Create(c.Request().Context(), user, input)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, contact)
}

// ListAll godoc
// @Summary List every contact (admin and moderator only)
// @Tags contacts
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size" default(10)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {array} model.Contact
// @Failure 403 {object} errors.ErrorResponse
// @Router /contacts/contacts/all [get]
func (h *ContactHandler) ListAll(c echo.Context) error {
	limit, offset := pagination(c)
	contacts, err := h.contactService.ListAll(c.Request().Context(), limit, offset)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, contacts)
}

// GetByID godoc
// @Summary Get a contact by ID
// @Tags contacts
// @Produce json
// @Security BearerAuth
// @Param contact_id path int true "Contact ID"
// @Success 200 {object} model.Contact
// @Failure 404 {object} errors.ErrorResponse
// @Router /contacts/contacts/id/{contact_id} [get]
func (h *ContactHandler) GetByID(c echo.Context) error {
	id, err := contactID(c)
	if err != nil {
		return err
	}
	contact, err := h.contactService.GetByID(c.Request().Context(), id)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, contact)
}

// GetByFullname godoc
// @Summary Find an owned contact by full name
// @Tags contacts
// @Produce json
// @Security BearerAuth
// @Param fullname path string true "Contact full name"
// @Success 200 {object} model.Contact
// @Failure 404 {object} errors.ErrorResponse
// @Router /contacts/contacts/by_name/{fullname} [get]
func (h *ContactHandler) GetByFullname(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return serviceError(apperrors.ErrCredentials)
	}
	contact, err := h.contactService.GetByFullname(c.Request().Context(), user, c.Param("fullname"))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, contact)
}

// GetByEmail godoc
// @Summary Find an owned contact by email
// @Tags contacts
// @Produce json
// @Security BearerAuth
// @Param email path string true "Contact email"
// @Success 200 {object} model.Contact
// @Failure 404 {object} errors.ErrorResponse
// @Router /contacts/contacts/by_email/{email} [get]
func (h *ContactHandler) GetByEmail(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return serviceError(apperrors.ErrCredentials)
	}
	contact, err := h.contactService.GetByEmail(c.Request().Context(), user, c.Param("email"))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, contact)
}

// UpcomingBirthdays godoc
// @Summary List owned contacts with birthdays in the next 7 days
// @Tags contacts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Contact
// @Router /contacts/contacts/birthdays [get]
func (h *ContactHandler) UpcomingBirthdays(c echo.Context) error {
	return h.birthdaysFrom(c, time.Now())
}

// UpcomingBirthdaysFrom godoc
// @Summary List owned contacts with birthdays in the 7 days after a date
// @Tags contacts
// @Produce json
// @Security BearerAuth
// @Param date path string true "Start date, YYYY-MM-DD"
// @Success 200 {array} model.Contact
// @Failure 400 {object} errors.ErrorResponse
// @Router /contacts/contacts/birthdays/{date} [get]
func (h *ContactHandler) UpcomingBirthdaysFrom(c echo.Context) error {
	from, err := time.Parse(dateLayout, c.Param("date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
	}
	return h.birthdaysFrom(c, from)
}

// Update godoc
// @Summary Update an owned contact
// @Tags contacts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param contact_id path int true "Contact ID"
// @Param request body ContactRequest true "Contact data"
// @Success 200 {object} model.Contact
// @Failure 404 {object} errors.ErrorResponse
// @Router /contacts/contacts/update/{contact_id} [put]
func (h *ContactHandler) Update(c echo.Context) error {
	id, err := contactID(c)
	if err != nil {
		return err
	}
	user, input, err := h.bindContact(c)
	if err != nil {
		return err
	}
	contact, err := h.contactService.Update(c.Request().Context(), user, id, input)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, contact)
}

// Delete godoc
// @Summary Delete an owned contact
// @Tags contacts
// @Produce json
// @Security BearerAuth
// @Param contact_id path int true "Contact ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /contacts/contacts/delete/{contact_id} [delete]
func (h *ContactHandler) Delete(c echo.Context) error {
	id, err := contactID(c)
	if err != nil {
		return err
	}
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return serviceError(apperrors.ErrCredentials)
	}
	if err := h.contactService.Delete(c.Request().Context(), user, id); err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"detail": "Contact deleted successfully"})
}

func (h *ContactHandler) birthdaysFrom(c echo.Context, from time.Time) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return serviceError(apperrors.ErrCredentials)
	}
	contacts, err := h.contactService.UpcomingBirthdays(c.Request().Context(), user, from)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, contacts)
}

func (h *ContactHandler) bindContact(c echo.Context) (*model.User, service.ContactInput, error) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return nil, service.ContactInput{}, serviceError(apperrors.ErrCredentials)
	}
	var req ContactRequest
	if err := c.Bind(&req); err != nil {
		return nil, service.ContactInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return nil, service.ContactInput{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	input, err := req.toInput()
	if err != nil {
		return nil, service.ContactInput{}, echo.NewHTTPError(http.StatusBadRequest, "birthday must be YYYY-MM-DD")
	}
	return user, input, nil
}

func contactID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("contact_id"), 10, 32)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "contact_id must be a positive integer")
	}
	return uint(id), nil
}

func pagination(c echo.Context) (limit, offset int) {
	limit = 10
	offset = 0
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil && v > 0 {
		limit = v
	}
	if v, err := strconv.Atoi(c.QueryParam("offset")); err == nil && v >= 0 {
		offset = v
	}
	return limit, offset
}
