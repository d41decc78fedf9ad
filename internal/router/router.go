package router

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"contactsapi/internal/auth"
	"contactsapi/internal/cache"
	"contactsapi/internal/handler"
	"contactsapi/internal/middleware"
	"contactsapi/internal/model"
	"contactsapi/internal/repository"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	store *cache.Client,
	tokens *auth.TokenService,
	users repository.UserRepository,
	authHandler *handler.AuthHandler,
	emailHandler *handler.EmailHandler,
	contactHandler *handler.ContactHandler,
	userHandler *handler.UserHandler,
) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	authn := middleware.Authenticate(tokens, users)

	// Auth routes
	authGroup := e.Group("/auth")
	authGroup.POST("/signup", authHandler.Signup)
	authGroup.POST("/login", authHandler.Login)
	authGroup.GET("/refresh_token", authHandler.Refresh)
	authGroup.GET("/secret", authHandler.Secret, authn)

	// Email verification routes
	emailGroup := e.Group("/email")
	emailGroup.GET("/confirmed_email/:token", emailHandler.ConfirmedEmail)
	emailGroup.POST("/request_email", emailHandler.RequestEmail)

	// Contact routes. The limiter always runs before the auth gates, so
	// rate-limited routes carry their full middleware chain explicitly.
	contacts := e.Group("/contacts/contacts")
	contacts.POST("", contactHandler.Create,
		middleware.RateLimit(store, 2, 5*time.Second), authn)
	contacts.GET("/all", contactHandler.ListAll,
		middleware.RateLimit(store, 1, 20*time.Second), authn,
		middleware.RequireRoles(model.RoleAdmin, model.RoleModerator))
	contacts.GET("/id/:contact_id", contactHandler.GetByID, authn)
	contacts.GET("/by_name/:fullname", contactHandler.GetByFullname, authn)
	contacts.GET("/by_email/:email", contactHandler.GetByEmail, authn)
	contacts.GET("/birthdays", contactHandler.UpcomingBirthdays, authn)
	contacts.GET("/birthdays/:date", contactHandler.UpcomingBirthdaysFrom, authn)
	contacts.PUT("/update/:contact_id", contactHandler.Update, authn)
	contacts.DELETE("/delete/:contact_id", contactHandler.Delete, authn)

	// Profile routes
	userGroup := e.Group("/user")
	userGroup.GET("/me", userHandler.Me, authn)
	userGroup.PATCH("/avatar", userHandler.UpdateAvatar,
		middleware.RateLimit(store, 1, 20*time.Second), authn)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
