package main

import (
	"log"
	"net/http"

	"contactsapi/docs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"contactsapi/internal/auth"
	"contactsapi/internal/avatar"
	"contactsapi/internal/cache"
	"contactsapi/internal/config"
	"contactsapi/internal/db"
	"contactsapi/internal/handler"
	"contactsapi/internal/mailer"
	"contactsapi/internal/model"
	"contactsapi/internal/repository"
	"contactsapi/internal/router"
	"contactsapi/internal/service"
)

// @title Contacts API
// @version 1.0
// @description Contacts management API with JWT authentication, email confirmation and role-gated routes.
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Contact{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.JWTAlgorithm)
	if err != nil {
		log.Fatalf("token service: %v", err)
	}

	mail := mailer.NewSMTP(cfg.MailHost, cfg.MailPort, cfg.MailUsername, cfg.MailPassword, cfg.MailFrom)

	var uploader avatar.Uploader
	if cfg.CloudinaryName != "" {
		uploader, err = avatar.NewCloudinary(cfg.CloudinaryName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err != nil {
			log.Fatalf("cloudinary init: %v", err)
		}
	} else {
		log.Println("cloudinary credentials missing, avatar uploads disabled")
		uploader = avatar.DisabledUploader{}
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	contactRepo := repository.NewContactRepository(gormDB)

	// Initialize services
	authService := service.NewAuthService(userRepo, tokens, mail, cfg.BaseURL)
	contactService := service.NewContactService(contactRepo)
	userService := service.NewUserService(userRepo, uploader)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	emailHandler := handler.NewEmailHandler(authService)
	contactHandler := handler.NewContactHandler(contactService)
	userHandler := handler.NewUserHandler(userService)

	// Register routes
	router.Register(
		e,
		cacheClient,
		tokens,
		userRepo,
		authHandler,
		emailHandler,
		contactHandler,
		userHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
