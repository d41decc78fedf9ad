package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string
	BaseURL    string
	MySQLDSN   string

	RedisAddr string
	RedisDB   int
	RedisPass string

	JWTSecret    string
	JWTAlgorithm string

	MailHost     string
	MailPort     int
	MailUsername string
	MailPassword string
	MailFrom     string

	CloudinaryName      string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	SwaggerHost string
}

// Load builds Config from environment with sensible defaults.
// The signing secret has no default: a process without one must not start.
func Load() (*Config, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		BaseURL:    getEnv("BASE_URL", "http://localhost:8080"),
		MySQLDSN:   getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/contacts?charset=utf8mb4&parseTime=True&loc=Local"),

		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:   getEnvInt("REDIS_DB", 0),
		RedisPass: os.Getenv("REDIS_PASSWORD"),

		JWTSecret:    secret,
		JWTAlgorithm: getEnv("JWT_ALGORITHM", "HS256"),

		MailHost:     getEnv("MAIL_SERVER", "localhost"),
		MailPort:     getEnvInt("MAIL_PORT", 465),
		MailUsername: os.Getenv("MAIL_USERNAME"),
		MailPassword: os.Getenv("MAIL_PASSWORD"),
		MailFrom:     getEnv("MAIL_FROM", "no-reply@localhost"),

		CloudinaryName:      os.Getenv("CLOUDINARY_NAME"),
		CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),

		SwaggerHost: os.Getenv("SWAGGER_HOST"),
	}, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
