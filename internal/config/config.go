package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	BrowserOrigin string

	MongoURI string
	MongoDB  string
	RedisURL string

	IdentityURL        string
	IdentityServiceKey string
	IdentityJWTSecret  string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioPublicURL string

	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
	SMTPFrom string
}

func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getEnv("PORT", "5000"),
		BrowserOrigin: getEnv("BROWSER_ORIGIN", "http://localhost:3000"),

		MongoURI: os.Getenv("MONGO_URI"),
		MongoDB:  getEnv("MONGO_DB", "helpdesk"),
		RedisURL: os.Getenv("REDIS_URL"),

		IdentityURL:        os.Getenv("IDENTITY_URL"),
		IdentityServiceKey: os.Getenv("IDENTITY_SERVICE_KEY"),
		IdentityJWTSecret:  os.Getenv("IDENTITY_JWT_SECRET"),

		MinioEndpoint:  os.Getenv("MINIO_ENDPOINT"),
		MinioAccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey: os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:    getEnv("MINIO_BUCKET", "helpdesk-resources"),
		MinioPublicURL: os.Getenv("MINIO_PUBLIC_URL"),

		SMTPHost: os.Getenv("SMTP_HOST"),
		SMTPPort: getEnv("SMTP_PORT", "587"),
		SMTPUser: os.Getenv("SMTP_USER"),
		SMTPPass: os.Getenv("SMTP_PASS"),
		SMTPFrom: os.Getenv("SMTP_FROM"),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
