package config

import (
	"os"
	"strings"

	"github.com/celebra-app/celebra-backend/pkg/email"
	"github.com/celebra-app/celebra-backend/pkg/storage"
)

type Config struct {
	Port           string
	SecretKey      string
	AllowedOrigins string
	QAMode         bool
	DatabaseURL    string
	FrontendURL    string

	// StorageProvider selects the blob backend once at startup:
	// "bucket" (default) or "cdn".
	StorageProvider string
	Bucket          storage.BucketConfig
	Images          storage.ImagesConfig

	Email email.Config
}

func LoadConfig() *Config {
	cfg := &Config{
		Port:            getEnv("PORT", "5000"),
		SecretKey:       os.Getenv("SECRET_KEY"),
		AllowedOrigins:  getEnv("ALLOWED_ORIGINS", "*"),
		QAMode:          strings.EqualFold(os.Getenv("QA_MODE"), "true"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		FrontendURL:     os.Getenv("FRONTEND_URL"),
		StorageProvider: getEnv("STORAGE_PROVIDER", storage.ProviderBucket),
	}

	cfg.Bucket = storage.BucketConfig{
		AccountID:       os.Getenv("STORAGE_ACCOUNT_ID"),
		AccessKeyID:     os.Getenv("STORAGE_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("STORAGE_SECRET_ACCESS_KEY"),
		Bucket:          os.Getenv("STORAGE_BUCKET"),
		PublicURL:       os.Getenv("STORAGE_PUBLIC_URL"),
	}

	cfg.Images = storage.ImagesConfig{
		AccountID:   os.Getenv("IMAGES_ACCOUNT_ID"),
		APIToken:    os.Getenv("IMAGES_API_TOKEN"),
		AccountHash: os.Getenv("IMAGES_ACCOUNT_HASH"),
	}

	cfg.Email = email.Config{
		APIKey:      os.Getenv("RESEND_API_KEY"),
		FromAddress: getEnv("EMAIL_FROM_ADDRESS", "noreply@celebra.app"),
		FromName:    getEnv("EMAIL_FROM_NAME", "Celebra"),
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
