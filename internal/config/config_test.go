package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/celebra-app/celebra-backend/pkg/storage"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "ALLOWED_ORIGINS", "QA_MODE", "STORAGE_PROVIDER", "EMAIL_FROM_ADDRESS", "EMAIL_FROM_NAME"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()
	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "*", cfg.AllowedOrigins)
	assert.False(t, cfg.QAMode)
	assert.Equal(t, storage.ProviderBucket, cfg.StorageProvider)
	assert.Equal(t, "noreply@celebra.app", cfg.Email.FromAddress)
	assert.Equal(t, "Celebra", cfg.Email.FromName)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("QA_MODE", "TRUE")
	t.Setenv("STORAGE_PROVIDER", storage.ProviderCDN)
	t.Setenv("STORAGE_BUCKET", "photos")
	t.Setenv("IMAGES_ACCOUNT_ID", "acct-1")

	cfg := LoadConfig()
	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.QAMode, "QA_MODE is case-insensitive")
	assert.Equal(t, storage.ProviderCDN, cfg.StorageProvider)
	assert.Equal(t, "photos", cfg.Bucket.Bucket)
	assert.Equal(t, "acct-1", cfg.Images.AccountID)
}
