package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type uploadForm struct {
	ContentType string `validate:"required,supported_image"`
}

func TestValidatorSupportedImage(t *testing.T) {
	v := NewValidator()

	for _, mime := range []string{"image/jpeg", "image/jpg", "image/png"} {
		assert.NoError(t, v.Struct(uploadForm{ContentType: mime}))
	}

	for _, mime := range []string{"image/gif", "image/webp", "application/pdf", "text/plain"} {
		assert.Error(t, v.Struct(uploadForm{ContentType: mime}), "expected %q to be rejected", mime)
	}
}

func TestGenerateRandomString(t *testing.T) {
	s := GenerateRandomString(32)
	require.Len(t, s, 32)

	for _, r := range s {
		assert.Contains(t, charset, string(r))
	}

	assert.NotEqual(t, s, GenerateRandomString(32))
}
