package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	valid := []string{
		"user@example.com",
		"first.last@example.co.uk",
		"user+tag@sub.example.com",
		"user-name@example.io",
	}
	for _, email := range valid {
		assert.True(t, ValidateEmail(email), "expected %q to be valid", email)
	}

	invalid := []string{
		"",
		"user",
		"user@",
		"@example.com",
		"user@example",
		"user@@example.com",
		"user example@example.com",
	}
	for _, email := range invalid {
		assert.False(t, ValidateEmail(email), "expected %q to be invalid", email)
	}
}

func TestValidateRequiredFields(t *testing.T) {
	ok, msg := ValidateRequiredFields(map[string]interface{}{
		"a": "x",
		"b": 1,
	}, []string{"a", "b"})
	assert.True(t, ok)
	assert.Empty(t, msg)

	ok, msg = ValidateRequiredFields(map[string]interface{}{
		"a": "x",
	}, []string{"a", "b"})
	assert.False(t, ok)
	assert.Equal(t, "missing required fields: b", msg)

	// Present but falsy values count as missing.
	ok, msg = ValidateRequiredFields(map[string]interface{}{
		"a": "",
		"b": 0,
		"c": false,
		"d": nil,
	}, []string{"a", "b", "c", "d"})
	assert.False(t, ok)
	assert.Equal(t, "missing required fields: a, b, c, d", msg)

	// A truthy bool and a non-zero float pass.
	ok, _ = ValidateRequiredFields(map[string]interface{}{
		"single": true,
		"score":  0.5,
	}, []string{"single", "score"})
	assert.True(t, ok)
}
