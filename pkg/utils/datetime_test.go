package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDatetime(t *testing.T) {
	parsed, err := ParseDatetime("2026-06-15T18:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 6, 15, 18, 30, 0, 0, time.UTC), parsed.UTC())

	parsed, err = ParseDatetime("2026-06-15T18:30:00")
	require.NoError(t, err)
	assert.Equal(t, 18, parsed.Hour())

	parsed, err = ParseDatetime("2026-06-15")
	require.NoError(t, err)
	assert.Equal(t, 2026, parsed.Year())

	// Surrounding whitespace is tolerated.
	_, err = ParseDatetime("  2026-06-15  ")
	require.NoError(t, err)

	_, err = ParseDatetime("15/06/2026")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid datetime format")
}

func TestFormatDatetimeSortsLexicographically(t *testing.T) {
	earlier := time.Date(2026, 6, 15, 18, 30, 0, 5000, time.UTC)
	later := time.Date(2026, 6, 15, 18, 30, 0, 120000000, time.UTC)

	a := FormatDatetime(earlier)
	b := FormatDatetime(later)

	assert.Less(t, a, b)
	assert.Len(t, a, len(b), "fixed-width fraction keeps string ordering chronological")
}

func TestFormatDatetimeUTC(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	local := time.Date(2026, 6, 15, 21, 30, 0, 0, loc)

	formatted := FormatDatetime(local)
	assert.Equal(t, "2026-06-15T18:30:00.000000Z", formatted)

	roundTrip, err := ParseDatetime(formatted)
	assert.NoError(t, err)
	assert.True(t, roundTrip.Equal(local))
}
