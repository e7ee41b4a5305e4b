package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromUnixSecondsBR(t *testing.T) {
	assert.True(t, FromUnixSecondsBR(0).IsZero())
	assert.True(t, FromUnixSecondsBR(-1).IsZero())

	got := FromUnixSecondsBR(1756728000) // 2025-09-01 12:00:00 UTC
	assert.Equal(t, int64(1756728000), got.Unix())
}

func TestFormatDateBR(t *testing.T) {
	assert.Equal(t, "", FormatDateBR(time.Time{}))

	// Midday UTC stays on the same calendar day in Brazil (-03:00).
	noon := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "01/09/2026", FormatDateBR(noon))

	// Just after UTC midnight rolls back to the previous day in Brazil.
	early := time.Date(2026, 9, 1, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, "31/08/2026", FormatDateBR(early))
}

func TestFormatRFC3339BR(t *testing.T) {
	assert.Equal(t, "", FormatRFC3339BR(time.Time{}))

	noon := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-09-01T09:00:00-03:00", FormatRFC3339BR(noon))
}
