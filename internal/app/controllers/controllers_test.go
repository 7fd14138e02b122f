package controllers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ozank/stationhub/internal/pkg/apperrors"
)

func TestParseTimestamp_AcceptedLayouts(t *testing.T) {
	cases := map[string]time.Time{
		"2024-01-01T10:45:00Z":      time.Date(2024, 1, 1, 10, 45, 0, 0, time.UTC),
		"2024-01-01T10:45:00+02:00": time.Date(2024, 1, 1, 8, 45, 0, 0, time.UTC),
		"2024-01-01T10:45:00":       time.Date(2024, 1, 1, 10, 45, 0, 0, time.UTC),
		"2024-01-01":                time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	for input, want := range cases {
		got, err := parseTimestamp(input)
		require.NoError(t, err, input)
		assert.True(t, want.Equal(got), input)
	}
}

func TestParseTimestamp_RejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "not-a-date", "2024-13-45", "10:45"} {
		_, err := parseTimestamp(input)
		assert.ErrorIs(t, err, apperrors.ErrInvalidTimestamp, input)
	}
}
