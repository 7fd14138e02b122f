// Package controllers handles HTTP request handling
package controllers

import (
	"time"

	"github.com/ozank/stationhub/internal/pkg/apperrors"
)

// timestampLayouts are the accepted wire formats for instants. Everything
// is interpreted as UTC.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseTimestamp parses an ISO-8601 timestamp from a path, query or body
// field
func parseTimestamp(value string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, apperrors.NewCustomError(apperrors.ErrInvalidTimestamp, "invalid timestamp: "+value)
}
