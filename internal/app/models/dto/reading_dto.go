package dto

import "time"

// IngestResponse reports the outcome of a batch insert
type IngestResponse struct {
	InsertedCount int         `json:"insertedCount"`
	Readings      interface{} `json:"readings"`
}

// UpdatePrecipitationRequest overwrites the precipitation measurement of a
// single reading. A non-numeric value fails binding and never reaches
// storage.
type UpdatePrecipitationRequest struct {
	Precipitation *float64 `json:"precipitation" binding:"required"`
}

// HourlyReading is the reduced projection returned by the hour-window query
type HourlyReading struct {
	DeviceName          string    `json:"deviceName"`
	Time                time.Time `json:"time"`
	Temperature         *float64  `json:"temperature,omitempty"`
	AtmosphericPressure *float64  `json:"atmosphericPressure,omitempty"`
	SolarRadiation      *float64  `json:"solarRadiation,omitempty"`
	Precipitation       *float64  `json:"precipitation,omitempty"`
}

// MaxTemperatureRow is one per-device row of the max-temperature aggregate
type MaxTemperatureRow struct {
	DeviceName  string    `json:"deviceName"`
	Time        time.Time `json:"time"`
	Temperature float64   `json:"temperature"`
}
