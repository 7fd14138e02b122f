package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Reading defines a sensor reading document in the 'readings' collection.
// Devices are identified only by name; (deviceName, time) is the natural
// lookup key but is not enforced unique. All measurements are optional at
// the storage level.
type Reading struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	DeviceName          string             `bson:"deviceName" json:"deviceName"`
	Time                time.Time          `bson:"time" json:"time"`
	Latitude            *float64           `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude           *float64           `bson:"longitude,omitempty" json:"longitude,omitempty"`
	Humidity            *float64           `bson:"humidity,omitempty" json:"humidity,omitempty"`
	Precipitation       *float64           `bson:"precipitation,omitempty" json:"precipitation,omitempty"`
	Temperature         *float64           `bson:"temperature,omitempty" json:"temperature,omitempty"`
	MaxWindSpeed        *float64           `bson:"maxWindSpeed,omitempty" json:"maxWindSpeed,omitempty"`
	SolarRadiation      *float64           `bson:"solarRadiation,omitempty" json:"solarRadiation,omitempty"`
	VaporPressure       *float64           `bson:"vaporPressure,omitempty" json:"vaporPressure,omitempty"`
	WindDirection       *float64           `bson:"windDirection,omitempty" json:"windDirection,omitempty"`
	AtmosphericPressure *float64           `bson:"atmosphericPressure,omitempty" json:"atmosphericPressure,omitempty"`
}
