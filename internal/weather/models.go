package weather

import (
	"time"
)

// SampleMain carries the numeric conditions of one forecast sample.
type SampleMain struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	Humidity  int     `json:"humidity"`
}

// SampleCondition is one textual condition attached to a sample,
// e.g. {"Rain", "light rain"}.
type SampleCondition struct {
	Main        string `json:"main"`
	Description string `json:"description"`
}

// ForecastSample is one timestamped forecast entry in the provider's wire
// shape. Records persisted by earlier versions of the dashboard carry
// exactly this JSON layout in their temperature_data column, so the field
// names and nesting must not change.
type ForecastSample struct {
	Dt      int64             `json:"dt"` // epoch seconds, ordering key
	Main    SampleMain        `json:"main"`
	Weather []SampleCondition `json:"weather"`
}

// Time returns the sample instant as a UTC time.
func (s ForecastSample) Time() time.Time {
	return time.Unix(s.Dt, 0).UTC()
}

// ResolvedLocation is the canonical result of geocoding a location string.
type ResolvedLocation struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// SearchRecord is a persisted search: the resolved location, the requested
// date window, and the forecast snapshot filtered to that window at
// create/update time.
type SearchRecord struct {
	ID        int64            `json:"id"`
	Location  string           `json:"location"`
	Latitude  float64          `json:"latitude"`
	Longitude float64          `json:"longitude"`
	StartDate string           `json:"start_date"` // YYYY-MM-DD
	EndDate   string           `json:"end_date"`   // YYYY-MM-DD
	Snapshot  []ForecastSample `json:"temperature_data"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// CurrentConditions is the current-weather view returned by the
// pass-through lookup endpoint. It is never persisted.
type CurrentConditions struct {
	Name       string            `json:"name"`
	Country    string            `json:"country"`
	Temp       float64           `json:"temp"`
	FeelsLike  float64           `json:"feels_like"`
	Humidity   int               `json:"humidity"`
	Pressure   float64           `json:"pressure"`
	WindSpeed  float64           `json:"wind_speed"`
	Conditions []SampleCondition `json:"conditions"`
	ObservedAt time.Time         `json:"observed_at"`
}
