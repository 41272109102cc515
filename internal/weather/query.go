package weather

import (
	"fmt"
	"net/url"
	"strings"
)

// QueryKind tags the search mode of a LocationQuery.
type QueryKind int

const (
	QueryCityStateCountry QueryKind = iota
	QueryZip
	QueryCoordinates
	QueryFreeText
)

// LocationQuery is a closed variant over the four dashboard search modes:
// city/state/country picker, zip code, coordinates, and free text. Each
// constructor fills only the fields its mode uses; Values renders the
// provider query parameters for the active mode.
type LocationQuery struct {
	Kind QueryKind

	City    string
	State   string
	Country string

	Zip string

	Lat float64
	Lon float64

	Text string
}

// CityQuery builds a city/state/country picker query. State and country
// may be empty.
func CityQuery(city, state, country string) LocationQuery {
	return LocationQuery{Kind: QueryCityStateCountry, City: city, State: state, Country: country}
}

// ZipQuery builds a zip-code query, optionally scoped to a country code.
func ZipQuery(zip, country string) LocationQuery {
	return LocationQuery{Kind: QueryZip, Zip: zip, Country: country}
}

// CoordinateQuery builds a direct latitude/longitude query.
func CoordinateQuery(lat, lon float64) LocationQuery {
	return LocationQuery{Kind: QueryCoordinates, Lat: lat, Lon: lon}
}

// FreeTextQuery builds a free-text query ("Paris", "Eiffel Tower", ...).
func FreeTextQuery(text string) LocationQuery {
	return LocationQuery{Kind: QueryFreeText, Text: strings.TrimSpace(text)}
}

// Values renders the OpenWeatherMap query parameters for this query.
func (q LocationQuery) Values() url.Values {
	values := url.Values{}
	switch q.Kind {
	case QueryCityStateCountry:
		parts := []string{q.City}
		if q.State != "" {
			parts = append(parts, q.State)
		}
		if q.Country != "" {
			parts = append(parts, q.Country)
		}
		values.Set("q", strings.Join(parts, ","))
	case QueryZip:
		zip := q.Zip
		if q.Country != "" {
			zip = fmt.Sprintf("%s,%s", q.Zip, q.Country)
		}
		values.Set("zip", zip)
	case QueryCoordinates:
		values.Set("lat", fmt.Sprintf("%f", q.Lat))
		values.Set("lon", fmt.Sprintf("%f", q.Lon))
	case QueryFreeText:
		values.Set("q", q.Text)
	}
	return values
}

// IsZero reports whether the query carries no usable input for its mode.
func (q LocationQuery) IsZero() bool {
	switch q.Kind {
	case QueryCityStateCountry:
		return q.City == ""
	case QueryZip:
		return q.Zip == ""
	case QueryCoordinates:
		return false
	case QueryFreeText:
		return q.Text == ""
	}
	return true
}
