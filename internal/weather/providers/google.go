package providers

import (
	"context"
	"fmt"
	"strings"

	"github.com/kelvins/geocoder"

	"github.com/openwx/weather-dashboard/internal/weather"
)

// GoogleResolver is an alternative weather.LocationResolver backed by the
// Google Geocoding API. The library only returns coordinates, so the
// canonical name is the trimmed input text.
type GoogleResolver struct {
	name string
}

func NewGoogleResolver(apiKey string) *GoogleResolver {
	// The geocoder library keys all calls off this package-level value.
	geocoder.ApiKey = apiKey
	return &GoogleResolver{name: "google"}
}

func (r *GoogleResolver) Name() string {
	return r.name
}

func (r *GoogleResolver) Resolve(ctx context.Context, text string) (weather.ResolvedLocation, error) {
	if geocoder.ApiKey == "" {
		return weather.ResolvedLocation{}, fmt.Errorf("google geocoder api key is not configured")
	}

	name := strings.TrimSpace(text)
	if name == "" {
		return weather.ResolvedLocation{}, fmt.Errorf("%w: empty location", weather.ErrLocationNotFound)
	}

	// Free text is split on commas into "city[, state[, country]]"; the
	// Google API tolerates missing components.
	addr := geocoder.Address{City: name}
	if parts := strings.Split(name, ","); len(parts) > 1 {
		addr.City = strings.TrimSpace(parts[0])
		addr.State = strings.TrimSpace(parts[1])
		if len(parts) > 2 {
			addr.Country = strings.TrimSpace(parts[2])
		}
	}

	loc, err := geocoder.Geocoding(addr)
	if err != nil {
		if strings.Contains(err.Error(), "ZERO_RESULTS") {
			return weather.ResolvedLocation{}, fmt.Errorf("%w: %q", weather.ErrLocationNotFound, text)
		}
		return weather.ResolvedLocation{}, fmt.Errorf("%w: geocoding: %v", weather.ErrUpstream, err)
	}

	return weather.ResolvedLocation{
		Name: name,
		Lat:  loc.Latitude,
		Lon:  loc.Longitude,
	}, nil
}
