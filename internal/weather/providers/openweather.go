package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/openwx/weather-dashboard/internal/weather"
)

// OpenWeatherProvider talks to OpenWeatherMap. It implements all three
// collaborator roles: geocoding (weather.LocationResolver), the 5-day/3-hour
// forecast feed (weather.ForecastSource) and the current-conditions lookup
// (weather.CurrentSource).
type OpenWeatherProvider struct {
	name        string
	apiKey      string
	geoURL      string
	forecastURL string
	currentURL  string
	httpCfg     HTTPClientConfig
	circuit     *gobreaker.CircuitBreaker
}

func NewOpenWeatherProvider(client *http.Client, apiKey string) *OpenWeatherProvider {
	return &OpenWeatherProvider{
		name:        "openweathermap",
		apiKey:      apiKey,
		geoURL:      "https://api.openweathermap.org/geo/1.0/direct",
		forecastURL: "https://api.openweathermap.org/data/2.5/forecast",
		currentURL:  "https://api.openweathermap.org/data/2.5/weather",
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: defaultBackoff(),
		},
		circuit: newCircuit("openweather"),
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

// Resolve geocodes a free-text location to its canonical name and
// coordinates. A zero-match response maps to weather.ErrLocationNotFound.
func (p *OpenWeatherProvider) Resolve(ctx context.Context, text string) (weather.ResolvedLocation, error) {
	if p.apiKey == "" {
		return weather.ResolvedLocation{}, fmt.Errorf("openweather api key is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("q", text)
		values.Set("limit", "1")
		values.Set("appid", p.apiKey)
		return http.NewRequest(http.MethodGet, fmt.Sprintf("%s?%s", p.geoURL, values.Encode()), nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return weather.ResolvedLocation{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return weather.ResolvedLocation{}, fmt.Errorf("%w: geocoding status %d", weather.ErrUpstream, resp.StatusCode)
	}

	var matches []struct {
		Name string  `json:"name"`
		Lat  float64 `json:"lat"`
		Lon  float64 `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&matches); err != nil {
		return weather.ResolvedLocation{}, fmt.Errorf("%w: decoding geocoding response: %v", weather.ErrUpstream, err)
	}

	if len(matches) == 0 {
		return weather.ResolvedLocation{}, fmt.Errorf("%w: %q", weather.ErrLocationNotFound, text)
	}

	return weather.ResolvedLocation{
		Name: matches[0].Name,
		Lat:  matches[0].Lat,
		Lon:  matches[0].Lon,
	}, nil
}

// FetchForecast returns the provider's 5-day/3-hour forecast horizon for
// the coordinates, ordered by ascending dt as delivered.
func (p *OpenWeatherProvider) FetchForecast(ctx context.Context, lat, lon float64) ([]weather.ForecastSample, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("openweather api key is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("lat", fmt.Sprintf("%f", lat))
		values.Set("lon", fmt.Sprintf("%f", lon))
		values.Set("appid", p.apiKey)
		values.Set("units", "metric")
		return http.NewRequest(http.MethodGet, fmt.Sprintf("%s?%s", p.forecastURL, values.Encode()), nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: forecast status %d", weather.ErrUpstream, resp.StatusCode)
	}

	var payload struct {
		List []weather.ForecastSample `json:"list"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decoding forecast response: %v", weather.ErrUpstream, err)
	}

	return payload.List, nil
}

// FetchCurrent serves the dashboard's current-conditions lookup for any of
// the four search modes.
func (p *OpenWeatherProvider) FetchCurrent(ctx context.Context, query weather.LocationQuery) (weather.CurrentConditions, error) {
	if p.apiKey == "" {
		return weather.CurrentConditions{}, fmt.Errorf("openweather api key is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		values := query.Values()
		values.Set("appid", p.apiKey)
		values.Set("units", "metric")
		return http.NewRequest(http.MethodGet, fmt.Sprintf("%s?%s", p.currentURL, values.Encode()), nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return weather.CurrentConditions{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return weather.CurrentConditions{}, fmt.Errorf("%w: no match for query", weather.ErrLocationNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return weather.CurrentConditions{}, fmt.Errorf("%w: current weather status %d", weather.ErrUpstream, resp.StatusCode)
	}

	var payload struct {
		Name string `json:"name"`
		Dt   int64  `json:"dt"`
		Main struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			Humidity  int     `json:"humidity"`
			Pressure  float64 `json:"pressure"`
		} `json:"main"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
		Weather []weather.SampleCondition `json:"weather"`
		Sys     struct {
			Country string `json:"country"`
		} `json:"sys"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.CurrentConditions{}, fmt.Errorf("%w: decoding current weather response: %v", weather.ErrUpstream, err)
	}

	return weather.CurrentConditions{
		Name:       payload.Name,
		Country:    payload.Sys.Country,
		Temp:       payload.Main.Temp,
		FeelsLike:  payload.Main.FeelsLike,
		Humidity:   payload.Main.Humidity,
		Pressure:   payload.Main.Pressure,
		WindSpeed:  payload.Wind.Speed,
		Conditions: payload.Weather,
		ObservedAt: time.Unix(payload.Dt, 0).UTC(),
	}, nil
}
