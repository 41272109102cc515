package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/openwx/weather-dashboard/internal/common"
	"github.com/openwx/weather-dashboard/internal/weather"
)

// WeatherAPIProvider is an alternative weather.ForecastSource backed by
// WeatherAPI.com. Hourly forecast entries are mapped into the same sample
// shape the rest of the system stores, so records stay interchangeable
// regardless of which source produced them.
type WeatherAPIProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewWeatherAPIProvider(client *http.Client, apiKey string) *WeatherAPIProvider {
	return &WeatherAPIProvider{
		name:    "weatherapi",
		apiKey:  apiKey,
		baseURL: "https://api.weatherapi.com/v1/forecast.json",
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: defaultBackoff(),
		},
		circuit: newCircuit("weatherapi"),
	}
}

func (p *WeatherAPIProvider) Name() string {
	return p.name
}

func (p *WeatherAPIProvider) FetchForecast(ctx context.Context, lat, lon float64) ([]weather.ForecastSample, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("weatherapi api key is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("key", p.apiKey)
		values.Set("q", fmt.Sprintf("%f,%f", lat, lon))
		// One more day than the window cap, so a window starting today is
		// always coverable.
		values.Set("days", "6")
		return http.NewRequest(http.MethodGet, fmt.Sprintf("%s?%s", p.baseURL, values.Encode()), nil)
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
		Forecast struct {
			ForecastDay []struct {
				Hour []struct {
					TimeEpoch  int64   `json:"time_epoch"`
					TempC      float64 `json:"temp_c"`
					FeelslikeC float64 `json:"feelslike_c"`
					Humidity   int     `json:"humidity"`
					Condition  struct {
						Text string `json:"text"`
					} `json:"condition"`
				} `json:"hour"`
			} `json:"forecastday"`
		} `json:"forecast"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decoding forecast response: %v", weather.ErrUpstream, err)
	}

	var samples []weather.ForecastSample
	for _, day := range payload.Forecast.ForecastDay {
		for _, h := range day.Hour {
			samples = append(samples, weather.ForecastSample{
				Dt: h.TimeEpoch,
				Main: weather.SampleMain{
					Temp:      h.TempC,
					FeelsLike: h.FeelslikeC,
					Humidity:  h.Humidity,
				},
				Weather: mapWeatherAPICondition(h.Condition.Text),
			})
		}
	}

	return samples, nil
}

// mapWeatherAPICondition coarsens WeatherAPI's free-form condition text
// into the category/description pair the stored sample shape expects.
func mapWeatherAPICondition(text string) []weather.SampleCondition {
	if text == "" {
		return nil
	}

	lower := strings.ToLower(text)
	var category string
	switch {
	case common.HasAny(lower, "rain", "shower", "drizzle"):
		category = "Rain"
	case common.HasAny(lower, "snow", "sleet", "blizzard"):
		category = "Snow"
	case common.HasAny(lower, "thunder", "storm"):
		category = "Thunderstorm"
	case common.HasAny(lower, "cloud", "overcast"):
		category = "Clouds"
	case common.HasAny(lower, "sunny", "clear"):
		category = "Clear"
	case common.HasAny(lower, "mist", "fog", "haze"):
		category = "Mist"
	default:
		category = text
	}

	return []weather.SampleCondition{{Main: category, Description: lower}}
}
