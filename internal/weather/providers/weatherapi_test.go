package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeatherAPIFetchForecast(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "6", r.URL.Query().Get("days"))
		w.Write([]byte(`{"forecast":{"forecastday":[
			{"hour":[
				{"time_epoch":1717243200,"temp_c":21.5,"feelslike_c":20.9,"humidity":55,"condition":{"text":"Partly cloudy"}},
				{"time_epoch":1717246800,"temp_c":20,"feelslike_c":19.5,"humidity":60,"condition":{"text":"Light rain shower"}}
			]},
			{"hour":[
				{"time_epoch":1717329600,"temp_c":18,"feelslike_c":17.1,"humidity":72,"condition":{"text":""}}
			]}
		]}}`))
	}))
	defer srv.Close()

	p := NewWeatherAPIProvider(srv.Client(), "test-key")
	p.baseURL = srv.URL

	samples, err := p.FetchForecast(context.Background(), 48.85, 2.35)
	require.NoError(t, err)
	require.Len(t, samples, 3)

	assert.Equal(t, int64(1717243200), samples[0].Dt)
	assert.Equal(t, 21.5, samples[0].Main.Temp)
	assert.Equal(t, 55, samples[0].Main.Humidity)
	require.Len(t, samples[0].Weather, 1)
	assert.Equal(t, "Clouds", samples[0].Weather[0].Main)

	assert.Equal(t, "Rain", samples[1].Weather[0].Main)
	assert.Equal(t, "light rain shower", samples[1].Weather[0].Description)

	// Empty condition text maps to no conditions, which callers tolerate.
	assert.Empty(t, samples[2].Weather)
}

func TestWeatherAPIFetchForecastWithoutKey(t *testing.T) {
	p := NewWeatherAPIProvider(http.DefaultClient, "")
	_, err := p.FetchForecast(context.Background(), 48.85, 2.35)
	assert.Error(t, err)
}

func TestMapWeatherAPICondition(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Heavy snow", "Snow"},
		{"Thundery outbreaks possible", "Thunderstorm"},
		{"Sunny", "Clear"},
		{"Fog", "Mist"},
		{"Overcast", "Clouds"},
		{"Volcanic ash", "Volcanic ash"},
	}
	for _, tt := range tests {
		got := mapWeatherAPICondition(tt.text)
		require.Len(t, got, 1, tt.text)
		assert.Equal(t, tt.want, got[0].Main, tt.text)
	}
}
