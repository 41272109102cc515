package weather

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleAt(t time.Time, temp float64) ForecastSample {
	return ForecastSample{
		Dt:   t.Unix(),
		Main: SampleMain{Temp: temp, FeelsLike: temp, Humidity: 60},
		Weather: []SampleCondition{
			{Main: "Clouds", Description: "scattered clouds"},
		},
	}
}

func mustWindow(t *testing.T, start, end string) DateWindow {
	t.Helper()
	w, err := ValidateRange(start, end)
	require.NoError(t, err)
	return w
}

func TestFilterSamplesBounds(t *testing.T) {
	window := mustWindow(t, "2024-06-01", "2024-06-03")

	samples := []ForecastSample{
		sampleAt(time.Date(2024, 5, 31, 23, 59, 59, 0, time.UTC), 10), // before
		sampleAt(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), 11),    // first instant
		sampleAt(time.Date(2024, 6, 2, 12, 0, 0, 0, time.UTC), 12),   // inside
		sampleAt(time.Date(2024, 6, 3, 23, 59, 59, 0, time.UTC), 13), // last instant
		sampleAt(time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC), 14),    // after
	}

	got := FilterSamples(samples, window)
	require.Len(t, got, 3)
	assert.Equal(t, 11.0, got[0].Main.Temp)
	assert.Equal(t, 12.0, got[1].Main.Temp)
	assert.Equal(t, 13.0, got[2].Main.Temp)
}

func TestFilterSamplesPreservesOrder(t *testing.T) {
	window := mustWindow(t, "2024-06-01", "2024-06-02")

	// Deliberately unordered input: the filter must not re-sort.
	samples := []ForecastSample{
		sampleAt(time.Date(2024, 6, 2, 9, 0, 0, 0, time.UTC), 20),
		sampleAt(time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC), 21),
		sampleAt(time.Date(2024, 6, 2, 3, 0, 0, 0, time.UTC), 22),
	}

	got := FilterSamples(samples, window)
	require.Len(t, got, 3)
	assert.Equal(t, []float64{20, 21, 22}, []float64{got[0].Main.Temp, got[1].Main.Temp, got[2].Main.Temp})
}

func TestFilterSamplesEmptyResult(t *testing.T) {
	window := mustWindow(t, "2024-06-01", "2024-06-03")

	samples := []ForecastSample{
		sampleAt(time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), 30),
	}

	got := FilterSamples(samples, window)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	got = FilterSamples(nil, window)
	assert.Empty(t, got)
}

func TestFilterSamplesIdempotent(t *testing.T) {
	window := mustWindow(t, "2024-06-01", "2024-06-03")

	var samples []ForecastSample
	for h := 0; h < 120; h += 3 {
		samples = append(samples, sampleAt(time.Date(2024, 6, 1, h, 0, 0, 0, time.UTC), float64(h)))
	}

	once := FilterSamples(samples, window)
	twice := FilterSamples(once, window)
	assert.Equal(t, once, twice)
}

func TestFilterSamplesToleratesEmptyConditions(t *testing.T) {
	window := mustWindow(t, "2024-06-01", "2024-06-01")

	s := ForecastSample{Dt: time.Date(2024, 6, 1, 6, 0, 0, 0, time.UTC).Unix()}
	got := FilterSamples([]ForecastSample{s}, window)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].Weather)
}
