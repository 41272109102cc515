package weather

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRange(t *testing.T) {
	t.Run("five day window is accepted", func(t *testing.T) {
		w, err := ValidateRange("2024-06-01", "2024-06-06")
		require.NoError(t, err)
		assert.Equal(t, "2024-06-01", w.StartDate())
		assert.Equal(t, "2024-06-06", w.EndDate())
		assert.Equal(t, 5, w.Days())
	})

	t.Run("zero width window is valid", func(t *testing.T) {
		w, err := ValidateRange("2024-06-01", "2024-06-01")
		require.NoError(t, err)
		assert.Equal(t, 0, w.Days())
		assert.True(t, w.Start.Equal(w.End))
	})

	t.Run("window bounds are midnight UTC", func(t *testing.T) {
		w, err := ValidateRange("2024-06-01", "2024-06-03")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), w.Start)
		assert.Equal(t, time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), w.End)
	})

	t.Run("end before start", func(t *testing.T) {
		_, err := ValidateRange("2024-06-03", "2024-06-01")
		assert.ErrorIs(t, err, ErrInvalidDateOrder)
	})

	t.Run("span over five days", func(t *testing.T) {
		_, err := ValidateRange("2024-06-01", "2024-06-07")
		assert.ErrorIs(t, err, ErrRangeTooLarge)
	})

	t.Run("unparseable dates", func(t *testing.T) {
		for _, tc := range [][2]string{
			{"junk", "2024-06-01"},
			{"2024-06-01", "junk"},
			{"2024-13-40", "2024-06-01"},
			{"", ""},
			{"06/01/2024", "06/03/2024"},
		} {
			_, err := ValidateRange(tc[0], tc[1])
			assert.ErrorIs(t, err, ErrInvalidDateFormat, "start=%q end=%q", tc[0], tc[1])
		}
	})
}
