package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocationQueryValues(t *testing.T) {
	tests := []struct {
		name  string
		query LocationQuery
		want  string
	}{
		{"city only", CityQuery("Paris", "", ""), "q=Paris"},
		{"city state country", CityQuery("Portland", "OR", "US"), "q=Portland%2COR%2CUS"},
		{"zip", ZipQuery("97201", ""), "zip=97201"},
		{"zip with country", ZipQuery("75001", "FR"), "zip=75001%2CFR"},
		{"coordinates", CoordinateQuery(48.85, 2.35), "lat=48.850000&lon=2.350000"},
		{"free text", FreeTextQuery("  Eiffel Tower "), "q=Eiffel+Tower"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.query.Values().Encode())
		})
	}
}

func TestLocationQueryIsZero(t *testing.T) {
	assert.True(t, CityQuery("", "", "US").IsZero())
	assert.True(t, ZipQuery("", "").IsZero())
	assert.True(t, FreeTextQuery("   ").IsZero())
	assert.False(t, CoordinateQuery(0, 0).IsZero())
	assert.False(t, FreeTextQuery("Paris").IsZero())
}
