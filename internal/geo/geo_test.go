package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/disasterwatch/italia/internal/models"
)

var (
	roma    = models.Coordinates{Latitude: 41.9028, Longitude: 12.4964}
	milano  = models.Coordinates{Latitude: 45.4642, Longitude: 9.1900}
	napoli  = models.Coordinates{Latitude: 40.8518, Longitude: 14.2681}
	palermo = models.Coordinates{Latitude: 38.1157, Longitude: 13.3615}
)

func TestDistance_SamePoint(t *testing.T) {
	ref := models.Coordinates{Latitude: 41.9, Longitude: 12.5}
	assert.InDelta(t, 0, Distance(ref, ref), 1e-9)
}

func TestDistance_KnownCityPair(t *testing.T) {
	// Roma-Milano is roughly 477 km great-circle.
	d := Distance(roma, milano)
	assert.InDelta(t, 477, d, 10)

	// Symmetric.
	assert.InDelta(t, d, Distance(milano, roma), 1e-9)
}

func hospitalAt(id string, c models.Coordinates) models.Hospital {
	return models.Hospital{ID: id, Latitude: c.Latitude, Longitude: c.Longitude}
}

func TestNearestHospitals_RanksByDistance(t *testing.T) {
	hospitals := []models.Hospital{
		hospitalAt("milano", milano),
		hospitalAt("palermo", palermo),
		hospitalAt("napoli", napoli),
	}

	got := NearestHospitals(roma, hospitals, 2)
	require.Len(t, got, 2)
	assert.Equal(t, "napoli", got[0].ID)
	assert.Equal(t, "palermo", got[1].ID)
	assert.Less(t, got[0].DistanceKM, got[1].DistanceKM)
}

func TestNearestHospitals_KLargerThanInput(t *testing.T) {
	hospitals := []models.Hospital{
		hospitalAt("a", milano),
		hospitalAt("b", napoli),
	}

	got := NearestHospitals(roma, hospitals, 10)
	assert.Len(t, got, 2)
}

func TestNearestHospitals_InvalidK(t *testing.T) {
	hospitals := []models.Hospital{hospitalAt("a", milano)}

	assert.Empty(t, NearestHospitals(roma, hospitals, 0))
	assert.Empty(t, NearestHospitals(roma, hospitals, -3))
}

func TestNearestHospitals_EmptyInput(t *testing.T) {
	assert.Empty(t, NearestHospitals(roma, nil, 5))
}

func TestNearestHospitals_StableOnEqualDistance(t *testing.T) {
	// Two hospitals at the exact same coordinates keep input order.
	hospitals := []models.Hospital{
		hospitalAt("first", napoli),
		hospitalAt("second", napoli),
		hospitalAt("far", milano),
	}

	got := NearestHospitals(roma, hospitals, 3)
	require.Len(t, got, 3)
	assert.Equal(t, "first", got[0].ID)
	assert.Equal(t, "second", got[1].ID)
}

func TestNearestHospitals_SortedInvariant(t *testing.T) {
	hospitals := []models.Hospital{
		hospitalAt("a", palermo),
		hospitalAt("b", roma),
		hospitalAt("c", milano),
		hospitalAt("d", napoli),
	}

	got := NearestHospitals(models.Coordinates{Latitude: 43.0, Longitude: 11.0}, hospitals, 4)
	require.Len(t, got, 4)
	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, got[i-1].DistanceKM, got[i].DistanceKM)
	}
}

func TestNearestZone(t *testing.T) {
	zones := []models.SafeZone{
		{ID: "z1", Name: "Rifugio Vesuvio", Latitude: 40.8218, Longitude: 14.4262},
		{ID: "z2", Name: "Area Rifugio Parco Sempione", Latitude: 45.4734, Longitude: 9.1739},
	}

	got, ok := NearestZone(napoli, zones)
	require.True(t, ok)
	assert.Equal(t, "z1", got.ID)
	assert.Greater(t, got.DistanceKM, 0.0)
}

func TestNearestZone_Empty(t *testing.T) {
	_, ok := NearestZone(roma, nil)
	assert.False(t, ok)
}
