// Package geo ranks hospitals and safe zones by great-circle distance from a
// reference point, backing the "find near me" endpoints.
package geo

import (
	"math"
	"sort"

	"github.com/disasterwatch/italia/internal/models"
)

const earthRadiusKM = 6371.0

// Distance returns the haversine distance between two points in kilometers.
func Distance(from, to models.Coordinates) float64 {
	lat1 := from.Latitude * math.Pi / 180
	lat2 := to.Latitude * math.Pi / 180
	dLat := (to.Latitude - from.Latitude) * math.Pi / 180
	dLon := (to.Longitude - from.Longitude) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKM * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// RankedHospital is a hospital annotated with its distance from the caller.
type RankedHospital struct {
	models.Hospital
	DistanceKM float64 `json:"distance_km"`
}

// NearestHospitals returns the k hospitals closest to ref, nearest first.
// Fewer than k hospitals returns all of them; k <= 0 returns an empty slice.
// Hospitals at identical distance keep their input order.
func NearestHospitals(ref models.Coordinates, hospitals []models.Hospital, k int) []RankedHospital {
	if k <= 0 || len(hospitals) == 0 {
		return []RankedHospital{}
	}

	ranked := make([]RankedHospital, 0, len(hospitals))
	for _, h := range hospitals {
		ranked = append(ranked, RankedHospital{
			Hospital:   h,
			DistanceKM: Distance(ref, h.Coordinates()),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DistanceKM < ranked[j].DistanceKM
	})

	if k < len(ranked) {
		ranked = ranked[:k]
	}
	return ranked
}

// RankedZone is a safe zone annotated with its distance from the caller.
type RankedZone struct {
	models.SafeZone
	DistanceKM float64 `json:"distance_km"`
}

// NearestZone returns the closest safe zone to ref, or false when zones is
// empty.
func NearestZone(ref models.Coordinates, zones []models.SafeZone) (RankedZone, bool) {
	var best RankedZone
	found := false
	for _, z := range zones {
		d := Distance(ref, z.Coordinates())
		if !found || d < best.DistanceKM {
			best = RankedZone{SafeZone: z, DistanceKM: d}
			found = true
		}
	}
	return best, found
}
