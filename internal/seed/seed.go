// Package seed carries the built-in reference data the service starts from:
// sample hospitals for an empty database and the static safe-zone registry.
package seed

import (
	"fmt"
	"time"

	"github.com/disasterwatch/italia/internal/models"
)

var defaultEquipment = []string{"Ventilators", "CT Scanner", "MRI", "X-Ray", "ECG", "Defibrillators"}

type hospitalSeed struct {
	name      string
	city      string
	region    string
	lat, lon  float64
	totalBeds int
	icuBeds   int
	phone     string
}

var sampleHospitals = []hospitalSeed{
	{"Ospedale Maggiore Policlinico", "Milano", "Lombardia", 45.4595, 9.1903, 900, 80, "+39 02 5503 1"},
	{"Ospedale San Raffaele", "Milano", "Lombardia", 45.5065, 9.2629, 1350, 120, "+39 02 2643 1"},
	{"Policlinico Umberto I", "Roma", "Lazio", 41.9045, 12.5079, 1200, 100, "+39 06 4997 1"},
	{"Ospedale Pediatrico Bambino Gesu", "Roma", "Lazio", 41.8892, 12.4662, 600, 60, "+39 06 6859 1"},
	{"Ospedale Cardarelli", "Napoli", "Campania", 40.8612, 14.2306, 1100, 90, "+39 081 747 1111"},
	{"Policlinico Federico II", "Napoli", "Campania", 40.8406, 14.2508, 800, 70, "+39 081 746 1111"},
	{"Policlinico Universitario", "Palermo", "Sicilia", 38.1097, 13.3543, 700, 55, "+39 091 655 1111"},
	{"Ospedale Civico", "Palermo", "Sicilia", 38.1157, 13.3519, 500, 40, "+39 091 666 1111"},
	{"Ospedale dell'Angelo", "Venezia", "Veneto", 45.4865, 12.2407, 650, 50, "+39 041 965 7111"},
	{"Policlinico Sant'Orsola", "Bologna", "Emilia-Romagna", 44.4937, 11.3527, 1500, 130, "+39 051 214 1111"},
}

// Hospitals returns the starter hospital set used when the database is empty.
// Availability starts at half of capacity; operators adjust it from there.
func Hospitals(now time.Time) []models.Hospital {
	out := make([]models.Hospital, 0, len(sampleHospitals))
	for i, s := range sampleHospitals {
		out = append(out, models.Hospital{
			ID:                fmt.Sprintf("hosp-%02d", i+1),
			Name:              s.name,
			Address:           fmt.Sprintf("Via Ospedale, %s", s.city),
			City:              s.city,
			Region:            s.region,
			Latitude:          s.lat,
			Longitude:         s.lon,
			TotalBeds:         s.totalBeds,
			AvailableBeds:     s.totalBeds / 2,
			ICUBeds:           s.icuBeds,
			ICUAvailable:      s.icuBeds / 2,
			EmergencyCapacity: true,
			Equipment:         append([]string(nil), defaultEquipment...),
			ContactPhone:      s.phone,
			LastUpdated:       now,
		})
	}
	return out
}

var safeZones = []models.SafeZone{
	{ID: "zone-01", Name: "Centro Evacuazione Milano Nord", ZoneType: models.ZoneEarthquakeShelter, Latitude: 45.5100, Longitude: 9.1800, Capacity: 5000, Region: "Lombardia"},
	{ID: "zone-02", Name: "Area Rifugio Parco Sempione", ZoneType: models.ZoneEarthquakeShelter, Latitude: 45.4734, Longitude: 9.1739, Capacity: 3000, Region: "Lombardia"},
	{ID: "zone-03", Name: "Centro Raffreddamento Foro Italico", ZoneType: models.ZoneCoolingCenter, Latitude: 41.9326, Longitude: 12.4624, Capacity: 2000, Region: "Lazio"},
	{ID: "zone-04", Name: "Altura Sicura Colli Romani", ZoneType: models.ZoneFloodHighGround, Latitude: 41.7476, Longitude: 12.7047, Capacity: 10000, Region: "Lazio"},
	{ID: "zone-05", Name: "Rifugio Vesuvio", ZoneType: models.ZoneEarthquakeShelter, Latitude: 40.8218, Longitude: 14.4262, Capacity: 8000, Region: "Campania"},
	{ID: "zone-06", Name: "Centro Emergenza Etna", ZoneType: models.ZoneEarthquakeShelter, Latitude: 37.7510, Longitude: 14.9934, Capacity: 6000, Region: "Sicilia"},
	{ID: "zone-07", Name: "Centro Evacuazione Venezia", ZoneType: models.ZoneFloodHighGround, Latitude: 45.4408, Longitude: 12.3155, Capacity: 4000, Region: "Veneto"},
	{ID: "zone-08", Name: "Rifugio Alto Bologna", ZoneType: models.ZoneEarthquakeShelter, Latitude: 44.4949, Longitude: 11.3426, Capacity: 3500, Region: "Emilia-Romagna"},
	{ID: "zone-09", Name: "Centro Raffreddamento Palermo", ZoneType: models.ZoneCoolingCenter, Latitude: 38.1157, Longitude: 13.3615, Capacity: 2500, Region: "Sicilia"},
	{ID: "zone-10", Name: "Area Sicura Firenze", ZoneType: models.ZoneEarthquakeShelter, Latitude: 43.7696, Longitude: 11.2558, Capacity: 4500, Region: "Toscana"},
}

var zoneFacilities = []string{"Water", "First Aid", "Shelter", "Communications"}

// SafeZones returns the safe-zone registry, optionally filtered by zone type
// and region. Empty filter values match everything.
func SafeZones(zoneType models.ZoneType, region string) []models.SafeZone {
	out := make([]models.SafeZone, 0, len(safeZones))
	for _, z := range safeZones {
		if zoneType != "" && z.ZoneType != zoneType {
			continue
		}
		if region != "" && z.Region != region {
			continue
		}
		z.Address = fmt.Sprintf("Emergency Assembly Point, %s", z.Region)
		z.Facilities = append([]string(nil), zoneFacilities...)
		out = append(out, z)
	}
	return out
}
