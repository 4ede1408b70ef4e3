package models

type ZoneType string

const (
	ZoneEarthquakeShelter ZoneType = "earthquake_shelter"
	ZoneFloodHighGround   ZoneType = "flood_high_ground"
	ZoneCoolingCenter     ZoneType = "cooling_center"
)

// SafeZone is an evacuation point or cooling center.
type SafeZone struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	ZoneType   ZoneType `json:"zone_type"`
	Latitude   float64  `json:"latitude"`
	Longitude  float64  `json:"longitude"`
	Capacity   int      `json:"capacity"`
	Address    string   `json:"address"`
	Region     string   `json:"region"`
	Facilities []string `json:"facilities"`
}

func (z SafeZone) Coordinates() Coordinates {
	return Coordinates{Latitude: z.Latitude, Longitude: z.Longitude}
}
