package models

import "time"

// Hospital is a facility record with current bed availability.
// AvailableBeds <= TotalBeds and ICUAvailable <= ICUBeds.
type Hospital struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Address           string    `json:"address"`
	City              string    `json:"city"`
	Region            string    `json:"region"`
	Latitude          float64   `json:"latitude"`
	Longitude         float64   `json:"longitude"`
	TotalBeds         int       `json:"total_beds"`
	AvailableBeds     int       `json:"available_beds"`
	ICUBeds           int       `json:"icu_beds"`
	ICUAvailable      int       `json:"icu_available"`
	EmergencyCapacity bool      `json:"emergency_capacity"`
	Equipment         []string  `json:"equipment"`
	ContactPhone      string    `json:"contact_phone"`
	LastUpdated       time.Time `json:"last_updated"`
}

func (h Hospital) Coordinates() Coordinates {
	return Coordinates{Latitude: h.Latitude, Longitude: h.Longitude}
}

// HospitalUpdate carries the fields an operator may change after admission
// counts shift. Nil pointers mean "leave unchanged".
type HospitalUpdate struct {
	AvailableBeds     *int      `json:"available_beds"`
	ICUAvailable      *int      `json:"icu_available"`
	EmergencyCapacity *bool     `json:"emergency_capacity"`
	Equipment         *[]string `json:"equipment"`
}
