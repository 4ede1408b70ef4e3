package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/disasterwatch/italia/internal/models"
)

func (s *SQLiteDB) ListHospitals(ctx context.Context, region string) ([]models.Hospital, error) {
	q := `SELECT id, name, address, city, region, latitude, longitude,
		total_beds, available_beds, icu_beds, icu_available,
		emergency_capacity, equipment, contact_phone, last_updated
		FROM hospitals`
	var args []any
	if region != "" {
		q += " WHERE region = ?"
		args = append(args, region)
	}
	q += " ORDER BY name"

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing hospitals: %w", err)
	}
	defer rows.Close()

	var out []models.Hospital
	for rows.Next() {
		h, err := scanHospital(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *h)
	}
	return out, rows.Err()
}

func (s *SQLiteDB) GetHospital(ctx context.Context, id string) (*models.Hospital, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, name, address, city, region, latitude, longitude,
		total_beds, available_beds, icu_beds, icu_available,
		emergency_capacity, equipment, contact_phone, last_updated
		FROM hospitals WHERE id = ?`, id)

	h, err := scanHospital(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return h, nil
}

func (s *SQLiteDB) CreateHospital(ctx context.Context, h *models.Hospital) error {
	equipment, err := json.Marshal(h.Equipment)
	if err != nil {
		return fmt.Errorf("error encoding equipment: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO hospitals (id, name, address, city, region, latitude, longitude,
			total_beds, available_beds, icu_beds, icu_available,
			emergency_capacity, equipment, contact_phone, last_updated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		h.ID, h.Name, h.Address, h.City, h.Region, h.Latitude, h.Longitude,
		h.TotalBeds, h.AvailableBeds, h.ICUBeds, h.ICUAvailable,
		h.EmergencyCapacity, string(equipment), h.ContactPhone, h.LastUpdated)
	if err != nil {
		return fmt.Errorf("error inserting hospital: %w", err)
	}
	return nil
}

// UpdateHospital applies the non-nil fields of upd and returns the fresh row.
func (s *SQLiteDB) UpdateHospital(ctx context.Context, id string, upd models.HospitalUpdate, now time.Time) (*models.Hospital, error) {
	q := "UPDATE hospitals SET last_updated = ?"
	args := []any{now}

	if upd.AvailableBeds != nil {
		q += ", available_beds = ?"
		args = append(args, *upd.AvailableBeds)
	}
	if upd.ICUAvailable != nil {
		q += ", icu_available = ?"
		args = append(args, *upd.ICUAvailable)
	}
	if upd.EmergencyCapacity != nil {
		q += ", emergency_capacity = ?"
		args = append(args, *upd.EmergencyCapacity)
	}
	if upd.Equipment != nil {
		equipment, err := json.Marshal(*upd.Equipment)
		if err != nil {
			return nil, fmt.Errorf("error encoding equipment: %w", err)
		}
		q += ", equipment = ?"
		args = append(args, string(equipment))
	}

	q += " WHERE id = ?"
	args = append(args, id)

	res, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("error updating hospital: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("error reading rows affected: %w", err)
	}
	if affected == 0 {
		return nil, ErrNotFound
	}

	return s.GetHospital(ctx, id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHospital(row rowScanner) (*models.Hospital, error) {
	var h models.Hospital
	var address, phone sql.NullString
	var equipment string
	if err := row.Scan(&h.ID, &h.Name, &address, &h.City, &h.Region, &h.Latitude, &h.Longitude,
		&h.TotalBeds, &h.AvailableBeds, &h.ICUBeds, &h.ICUAvailable,
		&h.EmergencyCapacity, &equipment, &phone, &h.LastUpdated); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("error scanning hospital: %w", err)
	}
	h.Address = address.String
	h.ContactPhone = phone.String
	if err := json.Unmarshal([]byte(equipment), &h.Equipment); err != nil {
		return nil, fmt.Errorf("error decoding equipment: %w", err)
	}
	return &h, nil
}
