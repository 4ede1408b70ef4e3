package repository

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

type SQLiteDB struct {
	db *sql.DB
}

func NewSQLiteDB(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error while pinging database: %w", err)
	}

	s := &SQLiteDB{
		db: db,
	}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("error while migrating database: %w", err)
	}

	return s, nil
}

func (s *SQLiteDB) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS events (
			id TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			risk_level TEXT NOT NULL,
			location TEXT,
			latitude REAL NOT NULL,
			longitude REAL NOT NULL,
			timestamp DATETIME NOT NULL,
			source TEXT,
			magnitude REAL,
			depth REAL,
			river_name TEXT,
			water_level REAL,
			predicted_peak DATETIME,
			evacuation_advised INTEGER NOT NULL DEFAULT 0,
			affected_population INTEGER,
			temperature REAL,
			feels_like REAL,
			humidity REAL,
			duration_hours INTEGER,
			advisory TEXT,
			created_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS hospitals (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			address TEXT,
			city TEXT NOT NULL,
			region TEXT NOT NULL,
			latitude REAL NOT NULL,
			longitude REAL NOT NULL,
			total_beds INTEGER NOT NULL,
			available_beds INTEGER NOT NULL,
			icu_beds INTEGER NOT NULL,
			icu_available INTEGER NOT NULL,
			emergency_capacity INTEGER NOT NULL DEFAULT 1,
			equipment TEXT NOT NULL DEFAULT '[]',
			contact_phone TEXT,
			last_updated DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS predictions (
			id TEXT PRIMARY KEY,
			disaster_type TEXT NOT NULL,
			region TEXT NOT NULL,
			prediction_text TEXT NOT NULL,
			risk_level TEXT NOT NULL,
			confidence REAL NOT NULL,
			valid_from DATETIME NOT NULL,
			valid_until DATETIME NOT NULL,
			recommendations TEXT NOT NULL DEFAULT '[]',
			created_at DATETIME NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_events_kind_timestamp ON events(kind, timestamp);
		CREATE INDEX IF NOT EXISTS idx_hospitals_region ON hospitals(region);
		CREATE INDEX IF NOT EXISTS idx_predictions_type_created ON predictions(disaster_type, created_at);
  	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteDB) Close() error {
	return s.db.Close()
}
