package database

import (
	"database/sql"
	"fmt"

	"igc_reader/internal/models"

	_ "github.com/mattn/go-sqlite3"
)

// Repository defines the interface for flight archive operations
type Repository interface {
	SaveFlight(sourcePath string, flight *models.FlightRecord) (int64, error)
	GetFlight(id int64) (*models.FlightRecord, error)
	Close() error
}

// DB implements the Repository interface using SQLite
type DB struct {
	db      *sql.DB
	flights *flightRepository
}

// New creates and initializes a new database connection.
// Fixes are written in batches of batchSize rows.
func New(dbPath string, batchSize int) (*DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := optimizeSQLite(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to optimize database: %w", err)
	}

	database := &DB{
		db:      db,
		flights: newFlightRepository(db, batchSize),
	}

	if err := database.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return database, nil
}

// optimizeSQLite applies pragmas suited to a single writer importing flights
func optimizeSQLite(db *sql.DB) error {
	// Enable WAL mode so readers are not blocked while a flight is imported
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA synchronous=NORMAL"); err != nil {
		return fmt.Errorf("failed to set synchronous mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	return nil
}

// Close closes the database connection
func (d *DB) Close() error {
	return d.db.Close()
}

// initSchema creates the database schema if it doesn't exist
func (d *DB) initSchema() error {
	flightsSchema := `CREATE TABLE IF NOT EXISTS flights (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		source_path TEXT NOT NULL,
		manufacturer TEXT,
		unique_id TEXT,
		id_extension TEXT,
		utc_date TEXT,
		fix_accuracy TEXT,
		pilot TEXT,
		copilot TEXT,
		glider_model TEXT,
		glider_registration TEXT,
		gps_datum TEXT,
		firmware_revision TEXT,
		hardware_revision TEXT,
		fr_manufacturer_model TEXT,
		gps_manufacturer_model TEXT,
		pressure_sensor TEXT,
		competition_id TEXT,
		competition_class TEXT,
		download_software TEXT,
		gnss_altitude_datum TEXT,
		pressure_altitude_datum TEXT,
		time_zone TEXT,
		fix_count INTEGER NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`

	fixesSchema := `CREATE TABLE IF NOT EXISTS fixes (
		flight_id INTEGER NOT NULL REFERENCES flights(id) ON DELETE CASCADE,
		seq INTEGER NOT NULL,
		time TEXT NOT NULL,
		latitude TEXT NOT NULL,
		longitude TEXT NOT NULL,
		validity TEXT NOT NULL,
		pressure_altitude TEXT NOT NULL,
		gnss_altitude TEXT NOT NULL,
		PRIMARY KEY (flight_id, seq)
	);`

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_flights_utc_date ON flights(utc_date)`,
		`CREATE INDEX IF NOT EXISTS idx_flights_pilot ON flights(pilot)`,
	}

	if _, err := d.db.Exec(flightsSchema); err != nil {
		return fmt.Errorf("failed to create flights table: %w", err)
	}

	if _, err := d.db.Exec(fixesSchema); err != nil {
		return fmt.Errorf("failed to create fixes table: %w", err)
	}

	for _, idx := range indexes {
		if _, err := d.db.Exec(idx); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

// SaveFlight stores a decoded flight and returns its id
func (d *DB) SaveFlight(sourcePath string, flight *models.FlightRecord) (int64, error) {
	return d.flights.Insert(sourcePath, flight)
}

// GetFlight loads a stored flight by id
func (d *DB) GetFlight(id int64) (*models.FlightRecord, error) {
	return d.flights.Get(id)
}
