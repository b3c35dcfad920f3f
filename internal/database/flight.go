package database

import (
	"database/sql"
	"errors"
	"fmt"

	"igc_reader/internal/models"
)

// ErrFlightNotFound is returned when no flight has the requested id
var ErrFlightNotFound = errors.New("flight not found")

type flightRepository struct {
	db        *sql.DB
	batchSize int
}

func newFlightRepository(db *sql.DB, batchSize int) *flightRepository {
	if batchSize <= 0 {
		batchSize = 500
	}
	return &flightRepository{db: db, batchSize: batchSize}
}

// Insert stores the flight and all of its fixes in a single transaction
func (r *flightRepository) Insert(sourcePath string, flight *models.FlightRecord) (int64, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	m, h := flight.Manufacturer, flight.Header
	res, err := tx.Exec(`INSERT INTO flights (
		source_path, manufacturer, unique_id, id_extension,
		utc_date, fix_accuracy, pilot, copilot, glider_model, glider_registration,
		gps_datum, firmware_revision, hardware_revision, fr_manufacturer_model,
		gps_manufacturer_model, pressure_sensor, competition_id, competition_class,
		download_software, gnss_altitude_datum, pressure_altitude_datum, time_zone,
		fix_count
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sourcePath, m.Manufacturer, m.UniqueID, m.IDExtension,
		h.UTCDate, h.FixAccuracy, h.Pilot, h.Copilot, h.GliderModel, h.GliderRegistration,
		h.GPSDatum, h.FirmwareRevision, h.HardwareRevision, h.FRManufacturerModel,
		h.GPSManufacturerModel, h.PressureSensor, h.CompetitionID, h.CompetitionClass,
		h.DownloadSoftware, h.GNSSAltitudeDatum, h.PressureAltitudeDatum, h.TimeZone,
		flight.FixCount(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert flight: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get flight id: %w", err)
	}

	for start := 0; start < len(flight.Fixes); start += r.batchSize {
		end := min(start+r.batchSize, len(flight.Fixes))
		if err := insertFixBatch(tx, id, start, flight.Fixes[start:end]); err != nil {
			return 0, fmt.Errorf("failed to insert fixes %d-%d: %w", start, end, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return id, nil
}

// insertFixBatch inserts fixes numbered from seq onwards with one prepared statement
func insertFixBatch(tx *sql.Tx, flightID int64, seq int, fixes []models.FixRecord) error {
	stmt, err := tx.Prepare(`INSERT INTO fixes (
		flight_id, seq, time, latitude, longitude, validity, pressure_altitude, gnss_altitude
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for i, fix := range fixes {
		if _, err := stmt.Exec(
			flightID, seq+i, fix.Time, fix.Latitude, fix.Longitude,
			fix.Validity, fix.PressureAltitude, fix.GNSSAltitude,
		); err != nil {
			return fmt.Errorf("failed to insert fix: %w", err)
		}
	}

	return nil
}

// Get loads a flight and its fixes in file order
func (r *flightRepository) Get(id int64) (*models.FlightRecord, error) {
	flight := models.NewFlightRecord()
	m, h := &flight.Manufacturer, &flight.Header

	err := r.db.QueryRow(`SELECT
		manufacturer, unique_id, id_extension,
		utc_date, fix_accuracy, pilot, copilot, glider_model, glider_registration,
		gps_datum, firmware_revision, hardware_revision, fr_manufacturer_model,
		gps_manufacturer_model, pressure_sensor, competition_id, competition_class,
		download_software, gnss_altitude_datum, pressure_altitude_datum, time_zone
	FROM flights WHERE id = ?`, id).Scan(
		&m.Manufacturer, &m.UniqueID, &m.IDExtension,
		&h.UTCDate, &h.FixAccuracy, &h.Pilot, &h.Copilot, &h.GliderModel, &h.GliderRegistration,
		&h.GPSDatum, &h.FirmwareRevision, &h.HardwareRevision, &h.FRManufacturerModel,
		&h.GPSManufacturerModel, &h.PressureSensor, &h.CompetitionID, &h.CompetitionClass,
		&h.DownloadSoftware, &h.GNSSAltitudeDatum, &h.PressureAltitudeDatum, &h.TimeZone,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %d", ErrFlightNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load flight %d: %w", id, err)
	}

	rows, err := r.db.Query(`SELECT time, latitude, longitude, validity, pressure_altitude, gnss_altitude
		FROM fixes WHERE flight_id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query fixes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var fix models.FixRecord
		if err := rows.Scan(&fix.Time, &fix.Latitude, &fix.Longitude,
			&fix.Validity, &fix.PressureAltitude, &fix.GNSSAltitude); err != nil {
			return nil, fmt.Errorf("failed to scan fix: %w", err)
		}
		flight.AddFix(fix)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read fixes: %w", err)
	}

	return flight, nil
}
