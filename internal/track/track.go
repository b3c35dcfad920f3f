// Package track converts decoded fixes into map geometry.
package track

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"igc_reader/internal/models"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// ErrBadCoordinate is returned when a fix coordinate cannot be converted to degrees
var ErrBadCoordinate = errors.New("bad coordinate")

// ParseLatitude converts a DDMMmmm[N|S] latitude to decimal degrees
func ParseLatitude(s string) (float64, error) {
	return parseCoordinate(s, 2, 'N', 'S')
}

// ParseLongitude converts a DDDMMmmm[E|W] longitude to decimal degrees
func ParseLongitude(s string) (float64, error) {
	return parseCoordinate(s, 3, 'E', 'W')
}

func parseCoordinate(s string, degDigits int, pos, neg byte) (float64, error) {
	if len(s) != degDigits+6 {
		return 0, fmt.Errorf("%w: %q", ErrBadCoordinate, s)
	}

	deg, err := strconv.Atoi(s[:degDigits])
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrBadCoordinate, s, err)
	}
	// Minutes are MMmmm, thousandths of a minute
	milliMinutes, err := strconv.Atoi(s[degDigits : degDigits+5])
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrBadCoordinate, s, err)
	}

	value := float64(deg) + float64(milliMinutes)/60000.0

	switch s[len(s)-1] {
	case pos:
		return value, nil
	case neg:
		return -value, nil
	default:
		return 0, fmt.Errorf("%w: %q: bad hemisphere", ErrBadCoordinate, s)
	}
}

// Point returns the position of a fix as lon/lat
func Point(fix models.FixRecord) (orb.Point, error) {
	lat, err := ParseLatitude(fix.Latitude)
	if err != nil {
		return orb.Point{}, err
	}
	lon, err := ParseLongitude(fix.Longitude)
	if err != nil {
		return orb.Point{}, err
	}
	return orb.Point{lon, lat}, nil
}

// LineString returns the fixes of a flight as a track in file order
func LineString(flight *models.FlightRecord) (orb.LineString, error) {
	ls := make(orb.LineString, 0, len(flight.Fixes))
	for i, fix := range flight.Fixes {
		p, err := Point(fix)
		if err != nil {
			return nil, fmt.Errorf("fix %d: %w", i, err)
		}
		ls = append(ls, p)
	}
	return ls, nil
}

// FeatureCollection builds a GeoJSON document holding the flight track
// followed by one point feature per fix.
func FeatureCollection(flight *models.FlightRecord) (*geojson.FeatureCollection, error) {
	ls, err := LineString(flight)
	if err != nil {
		return nil, err
	}

	fc := geojson.NewFeatureCollection()

	trackFeature := geojson.NewFeature(ls)
	trackFeature.Properties["kind"] = "track"
	setIfPresent(trackFeature.Properties, "date", flight.Header.UTCDate)
	setIfPresent(trackFeature.Properties, "pilot", flight.Header.Pilot)
	setIfPresent(trackFeature.Properties, "glider", flight.Header.GliderModel)
	setIfPresent(trackFeature.Properties, "registration", flight.Header.GliderRegistration)
	setIfPresent(trackFeature.Properties, "manufacturer", flight.Manufacturer.Manufacturer)
	fc.Append(trackFeature)

	for i, fix := range flight.Fixes {
		f := geojson.NewFeature(ls[i])
		f.Properties["kind"] = "fix"
		f.Properties["time"] = fix.Time
		f.Properties["validity"] = fix.Validity
		if alt, err := strconv.Atoi(fix.PressureAltitude); err == nil {
			f.Properties["pressure_altitude"] = alt
		}
		if alt, err := strconv.Atoi(fix.GNSSAltitude); err == nil {
			f.Properties["gnss_altitude"] = alt
		}
		fc.Append(f)
	}

	return fc, nil
}

func setIfPresent(props geojson.Properties, key, value string) {
	if value != "" {
		props[key] = value
	}
}

// WriteGeoJSON exports the flight track to a GeoJSON file
func WriteGeoJSON(path string, flight *models.FlightRecord) error {
	fc, err := FeatureCollection(flight)
	if err != nil {
		return fmt.Errorf("failed to build track: %w", err)
	}

	data, err := fc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to encode geojson: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
