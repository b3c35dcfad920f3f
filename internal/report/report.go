package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"igc_reader/internal/models"

	"github.com/vmihailenco/msgpack/v5"
)

// Supported report formats
const (
	FormatText    = "text"
	FormatJSON    = "json"
	FormatMsgpack = "msgpack"
)

// Write renders a decoded flight to w in the given format
func Write(w io.Writer, format string, flight *models.FlightRecord) error {
	switch format {
	case FormatText:
		return WriteText(w, flight)
	case FormatJSON:
		return WriteJSON(w, flight)
	case FormatMsgpack:
		return WriteMsgpack(w, flight)
	default:
		return fmt.Errorf("unknown report format: %s", format)
	}
}

// attribute is one labelled line of the text report
type attribute struct {
	label string
	value string
}

func manufacturerAttributes(m models.ManufacturerIdentification) []attribute {
	return []attribute{
		{"Manufacturer", m.Manufacturer},
		{"UniqueID", m.UniqueID},
		{"IDExtension", m.IDExtension},
	}
}

func headerAttributes(h models.FileHeader) []attribute {
	return []attribute{
		{"UTC Date", h.UTCDate},
		{"Accuracy", h.FixAccuracy},
		{"Pilot", h.Pilot},
		{"Copilot", h.Copilot},
		{"Glider Model", h.GliderModel},
		{"Glider Registration", h.GliderRegistration},
		{"GPS Datum", h.GPSDatum},
		{"Firmware Revision", h.FirmwareRevision},
		{"Hardware Revision", h.HardwareRevision},
		{"Manufacturer and Model", h.FRManufacturerModel},
		{"GPS Manufacturer and Model", h.GPSManufacturerModel},
		{"Pressure Sensor", h.PressureSensor},
		{"Glider Comp ID", h.CompetitionID},
		{"Glider Comp Class", h.CompetitionClass},
		{"Download Software", h.DownloadSoftware},
		{"GNSS Altitude", h.GNSSAltitudeDatum},
		{"Pressure Mode", h.PressureAltitudeDatum},
		{"Time Zone", h.TimeZone},
	}
}

// WriteText writes the human-readable report.
// Attributes that were not present in the file are omitted.
func WriteText(w io.Writer, flight *models.FlightRecord) error {
	bw := bufio.NewWriter(w)

	writeSection := func(title string, attrs []attribute) {
		fmt.Fprintln(bw, title)
		for _, a := range attrs {
			if a.value != "" {
				fmt.Fprintf(bw, "%s: %s\n", a.label, a.value)
			}
		}
	}

	writeSection("A_Record", manufacturerAttributes(flight.Manufacturer))
	writeSection("H_Record", headerAttributes(flight.Header))

	fmt.Fprintln(bw, "B_Record")
	for _, fix := range flight.Fixes {
		fmt.Fprintf(bw, "Time: %s  Lat: %s  Long: %s  Fix: %s  Press: %s GNSS: %s\n",
			fix.Time, fix.Latitude, fix.Longitude, fix.Validity, fix.PressureAltitude, fix.GNSSAltitude)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write text report: %w", err)
	}
	return nil
}

// WriteJSON writes the flight as an indented JSON document
func WriteJSON(w io.Writer, flight *models.FlightRecord) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(flight); err != nil {
		return fmt.Errorf("failed to write json report: %w", err)
	}
	return nil
}

// WriteMsgpack writes the flight as a MessagePack document
func WriteMsgpack(w io.Writer, flight *models.FlightRecord) error {
	if err := msgpack.NewEncoder(w).Encode(flight); err != nil {
		return fmt.Errorf("failed to write msgpack report: %w", err)
	}
	return nil
}
