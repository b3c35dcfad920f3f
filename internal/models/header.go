package models

import (
	"strings"
)

// FileHeader holds the H record attributes of a flight.
// Attributes not present in the file are left empty.
type FileHeader struct {
	UTCDate               string `json:"utc_date,omitempty" msgpack:"utc_date,omitempty"`                               // HFDTE, DDMMYY
	FixAccuracy           string `json:"fix_accuracy,omitempty" msgpack:"fix_accuracy,omitempty"`                       // HFFXA, meters
	Pilot                 string `json:"pilot,omitempty" msgpack:"pilot,omitempty"`                                     // HFPLT
	Copilot               string `json:"copilot,omitempty" msgpack:"copilot,omitempty"`                                 // HFCM2
	GliderModel           string `json:"glider_model,omitempty" msgpack:"glider_model,omitempty"`                       // HFGTY
	GliderRegistration    string `json:"glider_registration,omitempty" msgpack:"glider_registration,omitempty"`         // HFGID
	GPSDatum              string `json:"gps_datum,omitempty" msgpack:"gps_datum,omitempty"`                             // HFDTM
	FirmwareRevision      string `json:"firmware_revision,omitempty" msgpack:"firmware_revision,omitempty"`             // HFRFW
	HardwareRevision      string `json:"hardware_revision,omitempty" msgpack:"hardware_revision,omitempty"`             // HFRHW
	FRManufacturerModel   string `json:"fr_manufacturer_model,omitempty" msgpack:"fr_manufacturer_model,omitempty"`     // HFFTY
	GPSManufacturerModel  string `json:"gps_manufacturer_model,omitempty" msgpack:"gps_manufacturer_model,omitempty"`   // HFGPS
	PressureSensor        string `json:"pressure_sensor,omitempty" msgpack:"pressure_sensor,omitempty"`                 // HFPRS
	CompetitionID         string `json:"competition_id,omitempty" msgpack:"competition_id,omitempty"`                   // HFCID
	CompetitionClass      string `json:"competition_class,omitempty" msgpack:"competition_class,omitempty"`             // HFCCL
	DownloadSoftware      string `json:"download_software,omitempty" msgpack:"download_software,omitempty"`             // HOSOF
	GNSSAltitudeDatum     string `json:"gnss_altitude_datum,omitempty" msgpack:"gnss_altitude_datum,omitempty"`         // HFALG
	PressureAltitudeDatum string `json:"pressure_altitude_datum,omitempty" msgpack:"pressure_altitude_datum,omitempty"` // HFALP
	TimeZone              string `json:"time_zone,omitempty" msgpack:"time_zone,omitempty"`                             // HFTZN
}

// headerLayout says how the value of an H record is laid out after its subtype code
type headerLayout int

const (
	// layoutFixed values start right after the subtype code and lose their final character
	layoutFixed headerLayout = iota
	// layoutColon values follow the first colon of the line
	layoutColon
)

// field resolves a subtype code to the attribute it populates.
// Unknown codes return a nil pointer.
func (h *FileHeader) field(subtype string) (*string, headerLayout) {
	switch subtype {
	case "HFDTE":
		return &h.UTCDate, layoutFixed
	case "HFFXA":
		return &h.FixAccuracy, layoutFixed
	case "HOSOF":
		return &h.DownloadSoftware, layoutColon
	case "HFALG":
		return &h.GNSSAltitudeDatum, layoutColon
	case "HFALP":
		return &h.PressureAltitudeDatum, layoutColon
	case "HFPLT":
		return &h.Pilot, layoutColon
	case "HFCM2":
		return &h.Copilot, layoutColon
	case "HFGTY":
		return &h.GliderModel, layoutColon
	case "HFGID":
		return &h.GliderRegistration, layoutColon
	case "HFDTM":
		return &h.GPSDatum, layoutColon
	case "HFRFW":
		return &h.FirmwareRevision, layoutColon
	case "HFRHW":
		return &h.HardwareRevision, layoutColon
	case "HFFTY":
		return &h.FRManufacturerModel, layoutColon
	case "HFGPS":
		return &h.GPSManufacturerModel, layoutColon
	case "HFPRS":
		return &h.PressureSensor, layoutColon
	case "HFCID":
		return &h.CompetitionID, layoutColon
	case "HFCCL":
		return &h.CompetitionClass, layoutColon
	case "HFTZN":
		return &h.TimeZone, layoutColon
	default:
		return nil, layoutFixed
	}
}

// Parse applies one H record line to the header and reports whether an
// attribute was set. The line must begin with the H tag.
//
// Unknown subtype codes, and colon-family lines without a colon, leave the
// header untouched. A repeated subtype code overwrites the previous value.
func (h *FileHeader) Parse(line string) bool {
	if len(line) < HeaderSubtypeLen {
		return false
	}

	dst, layout := h.field(line[:HeaderSubtypeLen])
	if dst == nil {
		return false
	}

	switch layout {
	case layoutFixed:
		*dst = dropLast(line, HeaderSubtypeLen)
	case layoutColon:
		idx := strings.IndexByte(line, HeaderDelimiter)
		if idx < 0 {
			return false
		}
		*dst = stripTerminator(line[idx+1:])
	}
	return true
}

// IsEmpty returns true if no H record has populated the header
func (h FileHeader) IsEmpty() bool {
	return h == FileHeader{}
}
