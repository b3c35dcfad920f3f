package models

import (
	"fmt"
)

// RecordTag identifies an IGC record type by the first character of its line
type RecordTag byte

// IGC record tags, in the order they appear in a file
const (
	TagManufacturer     RecordTag = 'A' // FR manufacturer and identification (always first)
	TagHeader           RecordTag = 'H' // File header
	TagFixExtensionList RecordTag = 'I' // Fix extension list, data added at end of each B record
	TagKExtensionList   RecordTag = 'J' // Extension list of data in each K record line
	TagTask             RecordTag = 'C' // Task / declaration
	TagLogbook          RecordTag = 'L' // Logbook / comments
	TagDifferentialGPS  RecordTag = 'D' // Differential GPS
	TagSatellites       RecordTag = 'F' // Initial satellite constellation
	TagFix              RecordTag = 'B' // Fix plus any extension data listed in I record
	TagPilotEvent       RecordTag = 'E' // Pilot event (PEV)
	TagKExtensionData   RecordTag = 'K' // Extension data as defined in J record
	TagSecurity         RecordTag = 'G' // Security record (always last)
)

// RecordTags lists every record tag in file order
var RecordTags = []RecordTag{
	TagManufacturer, TagHeader, TagFixExtensionList, TagKExtensionList,
	TagTask, TagLogbook, TagDifferentialGPS, TagSatellites,
	TagFix, TagPilotEvent, TagKExtensionData, TagSecurity,
}

// A record layout
const (
	// ManufacturerSubtypeLen is the width of the A record subtype code following the tag
	ManufacturerSubtypeLen = 3

	ManufacturerSubtypeCode = "MMM"
	UniqueIDSubtypeCode     = "NNN"
)

// H record layout
const (
	// HeaderSubtypeLen is the width of the H record subtype code, tag included
	HeaderSubtypeLen = 5

	// HeaderDelimiter separates the long name from the value in colon-family H records
	HeaderDelimiter = ':'
)

// B record field widths, consumed left to right after the tag
const (
	FixTimeLen             = 6 // HHMMSS
	FixLatitudeLen         = 8 // DDMMmmm + N/S
	FixLongitudeLen        = 9 // DDDMMmmm + E/W
	FixValidityLen         = 1 // A or V
	FixPressureAltitudeLen = 5 // PPPPP, may carry a leading '-'
	FixGNSSAltitudeLen     = 5 // GGGGG

	// FixRecordLen is the minimum length of a B record line, tag included
	FixRecordLen = 1 + FixTimeLen + FixLatitudeLen + FixLongitudeLen + FixValidityLen +
		FixPressureAltitudeLen + FixGNSSAltitudeLen // 35 bytes
)

// Fix validity values
const (
	FixValidity3D byte = 'A'
	FixValidity2D byte = 'V'
)

// String returns the record tag character
func (t RecordTag) String() string {
	return string(rune(t))
}

// Name returns a human-readable name for the record tag
func (t RecordTag) Name() string {
	switch t {
	case TagManufacturer:
		return "manufacturer"
	case TagHeader:
		return "header"
	case TagFixExtensionList:
		return "fix_extension_list"
	case TagKExtensionList:
		return "k_extension_list"
	case TagTask:
		return "task"
	case TagLogbook:
		return "logbook"
	case TagDifferentialGPS:
		return "differential_gps"
	case TagSatellites:
		return "satellite_constellation"
	case TagFix:
		return "fix"
	case TagPilotEvent:
		return "pilot_event"
	case TagKExtensionData:
		return "k_extension_data"
	case TagSecurity:
		return "security"
	default:
		return fmt.Sprintf("unknown(%q)", byte(t))
	}
}
