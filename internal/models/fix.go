package models

import (
	"fmt"
)

// FixRecord represents one GPS fix from a B record.
// Fields hold the raw characters of the line; no content validation is performed.
type FixRecord struct {
	Time             string `json:"time" msgpack:"time"`                           // HHMMSS, UTC
	Latitude         string `json:"latitude" msgpack:"latitude"`                   // DDMMmmm + N/S
	Longitude        string `json:"longitude" msgpack:"longitude"`                 // DDDMMmmm + E/W
	Validity         string `json:"validity" msgpack:"validity"`                   // A = 3D fix, V = 2D or no GPS data
	PressureAltitude string `json:"pressure_altitude" msgpack:"pressure_altitude"` // meters, ICAO ISA 1013.25 hPa datum
	GNSSAltitude     string `json:"gnss_altitude" msgpack:"gnss_altitude"`         // meters above WGS84 ellipsoid
}

// fixField describes one fixed-width B record field
type fixField struct {
	width int
	dst   func(*FixRecord) *string
}

// fixLayout lists the B record fields in line order, after the tag
var fixLayout = []fixField{
	{FixTimeLen, func(f *FixRecord) *string { return &f.Time }},
	{FixLatitudeLen, func(f *FixRecord) *string { return &f.Latitude }},
	{FixLongitudeLen, func(f *FixRecord) *string { return &f.Longitude }},
	{FixValidityLen, func(f *FixRecord) *string { return &f.Validity }},
	{FixPressureAltitudeLen, func(f *FixRecord) *string { return &f.PressureAltitude }},
	{FixGNSSAltitudeLen, func(f *FixRecord) *string { return &f.GNSSAltitude }},
}

// ParseFixRecord parses a B record line
// B record format: B HHMMSS DDMMmmmN DDDMMmmmE V PPPPP GGGGG [extensions]
// Characters past the GNSS altitude (I record extensions) are ignored, a
// CR terminator does not count towards the record length.
func ParseFixRecord(line string) (FixRecord, error) {
	var fix FixRecord

	line = stripTerminator(line)
	if len(line) < FixRecordLen {
		return fix, fmt.Errorf("%w: fix record too short: %d bytes, need %d",
			ErrMalformedRecord, len(line), FixRecordLen)
	}
	if RecordTag(line[0]) != TagFix {
		return fix, fmt.Errorf("%w: not a fix record: %q", ErrMalformedRecord, line[0])
	}

	offset := 1
	for _, field := range fixLayout {
		*field.dst(&fix) = line[offset : offset+field.width]
		offset += field.width
	}

	return fix, nil
}

// Is3D returns true if the fix has a valid GNSS altitude
func (f FixRecord) Is3D() bool {
	return len(f.Validity) == FixValidityLen && f.Validity[0] == FixValidity3D
}
