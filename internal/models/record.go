package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyLine is returned when a line has no tag character
	ErrEmptyLine = errors.New("empty line")

	// ErrUnknownRecordTag is returned when the first character of a line is not an IGC record tag
	ErrUnknownRecordTag = errors.New("unknown record tag")

	// ErrMalformedRecord is returned when a line is shorter than its record layout requires
	ErrMalformedRecord = errors.New("malformed record")
)

// LineError reports a failure to decode a single line of an IGC file
type LineError struct {
	Line int // 1-based line number
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// ClassifyLine returns the record tag of a line based on its first character
func ClassifyLine(line string) (RecordTag, error) {
	if stripTerminator(line) == "" {
		return 0, ErrEmptyLine
	}

	switch tag := RecordTag(line[0]); tag {
	case TagManufacturer, TagHeader, TagFixExtensionList, TagKExtensionList,
		TagTask, TagLogbook, TagDifferentialGPS, TagSatellites,
		TagFix, TagPilotEvent, TagKExtensionData, TagSecurity:
		return tag, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownRecordTag, line[0])
	}
}

// stripTerminator removes a carriage return left over from a CRLF line ending
func stripTerminator(s string) string {
	return strings.TrimSuffix(s, "\r")
}

// dropLast returns s[from:] without its final character.
// Lines too short to hold anything past from yield an empty string.
func dropLast(s string, from int) string {
	if len(s)-1 <= from {
		return ""
	}
	return s[from : len(s)-1]
}
