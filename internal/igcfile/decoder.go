package igcfile

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"log/slog"

	"igc_reader/internal/models"
)

// maxLineSize bounds a single IGC line; G records are the longest in practice
const maxLineSize = 1024 * 1024

// Decoder reads IGC files into flight records.
// A Decoder holds no state between decodes.
type Decoder struct {
	maxLineSize int
}

// NewDecoder creates a new IGC decoder
func NewDecoder() *Decoder {
	return &Decoder{
		maxLineSize: maxLineSize,
	}
}

// DecodeFile checks that path is a readable regular file and decodes it.
// Files ending in .gz or .zst are decompressed first.
func (d *Decoder) DecodeFile(path string) (*models.FlightRecord, error) {
	input, err := OpenInput(path)
	if err != nil {
		return nil, err
	}
	defer input.Close()

	slog.Debug("Decoding IGC file", "path", path, "compression", DetectCompression(path))

	flight, err := d.Decode(input)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return flight, nil
}

// Decode reads IGC lines from r in a single pass and assembles a flight record.
// Any line that cannot be classified or extracted fails the whole decode; no
// partial flight record is returned in that case.
func (d *Decoder) Decode(r io.Reader) (*models.FlightRecord, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, min(4096, d.maxLineSize)), d.maxLineSize)
	scanner.Split(scanLines)

	flight := models.NewFlightRecord()

	// A and H records are accumulated one attribute per line and committed at the end
	var manufacturer models.ManufacturerIdentification
	var header models.FileHeader

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()

		tag, err := models.ClassifyLine(line)
		if err != nil {
			return nil, &models.LineError{Line: lineNum, Err: err}
		}

		switch tag {
		case models.TagManufacturer:
			manufacturer.Parse(line)
		case models.TagHeader:
			if !header.Parse(line) {
				slog.Debug("Ignoring header record", "line", lineNum)
			}
		case models.TagFix:
			fix, err := models.ParseFixRecord(line)
			if err != nil {
				return nil, &models.LineError{Line: lineNum, Err: err}
			}
			flight.AddFix(fix)
		case models.TagFixExtensionList, models.TagKExtensionList, models.TagTask,
			models.TagLogbook, models.TagDifferentialGPS, models.TagSatellites,
			models.TagPilotEvent, models.TagKExtensionData, models.TagSecurity:
			flight.CountExtension(tag)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read IGC data after line %d: %w", lineNum, err)
	}

	flight.SetManufacturer(manufacturer)
	flight.SetHeader(header)

	slog.Debug("Decoded IGC data",
		"lines", lineNum,
		"fix_count", flight.FixCount(),
	)
	for _, ext := range flight.ExtensionCounts() {
		slog.Debug("Skipped undecoded records", "record_type", ext.Tag.Name(), "count", ext.Count)
	}

	return flight, nil
}

// scanLines splits on '\n' like bufio.ScanLines but keeps a trailing '\r',
// so a CRLF terminated line reaches the extractors with its final CR.
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return i + 1, data[0:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
