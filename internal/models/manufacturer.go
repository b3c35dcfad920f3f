package models

// ManufacturerIdentification holds the A record attributes of a flight recorder.
// Each A line updates a single attribute, so the record is built up across lines.
type ManufacturerIdentification struct {
	Manufacturer string `json:"manufacturer,omitempty" msgpack:"manufacturer,omitempty"` // MMM, 3 bytes
	UniqueID     string `json:"unique_id,omitempty" msgpack:"unique_id,omitempty"`       // NNN, 3 bytes
	IDExtension  string `json:"id_extension,omitempty" msgpack:"id_extension,omitempty"` // optional free text
}

// Parse applies one A record line to the record.
// The line must begin with the A tag; no content validation is performed.
//
// Subtype MMM sets the manufacturer and NNN the unique ID, from byte 4 to the end
// of the line. Any other line sets the ID extension to the line without its tag
// and without its final character.
func (m *ManufacturerIdentification) Parse(line string) {
	var subtype string
	if len(line) >= 1+ManufacturerSubtypeLen {
		subtype = line[1 : 1+ManufacturerSubtypeLen]
	}

	switch subtype {
	case ManufacturerSubtypeCode:
		m.Manufacturer = stripTerminator(line[1+ManufacturerSubtypeLen:])
	case UniqueIDSubtypeCode:
		m.UniqueID = stripTerminator(line[1+ManufacturerSubtypeLen:])
	default:
		m.IDExtension = dropLast(line, 1)
	}
}

// IsEmpty returns true if no A record has populated the record
func (m ManufacturerIdentification) IsEmpty() bool {
	return m == ManufacturerIdentification{}
}
