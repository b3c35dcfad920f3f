package models

// FlightRecord is the decoded content of one IGC file
type FlightRecord struct {
	Manufacturer ManufacturerIdentification `json:"manufacturer" msgpack:"manufacturer"`
	Header       FileHeader                 `json:"header" msgpack:"header"`
	Fixes        []FixRecord                `json:"fixes" msgpack:"fixes"` // file order

	// Extensions counts lines of record types that are recognized but not decoded
	Extensions map[RecordTag]int `json:"-" msgpack:"-"`
}

// NewFlightRecord creates an empty flight record
func NewFlightRecord() *FlightRecord {
	return &FlightRecord{
		Fixes:      make([]FixRecord, 0),
		Extensions: make(map[RecordTag]int),
	}
}

// AddFix appends a fix to the end of the fix sequence
func (f *FlightRecord) AddFix(fix FixRecord) {
	f.Fixes = append(f.Fixes, fix)
}

// SetManufacturer commits the A record accumulated during a decode
func (f *FlightRecord) SetManufacturer(m ManufacturerIdentification) {
	f.Manufacturer = m
}

// SetHeader commits the H record accumulated during a decode
func (f *FlightRecord) SetHeader(h FileHeader) {
	f.Header = h
}

// CountExtension records one line of a recognized-only record type
func (f *FlightRecord) CountExtension(tag RecordTag) {
	f.Extensions[tag]++
}

// ExtensionCount is the number of lines seen for one recognized-only record type
type ExtensionCount struct {
	Tag   RecordTag
	Count int
}

// ExtensionCounts returns the recognized-only record counts in tag order,
// skipping tags that did not occur
func (f *FlightRecord) ExtensionCounts() []ExtensionCount {
	counts := make([]ExtensionCount, 0, len(f.Extensions))
	for _, tag := range RecordTags {
		if n := f.Extensions[tag]; n > 0 {
			counts = append(counts, ExtensionCount{Tag: tag, Count: n})
		}
	}
	return counts
}

// FixCount returns the number of fixes in the flight
func (f *FlightRecord) FixCount() int {
	return len(f.Fixes)
}
