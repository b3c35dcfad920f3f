package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManufacturerIdentification_Parse(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected ManufacturerIdentification
	}{
		{
			name:     "manufacturer subtype",
			line:     "AMMMXCS",
			expected: ManufacturerIdentification{Manufacturer: "XCS"},
		},
		{
			name:     "unique id subtype",
			line:     "ANNNAAA",
			expected: ManufacturerIdentification{UniqueID: "AAA"},
		},
		{
			name:     "manufacturer subtype with crlf",
			line:     "AMMMXCS\r",
			expected: ManufacturerIdentification{Manufacturer: "XCS"},
		},
		{
			name:     "other subtype drops tag and final character",
			line:     "AXCSAAAFLIGHT:1\r",
			expected: ManufacturerIdentification{IDExtension: "XCSAAAFLIGHT:1"},
		},
		{
			name:     "other subtype without terminator loses final character",
			line:     "AXCSAAA",
			expected: ManufacturerIdentification{IDExtension: "XCSAA"},
		},
		{
			name:     "empty manufacturer value",
			line:     "AMMM",
			expected: ManufacturerIdentification{Manufacturer: ""},
		},
		{
			name:     "short line",
			line:     "AMM",
			expected: ManufacturerIdentification{IDExtension: "M"},
		},
		{
			name:     "tag only",
			line:     "A",
			expected: ManufacturerIdentification{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m ManufacturerIdentification
			m.Parse(tt.line)
			assert.Equal(t, tt.expected, m)
		})
	}
}

func TestManufacturerIdentification_ParseAccumulates(t *testing.T) {
	var m ManufacturerIdentification

	m.Parse("AMMMXCS")
	m.Parse("ANNNAAA")
	m.Parse("AXCSAAAFLIGHT:1\r")

	assert.Equal(t, "XCS", m.Manufacturer)
	assert.Equal(t, "AAA", m.UniqueID)
	assert.Equal(t, "XCSAAAFLIGHT:1", m.IDExtension)

	// A later line of the same subtype only replaces its own attribute
	m.Parse("AMMMLXN")
	assert.Equal(t, "LXN", m.Manufacturer)
	assert.Equal(t, "AAA", m.UniqueID)
	assert.Equal(t, "XCSAAAFLIGHT:1", m.IDExtension)
}

func TestManufacturerIdentification_IsEmpty(t *testing.T) {
	var m ManufacturerIdentification
	assert.True(t, m.IsEmpty())

	m.Parse("ANNNAAA")
	assert.False(t, m.IsEmpty())
}
