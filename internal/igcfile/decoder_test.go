package igcfile

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"igc_reader/internal/models"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleLines = []string{
	"AMMMXCS",
	"ANNNAAA",
	"AXCSAAAFLIGHT:1",
	"HFDTE280709",
	"HFFXA035",
	"HFPLTPILOTINCHARGE:Bloggs, Bill D",
	"HFCM2CREW2:NIL",
	"HFGTYGLIDERTYPE:Schleicher ASH-25",
	"HFGIDGLIDERID:N116EL",
	"HFDTM100GPSDATUM:WGS-1984",
	"HFRFWFIRMWAREVERSION:6.4",
	"HFRHWHARDWAREVERSION:3.0",
	"HFFTYFRTYPE:Cambridge,FunkyLogger 77",
	"HFGPS:Marconi,SuperX,12ch,10000m",
	"HFPRSPRESSALTSENSOR:Sensyn,A32,11000m",
	"HFCIDCOMPETITIONID:B21",
	"HFCCLCOMPETITIONCLASS:15m Motor Glider",
	"HOSOFSOFTWARE:XCSoar 7.0",
	"HFALGALTGPS:GEO",
	"HFALPALTPRESSURE:ISA",
	"HFTZNTIMEZONE:2.00",
	"HFXYZUNKNOWN:ignored",
	"I023638FXA3940SIU",
	"J010812HDT",
	"C150701213841160701000102500",
	"LXCSTEXT",
	"F160240040609123624221821",
	"B1246505052990N00013032WA0019900189",
	"E124651PEV",
	"B1246515052991N00013033WA0020000190",
	"K12465200090",
	"B1246525052992N00013034WA0020100191",
	"GREJNGJERJKNJKRE31895478537H43982FJN9248F942389T433T",
}

func sampleIGC(eol string) string {
	return strings.Join(sampleLines, eol) + eol
}

func TestDecoder_Decode(t *testing.T) {
	flight, err := NewDecoder().Decode(strings.NewReader(sampleIGC("\r\n")))
	require.NoError(t, err)
	require.NotNil(t, flight)

	assert.Equal(t, models.ManufacturerIdentification{
		Manufacturer: "XCS",
		UniqueID:     "AAA",
		IDExtension:  "XCSAAAFLIGHT:1",
	}, flight.Manufacturer)

	assert.Equal(t, models.FileHeader{
		UTCDate:               "280709",
		FixAccuracy:           "035",
		Pilot:                 "Bloggs, Bill D",
		Copilot:               "NIL",
		GliderModel:           "Schleicher ASH-25",
		GliderRegistration:    "N116EL",
		GPSDatum:              "WGS-1984",
		FirmwareRevision:      "6.4",
		HardwareRevision:      "3.0",
		FRManufacturerModel:   "Cambridge,FunkyLogger 77",
		GPSManufacturerModel:  "Marconi,SuperX,12ch,10000m",
		PressureSensor:        "Sensyn,A32,11000m",
		CompetitionID:         "B21",
		CompetitionClass:      "15m Motor Glider",
		DownloadSoftware:      "XCSoar 7.0",
		GNSSAltitudeDatum:     "GEO",
		PressureAltitudeDatum: "ISA",
		TimeZone:              "2.00",
	}, flight.Header)

	require.Len(t, flight.Fixes, 3)
	assert.Equal(t, models.FixRecord{
		Time:             "124650",
		Latitude:         "5052990N",
		Longitude:        "00013032W",
		Validity:         "A",
		PressureAltitude: "00199",
		GNSSAltitude:     "00189",
	}, flight.Fixes[0])
	assert.Equal(t, "124651", flight.Fixes[1].Time)
	assert.Equal(t, "124652", flight.Fixes[2].Time)

	assert.Equal(t, 1, flight.Extensions[models.TagFixExtensionList])
	assert.Equal(t, 1, flight.Extensions[models.TagPilotEvent])
	assert.Equal(t, 1, flight.Extensions[models.TagSecurity])
	assert.NotContains(t, flight.Extensions, models.TagFix)
}

func TestDecoder_DecodeLFOnly(t *testing.T) {
	flight, err := NewDecoder().Decode(strings.NewReader(sampleIGC("\n")))
	require.NoError(t, err)

	// Without a CR the fixed-prefix trim removes a data character
	assert.Equal(t, "28070", flight.Header.UTCDate)
	assert.Equal(t, "03", flight.Header.FixAccuracy)
	assert.Equal(t, "XCSAAAFLIGHT:", flight.Manufacturer.IDExtension)
	assert.Equal(t, "Bloggs, Bill D", flight.Header.Pilot)
	assert.Equal(t, "XCS", flight.Manufacturer.Manufacturer)
	assert.Len(t, flight.Fixes, 3)
}

func TestDecoder_DecodeNoTrailingNewline(t *testing.T) {
	data := "AMMMXCS\r\nB1246505052990N00013032WA0019900189"
	flight, err := NewDecoder().Decode(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, flight.Fixes, 1)
	assert.Equal(t, "00189", flight.Fixes[0].GNSSAltitude)
}

func TestDecoder_DecodeEmptyInput(t *testing.T) {
	flight, err := NewDecoder().Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.True(t, flight.Manufacturer.IsEmpty())
	assert.True(t, flight.Header.IsEmpty())
	assert.Empty(t, flight.Fixes)
}

func TestDecoder_DecodeFixOrder(t *testing.T) {
	var buf bytes.Buffer
	times := []string{"100000", "100005", "100003", "100010", "100010"}
	for i, ts := range times {
		buf.WriteString("B" + ts + "5052990N00013032WA0019900189\r\n")
		if i%2 == 0 {
			buf.WriteString("E" + ts + "PEV\r\n")
		}
	}

	flight, err := NewDecoder().Decode(&buf)
	require.NoError(t, err)
	require.Len(t, flight.Fixes, len(times))
	for i, ts := range times {
		assert.Equal(t, ts, flight.Fixes[i].Time)
	}
}

func TestDecoder_DecodeIsIdempotent(t *testing.T) {
	decoder := NewDecoder()
	first, err := decoder.Decode(strings.NewReader(sampleIGC("\r\n")))
	require.NoError(t, err)
	second, err := decoder.Decode(strings.NewReader(sampleIGC("\r\n")))
	require.NoError(t, err)

	assert.Equal(t, first, second)

	// A different file shares nothing with the previous decode
	third, err := decoder.Decode(strings.NewReader("HFPLTPILOTINCHARGE:Other\r\n"))
	require.NoError(t, err)
	assert.True(t, third.Manufacturer.IsEmpty())
	assert.Equal(t, "Other", third.Header.Pilot)
	assert.Empty(t, third.Header.UTCDate)
	assert.Empty(t, third.Fixes)
}

func TestDecoder_DecodeErrors(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		wantLine int
		wantErr  error
	}{
		{
			name:     "empty line",
			data:     "AMMMXCS\r\n\r\nB1246505052990N00013032WA0019900189\r\n",
			wantLine: 2,
			wantErr:  models.ErrEmptyLine,
		},
		{
			name:     "empty line with lf endings",
			data:     "AMMMXCS\n\nHFDTE280709\n",
			wantLine: 2,
			wantErr:  models.ErrEmptyLine,
		},
		{
			name:     "unknown tag",
			data:     "AMMMXCS\r\nHFDTE280709\r\nZ123\r\n",
			wantLine: 3,
			wantErr:  models.ErrUnknownRecordTag,
		},
		{
			name:     "short fix",
			data:     "AMMMXCS\r\nB1246505052990N00013032WA00199\r\n",
			wantLine: 2,
			wantErr:  models.ErrMalformedRecord,
		},
		{
			name:     "fix one byte short with crlf",
			data:     "AMMMXCS\r\nB1246505052990N00013032WA001990018\r\nB1246505052990N00013032WA0019900189\r\n",
			wantLine: 2,
			wantErr:  models.ErrMalformedRecord,
		},
		{
			name:     "fix one byte short on last line without newline",
			data:     "AMMMXCS\r\nB1246505052990N00013032WA001990018\r",
			wantLine: 2,
			wantErr:  models.ErrMalformedRecord,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flight, err := NewDecoder().Decode(strings.NewReader(tt.data))
			require.Error(t, err)
			assert.Nil(t, flight)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)

			var lineErr *models.LineError
			require.True(t, errors.As(err, &lineErr))
			assert.Equal(t, tt.wantLine, lineErr.Line)
		})
	}
}

func TestDecoder_DecodeFixExactLength(t *testing.T) {
	data := "AMMMXCS\r\nB1246505052990N00013032WA0019900189\r\n"

	flight, err := NewDecoder().Decode(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, flight.Fixes, 1)
	assert.Equal(t, "00189", flight.Fixes[0].GNSSAltitude)
	assert.Equal(t, "00199", flight.Fixes[0].PressureAltitude)
}

func TestDecoder_DecodeLineTooLong(t *testing.T) {
	decoder := &Decoder{maxLineSize: 64}
	data := "L" + strings.Repeat("x", 100) + "\r\n"

	flight, err := decoder.Decode(strings.NewReader(data))
	require.Error(t, err)
	assert.Nil(t, flight)
	assert.Contains(t, err.Error(), "failed to read IGC data")
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestDecoder_DecodeFile(t *testing.T) {
	path := writeFile(t, "flight.igc", []byte(sampleIGC("\r\n")))

	flight, err := NewDecoder().DecodeFile(path)
	require.NoError(t, err)
	assert.Equal(t, "280709", flight.Header.UTCDate)
	assert.Len(t, flight.Fixes, 3)
}

func TestDecoder_DecodeFileCompressed(t *testing.T) {
	var gz bytes.Buffer
	gw := gzip.NewWriter(&gz)
	_, err := gw.Write([]byte(sampleIGC("\r\n")))
	require.NoError(t, err)
	require.NoError(t, gw.Close())

	var zs bytes.Buffer
	zw, err := zstd.NewWriter(&zs)
	require.NoError(t, err)
	_, err = zw.Write([]byte(sampleIGC("\r\n")))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	tests := []struct {
		name string
		file string
		data []byte
	}{
		{"gzip", "flight.igc.gz", gz.Bytes()},
		{"zstd", "flight.igc.zst", zs.Bytes()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.data)
			flight, err := NewDecoder().DecodeFile(path)
			require.NoError(t, err)
			assert.Equal(t, "Bloggs, Bill D", flight.Header.Pilot)
			assert.Len(t, flight.Fixes, 3)
		})
	}
}

func TestDecoder_DecodeFileUnavailable(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		path string
	}{
		{"empty path", ""},
		{"missing file", filepath.Join(dir, "missing.igc")},
		{"directory", dir},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flight, err := NewDecoder().DecodeFile(tt.path)
			require.Error(t, err)
			assert.Nil(t, flight)
			assert.True(t, errors.Is(err, ErrInputUnavailable), "got %v", err)
		})
	}
}

func TestDecoder_DecodeFileCorruptCompression(t *testing.T) {
	tests := []struct {
		name string
		file string
	}{
		{"gzip", "bad.igc.gz"},
		{"zstd", "bad.igc.zst"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, []byte("not compressed at all, just text\r\n"))

			flight, err := NewDecoder().DecodeFile(path)
			require.Error(t, err)
			assert.Nil(t, flight)
			assert.False(t, errors.Is(err, ErrInputUnavailable), "got %v", err)
		})
	}

	_, err := OpenInput(writeFile(t, "bad.igc.gz", []byte("not gzip")))
	assert.True(t, errors.Is(err, ErrCorruptInput), "got %v", err)
	assert.False(t, errors.Is(err, ErrInputUnavailable))
}

func TestDecoder_DecodeFileLineError(t *testing.T) {
	path := writeFile(t, "bad.igc", []byte("AMMMXCS\r\nQ\r\n"))

	flight, err := NewDecoder().DecodeFile(path)
	require.Error(t, err)
	assert.Nil(t, flight)
	assert.True(t, errors.Is(err, models.ErrUnknownRecordTag))
	assert.Contains(t, err.Error(), path)
}

func TestDetectCompression(t *testing.T) {
	assert.Equal(t, CompressionNone, DetectCompression("flight.igc"))
	assert.Equal(t, CompressionGzip, DetectCompression("flight.igc.gz"))
	assert.Equal(t, CompressionGzip, DetectCompression("FLIGHT.IGC.GZ"))
	assert.Equal(t, CompressionZstd, DetectCompression("flight.igc.zst"))
}

func TestScanLines(t *testing.T) {
	advance, token, err := scanLines([]byte("ABC\r\nDEF"), false)
	require.NoError(t, err)
	assert.Equal(t, 5, advance)
	assert.Equal(t, "ABC\r", string(token))

	advance, token, err = scanLines([]byte("DEF"), false)
	require.NoError(t, err)
	assert.Equal(t, 0, advance)
	assert.Nil(t, token)

	advance, token, err = scanLines([]byte("DEF"), true)
	require.NoError(t, err)
	assert.Equal(t, 3, advance)
	assert.Equal(t, "DEF", string(token))
}
