package igcfile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// ErrInputUnavailable is returned when the input path is missing, not a regular file or cannot be opened
var ErrInputUnavailable = errors.New("input unavailable")

// ErrCorruptInput is returned when a compressed input cannot be decompressed
var ErrCorruptInput = errors.New("corrupt input")

// Compression identifies how an input file is encoded on disk
type Compression string

const (
	CompressionNone Compression = "none"
	CompressionGzip Compression = "gzip"
	CompressionZstd Compression = "zstd"
)

// DetectCompression returns the compression of a file based on its extension
func DetectCompression(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		return CompressionGzip
	case ".zst", ".zstd":
		return CompressionZstd
	default:
		return CompressionNone
	}
}

// CheckInput verifies that path references an existing regular file
func CheckInput(path string) error {
	if path == "" {
		return fmt.Errorf("%w: no path given", ErrInputUnavailable)
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInputUnavailable, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s is not a regular file", ErrInputUnavailable, path)
	}
	return nil
}

// inputReader closes the decompressor, if any, and then the underlying file
type inputReader struct {
	io.Reader
	closers []io.Closer
}

func (r *inputReader) Close() error {
	var errs []error
	for _, c := range r.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// OpenInput opens an IGC file for reading, decompressing it if its extension says so
func OpenInput(path string) (io.ReadCloser, error) {
	if err := CheckInput(path); err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open %s: %w", ErrInputUnavailable, path, err)
	}

	switch DetectCompression(path) {
	case CompressionGzip:
		zr, err := gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("%w: failed to open gzip stream %s: %w", ErrCorruptInput, path, err)
		}
		return &inputReader{Reader: zr, closers: []io.Closer{zr, file}}, nil

	case CompressionZstd:
		zr, err := zstd.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("%w: failed to open zstd stream %s: %w", ErrCorruptInput, path, err)
		}
		rc := zr.IOReadCloser()
		return &inputReader{Reader: rc, closers: []io.Closer{rc, file}}, nil

	default:
		return file, nil
	}
}
