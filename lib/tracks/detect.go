package tracks

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
)

type Format string

const (
	FormatGPX     Format = "gpx"
	FormatFIT     Format = "fit"
	FormatUnknown Format = "unknown"
)

// DetectFormat sniffs the file content first and falls back to the extension.
func DetectFormat(name string, data []byte) Format {
	if len(data) >= 12 && bytes.Equal(data[8:12], []byte(".FIT")) {
		return FormatFIT
	}

	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	trimmed := bytes.TrimSpace(bytes.TrimPrefix(head, []byte("\xef\xbb\xbf")))
	if bytes.HasPrefix(trimmed, []byte("<?xml")) || bytes.HasPrefix(trimmed, []byte("<gpx")) {
		if bytes.Contains(head, []byte("<gpx")) || bytes.Contains(head, []byte("topografix.com/GPX")) {
			return FormatGPX
		}
	}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".gpx":
		return FormatGPX
	case ".fit":
		return FormatFIT
	}
	return FormatUnknown
}

// IsTrackFile reports whether a directory entry should be considered for ingestion.
func IsTrackFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gpx", ".fit":
		return true
	}
	return false
}

// Parse decodes data according to its detected format.
func Parse(name string, data []byte) ([]Track, error) {
	switch DetectFormat(name, data) {
	case FormatGPX:
		return ParseGPX(data)
	case FormatFIT:
		return ParseFIT(data)
	default:
		return nil, fmt.Errorf("%s: %w", name, ErrUnsupportedFormat)
	}
}
