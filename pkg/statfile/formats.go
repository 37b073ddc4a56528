package statfile

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// DictionaryMagic starts every word tree dictionary.
const DictionaryMagic = "CT2DIC"

// FileFormat represents the statistics file formats
type FileFormat int

const (
	FormatUnknown     FileFormat = iota
	FormatFrequencies            // n-gram frequency table
	FormatDictionary             // word tree dictionary
)

func (f FileFormat) String() string {
	if info, ok := supportedFormats[f]; ok {
		return info.Description
	}
	return "unknown"
}

// FormatInfo contains metadata about a statistics file format
type FormatInfo struct {
	Format      FileFormat
	Description string
	Magic       string
	Extensions  []string
	MinSize     int64 // Minimum uncompressed size in bytes
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatFrequencies: {
		Format:      FormatFrequencies,
		Description: "N-gram Frequency Table",
		Magic:       FrequencyMagic,
		Extensions:  []string{".gz"},
		MinSize:     int64(len(FrequencyMagic)) + 1 + 4 + 1, // magic, lang len, order, alphabet len
	},
	FormatDictionary: {
		Format:      FormatDictionary,
		Description: "Word Tree Dictionary",
		Magic:       DictionaryMagic,
		Extensions:  []string{".dic"},
		MinSize:     int64(len(DictionaryMagic)) + 1 + 1 + 4, // magic, two terminators, word count
	},
}

// peekMagic returns up to n leading bytes of the decompressed file.
func peekMagic(filename string, n int) ([]byte, error) {
	rc, err := OpenGzip(filename)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	head := make([]byte, n)
	read, err := io.ReadFull(rc, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, fmt.Errorf("failed to read header from %s: %w", filename, err)
	}
	return head[:read], nil
}

// ValidateFileFormat checks if a file matches the expected format
func ValidateFileFormat(filename string, expectedFormat FileFormat) error {
	if _, err := os.Stat(filename); err != nil {
		return fmt.Errorf("failed to stat file %s: %w", filename, err)
	}

	formatInfo, exists := supportedFormats[expectedFormat]
	if !exists {
		return fmt.Errorf("unknown format: %v", expectedFormat)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	validExt := false
	for _, validExtension := range formatInfo.Extensions {
		if ext == validExtension {
			validExt = true
			break
		}
	}
	if !validExt {
		return fmt.Errorf("file %s has invalid extension %s for format %s (expected: %v)",
			filename, ext, formatInfo.Description, formatInfo.Extensions)
	}

	head, err := peekMagic(filename, int(formatInfo.MinSize))
	if err != nil {
		return err
	}
	if int64(len(head)) < formatInfo.MinSize {
		return &FormatError{Format: formatInfo.Magic, Path: filename,
			Err: fmt.Errorf("%w: %d bytes, need at least %d", ErrTruncated, len(head), formatInfo.MinSize)}
	}
	if !bytes.HasPrefix(head, []byte(formatInfo.Magic)) {
		return &FormatError{Format: formatInfo.Magic, Path: filename,
			Err: fmt.Errorf("%w: got %q", ErrBadMagic, head[:len(formatInfo.Magic)])}
	}

	log.Debugf("File %s validated as %s", filename, formatInfo.Description)
	return nil
}

// DetectFormat reports which statistics format a gzip file holds, judged by
// the magic number of its decompressed content.
func DetectFormat(filename string) (FileFormat, error) {
	head, err := peekMagic(filename, len(DictionaryMagic))
	if err != nil {
		return FormatUnknown, err
	}
	switch {
	case bytes.HasPrefix(head, []byte(DictionaryMagic)):
		return FormatDictionary, nil
	case bytes.HasPrefix(head, []byte(FrequencyMagic)):
		return FormatFrequencies, nil
	}
	return FormatUnknown, fmt.Errorf("unable to detect format for file %s", filename)
}

// GetFormatInfo returns information about a specific format
func GetFormatInfo(format FileFormat) (FormatInfo, bool) {
	info, exists := supportedFormats[format]
	return info, exists
}

// ListSupportedFormats returns all supported formats
func ListSupportedFormats() []FormatInfo {
	return []FormatInfo{supportedFormats[FormatFrequencies], supportedFormats[FormatDictionary]}
}
