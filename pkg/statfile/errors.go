package statfile

import (
	"errors"
	"fmt"
)

var (
	ErrBadMagic        = errors.New("unexpected magic number")
	ErrTruncated       = errors.New("unexpected end of data")
	ErrOrderMismatch   = errors.New("gram length differs from the requested order")
	ErrInvalidEncoding = errors.New("invalid UTF-8 text")
	ErrUnbalanced      = errors.New("unbalanced tree encoding")
	ErrTooLarge        = errors.New("table exceeds the supported size")
)

// FormatError reports a file whose content could not be decoded. No partial
// result is ever returned alongside it.
type FormatError struct {
	Format string
	Path   string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("invalid %s data in %s: %v", e.Format, e.Path, e.Err)
	}
	return fmt.Sprintf("invalid %s data: %v", e.Format, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// WithPath fills in the file path of a FormatError produced by a reader that
// only saw a byte stream.
func WithPath(err error, path string) error {
	var fe *FormatError
	if errors.As(err, &fe) && fe.Path == "" {
		fe.Path = path
	}
	return err
}

// Resource kinds reported by MissingResourceError.
const (
	KindStatistics = "language statistics"
	KindDictionary = "dictionary"
)

// MissingResourceError is returned when a statistics or dictionary file does
// not exist in the configured directory.
type MissingResourceError struct {
	Kind      string
	Language  string
	Order     int
	UseSpaces bool
	Path      string
	Err       error
}

func (e *MissingResourceError) Error() string {
	if e.Kind == KindDictionary {
		return fmt.Sprintf("did not find the %s file for language=%s: %s", e.Kind, e.Language, e.Path)
	}
	return fmt.Sprintf("did not find the %s file for language=%s, order=%d, use_spaces=%t: %s",
		e.Kind, e.Language, e.Order, e.UseSpaces, e.Path)
}

func (e *MissingResourceError) Unwrap() error { return e.Err }
