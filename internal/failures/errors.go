package failures

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDetection        = errors.New("display detection failed")
	ErrMissingStructure = errors.New("missing structure")
	ErrWrite            = errors.New("write failed")
	ErrConfiguration    = errors.New("configuration error")
)

// ErrNoPrimaryDisplay is reported when no enumerated display carries the primary flag.
var ErrNoPrimaryDisplay = fmt.Errorf("%w: no primary display detected", ErrDetection)

// Wrap builds an error message that includes operation context while tagging it
// with the provided marker for later classification. The marker should be one of
// the exported sentinel errors above.
func Wrap(marker error, operation, message string, err error) error {
	detail := buildDetail(operation, message)
	if marker == nil {
		marker = ErrWrite
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Classify returns a short label for the marker carried by err.
func Classify(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrDetection):
		return "detection"
	case errors.Is(err, ErrMissingStructure):
		return "missing_structure"
	case errors.Is(err, ErrWrite):
		return "write"
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	default:
		return "unknown"
	}
}

func buildDetail(operation, message string) string {
	parts := make([]string, 0, 2)
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "operation failed"
	}
	return strings.Join(parts, ": ")
}
