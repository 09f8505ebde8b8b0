package transform

import "fmt"

// UnsupportedError reports an external node shape or clause the engine
// does not map. The construct names what was seen, so callers can tell a
// missing feature from a malformed tree.
type UnsupportedError struct {
	Construct string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("transform: not implemented: %s", e.Construct)
}

func unsupported(format string, args ...any) error {
	return &UnsupportedError{Construct: fmt.Sprintf(format, args...)}
}
