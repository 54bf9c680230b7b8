package crx

import "fmt"

// FormatError indicates that a buffer is not a well-formed CRX
// container: missing magic, truncated header, or length fields that
// point past the end of the buffer.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("malformed crx container: %s", e.Reason)
}

// UnsupportedVersionError indicates a container whose magic is valid
// but whose version field is neither 2 nor 3. It carries the observed
// version so callers can report it.
type UnsupportedVersionError struct {
	Version uint32
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("unsupported crx version: %d", e.Version)
}
