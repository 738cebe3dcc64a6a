// Package common holds the small set of types shared between the conversion
// driver and both codecs, so neither has to import the other.
package common

import (
	"errors"
	"fmt"
)

// ErrUnsupportedExtension is returned when the source file is neither a
// .mdnov nor a .novx project.
var ErrUnsupportedExtension = errors.New("file format is not supported")

// FormatError reports a field value that could not be parsed under strict
// reading rules (dates, times, integer strings).
type FormatError struct {
	Field string
	Value string
	Err   error
}

func (e *FormatError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("invalid %s value %q", e.Field, e.Value)
	}
	return fmt.Sprintf("invalid %s value %q: %v", e.Field, e.Value, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// UnsupportedVersionError is returned when a novx file declares a schema
// version this program cannot handle.
type UnsupportedVersionError struct {
	Path    string
	Version string
	// Newer tells whether the file comes from a newer program generation
	// (as opposed to an outdated major version).
	Newer bool
}

func (e *UnsupportedVersionError) Error() string {
	if e.Newer {
		return fmt.Sprintf("project %q was created with a newer program version (novx %s)", e.Path, e.Version)
	}
	return fmt.Sprintf("project %q was created with an outdated program version (novx %s)", e.Path, e.Version)
}
