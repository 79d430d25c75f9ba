package gcode

import (
	"errors"
	"fmt"
)

var (
	// ErrIO is returned when the toolpath file cannot be read.
	ErrIO = errors.New("cannot read toolpath")
	// ErrUnknownCategory is returned for a ";TYPE:" label outside the category table.
	ErrUnknownCategory = errors.New("unknown feature category")
	// ErrMalformedNumber is returned when a parameter or declaration is not a number.
	ErrMalformedNumber = errors.New("malformed number")
)

// LineError ties a decode failure to the offending line.
type LineError struct {
	Line int    // 1-based line number
	Text string // offending token or label
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, e.Text)
}

func (e *LineError) Unwrap() error {
	return e.Err
}
