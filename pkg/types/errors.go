package types

import (
	"errors"
	"fmt"
)

// Conversion errors. Every failure of the converters matches exactly one of
// these with errors.Is.
var (
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidUnit     = errors.New("invalid unit")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrParse           = errors.New("parse error")
	ErrUnitsNotFound   = errors.New("units not found")
)

// Catalog construction errors.
var ErrInvalidCatalog = errors.New("invalid catalog")

// History errors.
var (
	ErrHistoryDetached = errors.New("history is detached")
	ErrAlreadyAttached = errors.New("history is already attached")
	ErrInvalidMode     = errors.New("invalid conversion mode")
	ErrInvalidRecord   = errors.New("invalid conversion record")
)

// ParseFormatMessage is reported when a smart expression does not match
// the accepted pattern.
const ParseFormatMessage = "Invalid format. Use 'amount from_unit to to_unit' (e.g. 10kg to lb)"

// ParseError reports a smart expression that could not be parsed.
type ParseError struct {
	Input string
	Msg   string
}

func (e *ParseError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Msg
}

// Unwrap lets errors.Is match ErrParse.
func (e *ParseError) Unwrap() error { return ErrParse }

// UnitsNotFoundError reports that no category declares both tokens.
type UnitsNotFoundError struct {
	From string
	To   string
}

func (e *UnitsNotFoundError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("Conversion from %s to %s not found.", e.From, e.To)
}

// Unwrap lets errors.Is match ErrUnitsNotFound.
func (e *UnitsNotFoundError) Unwrap() error { return ErrUnitsNotFound }

// IsConversionError reports whether err belongs to the conversion taxonomy.
// These are caller mistakes, never system failures.
func IsConversionError(err error) bool {
	return errors.Is(err, ErrInvalidCategory) ||
		errors.Is(err, ErrInvalidUnit) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrParse) ||
		errors.Is(err, ErrUnitsNotFound)
}
