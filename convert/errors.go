package convert

import (
	"errors"
	"fmt"
	"reflect"

	"go.dw1.io/conv/typeclass"
)

// ErrUnsupportedTarget indicates a target type that can never be converted
// to. It is reported once, when the [Converter] for the type is built.
var ErrUnsupportedTarget = typeclass.ErrUnsupportedTarget

// ErrNotSupported indicates that no conversion rule applies between the
// source type (or any of its ancestors) and the target type, or that a value
// does not have the declared source type.
var ErrNotSupported = errors.New("conversion not supported")

// ErrOverflow indicates that a checked numeric conversion would lose
// magnitude or precision.
var ErrOverflow = errors.New("conversion overflows target type")

// ErrNotNullable indicates that a Try conversion was requested for a target
// type that cannot represent "no value". It is reported once, when the
// [Converter] for the type is built.
var ErrNotNullable = errors.New("target type cannot represent no value")

// Error describes a failed conversion.
type Error struct {
	// Source is the declared source type. It is nil when the input was nil
	// and no source type was declared.
	Source reflect.Type
	// Target is the requested type.
	Target reflect.Type
	// Checked reports whether checked arithmetic was requested.
	Checked bool
	// Err is the cause. It wraps [ErrNotSupported], [ErrOverflow],
	// [ErrNotNullable] or [ErrUnsupportedTarget].
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	mode := ""
	if e.Checked {
		mode = " (checked)"
	}

	return fmt.Sprintf("convert %s to %s%s: %v", typeName(e.Source), typeName(e.Target), mode, e.Err)
}

// Unwrap returns the cause.
func (e *Error) Unwrap() error {
	return e.Err
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	return t.String()
}

// userError classifies an error returned by a registered conversion.
func userError(err error) error {
	if errors.Is(err, ErrOverflow) || errors.Is(err, ErrNotSupported) {
		return err
	}

	return fmt.Errorf("%w: %w", ErrNotSupported, err)
}
