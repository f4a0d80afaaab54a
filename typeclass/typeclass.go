package typeclass

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// ErrUnsupportedTarget indicates a type that can never be used as a
// conversion target, such as a nullable wrapper around another nullable
// wrapper.
var ErrUnsupportedTarget = errors.New("unsupported conversion target")

// Nullability describes whether values of a type can represent "no value".
type Nullability uint8

const (
	// Reference types hold nil: pointers, interfaces, maps, slices, channels,
	// functions and unsafe pointers.
	Reference Nullability = iota
	// NonNullableValue types have no "no value" representation.
	NonNullableValue
	// NullableValue types are nullable wrappers around another value type.
	NullableValue
)

// String returns the name of the nullability class.
func (n Nullability) String() string {
	switch n {
	case Reference:
		return "reference"
	case NonNullableValue:
		return "non-nullable value"
	case NullableValue:
		return "nullable value"
	default:
		return fmt.Sprintf("Nullability(%d)", uint8(n))
	}
}

// CanBeNil reports whether the class has a "no value" representation.
func (n Nullability) CanBeNil() bool {
	return n == Reference || n == NullableValue
}

// Classify returns the nullability class of t.
//
// It fails with [ErrUnsupportedTarget] when t is nil or a nullable wrapper
// whose wrapped type is itself a nullable wrapper.
func Classify(t reflect.Type) (Nullability, error) {
	if t == nil {
		return Reference, fmt.Errorf("%w: nil type", ErrUnsupportedTarget)
	}

	n := NullabilityOf(t)
	if n == NullableValue && IsNullableWrapper(Underlying(t)) {
		return n, fmt.Errorf("%w: nested nullable wrapper %s", ErrUnsupportedTarget, t)
	}

	return n, nil
}

// NullabilityOf is like [Classify] but never fails. A nil type is reported
// as [Reference].
func NullabilityOf(t reflect.Type) Nullability {
	if t == nil {
		return Reference
	}

	switch t.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice,
		reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return Reference
	}

	if IsNullableWrapper(t) {
		return NullableValue
	}

	return NonNullableValue
}

// CanBeNil reports whether values of t can represent "no value".
func CanBeNil(t reflect.Type) bool {
	return NullabilityOf(t).CanBeNil()
}

// IsNullableWrapper reports whether t has the nullable-wrapper shape: an
// instantiated generic struct whose only fields are V and Valid bool.
func IsNullableWrapper(t reflect.Type) bool {
	if t == nil || t.Kind() != reflect.Struct || t.NumField() != 2 {
		return false
	}

	// Instantiated generic types carry their type arguments in the name.
	if !strings.Contains(t.Name(), "[") {
		return false
	}

	v, valid := t.Field(0), t.Field(1)

	return v.Name == "V" && !v.Anonymous &&
		valid.Name == "Valid" && valid.Type.Kind() == reflect.Bool
}

// Underlying returns the type wrapped by the nullable wrapper t, or nil if t
// is not a nullable wrapper.
func Underlying(t reflect.Type) reflect.Type {
	if !IsNullableWrapper(t) {
		return nil
	}

	return t.Field(0).Type
}
