package convert

import "reflect"

// Convert converts v to T, selecting the rule by the dynamic type of v.
//
// A nil v yields the null value of T, or an error wrapping
// [ErrNotSupported] when T cannot represent "no value".
func Convert[T any](v any) (T, error) {
	return convert[T](v, nil, false)
}

// ConvertFrom converts v, declared as a value of source, to T.
//
// The declared type selects the rule even when the dynamic type of v is
// more specific: v may be of the declared type, assignable to it, or embed
// it. A nil v yields the null value of T without building a plan, or an
// error wrapping [ErrNotSupported] when T or source cannot hold nil.
func ConvertFrom[T any](v any, source reflect.Type) (T, error) {
	return convert[T](v, source, false)
}

// ConvertChecked is like [Convert] but numeric conversions to a primitive
// integral type fail with [ErrOverflow] instead of wrapping. Floats are
// still truncated toward zero; only values out of range fail.
func ConvertChecked[T any](v any) (T, error) {
	return convert[T](v, nil, true)
}

// ConvertCheckedFrom is the checked counterpart of [ConvertFrom].
func ConvertCheckedFrom[T any](v any, source reflect.Type) (T, error) {
	return convert[T](v, source, true)
}

// ConvertValue is like [ConvertFrom] with the source type taken from the
// static type of v.
func ConvertValue[T, S any](v S) (T, error) {
	return convert[T](v, reflect.TypeFor[S](), false)
}

// ConvertCheckedValue is the checked counterpart of [ConvertValue].
func ConvertCheckedValue[T, S any](v S) (T, error) {
	return convert[T](v, reflect.TypeFor[S](), true)
}

// MustConvert is like [Convert] but panics on error.
func MustConvert[T any](v any) T {
	t, err := Convert[T](v)
	if err != nil {
		panic(err)
	}

	return t
}

// TryConvert converts v to T and returns the null value of T when no
// conversion applies or a checked conversion overflows.
//
// T must be able to represent "no value": a pointer, interface, map, slice,
// channel, function or nullable wrapper type. For other types TryConvert
// panics with an error wrapping [ErrNotNullable].
func TryConvert[T any](v any) T {
	return try[T](v, nil, false)
}

// TryConvertFrom is like [TryConvert] with a declared source type.
func TryConvertFrom[T any](v any, source reflect.Type) T {
	return try[T](v, source, false)
}

// TryConvertChecked is the checked counterpart of [TryConvert].
func TryConvertChecked[T any](v any) T {
	return try[T](v, nil, true)
}

// TryConvertCheckedFrom is the checked counterpart of [TryConvertFrom].
func TryConvertCheckedFrom[T any](v any, source reflect.Type) T {
	return try[T](v, source, true)
}

// TryConvertValue is like [TryConvertFrom] with the source type taken from
// the static type of v.
func TryConvertValue[T, S any](v S) T {
	return try[T](v, reflect.TypeFor[S](), false)
}

// TryConvertCheckedValue is the checked counterpart of [TryConvertValue].
func TryConvertCheckedValue[T, S any](v S) T {
	return try[T](v, reflect.TypeFor[S](), true)
}

// GetPlan returns the plan converting values of source to T within the
// default Engine. Checked and unchecked plans are the same *Plan unless T is
// a primitive integral type and source is a predeclared numeric type.
func GetPlan[T any](source reflect.Type, checked bool) (*Plan[T], error) {
	c, err := For[T]()
	if err != nil {
		return nil, err
	}

	return c.Plan(source, checked)
}

// GetDefaultPlan returns the plan used by the Try family for source within
// the default Engine.
func GetDefaultPlan[T any](source reflect.Type, checked bool) (*Plan[T], error) {
	c, err := For[T]()
	if err != nil {
		return nil, err
	}

	return c.DefaultPlan(source, checked)
}

func convert[T any](v any, source reflect.Type, checked bool) (T, error) {
	c, err := For[T]()
	if err != nil {
		var zero T
		return zero, err
	}

	return c.convert(v, source, checked)
}

func try[T any](v any, source reflect.Type, checked bool) T {
	c, err := For[T]()
	if err != nil {
		panic(err)
	}

	t, err := c.try(v, source, checked)
	if err != nil {
		panic(err)
	}

	return t
}
