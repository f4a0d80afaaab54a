package cast

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cast"

	"go.dw1.io/conv/convert"
)

// To converts v to type T using the default conversion engine.
//
// Integer targets use checked conversions, so overflow, underflow and sign
// loss are reported instead of truncated. Values the engine has no rule for,
// such as the string "42", are converted with [cast.ToE].
func To[T Type](v any) (T, error) {
	return ToIn[T](convert.Default(), v)
}

// ToIn is like [To] with an explicit engine, so that user-defined
// conversions registered on e take part.
func ToIn[T Type](e *convert.Engine, v any) (T, error) {
	c, err := convert.Of[T](e)
	if err != nil {
		var zero T
		return zero, err
	}

	t, err := c.ConvertChecked(v, nil)
	if err == nil || !errors.Is(err, convert.ErrNotSupported) {
		return t, err
	}

	return fallback[T](v, err)
}

// ToMust converts v to type T and panics on error.
func ToMust[T Type](v any) T {
	to, err := To[T](v)
	if err != nil {
		panic(err)
	}

	return to
}

// fallback converts v with spf13/cast. cause is reported for targets cast
// does not support.
func fallback[T Type](v any, cause error) (T, error) {
	var zero T

	switch t := any(zero).(type) {
	case int:
		return toBase[T, int](v)
	case int8:
		return toBase[T, int8](v)
	case int16:
		return toBase[T, int16](v)
	case int32:
		return toBase[T, int32](v)
	case int64:
		return toBase[T, int64](v)
	case uint:
		return toBase[T, uint](v)
	case uint8:
		return toBase[T, uint8](v)
	case uint16:
		return toBase[T, uint16](v)
	case uint32:
		return toBase[T, uint32](v)
	case uint64:
		return toBase[T, uint64](v)
	case string:
		return toBase[T, string](v)
	case bool:
		return toBase[T, bool](v)
	case float32:
		return toBase[T, float32](v)
	case float64:
		return toBase[T, float64](v)
	case time.Time:
		return toBase[T, time.Time](v)
	case time.Duration:
		return toBase[T, time.Duration](v)
	default:
		return zero, fmt.Errorf("unsupported conversion to %T from %T: %w", t, v, cause)
	}
}

// toBase converts to the basic type B using spf13/cast and re-types the
// result as T (which is the caller's type parameter).
func toBase[T any, B Basic](v any) (T, error) {
	converted, err := cast.ToE[B](v)
	if err != nil {
		var zero T
		return zero, err
	}

	return any(converted).(T), nil
}
