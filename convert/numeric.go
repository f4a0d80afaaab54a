package convert

import (
	"fmt"
	"math"
	"reflect"

	"go.dw1.io/safemath"
)

// checkedConvert returns a conversion to the predeclared integer type to
// that fails with [ErrOverflow] instead of wrapping. The source must be a
// predeclared integer or float type; floats are truncated toward zero and
// must fit the target after truncation.
func checkedConvert(from, to reflect.Type) valueFunc {
	var convert func(any) (any, error)

	switch to.Kind() {
	case reflect.Int:
		convert = toInteger[int]
	case reflect.Int8:
		convert = toInteger[int8]
	case reflect.Int16:
		convert = toInteger[int16]
	case reflect.Int32:
		convert = toInteger[int32]
	case reflect.Int64:
		convert = toInteger[int64]
	case reflect.Uint:
		convert = toInteger[uint]
	case reflect.Uint8:
		convert = toInteger[uint8]
	case reflect.Uint16:
		convert = toInteger[uint16]
	case reflect.Uint32:
		convert = toInteger[uint32]
	case reflect.Uint64:
		convert = toInteger[uint64]
	case reflect.Uintptr:
		convert = toInteger[uintptr]
	default:
		return convertTo(to)
	}

	float := from.Kind() == reflect.Float32 || from.Kind() == reflect.Float64
	unsigned := isUnsigned(to.Kind())

	return func(v reflect.Value) (reflect.Value, error) {
		in := v.Interface()
		if float {
			n, ok := truncate(v.Float(), unsigned)
			if !ok {
				return reflect.Value{}, fmt.Errorf("%w: %v of type %s out of range for %s", ErrOverflow, in, v.Type(), to)
			}

			in = n
		}

		n, err := convert(in)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%w: %v of type %s: %w", ErrOverflow, v.Interface(), v.Type(), err)
		}

		return reflect.ValueOf(n), nil
	}
}

const (
	twoTo63 = 1 << 63
	twoTo64 = 1 << 64
)

// truncate drops the fractional part of f and returns it as an int64, or a
// uint64 when unsigned is set. It reports false for NaN and for values
// outside the range of the 64-bit type; narrower targets are range checked
// afterwards.
func truncate(f float64, unsigned bool) (any, bool) {
	f = math.Trunc(f)

	switch {
	case math.IsNaN(f):
		return nil, false
	case unsigned:
		if f < 0 || f >= twoTo64 {
			return nil, false
		}

		return uint64(f), true
	default:
		if f < -twoTo63 || f >= twoTo63 {
			return nil, false
		}

		return int64(f), true
	}
}

// toInteger converts to the integer type I using safemath to detect
// overflow, underflow and sign loss.
func toInteger[I safemath.Integer](v any) (any, error) {
	n, err := safemath.ConvertAny[I](v)
	if err != nil {
		return nil, err
	}

	return n, nil
}

func convertTo(to reflect.Type) valueFunc {
	return func(v reflect.Value) (reflect.Value, error) {
		return v.Convert(to), nil
	}
}

func isInteger(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	default:
		return false
	}
}

func isUnsigned(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	default:
		return false
	}
}
