package decimal

import (
	"fmt"
	"math"

	"github.com/cockroachdb/apd/v3"

	"go.dw1.io/conv/convert"
)

// Options returns the decimal conversions as engine options.
func Options() []convert.Option {
	return []convert.Option{
		convert.WithConversionFunc(FromInt64),
		convert.WithConversionFunc(FromInt),
		convert.WithConversion(FromFloat64),
		convert.WithConversion(Parse),
		convert.WithConversion(FromStringer),
		convert.WithConversion(ToInt64),
		convert.WithConversion(ToFloat64),
		convert.WithConversion(Format),
	}
}

// Register adds the decimal conversions to the default engine.
func Register() {
	convert.Configure(Options()...)
}

// FromInt64 returns n as a decimal.
func FromInt64(n int64) *apd.Decimal {
	return apd.New(n, 0)
}

// FromInt returns n as a decimal.
func FromInt(n int) *apd.Decimal {
	return apd.New(int64(n), 0)
}

// FromFloat64 returns the decimal closest to f. NaN and infinities are not
// supported.
func FromFloat64(f float64) (*apd.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%w: %v is not finite", convert.ErrNotSupported, f)
	}

	var d apd.Decimal
	if _, err := d.SetFloat64(f); err != nil {
		return nil, fmt.Errorf("%w: %w", convert.ErrNotSupported, err)
	}

	return &d, nil
}

// Parse parses s as a decimal number.
func Parse(s string) (*apd.Decimal, error) {
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", convert.ErrNotSupported, err)
	}

	return d, nil
}

// FromStringer parses the string form of s as a decimal number.
func FromStringer(s fmt.Stringer) (*apd.Decimal, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: nil Stringer", convert.ErrNotSupported)
	}

	return Parse(s.String())
}

// ToInt64 returns d as an int64. It fails with [convert.ErrNotSupported]
// when d has a fractional part and with [convert.ErrOverflow] when d is out
// of range.
func ToInt64(d *apd.Decimal) (int64, error) {
	if d == nil {
		return 0, fmt.Errorf("%w: nil decimal", convert.ErrNotSupported)
	}

	var integ, frac apd.Decimal
	d.Modf(&integ, &frac)

	if !frac.IsZero() {
		return 0, fmt.Errorf("%w: %s is not an integer", convert.ErrNotSupported, d.Text('f'))
	}

	n, err := integ.Int64()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", convert.ErrOverflow, err)
	}

	return n, nil
}

// ToFloat64 returns the float64 closest to d.
func ToFloat64(d *apd.Decimal) (float64, error) {
	if d == nil {
		return 0, fmt.Errorf("%w: nil decimal", convert.ErrNotSupported)
	}

	f, err := d.Float64()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", convert.ErrNotSupported, err)
	}

	return f, nil
}

// Format returns d in plain notation, without an exponent.
func Format(d *apd.Decimal) (string, error) {
	if d == nil {
		return "", fmt.Errorf("%w: nil decimal", convert.ErrNotSupported)
	}

	return d.Text('f'), nil
}
