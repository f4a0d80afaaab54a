// Package decimal connects arbitrary-precision decimals from
// [github.com/cockroachdb/apd/v3] to the [convert] engine.
//
// The conversions are plain functions, so they can also be called
// directly. [Options] returns them as engine options and [Register] adds
// them to the default engine:
//
//	decimal.Register()
//
//	d, err := convert.Convert[*apd.Decimal]("12.50")
//	f, err := convert.Convert[float64](d)
package decimal
