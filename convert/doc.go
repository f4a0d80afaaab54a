// Package convert converts values of unknown static type to a requested
// type at runtime.
//
// For every target type T an [Engine] keeps one [Converter], and the
// Converter keeps one set of plans per source type. A plan is resolved once,
// on first use of a (source, T) pair, and every later conversion of the pair
// runs the published plan without resolving anything again.
//
// Rules are tried in this order:
//
//   - identity and assignment (including storing a value in an interface)
//   - user-defined conversions registered with [Register] or [WithConversion]
//   - interface downcasts, decided by the dynamic type at call time
//   - upcasts to an embedded base struct
//   - Go conversions between scalar types; numbers truncate or wrap
//
// A nullable wrapper such as [database/sql.Null] is unwrapped on the source
// side and wrapped on the target side, so rules are always defined against
// the wrapped type. When no rule applies, the rules are retried for each
// embedded base of the source type, nearest first.
//
// Four families share the cache:
//
//	n, err := convert.Convert[int8](128)             // -128, truncated
//	_, err = convert.ConvertChecked[int8](128)       // ErrOverflow
//	p := convert.TryConvert[*Point]("not a point")   // nil, no error
//	q := convert.TryConvertChecked[sql.Null[int8]](128) // invalid Null
//
// Checked conversions differ from unchecked ones only when the target is a
// predeclared integer type and the source a predeclared integer or float
// type; otherwise both families use the same plan.
package convert
