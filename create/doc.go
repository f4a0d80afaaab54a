// Package create builds new values of a type known only at runtime.
//
// Constructors registered with [Register] take precedence. Otherwise a
// constructor is synthesized: the zero value for value types, a pointer to
// a new zero value for pointer types and an empty map for map types. Other
// reference types (interfaces, slices, channels and functions) have no
// constructor.
//
// [Registered] has the signature of [convert.NullValueProvider], so the
// registered constructors can supply the values Try conversions return on
// failure:
//
//	e := convert.New(convert.WithNullValues(create.Registered))
package create
