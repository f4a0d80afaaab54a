// Package typeclass classifies Go types for runtime conversion.
//
// It answers three questions about a [reflect.Type]: whether values of the
// type can represent "no value" ([Nullability]), whether the type belongs to
// the fixed family of predeclared integer types ([IsPrimitiveIntegral]), and
// which embedded struct it extends ([Ancestor]).
//
// A nullable wrapper is an instantiated generic struct with exactly the
// fields V and Valid, such as [database/sql.Null]:
//
//	type Null[T any] struct {
//		V     T
//		Valid bool
//	}
//
// All functions are pure and safe for concurrent use.
package typeclass
