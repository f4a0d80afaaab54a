package typeclass

import (
	"fmt"
	"reflect"
)

// Integral is a tri-state answer to "is this a primitive integral type".
type Integral uint8

const (
	// Unknown means checked arithmetic is never engaged for the type.
	Unknown Integral = iota
	// False is reported for the predeclared floating-point types.
	False
	// True is reported for the predeclared integer types.
	True
)

// String returns the name of the answer.
func (i Integral) String() string {
	switch i {
	case Unknown:
		return "unknown"
	case False:
		return "false"
	case True:
		return "true"
	default:
		return fmt.Sprintf("Integral(%d)", uint8(i))
	}
}

// Known reports whether i is either True or False.
func (i Integral) Known() bool {
	return i == True || i == False
}

var integralTypes = map[reflect.Type]Integral{
	reflect.TypeFor[int]():     True,
	reflect.TypeFor[int8]():    True,
	reflect.TypeFor[int16]():   True,
	reflect.TypeFor[int32]():   True, // also rune
	reflect.TypeFor[int64]():   True,
	reflect.TypeFor[uint]():    True,
	reflect.TypeFor[uint8]():   True, // also byte
	reflect.TypeFor[uint16]():  True,
	reflect.TypeFor[uint32]():  True,
	reflect.TypeFor[uint64]():  True,
	reflect.TypeFor[uintptr](): True,
	reflect.TypeFor[float32](): False,
	reflect.TypeFor[float64](): False,
}

// IsPrimitiveIntegral reports whether t is one of the predeclared integer
// types.
//
// A nullable wrapper is unwrapped first. Named types are Unknown even when
// their underlying type is an integer, so enum-like types never take part in
// checked arithmetic.
func IsPrimitiveIntegral(t reflect.Type) Integral {
	if u := Underlying(t); u != nil {
		t = u
	}

	if t == nil {
		return Unknown
	}

	return integralTypes[t]
}
