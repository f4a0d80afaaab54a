package cast

import (
	"github.com/spf13/cast"
	"go.dw1.io/safemath"
)

// Basic is an alias for [cast.Basic].
type Basic = cast.Basic

// Integer is an alias for [safemath.Integer].
type Integer = safemath.Integer

// Type is a constraint that matches all types supported by [To]: the basic
// types of [cast.Basic] and the integer types of [safemath.Integer].
type Type interface {
	Basic | Integer
}
