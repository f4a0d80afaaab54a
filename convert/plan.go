package convert

import (
	"fmt"
	"reflect"
	"strings"
)

// StepKind identifies one stage of a conversion [Plan].
type StepKind uint8

const (
	// StepIdentity passes the value through unchanged.
	StepIdentity StepKind = iota
	// StepAssert treats the input as a value of the declared source type.
	StepAssert
	// StepUnwrap takes the value out of a nullable wrapper.
	StepUnwrap
	// StepAncestor extracts an embedded base.
	StepAncestor
	// StepAssign stores the value in an assignable type, such as an
	// interface it implements.
	StepAssign
	// StepDowncast asserts the dynamic type of an interface value.
	StepDowncast
	// StepConvert is a Go conversion that truncates or wraps numbers.
	StepConvert
	// StepConvertChecked is a numeric conversion that fails on overflow.
	StepConvertChecked
	// StepUser calls a registered conversion.
	StepUser
	// StepWrap stores the value in a nullable wrapper.
	StepWrap
	// StepDefault substitutes the null value when the steps before it fail.
	StepDefault
	// StepNull always produces the null value.
	StepNull
)

var stepNames = [...]string{
	StepIdentity:       "identity",
	StepAssert:         "assert",
	StepUnwrap:         "unwrap",
	StepAncestor:       "ancestor",
	StepAssign:         "assign",
	StepDowncast:       "downcast",
	StepConvert:        "convert",
	StepConvertChecked: "convert-checked",
	StepUser:           "user",
	StepWrap:           "wrap",
	StepDefault:        "default",
	StepNull:           "null",
}

// String returns the name of the step kind.
func (k StepKind) String() string {
	if int(k) < len(stepNames) {
		return stepNames[k]
	}

	return fmt.Sprintf("StepKind(%d)", uint8(k))
}

// Step is one stage of a conversion [Plan].
type Step struct {
	Kind StepKind
	From reflect.Type
	To   reflect.Type
}

// String formats the step as "kind from -> to".
func (s Step) String() string {
	switch {
	case s.From == nil && s.To == nil:
		return s.Kind.String()
	case s.From == nil:
		return fmt.Sprintf("%s %s", s.Kind, s.To)
	default:
		return fmt.Sprintf("%s %s -> %s", s.Kind, s.From, typeName(s.To))
	}
}

// Plan is a built conversion from one source type to T.
//
// Plans are immutable and safe for concurrent use. Two calls that resolve
// to the same rule share the same *Plan.
type Plan[T any] struct {
	source  reflect.Type
	target  reflect.Type
	checked bool
	steps   []Step
	fn      func(any) (T, error)
}

// Source returns the declared source type the plan was built for.
func (p *Plan[T]) Source() reflect.Type {
	return p.source
}

// Target returns T.
func (p *Plan[T]) Target() reflect.Type {
	return p.target
}

// Checked reports whether the plan uses checked numeric conversions.
func (p *Plan[T]) Checked() bool {
	return p.checked
}

// Steps returns a copy of the stages of the plan.
func (p *Plan[T]) Steps() []Step {
	return append([]Step(nil), p.steps...)
}

// Call runs the plan on v, which must be a value of the source type (or
// convertible to it through assignment or embedding).
func (p *Plan[T]) Call(v any) (T, error) {
	return p.fn(v)
}

// Func returns the plan as a plain function, for composing pipelines.
func (p *Plan[T]) Func() func(any) (T, error) {
	return p.fn
}

// String describes the plan.
func (p *Plan[T]) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s -> %s", typeName(p.source), typeName(p.target))
	if p.checked {
		b.WriteString(" (checked)")
	}

	for i, s := range p.steps {
		if i == 0 {
			b.WriteString(": ")
		} else {
			b.WriteString(", ")
		}

		b.WriteString(s.String())
	}

	return b.String()
}
