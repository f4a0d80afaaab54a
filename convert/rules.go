package convert

import (
	"fmt"
	"reflect"

	"go.dw1.io/conv/typeclass"
)

// rule is a resolved conversion between two types.
type rule struct {
	fn    valueFunc
	steps []Step
}

func (r rule) then(next rule) rule {
	first, second := r.fn, next.fn

	return rule{
		fn: func(v reflect.Value) (reflect.Value, error) {
			v, err := first(v)
			if err != nil || !v.IsValid() {
				return v, err
			}

			return second(v)
		},
		steps: append(append([]Step(nil), r.steps...), next.steps...),
	}
}

// direct resolves a single conversion from one type to another, trying in
// order: identity, assignment, user-defined conversions, interface
// downcast, embedded-base upcast and Go conversions.
func (e *Engine) direct(from, to reflect.Type, checked bool) (rule, error) {
	switch {
	case from == to:
		return rule{fn: identity, steps: []Step{{Kind: StepIdentity, From: from, To: to}}}, nil
	case from.AssignableTo(to):
		return rule{fn: assignTo(to), steps: []Step{{Kind: StepAssign, From: from, To: to}}}, nil
	}

	if fn, via, ok := e.conversions.lookup(from, to); ok {
		return rule{fn: fn, steps: []Step{{Kind: StepUser, From: via, To: to}}}, nil
	}

	if from.Kind() == reflect.Interface {
		return rule{fn: downcast(to), steps: []Step{{Kind: StepDowncast, From: from, To: to}}}, nil
	}

	if r, ok := upcast(from, to); ok {
		return r, nil
	}

	if convertible(from, to) {
		if checked && typeclass.IsPrimitiveIntegral(to) == typeclass.True &&
			typeclass.IsPrimitiveIntegral(from).Known() {
			return rule{fn: checkedConvert(from, to), steps: []Step{{Kind: StepConvertChecked, From: from, To: to}}}, nil
		}

		return rule{fn: convertTo(to), steps: []Step{{Kind: StepConvert, From: from, To: to}}}, nil
	}

	return rule{}, fmt.Errorf("%w: no rule from %s to %s", ErrNotSupported, from, to)
}

func identity(v reflect.Value) (reflect.Value, error) {
	return v, nil
}

func assignTo(to reflect.Type) valueFunc {
	return func(v reflect.Value) (reflect.Value, error) {
		out := reflect.New(to).Elem()
		out.Set(v)

		return out, nil
	}
}

// downcast asserts the dynamic type of an interface value at call time. A
// nil interface becomes a nil of a reference target and "no value"
// otherwise.
func downcast(to reflect.Type) valueFunc {
	return func(v reflect.Value) (reflect.Value, error) {
		if v.IsNil() {
			if typeclass.NullabilityOf(to) == typeclass.Reference {
				return reflect.Zero(to), nil
			}

			return reflect.Value{}, nil
		}

		dyn := v.Elem()
		switch {
		case dyn.Type() == to:
			return dyn, nil
		case dyn.Type().AssignableTo(to):
			return assignTo(to)(dyn)
		}

		return reflect.Value{}, fmt.Errorf("%w: dynamic type %s is not %s", ErrNotSupported, dyn.Type(), to)
	}
}

// upcast finds the nearest embedded base of from that is assignable to to.
func upcast(from, to reflect.Type) (rule, bool) {
	chain := typeclass.Ancestors(from)

	for i, a := range chain {
		if !a.Type.AssignableTo(to) {
			continue
		}

		r := extract(from, chain[:i+1])
		if a.Type != to {
			r = r.then(rule{fn: assignTo(to), steps: []Step{{Kind: StepAssign, From: a.Type, To: to}}})
		}

		return r, true
	}

	return rule{}, false
}

// extract walks an ancestor path starting at from.
func extract(from reflect.Type, path []typeclass.Ancestor) rule {
	path = append([]typeclass.Ancestor(nil), path...)

	steps := make([]Step, 0, len(path))
	for _, a := range path {
		steps = append(steps, Step{Kind: StepAncestor, From: from, To: a.Type})
		from = a.Type
	}

	return rule{
		fn: func(v reflect.Value) (reflect.Value, error) {
			for _, a := range path {
				var err error
				if v, err = a.Extract(v); err != nil {
					return reflect.Value{}, fmt.Errorf("%w: %w", ErrNotSupported, err)
				}
			}

			return v, nil
		},
		steps: steps,
	}
}

// convertible reports whether a Go conversion from one type to the other is
// a scalar conversion. Integer to string conversions (which yield a rune,
// not digits) and conversions involving collections are excluded.
func convertible(from, to reflect.Type) bool {
	if !from.ConvertibleTo(to) {
		return false
	}

	for _, t := range [...]reflect.Type{from, to} {
		switch t.Kind() {
		case reflect.Slice, reflect.Array, reflect.Map, reflect.Interface:
			return false
		}
	}

	return !isInteger(from.Kind()) || to.Kind() != reflect.String
}
