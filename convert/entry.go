package convert

import (
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	"go.dw1.io/conv/typeclass"
)

// slot builds one plan lazily and publishes it exactly once.
type slot[T any] struct {
	once  sync.Once
	done  atomic.Bool
	build func() (*Plan[T], error)
	plan  *Plan[T]
	err   error
}

func newSlot[T any](build func() (*Plan[T], error)) *slot[T] {
	return &slot[T]{build: build}
}

func (s *slot[T]) get() (*Plan[T], error) {
	s.once.Do(func() {
		s.plan, s.err = s.build()
		s.build = nil
		s.done.Store(true)
	})

	return s.plan, s.err
}

func (s *slot[T]) built() bool {
	return s.done.Load()
}

// entry holds the four plans of one (source, T) pair. The checked slots are
// the unchecked ones when checked arithmetic cannot apply, and the default
// slots are nil when T cannot represent "no value".
type entry[T any] struct {
	unchecked, checked               *slot[T]
	defaultUnchecked, defaultChecked *slot[T]
}

func (e *entry[T]) to(checked bool) *slot[T] {
	if checked {
		return e.checked
	}

	return e.unchecked
}

func (e *entry[T]) as(checked bool) *slot[T] {
	if checked {
		return e.defaultChecked
	}

	return e.defaultUnchecked
}

func (c *Converter[T]) newEntry(source reflect.Type) *entry[T] {
	e := &entry[T]{}

	e.unchecked = newSlot(func() (*Plan[T], error) {
		return c.build(source, false)
	})

	e.checked = e.unchecked
	if c.usesChecked(source) {
		e.checked = newSlot(func() (*Plan[T], error) {
			return c.build(source, true)
		})
	}

	if c.nullErr != nil {
		return e
	}

	e.defaultUnchecked = newSlot(func() (*Plan[T], error) {
		return c.defaultPlan(e.unchecked, source, false), nil
	})

	e.defaultChecked = e.defaultUnchecked
	if e.checked != e.unchecked {
		e.defaultChecked = newSlot(func() (*Plan[T], error) {
			return c.defaultPlan(e.checked, source, true), nil
		})
	}

	return e
}

// build resolves the conversion from source to T. When no rule applies it
// retries with each ancestor of source in turn, and stops at the first
// ancestor that is already assignable to T: past that point the failure for
// source stands.
func (c *Converter[T]) build(source reflect.Type, checked bool) (*Plan[T], error) {
	log := c.engine.log()

	r, err := c.resolve(source, checked)
	if err != nil {
		chain := typeclass.Ancestors(source)
		for i, a := range chain {
			if a.Type.AssignableTo(c.target) {
				break
			}

			if ar, aerr := c.resolve(a.Type, checked); aerr == nil {
				r, err = extract(source, chain[:i+1]).then(ar), nil
				break
			}
		}
	}

	if err != nil {
		err = &Error{Source: source, Target: c.target, Checked: checked, Err: err}
		log.Debug("conversion plan unavailable",
			"source", source, "target", c.target, "checked", checked, "err", err)

		return nil, err
	}

	p := c.newPlan(source, checked, r)
	log.Debug("conversion plan built",
		"source", source, "target", c.target, "checked", checked, "plan", p.String())

	return p, nil
}

// resolve finds the rule from from to T, unwrapping a nullable source and
// wrapping into a nullable T.
func (c *Converter[T]) resolve(from reflect.Type, checked bool) (rule, error) {
	if from == c.target {
		return rule{fn: identity, steps: []Step{{Kind: StepIdentity, From: from, To: c.target}}}, nil
	}

	if u := typeclass.Underlying(from); u != nil {
		inner, err := c.resolve(u, checked)
		if err != nil {
			return rule{}, err
		}

		return rule{fn: unwrap, steps: []Step{{Kind: StepUnwrap, From: from, To: u}}}.then(inner), nil
	}

	if c.underlying == nil {
		return c.engine.direct(from, c.target, checked)
	}

	if from.Kind() == reflect.Interface {
		if fn, via, ok := c.engine.conversions.lookup(from, c.target); ok {
			return rule{fn: fn, steps: []Step{{Kind: StepUser, From: via, To: c.target}}}, nil
		}

		return rule{fn: downcastNullable(c.target, c.underlying), steps: []Step{{Kind: StepDowncast, From: from, To: c.target}}}, nil
	}

	if r, err := c.engine.direct(from, c.target, checked); err == nil {
		return r, nil
	}

	inner, err := c.engine.direct(from, c.underlying, checked)
	if err != nil {
		return rule{}, err
	}

	return inner.then(rule{fn: wrapper(c.target), steps: []Step{{Kind: StepWrap, From: c.underlying, To: c.target}}}), nil
}

func (c *Converter[T]) newPlan(source reflect.Type, checked bool, r rule) *Plan[T] {
	fail := func(err error) (T, error) {
		var zero T
		return zero, &Error{Source: source, Target: c.target, Checked: checked, Err: err}
	}

	steps := append([]Step{{Kind: StepAssert, To: source}}, r.steps...)
	same := source == c.target

	return &Plan[T]{
		source:  source,
		target:  c.target,
		checked: checked,
		steps:   steps,
		fn: func(v any) (T, error) {
			if same {
				if t, ok := v.(T); ok {
					return t, nil
				}
			}

			rv, err := assertAs(v, source)
			if err != nil {
				return fail(err)
			}

			if rv.IsValid() {
				if rv, err = r.fn(rv); err != nil {
					return fail(err)
				}
			}

			if !rv.IsValid() {
				if c.nullErr != nil {
					return fail(fmt.Errorf("%w: no value", ErrNotSupported))
				}

				return c.null, nil
			}

			if t, ok := rv.Interface().(T); ok {
				return t, nil
			}

			var zero T
			if rv.Kind() == reflect.Interface && rv.IsNil() {
				return zero, nil
			}

			return fail(fmt.Errorf("%w: produced %s", ErrNotSupported, rv.Type()))
		},
	}
}

// defaultPlan wraps the plan in s so that failures become the null value.
// When the plan cannot be built at all the result always produces the null
// value.
func (c *Converter[T]) defaultPlan(s *slot[T], source reflect.Type, checked bool) *Plan[T] {
	p, err := s.get()
	if err != nil {
		return c.nullPlan(source, checked)
	}

	return &Plan[T]{
		source:  source,
		target:  c.target,
		checked: checked,
		steps:   append(p.Steps(), Step{Kind: StepDefault, To: c.target}),
		fn: func(v any) (T, error) {
			t, err := p.fn(v)
			if err != nil {
				return c.null, nil
			}

			return t, nil
		},
	}
}

func (c *Converter[T]) nullPlan(source reflect.Type, checked bool) *Plan[T] {
	null := c.null

	return &Plan[T]{
		source:  source,
		target:  c.target,
		checked: checked,
		steps:   []Step{{Kind: StepNull, To: c.target}},
		fn: func(any) (T, error) {
			return null, nil
		},
	}
}

// assertAs treats v as a value of the declared type source. It accepts a
// value of that type, a value assignable to it, a value of the type a
// nullable source wraps, and a value embedding it. An invalid result means
// "no value".
func assertAs(v any, source reflect.Type) (reflect.Value, error) {
	if v == nil {
		switch typeclass.NullabilityOf(source) {
		case typeclass.Reference:
			return reflect.Zero(source), nil
		case typeclass.NullableValue:
			return reflect.Value{}, nil
		default:
			return reflect.Value{}, fmt.Errorf("%w: nil is not a %s", ErrNotSupported, source)
		}
	}

	rv := reflect.ValueOf(v)
	switch {
	case rv.Type() == source:
		return rv, nil
	case rv.Type().AssignableTo(source):
		return assignTo(source)(rv)
	}

	if u := typeclass.Underlying(source); u != nil && rv.Type().AssignableTo(u) {
		inner, _ := assignTo(u)(rv)
		return wrapper(source)(inner)
	}

	cur := rv
	for _, a := range typeclass.Ancestors(rv.Type()) {
		next, err := a.Extract(cur)
		if err != nil {
			break
		}

		if a.Type == source {
			return next, nil
		}

		cur = next
	}

	return reflect.Value{}, fmt.Errorf("%w: value of type %s is not a %s", ErrNotSupported, rv.Type(), source)
}

// unwrap takes the value out of a nullable wrapper; an invalid wrapper is
// "no value".
func unwrap(v reflect.Value) (reflect.Value, error) {
	if !v.Field(1).Bool() {
		return reflect.Value{}, nil
	}

	return v.Field(0), nil
}

func wrapper(t reflect.Type) valueFunc {
	return func(v reflect.Value) (reflect.Value, error) {
		out := reflect.New(t).Elem()
		out.Field(0).Set(v)
		out.Field(1).SetBool(true)

		return out, nil
	}
}

// downcastNullable is the interface downcast for a nullable target: the
// dynamic value may be the wrapper itself or the wrapped type.
func downcastNullable(t, u reflect.Type) valueFunc {
	toT, toU, wrap := downcast(t), downcast(u), wrapper(t)

	return func(v reflect.Value) (reflect.Value, error) {
		if v.IsNil() {
			return reflect.Value{}, nil
		}

		if v.Elem().Type().AssignableTo(t) {
			return toT(v)
		}

		inner, err := toU(v)
		if err != nil || !inner.IsValid() {
			return inner, err
		}

		return wrap(inner)
	}
}
