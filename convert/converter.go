package convert

import (
	"fmt"
	"reflect"
	"sync"

	"go.dw1.io/conv/typeclass"
)

// Converter is the conversion context of one target type T within an
// [Engine]. It caches one set of plans per source type.
//
// A Converter is obtained with [Of] or [For] and is safe for concurrent
// use.
type Converter[T any] struct {
	engine      *Engine
	target      reflect.Type
	nullability typeclass.Nullability
	underlying  reflect.Type
	integral    typeclass.Integral

	err     error // construction failure, reported on every lookup
	nullErr error // set when T cannot represent "no value"
	null    T

	entries sync.Map // reflect.Type -> *entry[T]
}

// Of returns the Converter for T within e. The first call for a T builds and
// publishes it; later calls return the same Converter.
//
// Of fails with [ErrUnsupportedTarget] when T can never be a conversion
// target. The failure is computed once and reported on every call.
func Of[T any](e *Engine) (*Converter[T], error) {
	t := reflect.TypeFor[T]()

	v, ok := e.contexts.Load(t)
	if !ok {
		v, _ = e.contexts.LoadOrStore(t, newConverter[T](e, t))
	}

	c := v.(*Converter[T])
	if c.err != nil {
		return nil, c.err
	}

	return c, nil
}

// For returns the Converter for T within the default Engine.
func For[T any]() (*Converter[T], error) {
	return Of[T](std)
}

func newConverter[T any](e *Engine, t reflect.Type) *Converter[T] {
	c := &Converter[T]{engine: e, target: t}

	n, err := typeclass.Classify(t)
	if err != nil {
		c.err = &Error{Target: t, Err: err}
		return c
	}

	c.nullability = n
	c.underlying = typeclass.Underlying(t)
	c.integral = typeclass.IsPrimitiveIntegral(t)

	if !n.CanBeNil() {
		c.nullErr = &Error{Target: t, Err: fmt.Errorf("%w: %s is a %s type", ErrNotNullable, t, n)}
		return c
	}

	if v, ok := e.nullValue(t); ok {
		if null, ok := v.(T); ok {
			c.null = null
		}
	}

	return c
}

// Target returns T.
func (c *Converter[T]) Target() reflect.Type {
	return c.target
}

// Nullability returns the nullability class of T.
func (c *Converter[T]) Nullability() typeclass.Nullability {
	return c.nullability
}

// Integral reports whether T is a primitive integral type.
func (c *Converter[T]) Integral() typeclass.Integral {
	return c.integral
}

// Null returns the value Try conversions produce on failure. It fails with
// [ErrNotNullable] when T cannot represent "no value".
func (c *Converter[T]) Null() (T, error) {
	return c.null, c.nullErr
}

// Convert converts v, declared as a value of source, to T. A nil source
// means the dynamic type of v.
func (c *Converter[T]) Convert(v any, source reflect.Type) (T, error) {
	return c.convert(v, source, false)
}

// ConvertChecked is like [Converter.Convert] but numeric conversions to a
// primitive integral type fail with [ErrOverflow] when out of range.
func (c *Converter[T]) ConvertChecked(v any, source reflect.Type) (T, error) {
	return c.convert(v, source, true)
}

// TryConvert is like [Converter.Convert] but substitutes the null value of T
// for any conversion failure. It fails only with [ErrNotNullable].
func (c *Converter[T]) TryConvert(v any, source reflect.Type) (T, error) {
	return c.try(v, source, false)
}

// TryConvertChecked is the checked counterpart of [Converter.TryConvert].
func (c *Converter[T]) TryConvertChecked(v any, source reflect.Type) (T, error) {
	return c.try(v, source, true)
}

// Plan returns the plan converting values of source to T, building it on
// first use.
func (c *Converter[T]) Plan(source reflect.Type, checked bool) (*Plan[T], error) {
	if source == nil {
		return nil, &Error{Target: c.target, Checked: checked, Err: fmt.Errorf("%w: nil source type", ErrNotSupported)}
	}

	return c.entry(source).to(checked).get()
}

// DefaultPlan returns the plan of the Try family for source. It never fails
// for a T that can represent "no value".
func (c *Converter[T]) DefaultPlan(source reflect.Type, checked bool) (*Plan[T], error) {
	if c.nullErr != nil {
		return nil, c.nullErr
	}

	if source == nil {
		return c.nullPlan(nil, checked), nil
	}

	return c.entry(source).as(checked).get()
}

// Built reports whether the plan for source has already been built.
func (c *Converter[T]) Built(source reflect.Type, checked bool) bool {
	v, ok := c.entries.Load(source)
	if !ok {
		return false
	}

	return v.(*entry[T]).to(checked).built()
}

// Len returns the number of source types cached.
func (c *Converter[T]) Len() int {
	n := 0
	c.entries.Range(func(_, _ any) bool {
		n++
		return true
	})

	return n
}

func (c *Converter[T]) convert(v any, source reflect.Type, checked bool) (T, error) {
	if v == nil {
		return c.nilResult(source, checked)
	}

	if source == nil {
		source = reflect.TypeOf(v)
	}

	p, err := c.entry(source).to(checked).get()
	if err != nil {
		var zero T
		return zero, err
	}

	return p.fn(v)
}

func (c *Converter[T]) try(v any, source reflect.Type, checked bool) (T, error) {
	if c.nullErr != nil {
		var zero T
		return zero, c.nullErr
	}

	if v == nil {
		return c.null, nil
	}

	if source == nil {
		source = reflect.TypeOf(v)
	}

	p, _ := c.entry(source).as(checked).get()

	return p.fn(v)
}

// nilResult is the result of converting a nil input without a plan: the
// null value of T, unless T or a declared value type cannot hold it.
func (c *Converter[T]) nilResult(source reflect.Type, checked bool) (T, error) {
	if c.nullErr == nil && (source == nil || typeclass.CanBeNil(source)) {
		return c.null, nil
	}

	var zero T

	return zero, &Error{Source: source, Target: c.target, Checked: checked, Err: fmt.Errorf("%w: nil value", ErrNotSupported)}
}

func (c *Converter[T]) entry(source reflect.Type) *entry[T] {
	if v, ok := c.entries.Load(source); ok {
		return v.(*entry[T])
	}

	v, _ := c.entries.LoadOrStore(source, c.newEntry(source))

	return v.(*entry[T])
}

// usesChecked reports whether checked and unchecked plans for source differ:
// T is a primitive integral type and source is a known numeric type.
func (c *Converter[T]) usesChecked(source reflect.Type) bool {
	return c.integral == typeclass.True && typeclass.IsPrimitiveIntegral(source).Known()
}
