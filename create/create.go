package create

import (
	"reflect"
	"sync"

	"go.dw1.io/conv/typeclass"
)

var constructors sync.Map // reflect.Type -> func() any

// Register sets the constructor of T, replacing any earlier one.
func Register[T any](fn func() T) {
	constructors.Store(reflect.TypeFor[T](), func() any {
		return fn()
	})
}

// Registered returns the constructor registered for t.
func Registered(t reflect.Type) (func() any, bool) {
	v, ok := constructors.Load(t)
	if !ok {
		return nil, false
	}

	return v.(func() any), true
}

// Lookup returns the constructor of t, registered or synthesized.
func Lookup(t reflect.Type) (func() any, bool) {
	if fn, ok := Registered(t); ok {
		return fn, true
	}

	if t == nil {
		return nil, false
	}

	if typeclass.NullabilityOf(t) != typeclass.Reference {
		return func() any {
			return reflect.Zero(t).Interface()
		}, true
	}

	switch t.Kind() {
	case reflect.Pointer:
		return func() any {
			return reflect.New(t.Elem()).Interface()
		}, true
	case reflect.Map:
		return func() any {
			return reflect.MakeMap(t).Interface()
		}, true
	default:
		return nil, false
	}
}

// New returns a new value of T. It reports false when T has no
// constructor.
func New[T any]() (T, bool) {
	fn, ok := Lookup(reflect.TypeFor[T]())
	if !ok {
		var zero T
		return zero, false
	}

	t, ok := fn().(T)

	return t, ok
}
