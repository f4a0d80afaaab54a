package singleton

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"go.dw1.io/conv/create"
	"go.dw1.io/conv/typeclass"
)

// ErrExists is returned by registrations with [FailIfExists] when the type
// already has an instance.
var ErrExists = errors.New("singleton already registered")

// ErrNoInstance is returned by [Instance] when the type has neither an
// instance nor a constructor.
var ErrNoInstance = errors.New("no singleton instance")

// Policy decides what a registration does when the type already has an
// instance.
type Policy uint8

const (
	// Overwrite replaces the existing instance.
	Overwrite Policy = iota
	// KeepExisting keeps the existing instance and reports false.
	KeepExisting
	// FailIfExists keeps the existing instance and fails with [ErrExists].
	FailIfExists
)

// String returns the name of the policy.
func (p Policy) String() string {
	switch p {
	case Overwrite:
		return "overwrite"
	case KeepExisting:
		return "keep-existing"
	case FailIfExists:
		return "fail-if-exists"
	default:
		return fmt.Sprintf("Policy(%d)", uint8(p))
	}
}

type lazy = func() (any, error)

var (
	mu        sync.Mutex
	instances = map[reflect.Type]lazy{}
	seeded    = map[reflect.Type]bool{}
)

// Register sets factory as the lazy constructor of the instance of T. It
// reports whether the factory was stored.
func Register[T any](factory func() T, p Policy) (bool, error) {
	return register(reflect.TypeFor[T](), sync.OnceValues(func() (any, error) {
		return factory(), nil
	}), p)
}

// RegisterValue sets v as the instance of T and returns it. A nil v (or an
// invalid nullable wrapper) is returned without being registered.
func RegisterValue[T any](v T, p Policy) (T, error) {
	t := reflect.TypeFor[T]()
	if isNil(reflect.ValueOf(&v).Elem()) {
		return v, nil
	}

	if _, err := register(t, func() (any, error) { return v, nil }, p); err != nil {
		return v, err
	}

	return v, nil
}

// Set replaces the instance of T with v.
func Set[T any](v T) {
	_, _ = register(reflect.TypeFor[T](), func() (any, error) { return v, nil }, Overwrite)
}

// Instance returns the instance of T, creating it on first use.
func Instance[T any]() (T, error) {
	var zero T

	t := reflect.TypeFor[T]()

	mu.Lock()
	seed(t)

	get, ok := instances[t]
	if !ok {
		fn, found := create.Lookup(t)
		if !found {
			mu.Unlock()
			return zero, fmt.Errorf("%w: %s", ErrNoInstance, t)
		}

		get = sync.OnceValues(func() (any, error) { return fn(), nil })
		instances[t] = get
	}
	mu.Unlock()

	v, err := get()
	if err != nil {
		return zero, err
	}

	if v == nil {
		return zero, nil
	}

	inst, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s holds %T", ErrNoInstance, t, v)
	}

	return inst, nil
}

func register(t reflect.Type, get lazy, p Policy) (bool, error) {
	mu.Lock()
	defer mu.Unlock()

	seed(t)

	if _, ok := instances[t]; ok {
		switch p {
		case KeepExisting:
			return false, nil
		case FailIfExists:
			return false, fmt.Errorf("%w: %s", ErrExists, t)
		}
	}

	instances[t] = get

	return true, nil
}

// seed stores the registered constructor of t the first time t is seen.
// mu must be held.
func seed(t reflect.Type) {
	if seeded[t] {
		return
	}

	seeded[t] = true

	if fn, ok := create.Registered(t); ok {
		if _, exists := instances[t]; !exists {
			instances[t] = sync.OnceValues(func() (any, error) { return fn(), nil })
		}
	}
}

func isNil(v reflect.Value) bool {
	switch typeclass.NullabilityOf(v.Type()) {
	case typeclass.Reference:
		return v.IsNil()
	case typeclass.NullableValue:
		return !v.Field(1).Bool()
	default:
		return false
	}
}
