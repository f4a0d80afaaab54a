package convert

import (
	"reflect"
	"sync"
)

// valueFunc converts one reflect.Value into another. An invalid result
// means "no value".
type valueFunc func(reflect.Value) (reflect.Value, error)

type typePair struct {
	from, to reflect.Type
}

type registration struct {
	typePair
	fn valueFunc
}

func newRegistration[S, T any](fn func(S) (T, error)) registration {
	return registration{
		typePair: typePair{from: reflect.TypeFor[S](), to: reflect.TypeFor[T]()},
		fn: func(v reflect.Value) (reflect.Value, error) {
			// A nil interface yields the zero S.
			s, _ := v.Interface().(S)

			t, err := fn(s)
			if err != nil {
				return reflect.Value{}, userError(err)
			}

			return reflect.ValueOf(&t).Elem(), nil
		},
	}
}

// registry holds user-defined conversions. Exact (from, to) matches win over
// registrations whose source is an interface.
type registry struct {
	mu    sync.RWMutex
	exact map[typePair]valueFunc
	iface []registration
}

func (r *registry) add(reg registration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if reg.from.Kind() == reflect.Interface {
		r.addInterface(reg)
	}

	if r.exact == nil {
		r.exact = make(map[typePair]valueFunc)
	}

	r.exact[reg.typePair] = reg.fn
}

func (r *registry) addInterface(reg registration) {
	for i, old := range r.iface {
		if old.typePair == reg.typePair {
			r.iface[i] = reg
			return
		}
	}

	r.iface = append(r.iface, reg)
}

func (r *registry) lookup(from, to reflect.Type) (valueFunc, reflect.Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if fn, ok := r.exact[typePair{from: from, to: to}]; ok {
		return fn, from, true
	}

	for _, reg := range r.iface {
		if reg.to == to && from.Implements(reg.from) {
			return reg.fn, reg.from, true
		}
	}

	return nil, nil, false
}
