package typeclass

import (
	"fmt"
	"reflect"
)

// Ancestor is the embedded base of a struct type, or of a pointer to one.
type Ancestor struct {
	// Type is the ancestor type.
	Type reflect.Type
	// Field is the embedded field the ancestor is reached through.
	Field reflect.StructField

	derived reflect.Type
}

// Extract returns the ancestor part of v, which must be of the derived type
// the Ancestor was obtained from.
//
// It fails when v is a nil pointer or the embedded pointer is nil.
func (a Ancestor) Extract(v reflect.Value) (reflect.Value, error) {
	if v.Type() != a.derived {
		return reflect.Value{}, fmt.Errorf("cannot extract %s from %s", a.Type, v.Type())
	}

	if a.derived.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}, fmt.Errorf("cannot extract %s from nil %s", a.Type, a.derived)
		}

		f := v.Elem().FieldByIndex(a.Field.Index)
		if a.Field.Type.Kind() == reflect.Pointer {
			return f, nil
		}

		return f.Addr(), nil
	}

	f := v.FieldByIndex(a.Field.Index)
	if a.Type != f.Type() {
		// A struct embedding a pointer: the ancestor is the pointed-to value.
		if f.IsNil() {
			return reflect.Value{}, fmt.Errorf("cannot extract %s from %s: nil %s", a.Type, a.derived, a.Field.Name)
		}

		return f.Elem(), nil
	}

	return f, nil
}

// AncestorOf returns the ancestor of t: the type of its first embedded
// field.
//
// For a struct S embedding B (or *B) the ancestor is B. For *S it is *B in
// both cases. Other types have no ancestor.
func AncestorOf(t reflect.Type) (Ancestor, bool) {
	if t == nil {
		return Ancestor{}, false
	}

	st := t
	if t.Kind() == reflect.Pointer {
		st = t.Elem()
	}

	if st.Kind() != reflect.Struct {
		return Ancestor{}, false
	}

	for i := range st.NumField() {
		f := st.Field(i)
		if !f.Anonymous || !f.IsExported() {
			continue
		}

		base := f.Type
		if base.Kind() == reflect.Pointer {
			base = base.Elem()
		}

		if base.Kind() != reflect.Struct {
			continue
		}

		if t.Kind() == reflect.Pointer {
			return Ancestor{Type: reflect.PointerTo(base), Field: f, derived: t}, true
		}

		return Ancestor{Type: base, Field: f, derived: t}, true
	}

	return Ancestor{}, false
}

// Ancestors returns the ancestor chain of t, nearest first. The chain is
// finite because embedding a type in itself is rejected by the compiler;
// pointer cycles are cut at the first repeated type.
func Ancestors(t reflect.Type) []Ancestor {
	var (
		chain []Ancestor
		seen  = map[reflect.Type]bool{t: true}
	)

	for {
		a, ok := AncestorOf(t)
		if !ok || seen[a.Type] {
			return chain
		}

		seen[a.Type] = true
		chain = append(chain, a)
		t = a.Type
	}
}
