package create

import (
	"database/sql"
	"fmt"
	"reflect"
	"testing"

	"go.dw1.io/conv/convert"
)

type config struct {
	Name    string
	Retries int
}

func TestNewSynthesized(t *testing.T) {
	t.Run("valueTypes", func(t *testing.T) {
		n, ok := New[int]()
		if !ok || n != 0 {
			t.Fatalf("expected 0, got %d, %v", n, ok)
		}

		c, ok := New[config]()
		if !ok || c != (config{}) {
			t.Fatalf("expected zero config, got %+v, %v", c, ok)
		}

		null, ok := New[sql.Null[int]]()
		if !ok || null.Valid {
			t.Fatalf("expected invalid Null, got %+v, %v", null, ok)
		}
	})

	t.Run("pointer", func(t *testing.T) {
		a, ok := New[*config]()
		if !ok || a == nil {
			t.Fatalf("expected a new *config, got %v, %v", a, ok)
		}

		b, _ := New[*config]()
		if a == b {
			t.Fatalf("expected distinct pointers")
		}
	})

	t.Run("map", func(t *testing.T) {
		m, ok := New[map[string]int]()
		if !ok || m == nil {
			t.Fatalf("expected an empty map, got %v, %v", m, ok)
		}

		m["a"] = 1
	})

	t.Run("noConstructor", func(t *testing.T) {
		if _, ok := New[fmt.Stringer](); ok {
			t.Fatalf("expected no constructor for an interface")
		}

		if _, ok := New[[]int](); ok {
			t.Fatalf("expected no constructor for a slice")
		}

		if _, ok := Lookup(nil); ok {
			t.Fatalf("expected no constructor for a nil type")
		}
	})
}

type widget struct{ ID int }

func TestRegister(t *testing.T) {
	if _, ok := Registered(reflect.TypeFor[*widget]()); ok {
		t.Fatalf("expected no registration before Register")
	}

	Register(func() *widget { return &widget{ID: 1} })
	Register(func() *widget { return &widget{ID: 2} })

	w, ok := New[*widget]()
	if !ok || w.ID != 2 {
		t.Fatalf("expected the latest constructor, got %+v, %v", w, ok)
	}

	if _, ok := Registered(reflect.TypeFor[*widget]()); !ok {
		t.Fatalf("expected registration")
	}
}

type fallback struct{ Reason string }

func TestRegisteredAsNullValues(t *testing.T) {
	Register(func() *fallback { return &fallback{Reason: "unconvertible"} })

	c, err := convert.Of[*fallback](convert.New(convert.WithNullValues(Registered)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := c.TryConvert(42, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got == nil || got.Reason != "unconvertible" {
		t.Fatalf("expected registered fallback, got %+v", got)
	}
}
