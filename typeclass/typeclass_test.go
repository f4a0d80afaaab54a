package typeclass

import (
	"database/sql"
	"errors"
	"fmt"
	"math/big"
	"reflect"
	"testing"
	"time"
	"unsafe"
)

type wrapper[T any] struct {
	V     T
	Valid bool
}

type notGeneric struct {
	V     int
	Valid bool
}

type level int8

func TestClassify(t *testing.T) {
	cases := map[string]struct {
		typ  reflect.Type
		want Nullability
	}{
		"int":            {reflect.TypeFor[int](), NonNullableValue},
		"string":         {reflect.TypeFor[string](), NonNullableValue},
		"struct":         {reflect.TypeFor[time.Time](), NonNullableValue},
		"array":          {reflect.TypeFor[[2]int](), NonNullableValue},
		"notGeneric":     {reflect.TypeFor[notGeneric](), NonNullableValue},
		"pointer":        {reflect.TypeFor[*int](), Reference},
		"interface":      {reflect.TypeFor[any](), Reference},
		"error":          {reflect.TypeFor[error](), Reference},
		"map":            {reflect.TypeFor[map[string]int](), Reference},
		"slice":          {reflect.TypeFor[[]byte](), Reference},
		"chan":           {reflect.TypeFor[chan int](), Reference},
		"func":           {reflect.TypeFor[func()](), Reference},
		"unsafePointer":  {reflect.TypeFor[unsafe.Pointer](), Reference},
		"sqlNull":        {reflect.TypeFor[sql.Null[int]](), NullableValue},
		"customWrapper":  {reflect.TypeFor[wrapper[string]](), NullableValue},
		"pointerWrapper": {reflect.TypeFor[*sql.Null[int]](), Reference},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := Classify(tc.typ)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got != tc.want {
				t.Fatalf("Classify(%s) = %s, want %s", tc.typ, got, tc.want)
			}
		})
	}
}

func TestClassifyRejectsNestedWrapper(t *testing.T) {
	t.Run("nested", func(t *testing.T) {
		_, err := Classify(reflect.TypeFor[sql.Null[sql.Null[int]]]())
		if !errors.Is(err, ErrUnsupportedTarget) {
			t.Fatalf("expected ErrUnsupportedTarget, got %v", err)
		}
	})

	t.Run("nil", func(t *testing.T) {
		_, err := Classify(nil)
		if !errors.Is(err, ErrUnsupportedTarget) {
			t.Fatalf("expected ErrUnsupportedTarget, got %v", err)
		}
	})
}

func TestUnderlying(t *testing.T) {
	if got := Underlying(reflect.TypeFor[sql.Null[float64]]()); got != reflect.TypeFor[float64]() {
		t.Fatalf("Underlying = %v, want float64", got)
	}

	if got := Underlying(reflect.TypeFor[int]()); got != nil {
		t.Fatalf("Underlying(int) = %v, want nil", got)
	}
}

func TestIsPrimitiveIntegral(t *testing.T) {
	cases := map[string]struct {
		typ  reflect.Type
		want Integral
	}{
		"int":         {reflect.TypeFor[int](), True},
		"int8":        {reflect.TypeFor[int8](), True},
		"int16":       {reflect.TypeFor[int16](), True},
		"rune":        {reflect.TypeFor[rune](), True},
		"int64":       {reflect.TypeFor[int64](), True},
		"uint":        {reflect.TypeFor[uint](), True},
		"byte":        {reflect.TypeFor[byte](), True},
		"uint16":      {reflect.TypeFor[uint16](), True},
		"uint32":      {reflect.TypeFor[uint32](), True},
		"uint64":      {reflect.TypeFor[uint64](), True},
		"uintptr":     {reflect.TypeFor[uintptr](), True},
		"float32":     {reflect.TypeFor[float32](), False},
		"float64":     {reflect.TypeFor[float64](), False},
		"nullInt":     {reflect.TypeFor[sql.Null[int16]](), True},
		"nullFloat":   {reflect.TypeFor[sql.Null[float64]](), False},
		"namedInt":    {reflect.TypeFor[level](), Unknown},
		"duration":    {reflect.TypeFor[time.Duration](), Unknown},
		"bigInt":      {reflect.TypeFor[big.Int](), Unknown},
		"string":      {reflect.TypeFor[string](), Unknown},
		"complex128":  {reflect.TypeFor[complex128](), Unknown},
		"intPointer":  {reflect.TypeFor[*int](), Unknown},
		"nil":         {nil, Unknown},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if got := IsPrimitiveIntegral(tc.typ); got != tc.want {
				t.Fatalf("IsPrimitiveIntegral(%v) = %s, want %s", tc.typ, got, tc.want)
			}
		})
	}
}

func TestNullabilityString(t *testing.T) {
	for n, want := range map[Nullability]string{
		Reference:        "reference",
		NonNullableValue: "non-nullable value",
		NullableValue:    "nullable value",
		Nullability(9):   "Nullability(9)",
	} {
		if got := n.String(); got != want {
			t.Fatalf("String() = %q, want %q", got, want)
		}

		if got := fmt.Sprint(n); got != want {
			t.Fatalf("Sprint = %q, want %q", got, want)
		}
	}
}
