package convert

import (
	"log/slog"
	"reflect"
)

// Option configures an [Engine].
type Option func(*Engine)

// NullValueProvider returns a factory for the value that Try conversions
// substitute on failure for type t. Returning false keeps the zero value.
type NullValueProvider func(t reflect.Type) (func() any, bool)

// WithConversion registers a user-defined conversion from S to T.
//
// When S is an interface type the conversion applies to every source type
// implementing it, in registration order, after exact matches.
func WithConversion[S, T any](fn func(S) (T, error)) Option {
	r := newRegistration(fn)

	return func(e *Engine) {
		e.conversions.add(r)
	}
}

// WithConversionFunc is like [WithConversion] for conversions that cannot
// fail.
func WithConversionFunc[S, T any](fn func(S) T) Option {
	return WithConversion(func(s S) (T, error) {
		return fn(s), nil
	})
}

// WithLogger sets the logger used to report plan builds. A nil logger
// discards.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.setLogger(logger)
	}
}

// WithNullValues sets the provider of the values substituted by Try
// conversions. The provider is consulted once per target type, when its
// [Converter] is built.
func WithNullValues(p NullValueProvider) Option {
	return func(e *Engine) {
		e.nullValues.Store(&p)
	}
}
