package convert

import (
	"log/slog"
	"reflect"
	"sync"
	"sync/atomic"
)

// Engine owns the per-target [Converter] contexts and the user-defined
// conversions they consult.
//
// An Engine is safe for concurrent use. Its caches live as long as the
// Engine and are never evicted.
type Engine struct {
	contexts    sync.Map // reflect.Type -> *Converter[T]
	conversions registry
	logger      atomic.Pointer[slog.Logger]
	nullValues  atomic.Pointer[NullValueProvider]
}

var std = New()

// New returns an Engine configured by opts.
func New(opts ...Option) *Engine {
	e := &Engine{}
	e.setLogger(nil)
	e.apply(opts)

	return e
}

// Default returns the process-wide Engine used by the package-level
// functions.
func Default() *Engine {
	return std
}

// Register adds a user-defined conversion from S to T to the default
// Engine.
//
// Register conversions during initialization, before any conversion between
// the two types runs: plans that were already built are not revisited.
func Register[S, T any](fn func(S) (T, error)) {
	std.conversions.add(newRegistration(fn))
}

// RegisterFunc is like [Register] for conversions that cannot fail.
func RegisterFunc[S, T any](fn func(S) T) {
	Register(func(s S) (T, error) {
		return fn(s), nil
	})
}

// Configure applies opts to the default Engine. Like [Register], it should
// run during initialization: converters that already exist keep the null
// value they were built with.
func Configure(opts ...Option) {
	std.apply(opts)
}

// SetLogger sets the logger of the default Engine. A nil logger discards.
func SetLogger(logger *slog.Logger) {
	std.setLogger(logger)
}

func (e *Engine) apply(opts []Option) {
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
}

func (e *Engine) setLogger(logger *slog.Logger) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	e.logger.Store(logger)
}

func (e *Engine) log() *slog.Logger {
	return e.logger.Load()
}

func (e *Engine) nullValue(t reflect.Type) (any, bool) {
	p := e.nullValues.Load()
	if p == nil || *p == nil {
		return nil, false
	}

	f, ok := (*p)(t)
	if !ok || f == nil {
		return nil, false
	}

	return f(), true
}
