// Package registry holds cast functions that turn values of one Go type into
// a declared attribute type, looked up by (source type, target type name).
package registry

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

// ErrNoCast is returned by Execute when no cast is registered for the pair.
var ErrNoCast = errors.New("no cast registered")

// CastFunc converts a value into the target type.
// The result is used as-is; it is not checked against the target.
type CastFunc func(value any) (any, error)

type key struct {
	source reflect.Type
	target string
}

// Registry manages the available casts.
type Registry struct {
	mu    sync.RWMutex
	casts map[key]CastFunc
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		casts: make(map[key]CastFunc),
	}
}

// Register adds a cast from values of type source to the type named target.
// If a cast for the same pair exists, it is overwritten.
func (r *Registry) Register(source reflect.Type, target string, fn CastFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.casts[key{source: source, target: target}] = fn
}

// Lookup returns the cast registered for the pair, if any.
func (r *Registry) Lookup(source reflect.Type, target string) (CastFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.casts[key{source: source, target: target}]
	return fn, ok
}

// Execute looks up the cast for value's dynamic type and runs it.
// Returns ErrNoCast if the pair is not registered.
func (r *Registry) Execute(value any, target string) (any, error) {
	source := reflect.TypeOf(value)
	fn, ok := r.Lookup(source, target)
	if !ok {
		return nil, fmt.Errorf("%w: %v to %s", ErrNoCast, source, target)
	}
	return fn(value)
}

// Len returns the number of registered casts.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.casts)
}

// Register adds a typed cast from S to the type named target.
func Register[S any](r *Registry, target string, fn func(S) (any, error)) {
	source := reflect.TypeOf((*S)(nil)).Elem()
	r.Register(source, target, func(value any) (any, error) {
		s, ok := value.(S)
		if !ok {
			return nil, fmt.Errorf("cast to %s: expected %v, got %T", target, source, value)
		}
		return fn(s)
	})
}
