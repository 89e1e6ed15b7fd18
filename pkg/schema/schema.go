package schema

import (
	"fmt"
	"sync"
)

// Schema is the ordered, immutable set of attribute declarations of a type.
// A Schema is produced by Builder.Build and never changes afterwards, so it
// is safe to read from many goroutines without locking.
type Schema struct {
	order []string
	attrs map[string]Attribute
}

// Empty returns a schema with no attributes.
func Empty() *Schema {
	return &Schema{attrs: map[string]Attribute{}}
}

// Len returns the number of declared attributes.
func (s *Schema) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// Names returns attribute names in declaration order.
func (s *Schema) Names() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.order...)
}

// Lookup returns the declaration for name.
func (s *Schema) Lookup(name string) (Attribute, bool) {
	if s == nil {
		return Attribute{}, false
	}
	a, ok := s.attrs[name]
	if !ok {
		return Attribute{}, false
	}
	return a.clone(), true
}

// Attributes returns every declaration in declaration order.
func (s *Schema) Attributes() []Attribute {
	if s == nil {
		return nil
	}
	out := make([]Attribute, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.attrs[name].clone())
	}
	return out
}

// Builder accumulates declarations for one type.
// Declare may be called from several goroutines; Build seals the builder.
type Builder struct {
	mu     sync.Mutex
	order  []string
	attrs  map[string]Attribute
	sealed bool
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{attrs: make(map[string]Attribute)}
}

// Derive starts a builder from a copy of parent's declarations.
// Declarations made on the returned builder never reach parent.
func Derive(parent *Schema) *Builder {
	b := NewBuilder()
	if parent == nil {
		return b
	}
	b.order = append(b.order, parent.order...)
	for name, a := range parent.attrs {
		b.attrs[name] = a.clone()
	}
	return b
}

// Declare inserts or overwrites the attribute name. A redeclared name keeps
// its original position; the last declaration wins.
func (b *Builder) Declare(name string, types []Type, opts ...Option) error {
	if name == "" {
		return fmt.Errorf("%w: attribute name is empty", ErrInvalidDeclaration)
	}
	if len(types) == 0 {
		return fmt.Errorf("%w: attribute %q has no types", ErrInvalidDeclaration, name)
	}
	for i, t := range types {
		if t == nil {
			return fmt.Errorf("%w: attribute %q type %d is nil", ErrInvalidDeclaration, name, i)
		}
	}

	attr := Attribute{Name: name, Types: append([]Type(nil), types...)}
	for _, opt := range opts {
		opt(&attr)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.sealed {
		return fmt.Errorf("%w: cannot declare %q", ErrSealed, name)
	}
	if _, exists := b.attrs[name]; !exists {
		b.order = append(b.order, name)
	}
	b.attrs[name] = attr
	return nil
}

// Build seals the builder and returns the finished schema.
// Calling Build again returns an equal schema.
func (b *Builder) Build() *Schema {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.sealed = true
	s := &Schema{
		order: append([]string(nil), b.order...),
		attrs: make(map[string]Attribute, len(b.attrs)),
	}
	for name, a := range b.attrs {
		s.attrs[name] = a.clone()
	}
	return s
}
