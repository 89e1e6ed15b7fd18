package schema

import (
	"fmt"
	"reflect"
	"strings"
)

// Type is anything an attribute can be declared as.
// Implementations decide which values are already instances of the type.
type Type interface {
	// Name returns the human-readable name of the type (e.g., "int", "Money").
	Name() string
	// Accepts reports whether value is already an instance of this type.
	Accepts(value any) bool
}

// Converter is implemented by types that can convert foreign values into
// their canonical representation (the "primitive conversion" strategy).
type Converter interface {
	Convert(value any) (any, error)
}

// Constructor is implemented by types that can be built from a plain
// string-keyed mapping.
type Constructor interface {
	Construct(attrs map[string]any) (any, error)
}

// Caster is implemented by values that know how to turn themselves into
// another declared type. It reports false when it has no cast for target.
type Caster interface {
	CastTo(target Type) (any, bool)
}

// Symbol is an interned-name style atom, distinct from a free-form string.
type Symbol string

func (s Symbol) String() string { return string(s) }

// --- Go types ---

// GoType matches values of a concrete Go type by type assertion.
type GoType[T any] struct {
	name string
}

func (t *GoType[T]) Name() string { return t.name }

func (t *GoType[T]) Accepts(value any) bool {
	_, ok := value.(T)
	return ok
}

// TypeOf makes the Go type T usable as an attribute type.
// Values are accepted as-is when they are a T; anything else can still reach
// T through the cast strategy, keyed by the type's name.
func TypeOf[T any]() Type {
	rt := reflect.TypeOf((*T)(nil)).Elem()
	name := rt.Name()
	if name == "" {
		name = rt.String()
	}
	return &GoType[T]{name: name}
}

// Named returns t with a different display name. The cast registry keys on
// names, so this is how two Go types with the same short name are told apart.
func Named(name string, t Type) Type {
	return &namedType{Type: t, name: name}
}

type namedType struct {
	Type
	name string
}

func (t *namedType) Name() string { return t.name }

func (t *namedType) Convert(value any) (any, error) {
	if c, ok := t.Type.(Converter); ok {
		return c.Convert(value)
	}
	return nil, fmt.Errorf("%s has no conversion", t.name)
}

func (t *namedType) Construct(attrs map[string]any) (any, error) {
	if c, ok := t.Type.(Constructor); ok {
		return c.Construct(attrs)
	}
	return nil, fmt.Errorf("%s cannot be constructed from a mapping", t.name)
}

// RenderTypes renders a candidate list the way error messages expect:
// a bare name for one type, a bracketed list otherwise.
func RenderTypes(types []Type) string {
	if len(types) == 1 {
		return typeName(types[0])
	}
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = typeName(t)
	}
	return "[" + strings.Join(names, ", ") + "]"
}

func typeName(t Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.Name()
}

// TypeNameOf returns the runtime type name reported in failures.
// Values that carry their own declared type (value objects) report it.
func TypeNameOf(value any) string {
	if value == nil {
		return "absent"
	}
	if n, ok := value.(interface{ TypeName() string }); ok {
		return n.TypeName()
	}
	return fmt.Sprintf("%T", value)
}
