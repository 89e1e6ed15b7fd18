package schema

import (
	"fmt"
	"sort"
	"strings"
)

// Resolver maps type names that are not built-in primitives to types,
// typically value types registered in a catalog.
type Resolver interface {
	Resolve(name string) (Type, bool)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(name string) (Type, bool)

func (f ResolverFunc) Resolve(name string) (Type, bool) { return f(name) }

// Declaration is the textual form of an attribute declaration.
//
// Type expressions:
//
//	int            single built-in
//	Money          a name known to the Resolver
//	true|false     candidate list, tried left to right
//	string?        trailing '?' marks the attribute optional
type Declaration struct {
	Name       string
	Type       string
	Optional   bool
	Default    any
	HasDefault bool
}

// Declarations is an ordered list of textual declarations.
type Declarations []Declaration

// ParseType resolves a single type name. Built-in primitives win over r.
func ParseType(name string, r Resolver) (Type, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: empty type name", ErrUnknownType)
	}
	if t, ok := Builtin(name); ok {
		return t, nil
	}
	if r != nil {
		if t, ok := r.Resolve(name); ok {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownType, name)
}

// ParseTypes parses a type expression into its candidate list and reports
// whether it carried the optional marker.
func ParseTypes(expr string, r Resolver) ([]Type, bool, error) {
	expr = strings.TrimSpace(expr)
	optional := strings.HasSuffix(expr, "?")
	expr = strings.TrimSuffix(expr, "?")

	parts := strings.Split(expr, "|")
	types := make([]Type, 0, len(parts))
	for _, part := range parts {
		t, err := ParseType(part, r)
		if err != nil {
			return nil, false, err
		}
		types = append(types, t)
	}
	return types, optional, nil
}

// ParseTypeMap converts a map of attribute names to type expressions into
// declarations. Go maps are unordered, so names are sorted.
// Example: {"amount": "float", "currency": "symbol?"}
func ParseTypeMap(typeMap map[string]string) Declarations {
	names := make([]string, 0, len(typeMap))
	for name := range typeMap {
		names = append(names, name)
	}
	sort.Strings(names)

	decls := make(Declarations, 0, len(names))
	for _, name := range names {
		decls = append(decls, Declaration{Name: name, Type: typeMap[name]})
	}
	return decls
}

// Apply declares d on b, resolving type names through r.
func (d Declaration) Apply(b *Builder, r Resolver) error {
	types, optional, err := ParseTypes(d.Type, r)
	if err != nil {
		return fmt.Errorf("attribute %s: %w", d.Name, err)
	}
	var opts []Option
	if optional || d.Optional {
		opts = append(opts, Optional())
	}
	if d.HasDefault {
		def, err := convertDefault(types, d.Default)
		if err != nil {
			return fmt.Errorf("attribute %s: %w", d.Name, err)
		}
		opts = append(opts, Default(def))
	}
	return b.Declare(d.Name, types, opts...)
}

// convertDefault brings a textual default to the canonical form of the
// first candidate that takes it, so "EUR" declared for a symbol is stored
// as Symbol("EUR"). Values no candidate can convert are kept as given
// when no candidate is a Converter.
func convertDefault(types []Type, value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	var last error
	for _, t := range types {
		if t.Accepts(value) {
			return value, nil
		}
		conv, ok := t.(Converter)
		if !ok {
			continue
		}
		out, err := conv.Convert(value)
		if err == nil {
			return out, nil
		}
		last = err
	}
	if last != nil {
		return nil, fmt.Errorf("%w: default %v is not %s: %v", ErrInvalidDeclaration, value, RenderTypes(types), last)
	}
	return value, nil
}

// Apply declares every entry on b in order, stopping at the first error.
func (ds Declarations) Apply(b *Builder, r Resolver) error {
	for _, d := range ds {
		if err := d.Apply(b, r); err != nil {
			return err
		}
	}
	return nil
}
