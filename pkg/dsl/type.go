package dsl

import (
	"errors"
	"strings"

	"github.com/aretw0/strata/pkg/schema"
)

var errNoAttribute = errors.New("option given before any attribute")

// TypeBuilder provides a fluent API for declaring one type.
type TypeBuilder struct {
	name   string
	parent string
	decls  schema.Declarations
	err    error
}

// Extends makes the type a subtype of parent, a value type name.
func (t *TypeBuilder) Extends(parent string) *TypeBuilder {
	t.parent = parent
	return t
}

// Attr declares an attribute from a type expression such as "int",
// "Money", "string?" or "true|false".
func (t *TypeBuilder) Attr(name, expr string) *TypeBuilder {
	return t.Declare(schema.Declaration{Name: name, Type: expr})
}

// Declare adds a parsed declaration.
func (t *TypeBuilder) Declare(d schema.Declaration) *TypeBuilder {
	t.decls = append(t.decls, d)
	return t
}

// Optional marks the last declared attribute optional.
func (t *TypeBuilder) Optional() *TypeBuilder {
	if last := t.last(); last != nil {
		last.Optional = true
	}
	return t
}

// Default sets the default of the last declared attribute.
func (t *TypeBuilder) Default(value any) *TypeBuilder {
	if last := t.last(); last != nil {
		last.Default = value
		last.HasDefault = true
	}
	return t
}

// Declarations returns a copy of the declarations made so far.
func (t *TypeBuilder) Declarations() schema.Declarations {
	return append(schema.Declarations(nil), t.decls...)
}

func (t *TypeBuilder) last() *schema.Declaration {
	if len(t.decls) == 0 {
		if t.err == nil {
			t.err = errNoAttribute
		}
		return nil
	}
	return &t.decls[len(t.decls)-1]
}

// references lists the non built-in type names the type depends on.
func (t *TypeBuilder) references() []string {
	var refs []string
	if t.parent != "" {
		refs = append(refs, t.parent)
	}
	for _, d := range t.decls {
		expr := strings.TrimSuffix(strings.TrimSpace(d.Type), "?")
		for _, part := range strings.Split(expr, "|") {
			name := strings.TrimSpace(part)
			if name == "" {
				continue
			}
			if _, builtin := schema.Builtin(name); !builtin {
				refs = append(refs, name)
			}
		}
	}
	return refs
}
