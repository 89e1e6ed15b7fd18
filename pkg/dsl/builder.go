package dsl

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/strata"
	"github.com/aretw0/strata/internal/validator"
	"github.com/aretw0/strata/pkg/schema"
)

// Builder collects type declarations.
type Builder struct {
	types map[string]*TypeBuilder
	order []string
}

// New creates an empty builder.
func New() *Builder {
	return &Builder{
		types: make(map[string]*TypeBuilder),
	}
}

// Type starts declaring the type name.
// If the type was already started, it returns the existing builder.
func (b *Builder) Type(name string) *TypeBuilder {
	if tb, ok := b.types[name]; ok {
		return tb
	}
	tb := &TypeBuilder{name: name}
	b.types[name] = tb
	b.order = append(b.order, name)
	return tb
}

// Names returns the declared type names in declaration order.
func (b *Builder) Names() []string {
	return append([]string(nil), b.order...)
}

// Define registers every declared type in cat, dependencies first.
// Nothing is registered when references are missing or cyclic. A failure
// while defining stops at that type; types defined before it remain.
func (b *Builder) Define(cat *strata.Catalog) ([]*strata.Type, error) {
	nodes := make([]validator.Node, 0, len(b.order))
	for _, name := range b.order {
		tb := b.types[name]
		if tb.err != nil {
			return nil, fmt.Errorf("type %s: %w", name, tb.err)
		}
		nodes = append(nodes, validator.Node{Name: name, Deps: tb.references()})
	}

	order, err := validator.Order(nodes, func(name string) bool {
		_, ok := cat.Resolve(name)
		return ok
	})
	if err != nil {
		return nil, err
	}

	defined := make([]*strata.Type, 0, len(order))
	for _, name := range order {
		tb := b.types[name]
		var parent *strata.Type
		if tb.parent != "" {
			p, ok := cat.Lookup(tb.parent)
			if !ok {
				return defined, fmt.Errorf("type %s: %w: %s is not a value type", name, schema.ErrUnknownType, tb.parent)
			}
			parent = p
		}
		t, err := cat.DefineDeclarations(name, parent, tb.Declarations())
		if err != nil {
			return defined, err
		}
		defined = append(defined, t)
	}
	return defined, nil
}

// Parse reads a YAML bundle: a mapping of type names to an optional
// "extends" and an "attributes" mapping. Document order is kept.
func Parse(doc []byte) (*Builder, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(doc, &root); err != nil {
		return nil, fmt.Errorf("failed to parse bundle: %w", err)
	}

	b := New()
	if len(root.Content) == 0 {
		return b, nil
	}
	body := root.Content[0]
	if body.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("bundle: expected a mapping of types")
	}

	for i := 0; i+1 < len(body.Content); i += 2 {
		name := body.Content[i].Value
		var entry struct {
			Extends    string              `yaml:"extends"`
			Attributes schema.Declarations `yaml:"attributes"`
		}
		if err := body.Content[i+1].Decode(&entry); err != nil {
			return nil, fmt.Errorf("type %s: %w", name, err)
		}

		tb := b.Type(name)
		if entry.Extends != "" {
			tb.Extends(entry.Extends)
		}
		for _, d := range entry.Attributes {
			tb.Declare(d)
		}
	}
	return b, nil
}
