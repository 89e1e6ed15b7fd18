package strata

import (
	"reflect"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/aretw0/strata/internal/coerce"
	"github.com/aretw0/strata/pkg/schema"
)

// Type is a value type: a name, an immutable attribute schema and an
// optional parent. A Type is itself a schema.Type, so value types can be
// used as attribute types and are built recursively from nested mappings.
type Type struct {
	name    string
	parent  *Type
	schema  *schema.Schema
	catalog *Catalog
}

func (t *Type) Name() string { return t.name }

func (t *Type) String() string { return t.name }

// Parent returns the type t extends, or nil.
func (t *Type) Parent() *Type { return t.parent }

// Schema returns the full attribute schema, inherited entries included.
func (t *Type) Schema() *schema.Schema { return t.schema }

// Catalog returns the catalog t is registered in.
func (t *Type) Catalog() *Catalog { return t.catalog }

// IsA reports whether t is ancestor or descends from it.
func (t *Type) IsA(ancestor *Type) bool {
	for c := t; c != nil; c = c.parent {
		if c == ancestor {
			return true
		}
	}
	return false
}

// Accepts reports whether value is an object of t or of a subtype of t.
func (t *Type) Accepts(value any) bool {
	o, ok := value.(*Object)
	if !ok || o == nil {
		return false
	}
	return o.typ.IsA(t)
}

// Construct builds an object from a mapping. It makes t a
// schema.Constructor so nested mappings are coerced into objects.
func (t *Type) Construct(attrs map[string]any) (any, error) {
	o, err := t.New(attrs)
	if err != nil {
		return nil, err
	}
	return o, nil
}

// Extend registers a subtype of t in t's catalog.
func (t *Type) Extend(name string, body func(*Definition)) (*Type, error) {
	return t.catalog.Extend(t, name, body)
}

// MustExtend is like Extend but panics on error.
func (t *Type) MustExtend(name string, body func(*Definition)) *Type {
	return t.catalog.MustExtend(t, name, body)
}

// ConstructQuietly builds like Construct without firing catalog hooks.
func (t *Type) ConstructQuietly(attrs map[string]any) (any, error) {
	o, err := t.build(attrs, true)
	if err != nil {
		return nil, err
	}
	return o, nil
}

// New builds an immutable object from raw. Attributes are resolved in
// schema order and the first failure aborts construction. Keys that are not
// declared are ignored.
func (t *Type) New(raw map[string]any) (*Object, error) {
	return t.build(raw, false)
}

// build resolves raw into an object. quiet suppresses the construct and
// coerce hooks, down through nested types.
func (t *Type) build(raw map[string]any, quiet bool) (*Object, error) {
	start := time.Now()
	store := make(map[string]any, t.schema.Len())

	for _, a := range t.schema.Attributes() {
		value, set, err := t.resolve(a, raw, quiet)
		if err != nil {
			err = errors.WithStack(err)
			if !quiet {
				t.catalog.constructed(t, err, start)
			}
			return nil, err
		}
		if set {
			store[a.Name] = value
		}
	}

	if !quiet {
		t.catalog.constructed(t, nil, start)
	}
	return &Object{typ: t, store: store}, nil
}

// NewFrom builds an object from any string-keyed map or from a struct.
// Struct fields are read by name or by their mapstructure tag.
func (t *Type) NewFrom(input any) (*Object, error) {
	raw, err := normalize(input)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", t.name)
	}
	return t.New(raw)
}

// MustNew is like New but panics on error.
func (t *Type) MustNew(raw map[string]any) *Object {
	o, err := t.New(raw)
	if err != nil {
		panic(err)
	}
	return o
}

// Validate resolves every attribute of raw without building an object and
// returns all failures as a *schema.AggregateError, or nil. It fires no
// hooks.
func (t *Type) Validate(raw map[string]any) error {
	var errs []error
	for _, a := range t.schema.Attributes() {
		if _, _, err := t.resolve(a, raw, true); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return &schema.AggregateError{Errors: errs}
}

// resolve produces the stored value of one attribute. set is false when an
// optional attribute without default was omitted.
func (t *Type) resolve(a schema.Attribute, raw map[string]any, quiet bool) (value any, set bool, err error) {
	v, present := raw[a.Name]
	if !present || isNil(v) {
		if a.Required() {
			return nil, false, &schema.MissingAttributeError{
				Type:     t.name,
				Name:     a.Name,
				Expected: a.Expected(),
			}
		}
		if a.HasDefault {
			return a.Default, true, nil
		}
		return nil, false, nil
	}

	coerceFn := t.catalog.coercer.Coerce
	if quiet {
		coerceFn = t.catalog.coercer.Check
	}
	res, err := coerceFn(a.Types, v)
	if err != nil {
		mismatch := &schema.TypeMismatchError{
			Type:     t.name,
			Name:     a.Name,
			Expected: a.Expected(),
			Actual:   schema.TypeNameOf(v),
			Value:    v,
		}
		var failure *coerce.Failure
		if errors.As(err, &failure) {
			mismatch.Cause = failure.Cause
		}
		return nil, false, mismatch
	}

	if !quiet {
		t.catalog.coerced(t, a.Name, res)
	}
	return res.Value, true, nil
}

// isNil reports nil and typed nil values, which count as absent.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
