package strata

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/mitchellh/mapstructure"
)

// Object is an immutable value object. Its attributes are fixed at
// construction; use With to derive a modified copy.
type Object struct {
	typ   *Type
	store map[string]any
}

// Type returns the type the object was built by.
func (o *Object) Type() *Type { return o.typ }

// TypeName is used when the object appears in error messages.
func (o *Object) TypeName() string {
	if o == nil {
		return "absent"
	}
	return o.typ.name
}

// Get returns the value of name, or nil when it is unset or undeclared.
func (o *Object) Get(name string) any {
	return o.store[name]
}

// Lookup returns the value of name and whether it is set.
func (o *Object) Lookup(name string) (any, bool) {
	v, ok := o.store[name]
	return v, ok
}

// Has reports whether name is set. Unset optional attributes and
// undeclared names report false.
func (o *Object) Has(name string) bool {
	_, ok := o.store[name]
	return ok
}

// Attributes returns a copy of the set attributes.
func (o *Object) Attributes() map[string]any {
	out := make(map[string]any, len(o.store))
	for k, v := range o.store {
		out[k] = v
	}
	return out
}

// Map is like Attributes but nested objects are converted to maps too.
func (o *Object) Map() map[string]any {
	out := make(map[string]any, len(o.store))
	for k, v := range o.store {
		if nested, ok := v.(*Object); ok && nested != nil {
			out[k] = nested.Map()
			continue
		}
		out[k] = v
	}
	return out
}

// Decode copies the attributes into dst, a pointer to a struct or map.
// Fields are matched by name or by their mapstructure tag. Nested objects
// decode like maps, except into interface fields where they stay objects.
func (o *Object) Decode(dst any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result: dst,
		DecodeHook: func(from, to reflect.Type, data any) (any, error) {
			nested, ok := data.(*Object)
			if !ok || to.Kind() == reflect.Interface {
				return data, nil
			}
			return nested.Map(), nil
		},
	})
	if err != nil {
		return errors.Wrapf(err, "decode %s", o.typ.name)
	}
	if err := dec.Decode(o.store); err != nil {
		return errors.Wrapf(err, "decode %s", o.typ.name)
	}
	return nil
}

// With returns a new object built from o's attributes overlaid with
// changes. A nil value in changes unsets the attribute. o is unchanged.
func (o *Object) With(changes map[string]any) (*Object, error) {
	raw := o.Attributes()
	for k, v := range changes {
		raw[k] = v
	}
	return o.typ.New(raw)
}

// String renders the object as Type{name: value, ...} in schema order.
// Unset attributes are omitted.
func (o *Object) String() string {
	if o == nil {
		return "<nil>"
	}
	var sb strings.Builder
	sb.WriteString(o.typ.name)
	sb.WriteByte('{')
	first := true
	for _, name := range o.typ.schema.Names() {
		v, ok := o.store[name]
		if !ok {
			continue
		}
		if !first {
			sb.WriteString(", ")
		}
		first = false
		switch v.(type) {
		case string:
			fmt.Fprintf(&sb, "%s: %q", name, v)
		default:
			fmt.Fprintf(&sb, "%s: %v", name, v)
		}
	}
	sb.WriteByte('}')
	return sb.String()
}

// Attr returns the value of name as T. ok is false when the attribute is
// unset or holds a value of another type.
func Attr[T any](o *Object, name string) (T, bool) {
	v, ok := o.store[name].(T)
	return v, ok
}
