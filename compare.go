package strata

import (
	"cmp"
	"reflect"

	"github.com/cockroachdb/errors"

	"github.com/aretw0/strata/pkg/schema"
)

// Equal reports whether o and other have the same type and the same
// attribute values. Objects of a type and of its subtype are never equal.
func (o *Object) Equal(other *Object) bool {
	if o == nil || other == nil {
		return o == other
	}
	if o.typ != other.typ {
		return false
	}
	for _, name := range o.typ.schema.Names() {
		a, aok := o.store[name]
		b, bok := other.store[name]
		if aok != bok {
			return false
		}
		if aok && !valuesEqual(a, b) {
			return false
		}
	}
	return true
}

func valuesEqual(a, b any) bool {
	ao, aObj := a.(*Object)
	bo, bObj := b.(*Object)
	if aObj || bObj {
		return aObj && bObj && ao.Equal(bo)
	}
	return reflect.DeepEqual(a, b)
}

// Compare orders two objects of the same type attribute by attribute in
// schema order. Unset sorts before set. Returns ErrIncomparable for objects
// of different types or attribute values without an ordering.
func (o *Object) Compare(other *Object) (int, error) {
	if o == nil || other == nil {
		return 0, errors.Wrap(ErrIncomparable, "nil object")
	}
	if o.typ != other.typ {
		return 0, errors.Wrapf(ErrIncomparable, "%s and %s", o.typ.name, other.typ.name)
	}
	for _, name := range o.typ.schema.Names() {
		a, aok := o.store[name]
		b, bok := other.store[name]
		switch {
		case !aok && !bok:
			continue
		case !aok:
			return -1, nil
		case !bok:
			return 1, nil
		}
		c, err := compareValues(a, b)
		if err != nil {
			return 0, errors.Wrapf(err, "%s.%s", o.typ.name, name)
		}
		if c != 0 {
			return c, nil
		}
	}
	return 0, nil
}

func compareValues(a, b any) (int, error) {
	switch x := a.(type) {
	case *Object:
		if y, ok := b.(*Object); ok {
			return x.Compare(y)
		}
	case string:
		if y, ok := b.(string); ok {
			return cmp.Compare(x, y), nil
		}
	case schema.Symbol:
		if y, ok := b.(schema.Symbol); ok {
			return cmp.Compare(x, y), nil
		}
	case bool:
		if y, ok := b.(bool); ok {
			return compareBool(x, y), nil
		}
	}

	if c, ok := compareNumbers(reflect.ValueOf(a), reflect.ValueOf(b)); ok {
		return c, nil
	}
	if reflect.DeepEqual(a, b) {
		return 0, nil
	}
	return 0, errors.Wrapf(ErrIncomparable, "%s and %s", schema.TypeNameOf(a), schema.TypeNameOf(b))
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

func compareNumbers(a, b reflect.Value) (int, bool) {
	if !isNumber(a) || !isNumber(b) {
		return 0, false
	}
	switch {
	case a.CanInt() && b.CanInt():
		return cmp.Compare(a.Int(), b.Int()), true
	case a.CanUint() && b.CanUint():
		return cmp.Compare(a.Uint(), b.Uint()), true
	default:
		return cmp.Compare(toFloat(a), toFloat(b)), true
	}
}

func isNumber(v reflect.Value) bool {
	return v.IsValid() && (v.CanInt() || v.CanUint() || v.CanFloat())
}

func toFloat(v reflect.Value) float64 {
	switch {
	case v.CanInt():
		return float64(v.Int())
	case v.CanUint():
		return float64(v.Uint())
	default:
		return v.Float()
	}
}
