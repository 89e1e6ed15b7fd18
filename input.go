package strata

import (
	"reflect"

	"github.com/cockroachdb/errors"
	"github.com/mitchellh/mapstructure"

	"github.com/aretw0/strata/internal/coerce"
)

// normalize turns construction input into a string-keyed mapping.
// Nil means no attributes. Objects contribute their set attributes, so an
// object of one type can seed another. Structs are flattened one level per
// nesting, nested structs becoming mappings.
func normalize(input any) (map[string]any, error) {
	if input == nil {
		return map[string]any{}, nil
	}
	if o, ok := input.(*Object); ok && o != nil {
		return o.Attributes(), nil
	}
	if m, ok := coerce.Mapping(input); ok {
		return m, nil
	}

	rv := reflect.ValueOf(input)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return map[string]any{}, nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, errors.Wrapf(ErrUnsupportedInput, "%T", input)
	}

	var out map[string]any
	if err := mapstructure.Decode(rv.Interface(), &out); err != nil {
		return nil, errors.Wrap(err, "decode input")
	}
	return out, nil
}
