package coerce

import (
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// Mapping reports whether raw is a plain string-keyed mapping and returns it
// as map[string]any. Maps with non-string key types, and maps with interface
// keys holding anything but strings, are not mappings. Structs are not
// mappings either.
func Mapping(raw any) (map[string]any, bool) {
	if m, ok := raw.(map[string]any); ok {
		return m, true
	}

	rv := reflect.ValueOf(raw)
	if rv.Kind() != reflect.Map || rv.IsNil() {
		return nil, false
	}

	switch rv.Type().Key().Kind() {
	case reflect.String:
	case reflect.Interface:
		iter := rv.MapRange()
		for iter.Next() {
			if _, ok := iter.Key().Interface().(string); !ok {
				return nil, false
			}
		}
	default:
		return nil, false
	}

	var out map[string]any
	if err := mapstructure.Decode(raw, &out); err != nil {
		return nil, false
	}
	return out, true
}
