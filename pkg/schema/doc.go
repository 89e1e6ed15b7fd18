// Package schema declares what a value type is made of.
//
// It defines the Type contract used for attribute declarations, a closed set
// of built-in primitives (int, float, string, bool, symbol, true, false), and
// ordered attribute schemas. Schemas are assembled with a Builder and frozen
// by Build; a child type starts from Derive(parent) and overrides from there.
//
// Basic usage:
//
//	b := schema.NewBuilder()
//	b.Declare("amount", []schema.Type{schema.Float()})
//	b.Declare("currency", []schema.Type{schema.SymbolType()}, schema.Default(schema.Symbol("EUR")))
//	b.Declare("paid", []schema.Type{schema.True(), schema.False()})
//	s := b.Build()
//
// Declarations can also come from type expressions:
//
//	decls := schema.ParseTypeMap(map[string]string{
//	    "amount":   "float",
//	    "currency": "symbol?",
//	    "paid":     "true|false",
//	})
//	err := decls.Apply(b, resolver)
//
// A type takes part in coercion through capability interfaces: Converter for
// primitive-style conversion, Constructor for building from a mapping, and
// Caster on source values that can turn themselves into a target type.
//
// Failures are reported as *MissingAttributeError and *TypeMismatchError,
// which match ErrMissingAttribute and ErrTypeMismatch under errors.Is.
package schema
