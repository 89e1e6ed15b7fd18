/*
Package strata builds immutable value objects from declarative schemas.

A type declares named attributes, each with one or more candidate types,
and turns untyped input mappings into validated objects. Values are coerced
to the first candidate that takes them, trying in turn identity, primitive
conversion, a registered or value-provided cast, and recursive construction
from a nested mapping.

# Declaring types

	cat := strata.New()

	Money := cat.MustDefine("Money", func(d *strata.Definition) {
		d.Attribute("amount", schema.Float())
		d.Attribute("currency", schema.SymbolType(), schema.Default(schema.Symbol("EUR")))
	})

	Invoice := cat.MustDefine("Invoice", func(d *strata.Definition) {
		d.Attribute("number", schema.Int())
		d.Attribute("total", Money)
		d.OneOf("paid", []schema.Type{schema.True(), schema.False()})
		d.Attribute("note", schema.String(), schema.Optional())
	})

Subtypes inherit every attribute of their parent and may redeclare any:

	Credit := Invoice.MustExtend("Credit", func(d *strata.Definition) {
		d.Attribute("reason", schema.String())
	})

Types can also be declared from type expressions with DefineFromMap or
DefineYAML.

# Constructing objects

	inv, err := Invoice.New(map[string]any{
		"number": "42",
		"total":  map[string]any{"amount": 19.9},
		"paid":   false,
	})

Construction is all-or-nothing. Failures are *schema.MissingAttributeError
or *schema.TypeMismatchError, matched by errors.Is against
schema.ErrMissingAttribute and schema.ErrTypeMismatch:

	Invoice: expected number to be int but was absent
	Invoice: expected paid to be [true, false] but was string

Objects never change. Equal compares type and attributes, Compare orders
objects of one type, and With derives a modified copy.

# Observability

A catalog logs through log/slog (discarded unless WithLogger is given) and
reports definitions, constructions and coercions through Hooks. Package
observability turns those hooks into Prometheus metrics.
*/
package strata
