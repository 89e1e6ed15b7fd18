/*
Package dsl declares several related strata types at once.

Types are described with a fluent builder, or parsed from a YAML bundle,
and may reference each other by name in any order. Define checks the
references and registers the types dependencies first.

Example usage:

	b := dsl.New()

	b.Type("Invoice").
		Attr("number", "int").
		Attr("total", "Money").
		Attr("note", "string").Optional()

	b.Type("Money").
		Attr("amount", "float").
		Attr("currency", "symbol").Default(schema.Symbol("EUR"))

	b.Type("Credit").
		Extends("Invoice").
		Attr("reason", "string")

	types, err := b.Define(strata.New())

The same bundle in YAML:

	Invoice:
	  attributes:
	    number: int
	    total: Money
	    note: string?
	Money:
	  attributes:
	    amount: float
	    currency: { type: symbol, default: EUR }
	Credit:
	  extends: Invoice
	  attributes:
	    reason: string
*/
package dsl
