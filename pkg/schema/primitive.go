package schema

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cast"
)

// Kind enumerates the primitive types the engine knows how to convert to.
type Kind uint8

const (
	KindCustom Kind = iota
	KindInt
	KindFloat
	KindString
	KindBool
	KindSymbol
	KindTrue
	KindFalse
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindSymbol:
		return "symbol"
	case KindTrue:
		return "true"
	case KindFalse:
		return "false"
	default:
		return "custom"
	}
}

// Primitive is a type with a canonical Go representation and a conversion
// function that maps foreign values onto it.
type Primitive struct {
	kind    Kind
	name    string
	accepts func(any) bool
	convert func(any) (any, error)
}

func (p *Primitive) Name() string { return p.name }

// Kind returns the primitive kind, KindCustom for user-registered ones.
func (p *Primitive) Kind() Kind { return p.kind }

func (p *Primitive) Accepts(value any) bool { return p.accepts(value) }

func (p *Primitive) Convert(value any) (any, error) {
	if p.convert == nil {
		return nil, fmt.Errorf("expected %s, got %T", p.name, value)
	}
	return p.convert(value)
}

// NewPrimitive registers a user-defined primitive-like type. accepts decides
// identity; convert may be nil for types that only accept their own values.
func NewPrimitive(name string, accepts func(any) bool, convert func(any) (any, error)) *Primitive {
	return &Primitive{kind: KindCustom, name: name, accepts: accepts, convert: convert}
}

// --- Built-in Primitives ---

var (
	intType = &Primitive{
		kind:    KindInt,
		name:    "int",
		accepts: func(v any) bool { _, ok := v.(int); return ok },
		convert: toInt,
	}
	floatType = &Primitive{
		kind:    KindFloat,
		name:    "float",
		accepts: func(v any) bool { _, ok := v.(float64); return ok },
		convert: toFloat,
	}
	stringType = &Primitive{
		kind:    KindString,
		name:    "string",
		accepts: func(v any) bool { _, ok := v.(string); return ok },
		convert: toString,
	}
	boolType = &Primitive{
		kind:    KindBool,
		name:    "bool",
		accepts: func(v any) bool { _, ok := v.(bool); return ok },
	}
	symbolType = &Primitive{
		kind:    KindSymbol,
		name:    "symbol",
		accepts: func(v any) bool { _, ok := v.(Symbol); return ok },
		convert: toSymbol,
	}
	trueType = &Primitive{
		kind:    KindTrue,
		name:    "true",
		accepts: func(v any) bool { b, ok := v.(bool); return ok && b },
	}
	falseType = &Primitive{
		kind:    KindFalse,
		name:    "false",
		accepts: func(v any) bool { b, ok := v.(bool); return ok && !b },
	}
)

// Int is the integer primitive. Canonical representation: int.
func Int() Type { return intType }

// Float is the floating-point primitive. Canonical representation: float64.
func Float() Type { return floatType }

// String is the text primitive.
func String() Type { return stringType }

// Bool accepts booleans only; there is no truthiness conversion.
func Bool() Type { return boolType }

// SymbolType accepts Symbol values and converts strings into them.
func SymbolType() Type { return symbolType }

// True accepts exactly the value true.
func True() Type { return trueType }

// False accepts exactly the value false.
func False() Type { return falseType }

// Builtins returns every built-in primitive in a stable order.
func Builtins() []Type {
	return []Type{intType, floatType, stringType, boolType, symbolType, trueType, falseType}
}

// Builtin looks up a built-in primitive by name.
func Builtin(name string) (Type, bool) {
	for _, t := range Builtins() {
		if t.Name() == name {
			return t, true
		}
	}
	return nil, false
}

// --- Conversions ---

func toInt(value any) (any, error) {
	switch v := value.(type) {
	case bool:
		return nil, fmt.Errorf("cannot convert bool to int")
	case uint:
		return fromUnsigned(uint64(v))
	case uint64:
		return fromUnsigned(v)
	case uintptr:
		return fromUnsigned(uint64(v))
	case float32:
		return truncate(float64(v))
	case float64:
		return truncate(v)
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil, fmt.Errorf("cannot convert empty string to int")
		}
		value = s
	}
	return cast.ToIntE(value)
}

func fromUnsigned(u uint64) (any, error) {
	if u > math.MaxInt {
		return nil, fmt.Errorf("%d overflows int", u)
	}
	return int(u), nil
}

func truncate(f float64) (any, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("cannot convert %v to int", f)
	}
	t := math.Trunc(f)
	if t >= math.MaxInt64 || t < math.MinInt64 {
		return nil, fmt.Errorf("%v overflows int", f)
	}
	return int(t), nil
}

func toFloat(value any) (any, error) {
	switch v := value.(type) {
	case bool:
		return nil, fmt.Errorf("cannot convert bool to float")
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil, fmt.Errorf("cannot convert empty string to float")
		}
		value = s
	}
	return cast.ToFloat64E(value)
}

func toString(value any) (any, error) {
	return cast.ToStringE(value)
}

func toSymbol(value any) (any, error) {
	switch v := value.(type) {
	case string:
		return Symbol(v), nil
	case fmt.Stringer:
		return Symbol(v.String()), nil
	default:
		return nil, fmt.Errorf("expected symbol, got %T", value)
	}
}
