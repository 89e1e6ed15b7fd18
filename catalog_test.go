package strata_test

import (
	"bytes"
	"errors"
	"log/slog"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/strata"
	"github.com/aretw0/strata/internal/logging"
	"github.com/aretw0/strata/internal/testutils"
	"github.com/aretw0/strata/pkg/registry"
	"github.com/aretw0/strata/pkg/schema"
)

type celsius float64

func TestCatalog_DuplicateType(t *testing.T) {
	cat := strata.New()
	_, err := cat.Define("Point", nil)
	require.NoError(t, err)

	_, err = cat.Define("Point", nil)
	assert.ErrorIs(t, err, strata.ErrDuplicateType)
	assert.Len(t, cat.Types(), 1)
}

func TestCatalog_InvalidDeclarations(t *testing.T) {
	cat := strata.New()

	_, err := cat.Define("", nil)
	assert.ErrorIs(t, err, schema.ErrInvalidDeclaration)

	_, err = cat.Define("Broken", func(d *strata.Definition) {
		d.Attribute("", schema.Int())
		d.OneOf("none", nil)
		d.Attribute("ok", schema.Int())
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, schema.ErrInvalidDeclaration)
	assert.Len(t, schema.AttributeErrors(err), 2)

	_, ok := cat.Lookup("Broken")
	assert.False(t, ok, "failed definitions must not be registered")
}

func TestCatalog_LookupAndResolve(t *testing.T) {
	cat := strata.New()
	point := cat.MustDefine("Point", nil)
	cat.MustDefine("Area", nil)

	got, ok := cat.Lookup("Point")
	require.True(t, ok)
	assert.Same(t, point, got)

	resolved, ok := cat.Resolve("Point")
	require.True(t, ok)
	assert.Equal(t, "Point", resolved.Name())

	resolved, ok = cat.Resolve("int")
	require.True(t, ok)
	assert.Same(t, schema.Int(), resolved)

	_, ok = cat.Resolve("Missing")
	assert.False(t, ok)

	assert.Equal(t, []string{"Area", "Point"}, cat.Names())
	assert.Equal(t, "Point", cat.Types()[0].Name())
}

func TestCatalog_DefineFromMap(t *testing.T) {
	cat := strata.New()
	_, standard := standardCatalogIn(t, cat)

	holder, err := cat.DefineFromMap("Holder", nil, map[string]string{
		"value": "Standard",
		"label": "string?",
		"flag":  "true|false",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"flag", "label", "value"}, holder.Schema().Names())

	obj, err := holder.New(map[string]any{
		"value": map[string]any{"integer": "9"},
		"flag":  true,
	})
	require.NoError(t, err)
	assert.True(t, obj.Get("value").(*strata.Object).Equal(standard.MustNew(map[string]any{"integer": 9})))
	assert.False(t, obj.Has("label"))

	_, err = cat.DefineFromMap("Bad", nil, map[string]string{"x": "Unknown"})
	assert.ErrorIs(t, err, schema.ErrUnknownType)
}

func TestCatalog_DefineYAML(t *testing.T) {
	cat := strata.New()
	money, err := cat.DefineYAML("Money", nil, []byte(`
amount: float
currency: { type: symbol, default: EUR }
memo: string?
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"amount", "currency", "memo"}, money.Schema().Names())

	obj, err := money.New(map[string]any{"amount": "3"})
	require.NoError(t, err)
	assert.Equal(t, 3.0, obj.Get("amount"))
	assert.Equal(t, schema.Symbol("EUR"), obj.Get("currency"), "textual defaults take the canonical form")

	explicit, err := money.New(map[string]any{"amount": 3, "currency": "EUR"})
	require.NoError(t, err)
	assert.True(t, obj.Equal(explicit))
	c, err := obj.Compare(explicit)
	require.NoError(t, err)
	assert.Equal(t, 0, c)

	price, err := cat.DefineYAML("Price", money, []byte(`net: bool`))
	require.NoError(t, err)
	assert.Same(t, money, price.Parent())
	assert.Equal(t, []string{"amount", "currency", "memo", "net"}, price.Schema().Names())

	_, err = cat.DefineYAML("List", nil, []byte(`- a`))
	assert.Error(t, err)
}

func TestCatalog_RegisterCast(t *testing.T) {
	cat := strata.New()
	strata.RegisterCast(cat, "float", func(c celsius) (any, error) {
		return float64(c), nil
	})
	reading := cat.MustDefine("Reading", func(d *strata.Definition) {
		d.Attribute("temp", schema.TypeOf[celsius]())
		d.Attribute("raw", schema.Float())
	})

	obj, err := reading.New(map[string]any{"temp": celsius(21.5), "raw": celsius(4)})
	require.NoError(t, err)
	assert.Equal(t, celsius(21.5), obj.Get("temp"))
	assert.Equal(t, 4.0, obj.Get("raw"))
	assert.Equal(t, 1, cat.Casts().Len())
}

func TestCatalog_RegisterCastUntyped(t *testing.T) {
	cat := strata.New()
	point := cat.MustDefine("Point", func(d *strata.Definition) {
		d.Attribute("x", schema.Int())
		d.Attribute("y", schema.Int())
	})
	cat.RegisterCast(reflect.TypeOf([2]int{}), "Point", func(v any) (any, error) {
		xy := v.([2]int)
		return point.New(map[string]any{"x": xy[0], "y": xy[1]})
	})
	segment := cat.MustDefine("Segment", func(d *strata.Definition) {
		d.Attribute("from", point)
		d.Attribute("to", point)
	})

	obj, err := segment.New(map[string]any{"from": [2]int{0, 0}, "to": map[string]any{"x": 3, "y": 4}})
	require.NoError(t, err)
	assert.Equal(t, "Segment{from: Point{x: 0, y: 0}, to: Point{x: 3, y: 4}}", obj.String())
}

func TestWithCasts_Shared(t *testing.T) {
	casts := registry.NewRegistry()
	registry.Register(casts, "int", func(s celsius) (any, error) { return int(s), nil })

	a := strata.New(strata.WithCasts(casts))
	b := strata.New(strata.WithCasts(casts))
	assert.Same(t, a.Casts(), b.Casts())

	tick := b.MustDefine("Tick", func(d *strata.Definition) {
		d.Attribute("n", schema.Int())
	})
	obj, err := tick.New(map[string]any{"n": celsius(2.9)})
	require.NoError(t, err)
	assert.Equal(t, 2, obj.Get("n"))
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	cat := strata.New(strata.WithLogger(logging.NewJSON(&buf, slog.LevelDebug)))
	standard := cat.MustDefine("Standard", func(d *strata.Definition) {
		d.Attribute("integer", schema.Int())
	})
	_, err := standard.New(map[string]any{"integer": "abc"})
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, `"msg":"type defined"`)
	assert.Contains(t, out, `"msg":"coercion strategy failed"`)
	assert.Contains(t, out, `"msg":"construction failed"`)
	assert.Contains(t, out, `"err":`)
}

func TestWithHooks(t *testing.T) {
	cat, rec := testutils.NewCatalog(t)
	_, standard := standardCatalogIn(t, cat)
	standard.MustExtend("Child", nil)

	_, err := standard.New(map[string]any{"integer": "1"})
	require.NoError(t, err)
	_, err = standard.New(nil)
	require.Error(t, err)

	require.Len(t, rec.Defined, 2)
	assert.Equal(t, strata.DefineEvent{Type: "Child", Parent: "Standard", Attributes: 1}, rec.Defined[1])

	require.Len(t, rec.Constructed, 2)
	assert.NoError(t, rec.Constructed[0].Err)
	assert.True(t, errors.Is(rec.Constructed[1].Err, schema.ErrMissingAttribute))

	require.Len(t, rec.Coerced, 1)
	assert.Equal(t, strata.CoerceEvent{Type: "Standard", Attribute: "integer", Target: "int", Strategy: "primitive"}, rec.Coerced[0])
}

func TestWithHooks_ValidateIsSilent(t *testing.T) {
	cat, rec := testutils.NewCatalog(t)
	_, standard := standardCatalogIn(t, cat)
	holder := cat.MustDefine("Holder", func(d *strata.Definition) {
		d.Attribute("inner", standard)
	})

	assert.NoError(t, holder.Validate(map[string]any{"inner": map[string]any{"integer": "1"}}))
	assert.Error(t, holder.Validate(map[string]any{"inner": map[string]any{"integer": "x"}}))
	assert.Empty(t, rec.Constructed)
	assert.Empty(t, rec.Coerced)

	_, err := holder.New(map[string]any{"inner": map[string]any{"integer": "1"}})
	require.NoError(t, err)
	assert.Len(t, rec.Constructed, 2, "nested and outer construction")
	assert.Len(t, rec.Coerced, 2)
}

func TestDefaultCatalog(t *testing.T) {
	tag, err := strata.Define("DefaultCatalogTag", func(d *strata.Definition) {
		d.Attribute("label", schema.String())
	})
	require.NoError(t, err)

	got, ok := strata.Lookup("DefaultCatalogTag")
	require.True(t, ok)
	assert.Same(t, tag, got)
	assert.Same(t, strata.Default(), tag.Catalog())

	sub, err := strata.Extend(tag, "DefaultCatalogSubTag", nil)
	require.NoError(t, err)
	assert.Same(t, tag, sub.Parent())

	assert.Panics(t, func() { strata.MustDefine("DefaultCatalogTag", nil) })
}

func standardCatalogIn(t *testing.T, cat *strata.Catalog) (*strata.Catalog, *strata.Type) {
	t.Helper()
	standard, err := cat.Define("Standard", func(d *strata.Definition) {
		d.Attribute("integer", schema.Int())
	})
	require.NoError(t, err)
	return cat, standard
}
