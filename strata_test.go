package strata_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/aretw0/strata"
	"github.com/aretw0/strata/pkg/schema"
)

// legacyStandard converts itself into a Standard object.
type legacyStandard struct {
	n      int
	target *strata.Type
}

func (l legacyStandard) CastTo(t schema.Type) (any, bool) {
	if t != schema.Type(l.target) {
		return nil, false
	}
	o, err := l.target.New(map[string]any{"integer": l.n})
	return o, err == nil
}

func standardCatalog(t *testing.T) (*strata.Catalog, *strata.Type) {
	t.Helper()
	cat := strata.New()
	standard, err := cat.Define("Standard", func(d *strata.Definition) {
		d.Attribute("integer", schema.Int())
	})
	if err != nil {
		t.Fatalf("Define failed: %v", err)
	}
	return cat, standard
}

func TestStandard(t *testing.T) {
	_, standard := standardCatalog(t)

	obj, err := standard.New(map[string]any{"integer": 1})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if got := obj.Get("integer"); got != 1 {
		t.Errorf("Expected integer 1, got %v", got)
	}

	_, err = standard.New(map[string]any{})
	if !errors.Is(err, schema.ErrMissingAttribute) {
		t.Fatalf("Expected ErrMissingAttribute, got %v", err)
	}
	var missing *schema.MissingAttributeError
	if !errors.As(err, &missing) || missing.Name != "integer" {
		t.Errorf("Expected MissingAttributeError for integer, got %v", err)
	}
	if want := "Standard: expected integer to be int but was absent"; err.Error() != want {
		t.Errorf("Expected message %q, got %q", want, err.Error())
	}
}

func TestStandard_NilIsAbsent(t *testing.T) {
	_, standard := standardCatalog(t)

	_, err := standard.New(map[string]any{"integer": nil})
	if !errors.Is(err, schema.ErrMissingAttribute) {
		t.Errorf("Expected ErrMissingAttribute for nil value, got %v", err)
	}
}

func TestWithCustom_TypedNilIsAbsent(t *testing.T) {
	cat, standard := standardCatalog(t)
	withCustom := cat.MustDefine("WithCustom", func(d *strata.Definition) {
		d.Attribute("custom", standard)
		d.Attribute("spare", standard, schema.Optional())
	})

	var none *strata.Object
	_, err := withCustom.New(map[string]any{"custom": none})
	if !errors.Is(err, schema.ErrMissingAttribute) {
		t.Fatalf("Expected ErrMissingAttribute for a typed nil, got %v", err)
	}

	obj, err := withCustom.New(map[string]any{
		"custom": map[string]any{"integer": 1},
		"spare":  none,
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if obj.Has("spare") {
		t.Errorf("Expected spare to stay unset")
	}
	if none.String() != "<nil>" || none.TypeName() != "absent" {
		t.Errorf("Expected nil object to render safely, got %q / %q", none.String(), none.TypeName())
	}
}

func TestOptional(t *testing.T) {
	cat := strata.New()
	optional := cat.MustDefine("Optional", func(d *strata.Definition) {
		d.Attribute("integer", schema.Int(), schema.Optional())
		d.Attribute("string", schema.String(), schema.Optional())
	})

	obj, err := optional.New(map[string]any{"integer": 1.1})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if got := obj.Get("integer"); got != 1 {
		t.Errorf("Expected truncated integer 1, got %v (%T)", got, got)
	}
	if obj.Has("string") {
		t.Errorf("Expected string to be unset")
	}

	obj, err = optional.New(map[string]any{"string": 1})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if got := obj.Get("string"); got != "1" {
		t.Errorf("Expected string \"1\", got %v (%T)", got, got)
	}
}

func TestDefaults(t *testing.T) {
	cat := strata.New()
	money := cat.MustDefine("Money", func(d *strata.Definition) {
		d.Attribute("amount", schema.Float())
		d.Attribute("currency", schema.SymbolType(), schema.Default(schema.Symbol("EUR")))
		d.Attribute("note", schema.String(), schema.Optional())
	})

	obj := money.MustNew(map[string]any{"amount": 2.5})
	if got := obj.Get("currency"); got != schema.Symbol("EUR") {
		t.Errorf("Expected default EUR, got %v", got)
	}
	if _, ok := obj.Lookup("note"); ok {
		t.Errorf("Expected note to stay unset")
	}

	obj = money.MustNew(map[string]any{"amount": 2.5, "currency": "USD"})
	if got := obj.Get("currency"); got != schema.Symbol("USD") {
		t.Errorf("Expected USD symbol, got %v (%T)", got, got)
	}
}

func TestWithCustom(t *testing.T) {
	cat, standard := standardCatalog(t)
	withCustom := cat.MustDefine("WithCustom", func(d *strata.Definition) {
		d.Attribute("custom", standard)
	})

	t.Run("NestedMapping", func(t *testing.T) {
		obj, err := withCustom.New(map[string]any{"custom": map[string]any{"integer": 1}})
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		want := standard.MustNew(map[string]any{"integer": 1})
		nested, ok := strata.Attr[*strata.Object](obj, "custom")
		if !ok || !nested.Equal(want) {
			t.Errorf("Expected custom %v, got %v", want, obj.Get("custom"))
		}
	})

	t.Run("Identity", func(t *testing.T) {
		inner := standard.MustNew(map[string]any{"integer": 7})
		obj, err := withCustom.New(map[string]any{"custom": inner})
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		if obj.Get("custom") != inner {
			t.Errorf("Expected the same instance to be stored")
		}
	})

	t.Run("Caster", func(t *testing.T) {
		obj, err := withCustom.New(map[string]any{"custom": legacyStandard{n: 3, target: standard}})
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		nested := obj.Get("custom").(*strata.Object)
		if nested.Get("integer") != 3 {
			t.Errorf("Expected cast integer 3, got %v", nested.Get("integer"))
		}
	})

	t.Run("NestedFailure", func(t *testing.T) {
		_, err := withCustom.New(map[string]any{"custom": map[string]any{}})
		var mismatch *schema.TypeMismatchError
		if !errors.As(err, &mismatch) {
			t.Fatalf("Expected TypeMismatchError, got %v", err)
		}
		if mismatch.Actual != "map[string]interface {}" {
			t.Errorf("Unexpected actual type %q", mismatch.Actual)
		}
		if !errors.Is(mismatch.Cause, schema.ErrMissingAttribute) {
			t.Errorf("Expected nested cause to be a missing attribute, got %v", mismatch.Cause)
		}
		if errors.Is(err, schema.ErrMissingAttribute) {
			t.Errorf("Nested cause must not leak through the outer error")
		}
	})
}

func TestBooleanList(t *testing.T) {
	cat := strata.New()
	booleanList := cat.MustDefine("BooleanList", func(d *strata.Definition) {
		d.OneOf("flag", []schema.Type{schema.True(), schema.False()})
	})

	for _, flag := range []bool{true, false} {
		obj, err := booleanList.New(map[string]any{"flag": flag})
		if err != nil {
			t.Fatalf("New(%v) failed: %v", flag, err)
		}
		if obj.Get("flag") != flag {
			t.Errorf("Expected flag %v, got %v", flag, obj.Get("flag"))
		}
	}

	_, err := booleanList.New(map[string]any{"flag": "x"})
	if !errors.Is(err, schema.ErrTypeMismatch) {
		t.Fatalf("Expected ErrTypeMismatch, got %v", err)
	}
	if want := "BooleanList: expected flag to be [true, false] but was string"; err.Error() != want {
		t.Errorf("Expected message %q, got %q", want, err.Error())
	}
}

func TestDeepInheritance(t *testing.T) {
	cat := strata.New()
	base := cat.MustDefine("Base", func(d *strata.Definition) {
		d.Attribute("id", schema.Int())
		d.Attribute("name", schema.String())
	})
	middle := base.MustExtend("Middle", func(d *strata.Definition) {
		d.Attribute("level", schema.Int(), schema.Default(1))
	})
	leaf := middle.MustExtend("Leaf", func(d *strata.Definition) {
		d.Attribute("id", schema.String(), schema.Optional())
	})

	if got := leaf.Schema().Names(); fmt.Sprint(got) != "[id name level]" {
		t.Errorf("Expected inherited order [id name level], got %v", got)
	}

	obj, err := leaf.New(map[string]any{"id": 5, "name": "leaf"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if obj.Get("id") != "5" {
		t.Errorf("Expected child rule to coerce id to \"5\", got %v (%T)", obj.Get("id"), obj.Get("id"))
	}
	if obj.Get("level") != 1 {
		t.Errorf("Expected inherited default level 1, got %v", obj.Get("level"))
	}

	if _, err := leaf.New(map[string]any{"name": "leaf"}); err != nil {
		t.Errorf("Expected id to be optional on Leaf, got %v", err)
	}
	if _, err := base.New(map[string]any{"name": "base"}); !errors.Is(err, schema.ErrMissingAttribute) {
		t.Errorf("Expected parent rule to be unaffected, got %v", err)
	}
	if !leaf.IsA(base) || base.IsA(leaf) {
		t.Errorf("Unexpected ancestry")
	}
	if !base.Accepts(obj) {
		t.Errorf("Expected Base to accept a Leaf object")
	}
}

func TestDefine_ConcurrentDeclarations(t *testing.T) {
	cat := strata.New()
	const n = 64

	wide, err := cat.Define("Wide", func(d *strata.Definition) {
		var wg sync.WaitGroup
		for i := range n {
			wg.Add(1)
			go func() {
				defer wg.Done()
				d.Attribute(fmt.Sprintf("attr_%02d", i), schema.Int(), schema.Optional())
			}()
		}
		wg.Wait()
	})
	if err != nil {
		t.Fatalf("Define failed: %v", err)
	}
	if got := wide.Schema().Len(); got != n {
		t.Errorf("Expected %d attributes, got %d", n, got)
	}
}

func TestNew_ConcurrentConstruction(t *testing.T) {
	_, standard := standardCatalog(t)

	var wg sync.WaitGroup
	errs := make(chan error, 32)
	for i := range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			obj, err := standard.New(map[string]any{"integer": fmt.Sprint(i)})
			if err != nil {
				errs <- err
				return
			}
			if obj.Get("integer") != i {
				errs <- fmt.Errorf("expected %d, got %v", i, obj.Get("integer"))
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}
