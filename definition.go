package strata

import (
	"sync"

	"github.com/aretw0/strata/pkg/schema"
)

// Definition is the declaration surface handed to a type body.
// Declaration errors are collected and reported by Define.
type Definition struct {
	builder *schema.Builder

	mu   sync.Mutex
	errs []error
}

// Attribute declares name with a single type.
func (d *Definition) Attribute(name string, t schema.Type, opts ...schema.Option) {
	d.OneOf(name, []schema.Type{t}, opts...)
}

// OneOf declares name with an ordered candidate list. Coercion tries the
// candidates left to right and keeps the first success.
func (d *Definition) OneOf(name string, types []schema.Type, opts ...schema.Option) {
	if err := d.builder.Declare(name, types, opts...); err != nil {
		d.mu.Lock()
		d.errs = append(d.errs, err)
		d.mu.Unlock()
	}
}

func (d *Definition) err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	switch len(d.errs) {
	case 0:
		return nil
	case 1:
		return d.errs[0]
	default:
		return &schema.AggregateError{Errors: append([]error(nil), d.errs...)}
	}
}
