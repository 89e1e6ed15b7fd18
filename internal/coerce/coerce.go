// Package coerce resolves a raw value against an ordered list of candidate
// types. Candidates are tried in order, and for each candidate the
// strategies run in a fixed order: identity, primitive, cast, construct.
// The first success wins.
package coerce

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/strata/internal/logging"
	"github.com/aretw0/strata/pkg/registry"
	"github.com/aretw0/strata/pkg/schema"
)

// Strategy names one coercion mechanism.
type Strategy string

const (
	Identity  Strategy = "identity"
	Primitive Strategy = "primitive"
	Cast      Strategy = "cast"
	Construct Strategy = "construct"
)

// Strategies lists every strategy in the order they are attempted.
var Strategies = []Strategy{Identity, Primitive, Cast, Construct}

// errNotApplicable marks a strategy that does not apply to the pair at all,
// as opposed to one that applied and failed.
var errNotApplicable = errors.New("strategy not applicable")

// Result describes a successful coercion.
type Result struct {
	Value    any
	Target   schema.Type
	Strategy Strategy
}

// Failure reports that no candidate and no strategy accepted the value.
// Callers translate it into a schema.TypeMismatchError.
type Failure struct {
	Candidates []schema.Type
	Actual     string
	Value      any
	// Cause is the last error returned by a strategy that applied, if any.
	Cause error
}

func (f *Failure) Error() string {
	msg := fmt.Sprintf("cannot coerce %s to %s", f.Actual, schema.RenderTypes(f.Candidates))
	if f.Cause != nil {
		msg += ": " + f.Cause.Error()
	}
	return msg
}

func (f *Failure) Unwrap() error { return f.Cause }

// Coercer runs the strategy set.
type Coercer struct {
	casts  *registry.Registry
	logger *slog.Logger
}

// New creates a coercer. casts may be nil; logger may be nil.
func New(casts *registry.Registry, logger *slog.Logger) *Coercer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Coercer{casts: casts, logger: logger}
}

// QuietConstructor is implemented by constructors that can also build a
// value without emitting events. Check prefers it over Construct.
type QuietConstructor interface {
	ConstructQuietly(attrs map[string]any) (any, error)
}

// Coerce returns the first successful coercion of raw to one of candidates.
func (c *Coercer) Coerce(candidates []schema.Type, raw any) (Result, error) {
	return c.coerce(candidates, raw, false)
}

// Check is like Coerce but builds nested values through QuietConstructor
// when the target implements it.
func (c *Coercer) Check(candidates []schema.Type, raw any) (Result, error) {
	return c.coerce(candidates, raw, true)
}

func (c *Coercer) coerce(candidates []schema.Type, raw any, quiet bool) (Result, error) {
	var cause error
	for _, target := range candidates {
		for _, s := range Strategies {
			value, err := c.apply(s, target, raw, quiet)
			if err == nil {
				return Result{Value: value, Target: target, Strategy: s}, nil
			}
			if errors.Is(err, errNotApplicable) {
				continue
			}
			cause = err
			c.logger.Debug("coercion strategy failed",
				"target", target.Name(),
				"strategy", string(s),
				"actual", schema.TypeNameOf(raw),
				"err", err)
		}
	}

	return Result{}, &Failure{
		Candidates: candidates,
		Actual:     schema.TypeNameOf(raw),
		Value:      raw,
		Cause:      cause,
	}
}

func (c *Coercer) apply(s Strategy, target schema.Type, raw any, quiet bool) (any, error) {
	switch s {
	case Identity:
		if target.Accepts(raw) {
			return raw, nil
		}
		return nil, errNotApplicable
	case Primitive:
		conv, ok := target.(schema.Converter)
		if !ok {
			return nil, errNotApplicable
		}
		return conv.Convert(raw)
	case Cast:
		return c.cast(target, raw)
	case Construct:
		ctor, ok := target.(schema.Constructor)
		if !ok {
			return nil, errNotApplicable
		}
		attrs, ok := Mapping(raw)
		if !ok {
			return nil, errNotApplicable
		}
		if q, ok := ctor.(QuietConstructor); ok && quiet {
			return q.ConstructQuietly(attrs)
		}
		return ctor.Construct(attrs)
	default:
		return nil, fmt.Errorf("unknown strategy %q", s)
	}
}

func (c *Coercer) cast(target schema.Type, raw any) (any, error) {
	if caster, ok := raw.(schema.Caster); ok {
		if value, ok := caster.CastTo(target); ok {
			return value, nil
		}
	}
	if c.casts == nil {
		return nil, errNotApplicable
	}
	value, err := c.casts.Execute(raw, target.Name())
	if errors.Is(err, registry.ErrNoCast) {
		return nil, errNotApplicable
	}
	return value, err
}
