package strata

import (
	"log/slog"
	"reflect"
	"sort"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/strata/internal/coerce"
	"github.com/aretw0/strata/internal/logging"
	"github.com/aretw0/strata/pkg/registry"
	"github.com/aretw0/strata/pkg/schema"
)

// Catalog is a named set of value types sharing one cast registry, logger
// and set of hooks. A Catalog is safe for concurrent use.
type Catalog struct {
	mu    sync.RWMutex
	types map[string]*Type
	order []string

	casts   *registry.Registry
	coercer *coerce.Coercer
	logger  *slog.Logger
	hooks   Hooks
}

// Option defines a functional option for configuring the Catalog.
type Option func(*Catalog)

// WithLogger sets a custom structured logger for the catalog.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Catalog) {
		c.logger = logger
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks Hooks) Option {
	return func(c *Catalog) {
		c.hooks = hooks
	}
}

// WithCasts shares an existing cast registry instead of creating one.
func WithCasts(casts *registry.Registry) Option {
	return func(c *Catalog) {
		c.casts = casts
	}
}

// New creates an empty catalog.
func New(opts ...Option) *Catalog {
	c := &Catalog{types: make(map[string]*Type)}
	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = logging.NewNop()
	}
	if c.casts == nil {
		c.casts = registry.NewRegistry()
	}
	c.coercer = coerce.New(c.casts, c.logger)
	return c
}

// Define registers a root type. body declares its attributes and may call
// the Definition from several goroutines; it must not retain it.
func (c *Catalog) Define(name string, body func(*Definition)) (*Type, error) {
	return c.Extend(nil, name, body)
}

// Extend registers name as a subtype of parent. The child starts with every
// attribute of parent and may redeclare any of them. A nil parent defines a
// root type.
func (c *Catalog) Extend(parent *Type, name string, body func(*Definition)) (*Type, error) {
	return c.define(name, parent, func(b *schema.Builder) error {
		d := &Definition{builder: b}
		if body != nil {
			body(d)
		}
		return d.err()
	})
}

// MustDefine is like Define but panics on error.
// Intended for package-level type declarations.
func (c *Catalog) MustDefine(name string, body func(*Definition)) *Type {
	t, err := c.Define(name, body)
	if err != nil {
		panic(err)
	}
	return t
}

// MustExtend is like Extend but panics on error.
func (c *Catalog) MustExtend(parent *Type, name string, body func(*Definition)) *Type {
	t, err := c.Extend(parent, name, body)
	if err != nil {
		panic(err)
	}
	return t
}

// DefineFromMap registers a type from attribute type expressions such as
// "int", "string?" or "true|false". Names of types already in the catalog
// may be used as expressions. Attributes are declared in sorted name order.
func (c *Catalog) DefineFromMap(name string, parent *Type, typeMap map[string]string) (*Type, error) {
	return c.DefineDeclarations(name, parent, schema.ParseTypeMap(typeMap))
}

// DefineYAML registers a type from a YAML mapping of declarations.
// Attributes are declared in document order.
//
//	amount: float
//	currency: { type: symbol, default: EUR }
func (c *Catalog) DefineYAML(name string, parent *Type, doc []byte) (*Type, error) {
	var decls schema.Declarations
	if err := yaml.Unmarshal(doc, &decls); err != nil {
		return nil, errors.Wrapf(err, "define %s", name)
	}
	return c.DefineDeclarations(name, parent, decls)
}

// DefineDeclarations registers a type from parsed declarations, in order.
func (c *Catalog) DefineDeclarations(name string, parent *Type, decls schema.Declarations) (*Type, error) {
	return c.define(name, parent, func(b *schema.Builder) error {
		return decls.Apply(b, c)
	})
}

func (c *Catalog) define(name string, parent *Type, declare func(*schema.Builder) error) (*Type, error) {
	if name == "" {
		return nil, errors.Wrap(schema.ErrInvalidDeclaration, "type name is empty")
	}
	if _, exists := c.Lookup(name); exists {
		return nil, errors.Wrapf(ErrDuplicateType, "define %s", name)
	}

	var b *schema.Builder
	if parent != nil {
		b = schema.Derive(parent.schema)
	} else {
		b = schema.NewBuilder()
	}
	if err := declare(b); err != nil {
		return nil, errors.Wrapf(err, "define %s", name)
	}

	t := &Type{
		name:    name,
		parent:  parent,
		schema:  b.Build(),
		catalog: c,
	}

	c.mu.Lock()
	if _, exists := c.types[name]; exists {
		c.mu.Unlock()
		return nil, errors.Wrapf(ErrDuplicateType, "define %s", name)
	}
	c.types[name] = t
	c.order = append(c.order, name)
	c.mu.Unlock()

	parentName := ""
	if parent != nil {
		parentName = parent.name
	}
	c.logger.Debug("type defined", "type", name, "parent", parentName, "attributes", t.schema.Len())
	if c.hooks.OnDefine != nil {
		c.hooks.OnDefine(&DefineEvent{Type: name, Parent: parentName, Attributes: t.schema.Len()})
	}
	return t, nil
}

// Lookup returns the type registered under name.
func (c *Catalog) Lookup(name string) (*Type, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.types[name]
	return t, ok
}

// Resolve implements schema.Resolver. Built-in primitives win over
// catalog types of the same name.
func (c *Catalog) Resolve(name string) (schema.Type, bool) {
	if p, ok := schema.Builtin(name); ok {
		return p, true
	}
	if t, ok := c.Lookup(name); ok {
		return t, true
	}
	return nil, false
}

// Types returns every registered type in registration order.
func (c *Catalog) Types() []*Type {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*Type, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.types[name])
	}
	return out
}

// Names returns the registered type names, sorted.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	names := append([]string(nil), c.order...)
	c.mu.RUnlock()
	sort.Strings(names)
	return names
}

// Casts returns the catalog's cast registry.
func (c *Catalog) Casts() *registry.Registry {
	return c.casts
}

// RegisterCast adds a cast from values of Go type source to the type named
// target. The cast applies to every attribute declaring target.
func (c *Catalog) RegisterCast(source reflect.Type, target string, fn registry.CastFunc) {
	c.casts.Register(source, target, fn)
	c.logger.Debug("cast registered", "source", source.String(), "target", target)
}

// RegisterCast adds a typed cast from S to the type named target.
func RegisterCast[S any](c *Catalog, target string, fn func(S) (any, error)) {
	registry.Register(c.casts, target, fn)
	c.logger.Debug("cast registered", "source", reflect.TypeOf((*S)(nil)).Elem().String(), "target", target)
}

func (c *Catalog) constructed(t *Type, err error, start time.Time) {
	if err != nil {
		c.logger.Debug("construction failed", "type", t.name, "err", err)
	}
	if c.hooks.OnConstruct != nil {
		c.hooks.OnConstruct(&ConstructEvent{Type: t.name, Err: err, Duration: time.Since(start)})
	}
}

func (c *Catalog) coerced(t *Type, attribute string, res coerce.Result) {
	if c.hooks.OnCoerce != nil {
		c.hooks.OnCoerce(&CoerceEvent{
			Type:      t.name,
			Attribute: attribute,
			Target:    res.Target.Name(),
			Strategy:  string(res.Strategy),
		})
	}
}
