package schema

// Attribute describes one named field of a value type.
type Attribute struct {
	Name     string
	Types    []Type // candidate types, tried in order
	Optional bool
	// Default is used when an optional attribute is omitted.
	// It is stored as given; HasDefault tells a nil default from none.
	Default    any
	HasDefault bool
}

// Expected renders the declared candidate types for messages.
func (a Attribute) Expected() string {
	return RenderTypes(a.Types)
}

// Required reports whether construction fails when the attribute is absent.
func (a Attribute) Required() bool {
	return !a.Optional
}

func (a Attribute) clone() Attribute {
	c := a
	c.Types = append([]Type(nil), a.Types...)
	return c
}

// Option tweaks an attribute declaration.
type Option func(*Attribute)

// Optional allows the attribute to be omitted. Omitted optional attributes
// without a default stay unset.
func Optional() Option {
	return func(a *Attribute) {
		a.Optional = true
	}
}

// Default sets the value used when the attribute is omitted.
// A default implies Optional.
func Default(value any) Option {
	return func(a *Attribute) {
		a.Optional = true
		a.Default = value
		a.HasDefault = true
	}
}
