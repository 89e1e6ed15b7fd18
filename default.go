package strata

var defaultCatalog = New()

// Default returns the package-level catalog used by Define and friends.
func Default() *Catalog { return defaultCatalog }

// Define registers a root type in the default catalog.
func Define(name string, body func(*Definition)) (*Type, error) {
	return defaultCatalog.Define(name, body)
}

// MustDefine is like Define but panics on error.
//
//	var Money = strata.MustDefine("Money", func(d *strata.Definition) {
//	    d.Attribute("amount", schema.Float())
//	})
func MustDefine(name string, body func(*Definition)) *Type {
	return defaultCatalog.MustDefine(name, body)
}

// Extend registers a subtype of parent in the default catalog.
func Extend(parent *Type, name string, body func(*Definition)) (*Type, error) {
	return defaultCatalog.Extend(parent, name, body)
}

// Lookup returns a type of the default catalog.
func Lookup(name string) (*Type, bool) {
	return defaultCatalog.Lookup(name)
}
