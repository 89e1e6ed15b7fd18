package strata

import "time"

// DefineEvent is emitted once a type has been registered.
type DefineEvent struct {
	Type       string
	Parent     string // empty for root types
	Attributes int
}

// ConstructEvent is emitted after every construction attempt.
type ConstructEvent struct {
	Type     string
	Err      error // nil on success
	Duration time.Duration
}

// CoerceEvent is emitted for every attribute value that was coerced.
// Omitted attributes (unset or defaulted) produce no event.
type CoerceEvent struct {
	Type      string
	Attribute string
	Target    string // the candidate type that accepted the value
	Strategy  string // identity, primitive, cast or construct
}

// Hooks defines callbacks for catalog observability.
// Every field is optional. Callbacks run synchronously on the calling goroutine.
type Hooks struct {
	OnDefine    func(*DefineEvent)
	OnConstruct func(*ConstructEvent)
	OnCoerce    func(*CoerceEvent)
}
