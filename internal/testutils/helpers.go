package testutils

import (
	"log/slog"
	"sync"
	"testing"

	"github.com/aretw0/strata"
	"github.com/aretw0/strata/internal/logging"
)

// Logger returns a debug logger writing to the test output.
func Logger(t *testing.T) *slog.Logger {
	t.Helper()
	return logging.NewText(t.Output(), slog.LevelDebug)
}

// Recorder captures catalog hook events. It is safe for concurrent use.
type Recorder struct {
	mu          sync.Mutex
	Defined     []strata.DefineEvent
	Constructed []strata.ConstructEvent
	Coerced     []strata.CoerceEvent
}

// Hooks returns hooks appending to the recorder.
func (r *Recorder) Hooks() strata.Hooks {
	return strata.Hooks{
		OnDefine: func(e *strata.DefineEvent) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.Defined = append(r.Defined, *e)
		},
		OnConstruct: func(e *strata.ConstructEvent) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.Constructed = append(r.Constructed, *e)
		},
		OnCoerce: func(e *strata.CoerceEvent) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.Coerced = append(r.Coerced, *e)
		},
	}
}

// NewCatalog returns a catalog logging to the test output and recording
// its hooks.
func NewCatalog(t *testing.T, opts ...strata.Option) (*strata.Catalog, *Recorder) {
	t.Helper()
	rec := &Recorder{}
	opts = append([]strata.Option{
		strata.WithLogger(Logger(t)),
		strata.WithHooks(rec.Hooks()),
	}, opts...)
	return strata.New(opts...), rec
}
