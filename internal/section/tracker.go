package section

import (
	"sync"

	"go.uber.org/zap"
)

// ActiveStore is the part of the view state the tracker reads and writes.
type ActiveStore interface {
	ActiveSection() string
	SetActiveSection(id string)
}

// Tracker turns scroll observations into active-section changes. Repeated
// observations that land on the current section write nothing.
type Tracker struct {
	registry  *Registry
	store     ActiveStore
	threshold float64
	log       *zap.Logger

	mu sync.Mutex
}

// NewTracker returns a Tracker. A non-positive threshold means
// DefaultThreshold.
func NewTracker(registry *Registry, store ActiveStore, threshold float64, log *zap.Logger) *Tracker {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Tracker{
		registry:  registry,
		store:     store,
		threshold: threshold,
		log:       log,
	}
}

// Registry returns the tracked sections.
func (t *Tracker) Registry() *Registry { return t.registry }

// Threshold returns the lookahead in pixels.
func (t *Tracker) Threshold() float64 { return t.threshold }

// Observe evaluates a scroll position. It returns the active section after
// the observation and whether the store was changed.
func (t *Tracker) Observe(scrollY float64, offsets map[string]float64) (id string, changed bool) {
	return t.ObserveIn(t.store, scrollY, offsets)
}

// ObserveIn is Observe against store instead of the tracker's own, for
// callers that keep one view state per reader. Changes are suppressed
// against store's current section only.
func (t *Tracker) ObserveIn(store ActiveStore, scrollY float64, offsets map[string]float64) (id string, changed bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	current := store.ActiveSection()
	next, ok := t.registry.Active(scrollY, offsets, t.threshold)
	if !ok || next == current {
		return current, false
	}

	store.SetActiveSection(next)
	t.log.Debug("active section changed",
		zap.String("from", current),
		zap.String("to", next),
		zap.Float64("scrollY", scrollY),
	)
	return next, true
}
