package store

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultViewIdle is how long an untouched View is kept.
const DefaultViewIdle = 30 * time.Minute

// Views keeps one View per reader, so that readers scrolling and toggling
// the theme at the same time do not see each other's state. Views start
// from the same defaults and are dropped by Prune once idle.
type Views struct {
	hub  *hub
	log  *zap.Logger
	idle time.Duration
	now  func() time.Time

	active string
	theme  Theme

	mu    sync.Mutex
	views map[string]*viewEntry
}

type viewEntry struct {
	view *View
	seen time.Time
}

// NewViews returns an empty set whose Views start on active with theme.
// A non-positive idle means DefaultViewIdle.
func NewViews(active string, theme Theme, idle time.Duration, log *zap.Logger) *Views {
	if idle <= 0 {
		idle = DefaultViewIdle
	}
	if !theme.Valid() {
		theme = ThemeDark
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Views{
		hub:    newHub(),
		log:    log,
		idle:   idle,
		now:    time.Now,
		active: active,
		theme:  theme,
		views:  make(map[string]*viewEntry),
	}
}

// Get returns the View for id, creating it if needed, and marks it used.
func (vs *Views) Get(id string) *View {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	e, ok := vs.views[id]
	if !ok {
		e = &viewEntry{view: newView(id, vs.active, vs.theme, vs.hub, vs.log)}
		vs.views[id] = e
	}
	e.seen = vs.now()
	return e.view
}

// Lookup returns the View for id without creating or touching it.
func (vs *Views) Lookup(id string) (*View, bool) {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	e, ok := vs.views[id]
	if !ok {
		return nil, false
	}
	return e.view, true
}

// Len returns the number of Views held.
func (vs *Views) Len() int {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	return len(vs.views)
}

// Prune drops Views not used within the idle period and returns how many
// went.
func (vs *Views) Prune() int {
	cutoff := vs.now().Add(-vs.idle)
	vs.mu.Lock()
	defer vs.mu.Unlock()
	n := 0
	for id, e := range vs.views {
		if e.seen.Before(cutoff) {
			delete(vs.views, id)
			n++
		}
	}
	if n > 0 {
		vs.log.Debug("idle views dropped", zap.Int("views", n))
	}
	return n
}

// Subscribe registers fn for section and theme changes in every View.
func (vs *Views) Subscribe(fn Listener) (cancel func()) {
	return vs.hub.subscribe(fn)
}
