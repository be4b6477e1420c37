package store

import (
	"sync"

	"go.uber.org/zap"
)

// View is what one reader sees of the page: the section in view and the
// theme. Content is not part of a View; every View reads the same Store.
type View struct {
	id  string
	hub *hub
	log *zap.Logger

	mu     sync.RWMutex
	active string
	theme  Theme
}

func newView(id, active string, theme Theme, h *hub, log *zap.Logger) *View {
	return &View{id: id, hub: h, log: log, active: active, theme: theme}
}

// ID returns the view's key. A Store's own view has an empty id.
func (v *View) ID() string { return v.id }

// ActiveSection returns the id of the section currently in view.
func (v *View) ActiveSection() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.active
}

// Theme returns the current theme.
func (v *View) Theme() Theme {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.theme
}

// SetActiveSection overwrites the active section unconditionally.
func (v *View) SetActiveSection(id string) {
	v.mu.Lock()
	v.active = id
	v.log.Debug("active section set", zap.String("view", v.id), zap.String("section", id))
	v.hub.emit(v.mu.Unlock, Change{Kind: ChangeSection, View: v.id, Section: id})
}

// ToggleTheme flips between light and dark and returns the new theme.
func (v *View) ToggleTheme() Theme {
	v.mu.Lock()
	v.theme = v.theme.Toggle()
	t := v.theme
	v.log.Debug("theme toggled", zap.String("view", v.id), zap.String("theme", string(t)))
	v.hub.emit(v.mu.Unlock, Change{Kind: ChangeTheme, View: v.id, Theme: t})
	return t
}
