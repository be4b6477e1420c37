// Package section knows the page's sections and which one the visitor is
// looking at.
package section

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
)

// DefaultThreshold is how far below the top of the viewport, in pixels, a
// section may start and still count as the one in view.
const DefaultThreshold = 100.0

// Section is an anchorable region of the page. ID matches the element id.
type Section struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Defaults returns the page's sections, top to bottom.
func Defaults() []Section {
	return []Section{
		{ID: "hero", Label: "Home"},
		{ID: "about", Label: "About"},
		{ID: "skills", Label: "Skills"},
		{ID: "experience", Label: "Experience"},
		{ID: "projects", Label: "Projects"},
		{ID: "achievements", Label: "Achievements"},
		{ID: "contact", Label: "Contact"},
	}
}

var (
	ErrEmptyRegistry = errors.New("no sections registered")
	ErrEmptyID       = errors.New("section id is empty")
	ErrDuplicate     = errors.New("duplicate section id")
	ErrInvalidID     = errors.New("section id is not a valid anchor")
)

// Ids end up as element ids, URL fragments and URL path segments.
var validID = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// Registry is an ordered, immutable list of sections.
type Registry struct {
	sections []Section
	index    map[string]int
}

// NewRegistry builds a Registry. Order is significant: the first section is
// the top of the page.
func NewRegistry(sections ...Section) (*Registry, error) {
	if len(sections) == 0 {
		return nil, ErrEmptyRegistry
	}
	r := &Registry{
		sections: slices.Clone(sections),
		index:    make(map[string]int, len(sections)),
	}
	for i, s := range sections {
		if s.ID == "" {
			return nil, fmt.Errorf("section %d: %w", i, ErrEmptyID)
		}
		if !validID.MatchString(s.ID) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidID, s.ID)
		}
		if _, ok := r.index[s.ID]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicate, s.ID)
		}
		r.index[s.ID] = i
	}
	return r, nil
}

// MustRegistry is NewRegistry that panics on error.
func MustRegistry(sections ...Section) *Registry {
	r, err := NewRegistry(sections...)
	if err != nil {
		panic(err)
	}
	return r
}

// Sections returns the sections in page order.
func (r *Registry) Sections() []Section {
	return slices.Clone(r.sections)
}

// First returns the top-most section.
func (r *Registry) First() Section {
	return r.sections[0]
}

// Lookup returns the section with id.
func (r *Registry) Lookup(id string) (Section, bool) {
	i, ok := r.index[id]
	if !ok {
		return Section{}, false
	}
	return r.sections[i], true
}

// Has reports whether id is registered.
func (r *Registry) Has(id string) bool {
	_, ok := r.index[id]
	return ok
}

// Active picks the section in view for a scroll position. Sections are
// scanned bottom-up and the first whose top offset is at or above
// scrollY+threshold wins. Sections without an offset are not mounted and are
// skipped. ok is false when no section qualifies.
func (r *Registry) Active(scrollY float64, offsets map[string]float64, threshold float64) (id string, ok bool) {
	line := scrollY + threshold
	for i := len(r.sections) - 1; i >= 0; i-- {
		s := r.sections[i]
		top, mounted := offsets[s.ID]
		if !mounted {
			continue
		}
		if top <= line {
			return s.ID, true
		}
	}
	return "", false
}
