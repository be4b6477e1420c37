package store

import (
	"slices"
	"sync"
)

// ChangeKind says which part of the Store changed.
type ChangeKind string

const (
	ChangeSection ChangeKind = "section"
	ChangeTheme   ChangeKind = "theme"
	ChangeLoading ChangeKind = "loading"
	ChangeContent ChangeKind = "content"
)

// Op names the content mutation behind a ChangeContent.
type Op string

const (
	OpUpdatePersonalInfo        Op = "updatePersonalInfo"
	OpUpdateProfessionalSummary Op = "updateProfessionalSummary"
	OpUpdateSkills              Op = "updateSkills"
	OpAddProject                Op = "addProject"
	OpUpdateProject             Op = "updateProject"
	OpAddExperience             Op = "addExperience"
	OpUpdateExperience          Op = "updateExperience"
	OpAddAchievement            Op = "addAchievement"
	OpUpdateEducation           Op = "updateEducation"
)

// Change describes one applied mutation. View is the id of the View a
// section or theme change belongs to; it is empty for a Store's own view.
type Change struct {
	Kind    ChangeKind `json:"kind"`
	View    string     `json:"view,omitempty"`
	Section string     `json:"section,omitempty"`
	Theme   Theme      `json:"theme,omitempty"`
	Loading bool       `json:"loading,omitempty"`
	Op      Op         `json:"op,omitempty"`
	ID      int        `json:"id,omitempty"`
}

// Listener is called synchronously after each mutation, outside the state
// lock and in the order the mutations were applied. It may read state but
// must not block or mutate.
type Listener func(Change)

// hub keeps listeners and delivers changes one mutation at a time. Each
// change takes a ticket while its state lock is still held and is delivered
// only after every earlier ticket, so listeners see mutations in the order
// they were applied.
type hub struct {
	order   sync.Mutex
	turn    *sync.Cond
	issued  uint64
	serving uint64

	mu        sync.Mutex
	listeners map[int]Listener
	nextID    int
}

func newHub() *hub {
	h := &hub{listeners: make(map[int]Listener)}
	h.turn = sync.NewCond(&h.order)
	return h
}

func (h *hub) subscribe(fn Listener) (cancel func()) {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.listeners[id] = fn
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		delete(h.listeners, id)
		h.mu.Unlock()
	}
}

// emit must be called with the caller's state lock held; unlock releases it.
func (h *hub) emit(unlock func(), c Change) {
	h.order.Lock()
	ticket := h.issued
	h.issued++
	h.order.Unlock()
	unlock()

	h.order.Lock()
	for h.serving != ticket {
		h.turn.Wait()
	}
	h.order.Unlock()
	defer func() {
		h.order.Lock()
		h.serving++
		h.turn.Broadcast()
		h.order.Unlock()
	}()

	for _, fn := range h.snapshot() {
		fn(c)
	}
}

func (h *hub) snapshot() []Listener {
	h.mu.Lock()
	defer h.mu.Unlock()
	ids := make([]int, 0, len(h.listeners))
	for id := range h.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	fns := make([]Listener, 0, len(ids))
	for _, id := range ids {
		fns = append(fns, h.listeners[id])
	}
	return fns
}

// Subscribe registers fn for every change to the Store, including its own
// view, and returns a function that removes it.
func (s *Store) Subscribe(fn Listener) (cancel func()) {
	return s.hub.subscribe(fn)
}
