package section

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	active string
	writes []string
}

func (f *fakeStore) ActiveSection() string { return f.active }

func (f *fakeStore) SetActiveSection(id string) {
	f.active = id
	f.writes = append(f.writes, id)
}

func threeSections(t *testing.T) *Registry {
	t.Helper()
	r, err := NewRegistry(
		Section{ID: "hero", Label: "Home"},
		Section{ID: "about", Label: "About"},
		Section{ID: "skills", Label: "Skills"},
	)
	require.NoError(t, err)
	return r
}

var layout = map[string]float64{"hero": 0, "about": 800, "skills": 1600}

func TestNewRegistryErrors(t *testing.T) {
	_, err := NewRegistry()
	assert.True(t, errors.Is(err, ErrEmptyRegistry))

	_, err = NewRegistry(Section{ID: "a"}, Section{ID: ""})
	assert.True(t, errors.Is(err, ErrEmptyID))

	_, err = NewRegistry(Section{ID: "a"}, Section{ID: "a"})
	assert.True(t, errors.Is(err, ErrDuplicate))

	for _, id := range []string{"my section", "#about", "1st", "a/b", "über"} {
		_, err = NewRegistry(Section{ID: id})
		assert.ErrorIs(t, err, ErrInvalidID, id)
	}
	_, err = NewRegistry(Section{ID: "side-projects"}, Section{ID: "open_source2"})
	assert.NoError(t, err)

	assert.Panics(t, func() { MustRegistry() })
}

func TestDefaults(t *testing.T) {
	r := MustRegistry(Defaults()...)
	assert.Equal(t, "hero", r.First().ID)
	assert.Len(t, r.Sections(), 7)

	s, ok := r.Lookup("achievements")
	require.True(t, ok)
	assert.Equal(t, "Achievements", s.Label)
	assert.False(t, r.Has("home"))
}

func TestActiveScenario(t *testing.T) {
	r := threeSections(t)

	id, ok := r.Active(750, layout, 100)
	require.True(t, ok)
	assert.Equal(t, "about", id)

	id, ok = r.Active(650, layout, 100)
	require.True(t, ok)
	assert.Equal(t, "hero", id)

	id, ok = r.Active(1500, layout, 100)
	require.True(t, ok)
	assert.Equal(t, "skills", id)
}

func TestActiveBoundaryIsInclusive(t *testing.T) {
	r := threeSections(t)
	id, _ := r.Active(700, layout, 100)
	assert.Equal(t, "about", id)
	id, _ = r.Active(699.5, layout, 100)
	assert.Equal(t, "hero", id)
}

func TestActiveSkipsUnmounted(t *testing.T) {
	r := threeSections(t)
	id, ok := r.Active(5000, map[string]float64{"hero": 0, "about": 800}, 100)
	require.True(t, ok)
	assert.Equal(t, "about", id)

	_, ok = r.Active(5000, map[string]float64{}, 100)
	assert.False(t, ok)
}

func TestActiveNothingQualifies(t *testing.T) {
	r := threeSections(t)
	_, ok := r.Active(0, map[string]float64{"hero": 300, "about": 800}, 100)
	assert.False(t, ok)
}

// The winner is the qualifying section with the greatest offset, for any
// top-to-bottom layout.
func TestActiveIsBottomMostQualifying(t *testing.T) {
	r := MustRegistry(Defaults()...)
	rng := rand.New(rand.NewSource(1))

	for n := 0; n < 500; n++ {
		offsets := map[string]float64{}
		top := 0.0
		for _, s := range r.Sections() {
			top += float64(rng.Intn(900))
			if rng.Intn(5) > 0 {
				offsets[s.ID] = top
			}
		}
		scroll := float64(rng.Intn(6000))

		id, ok := r.Active(scroll, offsets, DefaultThreshold)

		best, bestTop, found := "", -1.0, false
		for sid, off := range offsets {
			if off <= scroll+DefaultThreshold && off >= bestTop {
				if off == bestTop && r.index[sid] < r.index[best] {
					continue
				}
				best, bestTop, found = sid, off, true
			}
		}
		require.Equal(t, found, ok, "scroll=%v offsets=%v", scroll, offsets)
		if found {
			require.Equal(t, best, id, "scroll=%v offsets=%v", scroll, offsets)
		}
	}
}

func TestTrackerSuppressesRepeats(t *testing.T) {
	store := &fakeStore{active: "hero"}
	tr := NewTracker(threeSections(t), store, 100, nil)

	id, changed := tr.Observe(750, layout)
	assert.True(t, changed)
	assert.Equal(t, "about", id)

	id, changed = tr.Observe(750, layout)
	assert.False(t, changed)
	assert.Equal(t, "about", id)

	id, changed = tr.Observe(760, layout)
	assert.False(t, changed)
	assert.Equal(t, "about", id)

	assert.Equal(t, []string{"about"}, store.writes)
}

func TestTrackerNoQualifyingSectionKeepsState(t *testing.T) {
	store := &fakeStore{active: ""}
	tr := NewTracker(threeSections(t), store, 100, nil)

	id, changed := tr.Observe(0, map[string]float64{"hero": 500})
	assert.False(t, changed)
	assert.Equal(t, "", id)
	assert.Empty(t, store.writes)
}

func TestTrackerDefaultThreshold(t *testing.T) {
	tr := NewTracker(threeSections(t), &fakeStore{}, 0, nil)
	assert.Equal(t, DefaultThreshold, tr.Threshold())
}

func TestTrackerFollowsScroll(t *testing.T) {
	store := &fakeStore{}
	tr := NewTracker(threeSections(t), store, 100, nil)

	for _, y := range []float64{0, 100, 650, 750, 1000, 1550, 1600, 700, 0} {
		tr.Observe(y, layout)
	}
	assert.Equal(t, []string{"hero", "about", "skills", "about", "hero"}, store.writes)
}

func TestObserveInKeepsReadersApart(t *testing.T) {
	tr := NewTracker(threeSections(t), &fakeStore{active: "hero"}, 100, nil)
	a := &fakeStore{active: "hero"}
	b := &fakeStore{active: "hero"}

	_, changed := tr.ObserveIn(b, 750, layout)
	assert.True(t, changed)

	id, changed := tr.ObserveIn(a, 760, layout)
	assert.True(t, changed)
	assert.Equal(t, "about", id)

	_, changed = tr.ObserveIn(a, 770, layout)
	assert.False(t, changed)
	assert.Equal(t, []string{"about"}, a.writes)
	assert.Equal(t, []string{"about"}, b.writes)
}
