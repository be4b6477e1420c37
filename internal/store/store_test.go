package store

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/folio/internal/portfolio"
)

func newStore(t *testing.T, opts ...Option) (*Store, *[]Change) {
	t.Helper()
	s := New(portfolio.Default(), opts...)
	var changes []Change
	cancel := s.Subscribe(func(c Change) { changes = append(changes, c) })
	t.Cleanup(cancel)
	return s, &changes
}

func strp(s string) *string { return &s }

func TestNewDefaults(t *testing.T) {
	s := New(portfolio.Default())
	assert.Equal(t, NoSection, s.ActiveSection())
	assert.Equal(t, ThemeDark, s.Theme())
	assert.False(t, s.Loading())

	s = New(portfolio.Default(), WithTheme(ThemeLight), WithActiveSection("hero"), WithTheme("purple"))
	assert.Equal(t, ThemeLight, s.Theme())
	assert.Equal(t, "hero", s.ActiveSection())
}

func TestNewCopiesContent(t *testing.T) {
	c := portfolio.Default()
	s := New(c)
	c.Projects[0].Title = "changed"
	assert.Equal(t, "FlashCache", s.Content().Projects[0].Title)
}

func TestToggleThemeIsInvolution(t *testing.T) {
	for _, start := range []Theme{ThemeLight, ThemeDark} {
		s, changes := newStore(t, WithTheme(start))

		first := s.ToggleTheme()
		assert.Equal(t, start.Toggle(), first)
		assert.Equal(t, start, s.ToggleTheme())
		assert.Equal(t, start, s.Theme())

		require.Len(t, *changes, 2)
		assert.Equal(t, Change{Kind: ChangeTheme, Theme: first}, (*changes)[0])
	}
}

func TestToggleFromLightReportsDark(t *testing.T) {
	s := New(portfolio.Default(), WithTheme(ThemeLight))
	assert.Equal(t, ThemeDark, s.ToggleTheme())
	assert.Equal(t, ThemeLight, s.ToggleTheme())
}

func TestSetActiveSectionAlwaysNotifies(t *testing.T) {
	s, changes := newStore(t)
	s.SetActiveSection("about")
	s.SetActiveSection("about")
	assert.Equal(t, "about", s.ActiveSection())
	assert.Len(t, *changes, 2)
}

func TestUpdatePersonalInfo(t *testing.T) {
	s, changes := newStore(t)
	before := s.Content().PersonalInfo

	s.UpdatePersonalInfo(portfolio.PersonalInfoPatch{Location: strp("Pune"), Title: strp("Engineer")})

	after := s.Content().PersonalInfo
	assert.Equal(t, "Pune", after.Location)
	assert.Equal(t, "Engineer", after.Title)
	assert.Equal(t, before.Name, after.Name)
	assert.Equal(t, before.Email, after.Email)
	assert.Equal(t, OpUpdatePersonalInfo, (*changes)[0].Op)
}

func TestUpdateProfessionalSummary(t *testing.T) {
	s, _ := newStore(t)
	s.UpdateProfessionalSummary("short")
	assert.Equal(t, "short", s.Content().ProfessionalSummary)
}

func TestUpdateSkillsMerges(t *testing.T) {
	s, _ := newStore(t)
	s.UpdateSkills(portfolio.Skills{
		"agileTools": {"Scrum"},
		"languages":  {"Go"},
	})

	c := s.Content()
	assert.Equal(t, []string{"Scrum"}, c.Skills["agileTools"])
	assert.Equal(t, []string{"Go"}, c.Skills["languages"])
	assert.Equal(t, portfolio.Default().Skills["devopsCICD"], c.Skills["devopsCICD"])

	cats := c.SkillCategories()
	assert.Equal(t, "languages", cats[len(cats)-1])
}

func TestAddProject(t *testing.T) {
	s, changes := newStore(t)
	require.NoError(t, s.AddProject(portfolio.Project{ID: 3, Title: "folio"}))

	projects := s.Content().Projects
	require.Len(t, projects, 3)
	assert.Equal(t, "folio", projects[2].Title)
	assert.Equal(t, Change{Kind: ChangeContent, Op: OpAddProject, ID: 3}, (*changes)[0])

	err := s.AddProject(portfolio.Project{ID: 3, Title: "again"})
	assert.True(t, errors.Is(err, portfolio.ErrDuplicateID))

	err = s.AddProject(portfolio.Project{ID: 4})
	assert.Error(t, err)
	assert.Len(t, s.Content().Projects, 3)
	assert.Len(t, *changes, 1)
}

func TestUpdateProject(t *testing.T) {
	s, _ := newStore(t)
	ok := s.UpdateProject(2, portfolio.ProjectPatch{LiveDemo: strp("")})
	require.True(t, ok)

	p, found := s.Content().FindProject(2)
	require.True(t, found)
	assert.Empty(t, p.LiveDemo)
	assert.Equal(t, "VideoTweet", p.Title)
}

func TestUpdateProjectMissingIDIsNoop(t *testing.T) {
	s, changes := newStore(t)
	before := s.Content().Projects

	ok := s.UpdateProject(42, portfolio.ProjectPatch{Title: strp("ghost")})

	assert.False(t, ok)
	assert.Equal(t, before, s.Content().Projects)
	assert.Empty(t, *changes)
}

func TestUpdateProjectTouchesOnlyItsEntry(t *testing.T) {
	s := New(portfolio.Default())
	want := s.Content()
	want.Projects[1].Title = "Renamed"
	want.Projects[1].TechStack = []string{"Go"}

	require.True(t, s.UpdateProject(want.Projects[1].ID, portfolio.ProjectPatch{
		Title:     strp("Renamed"),
		TechStack: []string{"Go"},
	}))
	if diff := cmp.Diff(want, s.Content()); diff != "" {
		t.Errorf("content mismatch (-want +got):\n%s", diff)
	}
}

func TestExperienceAddAndUpdate(t *testing.T) {
	s, _ := newStore(t)
	require.NoError(t, s.AddExperience(portfolio.Experience{ID: 3, Title: "Intern", Company: "Acme"}))
	assert.Error(t, s.AddExperience(portfolio.Experience{ID: 1, Title: "x", Company: "y"}))

	require.True(t, s.UpdateExperience(3, portfolio.ExperiencePatch{TechStack: []string{"Go"}}))
	e, ok := s.Content().FindExperience(3)
	require.True(t, ok)
	assert.Equal(t, []string{"Go"}, e.TechStack)
	assert.Equal(t, "Acme", e.Company)

	before := s.Content().Experience
	assert.False(t, s.UpdateExperience(99, portfolio.ExperiencePatch{Title: strp("x")}))
	assert.Equal(t, before, s.Content().Experience)
}

func TestAddAchievementAppends(t *testing.T) {
	s, _ := newStore(t)
	before := s.Content().Achievements

	a := portfolio.Achievement{ID: 5, Title: "Speaker", Category: "Community"}
	require.NoError(t, s.AddAchievement(a))

	after := s.Content().Achievements
	require.Len(t, after, len(before)+1)
	assert.Equal(t, before, after[:len(before)])
	assert.Equal(t, a, after[len(after)-1])

	assert.Error(t, s.AddAchievement(portfolio.Achievement{ID: 5, Title: "dup"}))
	assert.Len(t, s.Content().Achievements, len(before)+1)
}

func TestUpdateEducationReplaces(t *testing.T) {
	s, _ := newStore(t)
	list := []portfolio.Education{{ID: 9, Degree: "MSc", Institution: "Uni"}}
	require.NoError(t, s.UpdateEducation(list))
	assert.Equal(t, list, s.Content().Education)

	err := s.UpdateEducation([]portfolio.Education{
		{ID: 1, Degree: "a", Institution: "b"},
		{ID: 1, Degree: "c", Institution: "d"},
	})
	assert.True(t, errors.Is(err, portfolio.ErrDuplicateID))
	assert.Equal(t, list, s.Content().Education)

	require.NoError(t, s.UpdateEducation(nil))
	assert.Empty(t, s.Content().Education)
}

func TestSetLoading(t *testing.T) {
	s, changes := newStore(t)
	s.SetLoading(true)
	assert.True(t, s.Loading())
	s.SetLoading(false)
	assert.False(t, s.Snapshot().Loading)
	assert.Equal(t, []Change{{Kind: ChangeLoading, Loading: true}, {Kind: ChangeLoading}}, *changes)
}

func TestSnapshotIsIsolated(t *testing.T) {
	s, _ := newStore(t)
	snap := s.Snapshot()
	snap.Content.Projects[0].Title = "changed"
	snap.Content.Skills["agileTools"] = nil
	assert.Equal(t, "FlashCache", s.Content().Projects[0].Title)
	assert.NotEmpty(t, s.Content().Skills["agileTools"])
}

func TestSubscribeCancel(t *testing.T) {
	s := New(portfolio.Default())
	var got []string
	cancel := s.Subscribe(func(c Change) { got = append(got, c.Section) })
	s.Subscribe(func(c Change) {
		// listeners may read the store
		got = append(got, "read:"+s.ActiveSection())
	})

	s.SetActiveSection("skills")
	cancel()
	s.SetActiveSection("contact")

	assert.Equal(t, []string{"skills", "read:skills", "read:contact"}, got)
}

func TestConcurrentMutations(t *testing.T) {
	s := New(portfolio.Default(), WithTheme(ThemeLight))
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.ToggleTheme()
		}()
		go func() {
			defer wg.Done()
			_ = s.Snapshot()
		}()
	}
	wg.Wait()
	assert.Equal(t, ThemeLight, s.Theme())
}

func TestParseTheme(t *testing.T) {
	th, err := ParseTheme("light")
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, th)

	_, err = ParseTheme("sepia")
	assert.Error(t, err)
}

func TestListenersSeeMutationOrder(t *testing.T) {
	s := New(portfolio.Default(), WithTheme(ThemeLight))
	var seen []Theme
	s.Subscribe(func(c Change) {
		if c.Kind == ChangeTheme {
			seen = append(seen, c.Theme)
		}
	})
	s.Subscribe(func(Change) { _ = s.Snapshot() })

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.ToggleTheme()
		}()
		go func() {
			defer wg.Done()
			s.UpdateProfessionalSummary("busy")
		}()
	}
	wg.Wait()

	require.Len(t, seen, 50)
	want := ThemeLight
	for i, th := range seen {
		want = want.Toggle()
		require.Equal(t, want, th, "change %d delivered out of order", i)
	}
	assert.Equal(t, s.Theme(), seen[len(seen)-1])
}
