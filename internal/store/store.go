// Package store is the single owner of the portfolio's mutable state: the
// active section, the theme, the loading flag and the content model.
//
// Every mutation goes through one of the Store's methods. Readers get
// deep-copied snapshots, so nothing outside the Store can change state
// behind its back. Listeners registered with Subscribe are told about each
// change after it has been applied, in the order the changes happened.
//
// A Store carries one View of its own. When several readers share the
// content, Views gives each of them a separate View.
package store

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/Zachkp/folio/internal/portfolio"
)

// NoSection is the active section before the first scroll evaluation.
const NoSection = ""

// Snapshot is a point-in-time copy of the Store.
type Snapshot struct {
	ActiveSection string            `json:"activeSection"`
	Theme         Theme             `json:"theme"`
	Loading       bool              `json:"loading"`
	Content       portfolio.Content `json:"content"`
}

// Store holds view state and content. The zero value is not usable; call New.
type Store struct {
	mu      sync.RWMutex
	loading bool
	content portfolio.Content

	view *View
	hub  *hub
	log  *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithTheme sets the initial theme. Invalid values are ignored.
func WithTheme(t Theme) Option {
	return func(s *Store) {
		if t.Valid() {
			s.view.theme = t
		}
	}
}

// WithActiveSection sets the initial active section.
func WithActiveSection(id string) Option {
	return func(s *Store) { s.view.active = id }
}

// WithLogger attaches a logger. The default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		s.log = l
		s.view.log = l
	}
}

// New returns a Store seeded with a copy of content.
func New(content portfolio.Content, opts ...Option) *Store {
	h := newHub()
	log := zap.NewNop()
	s := &Store{
		content: content.Clone(),
		view:    newView("", NoSection, ThemeDark, h, log),
		hub:     h,
		log:     log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.view.mu.RLock()
	defer s.view.mu.RUnlock()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		ActiveSection: s.view.active,
		Theme:         s.view.theme,
		Loading:       s.loading,
		Content:       s.content.Clone(),
	}
}

// Content returns a deep copy of the content model.
func (s *Store) Content() portfolio.Content {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.content.Clone()
}

// View returns the Store's own view.
func (s *Store) View() *View { return s.view }

// ActiveSection returns the id of the section currently in view.
func (s *Store) ActiveSection() string { return s.view.ActiveSection() }

// Theme returns the current theme.
func (s *Store) Theme() Theme { return s.view.Theme() }

// Loading reports whether content is being reloaded.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// SetActiveSection overwrites the active section unconditionally.
func (s *Store) SetActiveSection(id string) { s.view.SetActiveSection(id) }

// ToggleTheme flips between light and dark and returns the new theme.
func (s *Store) ToggleTheme() Theme { return s.view.ToggleTheme() }

// SetLoading sets the loading flag.
func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	s.loading = loading
	s.hub.emit(s.mu.Unlock, Change{Kind: ChangeLoading, Loading: loading})
}

// UpdatePersonalInfo merges the non-nil fields of patch into the personal
// info record.
func (s *Store) UpdatePersonalInfo(patch portfolio.PersonalInfoPatch) {
	s.mu.Lock()
	s.content.PersonalInfo = s.content.PersonalInfo.Merge(patch)
	s.hub.emit(s.mu.Unlock, Change{Kind: ChangeContent, Op: OpUpdatePersonalInfo})
}

// UpdateProfessionalSummary replaces the summary text.
func (s *Store) UpdateProfessionalSummary(text string) {
	s.mu.Lock()
	s.content.ProfessionalSummary = text
	s.hub.emit(s.mu.Unlock, Change{Kind: ChangeContent, Op: OpUpdateProfessionalSummary})
}

// UpdateSkills merges categories into the skills map. Categories not named
// keep their entries; new categories are shown after existing ones.
func (s *Store) UpdateSkills(categories portfolio.Skills) {
	s.mu.Lock()
	if s.content.Skills == nil {
		s.content.Skills = make(portfolio.Skills, len(categories))
	}
	for _, k := range slices.Sorted(maps.Keys(categories)) {
		if _, ok := s.content.Skills[k]; !ok && !slices.Contains(s.content.SkillOrder, k) {
			s.content.SkillOrder = append(s.content.SkillOrder, k)
		}
		s.content.Skills[k] = slices.Clone(categories[k])
	}
	s.hub.emit(s.mu.Unlock, Change{Kind: ChangeContent, Op: OpUpdateSkills})
}

// AddProject appends p. It fails if p is invalid or its id is taken.
func (s *Store) AddProject(p portfolio.Project) error {
	if err := portfolio.ValidateStruct(p); err != nil {
		return fmt.Errorf("add project: %w", err)
	}
	s.mu.Lock()
	if _, ok := s.content.FindProject(p.ID); ok {
		s.mu.Unlock()
		return fmt.Errorf("add project: %w %d", portfolio.ErrDuplicateID, p.ID)
	}
	s.content.Projects = append(s.content.Projects, p.Merge(portfolio.ProjectPatch{}))
	s.hub.emit(s.mu.Unlock, Change{Kind: ChangeContent, Op: OpAddProject, ID: p.ID})
	return nil
}

// UpdateProject merges patch into the project with id. A missing id leaves
// the collection untouched and reports false.
func (s *Store) UpdateProject(id int, patch portfolio.ProjectPatch) bool {
	s.mu.Lock()
	i := slices.IndexFunc(s.content.Projects, func(p portfolio.Project) bool { return p.ID == id })
	if i < 0 {
		s.mu.Unlock()
		s.log.Debug("update of unknown project ignored", zap.Int("id", id))
		return false
	}
	s.content.Projects[i] = s.content.Projects[i].Merge(patch)
	s.hub.emit(s.mu.Unlock, Change{Kind: ChangeContent, Op: OpUpdateProject, ID: id})
	return true
}

// AddExperience appends e. It fails if e is invalid or its id is taken.
func (s *Store) AddExperience(e portfolio.Experience) error {
	if err := portfolio.ValidateStruct(e); err != nil {
		return fmt.Errorf("add experience: %w", err)
	}
	s.mu.Lock()
	if _, ok := s.content.FindExperience(e.ID); ok {
		s.mu.Unlock()
		return fmt.Errorf("add experience: %w %d", portfolio.ErrDuplicateID, e.ID)
	}
	s.content.Experience = append(s.content.Experience, e.Merge(portfolio.ExperiencePatch{}))
	s.hub.emit(s.mu.Unlock, Change{Kind: ChangeContent, Op: OpAddExperience, ID: e.ID})
	return nil
}

// UpdateExperience merges patch into the experience entry with id. A missing
// id leaves the collection untouched and reports false.
func (s *Store) UpdateExperience(id int, patch portfolio.ExperiencePatch) bool {
	s.mu.Lock()
	i := slices.IndexFunc(s.content.Experience, func(e portfolio.Experience) bool { return e.ID == id })
	if i < 0 {
		s.mu.Unlock()
		s.log.Debug("update of unknown experience ignored", zap.Int("id", id))
		return false
	}
	s.content.Experience[i] = s.content.Experience[i].Merge(patch)
	s.hub.emit(s.mu.Unlock, Change{Kind: ChangeContent, Op: OpUpdateExperience, ID: id})
	return true
}

// AddAchievement appends a. Achievements cannot be edited afterwards.
func (s *Store) AddAchievement(a portfolio.Achievement) error {
	if err := portfolio.ValidateStruct(a); err != nil {
		return fmt.Errorf("add achievement: %w", err)
	}
	s.mu.Lock()
	if slices.ContainsFunc(s.content.Achievements, func(x portfolio.Achievement) bool { return x.ID == a.ID }) {
		s.mu.Unlock()
		return fmt.Errorf("add achievement: %w %d", portfolio.ErrDuplicateID, a.ID)
	}
	s.content.Achievements = append(s.content.Achievements, a)
	s.hub.emit(s.mu.Unlock, Change{Kind: ChangeContent, Op: OpAddAchievement, ID: a.ID})
	return nil
}

// UpdateEducation replaces the whole education list.
func (s *Store) UpdateEducation(list []portfolio.Education) error {
	if err := portfolio.ValidateEducation(list); err != nil {
		return fmt.Errorf("update education: %w", err)
	}
	s.mu.Lock()
	s.content.Education = slices.Clone(list)
	s.hub.emit(s.mu.Unlock, Change{Kind: ChangeContent, Op: OpUpdateEducation})
	return nil
}
