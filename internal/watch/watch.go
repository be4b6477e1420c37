// Package watch keeps the store in step with the content file while the
// server runs.
package watch

import (
	"context"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Zachkp/folio/internal/portfolio"
	"github.com/Zachkp/folio/internal/store"
)

// Result counts what Apply did.
type Result struct {
	ProjectsAdded       int
	ProjectsUpdated     int
	ExperienceAdded     int
	ExperienceUpdated   int
	AchievementsAdded   int
	AchievementsSkipped int
	// Removed counts entries and skill categories gone from the file but
	// still live.
	Removed int
	// SkillOrderStale is set when the file orders skill categories
	// differently from the live page.
	SkillOrderStale bool
}

// Apply brings s in line with c using only the store's mutation methods.
// Entries and skill categories missing from c stay in the store, existing
// achievements are left as they are, and skill categories keep their live
// order, because the store has no operation for any of these.
func Apply(s *store.Store, c portfolio.Content, log *zap.Logger) (Result, error) {
	if log == nil {
		log = zap.NewNop()
	}
	var res Result

	s.SetLoading(true)
	defer s.SetLoading(false)

	current := s.Content()

	s.UpdatePersonalInfo(c.PersonalInfo.Patch())
	s.UpdateProfessionalSummary(c.ProfessionalSummary)
	s.UpdateSkills(c.Skills)
	if live, want := liveOrder(s.Content(), c), c.SkillCategories(); !slices.Equal(live, want) {
		res.SkillOrderStale = true
		log.Warn("skill category order changes apply after restart",
			zap.Strings("live", live),
			zap.Strings("file", want),
		)
	}

	for _, p := range c.Projects {
		if _, ok := current.FindProject(p.ID); ok {
			s.UpdateProject(p.ID, p.Patch())
			res.ProjectsUpdated++
			continue
		}
		if err := s.AddProject(p); err != nil {
			return res, fmt.Errorf("project %d: %w", p.ID, err)
		}
		res.ProjectsAdded++
	}

	for _, e := range c.Experience {
		if _, ok := current.FindExperience(e.ID); ok {
			s.UpdateExperience(e.ID, e.Patch())
			res.ExperienceUpdated++
			continue
		}
		if err := s.AddExperience(e); err != nil {
			return res, fmt.Errorf("experience %d: %w", e.ID, err)
		}
		res.ExperienceAdded++
	}

	have := make(map[int]bool, len(current.Achievements))
	for _, a := range current.Achievements {
		have[a.ID] = true
	}
	for _, a := range c.Achievements {
		if have[a.ID] {
			res.AchievementsSkipped++
			continue
		}
		if err := s.AddAchievement(a); err != nil {
			return res, fmt.Errorf("achievement %d: %w", a.ID, err)
		}
		res.AchievementsAdded++
	}

	if err := s.UpdateEducation(c.Education); err != nil {
		return res, err
	}

	entries := countRemoved(current, c)
	if entries > 0 {
		log.Warn("entries removed from the content file stay visible until restart", zap.Int("entries", entries))
	}
	categories := removedCategories(current, c)
	if len(categories) > 0 {
		log.Warn("skill categories removed from the content file stay visible until restart", zap.Strings("categories", categories))
	}
	res.Removed = entries + len(categories)
	return res, nil
}

func removedCategories(old, next portfolio.Content) []string {
	var out []string
	for _, k := range slices.Sorted(maps.Keys(old.Skills)) {
		if _, ok := next.Skills[k]; !ok {
			out = append(out, k)
		}
	}
	return out
}

// liveOrder is the live category order, leaving out categories next no
// longer has.
func liveOrder(live, next portfolio.Content) []string {
	return slices.DeleteFunc(live.SkillCategories(), func(k string) bool {
		_, ok := next.Skills[k]
		return !ok
	})
}

func countRemoved(old, next portfolio.Content) int {
	n := 0
	for _, p := range old.Projects {
		if _, ok := next.FindProject(p.ID); !ok {
			n++
		}
	}
	for _, e := range old.Experience {
		if _, ok := next.FindExperience(e.ID); !ok {
			n++
		}
	}
	ids := make(map[int]bool, len(next.Achievements))
	for _, a := range next.Achievements {
		ids[a.ID] = true
	}
	for _, a := range old.Achievements {
		if !ids[a.ID] {
			n++
		}
	}
	return n
}

// Watcher reloads a content file into a store whenever it changes.
type Watcher struct {
	path     string
	store    *store.Store
	log      *zap.Logger
	debounce time.Duration
	reloaded chan Result
}

// New returns a Watcher for path.
func New(path string, s *store.Store, log *zap.Logger) *Watcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Watcher{
		path:     path,
		store:    s,
		log:      log,
		debounce: 500 * time.Millisecond,
	}
}

// Run watches until ctx is done. The file's directory is watched rather
// than the file itself so editors that replace the file on save are seen.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watching %s: %w", w.path, err)
	}
	w.log.Info("watching content file", zap.String("path", w.path))

	target := filepath.Clean(w.path)
	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.log.Debug("content file changed", zap.String("op", event.Op.String()))
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			fire = timer.C
		case <-fire:
			fire = nil
			w.reload()
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) reload() {
	c, err := portfolio.LoadFile(w.path)
	if err != nil {
		w.log.Error("content reload failed, keeping current content", zap.Error(err))
		return
	}
	res, err := Apply(w.store, c, w.log)
	if err != nil {
		w.log.Error("content reload partially applied", zap.Error(err))
		return
	}
	w.log.Info("content reloaded",
		zap.Int("projectsAdded", res.ProjectsAdded),
		zap.Int("projectsUpdated", res.ProjectsUpdated),
		zap.Int("experienceAdded", res.ExperienceAdded),
		zap.Int("achievementsAdded", res.AchievementsAdded),
	)
	if w.reloaded != nil {
		w.reloaded <- res
	}
}
