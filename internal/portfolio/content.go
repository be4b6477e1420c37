// Package portfolio holds the content model rendered by the site: who the
// owner is, what they know, where they worked and what they built.
package portfolio

import (
	"maps"
	"slices"
)

// PersonalInfo is the owner's contact card.
type PersonalInfo struct {
	Name       string `json:"name" yaml:"name" validate:"required"`
	Title      string `json:"title" yaml:"title"`
	Location   string `json:"location" yaml:"location"`
	Phone      string `json:"phone" yaml:"phone"`
	Email      string `json:"email" yaml:"email" validate:"omitempty,email"`
	LinkedIn   string `json:"linkedin" yaml:"linkedin" validate:"omitempty,url"`
	GitHub     string `json:"github" yaml:"github" validate:"omitempty,url"`
	CodeStudio string `json:"codeStudio" yaml:"codeStudio" validate:"omitempty,url"`
}

// PersonalInfoPatch carries the fields to overwrite; nil fields are left alone.
type PersonalInfoPatch struct {
	Name       *string `json:"name,omitempty" yaml:"name,omitempty" validate:"omitempty,min=1"`
	Title      *string `json:"title,omitempty" yaml:"title,omitempty"`
	Location   *string `json:"location,omitempty" yaml:"location,omitempty"`
	Phone      *string `json:"phone,omitempty" yaml:"phone,omitempty"`
	Email      *string `json:"email,omitempty" yaml:"email,omitempty" validate:"omitempty,email"`
	LinkedIn   *string `json:"linkedin,omitempty" yaml:"linkedin,omitempty" validate:"omitempty,url"`
	GitHub     *string `json:"github,omitempty" yaml:"github,omitempty" validate:"omitempty,url"`
	CodeStudio *string `json:"codeStudio,omitempty" yaml:"codeStudio,omitempty" validate:"omitempty,url"`
}

// Merge returns a copy of p with every non-nil field of patch applied.
func (p PersonalInfo) Merge(patch PersonalInfoPatch) PersonalInfo {
	set(&p.Name, patch.Name)
	set(&p.Title, patch.Title)
	set(&p.Location, patch.Location)
	set(&p.Phone, patch.Phone)
	set(&p.Email, patch.Email)
	set(&p.LinkedIn, patch.LinkedIn)
	set(&p.GitHub, patch.GitHub)
	set(&p.CodeStudio, patch.CodeStudio)
	return p
}

// Patch returns a patch that overwrites every field with the values in p.
func (p PersonalInfo) Patch() PersonalInfoPatch {
	return PersonalInfoPatch{
		Name:       ptr(p.Name),
		Title:      ptr(p.Title),
		Location:   ptr(p.Location),
		Phone:      ptr(p.Phone),
		Email:      ptr(p.Email),
		LinkedIn:   ptr(p.LinkedIn),
		GitHub:     ptr(p.GitHub),
		CodeStudio: ptr(p.CodeStudio),
	}
}

// Skills maps a category key (e.g. "languagesFrameworks") to its entries.
type Skills map[string][]string

// Clone returns a deep copy of s.
func (s Skills) Clone() Skills {
	if s == nil {
		return nil
	}
	out := make(Skills, len(s))
	for k, v := range s {
		out[k] = slices.Clone(v)
	}
	return out
}

// Experience is one position held.
type Experience struct {
	ID           int      `json:"id" yaml:"id" validate:"required,gt=0"`
	Title        string   `json:"title" yaml:"title" validate:"required"`
	Company      string   `json:"company" yaml:"company" validate:"required"`
	Duration     string   `json:"duration" yaml:"duration"`
	Achievements []string `json:"achievements" yaml:"achievements"`
	TechStack    []string `json:"techStack" yaml:"techStack"`
}

// ExperiencePatch is a partial Experience. ID is not patchable.
type ExperiencePatch struct {
	Title        *string  `json:"title,omitempty" yaml:"title,omitempty"`
	Company      *string  `json:"company,omitempty" yaml:"company,omitempty"`
	Duration     *string  `json:"duration,omitempty" yaml:"duration,omitempty"`
	Achievements []string `json:"achievements,omitempty" yaml:"achievements,omitempty"`
	TechStack    []string `json:"techStack,omitempty" yaml:"techStack,omitempty"`
}

// Merge returns a copy of e with patch applied.
func (e Experience) Merge(patch ExperiencePatch) Experience {
	e = e.clone()
	set(&e.Title, patch.Title)
	set(&e.Company, patch.Company)
	set(&e.Duration, patch.Duration)
	if patch.Achievements != nil {
		e.Achievements = slices.Clone(patch.Achievements)
	}
	if patch.TechStack != nil {
		e.TechStack = slices.Clone(patch.TechStack)
	}
	return e
}

// Patch returns a patch that turns any Experience into e (ID aside).
func (e Experience) Patch() ExperiencePatch {
	return ExperiencePatch{
		Title:        ptr(e.Title),
		Company:      ptr(e.Company),
		Duration:     ptr(e.Duration),
		Achievements: nonNil(e.Achievements),
		TechStack:    nonNil(e.TechStack),
	}
}

func (e Experience) clone() Experience {
	e.Achievements = slices.Clone(e.Achievements)
	e.TechStack = slices.Clone(e.TechStack)
	return e
}

// Project is a showcased piece of work.
type Project struct {
	ID          int      `json:"id" yaml:"id" validate:"required,gt=0"`
	Title       string   `json:"title" yaml:"title" validate:"required"`
	Subtitle    string   `json:"subtitle" yaml:"subtitle"`
	Description string   `json:"description" yaml:"description"`
	Features    []string `json:"features" yaml:"features"`
	TechStack   []string `json:"techStack" yaml:"techStack"`
	GitHub      string   `json:"github" yaml:"github" validate:"omitempty,url"`
	LiveDemo    string   `json:"liveDemo" yaml:"liveDemo" validate:"omitempty,url"`
}

// ProjectPatch is a partial Project. ID is not patchable.
type ProjectPatch struct {
	Title       *string  `json:"title,omitempty" yaml:"title,omitempty"`
	Subtitle    *string  `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Description *string  `json:"description,omitempty" yaml:"description,omitempty"`
	Features    []string `json:"features,omitempty" yaml:"features,omitempty"`
	TechStack   []string `json:"techStack,omitempty" yaml:"techStack,omitempty"`
	GitHub      *string  `json:"github,omitempty" yaml:"github,omitempty" validate:"omitempty,url"`
	LiveDemo    *string  `json:"liveDemo,omitempty" yaml:"liveDemo,omitempty" validate:"omitempty,url"`
}

// Merge returns a copy of p with patch applied.
func (p Project) Merge(patch ProjectPatch) Project {
	p = p.clone()
	set(&p.Title, patch.Title)
	set(&p.Subtitle, patch.Subtitle)
	set(&p.Description, patch.Description)
	if patch.Features != nil {
		p.Features = slices.Clone(patch.Features)
	}
	if patch.TechStack != nil {
		p.TechStack = slices.Clone(patch.TechStack)
	}
	set(&p.GitHub, patch.GitHub)
	set(&p.LiveDemo, patch.LiveDemo)
	return p
}

// Patch returns a patch that turns any Project into p (ID aside).
func (p Project) Patch() ProjectPatch {
	return ProjectPatch{
		Title:       ptr(p.Title),
		Subtitle:    ptr(p.Subtitle),
		Description: ptr(p.Description),
		Features:    nonNil(p.Features),
		TechStack:   nonNil(p.TechStack),
		GitHub:      ptr(p.GitHub),
		LiveDemo:    ptr(p.LiveDemo),
	}
}

func (p Project) clone() Project {
	p.Features = slices.Clone(p.Features)
	p.TechStack = slices.Clone(p.TechStack)
	return p
}

// Achievement is an award, milestone or recognition. Achievements are
// append-only once published.
type Achievement struct {
	ID          int    `json:"id" yaml:"id" validate:"required,gt=0"`
	Title       string `json:"title" yaml:"title" validate:"required"`
	Description string `json:"description" yaml:"description"`
	Icon        string `json:"icon" yaml:"icon"`
	Category    string `json:"category" yaml:"category"`
	Link        string `json:"link,omitempty" yaml:"link,omitempty" validate:"omitempty,url"`
}

// Education is a degree or certification. Duration is empty when unknown.
type Education struct {
	ID          int    `json:"id" yaml:"id" validate:"required,gt=0"`
	Degree      string `json:"degree" yaml:"degree" validate:"required"`
	Institution string `json:"institution" yaml:"institution" validate:"required"`
	Duration    string `json:"duration,omitempty" yaml:"duration,omitempty"`
	GPA         string `json:"gpa,omitempty" yaml:"gpa,omitempty"`
	Type        string `json:"type" yaml:"type"`
}

// Content is the whole portfolio.
type Content struct {
	PersonalInfo        PersonalInfo  `json:"personalInfo" yaml:"personalInfo"`
	ProfessionalSummary string        `json:"professionalSummary" yaml:"professionalSummary"`
	Skills              Skills        `json:"skills" yaml:"skills"`
	SkillOrder          []string      `json:"skillOrder,omitempty" yaml:"skillOrder,omitempty"`
	Experience          []Experience  `json:"experience" yaml:"experience" validate:"dive"`
	Projects            []Project     `json:"projects" yaml:"projects" validate:"dive"`
	Achievements        []Achievement `json:"achievements" yaml:"achievements" validate:"dive"`
	Education           []Education   `json:"education" yaml:"education" validate:"dive"`
}

// Clone returns a deep copy of c.
func (c Content) Clone() Content {
	out := c
	out.Skills = c.Skills.Clone()
	out.SkillOrder = slices.Clone(c.SkillOrder)
	out.Experience = make([]Experience, len(c.Experience))
	for i, e := range c.Experience {
		out.Experience[i] = e.clone()
	}
	out.Projects = make([]Project, len(c.Projects))
	for i, p := range c.Projects {
		out.Projects[i] = p.clone()
	}
	out.Achievements = slices.Clone(c.Achievements)
	out.Education = slices.Clone(c.Education)
	return out
}

// SkillCategories returns the category keys in display order: SkillOrder
// first, then any remaining keys sorted.
func (c Content) SkillCategories() []string {
	seen := make(map[string]bool, len(c.Skills))
	out := make([]string, 0, len(c.Skills))
	for _, k := range c.SkillOrder {
		if _, ok := c.Skills[k]; ok && !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	rest := slices.Sorted(maps.Keys(c.Skills))
	for _, k := range rest {
		if !seen[k] {
			out = append(out, k)
		}
	}
	return out
}

// FindProject returns the project with id.
func (c Content) FindProject(id int) (Project, bool) {
	i := slices.IndexFunc(c.Projects, func(p Project) bool { return p.ID == id })
	if i < 0 {
		return Project{}, false
	}
	return c.Projects[i], true
}

// FindExperience returns the experience entry with id.
func (c Content) FindExperience(id int) (Experience, bool) {
	i := slices.IndexFunc(c.Experience, func(e Experience) bool { return e.ID == id })
	if i < 0 {
		return Experience{}, false
	}
	return c.Experience[i], true
}

func set(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func ptr(s string) *string { return &s }

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return slices.Clone(s)
}
