package corpus

import (
	"encoding/json"
	"strings"
)

// Corpus is the static, read-only fact set the knowledge pipeline is grounded
// in. It is built once at process start and shared by all concurrent turns;
// nothing may be asserted in a knowledge answer that is not traceable to it.
type Corpus struct {
	Profile        Profile         `json:"profile"`
	CoreSkills     []string        `json:"coreSkills"`
	Skills         []SkillCategory `json:"skills"`
	Work           []Work          `json:"work"`
	Education      []Education     `json:"education"`
	Certifications []Certification `json:"certifications"`
	Projects       []Project       `json:"projects"`
	Hackathons     []Hackathon     `json:"hackathons"`
	Contact        Contact         `json:"contact"`
}

type Profile struct {
	Name        string `json:"name"`
	Initials    string `json:"initials"`
	URL         string `json:"url"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Summary     string `json:"summary"`
}

type SkillCategory struct {
	Category string   `json:"category"`
	Skills   []string `json:"skills"`
}

type Work struct {
	Company     string   `json:"company"`
	URL         string   `json:"url,omitempty"`
	Title       string   `json:"title"`
	Badges      []string `json:"badges,omitempty"`
	Location    string   `json:"location"`
	Start       string   `json:"start"`
	End         string   `json:"end"`
	Description string   `json:"description"`
}

type Education struct {
	School       string   `json:"school"`
	Degree       string   `json:"degree"`
	Start        string   `json:"start"`
	End          string   `json:"end"`
	Achievements []string `json:"achievements,omitempty"`
	Electives    []string `json:"relevantElectives,omitempty"`
}

type Certification struct {
	Title       string `json:"title"`
	Dates       string `json:"dates"`
	Description string `json:"description"`
}

type Project struct {
	Title        string   `json:"title"`
	Dates        string   `json:"dates"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	URL          string   `json:"url,omitempty"`
}

type Hackathon struct {
	Title       string `json:"title"`
	Dates       string `json:"dates"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

type Contact struct {
	Email  string            `json:"email"`
	Tel    string            `json:"tel,omitempty"`
	Social map[string]string `json:"social,omitempty"`
}

// Section names match the JSON keys above. The retriever cites these and the
// validator checks citations against them.
const (
	SectionProfile        = "profile"
	SectionSkills         = "skills"
	SectionWork           = "work"
	SectionEducation      = "education"
	SectionCertifications = "certifications"
	SectionProjects       = "projects"
	SectionHackathons     = "hackathons"
	SectionContact        = "contact"
)

// SectionNames returns the citable corpus sections in a stable order.
func SectionNames() []string {
	return []string{
		SectionProfile,
		SectionSkills,
		SectionWork,
		SectionEducation,
		SectionCertifications,
		SectionProjects,
		SectionHackathons,
		SectionContact,
	}
}

// IsSection reports whether name is a known corpus section.
func IsSection(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case SectionProfile, SectionSkills, SectionWork, SectionEducation,
		SectionCertifications, SectionProjects, SectionHackathons, SectionContact:
		return true
	}
	return false
}

// PromptText serializes the corpus as indented JSON for inclusion in prompts.
// The serialization is computed once; the corpus never changes at runtime.
func (c *Corpus) PromptText() string {
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		// the corpus is static and marshalable by construction
		return "{}"
	}
	return string(b)
}

// AllSkills flattens the categorized skill lists, useful for tests and for
// sanity checks against drafted answers.
func (c *Corpus) AllSkills() []string {
	var out []string
	for _, cat := range c.Skills {
		out = append(out, cat.Skills...)
	}
	return out
}
