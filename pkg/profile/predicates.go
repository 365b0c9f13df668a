package profile

import "strings"

// HasName reports whether the profile carries a non-blank name, the
// precondition for generating or exporting a portfolio.
func (p Profile) HasName() bool {
	return strings.TrimSpace(p.PersonalInfo.Name) != ""
}

// SkillRenderable reports whether a skill slot holds visible text.
func SkillRenderable(skill string) bool {
	return strings.TrimSpace(skill) != ""
}

// Renderable reports whether the entry has a title or a company.
func (e Experience) Renderable() bool {
	return strings.TrimSpace(e.Title) != "" || strings.TrimSpace(e.Company) != ""
}

// Renderable reports whether the entry has a degree or an institution.
func (e Education) Renderable() bool {
	return strings.TrimSpace(e.Degree) != "" || strings.TrimSpace(e.Institution) != ""
}

// Renderable reports whether the project has a name.
func (p Project) Renderable() bool {
	return strings.TrimSpace(p.Name) != ""
}

// Tags splits Technologies on commas and trims every piece. Empty pieces are
// kept so callers see the raw split; renderers drop them.
func (p Project) Tags() []string {
	if p.Technologies == "" {
		return nil
	}
	parts := strings.Split(p.Technologies, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		out = append(out, strings.TrimSpace(part))
	}
	return out
}

// Len returns the number of entries in a repeatable section, or zero for
// scalar sections.
func (p Profile) Len(section Section) int {
	switch section {
	case SectionSkills:
		return len(p.Skills)
	case SectionExperience:
		return len(p.Experience)
	case SectionEducation:
		return len(p.Education)
	case SectionProjects:
		return len(p.Projects)
	default:
		return 0
	}
}
