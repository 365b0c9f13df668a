package profile

import (
	"fmt"
	"strings"
)

// Section names an editable part of the profile.
type Section string

const (
	SectionPersonalInfo Section = "personalInfo"
	SectionSkills       Section = "skills"
	SectionExperience   Section = "experience"
	SectionEducation    Section = "education"
	SectionProjects     Section = "projects"
)

// RepeatableSections lists the sections backed by ordered sub-lists.
var RepeatableSections = []Section{
	SectionSkills,
	SectionExperience,
	SectionEducation,
	SectionProjects,
}

// Repeatable reports whether the section is an ordered sub-list.
func (s Section) Repeatable() bool {
	switch s {
	case SectionSkills, SectionExperience, SectionEducation, SectionProjects:
		return true
	default:
		return false
	}
}

// ParseSection maps a case-insensitive name onto a Section.
func ParseSection(raw string) (Section, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "personalinfo", "personal_info", "personal-info", "personal":
		return SectionPersonalInfo, nil
	case "skills", "skill":
		return SectionSkills, nil
	case "experience", "experiences":
		return SectionExperience, nil
	case "education":
		return SectionEducation, nil
	case "projects", "project":
		return SectionProjects, nil
	default:
		return "", fmt.Errorf("profile: unknown section %q", raw)
	}
}

// Field names accepted per section. Skills entries are bare strings and use
// FieldValue.
const (
	FieldValue = "value"

	FieldName     = "name"
	FieldTitle    = "title"
	FieldEmail    = "email"
	FieldPhone    = "phone"
	FieldLocation = "location"
	FieldWebsite  = "website"
	FieldLinkedIn = "linkedin"
	FieldGitHub   = "github"
	FieldBio      = "bio"

	FieldCompany     = "company"
	FieldDuration    = "duration"
	FieldDescription = "description"

	FieldDegree      = "degree"
	FieldInstitution = "institution"
	FieldYear        = "year"

	FieldTechnologies = "technologies"
	FieldLink         = "link"
)

// Fields returns the editable field names of a section in form order.
func Fields(section Section) []string {
	switch section {
	case SectionPersonalInfo:
		return []string{FieldName, FieldTitle, FieldEmail, FieldPhone, FieldLocation, FieldWebsite, FieldLinkedIn, FieldGitHub, FieldBio}
	case SectionSkills:
		return []string{FieldValue}
	case SectionExperience:
		return []string{FieldTitle, FieldCompany, FieldDuration, FieldDescription}
	case SectionEducation:
		return []string{FieldDegree, FieldInstitution, FieldYear}
	case SectionProjects:
		return []string{FieldName, FieldDescription, FieldTechnologies, FieldLink}
	default:
		return nil
	}
}

// Set assigns value to the named field of the personal info record.
func (pi *PersonalInfo) Set(field, value string) bool {
	switch normalizeField(field) {
	case FieldName:
		pi.Name = value
	case FieldTitle:
		pi.Title = value
	case FieldEmail:
		pi.Email = value
	case FieldPhone:
		pi.Phone = value
	case FieldLocation:
		pi.Location = value
	case FieldWebsite:
		pi.Website = value
	case FieldLinkedIn:
		pi.LinkedIn = value
	case FieldGitHub:
		pi.GitHub = value
	case FieldBio:
		pi.Bio = value
	default:
		return false
	}
	return true
}

// Get returns the named field of the personal info record.
func (pi PersonalInfo) Get(field string) (string, bool) {
	switch normalizeField(field) {
	case FieldName:
		return pi.Name, true
	case FieldTitle:
		return pi.Title, true
	case FieldEmail:
		return pi.Email, true
	case FieldPhone:
		return pi.Phone, true
	case FieldLocation:
		return pi.Location, true
	case FieldWebsite:
		return pi.Website, true
	case FieldLinkedIn:
		return pi.LinkedIn, true
	case FieldGitHub:
		return pi.GitHub, true
	case FieldBio:
		return pi.Bio, true
	default:
		return "", false
	}
}

// Set assigns value to the named field of the experience entry.
func (e *Experience) Set(field, value string) bool {
	switch normalizeField(field) {
	case FieldTitle:
		e.Title = value
	case FieldCompany:
		e.Company = value
	case FieldDuration:
		e.Duration = value
	case FieldDescription:
		e.Description = value
	default:
		return false
	}
	return true
}

// Set assigns value to the named field of the education entry.
func (e *Education) Set(field, value string) bool {
	switch normalizeField(field) {
	case FieldDegree:
		e.Degree = value
	case FieldInstitution:
		e.Institution = value
	case FieldYear:
		e.Year = value
	default:
		return false
	}
	return true
}

// Set assigns value to the named field of the project entry.
func (p *Project) Set(field, value string) bool {
	switch normalizeField(field) {
	case FieldName:
		p.Name = value
	case FieldDescription:
		p.Description = value
	case FieldTechnologies:
		p.Technologies = value
	case FieldLink:
		p.Link = value
	default:
		return false
	}
	return true
}

// Value returns the named field of an entry. For personalInfo the index is
// ignored; skills entries use FieldValue.
func (p Profile) Value(section Section, index int, field string) (string, bool) {
	switch section {
	case SectionPersonalInfo:
		return p.PersonalInfo.Get(field)
	case SectionSkills:
		if index < 0 || index >= len(p.Skills) || (field != "" && normalizeField(field) != FieldValue) {
			return "", false
		}
		return p.Skills[index], true
	case SectionExperience:
		if index < 0 || index >= len(p.Experience) {
			return "", false
		}
		e := p.Experience[index]
		return pick(field, map[string]string{
			FieldTitle: e.Title, FieldCompany: e.Company, FieldDuration: e.Duration, FieldDescription: e.Description,
		})
	case SectionEducation:
		if index < 0 || index >= len(p.Education) {
			return "", false
		}
		e := p.Education[index]
		return pick(field, map[string]string{
			FieldDegree: e.Degree, FieldInstitution: e.Institution, FieldYear: e.Year,
		})
	case SectionProjects:
		if index < 0 || index >= len(p.Projects) {
			return "", false
		}
		pr := p.Projects[index]
		return pick(field, map[string]string{
			FieldName: pr.Name, FieldDescription: pr.Description, FieldTechnologies: pr.Technologies, FieldLink: pr.Link,
		})
	default:
		return "", false
	}
}

func pick(field string, values map[string]string) (string, bool) {
	v, ok := values[normalizeField(field)]
	return v, ok
}

func normalizeField(field string) string {
	return strings.ToLower(strings.TrimSpace(field))
}
