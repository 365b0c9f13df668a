package render

import (
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-portfolio/pkg/profile"
)

// Section identifies a body section of the rendered portfolio.
type Section string

const (
	SectionAbout      Section = "about"
	SectionSkills     Section = "skills"
	SectionExperience Section = "experience"
	SectionEducation  Section = "education"
	SectionProjects   Section = "projects"
)

// SectionOrder is the fixed display order of body sections.
var SectionOrder = []Section{
	SectionAbout,
	SectionSkills,
	SectionExperience,
	SectionEducation,
	SectionProjects,
}

// EmptyMessage is shown instead of the portfolio until a name is entered.
const EmptyMessage = "Fill in your information to see the portfolio preview"

// View is the render-ready projection of a Profile. Every visibility and
// filtering decision is made once in BuildView; layouts only arrange what the
// View contains.
type View struct {
	Empty      bool             `json:"empty"`
	Header     Header           `json:"header"`
	About      string           `json:"about,omitempty"`
	Skills     []string         `json:"skills,omitempty"`
	Experience []ExperienceView `json:"experience,omitempty"`
	Education  []EducationView  `json:"education,omitempty"`
	Projects   []ProjectView    `json:"projects,omitempty"`
}

// Header holds the identity block shown above the sections.
type Header struct {
	Name     string    `json:"name"`
	Title    string    `json:"title,omitempty"`
	Avatar   Avatar    `json:"avatar"`
	Contacts []Contact `json:"contacts,omitempty"`
	Links    []Link    `json:"links,omitempty"`
}

// Avatar is either an inline image or the first character of the name.
type Avatar struct {
	ImageURL string `json:"imageUrl,omitempty"`
	Initial  string `json:"initial,omitempty"`
}

// HasImage reports whether the avatar renders a picture.
func (a Avatar) HasImage() bool {
	return a.ImageURL != ""
}

// Contact is a plain-text contact detail.
type Contact struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

// Link is a social or personal link.
type Link struct {
	Kind  string `json:"kind"`
	Label string `json:"label"`
	Href  string `json:"href"`
}

// ExperienceView is a renderable work history entry.
type ExperienceView struct {
	Title       string `json:"title,omitempty"`
	Company     string `json:"company,omitempty"`
	Duration    string `json:"duration,omitempty"`
	Description string `json:"description,omitempty"`
}

// EducationView is a renderable education entry.
type EducationView struct {
	Degree      string `json:"degree,omitempty"`
	Institution string `json:"institution,omitempty"`
	Year        string `json:"year,omitempty"`
}

// ProjectView is a renderable project with its parsed technology tags.
type ProjectView struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Href        string   `json:"href,omitempty"`
}

// Has reports whether the section is visible.
func (v View) Has(section Section) bool {
	if v.Empty {
		return false
	}
	switch section {
	case SectionAbout:
		return v.About != ""
	case SectionSkills:
		return len(v.Skills) > 0
	case SectionExperience:
		return len(v.Experience) > 0
	case SectionEducation:
		return len(v.Education) > 0
	case SectionProjects:
		return len(v.Projects) > 0
	default:
		return false
	}
}

// Sections lists the visible sections in display order.
func (v View) Sections() []Section {
	out := make([]Section, 0, len(SectionOrder))
	for _, section := range SectionOrder {
		if v.Has(section) {
			out = append(out, section)
		}
	}
	return out
}

// BuildView projects p into a View. It is pure: the same profile always
// yields the same view, and blank entries are skipped without reordering the
// rest.
func BuildView(p profile.Profile) View {
	info := p.PersonalInfo
	if info.Name == "" {
		return View{Empty: true}
	}

	view := View{
		Header: Header{
			Name:     info.Name,
			Title:    info.Title,
			Avatar:   avatarFor(p),
			Contacts: contactsFor(info),
			Links:    linksFor(info),
		},
		About: info.Bio,
	}

	for _, skill := range p.Skills {
		if profile.SkillRenderable(skill) {
			view.Skills = append(view.Skills, skill)
		}
	}
	for _, exp := range p.Experience {
		if exp.Renderable() {
			view.Experience = append(view.Experience, ExperienceView(exp))
		}
	}
	for _, edu := range p.Education {
		if edu.Renderable() {
			view.Education = append(view.Education, EducationView(edu))
		}
	}
	for _, project := range p.Projects {
		if project.Renderable() {
			view.Projects = append(view.Projects, ProjectView{
				Name:        project.Name,
				Description: project.Description,
				Tags:        visibleTags(project),
				Href:        SafeHref(project.Link),
			})
		}
	}
	return view
}

func avatarFor(p profile.Profile) Avatar {
	if image := strings.TrimSpace(p.ProfileImage); IsImageDataURL(image) {
		return Avatar{ImageURL: image}
	}
	r, size := utf8.DecodeRuneInString(p.PersonalInfo.Name)
	if size == 0 {
		return Avatar{}
	}
	return Avatar{Initial: string(r)}
}

func contactsFor(info profile.PersonalInfo) []Contact {
	var out []Contact
	for _, c := range []Contact{
		{Kind: "email", Value: info.Email},
		{Kind: "phone", Value: info.Phone},
		{Kind: "location", Value: info.Location},
	} {
		if c.Value != "" {
			out = append(out, c)
		}
	}
	return out
}

func linksFor(info profile.PersonalInfo) []Link {
	var out []Link
	if info.Website != "" {
		out = append(out, Link{Kind: "website", Label: "Website", Href: SafeHref(info.Website)})
	}
	if info.LinkedIn != "" {
		out = append(out, Link{Kind: "linkedin", Label: "LinkedIn", Href: SocialHref(info.LinkedIn)})
	}
	if info.GitHub != "" {
		out = append(out, Link{Kind: "github", Label: "GitHub", Href: SocialHref(info.GitHub)})
	}
	return out
}

func visibleTags(p profile.Project) []string {
	var out []string
	for _, tag := range p.Tags() {
		if tag != "" {
			out = append(out, tag)
		}
	}
	return out
}
