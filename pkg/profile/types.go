package profile

// PersonalInfo groups the scalar header fields of a profile.
type PersonalInfo struct {
	Name     string `json:"name" yaml:"name" validate:"max=200"`
	Title    string `json:"title" yaml:"title" validate:"max=200"`
	Email    string `json:"email" yaml:"email" validate:"max=320"`
	Phone    string `json:"phone" yaml:"phone" validate:"max=64"`
	Location string `json:"location" yaml:"location" validate:"max=200"`
	Website  string `json:"website" yaml:"website" validate:"max=2048"`
	LinkedIn string `json:"linkedin" yaml:"linkedin" validate:"max=2048"`
	GitHub   string `json:"github" yaml:"github" validate:"max=2048"`
	Bio      string `json:"bio" yaml:"bio" validate:"max=10000"`
}

// Experience is a single work history entry.
type Experience struct {
	Title       string `json:"title" yaml:"title" validate:"max=200"`
	Company     string `json:"company" yaml:"company" validate:"max=200"`
	Duration    string `json:"duration" yaml:"duration" validate:"max=100"`
	Description string `json:"description" yaml:"description" validate:"max=10000"`
}

// Education is a single education entry.
type Education struct {
	Degree      string `json:"degree" yaml:"degree" validate:"max=200"`
	Institution string `json:"institution" yaml:"institution" validate:"max=200"`
	Year        string `json:"year" yaml:"year" validate:"max=100"`
}

// Project is a single portfolio project. Technologies holds one
// comma-delimited string; see Tags.
type Project struct {
	Name         string `json:"name" yaml:"name" validate:"max=200"`
	Description  string `json:"description" yaml:"description" validate:"max=10000"`
	Technologies string `json:"technologies" yaml:"technologies" validate:"max=1000"`
	Link         string `json:"link" yaml:"link" validate:"max=2048"`
}

// Profile is the root entity of the portfolio. ProfileImage, when set, is a
// self-contained data URL so previews and exports never reference external
// files.
type Profile struct {
	PersonalInfo PersonalInfo `json:"personalInfo" yaml:"personalInfo"`
	Skills       []string     `json:"skills" yaml:"skills" validate:"min=1,dive,max=200"`
	Experience   []Experience `json:"experience" yaml:"experience" validate:"min=1,dive"`
	Education    []Education  `json:"education" yaml:"education" validate:"min=1,dive"`
	Projects     []Project    `json:"projects" yaml:"projects" validate:"min=1,dive"`
	ProfileImage string       `json:"profileImage,omitempty" yaml:"profileImage,omitempty" validate:"omitempty,datauri"`
}

// New returns a blank profile with a single empty slot in every repeatable
// list, matching the state of a freshly opened form.
func New() Profile {
	return Profile{
		Skills:     []string{""},
		Experience: []Experience{{}},
		Education:  []Education{{}},
		Projects:   []Project{{}},
	}
}

// Clone returns a deep copy whose slices never share backing arrays with p.
func (p Profile) Clone() Profile {
	out := p
	out.Skills = append([]string(nil), p.Skills...)
	out.Experience = append([]Experience(nil), p.Experience...)
	out.Education = append([]Education(nil), p.Education...)
	out.Projects = append([]Project(nil), p.Projects...)
	return out
}

// Normalize fills any empty repeatable list with one blank entry so the
// at-least-one invariant holds for profiles decoded from partial documents.
func (p Profile) Normalize() Profile {
	out := p.Clone()
	if len(out.Skills) == 0 {
		out.Skills = []string{""}
	}
	if len(out.Experience) == 0 {
		out.Experience = []Experience{{}}
	}
	if len(out.Education) == 0 {
		out.Education = []Education{{}}
	}
	if len(out.Projects) == 0 {
		out.Projects = []Project{{}}
	}
	return out
}

// HasImage reports whether an inline profile image is attached.
func (p Profile) HasImage() bool {
	return p.ProfileImage != ""
}
