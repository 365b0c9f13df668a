package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-portfolio/pkg/catalog"
	"github.com/goliatone/go-portfolio/pkg/editor"
	"github.com/goliatone/go-portfolio/pkg/profile"
)

// Theme captures optional prefixes applied to section banners.
type Theme struct {
	InfoPrefix string
}

// Option configures the Filler.
type Option func(*Filler)

// WithPromptDriver overrides the prompt driver used by the filler.
func WithPromptDriver(driver PromptDriver) Option {
	return func(f *Filler) {
		if driver != nil {
			f.driver = driver
		}
	}
}

// WithCatalog sets the catalog offered by the template prompt.
func WithCatalog(c *catalog.Catalog) Option {
	return func(f *Filler) {
		if c != nil {
			f.catalog = c
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(f *Filler) {
		f.theme = theme
	}
}

// Filler walks the user through every section of a profile.
type Filler struct {
	driver  PromptDriver
	catalog *catalog.Catalog
	theme   Theme
}

// Result reports choices made outside the profile itself.
type Result struct {
	Template string
}

// New constructs a Filler. The survey driver and embedded catalog are used
// unless overridden.
func New(options ...Option) *Filler {
	f := &Filler{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	if f.driver == nil {
		f.driver = NewSurveyDriver(nil)
	}
	if f.catalog == nil {
		f.catalog = catalog.Default()
	}
	return f
}

var fieldLabels = map[string]string{
	profile.FieldName:         "Name",
	profile.FieldTitle:        "Title",
	profile.FieldEmail:        "Email",
	profile.FieldPhone:        "Phone",
	profile.FieldLocation:     "Location",
	profile.FieldWebsite:      "Website",
	profile.FieldLinkedIn:     "LinkedIn",
	profile.FieldGitHub:       "GitHub",
	profile.FieldBio:          "Bio",
	profile.FieldCompany:      "Company",
	profile.FieldDuration:     "Duration",
	profile.FieldDescription:  "Description",
	profile.FieldDegree:       "Degree",
	profile.FieldInstitution:  "Institution",
	profile.FieldYear:         "Year",
	profile.FieldTechnologies: "Technologies (comma separated)",
	profile.FieldLink:         "Link",
	profile.FieldValue:        "Skill",
}

var sectionTitles = map[profile.Section]string{
	profile.SectionPersonalInfo: "Personal Information",
	profile.SectionSkills:       "Skills",
	profile.SectionExperience:   "Experience",
	profile.SectionEducation:    "Education",
	profile.SectionProjects:     "Projects",
}

var entryNouns = map[profile.Section]string{
	profile.SectionSkills:     "skill",
	profile.SectionExperience: "experience",
	profile.SectionEducation:  "education entry",
	profile.SectionProjects:   "project",
}

// Fill prompts personal info, then each repeatable list with "add another?"
// confirmations, then the template. Existing values are offered as defaults.
// Every answer goes through ed, so observers see each change.
func (f *Filler) Fill(ctx context.Context, ed *editor.Editor) (Result, error) {
	if ed == nil {
		return Result{}, errors.New("tui: editor is required")
	}

	if err := f.fillPersonalInfo(ctx, ed); err != nil {
		return Result{}, err
	}
	for _, section := range profile.RepeatableSections {
		if err := f.fillList(ctx, ed, section); err != nil {
			return Result{}, err
		}
	}

	id, err := f.selectTemplate(ctx)
	if err != nil {
		return Result{}, err
	}
	return Result{Template: id}, nil
}

func (f *Filler) fillPersonalInfo(ctx context.Context, ed *editor.Editor) error {
	if err := f.banner(ctx, profile.SectionPersonalInfo); err != nil {
		return err
	}
	for _, field := range profile.Fields(profile.SectionPersonalInfo) {
		if err := f.promptField(ctx, ed, profile.SectionPersonalInfo, 0, field, ""); err != nil {
			return err
		}
	}
	return nil
}

func (f *Filler) fillList(ctx context.Context, ed *editor.Editor, section profile.Section) error {
	if err := f.banner(ctx, section); err != nil {
		return err
	}
	noun := entryNouns[section]
	for index := 0; ; index++ {
		prefix := fmt.Sprintf("%s #%d", capitalize(noun), index+1)
		for _, field := range profile.Fields(section) {
			if err := f.promptField(ctx, ed, section, index, field, prefix); err != nil {
				return err
			}
		}
		if index+1 < ed.Profile().Len(section) {
			continue
		}
		more, err := f.driver.Confirm(ctx, ConfirmConfig{Message: "Add another " + noun + "?"})
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
		if err := ed.AddEntry(section); err != nil {
			return fmt.Errorf("tui: add %s: %w", noun, err)
		}
	}
}

func (f *Filler) promptField(ctx context.Context, ed *editor.Editor, section profile.Section, index int, field, prefix string) error {
	current, _ := ed.Profile().Value(section, index, field)
	label := fieldLabels[field]
	if prefix != "" && section != profile.SectionSkills {
		label = prefix + " " + strings.ToLower(label)
	} else if prefix != "" {
		label = prefix
	}

	var (
		value string
		err   error
	)
	switch field {
	case profile.FieldBio, profile.FieldDescription:
		value, err = f.driver.TextArea(ctx, TextAreaConfig{Message: label, Default: current})
	default:
		cfg := InputConfig{Message: label, Default: current}
		if section == profile.SectionPersonalInfo && field == profile.FieldName {
			cfg.Help = "Required to generate a portfolio"
			cfg.Validator = requireText
		}
		value, err = f.driver.Input(ctx, cfg)
	}
	if err != nil {
		return err
	}

	if err := ed.UpdateField(section, index, field, strings.TrimRight(value, "\r\n")); err != nil {
		return fmt.Errorf("tui: update %s.%s: %w", section, field, err)
	}
	return nil
}

func (f *Filler) selectTemplate(ctx context.Context) (string, error) {
	templates := f.catalog.List()
	options := make([]string, len(templates))
	defaultIndex := 0
	for i, tpl := range templates {
		options[i] = fmt.Sprintf("%s (%s) - %s", tpl.Name, tpl.Category, tpl.Description)
		if tpl.ID == f.catalog.DefaultID() {
			defaultIndex = i
		}
	}

	idx, err := f.driver.Select(ctx, SelectConfig{
		Message:      "Choose a template",
		Options:      options,
		DefaultIndex: defaultIndex,
		PageSize:     len(options),
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(templates) {
		return "", fmt.Errorf("%w: %d", ErrInvalidSelection, idx)
	}
	return templates[idx].ID, nil
}

func (f *Filler) banner(ctx context.Context, section profile.Section) error {
	return f.driver.Info(ctx, f.theme.InfoPrefix+sectionTitles[section])
}

func requireText(value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New("a value is required")
	}
	return nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
