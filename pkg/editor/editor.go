package editor

import (
	"context"
	"fmt"

	"github.com/goliatone/go-portfolio/pkg/avatar"
	"github.com/goliatone/go-portfolio/pkg/profile"
)

// Observer receives every new profile value after a successful mutation.
type Observer func(profile.Profile)

// Option customises an Editor.
type Option func(*Editor)

// WithObserver subscribes an observer at construction time.
func WithObserver(observer Observer) Option {
	return func(e *Editor) {
		if observer != nil {
			e.subscribe(observer)
		}
	}
}

// Editor owns the current profile value and the list of observers. It is not
// safe for concurrent use; callers serialise access the way a UI event loop
// would.
type Editor struct {
	current   profile.Profile
	observers []observerEntry
	nextID    int
}

type observerEntry struct {
	id int
	fn Observer
}

// New constructs an Editor seeded with initial. A zero-value profile is
// normalised so every list starts with one blank slot.
func New(initial profile.Profile, options ...Option) *Editor {
	e := &Editor{current: initial.Normalize()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	return e
}

// Profile returns a copy of the current profile.
func (e *Editor) Profile() profile.Profile {
	return e.current.Clone()
}

// Subscribe registers an observer and returns a function that removes it.
func (e *Editor) Subscribe(observer Observer) (cancel func()) {
	if observer == nil {
		return func() {}
	}
	id := e.subscribe(observer)
	return func() {
		for i, entry := range e.observers {
			if entry.id == id {
				e.observers = append(e.observers[:i:i], e.observers[i+1:]...)
				return
			}
		}
	}
}

func (e *Editor) subscribe(observer Observer) int {
	e.nextID++
	e.observers = append(e.observers, observerEntry{id: e.nextID, fn: observer})
	return e.nextID
}

// UpdateField replaces a single scalar field. For personalInfo the index is
// ignored; for skills the field must be "" or "value".
func (e *Editor) UpdateField(section profile.Section, index int, field, value string) error {
	next := e.current.Clone()

	switch section {
	case profile.SectionPersonalInfo:
		if !next.PersonalInfo.Set(field, value) {
			return fmt.Errorf("%w: %s.%s", ErrUnknownField, section, field)
		}
	case profile.SectionSkills:
		if field != "" && field != profile.FieldValue {
			return fmt.Errorf("%w: %s.%s", ErrUnknownField, section, field)
		}
		if err := checkIndex(section, index, len(next.Skills)); err != nil {
			return err
		}
		next.Skills[index] = value
	case profile.SectionExperience:
		if err := checkIndex(section, index, len(next.Experience)); err != nil {
			return err
		}
		if !next.Experience[index].Set(field, value) {
			return fmt.Errorf("%w: %s.%s", ErrUnknownField, section, field)
		}
	case profile.SectionEducation:
		if err := checkIndex(section, index, len(next.Education)); err != nil {
			return err
		}
		if !next.Education[index].Set(field, value) {
			return fmt.Errorf("%w: %s.%s", ErrUnknownField, section, field)
		}
	case profile.SectionProjects:
		if err := checkIndex(section, index, len(next.Projects)); err != nil {
			return err
		}
		if !next.Projects[index].Set(field, value) {
			return fmt.Errorf("%w: %s.%s", ErrUnknownField, section, field)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSection, section)
	}

	e.commit(next)
	return nil
}

// AddEntry appends a blank entry to the end of a repeatable list.
func (e *Editor) AddEntry(section profile.Section) error {
	next := e.current.Clone()

	switch section {
	case profile.SectionSkills:
		next.Skills = append(next.Skills, "")
	case profile.SectionExperience:
		next.Experience = append(next.Experience, profile.Experience{})
	case profile.SectionEducation:
		next.Education = append(next.Education, profile.Education{})
	case profile.SectionProjects:
		next.Projects = append(next.Projects, profile.Project{})
	case profile.SectionPersonalInfo:
		return fmt.Errorf("%w: %s", ErrNotRepeatable, section)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSection, section)
	}

	e.commit(next)
	return nil
}

// RemoveEntry deletes the entry at index. Lists never shrink below one entry.
func (e *Editor) RemoveEntry(section profile.Section, index int) error {
	if !section.Repeatable() {
		if section == profile.SectionPersonalInfo {
			return fmt.Errorf("%w: %s", ErrNotRepeatable, section)
		}
		return fmt.Errorf("%w: %q", ErrUnknownSection, section)
	}

	size := e.current.Len(section)
	if err := checkIndex(section, index, size); err != nil {
		return err
	}
	if size <= 1 {
		return fmt.Errorf("%w: %s", ErrLastEntry, section)
	}

	next := e.current.Clone()
	switch section {
	case profile.SectionSkills:
		next.Skills = removeAt(next.Skills, index)
	case profile.SectionExperience:
		next.Experience = removeAt(next.Experience, index)
	case profile.SectionEducation:
		next.Education = removeAt(next.Education, index)
	case profile.SectionProjects:
		next.Projects = removeAt(next.Projects, index)
	}

	e.commit(next)
	return nil
}

// CanRemove reports whether RemoveEntry would accept the section; UIs use it
// to disable remove controls.
func (e *Editor) CanRemove(section profile.Section) bool {
	return section.Repeatable() && e.current.Len(section) > 1
}

// SetImage attaches an inline image data URL.
func (e *Editor) SetImage(dataURL string) {
	next := e.current.Clone()
	next.ProfileImage = dataURL
	e.commit(next)
}

// ClearImage removes the profile image.
func (e *Editor) ClearImage() {
	next := e.current.Clone()
	next.ProfileImage = ""
	e.commit(next)
}

// ApplyImage waits for a one-shot image read and attaches the result. On
// failure, cancellation or a closed channel the profile is left unchanged.
func (e *Editor) ApplyImage(ctx context.Context, results <-chan avatar.Result) error {
	if results == nil {
		return avatar.ErrNoImage
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case res, ok := <-results:
		if !ok {
			return avatar.ErrNoImage
		}
		if res.Err != nil {
			return res.Err
		}
		if res.DataURL == "" {
			return avatar.ErrNoImage
		}
		e.SetImage(res.DataURL)
		return nil
	}
}

// Replace swaps the whole profile, for example after importing a document.
func (e *Editor) Replace(p profile.Profile) error {
	next := p.Normalize()
	if err := profile.Validate(next); err != nil {
		return err
	}
	e.commit(next)
	return nil
}

func (e *Editor) commit(next profile.Profile) {
	e.current = next
	observers := append([]observerEntry(nil), e.observers...)
	for _, entry := range observers {
		entry.fn(next.Clone())
	}
}

func checkIndex(section profile.Section, index, size int) error {
	if index < 0 || index >= size {
		return fmt.Errorf("%w: %s[%d] (len %d)", ErrIndexOutOfRange, section, index, size)
	}
	return nil
}

func removeAt[T any](items []T, index int) []T {
	out := make([]T, 0, len(items)-1)
	out = append(out, items[:index]...)
	return append(out, items[index+1:]...)
}
