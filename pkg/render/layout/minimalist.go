package layout

import (
	"strings"

	"github.com/goliatone/go-portfolio/pkg/render"
	"github.com/goliatone/go-portfolio/pkg/render/markup"
)

// minimalistLayout is the sparse single-column family. It shows no initial
// placeholder when there is no picture and lists technologies as plain text.
type minimalistLayout struct{}

func (minimalistLayout) Name() string { return Minimalist }

func (minimalistLayout) Build(view render.View, opts Options) *markup.Node {
	if view.Empty {
		return container(Minimalist, opts, emptyState())
	}

	h := view.Header
	header := markup.El("header", markup.Class("minimal-header"),
		avatarImage(h, "minimal-avatar"),
		markup.El("h1", markup.Class("portfolio-name"), markup.Text(h.Name)),
		textEl("p", "portfolio-title", h.Title),
		contactList(h.Contacts, "minimal-contacts"),
		linkList(h.Links, "minimal-links"),
	)

	page := markup.El("div", markup.Class("portfolio-preview", "minimalist-template"), header)
	for _, id := range view.Sections() {
		page.Append(minimalistSection(view, id))
	}
	return container(Minimalist, opts, page)
}

func minimalistSection(view render.View, id render.Section) *markup.Node {
	const class = "minimal-section"
	switch id {
	case render.SectionAbout:
		return section(id, class, "About", textEl("p", "about-text", view.About))
	case render.SectionSkills:
		list := markup.El("div", markup.Class("skill-list"))
		for _, skill := range view.Skills {
			list.Append(markup.El("span", markup.Class("skill-pill"), markup.Text(skill)))
		}
		return section(id, class, "Skills", list)
	case render.SectionExperience:
		list := markup.El("div", markup.Class("timeline"))
		for _, exp := range view.Experience {
			list.Append(markup.El("div", markup.Class("timeline-entry"),
				markup.El("div", markup.Class("entry-head"),
					markup.El("div", nil,
						textEl("h3", "entry-title", exp.Title),
						textEl("p", "entry-subtitle", exp.Company),
					),
					textEl("span", "entry-date", exp.Duration),
				),
				textEl("p", "entry-description", exp.Description),
			))
		}
		return section(id, class, "Experience", list)
	case render.SectionEducation:
		list := markup.El("div", markup.Class("entry-list"))
		for _, edu := range view.Education {
			list.Append(markup.El("div", markup.Class("entry-head", "education-entry"),
				markup.El("div", nil,
					textEl("h3", "entry-title", edu.Degree),
					textEl("p", "entry-subtitle", edu.Institution),
				),
				textEl("span", "entry-date", edu.Year),
			))
		}
		return section(id, class, "Education", list)
	case render.SectionProjects:
		list := markup.El("div", markup.Class("entry-list"))
		for _, project := range view.Projects {
			list.Append(markup.El("div", markup.Class("project-entry"),
				markup.El("div", markup.Class("entry-head"),
					markup.El("h3", markup.Class("entry-title"), markup.Text(project.Name)),
					projectLink(project.Href, "project-link", false),
				),
				textEl("p", "entry-description", project.Description),
				textEl("p", "technologies", strings.Join(project.Tags, ", ")),
			))
		}
		return section(id, class, "Projects", list)
	default:
		return nil
	}
}
