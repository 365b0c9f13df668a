package layout

import (
	"github.com/goliatone/go-portfolio/pkg/render"
	"github.com/goliatone/go-portfolio/pkg/render/markup"
)

// modernLayout is the card-and-gradient family.
type modernLayout struct{}

func (modernLayout) Name() string { return Modern }

func (modernLayout) Build(view render.View, opts Options) *markup.Node {
	if view.Empty {
		return container(Modern, opts, emptyState())
	}

	body := markup.El("main", markup.Class("portfolio-body"))
	for _, id := range view.Sections() {
		body.Append(modernSection(view, id))
	}

	return container(Modern, opts,
		markup.El("div", markup.Class("portfolio-preview", "modern-template"),
			modernHeader(view.Header),
			body,
		),
	)
}

func modernHeader(h render.Header) *markup.Node {
	avatar := avatarImage(h, "portfolio-avatar")
	if avatar == nil {
		avatar = markup.El("div", markup.Attrs("class", "portfolio-avatar portfolio-initial", "aria-hidden", "true"),
			markup.Text(h.Avatar.Initial),
		)
	}
	return markup.El("header", markup.Class("portfolio-header"),
		avatar,
		markup.El("h1", markup.Class("portfolio-name"), markup.Text(h.Name)),
		textEl("p", "portfolio-title", h.Title),
		contactList(h.Contacts, "portfolio-contacts"),
		linkList(h.Links, "portfolio-links"),
	)
}

func modernSection(view render.View, id render.Section) *markup.Node {
	const class = "portfolio-section"
	switch id {
	case render.SectionAbout:
		return section(id, class, "About Me", textEl("p", "about-text", view.About))
	case render.SectionSkills:
		list := markup.El("div", markup.Class("skill-list"))
		for _, skill := range view.Skills {
			list.Append(markup.El("span", markup.Class("skill-badge"), markup.Text(skill)))
		}
		return section(id, class, "Skills", list)
	case render.SectionExperience:
		list := markup.El("div", markup.Class("entry-list"))
		for _, exp := range view.Experience {
			list.Append(markup.El("article", markup.Class("portfolio-card", "experience-entry"),
				markup.El("div", markup.Class("card-head"),
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
			list.Append(markup.El("article", markup.Class("portfolio-card", "education-entry"),
				markup.El("div", markup.Class("card-head"),
					markup.El("div", nil,
						textEl("h3", "entry-title", edu.Degree),
						textEl("p", "entry-subtitle", edu.Institution),
					),
					textEl("span", "entry-date", edu.Year),
				),
			))
		}
		return section(id, class, "Education", list)
	case render.SectionProjects:
		grid := markup.El("div", markup.Class("project-grid"))
		for _, project := range view.Projects {
			card := markup.El("article", markup.Class("portfolio-card", "project-entry"),
				markup.El("div", markup.Class("card-head"),
					markup.El("h3", markup.Class("entry-title"), markup.Text(project.Name)),
					projectLink(project.Href, "project-link", true),
				),
				textEl("p", "entry-description", project.Description),
			)
			if len(project.Tags) > 0 {
				tags := markup.El("div", markup.Class("tag-list"))
				for _, tag := range project.Tags {
					tags.Append(markup.El("span", markup.Class("tag"), markup.Text(tag)))
				}
				card.Append(tags)
			}
			grid.Append(card)
		}
		return section(id, class, "Projects", grid)
	default:
		return nil
	}
}
