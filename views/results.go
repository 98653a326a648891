package views

import (
	"fmt"
	"strings"

	"eTEats_recipes/controller"
	"eTEats_recipes/models"
)

const NoResultsMessage = "No recipes found for your query! Please try again ;)"

// ResultsView lists one page of search results, marking the recipe the
// location points at.
type ResultsView struct {
	screen   *Screen
	location controller.Location
}

func NewResultsView(s *Screen, loc controller.Location) *ResultsView {
	return &ResultsView{screen: s, location: loc}
}

func (v *ResultsView) Render(results []models.SearchResult) {
	if len(results) == 0 {
		v.RenderError("")
		return
	}
	v.screen.set(sectionResults, v.markup(results))
}

func (v *ResultsView) Update(results []models.SearchResult) {
	if len(results) == 0 {
		return
	}
	v.screen.update(sectionResults, v.markup(results))
}

func (v *ResultsView) RenderSpinner() {
	v.screen.set(sectionResults, v.screen.styles.muted.Render(spinnerText))
}

func (v *ResultsView) RenderError(msg string) {
	if msg == "" {
		msg = NoResultsMessage
	}
	v.screen.set(sectionResults, v.screen.styles.errText.Render(iconError+" "+msg))
}

func (v *ResultsView) markup(results []models.SearchResult) string {
	return previewList(v.screen.styles, results2previews(results), v.location.Fragment())
}

type preview struct {
	id, title, publisher string
	own                  bool
}

func results2previews(rs []models.SearchResult) []preview {
	out := make([]preview, len(rs))
	for i, r := range rs {
		out[i] = preview{id: r.ID, title: r.Title, publisher: r.Publisher, own: r.Key != ""}
	}
	return out
}

func previewList(st styles, ps []preview, selected string) string {
	var b strings.Builder
	for i, p := range ps {
		if i > 0 {
			b.WriteString("\n")
		}
		title := p.title
		if p.own {
			title += " (yours)"
		}
		if p.id == selected {
			fmt.Fprintf(&b, "%s %s  %s", iconSelected, st.selected.Render(title), st.muted.Render(p.publisher+" · #"+p.id))
			continue
		}
		fmt.Fprintf(&b, "  %s  %s", title, st.muted.Render(p.publisher+" · #"+p.id))
	}
	return b.String()
}

// PaginationView shows the current page and the pages reachable from it.
type PaginationView struct {
	screen  *Screen
	handler controller.PaginationHandler
}

func NewPaginationView(s *Screen) *PaginationView { return &PaginationView{screen: s} }

func (v *PaginationView) Subscribe(h controller.PaginationHandler) { v.handler = h }

// Click goes to page.
func (v *PaginationView) Click(page int) {
	if v.handler != nil {
		v.handler.ControlPagination(page)
	}
}

func (v *PaginationView) Render(s models.SearchState) {
	v.screen.set(sectionPagination, v.markup(s))
}

func (v *PaginationView) markup(s models.SearchState) string {
	st := v.screen.styles
	pages := s.NumPages()
	cur := s.Page

	// a single page needs no buttons, and a page past the end has none to offer
	if pages <= 1 || cur > pages {
		return ""
	}

	var parts []string
	if cur > 1 {
		parts = append(parts, st.muted.Render(fmt.Sprintf("← Page %d", cur-1)))
	}
	parts = append(parts, st.heading.Render(fmt.Sprintf("Page %d of %d", cur, pages)))
	if cur < pages {
		parts = append(parts, st.muted.Render(fmt.Sprintf("Page %d →", cur+1)))
	}
	return strings.Join(parts, "   ")
}
