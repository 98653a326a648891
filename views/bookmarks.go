package views

import (
	"eTEats_recipes/controller"
	"eTEats_recipes/models"
)

const NoBookmarksMessage = "No bookmarks yet. Find a nice recipe and bookmark it ;)"

type BookmarksView struct {
	screen   *Screen
	location controller.Location
	handler  controller.BookmarksHandler
}

func NewBookmarksView(s *Screen, loc controller.Location) *BookmarksView {
	return &BookmarksView{screen: s, location: loc}
}

func (v *BookmarksView) Subscribe(h controller.BookmarksHandler) { v.handler = h }

// Load is raised once when the application starts.
func (v *BookmarksView) Load() {
	if v.handler != nil {
		v.handler.ControlBookmarks()
	}
}

func (v *BookmarksView) Render(bookmarks []models.Recipe) {
	v.screen.set(sectionBookmarks, v.markup(bookmarks))
}

func (v *BookmarksView) Update(bookmarks []models.Recipe) {
	v.screen.update(sectionBookmarks, v.markup(bookmarks))
}

func (v *BookmarksView) markup(bookmarks []models.Recipe) string {
	st := v.screen.styles
	head := st.heading.Render("Bookmarks")
	if len(bookmarks) == 0 {
		return head + "\n" + st.muted.Render(NoBookmarksMessage)
	}
	ps := make([]preview, len(bookmarks))
	for i, b := range bookmarks {
		ps[i] = preview{id: b.ID, title: b.Title, publisher: b.Publisher, own: b.Key != ""}
	}
	return head + "\n" + previewList(st, ps, v.location.Fragment())
}
