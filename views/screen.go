// Package views renders the recipe application to a terminal.
//
// Each view owns one section of a Screen. Render replaces the section,
// Update redraws it only if something is already shown there, and Print
// writes every non-empty section in a fixed order.
package views

import (
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

type section int

const (
	sectionMessage section = iota
	sectionRecipe
	sectionResults
	sectionPagination
	sectionBookmarks
	numSections
)

type Screen struct {
	mu       sync.Mutex
	sections [numSections]string
	styles   styles
}

// NewScreen builds a screen whose colors match what w supports.
func NewScreen(w io.Writer) *Screen {
	return &Screen{styles: newStyles(lipgloss.NewRenderer(w))}
}

func (s *Screen) set(sec section, content string) {
	s.mu.Lock()
	s.sections[sec] = content
	s.mu.Unlock()
}

// update only redraws a section that already shows something.
func (s *Screen) update(sec section, content string) {
	s.mu.Lock()
	if s.sections[sec] != "" {
		s.sections[sec] = content
	}
	s.mu.Unlock()
}

func (s *Screen) get(sec section) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sections[sec]
}

// Print writes the screen to w and clears it.
func (s *Screen) Print(w io.Writer) error {
	s.mu.Lock()
	parts := make([]string, 0, numSections)
	for i, c := range s.sections {
		if c != "" {
			parts = append(parts, c)
		}
		s.sections[i] = ""
	}
	s.mu.Unlock()

	if len(parts) == 0 {
		return nil
	}
	_, err := io.WriteString(w, strings.Join(parts, "\n\n")+"\n")
	return err
}
