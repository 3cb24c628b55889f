package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Preview is one pending rewrite awaiting user confirmation
type Preview struct {
	Path   string
	Before string
	After  string
}

// ApplyFunc commits one accepted preview
type ApplyFunc func(Preview) error

// ============================================================================
// Preview Model
// ============================================================================

type previewModel struct {
	previews []Preview
	apply    ApplyFunc

	idx      int
	accepted int
	skipped  int

	viewport viewport.Model
	ready    bool
	err      error
	done     bool
}

func newPreviewModel(previews []Preview, apply ApplyFunc) previewModel {
	return previewModel{previews: previews, apply: apply}
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		headerHeight := 2
		footerHeight := 2
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			m.ready = true
			m.setContent()
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerHeight - footerHeight
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.done = true
			return m, tea.Quit
		case "enter", "y":
			if err := m.apply(m.previews[m.idx]); err != nil {
				m.err = err
				m.done = true
				return m, tea.Quit
			}
			m.accepted++
			return m.advance()
		case "n", "s":
			m.skipped++
			return m.advance()
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m previewModel) advance() (tea.Model, tea.Cmd) {
	m.idx++
	if m.idx >= len(m.previews) {
		m.done = true
		return m, tea.Quit
	}
	m.setContent()
	return m, nil
}

func (m *previewModel) setContent() {
	if !m.ready {
		return
	}
	p := m.previews[m.idx]
	diff := RenderDiff(p.Path, p.Before, p.After)
	if diff == "" {
		diff = styles.Dim.Render("no changes")
	}
	m.viewport.SetContent(diff)
	m.viewport.GotoTop()
}

func (m previewModel) View() string {
	if m.done || !m.ready {
		return ""
	}

	p := m.previews[m.idx]
	header := styles.Header.Render(fmt.Sprintf("blocksub preview • %s (%d/%d)", p.Path, m.idx+1, len(m.previews)))
	footer := styles.Dim.Render("enter/y apply • n/s skip • ↑/↓ scroll • q quit")

	var sb strings.Builder
	sb.WriteString(header)
	sb.WriteString("\n\n")
	sb.WriteString(m.viewport.View())
	sb.WriteString("\n")
	sb.WriteString(footer)
	return sb.String()
}

// ============================================================================
// Entry Point
// ============================================================================

// RunPreview steps through the pending rewrites interactively, applying the
// ones the user accepts. It returns how many previews were accepted.
func RunPreview(previews []Preview, apply ApplyFunc) (int, error) {
	if len(previews) == 0 {
		return 0, nil
	}

	p := tea.NewProgram(newPreviewModel(previews, apply), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return 0, err
	}

	m, ok := final.(previewModel)
	if !ok {
		return 0, fmt.Errorf("unexpected model type %T", final)
	}
	if m.err != nil {
		return m.accepted, m.err
	}
	return m.accepted, nil
}
