// model.go is the bubbletea model behind the interactive prompt: a single
// line text input with an optional list of tag suggestions underneath.
//
// Keys: tab accepts the highlighted suggestion, up/down move the highlight,
// enter submits, esc and ctrl+c abort.

package prompt

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// maxSuggestions caps how many suggestions are drawn.
const maxSuggestions = 8

var (
	labelStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FD7FF")).Bold(true)
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080")).PaddingLeft(2)
	selectedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00D787")).PaddingLeft(2).Bold(true)
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#585858"))
)

type model struct {
	label       string
	input       textinput.Model
	completer   *Completer
	suggestions []string
	selected    int
	done        bool
	aborted     bool
}

func newModel(label string, c *Completer) model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Focus()
	return model{label: label, input: ti, completer: c}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.aborted = true
			return m, tea.Quit
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		case tea.KeyTab:
			if len(m.suggestions) > 0 {
				m.input.SetValue(m.completer.Complete(m.input.Value(), m.suggestions[m.selected]))
				m.input.CursorEnd()
				m.refresh()
			}
			return m, nil
		case tea.KeyDown:
			if len(m.suggestions) > 0 {
				m.selected = (m.selected + 1) % len(m.suggestions)
			}
			return m, nil
		case tea.KeyUp:
			if len(m.suggestions) > 0 {
				m.selected = (m.selected - 1 + len(m.suggestions)) % len(m.suggestions)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.refresh()
	return m, cmd
}

// refresh recomputes suggestions for the current input.
func (m *model) refresh() {
	m.selected = 0
	if m.completer == nil {
		m.suggestions = nil
		return
	}
	m.suggestions = m.completer.Suggest(m.input.Value())
	if len(m.suggestions) > maxSuggestions {
		m.suggestions = m.suggestions[:maxSuggestions]
	}
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(labelStyle.Render(m.label))
	b.WriteString(" ")
	if m.done || m.aborted {
		b.WriteString(m.input.Value())
		b.WriteString("\n")
		return b.String()
	}
	b.WriteString(m.input.View())
	b.WriteString("\n")
	for i, s := range m.suggestions {
		if i == m.selected {
			b.WriteString(selectedStyle.Render("> " + s))
		} else {
			b.WriteString(suggestionStyle.Render("  " + s))
		}
		b.WriteString("\n")
	}
	if len(m.suggestions) > 0 {
		b.WriteString(hintStyle.Render("tab to complete, enter to accept"))
		b.WriteString("\n")
	}
	return b.String()
}
