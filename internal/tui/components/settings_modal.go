package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sstrand/romdeck/internal/tui/styles"
)

// SettingsModal edits the device address. Submitting a changed address is an
// expensive operation upstream (every in-flight request becomes stale), so
// the modal only reports a submit when the trimmed value is non-empty.
type SettingsModal struct {
	input   textinput.Model
	initial string
	width   int
}

// NewSettingsModal creates the modal pre-filled with the current address.
func NewSettingsModal(address string) SettingsModal {
	ti := textinput.New()
	ti.Placeholder = "mister"
	ti.Prompt = "> "
	ti.CharLimit = 64
	ti.SetValue(address)
	ti.CursorEnd()
	ti.Focus()

	return SettingsModal{
		input:   ti,
		initial: address,
		width:   44,
	}
}

// Value returns the trimmed address in the input.
func (m SettingsModal) Value() string {
	return strings.TrimSpace(m.input.Value())
}

// Changed reports whether the input differs from the initial address.
func (m SettingsModal) Changed() bool {
	return m.Value() != m.initial
}

// Update handles keystrokes. The bool result is true when the user submitted
// a usable address with enter.
func (m SettingsModal) Update(msg tea.Msg) (SettingsModal, tea.Cmd, bool) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		if m.Value() == "" {
			return m, nil, false
		}
		return m, nil, true
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd, false
}

// View renders the modal box.
func (m SettingsModal) View() string {
	title := styles.ModalTitleStyle.Render("Device Address")
	hint := styles.DimStyle.Render("enter: save · esc: cancel")

	content := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		m.input.View(),
		"",
		hint,
	)

	return styles.ModalStyle.Width(m.width).Render(content)
}
