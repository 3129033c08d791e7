package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sstrand/romdeck/internal/domain"
	"github.com/sstrand/romdeck/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "loading..."
	}

	switch m.State {
	case StateSettings:
		return m.overlay(m.SettingsModal.View())
	case StateHelp:
		return m.overlay(m.renderHelp())
	case StateLaunchFailed:
		return m.overlay(m.renderLaunchFailure())
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.Sidebar.View(), m.Grid.View()))
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderHeader() string {
	title := styles.TitleStyle.Render(" romdeck ")
	scope := styles.AccentStyle.Render(m.Scope.Label())
	device := styles.DimStyle.Render("@" + m.SessionSvc.Address())

	left := lipgloss.JoinHorizontal(lipgloss.Center, title, " ", scope, " ", device)

	var right string
	if m.Scope.IsGlobal() && m.State == StateReady {
		right = m.searchInput.View()
	}

	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(right) - 1
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m Model) renderFooter() string {
	var left string
	switch {
	case m.StatusIsErr && m.StatusMsg != "":
		left = styles.ErrorStyle.Render(m.StatusMsg)
	case m.State == StateIndexing:
		left = styles.SpinnerStyle.Render(spinnerFrame(m.SpinnerFrame)) +
			styles.DimStyle.Render(" indexing device library...")
	case m.Pending:
		left = styles.SpinnerStyle.Render(spinnerFrame(m.SpinnerFrame)) +
			styles.DimStyle.Render(" searching...")
	case m.StatusMsg != "":
		left = styles.SuccessStyle.Render(m.StatusMsg)
	default:
		left = m.renderFocusLine()
	}

	right := styles.DimStyle.Render("? help · q quit")

	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(right) - 1
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

// renderFocusLine shows the focused tile's boxart URL, resolved through the
// persistent thumbnail cache.
func (m Model) renderFocusLine() string {
	game := m.Grid.SelectedGame()
	if game == nil {
		if m.Total > 0 {
			return styles.DimStyle.Render(fmt.Sprintf("%d games", m.Total))
		}
		return ""
	}

	line := styles.AccentStyle.Render(game.Name)
	if sys, ok := domain.SystemByID(game.System.ID); ok {
		line += styles.DimStyle.Render("  " + m.Thumbs.Resolve(sys, game.Name))
	}
	return line
}

func (m Model) renderHelp() string {
	rows := [][2]string{
		{"tab", "switch pane"},
		{"enter", "select system / launch game"},
		{"f", "global search"},
		{"/", "filter current system"},
		{"[ ]", "prev / next page"},
		{"h j k l", "move focus"},
		{"R", "rebuild device index"},
		{"s", "device settings"},
		{"esc", "clear search / filter"},
		{"q", "quit"},
	}

	var b strings.Builder
	b.WriteString(styles.ModalTitleStyle.Render("Keys"))
	b.WriteString("\n\n")
	for _, row := range rows {
		b.WriteString(styles.HelpKeyStyle.Render(fmt.Sprintf("%-10s", row[0])))
		b.WriteString(styles.HelpDescStyle.Render(row[1]))
		b.WriteString("\n")
	}
	return styles.ModalStyle.Render(b.String())
}

func (m Model) renderLaunchFailure() string {
	if m.LaunchErr == nil {
		return ""
	}
	launchErr := domain.LaunchError{Game: m.LaunchErr.Game, Err: m.LaunchErr.Err}
	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.ModalTitleStyle.Render("Launch failed"),
		"",
		styles.ErrorStyle.Render(launchErr.Error()),
		"",
		styles.DimStyle.Render("press any key"),
	)
	return styles.ModalErrorStyle.Width(50).Render(content)
}

// overlay centers a modal over a blank background.
func (m Model) overlay(modal string) string {
	return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, modal)
}

func spinnerFrame(frame int) string {
	return styles.SpinnerFrames[frame%len(styles.SpinnerFrames)]
}
