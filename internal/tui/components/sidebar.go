package components

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sstrand/romdeck/internal/domain"
	"github.com/sstrand/romdeck/internal/tui/styles"
)

// Sidebar lists the search scopes: a synthetic "All Systems" row followed by
// the static system table.
type Sidebar struct {
	systems []domain.System
	counts  map[string]int // systemID -> game count, filled after a fetch
	cursor  int
	width   int
	height  int
	focused bool
}

// NewSidebar creates the scope sidebar.
func NewSidebar(systems []domain.System) Sidebar {
	return Sidebar{
		systems: systems,
		counts:  make(map[string]int),
	}
}

// SetSize updates the component dimensions
func (s *Sidebar) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// SetFocused sets the focus state
func (s *Sidebar) SetFocused(focused bool) {
	s.focused = focused
}

// SetCount records the game count for a system.
func (s *Sidebar) SetCount(systemID string, count int) {
	s.counts[systemID] = count
}

// SelectedSystem returns the system under the cursor, or nil for the
// "All Systems" row.
func (s Sidebar) SelectedSystem() *domain.System {
	if s.cursor == 0 {
		return nil
	}
	sys := s.systems[s.cursor-1]
	return &sys
}

// SelectSystem moves the cursor onto the given system ID, or onto
// "All Systems" for an empty ID.
func (s *Sidebar) SelectSystem(systemID string) {
	if systemID == "" {
		s.cursor = 0
		return
	}
	for i, sys := range s.systems {
		if sys.ID == systemID {
			s.cursor = i + 1
			return
		}
	}
}

// Update handles messages
func (s Sidebar) Update(msg tea.Msg) (Sidebar, tea.Cmd) {
	if !s.focused {
		return s, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if s.cursor < len(s.systems) {
				s.cursor++
			}
		case "k", "up":
			if s.cursor > 0 {
				s.cursor--
			}
		case "g":
			s.cursor = 0
		case "G":
			s.cursor = len(s.systems)
		}
	}

	return s, nil
}

// View renders the component
func (s Sidebar) View() string {
	style := styles.InactiveBorder
	if s.focused {
		style = styles.ActiveBorder
	}

	itemWidth := s.width - 4
	var lines []string
	lines = append(lines, s.renderRow("All Systems", "", s.cursor == 0, itemWidth))

	for i, sys := range s.systems {
		badge := ""
		if count, ok := s.counts[sys.ID]; ok {
			badge = fmt.Sprintf("%d", count)
		}
		lines = append(lines, s.renderRow(sys.Name, badge, s.cursor == i+1, itemWidth))
	}

	content := strings.Join(lines, "\n")

	frameW, frameH := style.GetFrameSize()
	return style.
		Width(s.width - frameW).
		Height(s.height - frameH).
		Render(content)
}

func (s Sidebar) renderRow(name, badge string, selected bool, width int) string {
	label := styles.Truncate(name, width-len(badge)-1)
	if badge != "" {
		pad := width - len(label) - len(badge)
		if pad < 1 {
			pad = 1
		}
		label += strings.Repeat(" ", pad) + badge
	}
	if selected {
		return styles.SelectedItemStyle.Render(label)
	}
	return styles.NormalItemStyle.Render(label)
}
