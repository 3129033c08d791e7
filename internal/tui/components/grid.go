package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
	"github.com/sstrand/romdeck/internal/domain"
	"github.com/sstrand/romdeck/internal/pagination"
	"github.com/sstrand/romdeck/internal/tui/styles"
)

// Grid is the paginated tile grid over the current scope's game list. Focus
// is a plain integer index into the current page; the render layer turns it
// into the highlighted tile. The local filter narrows the already-fetched
// list without any network traffic.
type Grid struct {
	games []domain.GameEntry

	// Pagination and focus
	page     int
	pageSize int
	columns  int
	cursor   int // index within the current page

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	filterQuery  string
	filteredIdx  []int // indices into games

	// Dimensions
	width   int
	height  int
	focused bool
}

// NewGrid creates a grid with the given page geometry.
func NewGrid(columns, pageSize int) Grid {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	if columns < 1 {
		columns = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}

	return Grid{
		filterInput: ti,
		page:        1,
		pageSize:    pageSize,
		columns:     columns,
	}
}

// SetGames replaces the game list and resets filter, page and focus.
func (g *Grid) SetGames(games []domain.GameEntry) {
	g.games = games
	g.page = 1
	g.cursor = 0
	g.clearFilter()
}

// Clear drops the game list entirely.
func (g *Grid) Clear() {
	g.SetGames(nil)
}

// SetSize updates the component dimensions
func (g *Grid) SetSize(width, height int) {
	g.width = width
	g.height = height
}

// SetFocused sets the focus state
func (g *Grid) SetFocused(focused bool) {
	g.focused = focused
}

// Columns returns the grid's column count.
func (g Grid) Columns() int {
	return g.columns
}

// Cursor returns the focus index within the current page.
func (g Grid) Cursor() int {
	return g.cursor
}

// Page returns the current 1-based page.
func (g Grid) Page() int {
	return g.page
}

// TotalGames returns the size of the unfiltered list.
func (g Grid) TotalGames() int {
	return len(g.games)
}

// visible returns the filtered game list.
func (g Grid) visible() []domain.GameEntry {
	if g.filteredIdx == nil {
		return g.games
	}
	out := make([]domain.GameEntry, len(g.filteredIdx))
	for i, idx := range g.filteredIdx {
		out[i] = g.games[idx]
	}
	return out
}

// TotalPages returns the page count for the filtered list.
func (g Grid) TotalPages() int {
	return pagination.TotalPages(len(g.visible()), g.pageSize)
}

// PageItems returns the games on the current page.
func (g Grid) PageItems() []domain.GameEntry {
	return pagination.Page(g.visible(), g.pageSize, g.page)
}

// SelectedGame returns the focused game, or nil when the page is empty.
func (g Grid) SelectedGame() *domain.GameEntry {
	items := g.PageItems()
	if len(items) == 0 || g.cursor >= len(items) {
		return nil
	}
	game := items[g.cursor]
	return &game
}

// MoveFocus applies an arrow-key movement within the current page.
func (g *Grid) MoveFocus(dir Direction) {
	g.cursor = Move(g.cursor, dir, len(g.PageItems()), g.columns)
}

// NextPage advances one page, resetting focus to the first tile.
func (g *Grid) NextPage() {
	if g.page < g.TotalPages() {
		g.page++
		g.cursor = 0
	}
}

// PrevPage goes back one page, resetting focus to the first tile.
func (g *Grid) PrevPage() {
	if g.page > 1 {
		g.page--
		g.cursor = 0
	}
}

// ToggleFilter activates the filter input
func (g *Grid) ToggleFilter() {
	g.filterActive = true
	g.filterInput.Focus()
}

// IsFiltering returns true if filter mode is active
func (g Grid) IsFiltering() bool {
	return g.filterActive
}

// IsFilterTyping returns true if filter is active AND input is focused
func (g Grid) IsFilterTyping() bool {
	return g.filterActive && g.filterInput.Focused()
}

// FilterQuery returns the active filter text.
func (g Grid) FilterQuery() string {
	return g.filterQuery
}

// ClearFilter deactivates the filter and shows all items
func (g *Grid) ClearFilter() {
	g.clearFilter()
}

func (g *Grid) clearFilter() {
	g.filterActive = false
	g.filterQuery = ""
	g.filteredIdx = nil
	g.filterInput.SetValue("")
	g.filterInput.Blur()
}

// applyFilter narrows the in-memory list. Purely local: whatever the filter
// says, no network call happens here.
func (g *Grid) applyFilter() {
	query := g.filterInput.Value()
	g.filterQuery = query

	if query == "" {
		g.filteredIdx = nil
		g.page = 1
		g.cursor = 0
		return
	}

	names := make([]string, len(g.games))
	for i, game := range g.games {
		names[i] = strings.ToLower(game.Name)
	}

	matches := fuzzy.Find(strings.ToLower(query), names)
	g.filteredIdx = make([]int, len(matches))
	for i, match := range matches {
		g.filteredIdx[i] = match.Index
	}

	// Filter term changed: land back on page one.
	g.page = 1
	g.cursor = 0
}

// Update handles messages
func (g Grid) Update(msg tea.Msg) (Grid, tea.Cmd) {
	if !g.focused {
		return g, nil
	}

	// Filter typing mode gets the keystrokes first
	if g.IsFilterTyping() {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			switch msg.String() {
			case "esc":
				g.clearFilter()
				return g, nil
			case "enter":
				// Accept filter, blur input to allow navigation
				g.filterInput.Blur()
				return g, nil
			case "backspace":
				if g.filterInput.Value() == "" {
					g.clearFilter()
					return g, nil
				}
			}
		}

		var cmd tea.Cmd
		g.filterInput, cmd = g.filterInput.Update(msg)
		g.applyFilter()
		return g, cmd
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h":
			g.MoveFocus(DirLeft)
		case "right", "l":
			g.MoveFocus(DirRight)
		case "up", "k":
			g.MoveFocus(DirUp)
		case "down", "j":
			g.MoveFocus(DirDown)
		case "pgdown", "]":
			g.NextPage()
		case "pgup", "[":
			g.PrevPage()
		}
	}

	return g, nil
}

// View renders the component
func (g Grid) View() string {
	style := styles.InactiveBorder
	if g.focused {
		style = styles.ActiveBorder
	}

	content := g.renderTiles()

	frameW, frameH := style.GetFrameSize()
	return style.
		Width(g.width - frameW).
		Height(g.height - frameH).
		Render(content)
}

func (g Grid) renderTiles() string {
	items := g.PageItems()

	var b strings.Builder

	if g.filterActive {
		b.WriteString(g.renderFilterBar())
		b.WriteString("\n")
	}

	if len(items) == 0 {
		if g.filterQuery != "" {
			b.WriteString(styles.DimStyle.Render("No matches"))
		} else {
			b.WriteString(styles.DimStyle.Render("No games"))
		}
		return b.String()
	}

	tileWidth := g.tileWidth()

	var rows []string
	for start := 0; start < len(items); start += g.columns {
		end := start + g.columns
		if end > len(items) {
			end = len(items)
		}

		tiles := make([]string, 0, g.columns)
		for i := start; i < end; i++ {
			tiles = append(tiles, g.renderTile(items[i], i == g.cursor, tileWidth))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, tiles...))
	}

	b.WriteString(strings.Join(rows, "\n"))
	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render(
		fmt.Sprintf("page %d/%d · %d games", g.page, g.TotalPages(), len(g.visible()))))

	return b.String()
}

func (g Grid) tileWidth() int {
	// Interior width minus a border and padding per tile
	w := (g.width-4)/g.columns - 4
	if w < 8 {
		w = 8
	}
	return w
}

func (g Grid) renderTile(game domain.GameEntry, focused bool, width int) string {
	name := styles.Truncate(game.Name, width)
	system := styles.DimStyle.Render(styles.Truncate(game.System.Name, width))

	style := styles.TileStyle
	if focused {
		style = styles.TileFocusedStyle
	}
	return style.Width(width).Render(name + "\n" + system)
}

func (g Grid) renderFilterBar() string {
	bar := g.filterInput.View()
	if g.filterQuery != "" {
		bar += styles.DimStyle.Render(
			fmt.Sprintf(" [%d/%d]", len(g.visible()), len(g.games)))
	}
	return bar
}
