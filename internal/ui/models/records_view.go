package models

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/picstock/picstock/internal/inventory"
	"github.com/picstock/picstock/internal/ui/components"
	"github.com/picstock/picstock/internal/ui/styles"
	"github.com/picstock/picstock/pkg/utils"
)

// RecordsViewModel pages through the files of one category.
type RecordsViewModel struct {
	source   string
	category inventory.Category

	records  []inventory.FileRecord
	filtered []inventory.FileRecord

	filter    textinput.Model
	filtering bool

	cursor   int
	offset   int
	pageSize int

	width     int
	height    int
	infoPanel *components.InfoPanel
	statusBar *components.StatusBar
}

// NewRecordsViewModel creates a new records view model
func NewRecordsViewModel(source string, category inventory.Category, records []inventory.FileRecord, width, height int) *RecordsViewModel {
	ti := textinput.New()
	ti.Placeholder = "name contains..."
	ti.CharLimit = 64
	ti.Width = 30

	sb := components.NewStatusBar()
	sb.SetView("Files")
	sb.SetShortcuts(map[string]string{
		"↑/↓": "navigate",
		"/":   "filter",
		"i":   "info",
		"esc": "back",
		"q":   "quit",
	})

	m := &RecordsViewModel{
		source:    source,
		category:  category,
		records:   records,
		filtered:  records,
		filter:    ti,
		width:     width,
		height:    height,
		statusBar: sb,
	}
	m.resize(width, height)
	return m
}

// Init initializes the model
func (m *RecordsViewModel) Init() tea.Cmd {
	return nil
}

// Capturing reports whether the view is consuming keys the app would
// otherwise act on, such as q while the filter input is focused.
func (m *RecordsViewModel) Capturing() bool {
	if m.filtering {
		return true
	}
	return m.infoPanel != nil && m.infoPanel.IsVisible()
}

// Update handles messages
func (m *RecordsViewModel) Update(msg tea.Msg) (*RecordsViewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if m.filtering {
			return m.updateFilter(msg)
		}

		if m.infoPanel != nil && m.infoPanel.IsVisible() {
			switch msg.String() {
			case "i", "esc", "enter":
				m.infoPanel.SetVisible(false)
			}
			return m, nil
		}

		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
			}
		case "ctrl+f", "pgdown":
			m.cursor += m.pageSize
			if m.cursor > len(m.filtered)-1 {
				m.cursor = len(m.filtered) - 1
			}
		case "ctrl+b", "pgup":
			m.cursor -= m.pageSize
			if m.cursor < 0 {
				m.cursor = 0
			}
		case "g", "home":
			m.cursor = 0
		case "G", "end":
			m.cursor = len(m.filtered) - 1
		case "/":
			m.filtering = true
			return m, m.filter.Focus()
		case "i":
			if len(m.filtered) > 0 {
				rec := m.filtered[m.cursor]
				m.infoPanel = components.RecordInfoPanel(rec, m.source, m.category, m.width)
				m.infoPanel.SetVisible(true)
			}
			return m, nil
		case "esc":
			if m.filter.Value() != "" {
				m.filter.SetValue("")
				m.applyFilter()
			}
			return m, nil
		}

		m.clampScroll()
	}

	return m, nil
}

// updateFilter handles keys while the filter input is focused
func (m *RecordsViewModel) updateFilter(msg tea.KeyMsg) (*RecordsViewModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.filtering = false
		m.filter.Blur()
		m.filter.SetValue("")
		m.applyFilter()
		return m, nil
	case "enter":
		m.filtering = false
		m.filter.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	return m, cmd
}

// applyFilter narrows the records to names containing the query
func (m *RecordsViewModel) applyFilter() {
	query := strings.ToLower(m.filter.Value())
	if query == "" {
		m.filtered = m.records
	} else {
		filtered := make([]inventory.FileRecord, 0, len(m.records))
		for _, rec := range m.records {
			if strings.Contains(strings.ToLower(rec.Name), query) {
				filtered = append(filtered, rec)
			}
		}
		m.filtered = filtered
	}

	m.cursor = 0
	m.offset = 0
}

// resize recomputes the page size from the terminal height
func (m *RecordsViewModel) resize(width, height int) {
	m.width = width
	m.height = height

	m.pageSize = height - 9
	if m.pageSize < 5 {
		m.pageSize = 5
	}
	if height == 0 {
		m.pageSize = 20
	}
	m.clampScroll()
}

// clampScroll keeps the cursor visible inside the current page
func (m *RecordsViewModel) clampScroll() {
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor > len(m.filtered)-1 {
		m.cursor = len(m.filtered) - 1
		if m.cursor < 0 {
			m.cursor = 0
		}
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.pageSize {
		m.offset = m.cursor - m.pageSize + 1
	}
}

// View renders the records view
func (m *RecordsViewModel) View() string {
	if m.infoPanel != nil && m.infoPanel.IsVisible() {
		return m.infoPanel.RenderAsOverlay(m.width, m.height)
	}

	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render(fmt.Sprintf("📷 %s / %s", m.source, m.category)))
	b.WriteString("\n")

	if m.filtering {
		b.WriteString("/ " + m.filter.View())
		b.WriteString("\n")
	} else if m.filter.Value() != "" {
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf("filter: %q  (%d of %d files, esc clears)",
			m.filter.Value(), len(m.filtered), len(m.records))))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(m.filtered) == 0 {
		if len(m.records) == 0 {
			b.WriteString(styles.DimStyle.Render("No files in this category."))
		} else {
			b.WriteString(styles.DimStyle.Render("No files match the filter."))
		}
		b.WriteString("\n")
		return b.String()
	}

	if m.offset > 0 {
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf("  ▲ %d more", m.offset)))
		b.WriteString("\n")
	}

	end := m.offset + m.pageSize
	if end > len(m.filtered) {
		end = len(m.filtered)
	}

	var shownSize int64
	for _, rec := range m.filtered {
		shownSize += rec.Size
	}

	pathWidth := m.width - 50
	if pathWidth < 20 {
		pathWidth = 20
	}

	for i := m.offset; i < end; i++ {
		rec := m.filtered[i]

		cursor := "  "
		nameStyle := styles.BoldStyle
		if i == m.cursor {
			cursor = styles.SelectedStyle.Render("▸ ")
			nameStyle = styles.SelectedStyle
		}

		b.WriteString(fmt.Sprintf("%s%s %s  %s\n",
			cursor,
			nameStyle.Render(fmt.Sprintf("%-28s", truncateName(rec.Name, 28))),
			styles.FileSizeStyle.Render(fmt.Sprintf("%10s", utils.FormatBytes(rec.Size))),
			styles.FilePathStyle.Render(utils.TruncateLeft(rec.Path, pathWidth)),
		))
	}

	if end < len(m.filtered) {
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf("  ▼ %d more", len(m.filtered)-end)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	m.statusBar.SetCounts(len(m.filtered), len(m.records), shownSize)
	b.WriteString(m.statusBar.Render(m.width))

	return b.String()
}

// truncateName shortens a file name from the right
func truncateName(name string, max int) string {
	if len(name) <= max {
		return name
	}
	if max <= 3 {
		return name[:max]
	}
	return name[:max-3] + "..."
}
