package models

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/picstock/picstock/internal/inventory"
	"github.com/picstock/picstock/internal/store"
	"github.com/picstock/picstock/internal/ui/components"
	"github.com/picstock/picstock/internal/ui/styles"
	"github.com/picstock/picstock/pkg/utils"
)

// CategoriesViewModel shows the category breakdown of one source.
type CategoriesViewModel struct {
	store  *store.Store
	source string

	spinner spinner.Model
	loading bool

	inv      *inventory.Inventory
	manifest *store.Manifest
	err      error

	cursor    int
	width     int
	height    int
	statusBar *components.StatusBar
}

// NewCategoriesViewModel creates a new categories view model
func NewCategoriesViewModel(st *store.Store, source string, width, height int) *CategoriesViewModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SelectedStyle

	sb := components.NewStatusBar()
	sb.SetView("Categories")
	sb.SetShortcuts(map[string]string{
		"↑/↓":   "navigate",
		"enter": "open",
		"esc":   "back",
		"q":     "quit",
	})

	return &CategoriesViewModel{
		store:     st,
		source:    source,
		spinner:   s,
		loading:   true,
		width:     width,
		height:    height,
		statusBar: sb,
	}
}

// Init starts loading the inventory
func (m *CategoriesViewModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadInventory)
}

// loadInventory reads the captured inventory from the store. The
// manifest is optional extra context so its errors are not surfaced.
func (m *CategoriesViewModel) loadInventory() tea.Msg {
	inv, err := m.store.LoadInventory(m.source)
	if err != nil {
		return InventoryLoadedMsg{Err: err}
	}

	manifest, err := m.store.LoadManifest(m.source)
	if err != nil {
		manifest = nil
	}

	return InventoryLoadedMsg{Inventory: inv, Manifest: manifest}
}

// Update handles messages
func (m *CategoriesViewModel) Update(msg tea.Msg) (*CategoriesViewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case InventoryLoadedMsg:
		m.loading = false
		m.inv = msg.Inventory
		m.manifest = msg.Manifest
		m.err = msg.Err

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		if m.loading || m.err != nil {
			return m, nil
		}
		categories := m.inv.Categories()
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(categories)-1 {
				m.cursor++
			}
		case "enter":
			if len(categories) > 0 {
				category := categories[m.cursor]
				records := m.inv.Category(category)
				source := m.source
				return m, func() tea.Msg {
					return CategoryChosenMsg{
						Source:   source,
						Category: category,
						Records:  records,
					}
				}
			}
		}
	}

	return m, nil
}

// View renders the categories view
func (m *CategoriesViewModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render(fmt.Sprintf("📷 Source: %s", m.source)))
	b.WriteString("\n")

	if m.manifest != nil {
		info := fmt.Sprintf("Captured %s from %s",
			m.manifest.CapturedAt.Format("2006-01-02 15:04"),
			strings.Join(m.manifest.Roots, ", "))
		b.WriteString(styles.DimStyle.Render(info))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.loading {
		b.WriteString(fmt.Sprintf("%s Loading inventory...", m.spinner.View()))
		return b.String()
	}

	if m.err != nil {
		b.WriteString(styles.ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
		b.WriteString(styles.HelpStyle.Render("Press esc to go back"))
		return b.String()
	}

	categories := m.inv.Categories()
	if len(categories) == 0 {
		b.WriteString(styles.DimStyle.Render("No files were captured for this source."))
		b.WriteString("\n\n")
		b.WriteString(styles.HelpStyle.Render("Press esc to go back"))
		return b.String()
	}

	for i, category := range categories {
		records := m.inv.Category(category)
		var size int64
		for _, rec := range records {
			size += rec.Size
		}

		cursor := "  "
		nameStyle := styles.CategoryStyle
		if i == m.cursor {
			cursor = styles.SelectedStyle.Render("▸ ")
			nameStyle = styles.SelectedStyle
		}

		b.WriteString(fmt.Sprintf("%s%s  %s  %s\n",
			cursor,
			nameStyle.Render(fmt.Sprintf("%-12s", string(category))),
			fmt.Sprintf("%5d files", len(records)),
			styles.FileSizeStyle.Render(fmt.Sprintf("%10s", utils.FormatBytes(size))),
		))
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Total: %d files, %s\n",
		m.inv.Count(), utils.FormatBytes(m.inv.TotalSize())))

	b.WriteString("\n")
	m.statusBar.SetCounts(len(categories), len(categories), m.inv.TotalSize())
	b.WriteString(m.statusBar.Render(m.width))

	return b.String()
}

// InventoryLoadedMsg is sent when a source's inventory finished loading
type InventoryLoadedMsg struct {
	Inventory *inventory.Inventory
	Manifest  *store.Manifest
	Err       error
}
