package models

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/picstock/picstock/internal/inventory"
	"github.com/picstock/picstock/internal/store"
	"github.com/picstock/picstock/internal/ui/styles"
)

// ViewState represents the current view in the app
type ViewState int

const (
	ViewSources ViewState = iota
	ViewCategories
	ViewRecords
	ViewHelp
)

// AppModel is the root model for the interactive browser
type AppModel struct {
	state         ViewState
	previousState ViewState // For back navigation

	store         *store.Store
	initialSource string

	sourcesView    *SourcesViewModel
	categoriesView *CategoriesViewModel
	recordsView    *RecordsViewModel

	width  int
	height int
}

// NewAppModel creates the root model. When initialSource is set the
// browser opens directly on that source's categories.
func NewAppModel(st *store.Store, initialSource string) *AppModel {
	return &AppModel{
		store:         st,
		initialSource: initialSource,
	}
}

// Init initializes the model
func (m *AppModel) Init() tea.Cmd {
	if m.initialSource != "" {
		m.categoriesView = NewCategoriesViewModel(m.store, m.initialSource, m.width, m.height)
		m.state = ViewCategories
		return m.categoriesView.Init()
	}

	m.sourcesView = NewSourcesViewModel(m.store, m.width, m.height)
	m.state = ViewSources
	return m.sourcesView.Init()
}

// Update handles messages
func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			// The records view may be capturing keys for its filter.
			if m.state == ViewRecords && m.recordsView != nil && m.recordsView.Capturing() {
				break
			}
			return m, tea.Quit
		case "?":
			if m.state != ViewHelp {
				m.previousState = m.state
				m.state = ViewHelp
			}
			return m, nil
		case "esc":
			switch m.state {
			case ViewHelp:
				m.state = m.previousState
				return m, nil
			case ViewRecords:
				if m.recordsView != nil && m.recordsView.Capturing() {
					break
				}
				m.state = ViewCategories
				return m, nil
			case ViewCategories:
				if m.sourcesView == nil {
					m.sourcesView = NewSourcesViewModel(m.store, m.width, m.height)
					m.state = ViewSources
					return m, m.sourcesView.Init()
				}
				m.state = ViewSources
				return m, nil
			}
		default:
			if m.state == ViewHelp {
				m.state = m.previousState
				return m, nil
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case SourceChosenMsg:
		m.categoriesView = NewCategoriesViewModel(m.store, msg.Name, m.width, m.height)
		m.state = ViewCategories
		return m, m.categoriesView.Init()

	case CategoryChosenMsg:
		m.recordsView = NewRecordsViewModel(msg.Source, msg.Category, msg.Records, m.width, m.height)
		m.state = ViewRecords
		return m, m.recordsView.Init()
	}

	return m.delegateUpdate(msg)
}

// delegateUpdate delegates the update to the current view
func (m *AppModel) delegateUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.state {
	case ViewSources:
		if m.sourcesView != nil {
			m.sourcesView, cmd = m.sourcesView.Update(msg)
		}
	case ViewCategories:
		if m.categoriesView != nil {
			m.categoriesView, cmd = m.categoriesView.Update(msg)
		}
	case ViewRecords:
		if m.recordsView != nil {
			m.recordsView, cmd = m.recordsView.Update(msg)
		}
	}

	return m, cmd
}

// View renders the current view
func (m *AppModel) View() string {
	switch m.state {
	case ViewSources:
		if m.sourcesView != nil {
			return m.sourcesView.View()
		}
	case ViewCategories:
		if m.categoriesView != nil {
			return m.categoriesView.View()
		}
	case ViewRecords:
		if m.recordsView != nil {
			return m.recordsView.View()
		}
	case ViewHelp:
		return m.renderHelp()
	}

	return "Loading..."
}

// renderHelp renders context-aware help
func (m *AppModel) renderHelp() string {
	var b strings.Builder

	var viewName string
	var helpContent string

	switch m.previousState {
	case ViewSources:
		viewName = "Sources"
		helpContent = m.getHelpForSources()
	case ViewCategories:
		viewName = "Categories"
		helpContent = m.getHelpForCategories()
	case ViewRecords:
		viewName = "Files"
		helpContent = m.getHelpForRecords()
	default:
		viewName = "General"
		helpContent = m.getHelpForGeneral()
	}

	b.WriteString(styles.TitleStyle.Render(fmt.Sprintf("Help - %s", viewName)))
	b.WriteString("\n\n")
	b.WriteString(helpContent)
	b.WriteString("\n\n")
	b.WriteString(styles.HelpStyle.Render("Press any key to close"))

	return b.String()
}

func (m *AppModel) getHelpForSources() string {
	return `Pick an analysed source to browse.

Navigation:
  ↑/k     - Move up
  ↓/j     - Move down

Actions:
  enter   - Open source
  ?       - Toggle help
  q       - Quit`
}

func (m *AppModel) getHelpForCategories() string {
	return `Pick a category of the source to inspect.

Navigation:
  ↑/k     - Move up
  ↓/j     - Move down

Actions:
  enter   - Open category
  esc     - Back to sources
  q       - Quit`
}

func (m *AppModel) getHelpForRecords() string {
	return `Browse the files captured in this category.

Navigation               Other
  ↑/k     Move up          /       Filter by name
  ↓/j     Move down        i       File details
  ctrl+f  Page down        esc     Back / close filter
  ctrl+b  Page up          q       Quit
  g/G     Top / bottom

Browsing never changes what was captured.`
}

func (m *AppModel) getHelpForGeneral() string {
	return `picstock browser

Global Shortcuts:
  ?       - Toggle this help
  esc     - Go back / Close help
  q       - Quit
  ctrl+c  - Force quit

The browser walks from sources to categories to files,
entirely read-only.`
}

// Custom messages

// SourceChosenMsg is sent when a source is picked in the sources view
type SourceChosenMsg struct {
	Name string
}

// CategoryChosenMsg is sent when a category is picked, carrying its
// records so the records view needs no second load.
type CategoryChosenMsg struct {
	Source   string
	Category inventory.Category
	Records  []inventory.FileRecord
}
