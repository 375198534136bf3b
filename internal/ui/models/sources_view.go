package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/picstock/picstock/internal/store"
	"github.com/picstock/picstock/internal/ui/components"
	"github.com/picstock/picstock/internal/ui/styles"
	"github.com/picstock/picstock/pkg/utils"
)

// SourceSummary is one row of the sources view.
type SourceSummary struct {
	Name       string
	Files      int
	Size       int64
	CapturedAt time.Time
}

// SourcesViewModel lists every analysed source.
type SourcesViewModel struct {
	store   *store.Store
	spinner spinner.Model

	loading bool
	sources []SourceSummary
	err     error

	cursor    int
	width     int
	height    int
	statusBar *components.StatusBar
}

// NewSourcesViewModel creates a new sources view model
func NewSourcesViewModel(st *store.Store, width, height int) *SourcesViewModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SelectedStyle

	sb := components.NewStatusBar()
	sb.SetView("Sources")
	sb.SetShortcuts(map[string]string{
		"↑/↓":   "navigate",
		"enter": "open",
		"q":     "quit",
	})

	return &SourcesViewModel{
		store:     st,
		spinner:   s,
		loading:   true,
		width:     width,
		height:    height,
		statusBar: sb,
	}
}

// Init starts loading the sources
func (m *SourcesViewModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadSources)
}

// loadSources reads every source from the store
func (m *SourcesViewModel) loadSources() tea.Msg {
	names, err := m.store.ListSources()
	if err != nil {
		return SourcesLoadedMsg{Err: err}
	}

	summaries := make([]SourceSummary, 0, len(names))
	for _, name := range names {
		summary := SourceSummary{Name: name}
		if inv, err := m.store.LoadInventory(name); err == nil {
			summary.Files = inv.Count()
			summary.Size = inv.TotalSize()
		}
		if manifest, err := m.store.LoadManifest(name); err == nil {
			summary.CapturedAt = manifest.CapturedAt
		}
		summaries = append(summaries, summary)
	}

	return SourcesLoadedMsg{Sources: summaries}
}

// Update handles messages
func (m *SourcesViewModel) Update(msg tea.Msg) (*SourcesViewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case SourcesLoadedMsg:
		m.loading = false
		m.sources = msg.Sources
		m.err = msg.Err

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		if m.loading || m.err != nil {
			return m, nil
		}
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.sources)-1 {
				m.cursor++
			}
		case "enter":
			if len(m.sources) > 0 {
				name := m.sources[m.cursor].Name
				return m, func() tea.Msg {
					return SourceChosenMsg{Name: name}
				}
			}
		}
	}

	return m, nil
}

// View renders the sources view
func (m *SourcesViewModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("📷 Picstock"))
	b.WriteString("\n")
	b.WriteString(styles.SubtitleStyle.Render("Analysed sources"))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(fmt.Sprintf("%s Loading sources...", m.spinner.View()))
		return b.String()
	}

	if m.err != nil {
		b.WriteString(styles.ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
		b.WriteString(styles.HelpStyle.Render("Press q to quit"))
		return b.String()
	}

	if len(m.sources) == 0 {
		b.WriteString(styles.DimStyle.Render("No sources analysed yet."))
		b.WriteString("\n\n")
		b.WriteString(styles.HelpStyle.Render("Run 'picstock source <name> <directory>...' first."))
		return b.String()
	}

	var total int64
	for i, src := range m.sources {
		cursor := "  "
		nameStyle := styles.BoldStyle
		if i == m.cursor {
			cursor = styles.SelectedStyle.Render("▸ ")
			nameStyle = styles.SelectedStyle
		}

		line := fmt.Sprintf("%s%s  %s  %s",
			cursor,
			nameStyle.Render(fmt.Sprintf("%-20s", src.Name)),
			fmt.Sprintf("%5d files", src.Files),
			styles.FileSizeStyle.Render(fmt.Sprintf("%10s", utils.FormatBytes(src.Size))),
		)
		if !src.CapturedAt.IsZero() {
			line += styles.DimStyle.Render("  " + src.CapturedAt.Format("2006-01-02 15:04"))
		}
		b.WriteString(line)
		b.WriteString("\n")

		total += src.Size
	}

	b.WriteString("\n")
	m.statusBar.SetCounts(len(m.sources), len(m.sources), total)
	b.WriteString(m.statusBar.Render(m.width))

	return b.String()
}

// SourcesLoadedMsg is sent when the source summaries finished loading
type SourcesLoadedMsg struct {
	Sources []SourceSummary
	Err     error
}
