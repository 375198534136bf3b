package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/picstock/picstock/internal/inventory"
	"github.com/picstock/picstock/internal/ui/styles"
	"github.com/picstock/picstock/pkg/utils"
)

// InfoPanel shows labelled details for one record as an overlay
type InfoPanel struct {
	title   string
	content []InfoItem
	visible bool
	width   int
}

// InfoItem is a single label/value line in the panel
type InfoItem struct {
	Label string
	Value string
}

// NewInfoPanel creates a new info panel
func NewInfoPanel(title string, width int) *InfoPanel {
	return &InfoPanel{
		title:   title,
		content: []InfoItem{},
		width:   width,
	}
}

// AddItem adds an information item to the panel
func (p *InfoPanel) AddItem(label, value string) {
	p.content = append(p.content, InfoItem{Label: label, Value: value})
}

// SetVisible sets the visibility of the panel
func (p *InfoPanel) SetVisible(visible bool) {
	p.visible = visible
}

// IsVisible returns whether the panel is visible
func (p *InfoPanel) IsVisible() bool {
	return p.visible
}

// Toggle toggles the visibility of the panel
func (p *InfoPanel) Toggle() {
	p.visible = !p.visible
}

// SetWidth sets the width of the panel
func (p *InfoPanel) SetWidth(width int) {
	p.width = width
}

// Render renders the info panel
func (p *InfoPanel) Render() string {
	if !p.visible || len(p.content) == 0 {
		return ""
	}

	panelWidth := p.width / 2
	if panelWidth < 40 {
		panelWidth = 40
	}
	if panelWidth > 80 {
		panelWidth = 80
	}

	panelStyle := lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(styles.FocusBorder).
		Padding(1, 2).
		Width(panelWidth).
		Background(styles.BgDark)

	titleStyle := lipgloss.NewStyle().
		Foreground(styles.Primary).
		Bold(true).
		Underline(true)

	labelStyle := lipgloss.NewStyle().
		Foreground(styles.Secondary).
		Bold(true)

	valueStyle := lipgloss.NewStyle().
		Foreground(styles.Text)

	var content strings.Builder
	content.WriteString(titleStyle.Render(p.title))
	content.WriteString("\n\n")

	for i, item := range p.content {
		content.WriteString(labelStyle.Render(item.Label) + ": ")
		content.WriteString(valueStyle.Render(item.Value))
		if i < len(p.content)-1 {
			content.WriteString("\n")
		}
	}

	content.WriteString("\n\n")
	content.WriteString(styles.HelpStyle.Render("Press 'i' or 'esc' to close"))

	return panelStyle.Render(content.String())
}

// RenderAsOverlay renders the panel centered on screen
func (p *InfoPanel) RenderAsOverlay(terminalWidth, terminalHeight int) string {
	if !p.visible || len(p.content) == 0 {
		return ""
	}

	panelContent := p.Render()

	lines := strings.Split(panelContent, "\n")
	panelHeight := len(lines)
	panelWidth := 0
	for _, line := range lines {
		if w := lipgloss.Width(line); w > panelWidth {
			panelWidth = w
		}
	}

	topPadding := (terminalHeight - panelHeight) / 2
	if topPadding < 0 {
		topPadding = 0
	}
	leftPadding := (terminalWidth - panelWidth) / 2
	if leftPadding < 0 {
		leftPadding = 0
	}

	var b strings.Builder
	for i := 0; i < topPadding; i++ {
		b.WriteString("\n")
	}
	for _, line := range lines {
		b.WriteString(strings.Repeat(" ", leftPadding))
		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}

// RecordInfoPanel builds an info panel for one inventory record
func RecordInfoPanel(rec inventory.FileRecord, source string, category inventory.Category, width int) *InfoPanel {
	panel := NewInfoPanel("File Details", width)

	panel.AddItem("Name", rec.Name)
	panel.AddItem("Path", utils.TruncateLeft(rec.Path, 70))
	panel.AddItem("Size", utils.FormatBytes(rec.Size))
	panel.AddItem("Category", string(category))
	panel.AddItem("Source", source)

	return panel
}
