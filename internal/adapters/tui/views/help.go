package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"vibary/internal/adapters/tui/styles"
	"vibary/internal/render"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?", "f1"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	ViewState
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg {
				return SwitchToMainMsg{}
			}
		}
	}

	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Vibary Help"))
	b.WriteString("\n\n")

	b.WriteString(styles.Subtitle.Render("Books as scroll-driven visual journeys"))
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render("Library"))
	b.WriteString("\n")
	b.WriteString(helpLine("type + Enter", "Look up a known title"))
	b.WriteString(helpLine("Tab", "Switch to the file field (PDF, FB2, text)"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Journey"))
	b.WriteString("\n")
	b.WriteString(helpLine("j / k / ↑ / ↓", "Scroll"))
	b.WriteString(helpLine("space / b", "Page down / up"))
	b.WriteString(helpLine("g / G", "Top / end of volume"))
	b.WriteString(helpLine("t", "Table of contents"))
	b.WriteString(helpLine("e", "Director's input (refine the journey)"))
	b.WriteString(helpLine("E", "Compose director's input in $EDITOR"))
	b.WriteString(helpLine("x", "Export standalone HTML, path copied"))
	b.WriteString(helpLine("o", "Export and open in the browser"))
	b.WriteString(helpLine("r", "Open a new book"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("General"))
	b.WriteString("\n")
	b.WriteString(helpLine("?", "Toggle help"))
	b.WriteString(helpLine("q / Ctrl+C", "Quit"))
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render("Layouts"))
	b.WriteString("\n")
	for _, s := range render.Strategies() {
		name := string(s.Layout())
		if s.Layout() == render.DefaultLayout {
			name += " (default)"
		}
		b.WriteString(styles.MutedText.Render("  " + name))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	// Close hint
	b.WriteString(styles.HelpDesc.Render("Press "))
	b.WriteString(styles.HelpKey.Render("esc"))
	b.WriteString(styles.HelpDesc.Render(" or "))
	b.WriteString(styles.HelpKey.Render("?"))
	b.WriteString(styles.HelpDesc.Render(" to close"))

	return styles.App.Render(b.String())
}

func helpLine(key, desc string) string {
	return "  " + styles.HelpKey.Render(padRight(key, 20)) + styles.HelpDesc.Render(desc) + "\n"
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}
