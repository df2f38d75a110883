package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"vibary/internal/adapters/tui/styles"
)

// ConfirmKeyMap defines key bindings for confirmation prompts
type ConfirmKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultConfirmKeys returns the default confirmation key bindings
var DefaultConfirmKeys = ConfirmKeyMap{
	Confirm: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "esc"),
		key.WithHelp("n/esc", "cancel"),
	),
}

// ConfirmationModel is an inline yes/no prompt. While open it takes every key.
type ConfirmationModel struct {
	Question string
	Keys     ConfirmKeyMap
	open     bool
}

// NewConfirmationModel creates a closed confirmation with default keys
func NewConfirmationModel(question string) ConfirmationModel {
	return ConfirmationModel{
		Question: question,
		Keys:     DefaultConfirmKeys,
	}
}

// Open shows the prompt
func (m *ConfirmationModel) Open() {
	m.open = true
}

// IsOpen reports whether the prompt is showing
func (m *ConfirmationModel) IsOpen() bool {
	return m.open
}

// HandleKeyMsg processes key messages while the prompt is open.
// Returns (handled, cmd) where handled is true if the key was consumed.
func (m *ConfirmationModel) HandleKeyMsg(msg tea.KeyMsg, onConfirm func() tea.Msg) (bool, tea.Cmd) {
	if !m.open {
		return false, nil
	}
	switch {
	case key.Matches(msg, m.Keys.Confirm):
		m.open = false
		return true, func() tea.Msg { return onConfirm() }
	case key.Matches(msg, m.Keys.Cancel):
		m.open = false
	}
	return true, nil
}

// View renders the prompt, empty when closed
func (m *ConfirmationModel) View() string {
	if !m.open {
		return ""
	}
	return RenderConfirmPrompt(m.Question)
}

// RenderConfirmPrompt renders the standard confirmation prompt
func RenderConfirmPrompt(question string) string {
	var b strings.Builder
	b.WriteString(question)
	b.WriteString(" ")
	b.WriteString(styles.HelpKey.Render("y"))
	b.WriteString(styles.HelpDesc.Render(" to confirm, "))
	b.WriteString(styles.HelpKey.Render("n"))
	b.WriteString(styles.HelpDesc.Render(" to cancel"))
	return b.String()
}
