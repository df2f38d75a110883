package views

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"vibary/internal/adapters/tui/styles"
)

// InputFormKeyMap defines key bindings for input forms
type InputFormKeyMap struct {
	Tab key.Binding
}

// DefaultInputFormKeys returns the default input form key bindings
var DefaultInputFormKeys = InputFormKeyMap{
	Tab: key.NewBinding(
		key.WithKeys("tab", "shift+tab"),
		key.WithHelp("tab", "switch field"),
	),
}

// InputField is one labelled line of the form. Path fields expand a
// leading ~ in their value.
type InputField struct {
	Label string
	Path  bool
	Input textinput.Model
}

// InputForm is a column of fields with one focused at a time
type InputForm struct {
	Fields       []InputField
	FocusedField int
	Keys         InputFormKeyMap
}

// NewInputForm creates a form with the first field focused
func NewInputForm(fields ...InputField) *InputForm {
	form := &InputForm{Fields: fields, Keys: DefaultInputFormKeys}
	if len(fields) > 0 {
		form.Fields[0].Input.Focus()
	}
	return form
}

// NewInputField creates a text field
func NewInputField(label, placeholder string, charLimit int) InputField {
	input := textinput.New()
	input.Placeholder = placeholder
	input.Prompt = ""
	if charLimit > 0 {
		input.CharLimit = charLimit
	}
	return InputField{Label: label, Input: input}
}

// NewPathField creates a field for a file path
func NewPathField(label, placeholder string) InputField {
	f := NewInputField(label, placeholder, 4096)
	f.Path = true
	return f
}

// Init returns the blink command for the focused input
func (f *InputForm) Init() tea.Cmd {
	return textinput.Blink
}

// Update moves focus on tab and feeds everything else to the focused field.
// Returns (handled, cmd) where handled is true if the form consumed a key.
func (f *InputForm) Update(msg tea.Msg) (bool, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, f.Keys.Tab) {
		f.NextField()
		return true, nil
	}
	if f.FocusedField < 0 || f.FocusedField >= len(f.Fields) {
		return false, nil
	}
	var cmd tea.Cmd
	f.Fields[f.FocusedField].Input, cmd = f.Fields[f.FocusedField].Input.Update(msg)
	return false, cmd
}

// NextField cycles focus to the next field
func (f *InputForm) NextField() {
	if len(f.Fields) <= 1 {
		return
	}
	f.Fields[f.FocusedField].Input.Blur()
	f.FocusedField = (f.FocusedField + 1) % len(f.Fields)
	f.Fields[f.FocusedField].Input.Focus()
}

// Focused returns the index of the focused field
func (f *InputForm) Focused() int {
	return f.FocusedField
}

// Value returns the trimmed value of a field, with ~ expanded for paths
func (f *InputForm) Value(index int) string {
	if index < 0 || index >= len(f.Fields) {
		return ""
	}
	v := strings.TrimSpace(f.Fields[index].Input.Value())
	if f.Fields[index].Path {
		return expandHome(v)
	}
	return v
}

// SetValue replaces a field's value and moves its cursor to the end
func (f *InputForm) SetValue(index int, value string) {
	if index < 0 || index >= len(f.Fields) {
		return
	}
	f.Fields[index].Input.SetValue(value)
	f.Fields[index].Input.CursorEnd()
}

// SetWidth sets the visible width of every field
func (f *InputForm) SetWidth(width int) {
	for i := range f.Fields {
		f.Fields[i].Input.Width = width
	}
}

// RenderField renders a label over its input, highlighted when focused
func (f *InputForm) RenderField(index int) string {
	if index < 0 || index >= len(f.Fields) {
		return ""
	}
	field := f.Fields[index]
	box := styles.InputField
	if index == f.FocusedField {
		box = styles.InputFocused
	}
	return styles.InputLabel.Render(field.Label) + "\n" + box.Render(field.Input.View())
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
