package views

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"vibary/internal/adapters/tui/i18n"
	"vibary/internal/adapters/tui/styles"
	"vibary/internal/application"
	"vibary/internal/domain"
)

const (
	fieldTitle = iota
	fieldFile
)

// HeroKeyMap defines key bindings for the hero view
type HeroKeyMap struct {
	Submit key.Binding
	Switch key.Binding
	Help   key.Binding
	Quit   key.Binding
}

var HeroKeys = HeroKeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "begin"),
	),
	Switch: key.NewBinding(
		key.WithKeys("tab", "shift+tab"),
		key.WithHelp("tab", "title / file"),
	),
	Help: key.NewBinding(
		key.WithKeys("f1"),
		key.WithHelp("f1", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "quit"),
	),
}

// HeroModel is the opening screen: a title prompt, a file prompt and the
// loading and error displays of the lifecycle.
type HeroModel struct {
	ViewState
	text    i18n.Strings
	form    *InputForm
	spinner spinner.Model
	state   domain.AppState
	failure error
}

// NewHeroModel creates the hero view with localized strings
func NewHeroModel(text i18n.Strings) *HeroModel {
	s := spinner.New()
	s.Spinner = spinner.Line
	s.Style = styles.Loading

	return &HeroModel{
		text: text,
		form: NewInputForm(
			NewInputField("›", text.Placeholder, 200),
			NewPathField(text.Or, "~/books/dune.pdf"),
		),
		spinner: s,
	}
}

// Init initializes the hero view
func (m *HeroModel) Init() tea.Cmd {
	return m.form.Init()
}

// Prefill puts the last submitted title in the title field unless the user typed already
func (m *HeroModel) Prefill(title string) {
	if m.form.Value(fieldTitle) == "" {
		m.form.SetValue(fieldTitle, title)
	}
}

// Alert shows err until the next submission
func (m *HeroModel) Alert(err error) {
	m.SetMessage(m.describe(err), true)
}

// SetState follows the lifecycle. It returns the spinner tick when an
// operation starts.
func (m *HeroModel) SetState(state domain.AppState, failure error) tea.Cmd {
	wasWorking := m.state.Working()
	m.state = state
	m.failure = failure
	if state.Working() && !wasWorking {
		return m.spinner.Tick
	}
	return nil
}

// Update handles messages for the hero view
func (m *HeroModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		m.form.SetWidth(min(60, max(msg.Width-10, 10)))
		return m, nil

	case spinner.TickMsg:
		if !m.state.Working() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, HeroKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, HeroKeys.Help):
			return m, func() tea.Msg { return SwitchToHelpMsg{} }
		}
		if m.state.Working() {
			return m, nil
		}
		if key.Matches(msg, HeroKeys.Submit) {
			return m, m.submit()
		}
	}

	_, cmd := m.form.Update(msg)
	return m, cmd
}

func (m *HeroModel) submit() tea.Cmd {
	m.ClearMessage()
	if m.form.Focused() == fieldFile {
		path := m.form.Value(fieldFile)
		if path == "" {
			return nil
		}
		return func() tea.Msg { return SubmitFileMsg{Path: path} }
	}
	title := m.form.Value(fieldTitle)
	if title == "" {
		return nil
	}
	return func() tea.Msg { return SubmitTitleMsg{Title: title} }
}

// View renders the hero view
func (m *HeroModel) View() string {
	v := NewViewBuilder()
	v.Line(styles.Brand.Render(spaced(m.text.Brand)))
	v.Line(styles.Tagline.Render(strings.ToUpper(m.text.Subtitle)))
	v.BlankLine()

	if m.state.Working() {
		loading := m.text.LoadingDirect
		if m.state == domain.StateCheckingKnowledge {
			loading = m.text.LoadingConsult
		}
		v.Line(m.spinner.View() + " " + styles.Loading.Render(loading))
		return m.place(v.StringUnwrapped())
	}

	v.Line(m.form.RenderField(fieldTitle))
	v.BlankLine()
	v.Line(m.form.RenderField(fieldFile))
	v.BlankLine()

	title := m.form.Value(fieldTitle)
	if m.state == domain.StateIdle && len(title) > 3 && !strings.Contains(title, " ") {
		v.Muted(m.text.Unknown)
	}
	if m.failure != nil {
		v.Message(m.describe(m.failure), true)
	} else {
		v.Message(m.Message, m.MessageErr)
	}

	v.Help(HeroKeys.Submit, HeroKeys.Switch, HeroKeys.Help, HeroKeys.Quit)
	return m.place(v.StringUnwrapped())
}

func (m *HeroModel) describe(err error) string {
	switch application.Classify(err) {
	case application.KindNotRecognized:
		return m.text.NotRecognized
	case application.KindTimeout:
		return "The archives took too long to answer. Try again."
	case application.KindMalformed:
		return "The answer could not be read as a journey. Try again."
	}
	var verr *application.ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	return err.Error()
}

func (m *HeroModel) place(content string) string {
	if m.Width <= 0 || m.Height <= 0 {
		return styles.App.Render(content)
	}
	return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, content)
}

// spaced letter-spaces a word the way the brand is set
func spaced(s string) string {
	return strings.Join(strings.Split(s, ""), " ")
}
