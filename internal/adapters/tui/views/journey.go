package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"vibary/internal/adapters/editor"
	"vibary/internal/adapters/tui/styles"
	"vibary/internal/adapters/tui/termrender"
	"vibary/internal/application/commands"
	"vibary/internal/domain"
	"vibary/internal/ports"
	"vibary/internal/render"
	"vibary/internal/scroll"
)

// settleDelay is how long scrolling must pause before the active scene is corrected
const settleDelay = 150 * time.Millisecond

// JourneyKeyMap defines key bindings for the journey view
type JourneyKeyMap struct {
	Top          key.Binding
	Bottom       key.Binding
	TOC          key.Binding
	Jump         key.Binding
	Up           key.Binding
	Down         key.Binding
	PrevPage     key.Binding
	NextPage     key.Binding
	Edit         key.Binding
	EditExternal key.Binding
	Export       key.Binding
	Open         key.Binding
	Reset        key.Binding
	Cancel       key.Binding
	Help         key.Binding
	Quit         key.Binding
}

var JourneyKeys = JourneyKeyMap{
	Top: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "top"),
	),
	Bottom: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "end"),
	),
	TOC: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "contents"),
	),
	Jump: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "jump"),
	),
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("h", "left", "pgup"),
		key.WithHelp("h/←", "prev page"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("l", "right", "pgdown"),
		key.WithHelp("l/→", "next page"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "direct"),
	),
	EditExternal: key.NewBinding(
		key.WithKeys("E"),
		key.WithHelp("E", "direct in $EDITOR"),
	),
	Export: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "export"),
	),
	Open: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open"),
	),
	Reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "new book"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// JourneyDeps are the collaborators of the journey view. Opener and
// Clipboard may be nil.
type JourneyDeps struct {
	Exporter  ports.ArtifactExporter
	Opener    ports.ArtifactOpener
	ExportDir string
	Clipboard func(string) error
}

// OpenEditorMsg asks the app to hand the terminal to the editor for path
type OpenEditorMsg struct {
	Path string
}

type settleMsg struct {
	seq int
}

type exportedMsg struct {
	result *commands.ExportResult
	open   bool
	err    error
}

// JourneyModel shows a document as one long scrollable page. It owns the
// scroll tracker and the ambient pointer for as long as a document is shown.
type JourneyModel struct {
	ViewState
	deps JourneyDeps

	doc   *domain.Document
	state domain.AppState
	tree  *render.Node

	viewport viewport.Model
	tracker  *scroll.Tracker
	ambient  *scroll.Ambient
	regions  []scroll.Region
	settle   int

	toc     *Paginator
	tocOpen bool

	editing bool
	edit    textarea.Model
	confirm ConfirmationModel
}

// NewJourneyModel creates the journey view
func NewJourneyModel(deps JourneyDeps) *JourneyModel {
	if deps.Clipboard == nil {
		deps.Clipboard = clipboard.WriteAll
	}

	ta := textarea.New()
	ta.Placeholder = "Make it darker. Focus on the betrayal..."
	ta.ShowLineNumbers = false
	ta.SetHeight(3)
	ta.CharLimit = 2000
	ta.KeyMap.InsertNewline.SetKeys("alt+enter", "ctrl+j")

	vp := viewport.New(0, 0)
	vp.MouseWheelEnabled = true

	return &JourneyModel{
		deps:     deps,
		viewport: vp,
		ambient:  scroll.NewAmbient(0, 0),
		toc:      NewPaginator(8),
		edit:     ta,
		confirm:  NewConfirmationModel("Open a new book? This journey will be discarded."),
	}
}

// SetDocument shows doc. Refinements keep the scroll position; a new
// scene count starts a new tracker.
func (m *JourneyModel) SetDocument(doc *domain.Document) {
	if doc == m.doc {
		return
	}
	if m.doc == nil || doc == nil || len(doc.Screenplay) != len(m.doc.Screenplay) {
		count := 0
		if doc != nil {
			count = len(doc.Screenplay)
		}
		m.tracker = scroll.NewTracker(count, scroll.DefaultBand)
		m.toc.Reset()
		m.toc.SetTotal(count)
		m.viewport.GotoTop()
		m.tocOpen = false
		if m.editing {
			m.closeEdit()
		}
	}
	m.doc = doc
	m.rebuild()
	m.sample()
}

// SetState follows the lifecycle
func (m *JourneyModel) SetState(state domain.AppState) {
	if state == m.state {
		return
	}
	m.state = state
	if state == domain.StateUpdating && m.editing {
		m.closeEdit()
	}
	m.rebuild()
}

// Document returns the document on screen
func (m *JourneyModel) Document() *domain.Document {
	return m.doc
}

// Active returns the index of the active scene
func (m *JourneyModel) Active() int {
	if m.tracker == nil {
		return 0
	}
	return m.tracker.Active()
}

// SetSize updates the view dimensions and re-lays out the page
func (m *JourneyModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	m.ambient.Resize(width, height)
	m.viewport.Width = width
	m.viewport.Height = m.bodyHeight()
	m.edit.SetWidth(max(width-4, 10))
	m.rebuild()
	m.sample()
}

func (m *JourneyModel) bodyHeight() int {
	chrome := 3 // glow, navigation, status
	if m.editing {
		chrome += m.edit.Height() + 3
	}
	return max(m.Height-chrome, 1)
}

// Init initializes the journey view
func (m *JourneyModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the journey view
func (m *JourneyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case settleMsg:
		if msg.seq == m.settle && m.tracker != nil && m.tracker.Settle(m.regions, m.view()) {
			m.rebuild()
		}
		return m, nil

	case exportedMsg:
		return m, m.exported(msg)

	case tea.MouseMsg:
		m.ambient.Move(msg.X, msg.Y)
		return m, m.scrollWith(msg)

	case tea.KeyMsg:
		if handled, cmd := m.confirm.HandleKeyMsg(msg, func() tea.Msg { return ResetMsg{} }); handled {
			return m, cmd
		}
		if m.editing {
			return m, m.updateEdit(msg)
		}
		if m.tocOpen {
			return m, m.updateTOC(msg)
		}
		return m, m.updateKeys(msg)
	}

	if m.editing {
		var cmd tea.Cmd
		m.edit, cmd = m.edit.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *JourneyModel) updateKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, JourneyKeys.Quit):
		return tea.Quit
	case key.Matches(msg, JourneyKeys.Help):
		return func() tea.Msg { return SwitchToHelpMsg{} }
	case key.Matches(msg, JourneyKeys.TOC):
		m.tocOpen = true
		m.toc.SetCursor(m.Active())
		return nil
	case key.Matches(msg, JourneyKeys.Top):
		m.viewport.GotoTop()
		return m.scrolled()
	case key.Matches(msg, JourneyKeys.Bottom):
		m.viewport.GotoBottom()
		return m.scrolled()
	case key.Matches(msg, JourneyKeys.Export):
		return m.export(false)
	case key.Matches(msg, JourneyKeys.Open):
		return m.export(true)
	case key.Matches(msg, JourneyKeys.Reset):
		if m.state == domain.StateReady {
			m.confirm.Open()
		}
		return nil
	case key.Matches(msg, JourneyKeys.Edit):
		if m.state != domain.StateReady {
			return nil
		}
		m.editing = true
		m.viewport.Height = m.bodyHeight()
		return m.edit.Focus()
	case key.Matches(msg, JourneyKeys.EditExternal):
		if m.state != domain.StateReady {
			return nil
		}
		return m.openDraft(m.edit.Value())
	}
	return m.scrollWith(msg)
}

func (m *JourneyModel) updateEdit(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, JourneyKeys.Cancel):
		m.closeEdit()
		return nil
	case key.Matches(msg, JourneyKeys.EditExternal):
		value := m.edit.Value()
		m.closeEdit()
		return m.openDraft(value)
	case key.Matches(msg, JourneyKeys.Jump):
		instruction := strings.TrimSpace(m.edit.Value())
		if instruction == "" {
			return nil
		}
		m.edit.Reset()
		m.closeEdit()
		return func() tea.Msg { return SubmitEditMsg{Instruction: instruction} }
	}
	var cmd tea.Cmd
	m.edit, cmd = m.edit.Update(msg)
	return cmd
}

func (m *JourneyModel) closeEdit() {
	m.editing = false
	m.edit.Blur()
	m.viewport.Height = m.bodyHeight()
}

func (m *JourneyModel) openDraft(initial string) tea.Cmd {
	path, err := editor.NewDraft(initial)
	if err != nil {
		m.SetMessage(err.Error(), true)
		return nil
	}
	return func() tea.Msg { return OpenEditorMsg{Path: path} }
}

func (m *JourneyModel) updateTOC(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, JourneyKeys.Cancel), key.Matches(msg, JourneyKeys.TOC):
		m.tocOpen = false
	case key.Matches(msg, JourneyKeys.Up):
		m.toc.CursorUp()
	case key.Matches(msg, JourneyKeys.Down):
		m.toc.CursorDown()
	case key.Matches(msg, JourneyKeys.PrevPage):
		m.toc.PrevPage()
	case key.Matches(msg, JourneyKeys.NextPage):
		m.toc.NextPage()
	case key.Matches(msg, JourneyKeys.Jump):
		m.tocOpen = false
		return m.JumpTo(m.toc.Cursor())
	case key.Matches(msg, JourneyKeys.Quit):
		return tea.Quit
	}
	return nil
}

// JumpTo scrolls scene i to the top of the viewport and makes it active
func (m *JourneyModel) JumpTo(i int) tea.Cmd {
	if i < 0 || i >= len(m.regions) {
		return nil
	}
	m.viewport.SetYOffset(int(m.regions[i].Top))
	m.tracker.SetActive(i)
	return m.scrolled()
}

func (m *JourneyModel) scrollWith(msg tea.Msg) tea.Cmd {
	before := m.viewport.YOffset
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	if m.viewport.YOffset == before {
		return cmd
	}
	return tea.Batch(cmd, m.scrolled())
}

// scrolled samples the new position and schedules the stop correction
func (m *JourneyModel) scrolled() tea.Cmd {
	m.sample()
	m.settle++
	seq := m.settle
	return tea.Tick(settleDelay, func(time.Time) tea.Msg {
		return settleMsg{seq: seq}
	})
}

func (m *JourneyModel) view() scroll.Viewport {
	return scroll.Viewport{Top: float64(m.viewport.YOffset), Height: float64(m.viewport.Height)}
}

func (m *JourneyModel) sample() {
	if m.tracker == nil || len(m.regions) == 0 {
		return
	}
	m.tracker.Sample(m.regions, m.view())
	m.rebuild()
}

// rebuild renders the page for the current scroll state. Scene heights do
// not depend on progress, so regions stay valid across rebuilds.
func (m *JourneyModel) rebuild() {
	if m.doc == nil || m.tracker == nil || m.Width <= 0 {
		m.tree = nil
		m.regions = nil
		m.viewport.SetContent("")
		return
	}

	m.tree = render.Journey(m.doc, m.tracker.State(m.ambient.Pointer()), m.state)
	if m.tree == nil {
		m.viewport.SetContent("")
		return
	}

	page := m.doc.Palette(0)
	width := m.viewport.Width
	entityCols := min(32, max(width/3, 8))

	var b strings.Builder
	line := 0
	write := func(s string) {
		b.WriteString(s)
		b.WriteString("\n")
		line += lipgloss.Height(s)
	}

	write("")
	write(termrender.New(width, page.Background).Render(m.tree.Find("hero-text")))
	write("")

	regions := make([]scroll.Region, 0, len(m.doc.Screenplay))
	if scenes := m.tree.Find("scenes"); scenes != nil {
		for i, scene := range scenes.Children {
			palette := m.doc.Palette(i)
			r := termrender.New(width, palette.Background).WithEntitySize(entityCols)
			start := line
			band := r.Pattern(scene.Find("background"))
			write(band)
			write(r.Render(scene))
			write(band)
			write("")
			regions = append(regions, scroll.Region{Top: float64(start), Height: float64(line - start)})
		}
	}

	last := m.doc.Palette(len(m.doc.Screenplay) - 1)
	write(termrender.New(width, last.Background).Render(m.tree.Find("footer")))

	m.regions = regions
	m.viewport.SetContent(b.String())
}

func (m *JourneyModel) export(open bool) tea.Cmd {
	if m.doc == nil || m.deps.Exporter == nil {
		return nil
	}
	doc, dir := m.doc, m.deps.ExportDir
	m.SetMessage("Exporting...", false)
	return func() tea.Msg {
		result, err := commands.NewExportCommand(m.deps.Exporter, doc, dir).Execute(context.Background())
		return exportedMsg{result: result, open: open, err: err}
	}
}

func (m *JourneyModel) exported(msg exportedMsg) tea.Cmd {
	if msg.err != nil {
		m.SetMessage(msg.err.Error(), true)
		return nil
	}
	text := msg.result.Message
	if err := m.deps.Clipboard(msg.result.Path); err == nil {
		text += " (path copied)"
	}
	if msg.open && m.deps.Opener != nil {
		if err := m.deps.Opener.Open(msg.result.Path); err != nil {
			m.SetMessage(fmt.Sprintf("%s, but it could not be opened: %v", msg.result.Message, err), true)
			return nil
		}
	}
	m.SetMessage(text, false)
	return nil
}

// glow is the ambient light at the current pointer. The pointer moves
// without a rebuild, so only the color comes from the page tree.
func (m *JourneyModel) glow() *render.Node {
	if m.tree == nil {
		return nil
	}
	n := m.tree.Find("ambient-glow")
	if n == nil {
		return nil
	}
	p := m.ambient.Pointer()
	return render.Glow(p.X, p.Y, n.Style.Color)
}

// View renders the journey view
func (m *JourneyModel) View() string {
	if m.doc == nil || m.tree == nil {
		return styles.App.Render(RenderMuted("No journey loaded"))
	}

	active := m.Active()
	palette := m.doc.Palette(active)
	r := termrender.New(m.Width, palette.Background)

	var b strings.Builder
	b.WriteString(r.Glow(m.glow()))
	b.WriteString("\n")
	b.WriteString(m.navigation(active, palette))
	b.WriteString("\n")

	if m.tocOpen {
		b.WriteString(lipgloss.NewStyle().Height(m.viewport.Height).Render(m.renderTOC(active, palette)))
	} else {
		b.WriteString(m.viewport.View())
	}
	b.WriteString("\n")

	if m.editing {
		b.WriteString(styles.Active(palette.Accent).Render("DIRECTOR'S INPUT"))
		b.WriteString("\n")
		b.WriteString(m.edit.View())
		b.WriteString("\n")
		b.WriteString(RenderHelpLine(JourneyKeys.Jump, JourneyKeys.EditExternal, JourneyKeys.Cancel))
		b.WriteString("\n")
	}

	b.WriteString(m.status())
	return b.String()
}

func (m *JourneyModel) navigation(active int, palette domain.Palette) string {
	scene, _ := m.doc.Scene(active)
	left := strings.ToUpper(m.doc.Meta.Title)
	right := fmt.Sprintf("%s  %s", render.ChapterMarker(active, len(m.doc.Screenplay)), scene.ChapterTitle)
	gap := max(m.Width-lipgloss.Width(left)-lipgloss.Width(right)-2, 1)
	return styles.Chrome(palette.Background, palette.Text).
		Width(m.Width).
		Render(left + strings.Repeat(" ", gap) + right)
}

func (m *JourneyModel) renderTOC(active int, palette domain.Palette) string {
	v := NewViewBuilder()
	v.Line(styles.Active(palette.Primary).Render("CONTENTS"))
	v.BlankLine()

	start, end := m.toc.VisibleRange()
	for i := start; i < end; i++ {
		scene := m.doc.Screenplay[i]
		line := fmt.Sprintf("%02d  %s", i+1, scene.ChapterTitle)
		switch {
		case i == m.toc.Cursor():
			line = styles.Chrome(palette.Primary, palette.Background).Render(line)
		case i == active:
			line = styles.Active(palette.Primary).Render(line)
		default:
			line = RenderMuted(line)
		}
		v.Line(line)
	}
	if m.toc.TotalPages() > 1 {
		v.BlankLine()
		v.Muted(fmt.Sprintf("page %d / %d", m.toc.CurrentPage(), m.toc.TotalPages()))
	}
	v.BlankLine()
	if m.toc.TotalPages() > 1 {
		v.Help(JourneyKeys.Up, JourneyKeys.Down, JourneyKeys.PrevPage, JourneyKeys.NextPage, JourneyKeys.Jump, JourneyKeys.Cancel)
	} else {
		v.Help(JourneyKeys.Up, JourneyKeys.Down, JourneyKeys.Jump, JourneyKeys.Cancel)
	}
	return v.String()
}

func (m *JourneyModel) status() string {
	if prompt := m.confirm.View(); prompt != "" {
		return prompt
	}

	hint := fmt.Sprintf("%3.0f%%", m.viewport.ScrollPercent()*100)
	if n := m.tree.Find("status"); n != nil {
		hint = n.Text
	} else if n := m.tree.Find("transition-veil"); n != nil {
		hint = n.Text + " ..."
	}
	if m.Message != "" {
		hint = RenderMessage(m.Message, m.MessageErr)
	}
	return RenderStatus(m.Width, hint,
		JourneyKeys.TOC, JourneyKeys.Edit, JourneyKeys.Export, JourneyKeys.Open, JourneyKeys.Reset, JourneyKeys.Help, JourneyKeys.Quit)
}
