package tui

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"vibary/internal/adapters/editor"
	"vibary/internal/adapters/tui/i18n"
	"vibary/internal/adapters/tui/views"
	"vibary/internal/application/lifecycle"
	"vibary/internal/domain"
	"vibary/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewMain ViewState = iota
	ViewHelp
)

// Deps are the collaborators of the application. Recents, Opener and
// Editor may be nil.
type Deps struct {
	Content   ports.ContentService
	Extractor ports.SourceExtractor
	Recents   ports.RecentTitles
	Exporter  ports.ArtifactExporter
	Opener    ports.ArtifactOpener
	Editor    ports.EditorOpener
	Strings   i18n.Strings
	Timings   lifecycle.Timings
	ExportDir string
	Log       *zap.Logger
}

// App is the main TUI application model. It is the only writer of the
// state machine: user requests and operation completions all arrive as
// messages on the bubbletea loop.
type App struct {
	ctx     context.Context
	machine *lifecycle.Machine
	exec    *lifecycle.Executor
	recents ports.RecentTitles
	editor  ports.EditorOpener
	log     *zap.Logger

	state   ViewState
	hero    *views.HeroModel
	journey *views.JourneyModel
	help    *views.HelpModel

	width  int
	height int
}

// eventMsg carries a lifecycle event back into the loop
type eventMsg struct {
	ev lifecycle.Event
}

type lastTitleMsg struct {
	title string
}

type editorFinishedMsg struct {
	path string
	err  error
}

// NewApp creates a new TUI application
func NewApp(ctx context.Context, deps Deps) *App {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &App{
		ctx:     ctx,
		machine: lifecycle.NewMachine(deps.Timings),
		exec:    lifecycle.NewExecutor(deps.Content, deps.Extractor, deps.Recents, log),
		recents: deps.Recents,
		editor:  deps.Editor,
		log:     log.Named("tui"),
		state:   ViewMain,
		hero:    views.NewHeroModel(deps.Strings),
		journey: views.NewJourneyModel(views.JourneyDeps{
			Exporter:  deps.Exporter,
			Opener:    deps.Opener,
			ExportDir: deps.ExportDir,
		}),
		help: views.NewHelpModel(),
	}
}

// Restore opens the app on an existing document instead of the hero
func (a *App) Restore(doc *domain.Document) error {
	if err := a.machine.Restore(doc); err != nil {
		return err
	}
	a.sync()
	return nil
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.hero.Init(), a.loadLastTitle)
}

func (a *App) loadLastTitle() tea.Msg {
	if a.recents == nil {
		return nil
	}
	title, err := a.recents.Last(a.ctx)
	if err != nil {
		a.log.Warn("Unable to read recent titles", zap.Error(err))
		return nil
	}
	return lastTitleMsg{title: title}
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.hero.Update(msg)
		a.journey.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	case lastTitleMsg:
		a.hero.Prefill(msg.title)
		return a, nil

	// View switching messages
	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToMainMsg:
		a.state = ViewMain
		return a, nil

	// Requests
	case views.SubmitTitleMsg:
		return a, a.apply(lifecycle.SubmitTitle{Title: msg.Title})

	case views.SubmitFileMsg:
		return a, a.apply(lifecycle.SubmitFile{Path: msg.Path})

	case views.SubmitEditMsg:
		return a, a.apply(lifecycle.SubmitEdit{Instruction: msg.Instruction})

	case views.ResetMsg:
		return a, a.apply(lifecycle.Reset{})

	case eventMsg:
		return a, a.apply(msg.ev)

	case views.OpenEditorMsg:
		return a, a.openEditor(msg.Path)

	case editorFinishedMsg:
		return a, a.editorFinished(msg)
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch {
	case a.state == ViewHelp:
		_, cmd = a.help.Update(msg)
	case a.machine.State().HasDocument():
		_, cmd = a.journey.Update(msg)
	default:
		_, cmd = a.hero.Update(msg)
	}

	return a, cmd
}

// apply feeds ev to the machine and turns the resulting effects into commands
func (a *App) apply(ev lifecycle.Event) tea.Cmd {
	t := a.machine.Apply(ev)
	if !t.Accepted {
		a.log.Debug("Event discarded", zap.String("event", fmt.Sprintf("%T", ev)), zap.Stringer("state", t.From))
		return nil
	}
	a.log.Debug("Transition",
		zap.String("event", fmt.Sprintf("%T", ev)),
		zap.Stringer("from", t.From),
		zap.Stringer("to", t.To),
	)

	var cmds []tea.Cmd
	for _, eff := range t.Effects {
		if cmd := a.perform(eff); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	cmds = append(cmds, a.sync())
	return tea.Batch(cmds...)
}

func (a *App) perform(eff lifecycle.Effect) tea.Cmd {
	switch e := eff.(type) {
	case lifecycle.Schedule:
		return tea.Tick(e.After, func(_ time.Time) tea.Msg {
			return eventMsg{ev: e.Event}
		})
	case lifecycle.Notify:
		switch e.Level {
		case lifecycle.NoticeLogged:
			a.log.Warn("Operation failed, keeping current document", zap.Error(e.Err))
		case lifecycle.NoticeBlocking:
			a.log.Error("Operation failed", zap.Error(e.Err))
			a.hero.Alert(e.Err)
		default:
			a.log.Info("Operation rejected", zap.Error(e.Err))
		}
		return nil
	}
	if !lifecycle.Operation(eff) {
		return nil
	}
	return func() tea.Msg {
		if done := a.exec.Perform(a.ctx, eff); done != nil {
			return eventMsg{ev: done}
		}
		return nil
	}
}

// sync pushes the machine state into the views
func (a *App) sync() tea.Cmd {
	state := a.machine.State()
	cmd := a.hero.SetState(state, a.machine.Failure())
	if state.HasDocument() {
		a.journey.SetState(state)
		a.journey.SetDocument(a.machine.Document())
	} else {
		a.journey.SetDocument(nil)
		a.journey.SetState(state)
	}
	return cmd
}

func (a *App) openEditor(path string) tea.Cmd {
	if a.editor == nil {
		os.Remove(path)
		return nil
	}

	cmd, err := a.editor.Command(path)
	if err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{path: path, err: err}
		}
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{path: path, err: err}
	})
}

func (a *App) editorFinished(msg editorFinishedMsg) tea.Cmd {
	defer os.Remove(msg.path)
	if msg.err != nil {
		a.journey.SetMessage(msg.err.Error(), true)
		return nil
	}
	instruction, err := editor.ReadDraft(msg.path)
	if err != nil {
		a.journey.SetMessage(err.Error(), true)
		return nil
	}
	if instruction == "" {
		a.journey.SetMessage("Empty instruction, nothing changed", false)
		return nil
	}
	return a.apply(lifecycle.SubmitEdit{Instruction: instruction})
}

// View renders the current view
func (a *App) View() string {
	switch {
	case a.state == ViewHelp:
		return a.help.View()
	case a.machine.State().HasDocument():
		return a.journey.View()
	default:
		return a.hero.View()
	}
}
