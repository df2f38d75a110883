// Package lifecycle implements the application state machine that governs
// how a document is obtained, displayed, refined and discarded.
//
// The Machine is a pure reducer: Apply takes an event and returns the
// transition together with the effects the caller must run. Executors
// (the Driver for command line use, the TUI for interactive use) perform
// the effects and feed completions back as events.
package lifecycle

import (
	"strings"
	"time"

	"vibary/internal/application"
	"vibary/internal/domain"
)

// Timings holds the delays and deadlines of the lifecycle
type Timings struct {
	Settle          time.Duration
	ErrorDisplay    time.Duration
	AnalyzeDeadline time.Duration
	CheckDeadline   time.Duration
	RefineDeadline  time.Duration
}

// DefaultTimings returns the standard lifecycle timings
func DefaultTimings() Timings {
	return Timings{
		Settle:          time.Second,
		ErrorDisplay:    4 * time.Second,
		AnalyzeDeadline: 120 * time.Second,
		CheckDeadline:   60 * time.Second,
		RefineDeadline:  60 * time.Second,
	}
}

// Transition is the outcome of applying one event
type Transition struct {
	From     domain.AppState
	To       domain.AppState
	Accepted bool
	Effects  []Effect
}

// Changed reports whether the state changed
func (t Transition) Changed() bool {
	return t.From != t.To
}

// Machine is the single writer of the application state and the document
type Machine struct {
	timings Timings

	state   domain.AppState
	doc     *domain.Document
	pending *domain.Document
	failure error

	last OpID
	op   OpID
}

// NewMachine creates a machine in Idle
func NewMachine(timings Timings) *Machine {
	return &Machine{timings: timings, state: domain.StateIdle}
}

// Restore puts a previously exported document on screen, Idle -> Ready.
// It lets a command line refinement start from a document file.
func (m *Machine) Restore(doc *domain.Document) error {
	if m.state != domain.StateIdle {
		return application.ErrInvalidOperation
	}
	if err := doc.Validate(); err != nil {
		return err
	}
	m.doc = doc
	m.enter(domain.StateReady)
	return nil
}

// State returns the current state
func (m *Machine) State() domain.AppState {
	return m.state
}

// Document returns the document while one is available, nil otherwise.
// During Transitioning this is the incoming document.
func (m *Machine) Document() *domain.Document {
	switch m.state {
	case domain.StateTransitioning:
		return m.pending
	case domain.StateReady, domain.StateUpdating:
		return m.doc
	default:
		return nil
	}
}

// Failure returns the error displayed in the Error state
func (m *Machine) Failure() error {
	if m.state != domain.StateError {
		return nil
	}
	return m.failure
}

// Pending returns the token of the operation or timer the machine waits on
func (m *Machine) Pending() OpID {
	return m.op
}

// Apply feeds one event to the machine
func (m *Machine) Apply(ev Event) Transition {
	t := Transition{From: m.state, To: m.state}

	var effects []Effect
	var ok bool
	switch e := ev.(type) {
	case SubmitFile:
		effects, ok = m.submitFile(e)
	case SubmitTitle:
		effects, ok = m.submitTitle(e)
	case SubmitEdit:
		effects, ok = m.submitEdit(e)
	case Reset:
		ok = m.reset()
	case SourceExtracted:
		if m.current(e.Op, domain.StateReadingSource) {
			effects, ok = m.startAnalysis(e.Text), true
		}
	case DocumentProduced:
		effects, ok = m.documentProduced(e)
	case TitleChecked:
		effects, ok = m.titleChecked(e)
	case OperationFailed:
		effects, ok = m.operationFailed(e.Op, e.Err)
	case DeadlineElapsed:
		effects, ok = m.operationFailed(e.Op, m.timeoutError(e.After))
	case SettleElapsed:
		if m.current(e.Op, domain.StateTransitioning) {
			m.doc, m.pending = m.pending, nil
			m.enter(domain.StateReady)
			ok = true
		}
	case ErrorShown:
		if m.current(e.Op, domain.StateError) {
			m.failure = nil
			m.enter(domain.StateIdle)
			ok = true
		}
	}

	t.Accepted = ok
	t.To = m.state
	t.Effects = effects
	return t
}

func (m *Machine) submitFile(e SubmitFile) ([]Effect, bool) {
	if m.state != domain.StateIdle || strings.TrimSpace(e.Path) == "" {
		return nil, false
	}
	op := m.enter(domain.StateReadingSource)
	return []Effect{ExtractSource{Op: op, Path: e.Path}}, true
}

func (m *Machine) submitTitle(e SubmitTitle) ([]Effect, bool) {
	title := strings.TrimSpace(e.Title)
	if m.state != domain.StateIdle || title == "" {
		return nil, false
	}
	op := m.enter(domain.StateCheckingKnowledge)
	return []Effect{
		CheckTitle{Op: op, Title: title},
		m.deadline(op, m.timings.CheckDeadline),
	}, true
}

func (m *Machine) submitEdit(e SubmitEdit) ([]Effect, bool) {
	instruction := strings.TrimSpace(e.Instruction)
	if m.state != domain.StateReady || instruction == "" || m.doc == nil {
		return nil, false
	}
	op := m.enter(domain.StateUpdating)
	return []Effect{
		RefineDocument{Op: op, Document: m.doc, Instruction: instruction},
		m.deadline(op, m.timings.RefineDeadline),
	}, true
}

func (m *Machine) reset() bool {
	if m.state != domain.StateReady {
		return false
	}
	m.doc = nil
	m.enter(domain.StateIdle)
	return true
}

func (m *Machine) startAnalysis(text string) []Effect {
	op := m.enter(domain.StateAnalyzing)
	return []Effect{
		AnalyzeText{Op: op, Text: text},
		m.deadline(op, m.timings.AnalyzeDeadline),
	}
}

func (m *Machine) documentProduced(e DocumentProduced) ([]Effect, bool) {
	if e.Op != m.op {
		return nil, false
	}
	switch m.state {
	case domain.StateAnalyzing:
		if e.Document.Validate() != nil {
			return m.operationFailed(e.Op, application.ErrMalformedResponse)
		}
		return m.transition(e.Document), true
	case domain.StateUpdating:
		if e.Document.Validate() != nil {
			return m.operationFailed(e.Op, application.ErrMalformedResponse)
		}
		m.doc = e.Document
		m.enter(domain.StateReady)
		return nil, true
	}
	return nil, false
}

func (m *Machine) titleChecked(e TitleChecked) ([]Effect, bool) {
	if !m.current(e.Op, domain.StateCheckingKnowledge) {
		return nil, false
	}
	if !e.Known || e.Document.Validate() != nil {
		return m.showError(application.ErrNotRecognized), true
	}
	return m.transition(e.Document), true
}

// operationFailed handles both explicit failures and deadlines. Whichever
// arrives first for the current op wins; the loser finds a newer op and is dropped.
func (m *Machine) operationFailed(op OpID, err error) ([]Effect, bool) {
	if op != m.op {
		return nil, false
	}
	switch m.state {
	case domain.StateReadingSource, domain.StateAnalyzing:
		m.doc = nil
		m.enter(domain.StateIdle)
		return []Effect{Notify{Level: NoticeBlocking, Err: err}}, true
	case domain.StateCheckingKnowledge:
		return m.showError(err), true
	case domain.StateUpdating:
		// The previous document stays on screen
		m.enter(domain.StateReady)
		return []Effect{Notify{Level: NoticeLogged, Err: err}}, true
	}
	return nil, false
}

func (m *Machine) transition(doc *domain.Document) []Effect {
	m.pending = doc
	op := m.enter(domain.StateTransitioning)
	return []Effect{Schedule{After: m.timings.Settle, Event: SettleElapsed{Op: op}}}
}

func (m *Machine) showError(err error) []Effect {
	m.failure = err
	op := m.enter(domain.StateError)
	return []Effect{
		Notify{Level: NoticeInline, Err: err},
		Schedule{After: m.timings.ErrorDisplay, Event: ErrorShown{Op: op}},
	}
}

func (m *Machine) deadline(op OpID, after time.Duration) Effect {
	return Schedule{After: after, Event: DeadlineElapsed{Op: op, After: after}}
}

func (m *Machine) timeoutError(after time.Duration) error {
	return &application.TimeoutError{Op: m.state.String(), After: after.String()}
}

// enter moves to state and issues a fresh token, invalidating every
// completion still in flight for the previous one.
func (m *Machine) enter(state domain.AppState) OpID {
	m.state = state
	m.last++
	m.op = m.last
	return m.op
}

func (m *Machine) current(op OpID, state domain.AppState) bool {
	return op == m.op && m.state == state
}
