package lifecycle

import (
	"time"

	"vibary/internal/domain"
)

// OpID identifies one pending operation or timer. A completion whose OpID
// does not match the machine's current one is stale and gets discarded.
type OpID uint64

// Event is an input to the machine
type Event interface {
	event()
}

// SubmitFile starts the file path: Idle -> ReadingSource
type SubmitFile struct {
	Path string
}

// SubmitTitle starts the title path: Idle -> CheckingKnowledge
type SubmitTitle struct {
	Title string
}

// SubmitEdit asks for a refinement of the current document: Ready -> Updating
type SubmitEdit struct {
	Instruction string
}

// Reset discards the current document: Ready -> Idle
type Reset struct{}

// SourceExtracted reports extracted text for the ReadingSource operation
type SourceExtracted struct {
	Op   OpID
	Text string
}

// DocumentProduced reports a document from Analyze or Refine
type DocumentProduced struct {
	Op       OpID
	Document *domain.Document
}

// TitleChecked reports the outcome of a title lookup
type TitleChecked struct {
	Op       OpID
	Known    bool
	Document *domain.Document
}

// OperationFailed reports an error from the pending operation
type OperationFailed struct {
	Op  OpID
	Err error
}

// DeadlineElapsed fires when the pending operation ran out of time
type DeadlineElapsed struct {
	Op    OpID
	After time.Duration
}

// SettleElapsed ends the Transitioning phase
type SettleElapsed struct {
	Op OpID
}

// ErrorShown ends the Error display
type ErrorShown struct {
	Op OpID
}

func (SubmitFile) event()       {}
func (SubmitTitle) event()      {}
func (SubmitEdit) event()       {}
func (Reset) event()            {}
func (SourceExtracted) event()  {}
func (DocumentProduced) event() {}
func (TitleChecked) event()     {}
func (OperationFailed) event()  {}
func (DeadlineElapsed) event()  {}
func (SettleElapsed) event()    {}
func (ErrorShown) event()       {}

// Effect is work the machine asks its executor to perform
type Effect interface {
	effect()
}

// ExtractSource reads the uploaded file
type ExtractSource struct {
	Op   OpID
	Path string
}

// AnalyzeText sends extracted text to the content service
type AnalyzeText struct {
	Op   OpID
	Text string
}

// CheckTitle asks the content service whether it knows a title
type CheckTitle struct {
	Op    OpID
	Title string
}

// RefineDocument asks the content service to rework the current document
type RefineDocument struct {
	Op          OpID
	Document    *domain.Document
	Instruction string
}

// Schedule delivers Event after the delay
type Schedule struct {
	After time.Duration
	Event Event
}

// NoticeLevel tells the front end how loudly to surface a failure
type NoticeLevel int

const (
	// NoticeBlocking interrupts the user (modal / stderr)
	NoticeBlocking NoticeLevel = iota
	// NoticeInline is shown in place until the error state clears
	NoticeInline
	// NoticeLogged is only written to the log
	NoticeLogged
)

func (l NoticeLevel) String() string {
	switch l {
	case NoticeBlocking:
		return "blocking"
	case NoticeInline:
		return "inline"
	default:
		return "logged"
	}
}

// Notify surfaces a failure
type Notify struct {
	Level NoticeLevel
	Err   error
}

func (ExtractSource) effect()  {}
func (AnalyzeText) effect()    {}
func (CheckTitle) effect()     {}
func (RefineDocument) effect() {}
func (Schedule) effect()       {}
func (Notify) effect()         {}
