package domain

// AppState is the lifecycle phase of the application
type AppState int

const (
	StateIdle AppState = iota
	StateReadingSource
	StateAnalyzing
	StateCheckingKnowledge
	StateUpdating
	StateTransitioning
	StateReady
	StateError
)

func (s AppState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateReadingSource:
		return "reading_source"
	case StateAnalyzing:
		return "analyzing"
	case StateCheckingKnowledge:
		return "checking_knowledge"
	case StateUpdating:
		return "updating"
	case StateTransitioning:
		return "transitioning"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Working reports whether an operation is in flight in this state
func (s AppState) Working() bool {
	switch s {
	case StateReadingSource, StateAnalyzing, StateCheckingKnowledge, StateUpdating:
		return true
	default:
		return false
	}
}

// HasDocument reports whether a document is available in this state
func (s AppState) HasDocument() bool {
	return s == StateTransitioning || s == StateReady || s == StateUpdating
}
