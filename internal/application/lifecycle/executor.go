package lifecycle

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"vibary/internal/ports"
)

// Executor performs the operation effects of the machine against the ports.
// Perform blocks; callers decide how to run it (goroutine, tea.Cmd).
type Executor struct {
	content   ports.ContentService
	extractor ports.SourceExtractor
	recents   ports.RecentTitles
	log       *zap.Logger
}

// NewExecutor creates an executor. recents may be nil.
func NewExecutor(content ports.ContentService, extractor ports.SourceExtractor, recents ports.RecentTitles, log *zap.Logger) *Executor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Executor{
		content:   content,
		extractor: extractor,
		recents:   recents,
		log:       log.Named("executor"),
	}
}

// Operation reports whether eff must be run through Perform
func Operation(eff Effect) bool {
	switch eff.(type) {
	case ExtractSource, AnalyzeText, CheckTitle, RefineDocument:
		return true
	default:
		return false
	}
}

// Perform runs one operation effect and returns the completion event.
// Non-operation effects return nil.
func (x *Executor) Perform(ctx context.Context, eff Effect) Event {
	switch e := eff.(type) {
	case ExtractSource:
		text, err := x.extractor.Extract(ctx, e.Path)
		if err != nil {
			return OperationFailed{Op: e.Op, Err: fmt.Errorf("failed to read %s: %w", e.Path, err)}
		}
		x.log.Debug("Source extracted", zap.String("path", e.Path), zap.Int("chars", len(text)))
		return SourceExtracted{Op: e.Op, Text: text}

	case AnalyzeText:
		doc, err := x.content.Analyze(ctx, e.Text)
		if err != nil {
			return OperationFailed{Op: e.Op, Err: err}
		}
		return DocumentProduced{Op: e.Op, Document: doc}

	case CheckTitle:
		if x.recents != nil {
			if err := x.recents.Remember(ctx, e.Title); err != nil {
				x.log.Warn("Unable to remember title", zap.String("title", e.Title), zap.Error(err))
			}
		}
		check, err := x.content.CheckTitle(ctx, e.Title)
		if err != nil {
			return OperationFailed{Op: e.Op, Err: err}
		}
		return TitleChecked{Op: e.Op, Known: check.Known, Document: check.Document}

	case RefineDocument:
		doc, err := x.content.Refine(ctx, e.Document, e.Instruction)
		if err != nil {
			return OperationFailed{Op: e.Op, Err: err}
		}
		return DocumentProduced{Op: e.Op, Document: doc}
	}
	return nil
}
