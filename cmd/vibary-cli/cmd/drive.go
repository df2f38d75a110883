package cmd

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"vibary/internal/adapters/sqlite"
	"vibary/internal/application/commands"
	"vibary/internal/application/lifecycle"
	"vibary/internal/domain"
	"vibary/internal/ports"
)

var outputPath string

// drive runs one lifecycle request to completion. When restore is not nil
// the machine starts from it, as a refinement does.
func drive(ctx context.Context, restore *domain.Document, initial lifecycle.Event) (doc *domain.Document, err error) {
	content, err := cfg.ContentService(ctx, log)
	if err != nil {
		return nil, err
	}

	var recents ports.RecentTitles
	store, openErr := sqlite.Open(cfg.RecentsPath())
	if openErr != nil {
		log.Warn("Recent titles unavailable", zap.Error(openErr))
	} else {
		recents = store
		defer func() {
			err = multierr.Append(err, store.Close())
		}()
	}

	machine := lifecycle.NewMachine(cfg.Lifecycle())
	if restore != nil {
		if err := machine.Restore(restore); err != nil {
			return nil, err
		}
	}
	driver := lifecycle.NewDriver(machine, lifecycle.NewExecutor(content, cfg.Extractor(log), recents, log), log)
	driver.OnTransition = func(t lifecycle.Transition) {
		log.Info("State", zap.Stringer("to", t.To))
	}

	out, err := driver.Run(ctx, initial)
	if err != nil {
		return nil, err
	}
	if out.Err != nil {
		return nil, out.Err
	}
	if out.Document == nil {
		return nil, fmt.Errorf("no document produced (state %s)", out.State)
	}
	return out.Document, nil
}

// writeDocument saves doc to --output, or prints it to stdout
func writeDocument(ctx context.Context, doc *domain.Document) error {
	if outputPath == "" {
		data, err := doc.Encode()
		if err != nil {
			return fmt.Errorf("failed to encode document: %w", err)
		}
		_, err = os.Stdout.Write(append(data, '\n'))
		return err
	}
	msg, err := commands.NewSaveDocumentCommand(doc, outputPath).Execute(ctx)
	if err != nil {
		return err
	}
	log.Info(msg)
	return nil
}

func loadDocument(ctx context.Context, path string) (*domain.Document, error) {
	result, err := commands.NewLoadDocumentCommand(path).Execute(ctx)
	if err != nil {
		return nil, err
	}
	log.Debug(result.Message)
	return result.Document, nil
}
