package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"vibary/internal/adapters/browser"
	"vibary/internal/adapters/editor"
	"vibary/internal/adapters/htmlexport"
	"vibary/internal/adapters/sqlite"
	"vibary/internal/adapters/tui"
	"vibary/internal/adapters/tui/i18n"
	"vibary/internal/application/commands"
	"vibary/internal/config"
	"vibary/internal/ports"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML configuration file")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [-config file] [document.json]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(*configPath, flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, documentPath string) (err error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log, closeLog, err := cfg.Logging.FileLogger(cfg.LogPath())
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, closeLog())
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	content, err := cfg.ContentService(ctx, log)
	if err != nil {
		return err
	}
	exporter, err := htmlexport.New(log)
	if err != nil {
		return err
	}
	exportDir, err := cfg.ExportPath()
	if err != nil {
		return err
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

	app := tui.NewApp(ctx, tui.Deps{
		Content:   content,
		Extractor: cfg.Extractor(log),
		Recents:   recents,
		Exporter:  exporter,
		Opener:    browser.NewOpener(),
		Editor:    editor.NewOpener(),
		Strings:   i18n.FromEnv(os.Getenv),
		Timings:   cfg.Lifecycle(),
		ExportDir: exportDir,
		Log:       log,
	})

	if documentPath != "" {
		loaded, err := commands.NewLoadDocumentCommand(documentPath).Execute(ctx)
		if err != nil {
			return err
		}
		if err := app.Restore(loaded.Document); err != nil {
			return err
		}
		log.Info("Document restored", zap.String("path", documentPath), zap.String("title", loaded.Document.Meta.Title))
	}

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err = p.Run()
	return err
}
