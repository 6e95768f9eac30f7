package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/amonks/kanban/internal/config"
	"github.com/amonks/kanban/internal/dates"
	"github.com/amonks/kanban/internal/editor"
	"github.com/amonks/kanban/internal/logging"
	"github.com/amonks/kanban/internal/paths"
	"github.com/amonks/kanban/internal/storage"
	"github.com/amonks/kanban/internal/ui"
	"github.com/amonks/kanban/tracker"
)

// app is everything a command needs, built from the effective config.
type app struct {
	cfg     *config.Config
	tracker *tracker.Tracker
	ui      *ui.Presenter

	store  storage.Store
	logger *logging.Logger
}

func loadConfig() (*config.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	cfg, err := config.Load(cwd, configPath)
	if err != nil {
		return nil, err
	}
	if boardPath != "" {
		if cfg.Storage.Path, err = paths.Expand(boardPath); err != nil {
			return nil, err
		}
	}

	colorMode = cfg.Display.Color
	return cfg, nil
}

func openApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger, err := logging.New().Level(cfg.Log.Level).ToPath(cfg.Log.Path).Make()
	if err != nil {
		return nil, err
	}

	store, err := storage.Open(storage.Backend(cfg.Storage.Backend), cfg.Storage.Path)
	if err != nil {
		return nil, errors.Join(err, logger.Close())
	}

	t, err := tracker.New(tracker.Options{
		Storage:      store,
		Editor:       editor.New(cfg.Editor.Command),
		Dates:        dates.New(),
		Logger:       &logger.Logger,
		HistoryLimit: cfg.History.Limit,
	})
	if err != nil {
		return nil, errors.Join(err, store.Close(), logger.Close())
	}

	presenter := ui.NewPresenter(os.Stdout, os.Stderr, ui.Options{
		Color: cfg.Display.Color,
		Width: cfg.Display.Width,
		Now:   t.Now,
	})

	return &app{cfg: cfg, tracker: t, ui: presenter, store: store, logger: logger}, nil
}

func (a *app) Close() error {
	return errors.Join(a.store.Close(), a.logger.Close())
}

// withApp opens the app, runs fn, and closes the app.
func withApp(fn func(*app) error) (err error) {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, a.Close())
	}()
	return fn(a)
}

// renderBoard loads and renders the whole board.
func (a *app) renderBoard() error {
	b, err := a.tracker.Board()
	if err != nil {
		return err
	}
	return a.ui.RenderBoard(b)
}
