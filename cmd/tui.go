package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/listenr/internal/nav"
	"github.com/desertthunder/listenr/internal/repositories"
	"github.com/desertthunder/listenr/internal/route"
	"github.com/desertthunder/listenr/internal/session"
	"github.com/desertthunder/listenr/internal/shared"
	"github.com/desertthunder/listenr/internal/ui"
)

// TUI launches the interactive client at the given path.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	logger, closer, err := shared.NewFileLogger(r.config.Log.File)
	if err != nil {
		return err
	}
	defer closer.Close()
	shared.SetLogLevel(logger, r.logger.GetLevel())
	r.logger = logger

	db, err := shared.OpenDatabase(r.config.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	r.store = session.New(r.client(), repositories.NewTokenRepository(db), shared.WithLogger(logger, "component", "session"))
	r.store.Subscribe(func(s session.Session) {
		logger.Debug("session changed", "authenticated", s.Authenticated(), "username", s.Username())
	})
	history := nav.NewMemoryHistory(route.Normalize(cmd.StringArg("path")))

	model := ui.NewModel(ctx, r.store, r.client(), history,
		ui.WithLogger(shared.WithLogger(logger, "component", "ui")),
		ui.WithWebBase(r.config.Web.BaseURL),
	)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
