package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/listenr/internal/repositories"
	"github.com/desertthunder/listenr/internal/session"
	"github.com/desertthunder/listenr/internal/shared"
)

// AuthLogin exchanges email and password for a token and stores it.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	email, err := r.flagOrPrompt(cmd, "email", "Email", false)
	if err != nil {
		return err
	}
	password, err := r.flagOrPrompt(cmd, "password", "Password", true)
	if err != nil {
		return err
	}

	store, done, err := r.openSession(ctx)
	if err != nil {
		return err
	}
	defer done()

	if err := store.Login(ctx, email, password); err != nil {
		return fmt.Errorf("sign in failed: %w", err)
	}
	return r.signedIn(store.Session())
}

// AuthRegister creates an account and stores its token.
func (r *Runner) AuthRegister(ctx context.Context, cmd *cli.Command) error {
	username, err := r.flagOrPrompt(cmd, "username", "Username", false)
	if err != nil {
		return err
	}
	email, err := r.flagOrPrompt(cmd, "email", "Email", false)
	if err != nil {
		return err
	}
	password, err := r.flagOrPrompt(cmd, "password", "Password", true)
	if err != nil {
		return err
	}

	store, done, err := r.openSession(ctx)
	if err != nil {
		return err
	}
	defer done()

	if err := store.Register(ctx, username, email, password); err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}
	return r.signedIn(store.Session())
}

func (r *Runner) signedIn(s session.Session) error {
	r.logger.Info("signed in", "username", s.Username())
	return r.writePlain("✓ Signed in as @%s\n", s.Username())
}

// AuthLogout forgets the stored token. The backend is not contacted.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	db, err := shared.OpenDatabase(r.config.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	r.store = session.New(r.client(), repositories.NewTokenRepository(db), r.logger)
	if err := r.store.Logout(ctx); err != nil {
		return err
	}
	return r.writePlain("✓ Signed out\n")
}

// AuthStatus resolves the stored token and reports who it belongs to.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	store, done, err := r.openSession(ctx)
	if err != nil {
		return err
	}
	defer done()

	id, err := store.Require()
	if cmd.Bool("json") {
		return r.writeJSON(map[string]any{"authenticated": err == nil, "user": id}, false)
	}
	if err != nil {
		return r.writePlain("Not signed in\n")
	}

	r.writePlain("Signed in as @%s <%s>\n", id.Username, id.Email)
	if id.IsAdmin {
		r.writePlain("Role: admin\n")
	}
	return nil
}
