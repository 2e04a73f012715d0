package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/listenr/internal/formatter"
	"github.com/desertthunder/listenr/internal/route"
	"github.com/desertthunder/listenr/internal/shared"
)

// ListShow prints a list with its albums.
func (r *Runner) ListShow(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: list id", shared.ErrMissingArgument)
	}

	l, err := r.client().List(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch list %s: %w", id, err)
	}
	if cmd.Bool("json") {
		return r.writeJSON(l, true)
	}
	return formatter.Write(r.output, l, formatter.Text, "")
}

// ListExport writes a list to a file in the chosen format.
func (r *Runner) ListExport(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: list id", shared.ErrMissingArgument)
	}
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	l, err := r.client().List(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch list %s: %w", id, err)
	}

	link, err := shared.ShareURL(r.config.Web.BaseURL, route.Encode(route.Target{View: route.ListDetail, ListID: l.ID}))
	if err != nil {
		r.logger.Warn("share link unavailable", "error", err)
		link = ""
	}

	if cmd.Bool("stdout") {
		return formatter.Write(r.output, l, format, link)
	}

	path, err := formatter.WriteFile(l, format, link, cmd.String("output"))
	if err != nil {
		return err
	}
	r.logger.Info("list exported", "id", l.ID, "path", path)
	return r.writePlain("✓ Exported %q (%d albums) to %s\n", l.Title, len(l.Albums), path)
}
