package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/listenr/internal/shared"
)

// APIGet makes a direct GET request, sending the stored token when there is one.
func (r *Runner) APIGet(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: path", shared.ErrMissingArgument)
	}

	_, done, err := r.openSession(ctx)
	if err != nil {
		return err
	}
	defer done()

	r.logger.Info("GET request", "url", r.client().URL(path))

	resp, err := r.client().Get(ctx, path)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	if err := resp.Err(); err != nil {
		return fmt.Errorf("status %d: %w", resp.StatusCode, err)
	}

	if resp.IsJSON {
		return r.writeJSON(resp.JSONData, cmd.Bool("pretty"))
	}
	return r.writePlain("%s\n", resp.Body)
}
