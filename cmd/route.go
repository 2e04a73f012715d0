package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/listenr/internal/route"
	"github.com/desertthunder/listenr/internal/shared"
	"github.com/desertthunder/listenr/internal/views"
)

type decoded struct {
	Path        string `json:"path"`
	View        string `json:"view"`
	AlbumID     string `json:"album_id,omitempty"`
	Username    string `json:"username,omitempty"`
	ListID      string `json:"list_id,omitempty"`
	Canonical   string `json:"canonical"`
	Addressable bool   `json:"addressable"`
	AuthOnly    bool   `json:"auth_only"`
}

// RouteDecode prints what a client path resolves to.
func (r *Runner) RouteDecode(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	t := route.Decode(path)
	out := decoded{
		Path:        route.Normalize(path),
		View:        t.View.String(),
		AlbumID:     t.AlbumID,
		Username:    t.Username,
		ListID:      t.ListID,
		Canonical:   route.Encode(t),
		Addressable: route.Addressable(t),
		AuthOnly:    views.AuthOnly(t),
	}

	if cmd.Bool("json") {
		return r.writeJSON(out, false)
	}

	r.writePlain("view:        %s\n", out.View)
	if s := t.View.Requires(); s != route.NoSelector {
		r.writePlain("%-12s %s\n", s.String()+":", t.Selector())
	}
	r.writePlain("canonical:   %s\n", out.Canonical)
	r.writePlain("members only: %t\n", out.AuthOnly)
	return nil
}

type viewInfo struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	Requires string `json:"requires,omitempty"`
	Chrome   bool   `json:"chrome"`
	AuthOnly bool   `json:"auth_only"`
}

// RouteViews prints every view the client knows with its contract.
func (r *Runner) RouteViews(ctx context.Context, cmd *cli.Command) error {
	all := views.All()
	out := make([]viewInfo, 0, len(all))
	for _, c := range all {
		info := viewInfo{Name: c.View.String(), Title: c.Title, Chrome: c.Chrome, AuthOnly: c.AuthOnly}
		if c.Requires != route.NoSelector {
			info.Requires = c.Requires.String()
		}
		out = append(out, info)
	}

	if cmd.Bool("json") {
		return r.writeJSON(out, false)
	}

	for _, v := range out {
		access := "public"
		if v.AuthOnly {
			access = "members"
		}
		requires := v.Requires
		if requires == "" {
			requires = "-"
		}
		r.writePlain("%-13s %-16s %-9s %s\n", v.Name, v.Title, requires, access)
	}
	return nil
}

// RouteEncode prints the canonical path for a view and selectors.
func (r *Runner) RouteEncode(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("view")
	if name == "" {
		return fmt.Errorf("%w: view", shared.ErrMissingArgument)
	}
	v, err := route.ParseView(name)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidArgument, err)
	}

	t := route.Target{
		View:     v,
		AlbumID:  cmd.String("album"),
		Username: cmd.String("username"),
		ListID:   cmd.String("list"),
	}
	if !route.Addressable(t) {
		return fmt.Errorf("%w: %s has no address without its %s", shared.ErrInvalidArgument, v, v.Requires())
	}

	path := route.Encode(t)
	if cmd.Bool("share") {
		link, err := shared.ShareURL(r.config.Web.BaseURL, path)
		if err != nil {
			return err
		}
		path = link
	}
	return r.writePlain("%s\n", path)
}
