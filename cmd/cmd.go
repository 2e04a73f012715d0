// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// app is the root command.
func (r *Runner) app() *cli.Command {
	return &cli.Command{
		Name:    "listenr",
		Usage:   "Terminal client for the music diary",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Log at debug level",
			},
		},
		Before:   r.configure,
		Commands: r.register(),
	}
}

// setupCommand writes a config file if there is none and prepares the database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Create config.toml and initialize the local database",
		Action: r.Setup,
	}
}

// authCommand handles the account session stored on this machine.
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage the signed in account",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Sign in with email and password",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "Account email (prompted when omitted)"},
					&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "Account password (prompted when omitted)"},
				},
				Action: r.AuthLogin,
			},
			{
				Name:  "register",
				Usage: "Create an account and sign in",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Usage: "Username (prompted when omitted)"},
					&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "Account email (prompted when omitted)"},
					&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "Account password (prompted when omitted)"},
				},
				Action: r.AuthRegister,
			},
			{
				Name:   "logout",
				Usage:  "Forget the stored token",
				Action: r.AuthLogout,
			},
			{
				Name:  "status",
				Usage: "Show the signed in account",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
				},
				Action: r.AuthStatus,
			},
		},
	}
}

// routeCommand exposes the path codec.
func routeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "route",
		Usage: "Inspect client addresses",
		Commands: []*cli.Command{
			{
				Name:  "decode",
				Usage: "Show the view and selectors a path resolves to",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "path"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
				},
				Action: r.RouteDecode,
			},
			{
				Name:  "encode",
				Usage: "Build the canonical path for a view",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "view"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "album", Usage: "Album id"},
					&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Usage: "Username"},
					&cli.StringFlag{Name: "list", Usage: "List id"},
					&cli.BoolFlag{Name: "share", Usage: "Print the full web link"},
				},
				Action: r.RouteEncode,
			},
			{
				Name:  "views",
				Usage: "List every view with the selector it needs",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
				},
				Action: r.RouteViews,
			},
		},
	}
}

// listCommand reads and exports lists.
func listCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "Read and export lists",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Print a list and its albums",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
				},
				Action: r.ListShow,
			},
			{
				Name:  "export",
				Usage: "Export a list to csv, md or txt",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "csv, md or txt", Value: "md"},
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Output file path (default: {id}.{format})"},
					&cli.BoolFlag{Name: "stdout", Usage: "Write to standard output instead of a file"},
				},
				Action: r.ListExport,
			},
		},
	}
}

// apiCommand handles direct API calls
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct API calls to the backend",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Direct GET with the stored credentials, prints the response",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "path"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.APIGet,
			},
		},
	}
}

// tuiCommand returns the top-level command for the interactive client.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"ui"},
		Usage:   "Launch the interactive client, optionally at a path like /u/alice",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "path", Value: "/"},
		},
		Action: r.TUI,
	}
}
