package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/desertthunder/listenr/internal/repositories"
	"github.com/desertthunder/listenr/internal/services"
	"github.com/desertthunder/listenr/internal/session"
	"github.com/desertthunder/listenr/internal/shared"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	api        *services.APIService
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	input      *bufio.Reader
	terminal   *os.File
	store      *session.Store
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	API        *services.APIService
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
	// Input answers prompts. Passwords are read without echo when it is a terminal.
	Input io.Reader
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: opts.Config.API.Timeout.Duration}
	}

	r := &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		api:        opts.API,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		input:      bufio.NewReader(opts.Input),
	}
	if f, ok := opts.Input.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		r.terminal = f
	}
	return r
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, routeCommand, listCommand, apiCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// configure loads the config file named by --config. A missing file is not
// an error; the defaults apply and setup can create it.
func (r *Runner) configure(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	path := cmd.String("config")
	r.configPath = path

	config, err := shared.LoadConfig(path)
	switch {
	case err == nil:
		r.config = config
		r.httpClient.Timeout = config.API.Timeout.Duration
	case errors.Is(err, shared.ErrMissingConfig):
		r.logger.Debug("no config file, using defaults", "path", path)
	default:
		return ctx, err
	}

	shared.SetLogLevel(r.logger, r.config.LogLevel())
	if cmd.Bool("verbose") {
		shared.SetLogLevel(r.logger, log.DebugLevel)
	}
	return ctx, nil
}

// client returns the API client, building it from config on first use.
func (r *Runner) client() *services.APIService {
	if r.api == nil {
		r.api = services.NewAPIService(r.config.API.BaseURL, r.httpClient,
			services.WithPrefix(r.config.API.Prefix),
			services.WithRateLimit(r.config.API.RequestsPerSecond),
			services.WithLogger(shared.WithLogger(r.logger, "component", "api")),
			services.WithCredentials(r.credential),
		)
	}
	return r.api
}

func (r *Runner) credential() string {
	if r.store == nil {
		return ""
	}
	return r.store.Token()
}

// openSession opens the local database and restores the persisted session.
// The returned func closes the database.
func (r *Runner) openSession(ctx context.Context) (*session.Store, func(), error) {
	db, err := shared.OpenDatabase(r.config.Database)
	if err != nil {
		return nil, nil, err
	}

	r.store = session.New(r.client(), repositories.NewTokenRepository(db), r.logger)
	if err := r.store.Restore(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	return r.store, func() { db.Close() }, nil
}

// prompt reads one line of input.
func (r *Runner) prompt(label string) (string, error) {
	r.writePlain("%s: ", label)
	line, err := r.input.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("%w: %s", shared.ErrMissingArgument, strings.ToLower(label))
	}
	return strings.TrimSpace(line), nil
}

// secret reads a line without echo when attached to a terminal.
func (r *Runner) secret(label string) (string, error) {
	if r.terminal == nil {
		return r.prompt(label)
	}

	r.writePlain("%s: ", label)
	b, err := term.ReadPassword(int(r.terminal.Fd()))
	r.writePlain("\n")
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", strings.ToLower(label), err)
	}
	return string(b), nil
}

// flagOrPrompt returns the flag value, prompting when it is empty.
func (r *Runner) flagOrPrompt(cmd *cli.Command, name, label string, hidden bool) (string, error) {
	if v := cmd.String(name); v != "" {
		return v, nil
	}
	if hidden {
		return r.secret(label)
	}
	return r.prompt(label)
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
