// Package cli parses the command line and runs the selected command.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"tasklist/internal/commands"
	"tasklist/internal/config"
	"tasklist/internal/exitcode"
	"tasklist/internal/logging"
	"tasklist/internal/service"
	"tasklist/internal/store"
)

// DefaultCommand runs when no command is given.
const DefaultCommand = "menu"

// BackendFactory opens the persistence backend selected by cfg.
// Tests inject an in-memory backend here.
type BackendFactory func(ctx context.Context, cfg *config.Config) (service.Backend, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  BackendFactory
}

// NewDispatcher creates a new dispatcher with the given registry and backend factory.
func NewDispatcher(registry *commands.Registry, factory BackendFactory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	if len(args) == 0 {
		return d.dispatch(ctx, DefaultCommand, nil, in, out, errOut)
	}

	cmdName := args[0]

	// Flags require a command
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return d.dispatch(ctx, cmdName, args[1:], in, out, errOut)
}

func (d *Dispatcher) dispatch(ctx context.Context, cmdName string, args []string, in io.Reader, out, errOut io.Writer) int {
	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}
	return d.dispatchCommand(ctx, cmd, args, in, out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, in io.Reader, out, errOut io.Writer) int {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		configDir string
		dataFile  string
		quiet     bool
		debug     bool
	)
	fs.StringVar(&configDir, "config", "", "")
	fs.StringVar(&dataFile, "file", "", "")
	fs.BoolVar(&quiet, "quiet", false, "")
	fs.BoolVar(&debug, "debug", false, "")

	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", flagError(err))
		return exitcode.UserError
	}

	positionalArgs := fs.Args()
	if len(positionalArgs) > 0 && strings.HasPrefix(positionalArgs[0], "-") && positionalArgs[0] != "-" {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positionalArgs[0])
		return exitcode.UserError
	}

	cfg, err := config.New(configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: config: %s\n", err)
		return exitcode.ConfigError
	}
	cfg.Quiet = quiet
	cfg.Debug = debug
	if dataFile != "" {
		// --file is relative to the working directory, not the config dir
		if abs, err := filepath.Abs(dataFile); err == nil {
			dataFile = abs
		}
		cfg.DataFile = dataFile
	}

	if !cmd.NeedsStore() {
		return cmd.Run(ctx, cfg, nil, positionalArgs, in, out, errOut)
	}

	cfg.Log = openLog(cfg, errOut)
	defer cfg.Log.Close()

	if d.factory == nil {
		fmt.Fprintln(errOut, "error: storage error: no backend configured")
		return exitcode.StorageError
	}
	backend, err := d.factory(ctx, cfg)
	if err != nil {
		cfg.Log.Printf("open backend: %v", err)
		fmt.Fprintf(errOut, "error: storage error: %s\n", err)
		return exitcode.StorageError
	}
	defer func() {
		if err := backend.Close(); err != nil {
			cfg.Log.Printf("close backend: %v", err)
		}
	}()

	st := store.New(ctx, backend, cfg.Log)
	cfg.Log.Printf("%s: start with %d tasks", cmd.Name(), st.Len())
	code := cmd.Run(ctx, cfg, st, positionalArgs, in, out, errOut)
	cfg.Log.Printf("%s: exit %d", cmd.Name(), code)
	return code
}

// openLog returns the diagnostic logger for a command run.
// A log file that cannot be opened disables logging rather than failing the command.
func openLog(cfg *config.Config, errOut io.Writer) *logging.Logger {
	if cfg.Debug {
		return logging.New(errOut)
	}
	log, err := logging.Open(cfg.LogPath())
	if err != nil {
		return nil
	}
	return log
}

// flagError rewrites flag package errors into the CLI's wording.
func flagError(err error) string {
	errStr := err.Error()
	switch {
	case strings.HasPrefix(errStr, "flag needs an argument: "):
		return errStr
	case strings.HasPrefix(errStr, "flag provided but not defined: "):
		return "unknown flag: " + strings.TrimPrefix(errStr, "flag provided but not defined: ")
	default:
		return errStr
	}
}
