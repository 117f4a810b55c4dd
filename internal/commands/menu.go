package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"tasklist/internal/config"
	"tasklist/internal/console"
	"tasklist/internal/exitcode"
	"tasklist/internal/output"
	"tasklist/internal/store"
)

func init() {
	Register(&MenuCmd{})
}

// MenuCmd runs the interactive numbered menu. It is the default command.
type MenuCmd struct{}

func (c *MenuCmd) Name() string      { return "menu" }
func (c *MenuCmd) Aliases() []string { return nil }
func (c *MenuCmd) Synopsis() string  { return "Interactive menu (default)" }
func (c *MenuCmd) Usage() string     { return "tasklist [menu] [common flags]" }
func (c *MenuCmd) NeedsStore() bool  { return true }

func (c *MenuCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *MenuCmd) Run(ctx context.Context, cfg *config.Config, st *store.TaskStore, args []string, in io.Reader, out, errOut io.Writer) int {
	printer := output.New(out, cfg.Color)

	if err := seed(ctx, cfg, st, printer); err != nil {
		return storeError(errOut, err)
	}

	driver := console.New(st, in, printer, cfg.Log)
	if err := driver.Run(ctx); err != nil {
		if errors.As(err, new(*store.Error)) {
			return exitcode.StorageError
		}
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	return exitcode.Success
}

// seed adds the configured starter tasks when the list is empty.
func seed(ctx context.Context, cfg *config.Config, st *store.TaskStore, printer *output.Printer) error {
	if st.Len() > 0 {
		return nil
	}
	for _, description := range cfg.SeedTasks {
		task, err := st.Add(ctx, description)
		if store.KindOf(err) == store.KindValidation {
			continue
		}
		if err != nil {
			return err
		}
		if !cfg.Quiet {
			printer.Added(task)
		}
	}
	return nil
}
