package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"tasklist/internal/config"
	"tasklist/internal/exitcode"
	"tasklist/internal/store"
	"tasklist/internal/ui"
)

func init() {
	Register(&TUICmd{})
}

// TUICmd runs the full-screen terminal UI.
type TUICmd struct{}

func (c *TUICmd) Name() string      { return "tui" }
func (c *TUICmd) Aliases() []string { return nil }
func (c *TUICmd) Synopsis() string  { return "Full-screen task view" }
func (c *TUICmd) Usage() string     { return "tasklist tui [common flags]" }
func (c *TUICmd) NeedsStore() bool  { return true }

func (c *TUICmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *TUICmd) Run(ctx context.Context, cfg *config.Config, st *store.TaskStore, args []string, in io.Reader, out, errOut io.Writer) int {
	if err := ui.Run(ctx, st, in, out); err != nil {
		var se *store.Error
		if errors.As(err, &se) {
			return storeError(errOut, err)
		}
		fmt.Fprintf(errOut, "error: terminal: %v\n", err)
		return exitcode.UserError
	}
	return exitcode.Success
}
