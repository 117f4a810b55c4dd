package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tasklist/internal/config"
	"tasklist/internal/exitcode"
	"tasklist/internal/store"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "tasklist help" }
func (c *HelpCmd) NeedsStore() bool  { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, st *store.TaskStore, args []string, in io.Reader, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  tasklist                              Interactive menu
  tasklist menu [common flags]          Interactive menu
  tasklist tui [common flags]           Full-screen task view
  tasklist list [common flags]          List tasks (alias: ls)
  tasklist add [common flags] <description...>
  tasklist done [common flags] <id>     Mark a task completed (alias: complete)
  tasklist rm [common flags] <id>       Delete a task and renumber the rest (alias: delete)
  tasklist help
  tasklist version

Common flags:
  --config <dir>   Override config directory
  --file <path>    Override the task data file
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
