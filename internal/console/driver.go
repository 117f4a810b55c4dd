// Package console implements the interactive numbered-menu loop over a TaskStore.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"tasklist/internal/logging"
	"tasklist/internal/output"
	"tasklist/internal/store"
)

// Menu selections.
const (
	choiceView     = "1"
	choiceAdd      = "2"
	choiceDelete   = "3"
	choiceComplete = "4"
	choiceExit     = "5"
)

// errInputClosed ends the session when input runs out or the context is cancelled.
var errInputClosed = errors.New("input closed")

// Driver reads menu selections from an input stream and runs them against a store.
type Driver struct {
	store   *store.TaskStore
	in      io.Reader
	printer *output.Printer
	log     *logging.Logger

	lines <-chan inputLine
}

// inputLine is one line of input, or the error that stopped reading.
type inputLine struct {
	text string
	err  error
}

// New creates a Driver. Nothing is read from in until Run.
func New(st *store.TaskStore, in io.Reader, printer *output.Printer, log *logging.Logger) *Driver {
	return &Driver{
		store:   st,
		in:      in,
		printer: printer,
		log:     log,
	}
}

// Run shows the menu and handles selections until the user exits, the input
// ends, or ctx is cancelled. Validation and not-found failures are printed
// and the loop continues. A failed save or a failed read of the input ends
// the session with an error.
func (d *Driver) Run(ctx context.Context) error {
	d.lines = readLines(ctx, d.in)
	d.log.Printf("session started with %d tasks", d.store.Len())

	for {
		d.printer.Menu()
		d.printer.Prompt("\nChoose an action (1-5): ")

		quit, err := d.next(ctx)
		if errors.Is(err, errInputClosed) {
			d.printer.Interrupted()
			d.log.Printf("session interrupted")
			return nil
		}
		if err != nil {
			d.printer.Failure(err)
			d.log.Printf("session ended: %v", err)
			return err
		}
		if quit {
			d.printer.Goodbye()
			d.log.Printf("session ended")
			return nil
		}
	}
}

// next reads one menu selection and runs it.
func (d *Driver) next(ctx context.Context) (bool, error) {
	choice, err := d.readLine(ctx)
	if err != nil {
		return false, err
	}
	return d.handle(ctx, strings.TrimSpace(choice))
}

func (d *Driver) handle(ctx context.Context, choice string) (bool, error) {
	switch choice {
	case choiceView:
		d.printer.Tasks(d.store.List())

	case choiceAdd:
		d.printer.Prompt("Enter the task description: ")
		description, err := d.readLine(ctx)
		if err != nil {
			return false, err
		}
		task, err := d.store.Add(ctx, description)
		if err != nil {
			return false, d.report(err)
		}
		d.printer.Added(task)

	case choiceDelete:
		id, ok, err := d.promptID(ctx, "Enter the task ID to delete: ")
		if err != nil || !ok {
			return false, err
		}
		task, err := d.store.Delete(ctx, id)
		if err != nil {
			return false, d.report(err)
		}
		d.printer.Deleted(task)

	case choiceComplete:
		id, ok, err := d.promptID(ctx, "Enter the task ID to mark: ")
		if err != nil || !ok {
			return false, err
		}
		task, err := d.store.Complete(ctx, id)
		if err != nil {
			return false, d.report(err)
		}
		d.printer.Completed(task)

	case choiceExit:
		return true, nil

	default:
		d.printer.Errorf("Invalid choice. Please choose from 1 to 5")
	}
	return false, nil
}

// promptID shows the list and reads a numeric id. ok is false when the list
// is empty or the input is not a number; the message has been printed then.
func (d *Driver) promptID(ctx context.Context, prompt string) (int, bool, error) {
	d.printer.Tasks(d.store.List())
	if d.store.Len() == 0 {
		return 0, false, nil
	}

	d.printer.Prompt(prompt)
	line, err := d.readLine(ctx)
	if err != nil {
		return 0, false, err
	}
	id, err := ParseID(line)
	if err != nil {
		d.printer.Errorf("Please enter a numeric ID")
		return 0, false, nil
	}
	return id, true, nil
}

// report prints recoverable store failures and passes persistence failures up.
func (d *Driver) report(err error) error {
	if store.KindOf(err) == store.KindPersistence {
		return err
	}
	d.printer.Failure(err)
	return nil
}

func (d *Driver) readLine(ctx context.Context) (string, error) {
	if ctx.Err() != nil {
		return "", errInputClosed
	}
	select {
	case <-ctx.Done():
		return "", errInputClosed
	case line, ok := <-d.lines:
		if !ok {
			return "", errInputClosed
		}
		if line.err != nil {
			return "", fmt.Errorf("read input: %w", line.err)
		}
		return line.text, nil
	}
}

// readLines feeds lines from r to the returned channel until r ends or ctx
// is cancelled. Lines have no length limit. A read error is sent as the last
// value. A read blocked on a terminal is abandoned on cancellation.
func readLines(ctx context.Context, r io.Reader) <-chan inputLine {
	lines := make(chan inputLine)
	go func() {
		defer close(lines)
		br := bufio.NewReader(r)
		for {
			text, err := br.ReadString('\n')
			eof := errors.Is(err, io.EOF)
			if eof {
				if text == "" {
					return
				}
				err = nil
			}
			line := inputLine{text: strings.TrimRight(text, "\r\n"), err: err}
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
			if eof || err != nil {
				return
			}
		}
	}()
	return lines
}

// ParseID parses a task id typed by the user.
func ParseID(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}
