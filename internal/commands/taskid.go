package commands

import (
	"errors"
	"fmt"
	"io"

	"tasklist/internal/console"
	"tasklist/internal/exitcode"
	"tasklist/internal/store"
)

// ErrTaskIDRequired indicates no task id was provided.
var ErrTaskIDRequired = errors.New("task id required")

// ParseTaskID parses the task id from the positional args.
// Exactly one numeric argument is accepted.
func ParseTaskID(args []string) (int, error) {
	if len(args) == 0 {
		return 0, ErrTaskIDRequired
	}
	if len(args) > 1 {
		return 0, fmt.Errorf("too many arguments: expected one task id")
	}
	id, err := console.ParseID(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid task id: %s", args[0])
	}
	return id, nil
}

// storeError prints a store failure and returns the matching exit code.
func storeError(errOut io.Writer, err error) int {
	switch store.KindOf(err) {
	case store.KindValidation, store.KindNotFound:
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	default:
		fmt.Fprintf(errOut, "error: storage error: %v\n", err)
		return exitcode.StorageError
	}
}
