package store

import (
	"errors"
	"fmt"
)

// Kind classifies a store failure.
type Kind int

const (
	// KindNone is returned by KindOf for a nil error.
	KindNone Kind = iota

	// KindValidation means the input was rejected and nothing changed.
	KindValidation

	// KindNotFound means no task has the requested id.
	KindNotFound

	// KindPersistence means the backend could not be read or written.
	KindPersistence
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not found"
	case KindPersistence:
		return "persistence"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

var (
	// ErrEmptyDescription is returned by Add for blank descriptions.
	ErrEmptyDescription = errors.New("task description cannot be empty")

	// ErrNotFound is returned by Delete and Complete for unknown ids.
	ErrNotFound = errors.New("task not found")
)

// Error is the error type returned by every TaskStore operation.
type Error struct {
	Kind Kind
	ID   int // task id involved, 0 when not applicable
	Err  error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindNotFound:
		return fmt.Sprintf("task with ID %d not found", e.ID)
	case KindPersistence:
		return fmt.Sprintf("save tasks: %v", e.Err)
	default:
		return e.Err.Error()
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf classifies err. Errors that did not come from the store are
// reported as persistence failures.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindPersistence
}
