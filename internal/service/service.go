package service

import "context"

// Backend persists the full ordered task list.
// The store never talks to files or databases directly; everything
// goes through this interface.
type Backend interface {
	// Load returns the persisted tasks in order.
	// A backend with nothing stored yet returns an empty slice and no error.
	Load(ctx context.Context) ([]Task, error)

	// Save replaces everything persisted with tasks.
	Save(ctx context.Context, tasks []Task) error

	// Close releases any handle held by the backend.
	Close() error
}
