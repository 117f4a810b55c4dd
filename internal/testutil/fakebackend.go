// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"slices"
	"sync"

	"tasklist/internal/service"
)

// FakeBackend is an in-memory implementation of service.Backend for testing.
type FakeBackend struct {
	mu     sync.RWMutex
	tasks  []service.Task
	saves  int
	closed bool

	// Error injection for testing
	LoadErr  error
	SaveErr  error
	CloseErr error
}

// NewFakeBackend creates a FakeBackend holding the given tasks.
func NewFakeBackend(tasks ...service.Task) *FakeBackend {
	return &FakeBackend{tasks: slices.Clone(tasks)}
}

// Pending is a shorthand for building a pending task.
func Pending(id int, description string) service.Task {
	return service.Task{ID: id, Description: description, Status: service.StatusPending}
}

// Done is a shorthand for building a completed task.
func Done(id int, description string) service.Task {
	return service.Task{ID: id, Description: description, Status: service.StatusDone}
}

// Tasks returns what was last saved (or seeded).
func (f *FakeBackend) Tasks() []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Clone(f.tasks)
}

// Saves returns how many times Save succeeded.
func (f *FakeBackend) Saves() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.saves
}

// Closed reports whether Close was called.
func (f *FakeBackend) Closed() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.closed
}

// Load implements service.Backend.
func (f *FakeBackend) Load(ctx context.Context) ([]service.Task, error) {
	if f.LoadErr != nil {
		return nil, f.LoadErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Clone(f.tasks), nil
}

// Save implements service.Backend.
// Like a database driver, it refuses to write under a cancelled context.
func (f *FakeBackend) Save(ctx context.Context, tasks []service.Task) error {
	if f.SaveErr != nil {
		return f.SaveErr
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = slices.Clone(tasks)
	f.saves++
	return nil
}

// Close implements service.Backend.
func (f *FakeBackend) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return f.CloseErr
}
