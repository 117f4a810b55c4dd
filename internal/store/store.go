// Package store implements the in-memory task list and keeps it in sync
// with a persistence backend.
package store

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"tasklist/internal/logging"
	"tasklist/internal/service"
)

// TaskStore owns the ordered task list.
// Task ids always equal the 1-based position of the task.
type TaskStore struct {
	backend service.Backend
	log     *logging.Logger
	tasks   []service.Task
}

// New creates a store and loads the persisted tasks.
// A backend that fails to load, or returns tasks that do not form a valid
// list, leaves the store empty; the failure is only logged.
func New(ctx context.Context, backend service.Backend, log *logging.Logger) *TaskStore {
	s := &TaskStore{backend: backend, log: log}
	s.tasks = s.load(ctx)
	return s
}

func (s *TaskStore) load(ctx context.Context) []service.Task {
	tasks, err := s.backend.Load(ctx)
	if err != nil {
		s.log.Printf("load tasks: %v (starting with an empty list)", err)
		return nil
	}
	if err := validate(tasks); err != nil {
		s.log.Printf("load tasks: %v (starting with an empty list)", err)
		return nil
	}
	loaded := slices.Clone(tasks)
	reindex(loaded)
	s.log.Printf("loaded %d tasks", len(loaded))
	return loaded
}

// validate checks the records a backend returned. Ids are not checked;
// they are reassigned from positions after loading.
func validate(tasks []service.Task) error {
	for i, t := range tasks {
		if strings.TrimSpace(t.Description) == "" {
			return fmt.Errorf("record %d: empty description", i+1)
		}
		if !t.Status.Valid() {
			return fmt.Errorf("record %d: unknown status %q", i+1, t.Status)
		}
	}
	return nil
}

// save writes the full list. The write is not cancelled with ctx: once a
// mutation is accepted in memory it is persisted.
func (s *TaskStore) save(ctx context.Context) error {
	if err := s.backend.Save(context.WithoutCancel(ctx), slices.Clone(s.tasks)); err != nil {
		s.log.Printf("save tasks: %v", err)
		return &Error{Kind: KindPersistence, Err: err}
	}
	return nil
}

// Len returns the number of tasks.
func (s *TaskStore) Len() int {
	return len(s.tasks)
}

// List returns a copy of the tasks in display order.
func (s *TaskStore) List() []service.Task {
	return slices.Clone(s.tasks)
}

// Add appends a pending task and persists the list.
func (s *TaskStore) Add(ctx context.Context, description string) (service.Task, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return service.Task{}, &Error{Kind: KindValidation, Err: ErrEmptyDescription}
	}

	task := service.Task{
		ID:          len(s.tasks) + 1,
		Description: description,
		Status:      service.StatusPending,
	}
	s.tasks = append(s.tasks, task)

	if err := s.save(ctx); err != nil {
		s.tasks = s.tasks[:len(s.tasks)-1]
		return service.Task{}, err
	}
	s.log.Printf("added task %d: %q", task.ID, task.Description)
	return task, nil
}

// Delete removes the task with the given id, renumbers the remaining tasks
// and persists the list. The removed task is returned.
func (s *TaskStore) Delete(ctx context.Context, id int) (service.Task, error) {
	i, ok := s.index(id)
	if !ok {
		return service.Task{}, &Error{Kind: KindNotFound, ID: id, Err: ErrNotFound}
	}

	prev := s.tasks
	removed := s.tasks[i]
	s.tasks = slices.Delete(slices.Clone(s.tasks), i, i+1)
	reindex(s.tasks)

	if err := s.save(ctx); err != nil {
		s.tasks = prev
		return service.Task{}, err
	}
	s.log.Printf("deleted task %d: %q", id, removed.Description)
	return removed, nil
}

// Complete marks the task with the given id as done and persists the list.
// Completing a task that is already done is allowed.
func (s *TaskStore) Complete(ctx context.Context, id int) (service.Task, error) {
	i, ok := s.index(id)
	if !ok {
		return service.Task{}, &Error{Kind: KindNotFound, ID: id, Err: ErrNotFound}
	}

	prevStatus := s.tasks[i].Status
	s.tasks[i].Status = service.StatusDone

	if err := s.save(ctx); err != nil {
		s.tasks[i].Status = prevStatus
		return service.Task{}, err
	}
	s.log.Printf("completed task %d: %q", id, s.tasks[i].Description)
	return s.tasks[i], nil
}

// index returns the slice position of the task with the given id.
func (s *TaskStore) index(id int) (int, bool) {
	i := id - 1
	if i < 0 || i >= len(s.tasks) || s.tasks[i].ID != id {
		return 0, false
	}
	return i, true
}

func reindex(tasks []service.Task) {
	for i := range tasks {
		tasks[i].ID = i + 1
	}
}
