// Package service defines the task model and the persistence interface.
package service

// Status is the completion state of a task.
type Status string

const (
	// StatusPending marks a task that is not completed yet.
	StatusPending Status = "pending"

	// StatusDone marks a completed task.
	StatusDone Status = "done"
)

// Valid reports whether s is one of the recognized statuses.
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusDone
}

// Task represents a single task item.
// ID is the 1-based position of the task in its list.
type Task struct {
	ID          int
	Description string
	Status      Status
}

// Done reports whether the task has been completed.
func (t Task) Done() bool {
	return t.Status == StatusDone
}
