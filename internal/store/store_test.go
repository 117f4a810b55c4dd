package store_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"tasklist/internal/service"
	"tasklist/internal/store"
	"tasklist/internal/testutil"
)

func newStore(t *testing.T, tasks ...service.Task) (*store.TaskStore, *testutil.FakeBackend) {
	t.Helper()
	backend := testutil.NewFakeBackend(tasks...)
	return store.New(context.Background(), backend, nil), backend
}

func assertIDs(t *testing.T, tasks []service.Task) {
	t.Helper()
	for i, task := range tasks {
		if task.ID != i+1 {
			t.Errorf("expected task at position %d to have ID %d, got %d", i+1, i+1, task.ID)
		}
	}
}

func TestAdd_AssignsSequentialIDs(t *testing.T) {
	s, backend := newStore(t)
	ctx := context.Background()

	descriptions := []string{"Buy milk", "Walk dog", "Read book", "Call mom"}
	for i, d := range descriptions {
		task, err := s.Add(ctx, d)
		if err != nil {
			t.Fatalf("Add(%q) returned error: %v", d, err)
		}
		if task.ID != i+1 {
			t.Errorf("expected ID %d, got %d", i+1, task.ID)
		}
		if task.Status != service.StatusPending {
			t.Errorf("expected status pending, got %q", task.Status)
		}
	}

	tasks := s.List()
	if len(tasks) != len(descriptions) {
		t.Fatalf("expected %d tasks, got %d", len(descriptions), len(tasks))
	}
	assertIDs(t, tasks)
	for i, d := range descriptions {
		if tasks[i].Description != d {
			t.Errorf("expected description %q at %d, got %q", d, i+1, tasks[i].Description)
		}
	}
	if backend.Saves() != len(descriptions) {
		t.Errorf("expected %d saves, got %d", len(descriptions), backend.Saves())
	}
}

func TestAdd_TrimsDescription(t *testing.T) {
	s, _ := newStore(t)

	task, err := s.Add(context.Background(), "  Buy milk \n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Description != "Buy milk" {
		t.Errorf("expected trimmed description, got %q", task.Description)
	}
}

func TestAdd_RejectsBlankDescription(t *testing.T) {
	for _, d := range []string{"", "   ", "\t\n"} {
		s, backend := newStore(t, testutil.Pending(1, "Existing"))

		_, err := s.Add(context.Background(), d)
		if err == nil {
			t.Fatalf("expected error for %q", d)
		}
		if store.KindOf(err) != store.KindValidation {
			t.Errorf("expected validation error, got %v", store.KindOf(err))
		}
		if !errors.Is(err, store.ErrEmptyDescription) {
			t.Errorf("expected ErrEmptyDescription, got %v", err)
		}
		if s.Len() != 1 {
			t.Errorf("expected store to keep 1 task, got %d", s.Len())
		}
		if backend.Saves() != 0 {
			t.Errorf("expected no saves, got %d", backend.Saves())
		}
	}
}

func TestList_EmptyStore(t *testing.T) {
	s, _ := newStore(t)

	if tasks := s.List(); len(tasks) != 0 {
		t.Errorf("expected no tasks, got %d", len(tasks))
	}
}

func TestList_ReturnsCopy(t *testing.T) {
	s, _ := newStore(t, testutil.Pending(1, "Buy milk"))

	tasks := s.List()
	tasks[0].Description = "changed"

	if s.List()[0].Description != "Buy milk" {
		t.Error("modifying the listed slice changed the store")
	}
}

func TestDelete_Reindexes(t *testing.T) {
	s, backend := newStore(t,
		testutil.Pending(1, "one"),
		testutil.Done(2, "two"),
		testutil.Pending(3, "three"),
		testutil.Pending(4, "four"),
	)

	removed, err := s.Delete(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed.Description != "two" {
		t.Errorf("expected removed task 'two', got %q", removed.Description)
	}

	expected := []service.Task{
		testutil.Pending(1, "one"),
		testutil.Pending(2, "three"),
		testutil.Pending(3, "four"),
	}
	if got := s.List(); !reflect.DeepEqual(got, expected) {
		t.Errorf("expected %+v, got %+v", expected, got)
	}
	if got := backend.Tasks(); !reflect.DeepEqual(got, expected) {
		t.Errorf("expected persisted %+v, got %+v", expected, got)
	}
}

func TestDelete_EveryPosition(t *testing.T) {
	const n = 5
	for k := 1; k <= n; k++ {
		s, _ := newStore(t)
		ctx := context.Background()
		for i := 1; i <= n; i++ {
			if _, err := s.Add(ctx, string(rune('a'+i-1))); err != nil {
				t.Fatal(err)
			}
		}

		if _, err := s.Delete(ctx, k); err != nil {
			t.Fatalf("Delete(%d) returned error: %v", k, err)
		}

		tasks := s.List()
		if len(tasks) != n-1 {
			t.Fatalf("expected %d tasks after Delete(%d), got %d", n-1, k, len(tasks))
		}
		assertIDs(t, tasks)
		for _, task := range tasks {
			if task.Description == string(rune('a'+k-1)) {
				t.Errorf("Delete(%d) left %q in the store", k, task.Description)
			}
		}
	}
}

func TestDelete_NotFound(t *testing.T) {
	s, backend := newStore(t, testutil.Pending(1, "one"))

	for _, id := range []int{0, -1, 2, 99} {
		_, err := s.Delete(context.Background(), id)
		if store.KindOf(err) != store.KindNotFound {
			t.Errorf("Delete(%d): expected not found, got %v", id, err)
		}
		if !errors.Is(err, store.ErrNotFound) {
			t.Errorf("Delete(%d): expected ErrNotFound, got %v", id, err)
		}
	}
	if s.Len() != 1 {
		t.Errorf("expected 1 task, got %d", s.Len())
	}
	if backend.Saves() != 0 {
		t.Errorf("expected no saves, got %d", backend.Saves())
	}
}

func TestDelete_NotFoundMessage(t *testing.T) {
	s, _ := newStore(t)

	_, err := s.Delete(context.Background(), 7)
	if err == nil || err.Error() != "task with ID 7 not found" {
		t.Errorf("expected not found message, got %v", err)
	}
}

func TestComplete_OnlyTouchesTarget(t *testing.T) {
	s, backend := newStore(t,
		testutil.Pending(1, "one"),
		testutil.Pending(2, "two"),
		testutil.Pending(3, "three"),
	)

	task, err := s.Complete(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Status != service.StatusDone || task.Description != "two" {
		t.Errorf("unexpected completed task %+v", task)
	}

	expected := []service.Task{
		testutil.Pending(1, "one"),
		testutil.Done(2, "two"),
		testutil.Pending(3, "three"),
	}
	if got := s.List(); !reflect.DeepEqual(got, expected) {
		t.Errorf("expected %+v, got %+v", expected, got)
	}
	if got := backend.Tasks(); !reflect.DeepEqual(got, expected) {
		t.Errorf("expected persisted %+v, got %+v", expected, got)
	}
}

func TestComplete_Idempotent(t *testing.T) {
	s, _ := newStore(t, testutil.Pending(1, "one"), testutil.Pending(2, "two"))
	ctx := context.Background()

	if _, err := s.Complete(ctx, 1); err != nil {
		t.Fatal(err)
	}
	once := s.List()

	if _, err := s.Complete(ctx, 1); err != nil {
		t.Fatalf("second Complete returned error: %v", err)
	}
	if twice := s.List(); !reflect.DeepEqual(once, twice) {
		t.Errorf("expected %+v after second complete, got %+v", once, twice)
	}
}

func TestComplete_NotFound(t *testing.T) {
	s, backend := newStore(t, testutil.Pending(1, "one"))

	_, err := s.Complete(context.Background(), 3)
	if store.KindOf(err) != store.KindNotFound {
		t.Errorf("expected not found, got %v", err)
	}
	if s.List()[0].Status != service.StatusPending {
		t.Error("expected task to stay pending")
	}
	if backend.Saves() != 0 {
		t.Errorf("expected no saves, got %d", backend.Saves())
	}
}

func TestNew_LoadErrorYieldsEmptyStore(t *testing.T) {
	backend := testutil.NewFakeBackend(testutil.Pending(1, "one"))
	backend.LoadErr = errors.New("unexpected end of JSON input")

	s := store.New(context.Background(), backend, nil)

	if s.Len() != 0 {
		t.Errorf("expected empty store, got %d tasks", s.Len())
	}
}

func TestNew_InvalidRecordsYieldEmptyStore(t *testing.T) {
	cases := map[string][]service.Task{
		"blank description": {testutil.Pending(1, "ok"), testutil.Pending(2, "  ")},
		"unknown status":    {{ID: 1, Description: "ok", Status: "later"}},
	}
	for name, tasks := range cases {
		t.Run(name, func(t *testing.T) {
			s, _ := newStore(t, tasks...)
			if s.Len() != 0 {
				t.Errorf("expected empty store, got %d tasks", s.Len())
			}
		})
	}
}

func TestNew_RenumbersLoadedTasks(t *testing.T) {
	s, _ := newStore(t, testutil.Pending(4, "a"), testutil.Done(9, "b"))

	expected := []service.Task{testutil.Pending(1, "a"), testutil.Done(2, "b")}
	if got := s.List(); !reflect.DeepEqual(got, expected) {
		t.Errorf("expected %+v, got %+v", expected, got)
	}
}

func TestSaveFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	initial := []service.Task{testutil.Pending(1, "one"), testutil.Pending(2, "two")}

	ops := map[string]func(s *store.TaskStore) error{
		"add": func(s *store.TaskStore) error {
			_, err := s.Add(ctx, "three")
			return err
		},
		"delete": func(s *store.TaskStore) error {
			_, err := s.Delete(ctx, 1)
			return err
		},
		"complete": func(s *store.TaskStore) error {
			_, err := s.Complete(ctx, 2)
			return err
		},
	}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			s, backend := newStore(t, initial...)
			diskErr := errors.New("disk full")
			backend.SaveErr = diskErr

			err := op(s)
			if store.KindOf(err) != store.KindPersistence {
				t.Fatalf("expected persistence error, got %v", err)
			}
			if !errors.Is(err, diskErr) {
				t.Errorf("expected wrapped disk error, got %v", err)
			}
			if got := s.List(); !reflect.DeepEqual(got, initial) {
				t.Errorf("expected rollback to %+v, got %+v", initial, got)
			}
		})
	}
}

func TestSaveIgnoresCancellation(t *testing.T) {
	s, backend := newStore(t, testutil.Pending(1, "one"), testutil.Pending(2, "two"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.Add(ctx, "three"); err != nil {
		t.Fatalf("Add under a cancelled context returned error: %v", err)
	}
	if _, err := s.Complete(ctx, 1); err != nil {
		t.Fatalf("Complete under a cancelled context returned error: %v", err)
	}
	if _, err := s.Delete(ctx, 2); err != nil {
		t.Fatalf("Delete under a cancelled context returned error: %v", err)
	}

	expected := []service.Task{testutil.Done(1, "one"), testutil.Pending(2, "three")}
	if !reflect.DeepEqual(backend.Tasks(), expected) {
		t.Errorf("expected persisted %+v, got %+v", expected, backend.Tasks())
	}
	if backend.Saves() != 3 {
		t.Errorf("expected 3 saves, got %d", backend.Saves())
	}
}

func TestScenario(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	milk, err := s.Add(ctx, "Buy milk")
	if err != nil {
		t.Fatal(err)
	}
	if milk.ID != 1 || milk.Status != service.StatusPending {
		t.Fatalf("unexpected first task %+v", milk)
	}

	dog, err := s.Add(ctx, "Walk dog")
	if err != nil {
		t.Fatal(err)
	}
	if dog.ID != 2 {
		t.Fatalf("expected ID 2, got %d", dog.ID)
	}

	if _, err := s.Delete(ctx, 1); err != nil {
		t.Fatal(err)
	}
	tasks := s.List()
	if len(tasks) != 1 || tasks[0].ID != 1 || tasks[0].Description != "Walk dog" {
		t.Fatalf("expected only 'Walk dog' with ID 1, got %+v", tasks)
	}

	if _, err := s.Complete(ctx, 1); err != nil {
		t.Fatal(err)
	}
	if !s.List()[0].Done() {
		t.Error("expected 'Walk dog' to be done")
	}
}

func TestKindOf(t *testing.T) {
	if store.KindOf(nil) != store.KindNone {
		t.Error("expected KindNone for nil")
	}
	if store.KindOf(errors.New("boom")) != store.KindPersistence {
		t.Error("expected foreign errors to classify as persistence")
	}
}
