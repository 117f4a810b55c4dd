// Package jsonfile implements service.Backend as a pretty-printed JSON file.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"tasklist/internal/service"
)

// record is the on-disk shape of a task. Field order is the file's field order.
type record struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// File stores tasks as a JSON array in a single file.
type File struct {
	path string
}

// New returns a backend for the file at path. The file is not touched
// until the first Load or Save.
func New(path string) *File {
	return &File{path: path}
}

// Load reads the task array. A missing file is an empty list.
func (f *File) Load(ctx context.Context) ([]service.Task, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse %s: %w", f.path, err)
	}

	tasks := make([]service.Task, 0, len(records))
	for _, r := range records {
		tasks = append(tasks, service.Task{
			ID:          r.ID,
			Description: r.Description,
			Status:      service.Status(r.Status),
		})
	}
	return tasks, nil
}

// Save overwrites the file with tasks. The data is written to a temporary
// file in the same directory and renamed into place.
func (f *File) Save(ctx context.Context, tasks []service.Task) error {
	data, err := encode(tasks)
	if err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("replace %s: %w", f.path, err)
	}
	return nil
}

// Close implements service.Backend. The file is never held open.
func (f *File) Close() error {
	return nil
}

func encode(tasks []service.Task) ([]byte, error) {
	records := make([]record, 0, len(tasks))
	for _, t := range tasks {
		records = append(records, record{
			ID:          t.ID,
			Description: t.Description,
			Status:      string(t.Status),
		})
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("encode tasks: %w", err)
	}
	return buf.Bytes(), nil
}
