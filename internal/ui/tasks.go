// Package ui is a full-screen terminal front end over the task store.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tasklist/internal/output"
	"tasklist/internal/service"
	"tasklist/internal/store"
)

var (
	titleStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	itemStyle         = lipgloss.NewStyle().PaddingLeft(2)
	selectedItemStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("12")).Bold(true)
	doneItemStyle     = lipgloss.NewStyle().PaddingLeft(2).Faint(true)
	statusStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle         = lipgloss.NewStyle().Faint(true)
)

// TaskModel lists tasks and applies add/complete/delete to the store.
type TaskModel struct {
	ctx   context.Context
	store *store.TaskStore

	tasks    []service.Task
	cursor   int
	adding   bool
	input    textinput.Model
	status   string
	failed   bool
	err      error
	quitting bool
}

// NewTaskModel creates a model over st.
func NewTaskModel(ctx context.Context, st *store.TaskStore) TaskModel {
	ti := textinput.New()
	ti.Placeholder = "What needs doing?"
	ti.Prompt = "> "
	ti.CharLimit = 0 // unlimited, like the menu and add command

	return TaskModel{
		ctx:   ctx,
		store: st,
		tasks: st.List(),
		input: ti,
	}
}

func (m TaskModel) Init() tea.Cmd {
	return nil
}

func (m TaskModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.adding {
		return m.updateAdding(key)
	}

	switch key.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}

	case "a":
		m.adding = true
		m.status = ""
		return m, m.input.Focus()

	case "enter", " ", "c":
		if len(m.tasks) == 0 {
			return m, nil
		}
		task, err := m.store.Complete(m.ctx, m.tasks[m.cursor].ID)
		if err != nil {
			return m.fail(err)
		}
		m.report(fmt.Sprintf("Task marked as completed: '%s'", task.Description))

	case "d", "x":
		if len(m.tasks) == 0 {
			return m, nil
		}
		task, err := m.store.Delete(m.ctx, m.tasks[m.cursor].ID)
		if err != nil {
			return m.fail(err)
		}
		m.report(fmt.Sprintf("Task deleted: '%s'", task.Description))
	}

	return m, nil
}

func (m TaskModel) updateAdding(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "esc":
		m.stopAdding()
		return m, nil

	case "enter":
		description := m.input.Value()
		m.stopAdding()
		task, err := m.store.Add(m.ctx, description)
		if err != nil {
			return m.fail(err)
		}
		m.report(fmt.Sprintf("Task added (ID: %d)", task.ID))
		m.cursor = len(m.tasks) - 1
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(key)
	return m, cmd
}

func (m *TaskModel) stopAdding() {
	m.adding = false
	m.input.Reset()
	m.input.Blur()
}

// report refreshes the task snapshot after a successful change.
func (m *TaskModel) report(status string) {
	m.tasks = m.store.List()
	if m.cursor >= len(m.tasks) {
		m.cursor = max(len(m.tasks)-1, 0)
	}
	m.status = status
	m.failed = false
}

// fail shows recoverable errors and quits on persistence failures.
func (m TaskModel) fail(err error) (tea.Model, tea.Cmd) {
	switch store.KindOf(err) {
	case store.KindValidation, store.KindNotFound:
		m.status = err.Error()
		m.failed = true
		return m, nil
	}
	m.err = err
	m.quitting = true
	return m, tea.Quit
}

func (m TaskModel) View() string {
	if m.quitting {
		return ""
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render("🎯 Task list"))
	s.WriteString("\n\n")

	if len(m.tasks) == 0 {
		s.WriteString(itemStyle.Render("📝 The task list is empty"))
		s.WriteString("\n")
	}
	for i, t := range m.tasks {
		line := fmt.Sprintf("%d. %s %s", t.ID, t.Description, output.StatusIcon(t))
		switch {
		case m.cursor == i:
			s.WriteString(selectedItemStyle.Render("> " + line))
		case t.Done():
			s.WriteString(doneItemStyle.Render("  " + line))
		default:
			s.WriteString(itemStyle.Render("  " + line))
		}
		s.WriteString("\n")
	}

	if m.adding {
		s.WriteString("\n")
		s.WriteString(m.input.View())
		s.WriteString("\n")
	}

	if m.status != "" {
		s.WriteString("\n")
		if m.failed {
			s.WriteString(errorStyle.Render(m.status))
		} else {
			s.WriteString(statusStyle.Render(m.status))
		}
		s.WriteString("\n")
	}

	if m.adding {
		s.WriteString(helpStyle.Render("\n(enter to save, esc to cancel)\n"))
	} else {
		s.WriteString(helpStyle.Render("\n(j/k to move, a add, enter complete, d delete, q quit)\n"))
	}

	return s.String()
}

// Tasks returns the tasks currently displayed.
func (m TaskModel) Tasks() []service.Task {
	return m.tasks
}

// Err returns the persistence failure that ended the program, if any.
func (m TaskModel) Err() error {
	return m.err
}

// Run starts the full-screen UI and blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, st *store.TaskStore, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(
		NewTaskModel(ctx, st),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)
	finalModel, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	if err != nil {
		return err
	}
	return finalModel.(TaskModel).Err()
}
