// Package output provides formatters for console output.
package output

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"tasklist/internal/service"
	"tasklist/internal/store"
)

const (
	// MenuRule frames the menu.
	MenuRule = "=================================================="

	// ListRule frames the task list.
	ListRule = "----------------------------------------"

	// IconDone and IconPending mark task status in listings.
	IconDone    = "✅"
	IconPending = "⏳"
)

// MenuItems are the numbered menu actions, in order.
var MenuItems = []string{
	"📝 View tasks",
	"➕ Add a task",
	"🗑️ Delete a task",
	"✅ Mark as completed",
	"🚪 Exit",
}

// Printer writes console output to a single writer.
type Printer struct {
	w       io.Writer
	title   lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
	done    lipgloss.Style
}

// New creates a Printer for w. Styles are rendered only when color is
// enabled and w is a terminal.
func New(w io.Writer, color bool) *Printer {
	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Printer{
		w:       w,
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		success: r.NewStyle().Foreground(lipgloss.Color("10")),
		failure: r.NewStyle().Foreground(lipgloss.Color("9")),
		done:    r.NewStyle().Faint(true),
	}
}

// StatusIcon returns the listing indicator for a task.
func StatusIcon(t service.Task) string {
	if t.Done() {
		return IconDone
	}
	return IconPending
}

// Menu prints the main menu.
func (p *Printer) Menu() {
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, MenuRule)
	fmt.Fprintln(p.w, p.title.Render("           🎯 TASK LIST (TASKLIST MINI)"))
	fmt.Fprintln(p.w, MenuRule)
	for i, item := range MenuItems {
		fmt.Fprintf(p.w, "%d. %s\n", i+1, item)
	}
	fmt.Fprintln(p.w, MenuRule)
}

// Prompt prints text without a trailing newline.
func (p *Printer) Prompt(text string) {
	fmt.Fprint(p.w, text)
}

// Tasks prints the task list, or an empty-state line when there are none.
func (p *Printer) Tasks(tasks []service.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(p.w, "📝 The task list is empty")
		return
	}

	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, p.title.Render("📋 Task list:"))
	fmt.Fprintln(p.w, ListRule)
	for _, t := range tasks {
		line := fmt.Sprintf("%d. %s %s", t.ID, normalizeDescription(t.Description), StatusIcon(t))
		if t.Done() {
			line = p.done.Render(line)
		}
		fmt.Fprintln(p.w, line)
	}
	fmt.Fprintln(p.w, ListRule)
}

// Added reports a successful add.
func (p *Printer) Added(t service.Task) {
	p.successf("✅ Task added (ID: %d)", t.ID)
}

// Deleted reports a successful delete.
func (p *Printer) Deleted(t service.Task) {
	p.successf("🗑️ Task deleted: '%s'", t.Description)
}

// Completed reports a successful completion.
func (p *Printer) Completed(t service.Task) {
	p.successf("✅ Task marked as completed: '%s'", t.Description)
}

// Failure reports a store error in user-facing words.
func (p *Printer) Failure(err error) {
	switch store.KindOf(err) {
	case store.KindValidation:
		p.Errorf("Task description cannot be empty")
	case store.KindNotFound:
		p.Errorf("Task with ID %s not found", notFoundID(err))
	default:
		p.Errorf("An error occurred: %v", err)
	}
}

// Errorf prints a failure line.
func (p *Printer) Errorf(format string, args ...any) {
	fmt.Fprintln(p.w, p.failure.Render("❌ "+fmt.Sprintf(format, args...)))
}

// Goodbye is printed when the user chooses exit.
func (p *Printer) Goodbye() {
	fmt.Fprintln(p.w, "👋 Goodbye!")
}

// Interrupted is printed when the session ends by interrupt or end of input.
func (p *Printer) Interrupted() {
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, "👋 Program terminated!")
}

func (p *Printer) successf(format string, args ...any) {
	fmt.Fprintln(p.w, p.success.Render(fmt.Sprintf(format, args...)))
}

func notFoundID(err error) string {
	var se *store.Error
	if !errors.As(err, &se) {
		return "?"
	}
	return fmt.Sprint(se.ID)
}

// normalizeDescription keeps each task on one line.
func normalizeDescription(d string) string {
	d = strings.ReplaceAll(d, "\r", " ")
	return strings.ReplaceAll(d, "\n", " ")
}
