package commands

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/term"

	"github.com/colonyops/tend/internal/core/config"
	"github.com/colonyops/tend/internal/core/styles"
	"github.com/colonyops/tend/internal/core/todo"
	"github.com/colonyops/tend/internal/tend"
)

const (
	defaultWidth  = 80
	maxTitleWidth = 60
)

// termWidth returns the width of stdout, or defaultWidth when stdout is not
// a terminal.
func termWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}

func newTable(w io.Writer) table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.Style().Options.DrawBorder = false
	tw.Style().Options.SeparateColumns = false
	tw.Style().Format.Header = text.FormatDefault
	return tw
}

func statusIcon(t todo.Todo) string {
	switch {
	case t.IsDeleted:
		return styles.ErrorStyle.Render(styles.IconDeleted)
	case t.IsCompleted:
		return styles.SuccessStyle.Render(styles.IconDone)
	default:
		return styles.MutedStyle.Render(styles.IconOpen)
	}
}

func tagChips(ix tend.Index, ids []string) string {
	chips := make([]string, 0, len(ids))
	for _, id := range ids {
		if tag, ok := ix.Tags[id]; ok {
			chips = append(chips, styles.TagStyle(tag.Color).Render(tag.Name))
		}
	}
	return strings.Join(chips, " ")
}

// scheduledLabel renders a scheduled date relative to now. Open todos past
// their date are highlighted.
func scheduledLabel(t todo.Todo, now time.Time) string {
	if t.ScheduledAt == nil {
		return ""
	}
	at, ok := parseStoredTime(*t.ScheduledAt)
	if !ok {
		return *t.ScheduledAt
	}

	day := at.Local().Format(dateLayout)
	if !t.IsCompleted && !t.IsDeleted && at.Before(now) {
		return styles.WarningStyle.Render(day) + " " + styles.MutedStyle.Render("(overdue)")
	}
	return day + " " + styles.MutedStyle.Render("("+humanize.RelTime(at, now, "ago", "from now")+")")
}

func titleCell(t todo.Todo) string {
	title := t.Title
	if text.RuneWidthWithoutEscSequences(title) > maxTitleWidth {
		title = text.Trim(title, maxTitleWidth-1) + "…"
	}
	if t.IsCompleted || t.IsDeleted {
		return styles.CompletedStyle.Render(title)
	}
	return title
}

// renderTodos writes todos as a table.
func renderTodos(w io.Writer, todos []todo.Todo, ix tend.Index, now time.Time) {
	tw := newTable(w)
	tw.AppendHeader(table.Row{"ID", "", "PRI", "TITLE", "TAGS", "CATEGORY", "SCHEDULED"})

	for _, t := range todos {
		tw.AppendRow(table.Row{
			styles.IDStyle.Render(ix.ShortID(t.ID)),
			statusIcon(t),
			styles.PriorityStyle(t.Priority).Render(string(t.Priority)),
			titleCell(t),
			tagChips(ix, t.TagIDs),
			ix.CategoryName(t.CategoryID),
			scheduledLabel(t, now),
		})
	}

	tw.Render()
}

// renderLabels writes tags or categories as a table.
func renderLabels(w io.Writer, labels []tend.Label, chips bool) {
	tw := newTable(w)
	tw.AppendHeader(table.Row{"ID", "NAME", "TODOS", "CREATED"})

	for _, l := range labels {
		name := l.Name
		if chips && l.Color != "" {
			name = styles.TagStyle(l.Color).Render(l.Name)
		}

		created := l.CreatedAt
		if at, ok := parseStoredTime(l.CreatedAt); ok {
			created = humanize.Time(at)
		}

		tw.AppendRow(table.Row{styles.IDStyle.Render(l.ID), name, l.Todos, styles.MutedStyle.Render(created)})
	}

	tw.Render()
}

func markdownRenderer(style string, width int) (*glamour.TermRenderer, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == config.MarkdownStyleTheme {
		opts = append(opts, glamour.WithStyles(styles.GlamourStyle()))
	} else {
		opts = append(opts, glamour.WithStylePath(style))
	}
	return glamour.NewTermRenderer(opts...)
}

// renderTodo writes the detail view of a single todo. The description is
// rendered as markdown.
func renderTodo(w io.Writer, t todo.Todo, ix tend.Index, markdownStyle string, now time.Time) error {
	field := func(label, value string) {
		if value == "" {
			return
		}
		_, _ = fmt.Fprintf(w, "%s %s\n", styles.MutedStyle.Render(fmt.Sprintf("%-10s", label)), value)
	}

	_, _ = fmt.Fprintf(w, "%s %s\n\n", statusIcon(t), styles.TitleStyle.Render(t.Title))

	status := "open"
	switch {
	case t.IsDeleted:
		status = "deleted"
	case t.IsCompleted:
		status = "completed"
	}

	field("id", styles.IDStyle.Render(t.ID))
	field("status", status)
	field("priority", styles.PriorityStyle(t.Priority).Render(string(t.Priority)))
	field(styles.IconCategory+" category", ix.CategoryName(t.CategoryID))
	field(styles.IconTag+" tags", tagChips(ix, t.TagIDs))
	field(styles.IconSchedule+" due", scheduledLabel(t, now))
	field("created", relative(t.CreatedAt))
	field("updated", relative(t.UpdatedAt))
	if t.DeletedAt != nil {
		field("deleted", relative(*t.DeletedAt))
	}

	if strings.TrimSpace(t.Description) == "" {
		return nil
	}

	width := min(termWidth(), 100)
	r, err := markdownRenderer(markdownStyle, width)
	if err != nil {
		return fmt.Errorf("markdown renderer: %w", err)
	}

	out, err := r.Render(t.Description)
	if err != nil {
		return fmt.Errorf("render description: %w", err)
	}

	_, _ = fmt.Fprint(w, out)
	return nil
}

func relative(ts string) string {
	at, ok := parseStoredTime(ts)
	if !ok {
		return ts
	}
	return at.Local().Format("2006-01-02 15:04") + " " + styles.MutedStyle.Render("("+humanize.Time(at)+")")
}
