// Package printer writes styled status lines for CLI commands. Command
// results go to stdout; status lines go to the printer's writer, stderr by
// default.
package printer

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/colonyops/tend/internal/core/styles"
)

type ctxKey struct{}

// Printer writes status lines.
type Printer struct {
	w     io.Writer
	quiet bool
}

// New creates a printer writing to w. A quiet printer drops everything but
// errors.
func New(w io.Writer, quiet bool) *Printer {
	return &Printer{w: w, quiet: quiet}
}

// NewContext returns a copy of ctx carrying p.
func NewContext(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx returns the printer stored in ctx, or a stderr printer.
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok && p != nil {
		return p
	}
	return New(os.Stderr, false)
}

func (p *Printer) line(s string) {
	_, _ = fmt.Fprintln(p.w, s)
}

// Printf writes an unstyled line.
func (p *Printer) Printf(format string, args ...any) {
	if p.quiet {
		return
	}
	p.line(fmt.Sprintf(format, args...))
}

// Successf writes a line prefixed with a check mark.
func (p *Printer) Successf(format string, args ...any) {
	if p.quiet {
		return
	}
	p.line(styles.SuccessStyle.Render(styles.IconDone) + " " + fmt.Sprintf(format, args...))
}

// Infof writes a muted line.
func (p *Printer) Infof(format string, args ...any) {
	if p.quiet {
		return
	}
	p.line(styles.MutedStyle.Render(fmt.Sprintf(format, args...)))
}

// Warnf writes a warning line.
func (p *Printer) Warnf(format string, args ...any) {
	if p.quiet {
		return
	}
	p.line(styles.WarningStyle.Render("!") + " " + fmt.Sprintf(format, args...))
}

// Errorf writes an error line. Errors are written even when quiet.
func (p *Printer) Errorf(format string, args ...any) {
	p.line(styles.ErrorStyle.Render(styles.IconDeleted) + " " + fmt.Sprintf(format, args...))
}
