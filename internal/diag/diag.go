// Package diag provides the diagnostic sink the generator reports through.
// The sink is injected wherever output can occur so tests run silently and
// hosts can redirect output.
package diag

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Level controls how much a Reporter emits.
type Level int

const (
	Silent Level = iota
	ErrorLevel
	WarnLevel
	InfoLevel
	DebugLevel
)

// Reporter emits leveled diagnostics to injected writers.
type Reporter struct {
	level    Level
	out      io.Writer
	errOut   io.Writer
	useColor bool
}

// New creates a reporter writing to stdout/stderr.
func New(level Level) *Reporter {
	return &Reporter{
		level:    level,
		out:      os.Stdout,
		errOut:   os.Stderr,
		useColor: isatty.IsTerminal(os.Stdout.Fd()) && os.Getenv("NO_COLOR") == "",
	}
}

// NewWriter creates a reporter with explicit writers and no color. Intended
// for tests and embedding hosts.
func NewWriter(level Level, out, errOut io.Writer) *Reporter {
	return &Reporter{level: level, out: out, errOut: errOut}
}

// Discard returns a reporter that emits nothing.
func Discard() *Reporter {
	return &Reporter{level: Silent, out: io.Discard, errOut: io.Discard}
}

func (r *Reporter) Infof(format string, args ...any) {
	if r.level < InfoLevel {
		return
	}
	r.print(r.out, color.FgGreen, "", format, args...)
}

func (r *Reporter) Hintf(format string, args ...any) {
	if r.level < InfoLevel {
		return
	}
	r.print(r.out, color.FgCyan, "hint: ", format, args...)
}

func (r *Reporter) Warnf(format string, args ...any) {
	if r.level < WarnLevel {
		return
	}
	r.print(r.errOut, color.FgYellow, "warning: ", format, args...)
}

func (r *Reporter) Errorf(format string, args ...any) {
	if r.level < ErrorLevel {
		return
	}
	r.print(r.errOut, color.FgRed, "error: ", format, args...)
}

func (r *Reporter) Debugf(format string, args ...any) {
	if r.level < DebugLevel {
		return
	}
	r.print(r.out, color.FgMagenta, "debug: ", format, args...)
}

// print colors the prefix when one is set, otherwise the message itself.
func (r *Reporter) print(w io.Writer, attr color.Attribute, prefix, format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	if !r.useColor {
		fmt.Fprintf(w, "%s%s\n", prefix, message)
		return
	}
	if prefix != "" {
		color.New(attr).Fprint(w, prefix)
		fmt.Fprintf(w, "%s\n", message)
		return
	}
	color.New(attr).Fprintln(w, message)
}
