// Package ui writes user-facing progress output.
package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Printer writes typed one-line messages.
// Success, info, and generate messages go to the output writer; warnings
// and errors go to the error writer.
type Printer struct {
	out     io.Writer
	err     io.Writer
	noColor bool

	green  *color.Color
	yellow *color.Color
	red    *color.Color
	cyan   *color.Color
	bold   *color.Color
	faint  *color.Color
}

// New creates a Printer.
func New(out, err io.Writer, noColor bool) *Printer {
	p := &Printer{
		out:     out,
		err:     err,
		noColor: noColor,
		green:   color.New(color.FgGreen),
		yellow:  color.New(color.FgYellow),
		red:     color.New(color.FgRed),
		cyan:    color.New(color.FgCyan),
		bold:    color.New(color.Bold),
		faint:   color.New(color.Faint),
	}
	if noColor {
		for _, c := range []*color.Color{p.green, p.yellow, p.red, p.cyan, p.bold, p.faint} {
			c.DisableColor()
		}
	}
	return p
}

// Out returns the writer for regular output.
func (p *Printer) Out() io.Writer {
	return p.out
}

// Successf prints a success message.
func (p *Printer) Successf(format string, args ...any) {
	fmt.Fprintf(p.out, "%s %s\n", p.green.Sprint("✓"), fmt.Sprintf(format, args...))
}

// Infof prints an indented informational message.
func (p *Printer) Infof(format string, args ...any) {
	fmt.Fprintf(p.out, "  %s\n", fmt.Sprintf(format, args...))
}

// Generatef prints a file generation message.
func (p *Printer) Generatef(format string, args ...any) {
	fmt.Fprintf(p.out, "  %s %s\n", p.faint.Sprint("+"), fmt.Sprintf(format, args...))
}

// Warnf prints a warning.
func (p *Printer) Warnf(format string, args ...any) {
	fmt.Fprintf(p.err, "%s %s\n", p.yellow.Sprint("⚠"), fmt.Sprintf(format, args...))
}

// Errorf prints an error message.
func (p *Printer) Errorf(format string, args ...any) {
	fmt.Fprintf(p.err, "%s %s\n", p.red.Sprint("✗"), fmt.Sprintf(format, args...))
}

// Title prints a bold heading followed by a blank line.
func (p *Printer) Title(text string) {
	fmt.Fprintf(p.out, "\n  %s\n\n", p.bold.Sprint(text))
}

// Command prints a command the user should run.
func (p *Printer) Command(cmd string) {
	fmt.Fprintf(p.out, "    %s\n", p.cyan.Sprint(cmd))
}

// Spinner creates a spinner writing to the output writer.
// Animation is only enabled when animate is true; otherwise only the final
// status line is printed.
func (p *Printer) Spinner(message string, animate bool) *Spinner {
	return NewSpinner(p.out, SpinnerOptions{
		Message: message,
		NoColor: p.noColor,
		Animate: animate,
	})
}
