package errors

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

var (
	red  = color.New(color.FgRed, color.Bold).SprintFunc()
	bold = color.New(color.FgWhite, color.Bold).SprintFunc()
	cyan = color.New(color.FgCyan).SprintFunc()
	gray = color.New(color.FgHiBlack).SprintFunc()
)

// DisableColors disables colored output process-wide.
func DisableColors() {
	color.NoColor = true
}

// Format returns a multi-line error message for terminal display.
func (e *CLIError) Format() string {
	var b strings.Builder

	// Header line
	b.WriteString("\n")
	if e.Code != "" {
		b.WriteString(red("ERROR "))
		b.WriteString(bold(e.Code + ": "))
	} else {
		b.WriteString(red("ERROR: "))
	}
	b.WriteString(e.Message)
	b.WriteString("\n\n")

	if e.Path != "" {
		b.WriteString("  ")
		b.WriteString(cyan(e.Path))
		b.WriteString("\n\n")
	}

	if e.Wrapped != nil {
		cause := e.Wrapped.Error()
		if inner, ok := As(e.Wrapped); ok {
			cause = inner.FormatCompact()
		}
		for _, line := range wrapText(cause, 70) {
			b.WriteString("  ")
			b.WriteString(gray(line))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if e.Detail != "" {
		for _, line := range wrapText(e.Detail, 70) {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if e.Suggestion != "" {
		b.WriteString("  ")
		b.WriteString(cyan("Hint: "))
		b.WriteString(e.Suggestion)
		b.WriteString("\n")
	}

	return b.String()
}

// FormatCompact returns a compact single-line error format.
func (e *CLIError) FormatCompact() string {
	var b strings.Builder

	if e.Code != "" {
		b.WriteString(e.Code)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if e.Path != "" {
		b.WriteString(" (")
		b.WriteString(e.Path)
		b.WriteString(")")
	}

	return b.String()
}

// wrapText wraps text to the specified width.
func wrapText(text string, width int) []string {
	if text == "" {
		return nil
	}
	if len(text) <= width {
		return []string{text}
	}

	var lines []string
	var current strings.Builder

	for _, word := range strings.Fields(text) {
		if current.Len()+len(word)+1 > width && current.Len() > 0 {
			lines = append(lines, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(word)
	}

	if current.Len() > 0 {
		lines = append(lines, current.String())
	}

	return lines
}

// Fprint writes a formatted error to w.
func Fprint(w io.Writer, err error) {
	if ce, ok := As(err); ok {
		fmt.Fprint(w, ce.Format())
		return
	}
	fmt.Fprintf(w, "\n%s %s\n\n", red("ERROR:"), err.Error())
}

// PrintError prints a formatted error to stderr.
func PrintError(err error) {
	Fprint(os.Stderr, err)
}
