package cliutil

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Palette renders pass/fail/warn text for terminal output. When color is
// disabled every render function degrades to plain fmt.Sprintf, so callers
// never branch on whether color is on.
type Palette struct {
	pass func(format string, args ...any) string
	fail func(format string, args ...any) string
	warn func(format string, args ...any) string
}

// NewPalette builds a Palette for w. Color is enabled only when w is a
// terminal, noColor is false, and the NO_COLOR convention is unset.
func NewPalette(w io.Writer, noColor bool) *Palette {
	if noColor || os.Getenv("NO_COLOR") != "" || !IsTerminal(w) {
		return &Palette{pass: fmt.Sprintf, fail: fmt.Sprintf, warn: fmt.Sprintf}
	}
	return &Palette{
		pass: forced(color.FgGreen),
		fail: forced(color.FgRed),
		warn: forced(color.FgYellow),
	}
}

// forced returns a Sprintf for attr that always emits escape codes. The
// caller has already decided the writer is a terminal, so the package
// global stdout detection must not override that.
func forced(attr color.Attribute) func(format string, args ...any) string {
	c := color.New(attr)
	c.EnableColor()
	return c.Sprintf
}

// Pass renders format in the success color.
func (p *Palette) Pass(format string, args ...any) string {
	return p.pass(format, args...)
}

// Fail renders format in the failure color.
func (p *Palette) Fail(format string, args ...any) string {
	return p.fail(format, args...)
}

// Warn renders format in the warning color.
func (p *Palette) Warn(format string, args ...any) string {
	return p.warn(format, args...)
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
