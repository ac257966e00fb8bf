package cliutil

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestNewPalette_NonTerminalWriter(t *testing.T) {
	p := NewPalette(&bytes.Buffer{}, false)

	if got := p.Pass("ok %d", 3); got != "ok 3" {
		t.Errorf("Pass() = %q, want %q", got, "ok 3")
	}
	if got := p.Fail("bad"); got != "bad" {
		t.Errorf("Fail() = %q, want %q", got, "bad")
	}
	if got := p.Warn("hmm"); got != "hmm" {
		t.Errorf("Warn() = %q, want %q", got, "hmm")
	}
}

func TestNewPalette_NoColorFlag(t *testing.T) {
	p := NewPalette(&bytes.Buffer{}, true)

	if got := p.Pass("plain"); strings.Contains(got, "\x1b[") {
		t.Errorf("Pass() = %q, expected no escape codes", got)
	}
}

func TestNewPalette_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	p := NewPalette(&bytes.Buffer{}, false)

	if got := p.Fail("plain"); strings.Contains(got, "\x1b[") {
		t.Errorf("Fail() = %q, expected no escape codes", got)
	}
}

func TestForced_EmitsEscapeCodes(t *testing.T) {
	// forced bypasses terminal detection, so escape codes must appear
	// even under go test where stdout is not a TTY.
	f := forced(color.FgGreen)
	if got := f("ok"); !strings.Contains(got, "\x1b[") {
		t.Errorf("forced() = %q, expected escape codes", got)
	}
}

func TestIsTerminal_Buffer(t *testing.T) {
	if IsTerminal(&bytes.Buffer{}) {
		t.Error("IsTerminal() = true for a bytes.Buffer, want false")
	}
}
