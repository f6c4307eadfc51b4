package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("160")).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// styled reports whether w is a real terminal worth coloring
func styled(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Successf prints a result line unless --quiet is set
func (g *Globals) Successf(format string, args ...interface{}) {
	if g.Quiet {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if styled(g.Stdout) {
		msg = successStyle.Render(msg)
	}
	fmt.Fprintln(g.Stdout, msg)
}

// Dimf prints a secondary detail line unless --quiet is set
func (g *Globals) Dimf(format string, args ...interface{}) {
	if g.Quiet {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if styled(g.Stdout) {
		msg = dimStyle.Render(msg)
	}
	fmt.Fprintln(g.Stdout, msg)
}

// Errorf normalizes error emission across commands: a styled message on
// stderr plus a non-nil error for kong to turn into a non-zero exit.
func (g *Globals) Errorf(code, message string) error {
	line := fmt.Sprintf("Error [%s]: %s", code, message)
	if styled(g.Stderr) {
		line = errorStyle.Render(line)
	}
	fmt.Fprintln(g.Stderr, line)
	return errors.New(message)
}
