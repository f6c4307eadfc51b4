// Package cli wires the kong command tree: convert renders a session log to
// HTML, info summarizes one on the terminal.
package cli

import (
	"io"
	"os"

	"github.com/sessionlab/cxv/internal/config"
)

// CLI is the root command structure parsed by kong
type CLI struct {
	Quiet   bool `short:"q" help:"Suppress non-essential output"`
	Verbose bool `short:"v" help:"Enable verbose debug logging"`

	Convert ConvertCmd `cmd:"" default:"withargs" help:"Convert a JSONL session log into a self-contained HTML transcript"`
	Info    InfoCmd    `cmd:"" help:"Summarize a JSONL session log on the terminal"`
}

// Globals carries cross-command state resolved from flags and config
type Globals struct {
	Quiet   bool
	Verbose bool
	Stdout  io.Writer
	Stderr  io.Writer

	logger *debugLogger
}

// NewGlobalsWithConfig builds Globals, letting CLI flags override config values
func NewGlobalsWithConfig(c *CLI, cfg *config.Config) *Globals {
	g := &Globals{
		Quiet:   c.Quiet || cfg.Quiet,
		Verbose: c.Verbose || cfg.Verbose,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
	g.logger = newDebugLogger(g)
	return g
}

// Debug logs a formatted debug message when --verbose is on
func (g *Globals) Debug(format string, args ...interface{}) {
	g.logger.Debug(format, args...)
}
