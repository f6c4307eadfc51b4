package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/sessionlab/cxv/internal/cli"
	"github.com/sessionlab/cxv/internal/config"
)

const quickStart = `cxv - Codex CLI session transcripts as self-contained HTML

Quick start:
  cxv convert session.jsonl             Write session.html next to the input
  cxv convert session.jsonl out.html    Choose the output path
  cxv info session.jsonl                Summarize a session on the terminal

For help:
  cxv --help                            All commands and flags
`

func main() {
	// Show quick start if no args provided
	if len(os.Args) == 1 {
		fmt.Print(quickStart)
		return
	}

	// Load configuration from files/environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		cfg = config.Default()
	}

	var c cli.CLI

	// Apply config defaults before parsing
	// These will be overridden by CLI flags if specified
	vars := kong.Vars{
		"config_title":    cfg.Defaults.Title,
		"config_truncate": strconv.Itoa(cfg.Defaults.Truncate),
	}

	ctx := kong.Parse(&c,
		kong.Name("cxv"),
		kong.Description("cxv: render Codex CLI JSONL session logs as browsable, self-contained HTML"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
		vars,
	)

	globals := cli.NewGlobalsWithConfig(&c, cfg)
	if err := ctx.Run(globals); err != nil {
		os.Exit(1)
	}
}
