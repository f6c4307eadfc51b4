package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/sessionlab/cxv/internal/domain"
	"github.com/sessionlab/cxv/internal/filter"
	"github.com/sessionlab/cxv/internal/format"
	"github.com/sessionlab/cxv/internal/parse"
	"github.com/sessionlab/cxv/internal/session"
)

// InfoCmd summarizes a session log without rendering it
type InfoCmd struct {
	Input string   `arg:"" help:"Path to the session .jsonl file"`
	Where []string `short:"w" help:"Keep only events matching clause before counting; can be repeated"`
}

var kindDisplayOrder = []struct {
	kind  domain.Kind
	label string
}{
	{domain.KindUserMessage, "User message"},
	{domain.KindCommentary, "Commentary"},
	{domain.KindFinalAnswer, "Final answer"},
	{domain.KindReasoning, "Reasoning"},
	{domain.KindToolCall, "Tool call"},
	{domain.KindToolOutput, "Tool output"},
	{domain.KindSystem, "System"},
	{domain.KindTokenUsage, "Token usage"},
}

// Run executes the info command
func (c *InfoCmd) Run(globals *Globals) error {
	clauses, err := filter.ParseWhereClauses(c.Where)
	if err != nil {
		return globals.Errorf("INVALID_WHERE", err.Error())
	}

	f, err := os.Open(c.Input)
	if err != nil {
		return globals.Errorf("INPUT_NOT_FOUND", fmt.Sprintf("cannot open %s: %v", c.Input, err))
	}
	defer f.Close()

	records, err := parse.Parse(f)
	if err != nil {
		return globals.Errorf("READ_FAILED", fmt.Sprintf("reading %s: %v", c.Input, err))
	}

	meta, events := parse.ExtractConversation(records)
	events = filter.Apply(events, clauses)
	stats := session.Collect(events)

	if meta != nil {
		fmt.Fprintf(globals.Stdout, "Session:     %s\n", meta.ID)
		fmt.Fprintf(globals.Stdout, "Started:     %s\n", format.TimestampFull(meta.Timestamp))
		fmt.Fprintf(globals.Stdout, "Model:       %s\n", meta.Provider)
		fmt.Fprintf(globals.Stdout, "CLI version: %s\n", meta.CLIVersion)
		fmt.Fprintf(globals.Stdout, "Working dir: %s\n", meta.Cwd)
		if meta.Git.Branch != "" {
			fmt.Fprintf(globals.Stdout, "Git branch:  %s\n", meta.Git.Branch)
		}
	} else {
		fmt.Fprintln(globals.Stdout, "Session:     unknown (no session_meta record)")
	}
	fmt.Fprintln(globals.Stdout)

	table := tablewriter.NewTable(globals.Stdout)
	table.Header("Kind", "Count")
	for _, row := range kindDisplayOrder {
		if n := stats.Count(row.kind); n > 0 {
			table.Append([]string{row.label, strconv.Itoa(n)})
		}
	}
	table.Append([]string{"Total", strconv.Itoa(stats.Total)})
	if err := table.Render(); err != nil {
		return globals.Errorf("RENDER_FAILED", err.Error())
	}

	if stats.Tokens.Input > 0 {
		fmt.Fprintf(globals.Stdout, "\nTokens: in:%s out:%s reasoning:%s\n",
			format.Count(stats.Tokens.Input), format.Count(stats.Tokens.Output), format.Count(stats.Tokens.Reasoning))
	}
	if d := stats.Duration(); d > 0 {
		fmt.Fprintf(globals.Stdout, "Span:   %s\n", d)
	}
	return nil
}
