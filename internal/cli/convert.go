package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sessionlab/cxv/internal/builder"
	"github.com/sessionlab/cxv/internal/filter"
	"github.com/sessionlab/cxv/internal/format"
	"github.com/sessionlab/cxv/internal/parse"
	"github.com/sessionlab/cxv/internal/session"
)

// ConvertCmd renders a session log into one self-contained HTML file
type ConvertCmd struct {
	Input    string   `arg:"" help:"Path to the session .jsonl file"`
	Output   string   `arg:"" optional:"" help:"Output HTML path (default: input path with .html extension)"`
	Title    string   `default:"${config_title}" help:"Document title (default: short session id)"`
	Truncate int      `default:"${config_truncate}" help:"Collapse tool output longer than this many chars"`
	Where    []string `short:"w" help:"Keep only events matching clause (e.g. kind=user, text~regex); can be repeated"`
}

// Run executes the convert command
func (c *ConvertCmd) Run(globals *Globals) error {
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
	globals.Debug("parsed %d records into %d events", len(records), len(events))

	events = filter.Apply(events, clauses)
	if len(clauses) > 0 {
		globals.Debug("%d events remain after %d where clause(s)", len(events), len(clauses))
	}

	b := builder.New(builder.Options{
		Title:          c.Title,
		TruncateOutput: c.Truncate,
	})
	doc, err := b.Build(meta, events)
	if err != nil {
		return globals.Errorf("BUILD_FAILED", err.Error())
	}

	outPath := c.Output
	if outPath == "" {
		outPath = DefaultOutputPath(c.Input)
	}
	if err := os.WriteFile(outPath, []byte(doc), 0o644); err != nil {
		return globals.Errorf("WRITE_FAILED", fmt.Sprintf("writing %s: %v", outPath, err))
	}

	stats := session.Collect(events)
	globals.Successf("written to %s (%s, %d events)", outPath, format.ByteSize(int64(len(doc))), stats.Total)
	if d := stats.Duration(); d > 0 {
		globals.Dimf("%d tool call(s) · session span %s", stats.ToolCalls, d)
	}
	return nil
}

// DefaultOutputPath derives the HTML output path from the input path: same
// directory, extension swapped for .html.
func DefaultOutputPath(input string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + ".html"
}
