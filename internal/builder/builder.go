// Package builder assembles a parsed transcript into one self-contained HTML
// document: header, sidebar index, content stream, and inlined assets. No
// external references; the output opens offline.
package builder

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	"github.com/benbjohnson/clock"

	"github.com/sessionlab/cxv/internal/domain"
	"github.com/sessionlab/cxv/internal/format"
	"github.com/sessionlab/cxv/internal/markdown"
)

//go:embed assets/style.css
var styleCSS string

//go:embed assets/viewer.js
var viewerJS string

// DefaultTruncate is the tool-output length above which the block renders
// collapsed with a click-to-expand hint.
const DefaultTruncate = 2000

const (
	userPreviewLen = 80
	previewLen     = 60
	shortIDLen     = 12
)

// Options configure a Builder.
type Options struct {
	Title          string      // Document title override; defaults to the short session id
	TruncateOutput int         // Collapse threshold for tool output, in runes
	Clock          clock.Clock // Source for the generated-at footer; defaults to wall clock
}

// Builder renders transcripts. Safe for reuse across sessions.
type Builder struct {
	opts Options
}

// New returns a Builder with defaults filled in.
func New(opts Options) *Builder {
	if opts.TruncateOutput <= 0 {
		opts.TruncateOutput = DefaultTruncate
	}
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}
	return &Builder{opts: opts}
}

type filterButton struct {
	Name   string
	Label  string
	Active bool
}

var filterLabels = map[string]string{
	domain.FilterDefault: "Default",
	domain.FilterNoTools: "No tools",
	domain.FilterUser:    "User",
	domain.FilterAnswers: "Answers",
	domain.FilterAll:     "All",
}

type shellData struct {
	Title          string
	CSS            template.CSS
	JS             template.JS
	Sidebar        template.HTML
	Messages       template.HTML
	SessionID      string
	SessionIDShort string
	SessionTS      string
	Provider       string
	CLIVersion     string
	Cwd            string
	GitInfo        string
	Generated      string
	Filters        []filterButton
}

// Build renders the document for one session. meta may be nil, in which case
// the header shows placeholders. Events must already carry their final
// ordinals; anchors are derived from them.
func (b *Builder) Build(meta *domain.SessionMeta, events []domain.Event) (string, error) {
	var sidebar, messages strings.Builder

	for _, e := range events {
		b.renderEvent(&sidebar, &messages, e)
	}

	data := shellData{
		Title:     b.opts.Title,
		CSS:       template.CSS(styleCSS),
		JS:        template.JS(viewerJS),
		Sidebar:   template.HTML(sidebar.String()),
		Messages:  template.HTML(messages.String()),
		SessionID: "unknown",
		Generated: b.opts.Clock.Now().Format("2006-01-02 15:04"),
	}

	if meta != nil {
		data.SessionID = meta.ID
		data.SessionTS = format.TimestampFull(meta.Timestamp)
		data.Provider = meta.Provider
		data.CLIVersion = meta.CLIVersion
		data.Cwd = meta.Cwd
		data.GitInfo = meta.Git.Branch
		if meta.Git.Commit != "" {
			data.GitInfo += " @ " + markdown.Truncate(meta.Git.Commit, shortIDLen)
		}
	}
	data.SessionIDShort = markdown.Truncate(data.SessionID, shortIDLen)
	if data.Title == "" {
		data.Title = data.SessionIDShort
	}

	for _, name := range domain.FilterNames {
		data.Filters = append(data.Filters, filterButton{
			Name:   name,
			Label:  filterLabels[name],
			Active: name == domain.FilterDefault,
		})
	}

	var buf bytes.Buffer
	if err := shellTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render document shell: %w", err)
	}
	return buf.String(), nil
}

func (b *Builder) renderEvent(sidebar, messages *strings.Builder, e domain.Event) {
	switch e.Kind {
	case domain.KindUserMessage:
		b.renderUserMessage(sidebar, messages, e)
	case domain.KindCommentary:
		b.renderCommentary(sidebar, messages, e)
	case domain.KindFinalAnswer:
		b.renderFinalAnswer(sidebar, messages, e)
	case domain.KindReasoning:
		b.renderReasoning(sidebar, messages, e)
	case domain.KindToolCall:
		b.renderToolCall(sidebar, messages, e)
	case domain.KindToolOutput:
		b.renderToolOutput(sidebar, messages, e)
	case domain.KindSystem:
		b.renderSystem(sidebar, messages, e)
	case domain.KindTokenUsage:
		b.renderTokenUsage(sidebar, messages, e)
	}
}

// sidebarNode emits one index entry. label is escaped here; callers pass raw
// text. extraClass adds a styling bucket beyond the kind's role class.
func sidebarNode(sidebar *strings.Builder, e domain.Event, extraClass, icon, label string) {
	class := e.Kind.RoleClass()
	if extraClass != "" {
		class += " " + extraClass
	}
	fmt.Fprintf(sidebar,
		`<a class="tree-node %s" data-kind="%s" href="#event-%d"><span class="tree-ts">%s</span> <span class="tree-content">%s %s</span></a>`+"\n",
		class, e.Kind, e.Ordinal, format.Timestamp(e.Timestamp), icon, markdown.Escape(label))
}

func openBlock(messages *strings.Builder, e domain.Event, class string) {
	fmt.Fprintf(messages, `<div class="%s" data-kind="%s" id="event-%d">`, class, e.Kind, e.Ordinal)
	fmt.Fprintf(messages, `<div class="message-timestamp">%s</div>`, format.Timestamp(e.Timestamp))
}

func (b *Builder) renderUserMessage(sidebar, messages *strings.Builder, e domain.Event) {
	sidebarNode(sidebar, e, "", "👤", markdown.Truncate(e.Text, userPreviewLen))
	openBlock(messages, e, "user-message")
	fmt.Fprintf(messages, `<div class="markdown-content">%s</div></div>`+"\n", markdown.Render(e.Text))
}

func (b *Builder) renderCommentary(sidebar, messages *strings.Builder, e domain.Event) {
	sidebarNode(sidebar, e, "", "💬", markdown.Truncate(e.Text, previewLen))
	phase := ""
	if e.Phase != "" {
		phase = " (" + e.Phase + ")"
	}
	fmt.Fprintf(messages, `<div class="commentary-message" data-kind="%s" id="event-%d">`, e.Kind, e.Ordinal)
	fmt.Fprintf(messages, `<div class="message-timestamp">%s%s</div>`, format.Timestamp(e.Timestamp), markdown.Escape(phase))
	fmt.Fprintf(messages, `<div class="markdown-content">%s</div></div>`+"\n", markdown.Render(e.Text))
}

func (b *Builder) renderFinalAnswer(sidebar, messages *strings.Builder, e domain.Event) {
	sidebarNode(sidebar, e, "", "✅", markdown.Truncate(e.Text, previewLen))
	openBlock(messages, e, "assistant-message final-answer")
	messages.WriteString(`<div class="final-marker">FINAL ANSWER</div>`)
	fmt.Fprintf(messages, `<div class="markdown-content">%s</div></div>`+"\n", markdown.Render(e.Text))
}

func (b *Builder) renderReasoning(sidebar, messages *strings.Builder, e domain.Event) {
	sidebarNode(sidebar, e, "", "💭", markdown.Truncate(e.Text, previewLen))
	openBlock(messages, e, "thinking-block")
	fmt.Fprintf(messages, `<div class="thinking-text">%s</div></div>`+"\n", markdown.Escape(e.Text))
}

func (b *Builder) renderToolCall(sidebar, messages *strings.Builder, e domain.Event) {
	preview := e.ToolName + ": " + markdown.Truncate(argsPreview(e), userPreviewLen)
	sidebarNode(sidebar, e, "", "⚡", preview)

	openBlock(messages, e, "tool-execution pending")
	fmt.Fprintf(messages, `<div class="tool-header"><span class="tool-name">%s</span></div>`, markdown.Escape(e.ToolName))
	fmt.Fprintf(messages, `<div class="tool-args">%s</div></div>`+"\n", argsDisplay(e))
}

func (b *Builder) renderToolOutput(sidebar, messages *strings.Builder, e domain.Event) {
	runes := []rune(e.Output)
	truncated := len(runes) > b.opts.TruncateOutput
	label := fmt.Sprintf("output (%s chars)", format.Count(int64(len(runes))))
	sidebarNode(sidebar, e, "", "📤", label)

	fmt.Fprintf(messages, `<div class="tool-execution success" data-kind="%s" id="event-%d">`, e.Kind, e.Ordinal)
	fmt.Fprintf(messages, `<div class="message-timestamp">%s</div>`, format.Timestamp(e.Timestamp))

	if !truncated {
		fmt.Fprintf(messages, `<div class="tool-output"><div class="output-preview"><pre>%s</pre></div></div></div>`+"\n",
			markdown.Escape(e.Output))
		return
	}

	preview := string(runes[:b.opts.TruncateOutput])
	hint := fmt.Sprintf(`<span class="expand-hint">[click to expand %s chars]</span>`, format.Count(int64(len(runes))))
	messages.WriteString(`<div class="tool-output expandable" onclick="this.classList.toggle('expanded')">`)
	fmt.Fprintf(messages, `<div class="output-preview"><pre>%s`+"\n"+`%s</pre></div>`, markdown.Escape(preview), hint)
	fmt.Fprintf(messages, `<div class="output-full"><pre>%s</pre></div></div></div>`+"\n", markdown.Escape(e.Output))
}

func (b *Builder) renderSystem(sidebar, messages *strings.Builder, e domain.Event) {
	extraClass, icon, blockClass, labelClass := "", "•", "system-event", "event-label"
	if e.IsError {
		extraClass, icon = "role-error", "⛔"
		blockClass += " error-event"
		labelClass += " error-text"
	}
	sidebarNode(sidebar, e, extraClass, icon, e.Label)
	openBlock(messages, e, blockClass)
	fmt.Fprintf(messages, `<span class="%s">%s</span></div>`+"\n", labelClass, markdown.Escape(e.Label))
}

func (b *Builder) renderTokenUsage(sidebar, messages *strings.Builder, e domain.Event) {
	if e.Usage == nil || e.Usage.Input <= 0 {
		return
	}
	counters := fmt.Sprintf("in:%s out:%s reasoning:%s",
		format.Count(e.Usage.Input), format.Count(e.Usage.Output), format.Count(e.Usage.Reasoning))
	sidebarNode(sidebar, e, "", "📊", counters)
	openBlock(messages, e, "token-count")
	fmt.Fprintf(messages, `<span class="event-label">📊 Tokens — %s</span></div>`+"\n", markdown.Escape(counters))
}

// argsPreview returns a one-line summary of a tool call's arguments: the bare
// command for exec_command, compact JSON otherwise, raw text as last resort.
func argsPreview(e domain.Event) string {
	var args map[string]any
	if err := json.Unmarshal([]byte(e.ToolArgs), &args); err != nil {
		return e.ToolArgs
	}
	if e.ToolName == "exec_command" {
		if cmd, ok := args["cmd"].(string); ok {
			return cmd
		}
	}
	compact, err := json.Marshal(args)
	if err != nil {
		return e.ToolArgs
	}
	return string(compact)
}

// argsDisplay returns the escaped HTML body for a tool call's arguments block.
func argsDisplay(e domain.Event) string {
	var args map[string]any
	if err := json.Unmarshal([]byte(e.ToolArgs), &args); err != nil {
		return "<pre>" + markdown.Escape(e.ToolArgs) + "</pre>"
	}
	if e.ToolName == "exec_command" {
		if cmd, ok := args["cmd"].(string); ok {
			return `<span class="tool-command">$ ` + markdown.Escape(cmd) + `</span>`
		}
	}
	pretty, err := json.MarshalIndent(args, "", "  ")
	if err != nil {
		return "<pre>" + markdown.Escape(e.ToolArgs) + "</pre>"
	}
	return "<pre>" + markdown.Escape(string(pretty)) + "</pre>"
}

var shellTmpl = template.Must(template.New("shell").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Codex CLI Session — {{.Title}}</title>
  <style>{{.CSS}}</style>
</head>
<body>
  <button id="hamburger" onclick="document.getElementById('sidebar').classList.toggle('open'); document.getElementById('sidebar-overlay').classList.toggle('open')">☰</button>
  <div id="sidebar-overlay" onclick="document.getElementById('sidebar').classList.remove('open'); this.classList.remove('open')"></div>
  <div id="app">
    <aside id="sidebar">
      <div class="sidebar-header">
        <h2>CODEX CLI SESSION</h2>
        <div class="sidebar-meta">{{.SessionIDShort}} · {{.SessionTS}}</div>
        <input type="text" class="sidebar-search" id="tree-search" placeholder="Filter entries..." oninput="filterTree(this.value)">
        <div class="sidebar-filters">
          {{range .Filters}}<button class="filter-btn{{if .Active}} active{{end}}" data-filter="{{.Name}}" onclick="setFilter('{{.Name}}', this)">{{.Label}}</button>
          {{end}}</div>
      </div>
      <div class="tree-container" id="tree-container">{{.Sidebar}}</div>
    </aside>
    <main id="content">
      <div class="header">
        <h1><span class="session-logo">CODEX</span> Session Transcript</h1>
        <div class="header-info">
          <div class="info-item"><span class="info-label">Session ID</span><span class="info-value">{{.SessionID}}</span></div>
          <div class="info-item"><span class="info-label">Timestamp</span><span class="info-value">{{.SessionTS}}</span></div>
          <div class="info-item"><span class="info-label">Model</span><span class="info-value">{{.Provider}}</span></div>
          <div class="info-item"><span class="info-label">CLI Version</span><span class="info-value">{{.CLIVersion}}</span></div>
          <div class="info-item"><span class="info-label">Working Dir</span><span class="info-value">{{.Cwd}}</span></div>
          <div class="info-item"><span class="info-label">Git Branch</span><span class="info-value">{{.GitInfo}}</span></div>
        </div>
      </div>
      <div id="messages">{{.Messages}}</div>
      <div class="footer">Codex CLI session transcript · Generated {{.Generated}}</div>
    </main>
  </div>
  <script>{{.JS}}</script>
</body>
</html>
`))
