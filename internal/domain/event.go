package domain

// Kind identifies the semantic type of a transcript event. The set is closed;
// the parser only ever emits these values.
type Kind string

const (
	KindUserMessage Kind = "user"        // Message typed by the user
	KindCommentary  Kind = "commentary"  // Non-terminating assistant update
	KindFinalAnswer Kind = "final"       // Assistant message that terminates a turn
	KindReasoning   Kind = "reasoning"   // Reasoning summary block
	KindToolCall    Kind = "tool_call"   // Agent-invoked function/command
	KindToolOutput  Kind = "tool_output" // Result of a tool call
	KindSystem      Kind = "system"      // Turn lifecycle / session housekeeping
	KindTokenUsage  Kind = "tokens"      // Cumulative token usage counter
)

// Event is one classified, renderable unit derived from a raw log record.
// Events are constructed once by the parser and never mutated afterwards;
// source order is authoritative, not timestamp order.
type Event struct {
	Kind      Kind
	Timestamp string // Raw ISO8601 timestamp from the record, possibly empty
	Ordinal   int    // 0-based position in the emitted sequence; anchors derive from it

	// Message-like kinds (user, commentary, final, reasoning)
	Text  string
	Phase string // Optional response phase for commentary

	// Tool kinds
	ToolName string
	ToolArgs string // Raw arguments string, usually JSON
	CallID   string
	Output   string

	// System kind
	Label   string
	IsError bool // Aborted turns render with error emphasis

	// Token usage kind
	Usage *TokenUsage
}

// TokenUsage holds cumulative token counters reported by the agent.
type TokenUsage struct {
	Input     int64 `json:"input_tokens"`
	Output    int64 `json:"output_tokens"`
	Reasoning int64 `json:"reasoning_output_tokens"`
	Total     int64 `json:"total_tokens"`
}

// GitInfo is the repository state captured in session metadata.
type GitInfo struct {
	Branch string `json:"branch"`
	Commit string `json:"commit_hash"`
}

// SessionMeta is session-level descriptive metadata captured from the single
// session_meta record. At most one per document; nil when the log has none.
type SessionMeta struct {
	ID         string  `json:"id"`
	Timestamp  string  `json:"timestamp"`
	Provider   string  `json:"model_provider"`
	CLIVersion string  `json:"cli_version"`
	Cwd        string  `json:"cwd"`
	Git        GitInfo `json:"git"`
}

// RoleClass returns the sidebar role class for the event's kind. These map to
// styling buckets, not filter semantics.
func (k Kind) RoleClass() string {
	switch k {
	case KindUserMessage:
		return "role-user"
	case KindCommentary, KindFinalAnswer:
		return "role-assistant"
	case KindReasoning:
		return "role-thinking"
	case KindToolCall, KindToolOutput:
		return "role-tool"
	case KindSystem, KindTokenUsage:
		return "role-system"
	}
	return "role-system"
}

// Filter names exposed as buttons in the generated document. The builder emits
// these on the filter controls and the embedded script switches between them.
const (
	FilterDefault = "default"
	FilterNoTools = "no-tools"
	FilterUser    = "user-only"
	FilterAnswers = "answers"
	FilterAll     = "all"
)

// FilterNames lists the selectable filters in display order.
var FilterNames = []string{FilterDefault, FilterNoTools, FilterUser, FilterAnswers, FilterAll}

// VisibleUnder reports whether an event of kind k is selected by the named
// filter. The embedded viewer script implements the same table against the
// data-kind tags the builder emits; this is the authoritative definition.
func (k Kind) VisibleUnder(filter string) bool {
	switch filter {
	case FilterNoTools:
		return k != KindToolCall && k != KindToolOutput && k != KindSystem
	case FilterUser:
		return k == KindUserMessage
	case FilterAnswers:
		return k == KindUserMessage || k == KindFinalAnswer
	case FilterAll:
		return true
	default: // FilterDefault
		return k != KindSystem && k != KindReasoning
	}
}
