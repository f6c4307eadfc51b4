// Package parse turns Codex CLI JSONL session logs into typed transcript
// events. Parsing is deliberately tolerant: session files are often still
// being written when they are read, so undecodable or unrecognized lines are
// skipped rather than surfaced as errors.
package parse

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/sessionlab/cxv/internal/domain"
)

const maxLineSize = 10 * 1024 * 1024 // single records can carry whole file dumps

// Record is one deserialized line of the session log.
type Record struct {
	Timestamp string          `json:"timestamp"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
}

// event_msg payload (flat, not nested)
type eventMsgPayload struct {
	Type             string `json:"type"`
	Message          string `json:"message"` // user_message, agent_message
	Text             string `json:"text"`    // agent_reasoning
	LastAgentMessage string `json:"last_agent_message"`
	Reason           string `json:"reason"`
	NumTurns         int    `json:"num_turns"`
	Info             *struct {
		Total domain.TokenUsage `json:"total_token_usage"`
	} `json:"info"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// response_item payload; field presence drives classification
type responseItemPayload struct {
	Type      string         `json:"type"`
	Role      string         `json:"role"`
	Name      string         `json:"name"`
	Arguments string         `json:"arguments"`
	CallID    string         `json:"call_id"`
	Output    string         `json:"output"`
	Phase     string         `json:"phase"`
	Content   []contentBlock `json:"content"`
	Summary   []contentBlock `json:"summary"`
}

// Parse reads a JSONL stream and returns one Record per decodable line.
// Blank lines and lines that fail to decode are skipped silently; a truncated
// trailing line is the normal case for a live session, not an error. The only
// returned error is a read failure from the underlying reader.
func Parse(r io.Reader) ([]Record, error) {
	var records []Record

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec Record
		if err := json.Unmarshal(line, &rec); err != nil {
			continue
		}
		records = append(records, rec)
	}

	return records, scanner.Err()
}

// ExtractConversation classifies records into transcript events in a single
// pass, preserving source order. The first session_meta record wins; later
// ones are ignored. Records matching no recognized shape are dropped so new
// log schema additions degrade gracefully.
func ExtractConversation(records []Record) (*domain.SessionMeta, []domain.Event) {
	var meta *domain.SessionMeta
	var events []domain.Event

	emit := func(e domain.Event) {
		e.Ordinal = len(events)
		events = append(events, e)
	}

	for _, rec := range records {
		switch rec.Type {
		case "session_meta":
			if meta != nil {
				continue
			}
			var m domain.SessionMeta
			if err := json.Unmarshal(rec.Payload, &m); err == nil {
				meta = &m
			}

		case "event_msg":
			var p eventMsgPayload
			if err := json.Unmarshal(rec.Payload, &p); err != nil {
				continue
			}
			for _, e := range classifyEventMsg(&p, rec.Timestamp) {
				emit(e)
			}

		case "response_item":
			var p responseItemPayload
			if err := json.Unmarshal(rec.Payload, &p); err != nil {
				continue
			}
			for _, c := range responseClassifiers {
				if evts, ok := c.match(&p, rec.Timestamp); ok {
					for _, e := range evts {
						emit(e)
					}
					break
				}
			}
		}
	}

	return meta, events
}

func classifyEventMsg(p *eventMsgPayload, ts string) []domain.Event {
	switch p.Type {
	case "user_message":
		return []domain.Event{{Kind: domain.KindUserMessage, Timestamp: ts, Text: p.Message}}
	case "agent_message":
		return []domain.Event{{Kind: domain.KindCommentary, Timestamp: ts, Text: p.Message}}
	case "agent_reasoning":
		return []domain.Event{{Kind: domain.KindReasoning, Timestamp: ts, Text: p.Text}}
	case "task_complete":
		// The terminating message of a turn: the final answer
		return []domain.Event{{Kind: domain.KindFinalAnswer, Timestamp: ts, Text: p.LastAgentMessage}}
	case "task_started":
		return []domain.Event{{Kind: domain.KindSystem, Timestamp: ts, Label: "Turn started"}}
	case "turn_aborted":
		label := "Turn aborted"
		if p.Reason != "" {
			label += ": " + p.Reason
		}
		return []domain.Event{{Kind: domain.KindSystem, Timestamp: ts, Label: label, IsError: true}}
	case "thread_rolled_back":
		return []domain.Event{{Kind: domain.KindSystem, Timestamp: ts,
			Label: fmt.Sprintf("Rolled back %d turn(s)", p.NumTurns)}}
	case "token_count":
		if p.Info == nil {
			return nil
		}
		u := p.Info.Total
		if u.Input <= 0 && u.Output <= 0 && u.Reasoning <= 0 && u.Total <= 0 {
			return nil
		}
		usage := u
		return []domain.Event{{Kind: domain.KindTokenUsage, Timestamp: ts, Usage: &usage}}
	}
	return nil
}

// responseClassifiers is evaluated in order; the first match wins. The order
// encodes precedence: result fields mark a tool output even when the record
// also carries a call id, so that check runs before the tool-call fallback.
var responseClassifiers = []struct {
	name  string
	match func(p *responseItemPayload, ts string) ([]domain.Event, bool)
}{
	{"tool_output", func(p *responseItemPayload, ts string) ([]domain.Event, bool) {
		if p.Type != "function_call_output" && p.Output == "" {
			return nil, false
		}
		return []domain.Event{{
			Kind: domain.KindToolOutput, Timestamp: ts,
			CallID: p.CallID, Output: p.Output,
		}}, true
	}},
	{"tool_call", func(p *responseItemPayload, ts string) ([]domain.Event, bool) {
		if p.Type != "function_call" && (p.Name == "" || p.Arguments == "") {
			return nil, false
		}
		return []domain.Event{{
			Kind: domain.KindToolCall, Timestamp: ts,
			ToolName: p.Name, ToolArgs: p.Arguments, CallID: p.CallID,
		}}, true
	}},
	{"assistant_message", func(p *responseItemPayload, ts string) ([]domain.Event, bool) {
		if p.Type != "message" || p.Role != "assistant" {
			return nil, false
		}
		var evts []domain.Event
		for _, block := range p.Content {
			if block.Type == "output_text" {
				evts = append(evts, domain.Event{
					Kind: domain.KindCommentary, Timestamp: ts,
					Text: block.Text, Phase: p.Phase,
				})
			}
		}
		return evts, true
	}},
	{"reasoning_summary", func(p *responseItemPayload, ts string) ([]domain.Event, bool) {
		if p.Type != "reasoning" {
			return nil, false
		}
		var evts []domain.Event
		for _, block := range p.Summary {
			if block.Type == "summary_text" {
				evts = append(evts, domain.Event{
					Kind: domain.KindReasoning, Timestamp: ts, Text: block.Text,
				})
			}
		}
		return evts, true
	}},
}

