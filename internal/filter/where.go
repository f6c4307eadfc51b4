// Package filter applies --where clauses to transcript events before the
// document is built.
package filter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sessionlab/cxv/internal/domain"
)

// WhereClause represents a parsed --where condition
type WhereClause struct {
	Field    string
	Operator string
	Value    string
	regex    *regexp.Regexp // Compiled regex for ~ and !~ operators
}

// ParseWhereClause parses a where clause like "kind=user" or "text~timeout".
// Supported operators: =, !=, ~, !~, ^, $
func ParseWhereClause(clause string) (*WhereClause, error) {
	// Try operators in order of length (longest first to avoid partial matches)
	operators := []string{"!~", "!=", "~", "=", "^", "$"}

	for _, op := range operators {
		idx := strings.Index(clause, op)
		if idx > 0 {
			field := strings.TrimSpace(clause[:idx])
			value := strings.TrimSpace(clause[idx+len(op):])

			if field == "" || value == "" {
				return nil, fmt.Errorf("invalid where clause: %s", clause)
			}

			wc := &WhereClause{
				Field:    field,
				Operator: op,
				Value:    value,
			}

			// Pre-compile regex for ~ and !~ operators
			if op == "~" || op == "!~" {
				re, err := regexp.Compile(value)
				if err != nil {
					return nil, fmt.Errorf("invalid regex in where clause '%s': %w", clause, err)
				}
				wc.regex = re
			}

			return wc, nil
		}
	}

	return nil, fmt.Errorf("no valid operator found in where clause: %s (use =, !=, ~, !~, ^, $)", clause)
}

// ParseWhereClauses parses a list of clause strings, failing on the first bad one.
func ParseWhereClauses(clauses []string) ([]*WhereClause, error) {
	parsed := make([]*WhereClause, 0, len(clauses))
	for _, c := range clauses {
		wc, err := ParseWhereClause(c)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, wc)
	}
	return parsed, nil
}

// Match checks if an event matches this where clause
func (wc *WhereClause) Match(e *domain.Event) bool {
	fieldValue := wc.getFieldValue(e)

	switch wc.Operator {
	case "=":
		return fieldValue == wc.Value
	case "!=":
		return fieldValue != wc.Value
	case "~":
		return wc.regex.MatchString(fieldValue)
	case "!~":
		return !wc.regex.MatchString(fieldValue)
	case "^":
		return strings.HasPrefix(fieldValue, wc.Value)
	case "$":
		return strings.HasSuffix(fieldValue, wc.Value)
	}

	return false
}

// getFieldValue extracts the named field from an event
func (wc *WhereClause) getFieldValue(e *domain.Event) string {
	switch strings.ToLower(wc.Field) {
	case "kind":
		return string(e.Kind)
	case "text":
		return e.Text
	case "tool":
		return e.ToolName
	case "label":
		return e.Label
	case "output":
		return e.Output
	default:
		return ""
	}
}

// Apply keeps events matching every clause (AND), renumbering ordinals so the
// surviving sequence stays contiguous and anchors line up.
func Apply(events []domain.Event, clauses []*WhereClause) []domain.Event {
	if len(clauses) == 0 {
		return events
	}
	var kept []domain.Event
	for _, e := range events {
		match := true
		for _, wc := range clauses {
			if !wc.Match(&e) {
				match = false
				break
			}
		}
		if match {
			e.Ordinal = len(kept)
			kept = append(kept, e)
		}
	}
	return kept
}
