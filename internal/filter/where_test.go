package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sessionlab/cxv/internal/domain"
)

func TestParseWhereClause(t *testing.T) {
	tests := []struct {
		clause   string
		field    string
		operator string
		value    string
	}{
		{"kind=user", "kind", "=", "user"},
		{"kind!=system", "kind", "!=", "system"},
		{"text~timeout", "text", "~", "timeout"},
		{"text!~debug", "text", "!~", "debug"},
		{"tool^exec", "tool", "^", "exec"},
		{"label$aborted", "label", "$", "aborted"},
	}

	for _, tt := range tests {
		t.Run(tt.clause, func(t *testing.T) {
			wc, err := ParseWhereClause(tt.clause)
			require.NoError(t, err)
			assert.Equal(t, tt.field, wc.Field)
			assert.Equal(t, tt.operator, wc.Operator)
			assert.Equal(t, tt.value, wc.Value)
		})
	}
}

func TestParseWhereClauseErrors(t *testing.T) {
	for _, clause := range []string{"nonsense", "=user", "kind=", "text~[unclosed"} {
		t.Run(clause, func(t *testing.T) {
			_, err := ParseWhereClause(clause)
			assert.Error(t, err)
		})
	}
}

func TestWhereClauseMatch(t *testing.T) {
	event := domain.Event{
		Kind:     domain.KindToolCall,
		ToolName: "exec_command",
		Text:     "",
	}

	tests := []struct {
		clause  string
		matches bool
	}{
		{"kind=tool_call", true},
		{"kind=user", false},
		{"kind!=user", true},
		{"tool^exec", true},
		{"tool$command", true},
		{"tool~exec_c.+d", true},
		{"tool!~shell", true},
		{"unknownfield=x", false},
	}

	for _, tt := range tests {
		t.Run(tt.clause, func(t *testing.T) {
			wc, err := ParseWhereClause(tt.clause)
			require.NoError(t, err)
			assert.Equal(t, tt.matches, wc.Match(&event))
		})
	}
}

func TestApplyRenumbersOrdinals(t *testing.T) {
	events := []domain.Event{
		{Kind: domain.KindUserMessage, Text: "q", Ordinal: 0},
		{Kind: domain.KindToolCall, ToolName: "exec_command", Ordinal: 1},
		{Kind: domain.KindFinalAnswer, Text: "a", Ordinal: 2},
	}

	clauses, err := ParseWhereClauses([]string{"kind!=tool_call"})
	require.NoError(t, err)

	kept := Apply(events, clauses)
	require.Len(t, kept, 2)
	assert.Equal(t, 0, kept[0].Ordinal)
	assert.Equal(t, domain.KindUserMessage, kept[0].Kind)
	assert.Equal(t, 1, kept[1].Ordinal)
	assert.Equal(t, domain.KindFinalAnswer, kept[1].Kind)
}

func TestApplyNoClausesReturnsInput(t *testing.T) {
	events := []domain.Event{{Kind: domain.KindUserMessage, Ordinal: 0}}
	assert.Equal(t, events, Apply(events, nil))
}

func TestApplyAndSemantics(t *testing.T) {
	events := []domain.Event{
		{Kind: domain.KindCommentary, Text: "reading files"},
		{Kind: domain.KindCommentary, Text: "writing tests"},
		{Kind: domain.KindUserMessage, Text: "writing docs"},
	}

	clauses, err := ParseWhereClauses([]string{"kind=commentary", "text~writing"})
	require.NoError(t, err)

	kept := Apply(events, clauses)
	require.Len(t, kept, 1)
	assert.Equal(t, "writing tests", kept[0].Text)
}
