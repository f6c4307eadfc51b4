package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sessionlab/cxv/internal/domain"
)

func TestCollect(t *testing.T) {
	events := []domain.Event{
		{Kind: domain.KindUserMessage, Timestamp: "2025-11-02T10:00:00Z"},
		{Kind: domain.KindToolCall, Timestamp: "2025-11-02T10:00:05Z"},
		{Kind: domain.KindToolOutput, Timestamp: "2025-11-02T10:00:06Z"},
		{Kind: domain.KindSystem, IsError: true, Timestamp: "2025-11-02T10:00:10Z"},
		{Kind: domain.KindTokenUsage, Usage: &domain.TokenUsage{Input: 100, Output: 50}},
		{Kind: domain.KindTokenUsage, Usage: &domain.TokenUsage{Input: 400, Output: 90}},
		{Kind: domain.KindFinalAnswer, Timestamp: "2025-11-02T10:01:30Z"},
	}

	s := Collect(events)

	assert.Equal(t, 7, s.Total)
	assert.Equal(t, 1, s.Count(domain.KindUserMessage))
	assert.Equal(t, 1, s.Count(domain.KindToolCall))
	assert.Equal(t, 2, s.Count(domain.KindTokenUsage))
	assert.Equal(t, 0, s.Count(domain.KindReasoning))
	assert.Equal(t, 1, s.ToolCalls)
	assert.Equal(t, 1, s.Errors)

	// Last cumulative counter wins
	assert.Equal(t, int64(400), s.Tokens.Input)
	assert.Equal(t, int64(90), s.Tokens.Output)

	assert.Equal(t, "2025-11-02T10:00:00Z", s.FirstTS)
	assert.Equal(t, "2025-11-02T10:01:30Z", s.LastTS)
	assert.Equal(t, 90*time.Second, s.Duration())
}

func TestCollectEmpty(t *testing.T) {
	s := Collect(nil)
	require.NotNil(t, s)
	assert.Equal(t, 0, s.Total)
	assert.Equal(t, time.Duration(0), s.Duration())
}

func TestDurationBadTimestamps(t *testing.T) {
	s := &Stats{FirstTS: "garbage", LastTS: "2025-11-02T10:00:00Z"}
	assert.Equal(t, time.Duration(0), s.Duration())

	s = &Stats{FirstTS: "2025-11-02T10:00:00Z", LastTS: "2025-11-02T09:00:00Z"}
	assert.Equal(t, time.Duration(0), s.Duration())
}
