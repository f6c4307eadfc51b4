package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimestamp(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"rfc3339 zulu", "2025-11-02T14:30:05Z", "14:30:05"},
		{"rfc3339 offset", "2025-11-02T14:30:05+02:00", "14:30:05"},
		{"garbage short", "not-a-time", "not-a-time"},
		{"garbage long", "not-a-timestamp-at-all-really", "not-a-timestamp-at-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Timestamp(tt.input))
		})
	}
}

func TestTimestampFull(t *testing.T) {
	assert.Equal(t, "2025-11-02 14:30:05 UTC", TimestampFull("2025-11-02T14:30:05Z"))
	assert.Equal(t, "2025-11-02 12:30:05 UTC", TimestampFull("2025-11-02T14:30:05+02:00"))
	assert.Equal(t, "", TimestampFull(""))
	assert.Equal(t, "bogus", TimestampFull("bogus"))
}

func TestByteSize(t *testing.T) {
	assert.Equal(t, "0 B", ByteSize(0))
	assert.Equal(t, "0 B", ByteSize(-5))
	assert.Equal(t, "1.0 kB", ByteSize(1000))
}

func TestCount(t *testing.T) {
	assert.Equal(t, "0", Count(0))
	assert.Equal(t, "1,234,567", Count(1234567))
}
