// Package format holds small presentation helpers shared by the builder and
// the CLI. All functions degrade on bad input instead of returning errors.
package format

import (
	"time"

	"github.com/dustin/go-humanize"
)

// Timestamp formats an ISO8601 timestamp as HH:MM:SS for inline display.
// Unparseable input falls back to its first 19 characters.
func Timestamp(ts string) string {
	if ts == "" {
		return ""
	}
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		if len(ts) > 19 {
			return ts[:19]
		}
		return ts
	}
	return t.Format("15:04:05")
}

// TimestampFull formats an ISO8601 timestamp as a full human-readable UTC
// string. Unparseable input is returned as-is.
func TimestampFull(ts string) string {
	if ts == "" {
		return ""
	}
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return t.UTC().Format("2006-01-02 15:04:05") + " UTC"
}

// ByteSize renders a byte count as a human-readable size ("1.2 MB").
func ByteSize(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}

// Count renders an integer with thousands separators ("12,345").
func Count(n int64) string {
	return humanize.Comma(n)
}
