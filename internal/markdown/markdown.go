// Package markdown converts transcript text to HTML-safe markup. It handles
// the small markdown subset agents actually emit (fenced code, inline code,
// bold, italic, headers, flat bullets); full CommonMark is out of scope.
package markdown

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

// Escape HTML-escapes text, returning the empty string for empty input.
func Escape(text string) string {
	if text == "" {
		return ""
	}
	return html.EscapeString(text)
}

// The pipeline runs in fixed order over a single string. Escaping happens
// first so no later stage ever sees raw angle brackets. The italic stage has no
// lookarounds (RE2), so it depends on the bold stage having consumed every
// `**` pair before it runs: stage order is load-bearing.
var (
	reFence  = regexp.MustCompile("(?s)```(\\w*)\\n(.*?)```")
	reInline = regexp.MustCompile("`([^`]+)`")
	reBold   = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reItalic = regexp.MustCompile(`\*([^*]+)\*`)
	reH3     = regexp.MustCompile(`(?m)^### (.+)$`)
	reH2     = regexp.MustCompile(`(?m)^## (.+)$`)
	reH1     = regexp.MustCompile(`(?m)^# (.+)$`)
	reBullet = regexp.MustCompile(`(?m)^- (.+)$`)
)

// Render converts basic markdown to HTML. Input is never trusted; everything
// is escaped before any markup is generated, and the worst case for unparsable
// input is escaped plain text.
func Render(text string) string {
	out := Escape(text)
	if out == "" {
		return ""
	}

	out = reFence.ReplaceAllStringFunc(out, func(m string) string {
		sub := reFence.FindStringSubmatch(m)
		return fmt.Sprintf(`<pre><code class="language-%s">%s</code></pre>`, sub[1], sub[2])
	})

	out = reInline.ReplaceAllString(out, "<code>$1</code>")
	out = reBold.ReplaceAllString(out, "<strong>$1</strong>")
	out = reItalic.ReplaceAllString(out, "<em>$1</em>")

	// h3 before h2 before h1, so "# " never matches inside a "### " line
	out = reH3.ReplaceAllString(out, "<h3>$1</h3>")
	out = reH2.ReplaceAllString(out, "<h2>$1</h2>")
	out = reH1.ReplaceAllString(out, "<h1>$1</h1>")

	out = reBullet.ReplaceAllString(out, "• $1")

	return out
}

// Truncate shortens s to at most n runes, flattening newlines. Used for
// sidebar previews where a byte slice could split a multibyte rune.
func Truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
