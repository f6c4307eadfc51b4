package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"plain", "hello world", "hello world"},
		{"angle brackets", "<script>", "&lt;script&gt;"},
		{"ampersand", "a & b", "a &amp; b"},
		{"quotes", `say "hi"`, "say &#34;hi&#34;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Escape(tt.input))
		})
	}
}

func TestRenderEscapesEverything(t *testing.T) {
	out := Render(`<img src=x onerror="alert(1)"> & 'quotes'`)
	assert.NotContains(t, out, "<img")
	assert.NotContains(t, out, `"alert`)
	assert.Contains(t, out, "&lt;img")
	assert.Contains(t, out, "&amp;")
}

func TestRenderFencedCodeBlock(t *testing.T) {
	out := Render("```go\nfmt.Println(\"hi\")\n```")
	assert.Contains(t, out, `<pre><code class="language-go">`)
	assert.Contains(t, out, "fmt.Println(&#34;hi&#34;)")
	assert.Contains(t, out, "</code></pre>")
}

func TestRenderFencedCodeBlockNoLanguage(t *testing.T) {
	out := Render("```\nplain\n```")
	assert.Contains(t, out, `<pre><code class="language-">plain`)
}

func TestRenderInlineCode(t *testing.T) {
	assert.Equal(t, "run <code>go test</code> now", Render("run `go test` now"))
}

func TestRenderBoldItalicCode(t *testing.T) {
	// Italic must not consume the bold markers
	out := Render("**bold** and *italic* and `code`")
	assert.Equal(t, "<strong>bold</strong> and <em>italic</em> and <code>code</code>", out)
}

func TestRenderHeaders(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"h1", "# Title", "<h1>Title</h1>"},
		{"h2", "## Section", "<h2>Section</h2>"},
		{"h3", "### Detail", "<h3>Detail</h3>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Render(tt.input))
		})
	}
}

func TestRenderH3NotSwallowedByH1(t *testing.T) {
	out := Render("### Deep\n# Top")
	assert.Contains(t, out, "<h3>Deep</h3>")
	assert.Contains(t, out, "<h1>Top</h1>")
	assert.NotContains(t, out, "<h1>## Deep</h1>")
}

func TestRenderBullets(t *testing.T) {
	out := Render("- one\n- two")
	assert.Equal(t, "• one\n• two", out)
}

func TestRenderEmpty(t *testing.T) {
	assert.Equal(t, "", Render(""))
}

func TestRenderPlainTextPassesThrough(t *testing.T) {
	// No markdown, no escapable characters: render is the identity, so a
	// second pass changes nothing.
	in := "just a plain sentence with numbers 123"
	once := Render(in)
	assert.Equal(t, in, once)
	assert.Equal(t, once, Render(once))
}

func TestRenderNeverEmitsRawInputBrackets(t *testing.T) {
	inputs := []string{
		"<b>bold</b>",
		"a < b > c",
		"```\n<script>alert(1)</script>\n```",
		"`<code>`",
	}
	for _, in := range inputs {
		out := Render(in)
		assert.NotContains(t, out, "<script>", "input %q", in)
		assert.NotContains(t, out, "<b>", "input %q", in)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		n        int
		expected string
	}{
		{"short", "abc", 10, "abc"},
		{"exact", "abc", 3, "abc"},
		{"cut", "abcdef", 3, "abc"},
		{"newlines flattened", "a\nb\nc", 10, "a b c"},
		{"multibyte safe", strings.Repeat("é", 5), 3, "ééé"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Truncate(tt.input, tt.n))
		})
	}
}
