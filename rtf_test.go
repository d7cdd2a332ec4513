package md2rich

import (
	"strings"
	"testing"
)

func TestHTMLToRTF(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		html    string
		want    []string
		wantNot []string
	}{
		{
			name: "document shell",
			html: "<p>hello</p>",
			want: []string{`{\rtf1\ansi`, `{\fonttbl`, "hello", `\par`},
		},
		{
			name: "heading sizes by level",
			html: "<h1>Top</h1><h3>Mid</h3>",
			want: []string{`{\b\fs48 Top}`, `{\b\fs32 Mid}`},
		},
		{
			name: "inline formatting",
			html: "<p><strong>b</strong> <em>i</em> <del>s</del> <code>c</code></p>",
			want: []string{`{\b b}`, `{\i i}`, `{\strike s}`, `{\f1 c}`},
		},
		{
			name: "superscript and subscript",
			html: "<p>x<sup>2</sup> H<sub>2</sub>O</p>",
			want: []string{`{\super 2}`, `{\sub 2}`},
		},
		{
			name: "highlight",
			html: "<p><mark>note</mark></p>",
			want: []string{`{\highlight7 note}`},
		},
		{
			name: "external hyperlink field",
			html: `<p><a href="https://example.com">site</a></p>`,
			want: []string{`HYPERLINK "https://example.com"`, `\fldrslt`, "site"},
		},
		{
			name:    "internal anchor keeps text only",
			html:    `<p><a href="#section">jump</a></p>`,
			want:    []string{"jump"},
			wantNot: []string{"HYPERLINK"},
		},
		{
			name: "unordered list bullets",
			html: "<ul><li>one</li><li>two</li></ul>",
			want: []string{`\bullet  one`, `\bullet  two`, `\li400`},
		},
		{
			name: "ordered list numbering",
			html: "<ol><li>first</li><li>second</li></ol>",
			want: []string{"1. first", "2. second"},
		},
		{
			name: "pre block preserves lines",
			html: "<pre><code>line one\nline two</code></pre>",
			want: []string{`{\f1 line one\line line two}`},
		},
		{
			name:    "scripts and images dropped",
			html:    `<p>ok</p><script>bad()</script><img src="x.png">`,
			want:    []string{"ok"},
			wantNot: []string{"bad()", "x.png"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := htmlToRTF(tt.html)
			if err != nil {
				t.Fatalf("htmlToRTF error: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(got, want) {
					t.Errorf("htmlToRTF(%q) = %q, want contains %q", tt.html, got, want)
				}
			}
			for _, not := range tt.wantNot {
				if strings.Contains(got, not) {
					t.Errorf("htmlToRTF(%q) = %q, should not contain %q", tt.html, got, not)
				}
			}
		})
	}
}

func TestHTMLToRTFTable(t *testing.T) {
	t.Parallel()

	got, err := htmlToRTF("<table><tr><th>A</th><th>B</th></tr><tr><td>1</td><td>2</td></tr></table>")
	if err != nil {
		t.Fatalf("htmlToRTF error: %v", err)
	}
	for _, want := range []string{
		`\trowd`, `\cellx4500`, `\cellx9000`,
		`\intbl A\cell`, `\intbl 2\cell`, `\row`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("table RTF missing %q in %q", want, got)
		}
	}
}

func TestHTMLToRTFBalancedBraces(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"<p>plain</p>",
		"<h2>Head</h2><ul><li><strong>x</strong></li></ul>",
		"<table><tr><td><em>a</em></td></tr></table>",
		"<p>curlies {not} groups</p>",
	}
	for _, in := range inputs {
		got, err := htmlToRTF(in)
		if err != nil {
			t.Fatalf("htmlToRTF(%q) error: %v", in, err)
		}
		depth := 0
		for i := 0; i < len(got); i++ {
			switch got[i] {
			case '\\':
				i++ // escaped character, not a group delimiter
			case '{':
				depth++
			case '}':
				depth--
			}
			if depth < 0 {
				t.Fatalf("unbalanced braces in RTF for %q: %q", in, got)
			}
		}
		if depth != 0 {
			t.Errorf("brace depth %d != 0 for %q", depth, in)
		}
	}
}

func TestEscapeRTF(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{`a\b`, `a\\b`},
		{"{group}", `\{group\}`},
		{"line\nbreak", "line break"},
		{"café", `caf\u233?`},
		{"漢", `\u28450?`},
		{"plain ascii", "plain ascii"},
	}
	for _, tt := range tests {
		tt := tt
		if got := escapeRTF(tt.input); got != tt.want {
			t.Errorf("escapeRTF(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
