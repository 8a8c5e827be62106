package conv

import (
	"strings"
	"testing"
)

func TestMarkdownToTelegramHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains []string
		excludes []string
	}{
		{
			name:     "bold_and_italic",
			input:    "**hello** and *world*",
			contains: []string{"<strong>hello</strong>", "<em>world</em>"},
		},
		{
			name:     "link_kept_with_href",
			input:    "[book a slot](https://dikidi.ru/1723277)",
			contains: []string{`href="https://dikidi.ru/1723277"`, "book a slot"},
		},
		{
			name:     "code_block",
			input:    "```\nsample\n```",
			contains: []string{"<pre>", "sample"},
		},
		{
			name:     "disallowed_tags_stripped",
			input:    "# Heading\n\n| a | b |\n|---|---|\n| 1 | 2 |",
			contains: []string{"Heading"},
			excludes: []string{"<h1>", "<table>", "<img"},
		},
		{
			name:     "raw_script_removed",
			input:    `hello <script>alert(1)</script>`,
			contains: []string{"hello"},
			excludes: []string{"<script>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MarkdownToTelegramHTML([]byte(tt.input))
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("output %q missing %q", got, want)
				}
			}
			for _, bad := range tt.excludes {
				if strings.Contains(got, bad) {
					t.Errorf("output %q contains forbidden %q", got, bad)
				}
			}
		})
	}
}
