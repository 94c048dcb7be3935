package specdoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFrontmatter(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Metadata
	}{
		{
			name:    "quoted title",
			content: "---\ntitle: \"Hello\"\n---\nbody",
			want:    Metadata{Title: "Hello"},
		},
		{
			name:    "name used as fallback",
			content: "---\nname: X\n---\nbody",
			want:    Metadata{Title: "X"},
		},
		{
			name:    "title wins over name",
			content: "---\nname: Fallback\ntitle: Real\n---\n",
			want:    Metadata{Title: "Real"},
		},
		{
			name:    "no leading marker",
			content: "# Heading\n\ntitle: nope\n",
			want:    Metadata{},
		},
		{
			name:    "leading whitespace is skipped",
			content: "\n\n  ---\ntitle: Indented\n---\n",
			want:    Metadata{Title: "Indented"},
		},
		{
			name:    "byte-order mark before marker",
			content: "\uFEFF---\ntitle: X\n---\n",
			want:    Metadata{Title: "X"},
		},
		{
			name:    "byte-order mark then whitespace",
			content: "\uFEFF \n---\ndescription: d\n---\n",
			want:    Metadata{Description: "d"},
		},
		{
			name:    "unclosed block degrades silently",
			content: "---\ntitle: Orphan\nbody without a closing marker",
			want:    Metadata{},
		},
		{
			name:    "marker must be exactly three hyphens",
			content: "----\ntitle: Long\n---\n",
			want:    Metadata{},
		},
		{
			name:    "last description wins",
			content: "---\ndescription: first\ntitle: T\ndescription: second\n---\n",
			want:    Metadata{Title: "T", Description: "second"},
		},
		{
			name:    "first title wins",
			content: "---\ntitle: one\ntitle: two\n---\n",
			want:    Metadata{Title: "one"},
		},
		{
			name:    "empty first title falls back to name",
			content: "---\ntitle:\nname: Named\ntitle: later\n---\n",
			want:    Metadata{Title: "Named"},
		},
		{
			name:    "quotes stripped exactly once",
			content: "---\ntitle: \"\"Nested\"\"\ndescription: \"\\\"esc\\\"\"\n---\n",
			want:    Metadata{Title: "\"Nested\"", Description: "\\\"esc\\\""},
		},
		{
			name:    "single quote character is kept",
			content: "---\ntitle: \"\n---\n",
			want:    Metadata{Title: "\""},
		},
		{
			name:    "crlf line endings",
			content: "---\r\ntitle: Windows\r\ndescription: Lines\r\n---\r\nbody",
			want:    Metadata{Title: "Windows", Description: "Lines"},
		},
		{
			name:    "unknown keys and blank lines ignored",
			content: "---\n\ntags: [a, b]\n  title:   Spaced  \n\n---\n",
			want:    Metadata{Title: "Spaced"},
		},
		{
			name:    "key prefix must include colon",
			content: "---\ntitles: no\nnamespace: no\n---\n",
			want:    Metadata{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseFrontmatter(tt.content))
		})
	}
}

func TestCountSteps(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{name: "numbered list", content: "1. alpha\n2. beta\nnot a step\n3. gamma", want: 3},
		{name: "multi digit", content: "10. Step\n11. Step", want: 2},
		{name: "indented items", content: "   4. indented\n\t5. tabbed", want: 2},
		{name: "numeric sentence matches", content: "2024 was a year. Then more", want: 1},
		{name: "no period space", content: "1.alpha\n2)beta", want: 0},
		{name: "too short", content: "1.\n2. ", want: 0},
		{name: "bullet list", content: "- 1. nested\n* 2. star", want: 0},
		{name: "empty", content: "", want: 0},
		{name: "crlf", content: "1. one\r\n2. two\r\n", want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountSteps(tt.content))
		})
	}
}
