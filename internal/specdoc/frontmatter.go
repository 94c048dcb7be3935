// Package specdoc derives metadata from submitted spec documents.
// Nothing here returns an error: malformed input degrades to zero values.
package specdoc

import (
	"strings"
	"unicode"
)

const fenceMarker = "---"

// Metadata holds the fields read from a document's leading metadata block.
type Metadata struct {
	Title       string
	Description string
}

// ParseFrontmatter extracts title and description from the optional
// "---" delimited block at the start of content.
//
// The block is read line by line rather than as YAML: a repeated key must not
// fail the parse, "title" keeps its first value while "description" keeps its
// last, and quoted values are unwrapped once without unescaping.
func ParseFrontmatter(content string) Metadata {
	block, ok := frontmatterBlock(content)
	if !ok {
		return Metadata{}
	}

	var (
		title, name         string
		titleSeen, nameSeen bool
		description         string
	)
	for _, raw := range strings.Split(block, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if v, ok := fieldValue(line, "title"); ok {
			if !titleSeen {
				title, titleSeen = v, true
			}
			continue
		}
		if v, ok := fieldValue(line, "name"); ok {
			if !nameSeen {
				name, nameSeen = v, true
			}
			continue
		}
		if v, ok := fieldValue(line, "description"); ok {
			description = v
		}
	}

	if title == "" {
		title = name
	}
	return Metadata{Title: title, Description: description}
}

// frontmatterBlock returns the text between the opening and closing markers.
func frontmatterBlock(content string) (string, bool) {
	s := strings.TrimLeftFunc(content, isLeadingSpace)

	first, rest, found := strings.Cut(s, "\n")
	if strings.TrimSuffix(first, "\r") != fenceMarker {
		return "", false
	}
	if !found {
		return "", false
	}

	end := strings.Index(rest, "\n"+fenceMarker)
	if end < 0 {
		return "", false
	}
	return rest[:end], true
}

// isLeadingSpace also treats a byte-order mark as skippable.
func isLeadingSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

// fieldValue matches a "key:" prefix and returns the trimmed, unquoted value.
func fieldValue(line, key string) (string, bool) {
	v, ok := strings.CutPrefix(line, key+":")
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' {
		v = v[1 : len(v)-1]
	}
	return v, true
}
