package specdoc

import (
	"strings"
	"unicode/utf8"
)

// CountSteps counts lines that look like numbered list items: after trimming
// they are longer than two characters, start with an ASCII digit and contain
// ". " somewhere. Numeric sentences such as "3 items. Done" also match.
func CountSteps(content string) int {
	n := 0
	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)
		if utf8.RuneCountInString(line) <= 2 {
			continue
		}
		if line[0] < '0' || line[0] > '9' {
			continue
		}
		if strings.Contains(line, ". ") {
			n++
		}
	}
	return n
}
