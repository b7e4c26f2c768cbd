package snippet

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Dedent removes the smallest leading whitespace run shared by all non-blank
// lines. Blank lines do not count toward the minimum and are only trimmed when
// they are at least as wide as it.
func Dedent(text string) string {
	lines := strings.Split(text, "\n")

	width := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if n := leadingWidth(line); width < 0 || n < width {
			width = n
		}
	}
	if width <= 0 {
		return text
	}

	for i, line := range lines {
		if leadingWidth(line) >= width {
			lines[i] = dropRunes(line, width)
		}
	}
	return strings.Join(lines, "\n")
}

// leadingWidth counts the whitespace runes at the start of line
func leadingWidth(line string) int {
	n := 0
	for _, r := range line {
		if !unicode.IsSpace(r) {
			break
		}
		n++
	}
	return n
}

func dropRunes(s string, n int) string {
	for ; n > 0 && s != ""; n-- {
		_, size := utf8.DecodeRuneInString(s)
		s = s[size:]
	}
	return s
}
