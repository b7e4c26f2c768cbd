package snippet

import (
	"fmt"
	"strings"
)

// NoLinesMatched replaces extracted content that came out empty
const NoLinesMatched = "No lines matched."

// Extract selects lines of content according to t. Every kept line is
// terminated by a newline. A pattern that fails to evaluate on a line
// (for example a match timeout) counts as no match there; the first such
// failure is returned alongside the result.
func Extract(content string, t Transclusion) (string, error) {
	lines := strings.Split(content, "\n")
	var out strings.Builder

	switch t := t.(type) {
	case NoTransclusion:
		return content, nil

	case LineRange:
		for idx, line := range lines {
			if t.Contains(idx + 1) {
				out.WriteString(line)
				out.WriteByte('\n')
			}
		}
		return out.String(), nil

	case TagDelimited:
		openTag, closeTag := "<"+t.Tag, t.Tag+">"
		isTag := func(line string) bool {
			return strings.HasPrefix(line, openTag) || strings.HasSuffix(line, closeTag)
		}

		matched := false
		for _, line := range lines {
			switch {
			case matched && isTag(line):
				out.WriteString(line)
				out.WriteByte('\n')
				return out.String(), nil
			case matched:
				out.WriteString(line)
				out.WriteByte('\n')
			case isTag(line):
				out.WriteString(line)
				out.WriteByte('\n')
				matched = true
			}
		}
		return out.String(), nil

	case RegexToggle:
		var firstErr error
		including := false
		for _, line := range lines {
			ok, err := t.Pattern.MatchString(line)
			if err != nil && firstErr == nil {
				firstErr = fmt.Errorf("transcludeWith %q: %w", t.Source, err)
			}
			if ok {
				including = !including
				continue
			}
			if including {
				out.WriteString(line)
				out.WriteByte('\n')
			}
		}
		return out.String(), firstErr

	default:
		return "", fmt.Errorf("unsupported transclusion %T", t)
	}
}

// Transclude extracts the requested part of content, substitutes the
// NoLinesMatched sentinel for an empty result and dedents unless dontTrim is set.
func (e *Engine) Transclude(content string, flags Flags) string {
	extracted, err := Extract(content, flags.Transclusion)
	if err != nil {
		e.log.WithError(err).Warn("transclusion pattern failed on some lines")
	}

	if extracted == "" {
		return NoLinesMatched
	}
	if flags.DontTrim {
		return extracted
	}
	return Dedent(extracted)
}
