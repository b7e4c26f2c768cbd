package mdext

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gubarz/snipmd/internal/snippet"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// CodeBlockWriter emits the final code block for a rendered directive
type CodeBlockWriter interface {
	WriteCodeBlock(w util.BufWriter, token snippet.RenderToken) error
}

// PlainWriter writes the same markup goldmark uses for fenced code blocks
type PlainWriter struct{}

// WriteCodeBlock implements CodeBlockWriter
func (PlainWriter) WriteCodeBlock(w util.BufWriter, token snippet.RenderToken) error {
	_, _ = w.WriteString("<pre><code")
	if info := token.Info(); info != "" {
		_, _ = w.WriteString(` class="language-`)
		_, _ = w.Write(util.EscapeHTML([]byte(info)))
		_, _ = w.WriteString(`"`)
	}
	_ = w.WriteByte('>')
	html.DefaultWriter.RawWrite(w, []byte(token.Content))
	_, _ = w.WriteString("</code></pre>\n")
	return nil
}

// ChromaWriter highlights code with chroma. Lines named in the highlight
// option ({1,3-5}) are marked.
type ChromaWriter struct {
	Style       string
	LineNumbers bool
}

// WriteCodeBlock implements CodeBlockWriter
func (c ChromaWriter) WriteCodeBlock(w util.BufWriter, token snippet.RenderToken) error {
	lexer := lexers.Get(token.LanguageHint)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	opts := []chromahtml.Option{chromahtml.WithLineNumbers(c.LineNumbers)}
	if ranges := HighlightRanges(token.HighlightMeta); len(ranges) > 0 {
		opts = append(opts, chromahtml.HighlightLines(ranges))
	}

	it, err := lexer.Tokenise(nil, token.Content)
	if err != nil {
		return fmt.Errorf("tokenise %q: %w", token.LanguageHint, err)
	}
	return chromahtml.New(opts...).Format(w, styles.Get(c.Style), it)
}

// HighlightRanges parses a highlight value such as "{1,3-5}" into inclusive
// line ranges. Pieces that are not numbers or ranges are skipped.
func HighlightRanges(meta string) [][2]int {
	meta = strings.Trim(strings.TrimSpace(meta), "{}")
	if meta == "" {
		return nil
	}

	var ranges [][2]int
	for _, part := range strings.Split(meta, ",") {
		from, to, isRange := strings.Cut(strings.TrimSpace(part), "-")
		start, err := strconv.Atoi(from)
		if err != nil {
			continue
		}
		end := start
		if isRange {
			if end, err = strconv.Atoi(to); err != nil || end < start {
				continue
			}
		}
		ranges = append(ranges, [2]int{start, end})
	}
	return ranges
}
