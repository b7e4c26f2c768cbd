package mdext

import (
	"bytes"

	"github.com/gubarz/snipmd/internal/snippet"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

var errorsKey = parser.NewContextKey()

// Errors returns the directive faults collected while parsing with pc,
// in document order
func Errors(pc parser.Context) []error {
	errs, _ := pc.Get(errorsKey).([]error)
	return errs
}

func recordError(pc parser.Context, err error) {
	pc.Set(errorsKey, append(Errors(pc), err))
}

type snippetParser struct {
	engine *snippet.Engine
}

// NewParser returns a block parser recognizing directive lines
func NewParser(engine *snippet.Engine) parser.BlockParser {
	return &snippetParser{engine: engine}
}

func (p *snippetParser) Trigger() []byte {
	return []byte{'@'}
}

func (p *snippetParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	pos := pc.BlockOffset()
	if pos < 0 || pc.BlockIndent() >= 4 {
		return nil, parser.NoChildren
	}

	line, segment := reader.PeekLine()
	rest := line[pos:]
	if !snippet.Match(rest) {
		return nil, parser.NoChildren
	}

	lineNum := bytes.Count(reader.Source()[:segment.Start], []byte{'\n'}) + 1
	d, err := p.engine.ParseDirective(string(rest))
	if err != nil {
		// Leave the line to the paragraph parser; the fault is reported after parsing
		recordError(pc, &snippet.DirectiveError{
			Line: lineNum,
			Text: string(bytes.TrimSpace(rest)),
			Err:  err,
		})
		return nil, parser.NoChildren
	}

	reader.Advance(segment.Len() - 1)
	return NewSnippet(d, lineNum), parser.NoChildren
}

func (p *snippetParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	return parser.Close
}

func (p *snippetParser) Close(node ast.Node, reader text.Reader, pc parser.Context) {}

func (p *snippetParser) CanInterruptParagraph() bool {
	return false
}

func (p *snippetParser) CanAcceptIndentedLine() bool {
	return false
}
