package document

import (
	"github.com/gubarz/snipmd/internal/mdext"
	"github.com/gubarz/snipmd/internal/snippet"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Entry describes one directive found in a document
type Entry struct {
	Line      int
	Directive *snippet.Directive
	engine    *snippet.Engine
}

// Render loads the entry's content the same way Convert would
func (e Entry) Render() snippet.RenderToken {
	return e.engine.Render(e.Directive)
}

// Report is the structural view of a document: its directives in order and
// any malformed directive lines. No file content is read to build it.
type Report struct {
	Document *Document
	Entries  []Entry
	Faults   []error
}

// Missing counts entries whose target does not exist
func (r *Report) Missing() int {
	n := 0
	for _, e := range r.Entries {
		if !e.Directive.FileExists {
			n++
		}
	}
	return n
}

// Inspect parses doc and lists its directives
func (c *Converter) Inspect(doc *Document) (*Report, error) {
	engine := c.engine(doc)
	md := c.markdown(engine)

	pc := parser.NewContext()
	node := md.Parser().Parse(text.NewReader(doc.Body), parser.WithContext(pc))

	report := &Report{Document: doc, Faults: mdext.Errors(pc)}
	err := ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if s, ok := n.(*mdext.Snippet); ok && entering {
			report.Entries = append(report.Entries, Entry{
				Line:      s.Line,
				Directive: s.Directive,
				engine:    engine,
			})
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}
