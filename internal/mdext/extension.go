// Package mdext adds the @[code ...](path) directive to goldmark.
//
// Directives are recognized during parsing and kept as lightweight Snippet
// nodes; the referenced file is read only when the node is rendered.
package mdext

import (
	"github.com/gubarz/snipmd/internal/snippet"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// Extension is a goldmark.Extender registering the directive parser and renderer
type Extension struct {
	engine *snippet.Engine
	writer CodeBlockWriter
}

// New creates the extension around engine, writing plain code blocks
func New(engine *snippet.Engine) *Extension {
	return &Extension{
		engine: engine,
		writer: PlainWriter{},
	}
}

// WithWriter sets the code block writer (e.g. ChromaWriter)
func (e *Extension) WithWriter(w CodeBlockWriter) *Extension {
	e.writer = w
	return e
}

// Extend implements goldmark.Extender
func (e *Extension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithBlockParsers(
		util.Prioritized(NewParser(e.engine), 100),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(NewRenderer(e.engine, e.writer), 100),
	))
}
