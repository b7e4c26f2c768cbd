package mdext

import (
	"github.com/gubarz/snipmd/internal/snippet"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// Renderer loads directive content at render time and hands it to a CodeBlockWriter
type Renderer struct {
	engine *snippet.Engine
	writer CodeBlockWriter
}

// NewRenderer creates a node renderer for Snippet blocks
func NewRenderer(engine *snippet.Engine, writer CodeBlockWriter) renderer.NodeRenderer {
	return &Renderer{engine: engine, writer: writer}
}

// RegisterFuncs implements renderer.NodeRenderer
func (r *Renderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindSnippet, r.renderSnippet)
}

func (r *Renderer) renderSnippet(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	n := node.(*Snippet)
	// The token is dropped once written; the AST keeps only the directive
	token := r.engine.Render(n.Directive)
	if err := r.writer.WriteCodeBlock(w, token); err != nil {
		return ast.WalkStop, err
	}
	return ast.WalkContinue, nil
}
