package mdext

import (
	"strconv"

	"github.com/gubarz/snipmd/internal/snippet"
	"github.com/yuin/goldmark/ast"
)

// KindSnippet is the node kind of a @[code ...](...) block
var KindSnippet = ast.NewNodeKind("Snippet")

// Snippet is a placeholder block carrying a parsed directive. Its content is
// produced only when the block is rendered.
type Snippet struct {
	ast.BaseBlock
	Directive *snippet.Directive
	Line      int // 1-indexed source line of the directive
}

// NewSnippet creates a Snippet node for d
func NewSnippet(d *snippet.Directive, line int) *Snippet {
	return &Snippet{Directive: d, Line: line}
}

// Kind implements ast.Node
func (n *Snippet) Kind() ast.NodeKind {
	return KindSnippet
}

// IsRaw implements ast.Node
func (n *Snippet) IsRaw() bool {
	return true
}

// Dump implements ast.Node
func (n *Snippet) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Path":   n.Directive.TargetPath,
		"Exists": strconv.FormatBool(n.Directive.FileExists),
		"Mode":   string(n.Directive.Flags.Transclusion.Mode()),
		"Line":   strconv.Itoa(n.Line),
	}, nil)
}
