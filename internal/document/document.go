// Package document runs Markdown files through goldmark with the snippet
// directive enabled.
package document

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"

	"github.com/adrg/frontmatter"
	"github.com/gubarz/snipmd/internal/mdext"
	"github.com/gubarz/snipmd/internal/snippet"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// Options configures a Converter
type Options struct {
	Root        string             // Directory substituted for a leading @
	Loader      snippet.Loader     // Defaults to the host filesystem
	Logger      logrus.FieldLogger // Defaults to the logrus standard logger
	Highlight   bool               // Highlight code with chroma
	Style       string             // Chroma style name
	LineNumbers bool               // Chroma line numbers
	Unsafe      bool               // Pass raw HTML through
	FrontMatter bool               // Strip and interpret leading front matter
}

// Document is a Markdown source ready for conversion
type Document struct {
	Path  string
	Title string // From front matter, may be empty
	Root  string // Effective root for @-paths in this document
	Body  []byte // Markdown without front matter
}

// Converter renders documents. It holds no per-document state and can be
// shared between goroutines.
type Converter struct {
	opts Options
}

// NewConverter creates a converter
func NewConverter(opts Options) *Converter {
	if opts.Loader == nil {
		opts.Loader = snippet.NewOSLoader()
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	return &Converter{opts: opts}
}

type frontMatterEnvelope struct {
	Title       string `yaml:"title" toml:"title" json:"title"`
	SnippetRoot string `yaml:"snippet_root" toml:"snippet_root" json:"snippet_root"`
}

// Load prepares a document. With front matter enabled, a snippet_root key
// overrides the configured root; a relative value is taken from the
// document's directory.
func (c *Converter) Load(path string, source []byte) (*Document, error) {
	doc := &Document{Path: path, Root: c.opts.Root, Body: source}
	if !c.opts.FrontMatter {
		return doc, nil
	}

	var meta frontMatterEnvelope
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return nil, fmt.Errorf("parse frontmatter %s: %w", path, err)
	}

	doc.Body = body
	doc.Title = meta.Title
	if meta.SnippetRoot != "" {
		doc.Root = meta.SnippetRoot
		if !filepath.IsAbs(doc.Root) {
			doc.Root = filepath.Join(filepath.Dir(path), doc.Root)
		}
	}
	return doc, nil
}

func (c *Converter) engine(doc *Document) *snippet.Engine {
	return snippet.NewEngine(doc.Root).
		WithLoader(c.opts.Loader).
		WithLogger(c.opts.Logger.WithField("document", doc.Path))
}

func (c *Converter) markdown(engine *snippet.Engine) goldmark.Markdown {
	ext := mdext.New(engine)
	if c.opts.Highlight {
		ext = ext.WithWriter(mdext.ChromaWriter{Style: c.opts.Style, LineNumbers: c.opts.LineNumbers})
	}

	rendererOptions := []renderer.Option{}
	if c.opts.Unsafe {
		rendererOptions = append(rendererOptions, html.WithUnsafe())
	}

	return goldmark.New(
		goldmark.WithExtensions(extension.GFM, ext),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(rendererOptions...),
	)
}

// parse runs the structural phase and returns the AST, or the collected
// directive faults
func (c *Converter) parse(md goldmark.Markdown, doc *Document) (ast.Node, error) {
	pc := parser.NewContext()
	node := md.Parser().Parse(text.NewReader(doc.Body), parser.WithContext(pc))

	var result *multierror.Error
	for _, err := range mdext.Errors(pc) {
		result = multierror.Append(result, err)
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, fmt.Errorf("%s: %w", doc.Path, err)
	}
	return node, nil
}

// Convert renders doc as HTML into w. If any directive is malformed nothing
// is written and the faults are returned together.
func (c *Converter) Convert(doc *Document, w io.Writer) error {
	md := c.markdown(c.engine(doc))

	node, err := c.parse(md, doc)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := md.Renderer().Render(&buf, doc.Body, node); err != nil {
		return fmt.Errorf("render %s: %w", doc.Path, err)
	}
	_, err = w.Write(buf.Bytes())
	return err
}
