package main

import (
	"bytes"
	"fmt"
	"html"
	"path/filepath"
	"strings"

	"github.com/gubarz/snipmd/internal/config"
	"github.com/gubarz/snipmd/internal/document"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var renderCmd = &cobra.Command{
	Use:   "render [files...]",
	Short: "Render Markdown documents to HTML",
	Long: `Renders each document to HTML, resolving @[code](path) directives.

Without --out, output goes to stdout in argument order. Use "-" to read a
document from standard input. A malformed directive fails its document and
nothing is written for it.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringP("out", "o", "", "Write <name>.html files into this directory")
	renderCmd.Flags().Bool("standalone", false, "Wrap output in a complete HTML page")
	renderCmd.Flags().Bool("unsafe", false, "Pass raw HTML in documents through")
	renderCmd.Flags().Bool("line-numbers", false, "Show line numbers in highlighted code")
}

func runRender(cmd *cobra.Command, args []string) error {
	if u, _ := cmd.Flags().GetBool("unsafe"); u {
		config.SetUnsafe(true)
	}
	if n, _ := cmd.Flags().GetBool("line-numbers"); n {
		config.SetLineNumbers(true)
	}
	outDir, _ := cmd.Flags().GetString("out")
	standalone, _ := cmd.Flags().GetBool("standalone")

	conv := newConverter()
	results := make([][]byte, len(args))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(config.GetJobs())
	for i, path := range args {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out, err := renderDocument(conv, path, standalone)
			if err != nil {
				return err
			}
			results[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if outDir == "" {
		for _, out := range results {
			if _, err := cmd.OutOrStdout().Write(out); err != nil {
				return err
			}
		}
		return nil
	}

	if err := osFs.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", outDir, err)
	}
	for i, path := range args {
		target := filepath.Join(outDir, outputName(path))
		if err := afero.WriteFile(osFs, target, results[i], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", target, err)
		}
	}
	return nil
}

func renderDocument(conv *document.Converter, path string, standalone bool) ([]byte, error) {
	doc, err := loadDocument(conv, path)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := conv.Convert(doc, &buf); err != nil {
		return nil, err
	}
	if !standalone {
		return buf.Bytes(), nil
	}
	return wrapPage(doc.Title, buf.Bytes()), nil
}

// outputName maps doc.md to doc.html; standard input becomes stdin.html
func outputName(path string) string {
	if path == stdinPath {
		return "stdin.html"
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".html"
}

func wrapPage(title string, body []byte) []byte {
	var b bytes.Buffer
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	if title != "" {
		fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(title))
	}
	b.WriteString("</head>\n<body>\n")
	b.Write(body)
	b.WriteString("</body>\n</html>\n")
	return b.Bytes()
}
