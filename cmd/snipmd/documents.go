package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gubarz/snipmd/internal/config"
	"github.com/gubarz/snipmd/internal/document"
	"github.com/gubarz/snipmd/internal/snippet"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// stdinPath names standard input on the command line
const stdinPath = "-"

var osFs = afero.NewOsFs()

// newConverter builds a converter from the current configuration
func newConverter() *document.Converter {
	return document.NewConverter(document.Options{
		Root:        config.GetRoot(),
		Loader:      snippet.NewFSLoader(osFs),
		Logger:      logrus.StandardLogger(),
		Highlight:   config.GetHighlight(),
		Style:       config.GetStyle(),
		LineNumbers: config.GetLineNumbers(),
		Unsafe:      config.GetUnsafe(),
		FrontMatter: config.GetFrontMatter(),
	})
}

// loadDocument reads a Markdown file, or standard input for "-"
func loadDocument(conv *document.Converter, path string) (*document.Document, error) {
	var (
		source []byte
		err    error
	)
	if path == stdinPath {
		source, err = io.ReadAll(os.Stdin)
	} else {
		if abs, absErr := filepath.Abs(path); absErr == nil {
			path = abs
		}
		source, err = afero.ReadFile(osFs, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return conv.Load(path, source)
}
