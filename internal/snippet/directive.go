package snippet

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// Marker introduces a directive at the start of a line
const Marker = "@[code"

// Directive is the parse-time record of a single @[code ...](...) line.
// It never holds file content.
type Directive struct {
	TargetPath string   // Resolved path of the referenced file
	Path       PathInfo // Components of TargetPath
	RawOptions string   // Unparsed option text, kept for diagnostics
	Options    Options  // Parsed options, unknown keys included
	Flags      Flags    // Derived settings, pattern already compiled
	FileExists bool     // Probed once when the directive was parsed
}

// Match reports whether line opens with the directive marker
func Match(line []byte) bool {
	return len(line) >= len(Marker) && string(line[:len(Marker)]) == Marker
}

// Engine resolves directives against a fixed root and renders them on demand
type Engine struct {
	root   string
	loader Loader
	log    logrus.FieldLogger
}

// NewEngine creates an engine resolving @-paths against root
func NewEngine(root string) *Engine {
	return &Engine{
		root:   root,
		loader: NewOSLoader(),
		log:    logrus.StandardLogger(),
	}
}

// WithLoader sets a custom content loader (useful for testing)
func (e *Engine) WithLoader(l Loader) *Engine {
	e.loader = l
	return e
}

// WithLogger sets the logger used for render diagnostics
func (e *Engine) WithLogger(log logrus.FieldLogger) *Engine {
	e.log = log
	return e
}

// Root returns the configured root directory
func (e *Engine) Root() string {
	return e.root
}

// ParseDirective builds a Directive from a line starting with Marker.
// The line may carry trailing whitespace or a newline.
func (e *Engine) ParseDirective(line string) (*Directive, error) {
	rawOpts, rawPath, err := splitDirective(line)
	if err != nil {
		return nil, err
	}

	opts := ParseOptions(rawOpts)
	flags, err := Interpret(opts)
	if err != nil {
		return nil, err
	}

	info := ResolvePath(rawPath, e.root)
	d := &Directive{
		TargetPath: info.Resolved,
		Path:       info,
		RawOptions: rawOpts,
		Options:    opts,
		Flags:      flags,
		FileExists: e.loader.Exists(info.Resolved),
	}

	e.log.WithFields(logrus.Fields{
		"path":   d.TargetPath,
		"exists": d.FileExists,
		"mode":   flags.Transclusion.Mode(),
	}).Debug("directive recognized")

	return d, nil
}

// splitDirective returns the option text and the raw path of a directive line
func splitDirective(line string) (string, string, error) {
	line = strings.TrimRight(line, " \t\r\n")
	if !strings.HasPrefix(line, Marker) || len(line) <= len(Marker) {
		return "", "", fmt.Errorf("%w: missing %q marker or body", ErrMalformedDirective, Marker)
	}

	// Drop the marker and the closing delimiter
	body := strings.TrimSpace(line[len(Marker) : len(line)-1])
	opts, path, ok := strings.Cut(body, "](")
	if !ok {
		return "", "", fmt.Errorf("%w: missing \"](\" between options and path", ErrMalformedDirective)
	}
	return opts, path, nil
}
