package snippet

import (
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingLoader records every filesystem access
type countingLoader struct {
	Loader
	exists map[string]int
	reads  map[string]int
}

func newCountingLoader(fs afero.Fs) *countingLoader {
	return &countingLoader{
		Loader: NewFSLoader(fs),
		exists: make(map[string]int),
		reads:  make(map[string]int),
	}
}

func (c *countingLoader) Exists(path string) bool {
	c.exists[path]++
	return c.Loader.Exists(path)
}

func (c *countingLoader) ReadText(path string) (string, error) {
	c.reads[path]++
	return c.Loader.ReadText(path)
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestEngine(t *testing.T, files map[string]string) (*Engine, *countingLoader) {
	t.Helper()
	fs := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0o644))
	}
	loader := newCountingLoader(fs)
	return NewEngine("/root").WithLoader(loader).WithLogger(quietLogger()), loader
}

func TestResolvePath(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		root     string
		expected PathInfo
	}{
		{
			name:     "root sigil",
			raw:      "@/src/main.go",
			root:     "/home/me/proj",
			expected: PathInfo{Resolved: "/home/me/proj/src/main.go", Dir: "/home/me/proj/src", Base: "main", Ext: "go"},
		},
		{
			name:     "absolute path untouched",
			raw:      "/etc/app.conf.yaml",
			root:     "/ignored",
			expected: PathInfo{Resolved: "/etc/app.conf.yaml", Dir: "/etc", Base: "app.conf", Ext: "yaml"},
		},
		{
			name:     "no extension",
			raw:      "@/Makefile",
			root:     "/r",
			expected: PathInfo{Resolved: "/r/Makefile", Dir: "/r", Base: "Makefile", Ext: ""},
		},
		{
			name:     "sigil only replaced at start",
			raw:      "docs/@/a.md ",
			root:     "/r",
			expected: PathInfo{Resolved: "docs/@/a.md", Dir: "docs/@", Base: "a", Ext: "md"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ResolvePath(tt.raw, tt.root))
		})
	}
}

func TestParseOptions(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected Options
	}{
		{name: "empty", raw: "  ", expected: Options{}},
		{name: "pairs", raw: " lang=go highlight={1,3} ", expected: Options{"lang": "go", "highlight": "{1,3}"}},
		{name: "bare key", raw: "dontTrim transclude=1-2", expected: Options{"dontTrim": "", "transclude": "1-2"}},
		{name: "split at first equals", raw: "transcludeWith=a=b", expected: Options{"transcludeWith": "a=b"}},
		{name: "unknown key kept", raw: "foo=bar", expected: Options{"foo": "bar"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseOptions(tt.raw))
		})
	}
}

func TestInterpret(t *testing.T) {
	t.Run("precedence transcludeWith first", func(t *testing.T) {
		flags, err := Interpret(Options{"transclude": "1-2", "transcludeTag": "x", "transcludeWith": "//"})
		require.NoError(t, err)
		assert.True(t, flags.HasTransclusion)
		assert.Equal(t, ModeRegex, flags.Transclusion.Mode())
	})

	t.Run("tag over line range", func(t *testing.T) {
		flags, err := Interpret(Options{"transclude": "1-2", "transcludeTag": "demo"})
		require.NoError(t, err)
		assert.Equal(t, TagDelimited{Tag: "demo"}, flags.Transclusion)
	})

	t.Run("line range strips noise", func(t *testing.T) {
		flags, err := Interpret(Options{"transclude": "{3-7}"})
		require.NoError(t, err)
		assert.Equal(t, LineRange{Start: 3, End: 7}, flags.Transclusion)
	})

	t.Run("line range without end selects nothing", func(t *testing.T) {
		flags, err := Interpret(Options{"transclude": "4"})
		require.NoError(t, err)
		r := flags.Transclusion.(LineRange)
		assert.False(t, r.Contains(4))
	})

	t.Run("highlight and dontTrim", func(t *testing.T) {
		flags, err := Interpret(Options{"highlight": "{2}", "dontTrim": ""})
		require.NoError(t, err)
		assert.True(t, flags.HasHighlight)
		assert.Equal(t, "{2}", flags.Meta)
		assert.True(t, flags.DontTrim)
		assert.False(t, flags.HasTransclusion)
		assert.Equal(t, NoTransclusion{}, flags.Transclusion)
	})

	t.Run("invalid pattern is malformed", func(t *testing.T) {
		_, err := Interpret(Options{"transcludeWith": "(unclosed"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidPattern))
		assert.True(t, errors.Is(err, ErrMalformedDirective))
	})
}

func TestMatch(t *testing.T) {
	assert.True(t, Match([]byte("@[code](a.go)")))
	assert.True(t, Match([]byte("@[code lang=go](a.go)")))
	assert.False(t, Match([]byte("@[cod")))
	assert.False(t, Match([]byte("[code](a.go)")))
	assert.False(t, Match([]byte("@[Code](a.go)")))
}

func TestParseDirective(t *testing.T) {
	engine, loader := newTestEngine(t, map[string]string{"/root/src/a.js": "x\n"})

	d, err := engine.ParseDirective("@[code lang=ts highlight={1}](@/src/a.js)  \n")
	require.NoError(t, err)
	assert.Equal(t, "/root/src/a.js", d.TargetPath)
	assert.Equal(t, "js", d.Path.Ext)
	assert.Equal(t, "lang=ts highlight={1}", d.RawOptions)
	assert.Equal(t, "ts", d.Options["lang"])
	assert.True(t, d.FileExists)
	assert.Equal(t, 1, loader.exists["/root/src/a.js"])
	assert.Empty(t, loader.reads, "parsing must not read content")

	t.Run("missing separator", func(t *testing.T) {
		_, err := engine.ParseDirective("@[code lang=go (a.go)")
		assert.True(t, errors.Is(err, ErrMalformedDirective))
	})

	t.Run("marker only", func(t *testing.T) {
		_, err := engine.ParseDirective("@[code")
		assert.True(t, errors.Is(err, ErrMalformedDirective))
	})

	t.Run("bad pattern", func(t *testing.T) {
		_, err := engine.ParseDirective("@[code transcludeWith=[a](@/src/a.js)")
		assert.True(t, errors.Is(err, ErrInvalidPattern))
	})

	t.Run("no options", func(t *testing.T) {
		d, err := engine.ParseDirective("@[code](/elsewhere/b.py)")
		require.NoError(t, err)
		assert.Equal(t, "/elsewhere/b.py", d.TargetPath)
		assert.False(t, d.FileExists)
		assert.Empty(t, d.Options)
	})
}

func TestExtract(t *testing.T) {
	mustRegex := func(pattern string) Transclusion {
		flags, err := Interpret(Options{"transcludeWith": pattern})
		require.NoError(t, err)
		return flags.Transclusion
	}

	tests := []struct {
		name     string
		content  string
		mode     Transclusion
		expected string
	}{
		{
			name:     "line range",
			content:  "1\n2\n3\n4\n5\n",
			mode:     LineRange{Start: 2, End: 4},
			expected: "2\n3\n4\n",
		},
		{
			name:     "line range clipped to file",
			content:  "1\n2\n3",
			mode:     LineRange{Start: 2, End: 10},
			expected: "2\n3\n",
		},
		{
			name:     "line range reversed",
			content:  "1\n2\n3\n",
			mode:     LineRange{Start: 3, End: 1},
			expected: "",
		},
		{
			name:     "line range out of bounds",
			content:  "x\ny\n",
			mode:     LineRange{Start: 5, End: 9},
			expected: "",
		},
		{
			name:     "tag pair inclusive",
			content:  "a\n<demo>\nb\n</demo>\nc\n",
			mode:     TagDelimited{Tag: "demo"},
			expected: "<demo>\nb\n</demo>\n",
		},
		{
			name:     "tag without closing runs to end",
			content:  "a\n<demo>\nb\nc",
			mode:     TagDelimited{Tag: "demo"},
			expected: "<demo>\nb\nc\n",
		},
		{
			name:     "tag matched by closing form",
			content:  "x\n  // demo>\ny\n  // demo>\nz\n",
			mode:     TagDelimited{Tag: "demo"},
			expected: "  // demo>\ny\n  // demo>\n",
		},
		{
			name:     "tag never found",
			content:  "a\nb\n",
			mode:     TagDelimited{Tag: "demo"},
			expected: "",
		},
		{
			name:     "regex toggle",
			content:  "START\nkeep1\nkeep2\nEND\nignored\n",
			mode:     mustRegex("START|END"),
			expected: "keep1\nkeep2\n",
		},
		{
			name:     "regex toggle odd matches keep tail",
			content:  "a\n// #region\nb\nc",
			mode:     mustRegex("#region"),
			expected: "b\nc\n",
		},
		{
			name:     "regex toggle reopens",
			content:  "--\na\n--\nb\n--\nc\n",
			mode:     mustRegex("^--$"),
			expected: "a\nc\n\n",
		},
		{
			name:     "regex never matches",
			content:  "a\nb\n",
			mode:     mustRegex("zzz"),
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extract(tt.content, tt.mode)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestExtractRegexNeverEmitsDelimiters(t *testing.T) {
	flags, err := Interpret(Options{"transcludeWith": "mark"})
	require.NoError(t, err)

	content := "mark\none\nmark two\nthree\nmark\nfour mark\nfive\n"
	got, err := Extract(content, flags.Transclusion)
	require.NoError(t, err)
	assert.NotContains(t, got, "mark")
	assert.Equal(t, "one\n", got)
}

func TestDedent(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{name: "common indent", text: "  foo\n  bar\n", expected: "foo\nbar\n"},
		{name: "mixed depth", text: "    a\n      b\n    c", expected: "a\n  b\nc"},
		{name: "blank lines ignored", text: "\t\tx\n\n\t\ty\n", expected: "x\n\ny\n"},
		{name: "short blank line untouched", text: "    a\n  \n    b", expected: "a\n  \nb"},
		{name: "wide blank line trimmed", text: "  a\n      \n  b", expected: "a\n    \nb"},
		{name: "no indent", text: "a\n  b\n", expected: "a\n  b\n"},
		{name: "only blank", text: "   \n \n", expected: "   \n \n"},
		{name: "empty", text: "", expected: ""},
		{name: "unicode whitespace", text: "\u3000\u3000a\n\u3000\u3000b", expected: "a\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Dedent(tt.text)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, got, Dedent(got), "dedent must be idempotent")
		})
	}
}

func TestEngineRender(t *testing.T) {
	files := map[string]string{
		"/root/a.txt":     "1\n2\n3\n4\n5\n",
		"/root/b.txt":     "  foo\n  bar\n",
		"/root/c.txt":     "x\ny\n",
		"/root/e.txt":     "START\nkeep1\nkeep2\nEND\nignored\n",
		"/root/ind.go":    "func f() {\n\tif x {\n\t\treturn\n\t}\n}\n",
		"/root/no_ext":    "plain\n",
		"/root/dir/x.txt": "in dir\n",
	}

	tests := []struct {
		name     string
		line     string
		expected RenderToken
	}{
		{
			name:     "scenario A line range",
			line:     "@[code transclude=2-4](@/a.txt)",
			expected: RenderToken{LanguageHint: "txt", Content: "2\n3\n4\n"},
		},
		{
			name:     "scenario B full file kept verbatim",
			line:     "@[code](@/b.txt)",
			expected: RenderToken{LanguageHint: "txt", Content: "  foo\n  bar\n"},
		},
		{
			name:     "transcluded range is dedented",
			line:     "@[code transclude=1-2](@/b.txt)",
			expected: RenderToken{LanguageHint: "txt", Content: "foo\nbar\n"},
		},
		{
			name:     "dontTrim keeps indentation",
			line:     "@[code transclude=1-2 dontTrim](@/b.txt)",
			expected: RenderToken{LanguageHint: "txt", Content: "  foo\n  bar\n"},
		},
		{
			name:     "scenario C out of range",
			line:     "@[code transclude=5-9](@/c.txt)",
			expected: RenderToken{LanguageHint: "txt", Content: NoLinesMatched},
		},
		{
			name:     "scenario D missing file ignores transclusion",
			line:     "@[code transclude=1-2 transcludeTag=x](@/missing.go)",
			expected: RenderToken{LanguageHint: "go", Content: "Not Found: /root/missing.go"},
		},
		{
			name:     "scenario E regex toggle",
			line:     "@[code transcludeWith=START|END](@/e.txt)",
			expected: RenderToken{LanguageHint: "txt", Content: "keep1\nkeep2\n"},
		},
		{
			name:     "lang and highlight",
			line:     "@[code lang=golang highlight={2,3} transclude=2-4](@/ind.go)",
			expected: RenderToken{LanguageHint: "golang", HighlightMeta: "{2,3}", Content: "if x {\n\treturn\n}\n"},
		},
		{
			name:     "directory is not found",
			line:     "@[code](@/dir)",
			expected: RenderToken{LanguageHint: "", Content: "Not Found: /root/dir"},
		},
		{
			name:     "no extension",
			line:     "@[code](@/no_ext)",
			expected: RenderToken{LanguageHint: "", Content: "plain\n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, loader := newTestEngine(t, files)
			d, err := engine.ParseDirective(tt.line)
			require.NoError(t, err)

			token := engine.Render(d)
			assert.Equal(t, tt.expected, token)

			assert.Equal(t, 1, loader.exists[d.TargetPath], "existence probed once")
			if d.FileExists {
				assert.Equal(t, 1, loader.reads[d.TargetPath], "content read once")
			} else {
				assert.Zero(t, loader.reads[d.TargetPath], "missing file never read")
			}
		})
	}
}

func TestRenderTokenInfo(t *testing.T) {
	token := RenderToken{LanguageHint: "js", HighlightMeta: "{1-3}"}
	assert.Equal(t, "js{1-3}", token.Info())
	assert.Equal(t, "py", RenderToken{LanguageHint: "py"}.Info())
}

type failingLoader struct{}

func (failingLoader) Exists(string) bool { return true }
func (failingLoader) ReadText(string) (string, error) {
	return "", errors.New("permission denied")
}

func TestRenderReadFailureIsSoft(t *testing.T) {
	engine := NewEngine("/r").WithLoader(failingLoader{}).WithLogger(quietLogger())
	d, err := engine.ParseDirective("@[code transclude=1-3](@/x.go)")
	require.NoError(t, err)

	token := engine.Render(d)
	assert.Equal(t, "Not Found: /r/x.go", token.Content)
}
