package snippet

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

// Recognized option keys
const (
	OptLang           = "lang"
	OptHighlight      = "highlight"
	OptTransclude     = "transclude"
	OptTranscludeWith = "transcludeWith"
	OptTranscludeTag  = "transcludeTag"
	OptDontTrim       = "dontTrim"
)

// patternTimeout bounds a single transcludeWith match
const patternTimeout = 2 * time.Second

var nonRangeChars = regexp.MustCompile(`[^\d-]`)

// Options maps option keys to their raw values. A bare key maps to "".
type Options map[string]string

// Has reports whether key was given, with or without a value
func (o Options) Has(key string) bool {
	_, ok := o[key]
	return ok
}

// ParseOptions splits a raw option string into key/value pairs
func ParseOptions(raw string) Options {
	opts := make(Options)
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return opts
	}

	for _, pair := range strings.Split(raw, " ") {
		key, value, _ := strings.Cut(pair, "=")
		opts[key] = value
	}
	return opts
}

// Mode names a transclusion strategy
type Mode string

const (
	ModeNone  Mode = "none"
	ModeLines Mode = "lines"
	ModeTag   Mode = "tag"
	ModeRegex Mode = "regex"
)

// Transclusion is the active extraction strategy of a directive.
// Exactly one of NoTransclusion, LineRange, TagDelimited or RegexToggle.
type Transclusion interface {
	Mode() Mode
	isTransclusion()
}

// NoTransclusion includes the whole file
type NoTransclusion struct{}

// LineRange keeps lines Start..End, 1-indexed and inclusive
type LineRange struct {
	Start int
	End   int
}

// TagDelimited keeps lines from the first <Tag or Tag> marker through the next one
type TagDelimited struct {
	Tag string
}

// RegexToggle keeps lines between pattern matches, excluding the matching lines
type RegexToggle struct {
	Source  string
	Pattern *regexp2.Regexp
}

func (NoTransclusion) Mode() Mode { return ModeNone }
func (LineRange) Mode() Mode      { return ModeLines }
func (TagDelimited) Mode() Mode   { return ModeTag }
func (RegexToggle) Mode() Mode    { return ModeRegex }

func (NoTransclusion) isTransclusion() {}
func (LineRange) isTransclusion()      {}
func (TagDelimited) isTransclusion()   {}
func (RegexToggle) isTransclusion()    {}

// Contains reports whether the 1-indexed line i is inside the range
func (r LineRange) Contains(i int) bool {
	return r.Start <= i && i <= r.End
}

// Flags are the semantic settings derived from a directive's options
type Flags struct {
	HasHighlight    bool
	HasTransclusion bool
	Meta            string // Raw highlight value, appended to the info string
	DontTrim        bool
	Transclusion    Transclusion
}

// Interpret derives Flags from options. Precedence among transclusion options is
// transcludeWith, then transcludeTag, then transclude.
func Interpret(opts Options) (Flags, error) {
	flags := Flags{
		HasHighlight: opts.Has(OptHighlight),
		DontTrim:     opts.Has(OptDontTrim),
		Transclusion: NoTransclusion{},
	}
	if flags.HasHighlight {
		flags.Meta = opts[OptHighlight]
	}

	switch {
	case opts.Has(OptTranscludeWith):
		source := opts[OptTranscludeWith]
		re, err := regexp2.Compile(source, regexp2.ECMAScript)
		if err != nil {
			return Flags{}, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, source, err)
		}
		re.MatchTimeout = patternTimeout
		flags.Transclusion = RegexToggle{Source: source, Pattern: re}
	case opts.Has(OptTranscludeTag):
		flags.Transclusion = TagDelimited{Tag: opts[OptTranscludeTag]}
	case opts.Has(OptTransclude):
		flags.Transclusion = parseLineRange(opts[OptTransclude])
	}

	flags.HasTransclusion = flags.Transclusion.Mode() != ModeNone
	return flags, nil
}

// parseLineRange reads "start-end" after dropping everything but digits and dashes.
// An empty bound counts as 0 and a missing end selects nothing.
func parseLineRange(value string) LineRange {
	parts := strings.Split(nonRangeChars.ReplaceAllString(value, ""), "-")
	if len(parts) < 2 {
		return LineRange{Start: 1, End: 0}
	}
	return LineRange{Start: rangeBound(parts[0]), End: rangeBound(parts[1])}
}

func rangeBound(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		// Only digits remain, so the only failure is overflow
		return math.MaxInt
	}
	return n
}
