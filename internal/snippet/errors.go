package snippet

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedDirective is returned when a directive line cannot be resolved
	ErrMalformedDirective = errors.New("malformed directive")

	// ErrInvalidPattern is returned when a transcludeWith pattern does not compile.
	// It is a malformed-directive fault as well.
	ErrInvalidPattern = fmt.Errorf("%w: invalid transcludeWith pattern", ErrMalformedDirective)
)

// DirectiveError ties a directive fault to its source line
type DirectiveError struct {
	Line int    // 1-indexed line in the document, 0 if unknown
	Text string // Raw directive line
	Err  error
}

func (e *DirectiveError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %q: %v", e.Line, e.Text, e.Err)
	}
	return fmt.Sprintf("%q: %v", e.Text, e.Err)
}

func (e *DirectiveError) Unwrap() error {
	return e.Err
}
