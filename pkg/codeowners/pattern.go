package codeowners

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrEmptyPattern is returned by NewPattern for a zero-length pattern.
var ErrEmptyPattern = errors.New("pattern is empty")

// CompileError is returned when the regular expression synthesized for a
// pattern fails to compile in the regexp engine.
type CompileError struct {
	Pattern string
	Err     error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("pattern compilation failed: %s, %s", e.Pattern, e.Err)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

// Pattern is a compiled CODEOWNERS path selector. It decides whether a
// repository-relative, slash-separated path (no leading slash) is selected
// by a gitignore-flavored glob. Immutable once built.
type Pattern struct {
	re *regexp.Regexp
}

// NewPattern compiles a gitignore-flavored glob into a Pattern.
func NewPattern(pattern string) (*Pattern, error) {
	expr, err := translate(pattern)
	if err != nil {
		return nil, err
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}
	return &Pattern{re: re}, nil
}

// Matches reports whether the pattern selects path, either as the named
// file itself or as anything nested under a directory it selects.
func (p *Pattern) Matches(path string) bool {
	return p.re.MatchString(path)
}

// Scanner states for translate. The terminal state decides the trailing
// regex fragment, so states that emit the same fragments mid-pattern
// (asterisk vs head-asterisk) still need distinct tags.
type translateState int

const (
	// before any character has been consumed
	stateHead translateState = iota
	// one or more asterisks, starting at the pattern head
	stateHeadAsterisk
	// accumulating a run of literal characters
	stateLiteral
	// one asterisk, mid-pattern
	stateAsterisk
	// two or more consecutive asterisks, mid-pattern
	stateDoubleAsterisk
	// the slash closing a double-asterisk group was just consumed
	stateDoubleAsteriskSlash
	// a plain slash was just consumed
	stateSlash
)

// translate synthesizes the regular expression for a gitignore-flavored
// glob in a single left-to-right scan. Literal runs are buffered and
// regex-escaped when a structural character flushes them.
func translate(pattern string) (string, error) {
	var re strings.Builder
	var lit strings.Builder

	flush := func() {
		re.WriteString(regexp.QuoteMeta(lit.String()))
		lit.Reset()
	}

	state := stateHead
	for _, c := range pattern {
		switch state {
		case stateHead:
			switch c {
			case '/':
				re.WriteString(`\A`)
				state = stateLiteral
			case '*':
				re.WriteString(`(?:\A|/)`)
				state = stateHeadAsterisk
			case '?':
				re.WriteString(`(?:\A|/)[^/]`)
				state = stateLiteral
			default:
				re.WriteString(`(?:\A|/)`)
				lit.WriteRune(c)
				state = stateLiteral
			}
		case stateLiteral:
			switch c {
			case '/':
				flush()
				state = stateSlash
			case '*':
				flush()
				state = stateAsterisk
			case '?':
				flush()
				re.WriteString(`[^/]`)
			default:
				lit.WriteRune(c)
			}
		case stateDoubleAsteriskSlash:
			switch c {
			case '/':
				state = stateSlash
			case '*':
				state = stateAsterisk
			case '?':
				re.WriteString(`[^/]`)
				state = stateLiteral
			default:
				lit.WriteRune(c)
				state = stateLiteral
			}
		case stateAsterisk, stateHeadAsterisk:
			switch c {
			case '/':
				re.WriteString(`[^/]*`)
				state = stateSlash
			case '*':
				state = stateDoubleAsterisk
			case '?':
				re.WriteString(`[^/]+`)
				state = stateLiteral
			default:
				re.WriteString(`[^/]*`)
				lit.WriteRune(c)
				state = stateLiteral
			}
		case stateDoubleAsterisk:
			switch c {
			case '/':
				re.WriteString(`(?:[^/]+/)*`)
				state = stateDoubleAsteriskSlash
			case '*':
				// three or more asterisks collapse
			case '?':
				re.WriteString(`[^/]+`)
				state = stateLiteral
			default:
				re.WriteString(`[^/]*`)
				lit.WriteRune(c)
				state = stateLiteral
			}
		case stateSlash:
			switch c {
			case '/':
				// redundant slashes collapse
			case '*':
				re.WriteString(`/`)
				state = stateAsterisk
			case '?':
				re.WriteString(`/[^/]`)
				state = stateLiteral
			default:
				re.WriteString(`/`)
				lit.WriteRune(c)
				state = stateLiteral
			}
		}
	}

	switch state {
	case stateHead:
		return "", ErrEmptyPattern
	case stateLiteral:
		// Boundary anchor so `path/to/foo` matches only the file or
		// directory named `foo` under `path/to`, never `path/to/foobar`.
		flush()
		re.WriteString(`(?:/|\z)`)
	case stateDoubleAsteriskSlash:
		// pattern ended on `**/`; the emitted segment group stands alone
	case stateAsterisk:
		// trailing single asterisk does not cross into nested paths
		re.WriteString(`[^/]*\z`)
	case stateHeadAsterisk:
		// a lone asterisk matches everything
	case stateDoubleAsterisk:
		re.WriteString(`.*`)
	case stateSlash:
		// trailing slash selects only paths under the directory, so the
		// match must extend past the name itself
		re.WriteString(`/`)
	}
	return re.String(), nil
}
