package codeowners

import (
	"errors"
	"testing"
)

func TestTranslate(t *testing.T) {
	tt := []struct {
		pattern  string
		expected string
		err      error
	}{
		{pattern: "", err: ErrEmptyPattern},
		{pattern: "/foo", expected: `\Afoo(?:/|\z)`},
		{pattern: "*", expected: `(?:\A|/)`},
		{pattern: "**", expected: `(?:\A|/).*`},
		{pattern: "*.js", expected: `(?:\A|/)[^/]*\.js(?:/|\z)`},
		{pattern: "/build/logs", expected: `\Abuild/logs(?:/|\z)`},
		{pattern: "docs/*", expected: `(?:\A|/)docs/[^/]*\z`},
		{pattern: "apps/", expected: `(?:\A|/)apps/`},
		{pattern: "**/logs", expected: `(?:\A|/)(?:[^/]+/)*logs(?:/|\z)`},
		{pattern: "a/**/b", expected: `(?:\A|/)a/(?:[^/]+/)*b(?:/|\z)`},
	}

	for _, tc := range tt {
		t.Run(tc.pattern, func(t *testing.T) {
			got, err := translate(tc.pattern)
			if tc.err != nil {
				if !errors.Is(err, tc.err) {
					t.Errorf("expected error %v, got %v", tc.err, err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			if got != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestPatternMatches(t *testing.T) {
	tt := []struct {
		pattern string
		path    string
		matches bool
	}{
		{"*", "foo", true},
		{"*", "foo/bar", true},
		{"*", "foo/bar/baz", true},
		{"/foo", "foo", true},
		{"/foo", "a/foo", false},
		{"/foo", "fooa", false},
		{"**/foo", "foo", true},
		{"**/foo", "fooa", false},
		{"**/foo", "bar/foo", true},
		{"**/foo", "baz/bar/foo", true},
		{"**/foo", "baz/bar/fooa", false},
		{"**/foo", "baz/bar/foo/a", true},
		{"a/**/b", "a/b", true},
		{"a/**/b", "a/foo/b", true},
		{"a/**/b", "a/foo/bar/b", true},
		{"*.js", "foo.js", true},
		{"*.js", "bar/foo.js", true},
		{"*.js", "foo.jsx", false},
		{"apps/", "apps/anything", true},
		{"apps/", "apps", false},
		{"foo", "foobar", false},
		{"foo", "bar/foo", true},

		// cases from the GitHub CODEOWNERS documentation
		{"docs/*", "docs/getting-started.md", true},
		{"docs/*", "docs/build-app/troubleshooting.md", false},
		{"**/logs", "build/logs", true},
		{"**/logs", "scripts/logs", true},
		{"**/logs", "deeply/nested/logs", true},
	}

	for _, tc := range tt {
		pattern, err := NewPattern(tc.pattern)
		if err != nil {
			t.Errorf("NewPattern(%q): unexpected error: %v", tc.pattern, err)
			continue
		}
		if got := pattern.Matches(tc.path); got != tc.matches {
			t.Errorf("pattern %q path %q: expected %v, got %v", tc.pattern, tc.path, tc.matches, got)
		}
	}
}

func TestPatternLiteralEscaping(t *testing.T) {
	pattern, err := NewPattern("foo.js")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pattern.Matches("fooxjs") {
		t.Error("dot in pattern should match literally, not as a regex metacharacter")
	}
	if !pattern.Matches("foo.js") {
		t.Error("expected literal match")
	}
}

func TestPatternCompileIdempotent(t *testing.T) {
	paths := []string{"foo", "foo/bar", "docs/a.md", "a/b/c.js", "apps/x"}
	for _, raw := range []string{"*", "/foo", "docs/*", "apps/", "**/logs", "*.js"} {
		first, err := NewPattern(raw)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := NewPattern(raw)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, path := range paths {
			if first.Matches(path) != second.Matches(path) {
				t.Errorf("pattern %q: match behavior differs between compilations for %q", raw, path)
			}
		}
	}
}
