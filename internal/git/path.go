package git

import (
	"fmt"
	"path/filepath"
	"strings"
)

// RelPath converts a caller-supplied path into the repository-relative,
// slash-separated form CODEOWNERS patterns match against. Resolution is
// purely lexical (no symlink expansion). Paths outside the repository root
// are an error.
func RelPath(root string, path string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	absPath := path
	if !filepath.IsAbs(absPath) {
		absPath = filepath.Join(absRoot, absPath)
	} else {
		absPath = filepath.Clean(absPath)
	}

	rel, err := filepath.Rel(absRoot, absPath)
	if err != nil {
		return "", err
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", fmt.Errorf("path %s is outside the repository at %s", path, root)
	}
	if rel == "." {
		return "", nil
	}
	return rel, nil
}
