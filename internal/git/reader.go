package git

import (
	"fmt"
	"strings"
)

// CandidatePaths are the well-known CODEOWNERS locations, in the priority
// order GitHub consults them.
var CandidatePaths = []string{".github/CODEOWNERS", "CODEOWNERS", "docs/CODEOWNERS"}

// NotFoundError is returned when no CODEOWNERS file exists at any of the
// candidate locations for a ref.
type NotFoundError struct {
	Ref string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no CODEOWNERS file found at ref %s (looked for %s)", e.Ref, strings.Join(CandidatePaths, ", "))
}

// RefReader reads committed files from a git ref, without touching the
// working tree.
type RefReader struct {
	ref      string
	dir      string
	executor gitCommandExecutor
}

// NewRefReader creates a RefReader for the repository at dir.
func NewRefReader(ref string, dir string) *RefReader {
	return &RefReader{
		ref:      ref,
		dir:      dir,
		executor: newRealGitExecutor(dir),
	}
}

// ReadFile reads a file from the ref.
func (r *RefReader) ReadFile(path string) ([]byte, error) {
	path = strings.TrimPrefix(path, "/")

	output, err := r.executor.execute("git", "show", fmt.Sprintf("%s:%s", r.ref, path))
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s from ref %s: %w", path, r.ref, err)
	}
	return output, nil
}

// PathExists checks whether a file exists in the ref.
func (r *RefReader) PathExists(path string) bool {
	path = strings.TrimPrefix(path, "/")

	_, err := r.executor.execute("git", "cat-file", "-e", fmt.Sprintf("%s:%s", r.ref, path))
	return err == nil
}

// FindCodeowners probes the candidate CODEOWNERS locations in priority
// order and returns the contents and path of the first one present.
func (r *RefReader) FindCodeowners() ([]byte, string, error) {
	for _, path := range CandidatePaths {
		if !r.PathExists(path) {
			continue
		}
		content, err := r.ReadFile(path)
		if err != nil {
			return nil, "", err
		}
		return content, path, nil
	}
	return nil, "", &NotFoundError{Ref: r.ref}
}

// RepoRoot returns the absolute path of the working tree containing dir.
func RepoRoot(dir string) (string, error) {
	return repoRoot(newRealGitExecutor(dir))
}

func repoRoot(executor gitCommandExecutor) (string, error) {
	output, err := executor.execute("git", "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("not a git repository: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}
