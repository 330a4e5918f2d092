package git

import (
	"fmt"
	"strings"

	"github.com/sourcegraph/go-diff/diff"
)

// DiffContext names the two refs being compared.
type DiffContext struct {
	Base string
	Head string
	Dir  string
}

// ChangedFiles returns the repository-relative names of files changed
// between Base and Head, in diff order.
func ChangedFiles(context DiffContext) ([]string, error) {
	return changedFiles(context, newRealGitExecutor(context.Dir))
}

func changedFiles(context DiffContext, executor gitCommandExecutor) ([]string, error) {
	output, err := executor.execute("git", "diff", fmt.Sprintf("%s...%s", context.Base, context.Head))
	if err != nil {
		return nil, fmt.Errorf("diff error: %w", err)
	}
	fileDiffs, err := diff.ParseMultiFileDiff(output)
	if err != nil {
		return nil, fmt.Errorf("parsing diff: %w", err)
	}

	files := make([]string, 0, len(fileDiffs))
	for _, d := range fileDiffs {
		if d.NewName == "/dev/null" {
			// deleted file; nothing left to own
			continue
		}
		files = append(files, strings.TrimPrefix(d.NewName, "b/"))
	}
	return files, nil
}
