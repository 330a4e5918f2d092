package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/boyter/gocodewalker"
	"golang.org/x/sync/errgroup"

	"github.com/codeowner-tools/whose/internal/config"
	"github.com/codeowner-tools/whose/internal/git"
	gh "github.com/codeowner-tools/whose/internal/github"
	"github.com/codeowner-tools/whose/pkg/codeowners"
	f "github.com/codeowner-tools/whose/pkg/functional"
)

// Config holds the application configuration.
type Config struct {
	RepoDir       string
	Ref           string
	Remote        string
	Token         string
	Verbose       bool
	InfoBuffer    io.Writer
	WarningBuffer io.Writer
}

// App resolves CODEOWNERS questions against one repository.
type App struct {
	Conf    *config.Config
	config  *Config
	client  gh.Client
	ruleset *codeowners.Ruleset
}

// New creates an App instance with the given configuration.
func New(cfg Config) (*App, error) {
	app := &App{config: &cfg}
	if cfg.Remote != "" {
		repoSplit := strings.Split(cfg.Remote, "/")
		if len(repoSplit) != 2 {
			return nil, fmt.Errorf("invalid repo name: %s", cfg.Remote)
		}
		app.client = gh.NewClient(repoSplit[0], repoSplit[1], cfg.Token)
	}
	return app, nil
}

func (a *App) printDebug(format string, args ...interface{}) {
	if a.config.Verbose {
		_, _ = fmt.Fprintf(a.config.InfoBuffer, format, args...)
	}
}

func (a *App) printWarn(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(a.config.WarningBuffer, format, args...)
}

// Load reads whose.toml and builds the ruleset from the CODEOWNERS file,
// fetched remotely when a remote repo is configured, from the local ref
// otherwise.
func (a *App) Load(ctx context.Context) error {
	conf, err := config.Read(a.config.RepoDir)
	if err != nil {
		a.printWarn("WARNING: error reading whose.toml - using default config\n")
	}
	a.Conf = conf

	content, path, err := a.fetchCodeowners(ctx)
	if err != nil {
		return err
	}
	a.printDebug("using CODEOWNERS at %s\n", path)

	a.ruleset = codeowners.ParseString(string(content), a.config.WarningBuffer)
	a.printDebug("parsed %d rules\n", a.ruleset.Len())
	return nil
}

func (a *App) fetchCodeowners(ctx context.Context) ([]byte, string, error) {
	if a.client != nil {
		return a.client.Codeowners(ctx, a.config.Ref)
	}

	ref := a.config.Ref
	if ref == "" {
		ref = "HEAD"
	}
	reader := git.NewRefReader(ref, a.config.RepoDir)
	if a.Conf.CodeownersPath != "" {
		content, err := reader.ReadFile(a.Conf.CodeownersPath)
		if err != nil {
			return nil, "", err
		}
		return content, a.Conf.CodeownersPath, nil
	}
	return reader.FindCodeowners()
}

// Resolution is the owners answer for one path.
type Resolution struct {
	Path   string   `json:"path"`
	Owners []string `json:"owners"`
	Owned  bool     `json:"owned"`
}

// ResolveOwners answers the owners question for each target. Directory
// targets are expanded into the files under them. The ruleset is immutable
// so targets are resolved concurrently.
func (a *App) ResolveOwners(targets []string) ([]Resolution, error) {
	paths, err := a.expandTargets(targets)
	if err != nil {
		return nil, err
	}

	results := make([]Resolution, len(paths))
	eg := new(errgroup.Group)
	for i, path := range paths {
		eg.Go(func() error {
			owners, found := a.ruleset.FindOwners(path)
			results[i] = Resolution{Path: path, Owners: owners, Owned: found}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Explanation is the explain trace for one path.
type Explanation struct {
	Path    string
	Matches []codeowners.RuleMatch
}

// ExplainOwners returns the full match trace for each target.
func (a *App) ExplainOwners(targets []string) ([]Explanation, error) {
	paths, err := a.expandTargets(targets)
	if err != nil {
		return nil, err
	}

	results := make([]Explanation, len(paths))
	eg := new(errgroup.Group)
	for i, path := range paths {
		eg.Go(func() error {
			results[i] = Explanation{Path: path, Matches: a.ruleset.Explain(path)}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// ResolveDiff answers the owners question for every file changed between
// two refs.
func (a *App) ResolveDiff(base, head string) ([]Resolution, error) {
	files, err := git.ChangedFiles(git.DiffContext{Base: base, Head: head, Dir: a.config.RepoDir})
	if err != nil {
		return nil, err
	}
	files = f.Filtered(files, func(path string) bool { return !a.ignored(path) })
	if len(files) == 0 {
		return []Resolution{}, nil
	}
	return a.ResolveOwners(files)
}

// Unowned walks the repository and returns the files no rule matches.
// When target is non-empty only paths under it are considered; depth of 0
// means unlimited.
func (a *App) Unowned(target string, depth int, dirsOnly bool) ([]string, error) {
	if target != "" {
		rel, err := git.RelPath(a.config.RepoDir, target)
		if err != nil {
			return nil, err
		}
		target = rel
	}

	files, err := a.walk(a.config.RepoDir)
	if err != nil {
		return nil, err
	}

	unowned := f.Filtered(files, func(path string) bool {
		if target != "" && path != target && !strings.HasPrefix(path, target+"/") {
			return false
		}
		if depth != 0 && depthCheck(path, target, depth) {
			return false
		}
		_, found := a.ruleset.FindOwners(path)
		return !found
	})

	if dirsOnly {
		unowned = f.Filtered(f.RemoveDuplicates(f.Map(unowned, func(path string) string {
			return filepath.Dir(path)
		})), func(path string) bool {
			return path != "."
		})
	}
	return unowned, nil
}

// expandTargets normalizes targets to repository-relative form and expands
// directories into the files under them. Ignore globs from whose.toml are
// filtered out. An empty target list means the whole repository.
func (a *App) expandTargets(targets []string) ([]string, error) {
	if a.client != nil {
		// remote mode has no working tree to expand against
		return f.Filtered(targets, func(path string) bool { return !a.ignored(path) }), nil
	}

	if len(targets) == 0 {
		targets = []string{"."}
	}

	paths := make([]string, 0, len(targets))
	for _, target := range targets {
		rel, err := git.RelPath(a.config.RepoDir, target)
		if err != nil {
			return nil, err
		}

		stat, err := os.Stat(filepath.Join(a.config.RepoDir, filepath.FromSlash(rel)))
		if err == nil && stat.IsDir() {
			files, err := a.walk(filepath.Join(a.config.RepoDir, filepath.FromSlash(rel)))
			if err != nil {
				return nil, err
			}
			prefix := ""
			if rel != "" {
				prefix = rel + "/"
			}
			for _, file := range files {
				paths = append(paths, prefix+file)
			}
			continue
		}
		if rel == "" {
			continue
		}
		paths = append(paths, rel)
	}
	return f.Filtered(paths, func(path string) bool { return !a.ignored(path) }), nil
}

// walk lists the files under dir, relative to dir.
func (a *App) walk(dir string) ([]string, error) {
	dir = filepath.Clean(dir)
	fileListQueue := make(chan *gocodewalker.File, 100)

	walker := gocodewalker.NewFileWalker(dir, fileListQueue)
	walker.IncludeHidden = true
	walker.ExcludeDirectory = []string{".git"}

	errChan := make(chan error)
	go func() {
		errChan <- walker.Start()
		close(errChan)
	}()

	files := make([]string, 0)
	for file := range fileListQueue {
		path := stripRoot(dir, filepath.ToSlash(file.Location))
		if a.ignored(path) {
			continue
		}
		files = append(files, path)
	}
	if err := <-errChan; err != nil {
		return nil, fmt.Errorf("error walking repo: %w", err)
	}
	return files, nil
}

func (a *App) ignored(path string) bool {
	for _, glob := range a.Conf.Ignore {
		if match, err := doublestar.Match(glob, path); err == nil && match {
			return true
		}
	}
	return false
}

func stripRoot(root string, path string) string {
	if root == "." {
		return path
	}
	return strings.TrimPrefix(path, strings.TrimSuffix(filepath.ToSlash(root), "/")+"/")
}

func depthCheck(path string, target string, depth int) bool {
	extra := 0
	if target != "" {
		extra = strings.Count(target, "/") + 1
	}
	return strings.Count(path, "/") > (depth + extra)
}
