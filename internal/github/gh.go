package gh

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/go-github/v84/github"
	"golang.org/x/oauth2"

	"github.com/codeowner-tools/whose/internal/git"
)

// NotFoundError is returned when a remote repository has no CODEOWNERS
// file at any of the candidate locations.
type NotFoundError struct {
	Owner string
	Repo  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no CODEOWNERS file found in %s/%s", e.Owner, e.Repo)
}

// Client fetches CODEOWNERS content from a remote repository.
type Client interface {
	// Codeowners returns the contents and path of the first CODEOWNERS
	// candidate present at ref (empty ref means the default branch).
	Codeowners(ctx context.Context, ref string) ([]byte, string, error)
}

type GHClient struct {
	owner  string
	repo   string
	client *github.Client
}

// NewClient creates a GitHub API client for owner/repo. An empty token
// means unauthenticated access.
func NewClient(owner, repo, token string) *GHClient {
	var httpClient *http.Client
	if token != "" {
		source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), source)
	}
	return &GHClient{
		owner:  owner,
		repo:   repo,
		client: github.NewClient(httpClient),
	}
}

func (c *GHClient) Codeowners(ctx context.Context, ref string) ([]byte, string, error) {
	opts := &github.RepositoryContentGetOptions{Ref: ref}
	for _, path := range git.CandidatePaths {
		fileContent, _, resp, err := c.client.Repositories.GetContents(ctx, c.owner, c.repo, path, opts)
		if err != nil {
			if resp != nil && resp.StatusCode == http.StatusNotFound {
				continue
			}
			return nil, "", fmt.Errorf("fetching %s from %s/%s: %w", path, c.owner, c.repo, err)
		}
		if fileContent == nil {
			// path resolved to a directory
			continue
		}
		content, err := fileContent.GetContent()
		if err != nil {
			return nil, "", fmt.Errorf("decoding %s from %s/%s: %w", path, c.owner, c.repo, err)
		}
		return []byte(content), path, nil
	}
	return nil, "", &NotFoundError{Owner: c.owner, Repo: c.repo}
}
