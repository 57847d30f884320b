package repository

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/comment-pr/internal/config"
	"github.com/comment-pr/internal/models"
	"github.com/google/go-github/v66/github"
	"github.com/rs/zerolog"
)

const userAgent = "comment-pr"

// NewGitHubClient creates an authenticated GitHub API client. A non-empty
// APIURL points the client at a GitHub Enterprise Server instance.
func NewGitHubClient(cfg *config.GitHubConfig) (*github.Client, error) {
	httpClient := &http.Client{Timeout: cfg.Timeout}

	client := github.NewClient(httpClient).WithAuthToken(cfg.Token)
	client.UserAgent = userAgent

	if cfg.APIURL != "" {
		var err error
		client, err = client.WithEnterpriseURLs(cfg.APIURL, cfg.APIURL)
		if err != nil {
			return nil, fmt.Errorf("failed to configure GitHub API URL %q: %w", cfg.APIURL, err)
		}
	}

	return client, nil
}

// githubRepo is the GitHub implementation of GitRepository
type githubRepo struct {
	client *github.Client
	log    zerolog.Logger
}

// NewGitHubRepo creates a GitRepository backed by the GitHub REST API
func NewGitHubRepo(client *github.Client, log zerolog.Logger) GitRepository {
	return &githubRepo{
		client: client,
		log:    log.With().Str("component", "github").Logger(),
	}
}

// GetRepository fetches a repository by owner and name
func (r *githubRepo) GetRepository(ctx context.Context, owner, name string) (*models.GitRepository, error) {
	repo, _, err := r.client.Repositories.Get(ctx, owner, name)
	if err != nil {
		return nil, err
	}

	return &models.GitRepository{
		ID:            repo.GetID(),
		Owner:         repo.GetOwner().GetLogin(),
		Name:          repo.GetName(),
		DefaultBranch: repo.GetDefaultBranch(),
	}, nil
}

// GetBranch fetches a branch and its head commit
func (r *githubRepo) GetBranch(ctx context.Context, repo *models.GitRepository, branch string) (*models.Branch, error) {
	b, _, err := r.client.Repositories.GetBranch(ctx, repo.Owner, repo.Name, branch, 1)
	if err != nil {
		return nil, err
	}

	return &models.Branch{
		Name:    b.GetName(),
		HeadSHA: b.GetCommit().GetSHA(),
	}, nil
}

// CreateReference creates ref pointing at sha
func (r *githubRepo) CreateReference(ctx context.Context, repo *models.GitRepository, ref, sha string) (*models.Reference, error) {
	created, _, err := r.client.Git.CreateRef(ctx, repo.Owner, repo.Name, &github.Reference{
		Ref:    github.String(ref),
		Object: &github.GitObject{SHA: github.String(sha)},
	})
	if err != nil {
		return nil, err
	}

	r.log.Debug().
		Str("repo", repo.Owner+"/"+repo.Name).
		Str("ref", created.GetRef()).
		Msg("Reference created")

	return &models.Reference{
		Ref: created.GetRef(),
		SHA: created.GetObject().GetSHA(),
	}, nil
}

// CreateFile commits a new file on a branch and returns the commit SHA
func (r *githubRepo) CreateFile(ctx context.Context, repo *models.GitRepository, file *models.FileCommit) (string, error) {
	committer := &github.CommitAuthor{
		Name:  github.String(file.Committer.Name),
		Email: github.String(file.Committer.Email),
		Date:  &github.Timestamp{Time: file.Committer.Date},
	}

	resp, _, err := r.client.Repositories.CreateFile(ctx, repo.Owner, repo.Name, file.Path, &github.RepositoryContentFileOptions{
		Message:   github.String(file.Message),
		Content:   file.Content,
		Branch:    github.String(strings.TrimPrefix(file.Branch, "refs/heads/")),
		Committer: committer,
	})
	if err != nil {
		return "", err
	}

	sha := resp.Commit.GetSHA()
	r.log.Debug().
		Str("repo", repo.Owner+"/"+repo.Name).
		Str("path", file.Path).
		Str("commit", sha).
		Msg("File committed")

	return sha, nil
}

// CreatePullRequest opens a pull request
func (r *githubRepo) CreatePullRequest(ctx context.Context, repo *models.GitRepository, pr *models.NewPullRequest) (*models.PullRequest, error) {
	created, _, err := r.client.PullRequests.Create(ctx, repo.Owner, repo.Name, &github.NewPullRequest{
		Title: github.String(pr.Title),
		Head:  github.String(strings.TrimPrefix(pr.Head, "refs/heads/")),
		Base:  github.String(pr.Base),
		Body:  github.String(pr.Body),
	})
	if err != nil {
		return nil, err
	}

	return &models.PullRequest{
		ID:     created.GetID(),
		Number: created.GetNumber(),
		URL:    created.GetHTMLURL(),
	}, nil
}
