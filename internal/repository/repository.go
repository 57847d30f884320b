package repository

import (
	"context"

	"github.com/comment-pr/internal/models"
	"github.com/google/go-github/v66/github"
	"github.com/rs/zerolog"
)

// GitRepository defines the remote version-control operations used to
// propose a comment. Errors are returned as produced by the remote client.
type GitRepository interface {
	GetRepository(ctx context.Context, owner, name string) (*models.GitRepository, error)
	GetBranch(ctx context.Context, repo *models.GitRepository, branch string) (*models.Branch, error)
	CreateReference(ctx context.Context, repo *models.GitRepository, ref, sha string) (*models.Reference, error)
	CreateFile(ctx context.Context, repo *models.GitRepository, file *models.FileCommit) (string, error)
	CreatePullRequest(ctx context.Context, repo *models.GitRepository, pr *models.NewPullRequest) (*models.PullRequest, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	Git GitRepository
}

// New creates all repositories backed by the given GitHub client
func New(client *github.Client, log zerolog.Logger) *Repositories {
	return &Repositories{
		Git: NewGitHubRepo(client, log),
	}
}
