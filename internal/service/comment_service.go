package service

import (
	"context"

	"github.com/comment-pr/internal/models"
	"github.com/comment-pr/internal/repository"
	"github.com/rs/zerolog"
)

// Pipeline step names, in execution order
const (
	StepGetRepository     = "get_repository"
	StepGetDefaultBranch  = "get_default_branch"
	StepCreateBranch      = "create_branch"
	StepCreateFile        = "create_file"
	StepCreatePullRequest = "create_pull_request"
)

// commentService is the concrete implementation of CommentService
type commentService struct {
	git  repository.GitRepository
	info models.CommentInfo
	log  zerolog.Logger
}

// newCommentService creates a new CommentService
func newCommentService(git repository.GitRepository, info models.CommentInfo, log zerolog.Logger) *commentService {
	return &commentService{
		git:  git,
		info: info,
		log:  log.With().Str("service", "comment").Logger(),
	}
}

// CreatePullRequest runs the pipeline: fetch repository, fetch its default
// branch, create the comment branch, commit the comment file, open the pull
// request. Each step needs the previous step's result. There is no rollback:
// if a later step fails, whatever earlier steps created stays in place.
func (s *commentService) CreatePullRequest(ctx context.Context, comment *models.Comment) (*models.PullRequest, error) {
	log := s.log.With().
		Str("comment_id", comment.ID()).
		Str("post_id", comment.PostID()).
		Logger()

	if err := checkpoint(ctx, log, StepGetRepository); err != nil {
		return nil, err
	}
	repo, err := s.git.GetRepository(ctx, s.info.Repo.OwnerName, s.info.Repo.Name)
	if err != nil {
		return nil, err
	}

	if err := checkpoint(ctx, log, StepGetDefaultBranch); err != nil {
		return nil, err
	}
	defaultBranch, err := s.git.GetBranch(ctx, repo, repo.DefaultBranch)
	if err != nil {
		return nil, err
	}

	if err := checkpoint(ctx, log, StepCreateBranch); err != nil {
		return nil, err
	}
	prBranch, err := s.git.CreateReference(ctx, repo, comment.BranchRef(), defaultBranch.HeadSHA)
	if err != nil {
		return nil, err
	}

	if err := checkpoint(ctx, log, StepCreateFile); err != nil {
		return nil, err
	}
	content, err := comment.YAML()
	if err != nil {
		return nil, err
	}
	file := &models.FileCommit{
		Path:    comment.FilePath(),
		Branch:  prBranch.Ref,
		Message: comment.CommitMessage(),
		Content: content,
		Committer: models.Committer{
			Name:  comment.Name(),
			Email: comment.CommitterEmail(s.info.CommitterFallbackEmail),
			Date:  comment.Date(),
		},
	}
	if _, err := s.git.CreateFile(ctx, repo, file); err != nil {
		return nil, err
	}

	if err := checkpoint(ctx, log, StepCreatePullRequest); err != nil {
		return nil, err
	}
	pr, err := s.git.CreatePullRequest(ctx, repo, &models.NewPullRequest{
		Title: file.Message,
		Head:  prBranch.Ref,
		Base:  defaultBranch.Name,
		Body:  comment.PullRequestBody(),
	})
	if err != nil {
		return nil, err
	}

	log.Debug().
		Int64("pr_id", pr.ID).
		Str("pr_url", pr.URL).
		Msg("Pull request created")

	return pr, nil
}

// checkpoint stops the pipeline between steps once the context is done
func checkpoint(ctx context.Context, log zerolog.Logger, step string) error {
	if err := ctx.Err(); err != nil {
		log.Debug().Str("step", step).Err(err).Msg("Pipeline cancelled")
		return err
	}
	log.Debug().Str("step", step).Msg("Pipeline step starting")
	return nil
}
