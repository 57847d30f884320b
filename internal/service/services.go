package service

import (
	"context"

	"github.com/comment-pr/internal/models"
	"github.com/comment-pr/internal/repository"
	"github.com/rs/zerolog"
)

// CommentService defines the interface for publishing comments
type CommentService interface {
	// CreatePullRequest proposes the comment as a pull request against the
	// configured repository. Remote errors are returned unchanged.
	CreatePullRequest(ctx context.Context, comment *models.Comment) (*models.PullRequest, error)
}

// Services holds all service interfaces
type Services struct {
	Comment CommentService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, info models.CommentInfo, log zerolog.Logger) *Services {
	return &Services{
		Comment: newCommentService(repos.Git, info, log),
	}
}
