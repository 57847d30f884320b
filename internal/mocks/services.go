package mocks

import (
	"context"

	"github.com/comment-pr/internal/models"
	"github.com/comment-pr/internal/service"
)

// MockCommentService is a mock implementation of CommentService
type MockCommentService struct {
	CreatePullRequestFunc func(ctx context.Context, comment *models.Comment) (*models.PullRequest, error)
	Comments              []*models.Comment
}

// Verify interface compliance
var _ service.CommentService = (*MockCommentService)(nil)

func NewMockCommentService() *MockCommentService {
	return &MockCommentService{
		Comments: make([]*models.Comment, 0),
	}
}

func (m *MockCommentService) CreatePullRequest(ctx context.Context, comment *models.Comment) (*models.PullRequest, error) {
	m.Comments = append(m.Comments, comment)
	if m.CreatePullRequestFunc != nil {
		return m.CreatePullRequestFunc(ctx, comment)
	}
	return &models.PullRequest{
		ID:     1,
		Number: 1,
		URL:    "https://github.com/owner/blog/pull/1",
	}, nil
}
