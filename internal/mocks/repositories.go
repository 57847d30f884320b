package mocks

import (
	"context"
	"sync"

	"github.com/comment-pr/internal/models"
	"github.com/comment-pr/internal/repository"
)

// Operation names recorded by MockGitRepository
const (
	OpGetRepository     = "GetRepository"
	OpGetBranch         = "GetBranch"
	OpCreateReference   = "CreateReference"
	OpCreateFile        = "CreateFile"
	OpCreatePullRequest = "CreatePullRequest"
)

// MockGitRepository is a mock implementation of GitRepository that records
// the order of calls and what was sent
type MockGitRepository struct {
	GetRepositoryFunc     func(ctx context.Context, owner, name string) (*models.GitRepository, error)
	GetBranchFunc         func(ctx context.Context, repo *models.GitRepository, branch string) (*models.Branch, error)
	CreateReferenceFunc   func(ctx context.Context, repo *models.GitRepository, ref, sha string) (*models.Reference, error)
	CreateFileFunc        func(ctx context.Context, repo *models.GitRepository, file *models.FileCommit) (string, error)
	CreatePullRequestFunc func(ctx context.Context, repo *models.GitRepository, pr *models.NewPullRequest) (*models.PullRequest, error)

	// Defaults returned when no Func override is set
	Repo        *models.GitRepository
	HeadSHA     string
	CommitSHA   string
	PullRequest *models.PullRequest

	mu           sync.Mutex
	Calls        []string
	References   []models.Reference
	Files        []*models.FileCommit
	PullRequests []*models.NewPullRequest
}

// Verify interface compliance
var _ repository.GitRepository = (*MockGitRepository)(nil)

func NewMockGitRepository() *MockGitRepository {
	return &MockGitRepository{
		Repo: &models.GitRepository{
			ID:            42,
			Owner:         "agileobjects",
			Name:          "blog",
			DefaultBranch: "main",
		},
		HeadSHA:   "6dcb09b5b57875f334f61aebed695e2e4193db5e",
		CommitSHA: "7638417db6d59f3c431d3e1f261cc637155684cd",
		PullRequest: &models.PullRequest{
			ID:     1347,
			Number: 7,
			URL:    "https://github.com/agileobjects/blog/pull/7",
		},
		Calls: make([]string, 0, 5),
	}
}

func (m *MockGitRepository) record(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, op)
}

// CallSequence returns a copy of the recorded operation names
func (m *MockGitRepository) CallSequence() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.Calls))
	copy(out, m.Calls)
	return out
}

func (m *MockGitRepository) GetRepository(ctx context.Context, owner, name string) (*models.GitRepository, error) {
	m.record(OpGetRepository)
	if m.GetRepositoryFunc != nil {
		return m.GetRepositoryFunc(ctx, owner, name)
	}
	repo := *m.Repo
	return &repo, nil
}

func (m *MockGitRepository) GetBranch(ctx context.Context, repo *models.GitRepository, branch string) (*models.Branch, error) {
	m.record(OpGetBranch)
	if m.GetBranchFunc != nil {
		return m.GetBranchFunc(ctx, repo, branch)
	}
	return &models.Branch{Name: branch, HeadSHA: m.HeadSHA}, nil
}

func (m *MockGitRepository) CreateReference(ctx context.Context, repo *models.GitRepository, ref, sha string) (*models.Reference, error) {
	m.record(OpCreateReference)
	if m.CreateReferenceFunc != nil {
		return m.CreateReferenceFunc(ctx, repo, ref, sha)
	}
	created := models.Reference{Ref: ref, SHA: sha}
	m.mu.Lock()
	m.References = append(m.References, created)
	m.mu.Unlock()
	return &created, nil
}

func (m *MockGitRepository) CreateFile(ctx context.Context, repo *models.GitRepository, file *models.FileCommit) (string, error) {
	m.record(OpCreateFile)
	if m.CreateFileFunc != nil {
		return m.CreateFileFunc(ctx, repo, file)
	}
	m.mu.Lock()
	m.Files = append(m.Files, file)
	m.mu.Unlock()
	return m.CommitSHA, nil
}

func (m *MockGitRepository) CreatePullRequest(ctx context.Context, repo *models.GitRepository, pr *models.NewPullRequest) (*models.PullRequest, error) {
	m.record(OpCreatePullRequest)
	if m.CreatePullRequestFunc != nil {
		return m.CreatePullRequestFunc(ctx, repo, pr)
	}
	m.mu.Lock()
	m.PullRequests = append(m.PullRequests, pr)
	m.mu.Unlock()
	created := *m.PullRequest
	return &created, nil
}
