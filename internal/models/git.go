package models

import (
	"time"
)

// GitRepository is the remote repository a comment is proposed against
type GitRepository struct {
	ID            int64  `json:"id"`
	Owner         string `json:"owner"`
	Name          string `json:"name"`
	DefaultBranch string `json:"default_branch"`
}

// Branch is a named branch and the commit at its head
type Branch struct {
	Name    string `json:"name"`
	HeadSHA string `json:"head_sha"`
}

// Reference is a git reference such as refs/heads/comment-0a1b2c3d
type Reference struct {
	Ref string `json:"ref"`
	SHA string `json:"sha"`
}

// Committer is the identity a commit is attributed to
type Committer struct {
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Date  time.Time `json:"date"`
}

// FileCommit describes a single file created on a branch
type FileCommit struct {
	Path      string    `json:"path"`
	Branch    string    `json:"branch"`
	Message   string    `json:"message"`
	Content   []byte    `json:"-"`
	Committer Committer `json:"committer"`
}

// NewPullRequest describes a pull request to open
type NewPullRequest struct {
	Title string `json:"title"`
	Head  string `json:"head"`
	Base  string `json:"base"`
	Body  string `json:"body"`
}

// PullRequest is a reference to an opened pull request
type PullRequest struct {
	ID     int64  `json:"id"`
	Number int    `json:"number"`
	URL    string `json:"url"`
}
