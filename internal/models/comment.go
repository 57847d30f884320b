package models

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"html"
	"net/url"
	"regexp"
	"time"
)

// invalidPathChars matches everything that may not appear in a post id,
// which ends up in both a file path and a branch name.
var invalidPathChars = regexp.MustCompile(`[^a-zA-Z0-9-]`)

// idFieldSeparator joins the identity tuple before hashing
const idFieldSeparator = "\x1f"

// CommentInput holds the resolved constructor values for a Comment
type CommentInput struct {
	PostID  string
	Message string
	Name    string
	Email   string
	URL     *url.URL
	Avatar  string
}

// Comment represents a blog comment to be written to the content repository.
// A Comment is immutable once constructed; fields are read through accessors.
type Comment struct {
	postID    string
	id        string
	date      time.Time
	name      string
	message   string
	email     string
	avatarURL *url.URL
	url       *url.URL
}

// NewComment creates a Comment stamped with the current UTC time
func NewComment(in CommentInput) *Comment {
	return NewCommentAt(in, time.Now())
}

// NewCommentAt creates a Comment stamped with the given instant (normalized to UTC).
// The post id is sanitized before the identifier is derived from it.
func NewCommentAt(in CommentInput, at time.Time) *Comment {
	c := &Comment{
		postID:  SanitizePostID(in.PostID),
		date:    at.UTC(),
		name:    in.Name,
		message: in.Message,
		email:   in.Email,
		url:     in.URL,
	}
	c.id = CommentID(c.postID, c.name, c.message, c.date)

	// Invalid avatar URLs are dropped rather than rejected
	if avatar, ok := ParseAbsoluteURL(in.Avatar); ok {
		c.avatarURL = avatar
	}

	return c
}

// SanitizePostID replaces every character outside [A-Za-z0-9-] with '-'
func SanitizePostID(postID string) string {
	return invalidPathChars.ReplaceAllString(postID, "-")
}

// CommentID derives the 8 hex digit identifier of a comment from its
// post id, author name, message and creation instant.
func CommentID(postID, name, message string, date time.Time) string {
	canonical := postID + idFieldSeparator +
		name + idFieldSeparator +
		message + idFieldSeparator +
		date.UTC().Format(time.RFC3339Nano)

	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:4])
}

// ParseAbsoluteURL parses raw and reports whether it is an absolute URL
func ParseAbsoluteURL(raw string) (*url.URL, bool) {
	if raw == "" {
		return nil, false
	}
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() {
		return nil, false
	}
	return u, true
}

func (c *Comment) PostID() string  { return c.postID }
func (c *Comment) ID() string      { return c.id }
func (c *Comment) Date() time.Time { return c.date }
func (c *Comment) Name() string    { return c.name }
func (c *Comment) Message() string { return c.message }

// Email returns the commenter email, or "" when none was given
func (c *Comment) Email() string { return c.email }

// AvatarURL returns the avatar URL, or nil when absent or invalid
func (c *Comment) AvatarURL() *url.URL { return c.avatarURL }

// URL returns the commenter website, or nil when absent
func (c *Comment) URL() *url.URL { return c.url }

// BranchName returns the branch the comment is committed on
func (c *Comment) BranchName() string {
	return "comment-" + c.id
}

// BranchRef returns the fully qualified reference of BranchName
func (c *Comment) BranchRef() string {
	return "refs/heads/" + c.BranchName()
}

// FilePath returns the repository path of the comment document
func (c *Comment) FilePath() string {
	return fmt.Sprintf("_data/comments/%s/%s.yml", c.postID, c.id)
}

// CommitMessage is used both for the commit and as the pull request title
func (c *Comment) CommitMessage() string {
	return fmt.Sprintf("Comment by %s on %s", c.name, c.postID)
}

// PullRequestBody renders the avatar (when present) followed by the raw message.
// The avatar URL is HTML-escaped for the src attribute.
func (c *Comment) PullRequestBody() string {
	if c.avatarURL == nil {
		return c.message
	}
	return fmt.Sprintf("avatar: <img src=\"%s\" />\n\n%s", html.EscapeString(c.avatarURL.String()), c.message)
}

// CommitterEmail returns the comment email, falling back to the configured address
func (c *Comment) CommitterEmail(fallback string) string {
	if c.email != "" {
		return c.email
	}
	return fallback
}
