package models

// CommentRepo identifies the repository comments are proposed against
type CommentRepo struct {
	OwnerName string `json:"owner"`
	Name      string `json:"name"`
}

// FullName returns the owner/name form of the repository
func (r CommentRepo) FullName() string {
	return r.OwnerName + "/" + r.Name
}

// CommentInfo is the process-wide comment publishing configuration
type CommentInfo struct {
	Repo                   CommentRepo `json:"repo"`
	CommitterFallbackEmail string      `json:"committer_fallback_email"`
}
