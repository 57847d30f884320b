package validation

import (
	"github.com/comment-pr/internal/models"
)

// Comment form field names
const (
	FieldPostID  = "postId"
	FieldMessage = "message"
	FieldName    = "name"
	FieldEmail   = "email"
	FieldURL     = "url"
	FieldAvatar  = "avatar"
)

// CommentSchema binds a submitted comment form. Fields are declared in
// constructor order; url and avatar are lenient and drop invalid input.
var CommentSchema = Schema[*models.Comment]{
	Fields: []Field{
		{Name: FieldPostID, Required: true},
		{Name: FieldMessage, Required: true},
		{Name: FieldName, Required: true},
		{Name: FieldEmail},
		{Name: FieldURL, Parse: ParseAbsoluteURL},
		{Name: FieldAvatar},
	},
	Rules: []Rule{
		EmailRule(FieldEmail),
	},
	Build: func(values Values) *models.Comment {
		return models.NewComment(models.CommentInput{
			PostID:  values.String(FieldPostID),
			Message: values.String(FieldMessage),
			Name:    values.String(FieldName),
			Email:   values.String(FieldEmail),
			URL:     values.URL(FieldURL),
			Avatar:  values.String(FieldAvatar),
		})
	},
}

// BindComment binds and validates a comment form submission
func BindComment(form Form) (*models.Comment, []string) {
	return CommentSchema.Bind(form)
}
