package main

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/comment-pr/internal/validation"
	"github.com/spf13/cobra"
)

var errInvalidComment = errors.New("comment is invalid")

var previewFields = []string{
	validation.FieldPostID,
	validation.FieldMessage,
	validation.FieldName,
	validation.FieldEmail,
	validation.FieldURL,
	validation.FieldAvatar,
}

// newPreviewCmd binds a comment the way the server does and prints what
// would be committed, without contacting GitHub
func newPreviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Show the branch, file and YAML a comment would produce",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			form := url.Values{}
			for _, field := range previewFields {
				value, err := cmd.Flags().GetString(field)
				if err != nil {
					return err
				}
				form.Set(field, value)
			}

			comment, errs := validation.BindComment(form)
			if len(errs) > 0 {
				for _, msg := range errs {
					fmt.Fprintln(cmd.ErrOrStderr(), msg)
				}
				return errInvalidComment
			}

			doc, err := comment.YAML()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "branch:  %s\n", comment.BranchName())
			fmt.Fprintf(out, "file:    %s\n", comment.FilePath())
			fmt.Fprintf(out, "commit:  %s\n", comment.CommitMessage())
			fmt.Fprintln(out, "---")
			_, err = out.Write(doc)
			return err
		},
	}

	for _, field := range previewFields {
		cmd.Flags().String(field, "", "comment "+field)
	}

	return cmd
}
