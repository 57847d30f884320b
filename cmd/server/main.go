package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "comment-pr",
		Short: "Turns blog comment form posts into pull requests",
		Long: `comment-pr receives comment forms posted from a statically generated blog,
writes each comment as a YAML data file on its own branch of the blog's
repository and opens a pull request so the comment can be moderated.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newPreviewCmd())

	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
