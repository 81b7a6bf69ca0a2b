package cli

import (
	"github.com/spf13/cobra"

	"github.com/evcraddock/threads/internal/comment"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a comment and its replies",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}
}

func runShow(cmd *cobra.Command, args []string) error {
	c, err := newAPIClient().GetComment(args[0])
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), c)
	}

	printThread(cmd.OutOrStdout(), []comment.Comment{*c}, 0)
	return nil
}
