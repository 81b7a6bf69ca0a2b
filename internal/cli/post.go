package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newPostCmd() *cobra.Command {
	var author string

	cmd := &cobra.Command{
		Use:   `post "text"`,
		Short: "Post a top-level comment",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if strings.TrimSpace(text) == "" {
				return fmt.Errorf("comment text is required")
			}

			c, err := newAPIClient().PostComment(text, authorOrDefault(author))
			if err != nil {
				return err
			}
			if isJSON() {
				return printJSON(cmd.OutOrStdout(), c)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Comment %s posted.\n", c.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&author, "author", "", "author name")
	return cmd
}

func newReplyCmd() *cobra.Command {
	var author string

	cmd := &cobra.Command{
		Use:   `reply <id> "text"`,
		Short: "Reply to a comment",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args[1:], " ")
			if strings.TrimSpace(text) == "" {
				return fmt.Errorf("reply text is required")
			}

			c, err := newAPIClient().Reply(args[0], text, authorOrDefault(author))
			if err != nil {
				return err
			}
			if isJSON() {
				return printJSON(cmd.OutOrStdout(), c)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reply %s posted to %s.\n", c.ID, args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&author, "author", "", "author name")
	return cmd
}

func newUpvoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upvote <id>",
		Short: "Upvote a comment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			votes, err := newAPIClient().Upvote(args[0])
			if err != nil {
				return err
			}
			if isJSON() {
				return printJSON(cmd.OutOrStdout(), map[string]interface{}{
					"id":    args[0],
					"votes": votes,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Comment %s now has %s.\n", args[0], formatVotes(votes))
			return nil
		},
	}
}

// authorOrDefault prefers the --author flag over the configured author.
func authorOrDefault(flag string) string {
	if flag != "" {
		return flag
	}
	return getAuthor()
}
