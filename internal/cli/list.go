package cli

import (
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	var page, limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List comment threads",
		Long:  "List one page of top-level comments, newest first, with their replies.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, page, limit)
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&limit, "limit", 0, "threads per page (default: server default)")

	return cmd
}

func runList(cmd *cobra.Command, page, limit int) error {
	p, err := newAPIClient().ListComments(page, limit)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), p)
	}

	printPage(cmd.OutOrStdout(), p)
	return nil
}
