package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check the connection to the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd)
		},
	}
}

func runStatus(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	serverURL := getServerURL()
	fmt.Fprintf(out, "Server:  %s\n", serverURL)

	if err := newAPIClient().Health(); err != nil {
		fmt.Fprintf(out, "Status:  ✗ cannot reach server (%v)\n", err)
		return nil
	}
	fmt.Fprintln(out, "Status:  ✓ connected")
	return nil
}
