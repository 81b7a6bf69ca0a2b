// Package cli defines the cobra command tree for threads.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/evcraddock/threads/internal/client"
)

var flagFormat string

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "threads",
		Short:         "Threaded comment discussions",
		Long:          "Run a nested comment server and browse, post, reply to and upvote comments from the command line.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")

	root.AddCommand(
		newServeCmd(),
		newListCmd(),
		newShowCmd(),
		newPostCmd(),
		newReplyCmd(),
		newUpvoteCmd(),
		newStatusCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)

	return root
}

// newAPIClient creates an HTTP client for the threads API.
func newAPIClient() *client.Client {
	return client.New(getServerURL())
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == "json"
}
