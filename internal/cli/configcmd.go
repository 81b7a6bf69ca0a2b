package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	var serverURL, author string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or update CLI settings",
		Long:  "Show the saved CLI settings, or update them with --server and --author.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("server") || flags.Changed("author") {
				if flags.Changed("server") {
					cfg.ServerURL = serverURL
				}
				if flags.Changed("author") {
					cfg.Author = author
				}
				if err := saveConfig(cfg); err != nil {
					return err
				}
			}

			if isJSON() {
				return printJSON(cmd.OutOrStdout(), cfg)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Server:  %s\n", getServerURL())
			if a := getAuthor(); a != "" {
				fmt.Fprintf(out, "Author:  %s\n", a)
			} else {
				fmt.Fprintln(out, "Author:  (server default)")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&serverURL, "server", "", "server URL to save")
	cmd.Flags().StringVar(&author, "author", "", "default author name to save")
	return cmd
}
