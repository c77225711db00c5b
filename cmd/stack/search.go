package main

import (
	"strings"

	"github.com/spf13/cobra"
)

// NewSearchCmd creates the search command.
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>...",
		Short: "Search questions and page through the results",
		Long: `Search runs one query against the configured site and shows the results
one question at a time. Press [a] to read the answers of the current question,
[n] for the next question and [b] to stop.

Examples:
  stack search how to reverse a slice
  stack search "context deadline" -t go -t http`,
		Args: cobra.MinimumNArgs(1),
		RunE: runSearchCmd,
	}

	cmd.Flags().StringSliceP("tags", "t", nil, "Restrict results to these tags")

	return cmd
}

func runSearchCmd(cmd *cobra.Command, args []string) error {
	tags, err := cmd.Flags().GetStringSlice("tags")
	if err != nil {
		return err
	}

	env, err := newEnvironment(cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	ctx, cancel := signalContext(cmd.Context(), env.logger)
	defer cancel()

	return env.navigator().Run(ctx, strings.Join(args, " "), splitTags(tags))
}
