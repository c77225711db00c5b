package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glabrego/stack-cli/internal/app"
	"github.com/glabrego/stack-cli/internal/shell"
)

const defaultHistoryLimit = 20

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent searches",
		Long:  `History lists the most recent searches, newest first. Only the query, tags and
result count are kept, and only when history is switched on with history_path,
STACK_HISTORY_PATH or --history.`,
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", defaultHistoryLimit, "Number of searches to list")

	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}

	env, err := newEnvironment(cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	searches, err := env.service.History(cmd.Context(), limit)
	if errors.Is(err, app.ErrHistoryDisabled) {
		fmt.Fprintln(cmd.OutOrStdout(), shell.HistoryDisabledMessage)
		return nil
	}
	if err != nil {
		return err
	}
	shell.WriteHistory(cmd.OutOrStdout(), searches)
	return nil
}
