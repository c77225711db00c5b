package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewOpenCmd creates the open command.
func NewOpenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open <question-id>",
		Short: "Open a question in the web browser",
		Long: `Open formats the question permalink for the given ID and opens it in the
default browser. When no browser can be launched the link is copied to the
clipboard instead.`,
		Args: cobra.ExactArgs(1),
		RunE: runOpenCmd,
	}
}

func runOpenCmd(cmd *cobra.Command, args []string) error {
	id, err := parseQuestionID(args[0])
	if err != nil {
		return err
	}

	env, err := newEnvironment(cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	status, err := env.openQuestion(id)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), status)
	return nil
}
