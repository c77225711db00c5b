package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/glabrego/stack-cli/internal/config"
	"github.com/glabrego/stack-cli/internal/shell"
	"github.com/glabrego/stack-cli/internal/tui/lineinput"
)

// NewRootCmd creates the root command. Without a subcommand it starts the
// interactive shell.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stack",
		Short: "Search Stack Exchange questions and answers from the terminal",
		Long: `stack searches a Stack Exchange site and shows each matching question,
then its answers on request, one screenful at a time.

At the ">> " prompt:
  search [query]   search, asking for the query and tags when needed
  open <id>        open a question in the web browser
  history [n]      list recent searches
  help, quit

While reading, press [a] for answers, [n] for the next item and [b] to go back.

Examples:
  # Start the interactive shell
  stack

  # Run a single search
  stack --search "nil map assignment" --tags go maps
  stack search nil map assignment -t go`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          rootArgs,
		RunE:          runRootCmd,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().String("config", "", "Configuration file (default "+config.DefaultConfigPath()+")")
	cmd.PersistentFlags().String("color", "", "Colored output: auto, always or never")
	cmd.PersistentFlags().String("history", "", "Keep search history in this sqlite file (default "+config.DefaultHistoryPath()+" when given without a value)")
	cmd.PersistentFlags().Lookup("history").NoOptDefVal = config.DefaultHistoryPath()

	cmd.Flags().BoolP("info", "i", false, "Print information about stack and exit")
	cmd.Flags().StringP("search", "s", "", "Run a single search for this query and exit")
	cmd.Flags().StringSliceP("tags", "t", nil, "Tags for --search: --tags go http, --tags go,http or repeated")

	cmd.AddCommand(NewSearchCmd())
	cmd.AddCommand(NewOpenCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	return run(NewRootCmd(), os.Args[1:])
}

func run(cmd *cobra.Command, args []string) int {
	cmd.SetArgs(args)
	err := cmd.Execute()
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		resetStyling()
		fmt.Fprintln(cmd.OutOrStdout())
		return 0
	default:
		resetStyling()
		fmt.Fprintln(cmd.ErrOrStderr(), "stack:", err)
		return 1
	}
}

// rootArgs accepts positional words only as further tags after --tags.
func rootArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 && !cmd.Flags().Changed("tags") {
		return fmt.Errorf("unknown command %q for %q", args[0], cmd.CommandPath())
	}
	return nil
}

func runRootCmd(cmd *cobra.Command, args []string) error {
	info, err := cmd.Flags().GetBool("info")
	if err != nil {
		return err
	}
	query, err := cmd.Flags().GetString("search")
	if err != nil {
		return err
	}
	tags, err := cmd.Flags().GetStringSlice("tags")
	if err != nil {
		return err
	}
	tags = append(tags, args...)

	env, err := newEnvironment(cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	if info {
		writeInfo(cmd.OutOrStdout(), env.cfg)
		return nil
	}

	ctx, cancel := signalContext(cmd.Context(), env.logger)
	defer cancel()

	if query != "" {
		return env.navigator().Run(ctx, query, splitTags(tags))
	}

	sh := shell.New(
		lineinput.New(stdin, env.input, cmd.OutOrStdout()),
		cmd.OutOrStdout(),
		env.navigator(),
		env.service,
		env.openQuestion,
		env.logger,
	)
	return sh.Run(ctx)
}
