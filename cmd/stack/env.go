package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/glabrego/stack-cli/internal/app"
	"github.com/glabrego/stack-cli/internal/browse"
	"github.com/glabrego/stack-cli/internal/config"
	"github.com/glabrego/stack-cli/internal/pager"
	"github.com/glabrego/stack-cli/internal/platform"
	"github.com/glabrego/stack-cli/internal/render/markup"
	"github.com/glabrego/stack-cli/internal/render/post"
	"github.com/glabrego/stack-cli/internal/stackexchange"
	"github.com/glabrego/stack-cli/internal/storage"
	"github.com/glabrego/stack-cli/internal/style"
)

// environment is everything a command needs, built once from configuration.
type environment struct {
	cfg     config.Config
	logger  *slog.Logger
	styler  style.Styler
	out     io.Writer
	repo    *storage.Repository
	service *app.Service

	// input is the one buffered reader over stdin. Shell lines and pager keys
	// both read through it when stdin is not a terminal.
	input *bufio.Reader
}

// Terminal and desktop hooks, replaced in tests.
var (
	stdin        = os.Stdin
	newKeyReader = func(buffered *bufio.Reader) pager.KeyReader { return platform.NewKeyReader(stdin, buffered) }
	openURL      = platform.OpenURLInBrowser
	copyURL      = platform.CopyURLToClipboard
)

func newEnvironment(cmd *cobra.Command) (*environment, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	env := &environment{
		cfg:    cfg,
		logger: logger,
		styler: style.New(cfg.Color, os.Stdout),
		out:    cmd.OutOrStdout(),
		input:  bufio.NewReader(stdin),
	}

	env.repo = openHistory(cmd.Context(), cfg.HistoryPath, logger)
	var history app.History
	if env.repo != nil {
		history = env.repo
	}
	client := stackexchange.NewClient(cfg, nil, logger)
	env.service = app.NewService(client, history, cfg.Site, logger)
	return env, nil
}

func (e *environment) Close() {
	if e.repo != nil {
		_ = e.repo.Close()
	}
}

// navigator wires the renderer and pager for one terminal.
func (e *environment) navigator() *browse.Navigator {
	tr := markup.New(e.styler, e.cfg.Columns())
	renderer := post.New(e.styler, tr)
	p := pager.New(e.out, newKeyReader(e.input), e.styler, e.cfg.LinesPerScreen())
	return browse.New(e.service, renderer, p, e.out, e.logger)
}

func (e *environment) openQuestion(id int64) (string, error) {
	url, err := platform.ValidateURL(e.cfg.QuestionLink(id))
	if err != nil {
		return "", err
	}
	return platform.OpenOrCopy(url, openURL, copyURL)
}

// loadConfig applies the global flags on top of the file and environment.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("configuration error: %w", err)
	}

	if cmd.Flags().Changed("color") {
		color, err := cmd.Flags().GetString("color")
		if err != nil {
			return config.Config{}, err
		}
		cfg.Color = color
	}
	if cmd.Flags().Changed("history") {
		path, err := cmd.Flags().GetString("history")
		if err != nil {
			return config.Config{}, err
		}
		cfg.HistoryPath = path
	}
	if verbose, err := cmd.Flags().GetBool("verbose"); err == nil && verbose {
		cfg.Verbose = true
	}
	if width, height, ok := platform.TerminalSize(os.Stdout, os.Stdin); ok {
		cfg = cfg.WithTerminalSize(width, height)
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("configuration error: %w", err)
	}
	return cfg, nil
}

// openHistory opens the search history database. History is off without a
// path, and any failure is logged and searching continues without it.
func openHistory(ctx context.Context, path string, logger *slog.Logger) *storage.Repository {
	if path == "" {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	repo, err := storage.NewRepository(path)
	if err != nil {
		logger.Warn("search history disabled", "path", path, "err", err)
		return nil
	}

	initCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := repo.Init(initCtx); err != nil {
		logger.Warn("search history disabled", "path", path, "err", err)
		_ = repo.Close()
		return nil
	}
	return repo
}

// setupLogger creates a structured logger based on verbosity setting.
func setupLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewTextHandler(os.Stderr, opts)
	return slog.New(handler)
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context, logger *slog.Logger) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			logger.Debug("received interrupt, cancelling")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigCh)
		cancel()
	}
}

// splitTags accepts "go,maps", "go maps" and repeated flags alike.
func splitTags(raw []string) []string {
	var tags []string
	for _, r := range raw {
		tags = append(tags, strings.FieldsFunc(r, func(c rune) bool {
			return c == ',' || c == ';' || c == ' ' || c == '\t'
		})...)
	}
	return tags
}

func parseQuestionID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid question id %q", raw)
	}
	return id, nil
}

func writeInfo(w io.Writer, cfg config.Config) {
	fmt.Fprintf(w, "stack %s\n", getVersion())
	fmt.Fprintln(w, "Search Stack Exchange questions and read the answers in the terminal.")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  API:      %s (site %s)\n", cfg.APIBaseURL, cfg.Site)
	fmt.Fprintf(w, "  Config:   %s\n", config.DefaultConfigPath())
	if cfg.HistoryPath == "" {
		fmt.Fprintln(w, "  History:  off")
	} else {
		fmt.Fprintf(w, "  History:  %s\n", cfg.HistoryPath)
	}
	fmt.Fprintf(w, "  Screen:   %d columns, %d lines per page\n", cfg.Columns(), cfg.LinesPerScreen())
}
