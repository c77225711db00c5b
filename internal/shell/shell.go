// Package shell is the interactive command loop behind the ">> " prompt.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/glabrego/stack-cli/internal/app"
	"github.com/glabrego/stack-cli/internal/storage"
)

const (
	Prompt      = ">> "
	QueryPrompt = "query> "
	TagsPrompt  = "tags> "

	defaultHistoryLimit = 10

	// HistoryDisabledMessage answers history requests when nothing is recorded.
	HistoryDisabledMessage = "Search history is off. Set history_path, STACK_HISTORY_PATH or pass --history to keep it."
)

type LineReader interface {
	ReadLine(prompt string) (string, error)
}

type Browser interface {
	Run(ctx context.Context, query string, tags []string) error
}

type HistoryLister interface {
	History(ctx context.Context, limit int) ([]storage.Search, error)
}

// OpenFunc opens the permalink of a question and returns a status line.
type OpenFunc func(questionID int64) (string, error)

type Shell struct {
	lines   LineReader
	out     io.Writer
	browser Browser
	history HistoryLister
	open    OpenFunc
	logger  *slog.Logger
}

func New(lines LineReader, out io.Writer, browser Browser, history HistoryLister, open OpenFunc, logger *slog.Logger) *Shell {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Shell{
		lines:   lines,
		out:     out,
		browser: browser,
		history: history,
		open:    open,
		logger:  logger,
	}
}

// Run reads commands until quit, exit or end of input.
func (s *Shell) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := s.lines.ReadLine(Prompt)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		quit, err := s.Execute(ctx, line)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}

// Execute runs one command line. quit reports whether the loop should stop.
// Command failures are reported to the user; only a cancelled context is
// returned as an error.
func (s *Shell) Execute(ctx context.Context, line string) (quit bool, err error) {
	name, args := splitCommand(line)
	if name == "" {
		return false, nil
	}
	s.logger.Debug("command", "name", name, "args", args)

	switch name {
	case "quit", "exit", "EOF":
		return true, nil
	case "help", "?":
		s.help(args)
	case "search":
		return false, s.search(ctx, args)
	case "open":
		s.openQuestion(args)
	case "history":
		s.listHistory(ctx, args)
	default:
		s.printf("*** Unknown syntax: %s\n", strings.TrimSpace(line))
	}
	return false, nil
}

func (s *Shell) search(ctx context.Context, query string) error {
	if query == "" {
		line, err := s.lines.ReadLine(QueryPrompt)
		if err != nil {
			return s.abandonPrompt(err)
		}
		query = line
	}
	rawTags, err := s.lines.ReadLine(TagsPrompt)
	if err != nil {
		return s.abandonPrompt(err)
	}

	err = s.browser.Run(ctx, query, strings.Fields(rawTags))
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if err != nil {
		s.printf("Search failed: %v\n", err)
	}
	return nil
}

// abandonPrompt drops a half-entered search. End of input at a sub-prompt
// returns to the command prompt instead of leaving the shell.
func (s *Shell) abandonPrompt(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return fmt.Errorf("read search input: %w", err)
}

func (s *Shell) openQuestion(arg string) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id < 1 {
		s.printf("usage: open question-id\n")
		return
	}
	if s.open == nil {
		s.printf("Opening questions is not available.\n")
		return
	}
	status, err := s.open(id)
	if err != nil {
		s.printf("Could not open question %d: %v\n", id, err)
		return
	}
	s.printf("%s\n", status)
}

func (s *Shell) listHistory(ctx context.Context, arg string) {
	limit := defaultHistoryLimit
	if arg != "" {
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 {
			s.printf("usage: history [count]\n")
			return
		}
		limit = n
	}
	if s.history == nil {
		s.printf("%s\n", HistoryDisabledMessage)
		return
	}

	searches, err := s.history.History(ctx, limit)
	if errors.Is(err, app.ErrHistoryDisabled) {
		s.printf("%s\n", HistoryDisabledMessage)
		return
	}
	if err != nil {
		s.printf("Could not load search history: %v\n", err)
		return
	}
	WriteHistory(s.out, searches)
}

func (s *Shell) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.out, format, args...)
}

func splitCommand(line string) (name, args string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", ""
	}
	if line[0] == '?' {
		return "?", strings.TrimSpace(line[1:])
	}
	name, args, _ = strings.Cut(line, " ")
	return name, strings.TrimSpace(args)
}
