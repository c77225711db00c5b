package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/glabrego/stack-cli/internal/stackexchange"
	"github.com/glabrego/stack-cli/internal/storage"
)

// ErrHistoryDisabled is returned by History when no history store is configured.
var ErrHistoryDisabled = errors.New("search history is disabled")

type Fetcher interface {
	Search(ctx context.Context, query string, tags []string) ([]stackexchange.Question, error)
	ListAnswers(ctx context.Context, questionID int64) ([]stackexchange.Answer, error)
	PageSize() int
}

type History interface {
	RecordSearch(ctx context.Context, s storage.Search) error
	ListSearches(ctx context.Context, limit int) ([]storage.Search, error)
}

type Service struct {
	fetcher Fetcher
	history History
	site    string
	logger  *slog.Logger
	now     func() time.Time
}

// NewService combines a fetcher with an optional search history. A nil history
// disables recording.
func NewService(fetcher Fetcher, history History, site string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{
		fetcher: fetcher,
		history: history,
		site:    site,
		logger:  logger,
		now:     time.Now,
	}
}

func (s *Service) PageSize() int {
	return s.fetcher.PageSize()
}

// Search fetches one page of questions and records the query. Recording
// failures are logged and never fail the search.
func (s *Service) Search(ctx context.Context, query string, tags []string) ([]stackexchange.Question, error) {
	questions, err := s.fetcher.Search(ctx, query, tags)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	if s.history != nil {
		record := storage.Search{
			Query:       query,
			Tags:        tags,
			Site:        s.site,
			ResultCount: len(questions),
			SearchedAt:  s.now(),
		}
		if err := s.history.RecordSearch(ctx, record); err != nil {
			s.logger.Warn("record search history", "query", query, "err", err)
		}
	}
	return questions, nil
}

func (s *Service) ListAnswers(ctx context.Context, questionID int64) ([]stackexchange.Answer, error) {
	answers, err := s.fetcher.ListAnswers(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("answers of question %d: %w", questionID, err)
	}
	return answers, nil
}

// History lists recent searches, newest first.
func (s *Service) History(ctx context.Context, limit int) ([]storage.Search, error) {
	if s.history == nil {
		return nil, ErrHistoryDisabled
	}
	searches, err := s.history.ListSearches(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("load search history: %w", err)
	}
	return searches, nil
}
