// Package browse walks a page of search results: each question is shown in
// turn, and its answers on request, driven by single key presses.
package browse

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/glabrego/stack-cli/internal/pager"
	"github.com/glabrego/stack-cli/internal/stackexchange"
)

type Fetcher interface {
	Search(ctx context.Context, query string, tags []string) ([]stackexchange.Question, error)
	ListAnswers(ctx context.Context, questionID int64) ([]stackexchange.Answer, error)
	PageSize() int
}

type Renderer interface {
	WriteQuestion(w io.Writer, q stackexchange.Question) error
	WriteAnswer(w io.Writer, a stackexchange.Answer) error
}

// Pager buffers one rendered item and pages it out.
type Pager interface {
	io.Writer
	Show() bool
	Discard()
	WaitForKey(prompt string, allowed ...rune) (rune, error)
}

type Navigator struct {
	fetcher  Fetcher
	renderer Renderer
	pager    Pager
	out      io.Writer
	logger   *slog.Logger
}

func New(fetcher Fetcher, renderer Renderer, p Pager, out io.Writer, logger *slog.Logger) *Navigator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Navigator{
		fetcher:  fetcher,
		renderer: renderer,
		pager:    p,
		out:      out,
		logger:   logger,
	}
}

// session is the state of one Run.
type session struct {
	state     State
	query     string
	tags      []string
	questions []stackexchange.Question
	answers   []stackexchange.Answer
	question  int
	answer    int
}

// Run searches and lets the user step through the results until they go back
// from the question menu, the results run out or input is interrupted. Only a
// failed search is returned as an error.
func (n *Navigator) Run(ctx context.Context, query string, tags []string) error {
	s := &session{state: ListQuestions, query: query, tags: tags}
	for s.state != Done {
		if err := ctx.Err(); err != nil {
			n.pager.Discard()
			return err
		}
		from := s.state
		next, err := n.step(ctx, s)
		if errors.Is(err, pager.ErrInterrupted) {
			n.logger.Debug("input interrupted", "state", from)
			next, err = Done, nil
		}
		if err != nil {
			return err
		}
		n.logger.Debug("navigate", "from", from, "to", next)
		s.state = next
	}
	return nil
}

func (n *Navigator) step(ctx context.Context, s *session) (State, error) {
	switch s.state {
	case ListQuestions:
		return n.listQuestions(ctx, s)
	case ViewQuestion:
		return n.viewQuestion(s)
	case ListAnswers:
		return n.listAnswers(ctx, s), nil
	case ViewAnswer:
		return n.viewAnswer(s)
	case QuestionPrompt:
		return n.questionPrompt(s)
	default:
		return Done, nil
	}
}

func (n *Navigator) listQuestions(ctx context.Context, s *session) (State, error) {
	n.printf("Downloading question list (%d)...\n", n.fetcher.PageSize())
	questions, err := n.fetcher.Search(ctx, s.query, s.tags)
	if err != nil {
		return Done, err
	}
	if len(questions) == 0 {
		n.printf("No results.\n")
		return Done, nil
	}
	s.questions = questions
	s.question = 0
	return ViewQuestion, nil
}

func (n *Navigator) viewQuestion(s *session) (State, error) {
	q := s.questions[s.question]
	if err := n.page(func(w io.Writer) error { return n.renderer.WriteQuestion(w, q) }); err != nil {
		return Done, fmt.Errorf("render question %d: %w", q.ID, err)
	}

	key, err := n.pager.WaitForKey(questionMenu, keyAnswers, keyNext, keyBack)
	if err != nil {
		return Done, err
	}
	switch key {
	case keyAnswers:
		return ListAnswers, nil
	case keyNext:
		return n.nextQuestion(s), nil
	default:
		return Done, nil
	}
}

func (n *Navigator) listAnswers(ctx context.Context, s *session) State {
	q := s.questions[s.question]
	n.printf("Downloading answer list (%d)...\n", n.fetcher.PageSize())
	answers, err := n.fetcher.ListAnswers(ctx, q.ID)
	if err != nil {
		n.logger.Debug("list answers failed", "question_id", q.ID, "err", err)
		n.printf("Could not download answers: %v\n", err)
		return QuestionPrompt
	}
	if len(answers) == 0 {
		n.printf("No answers.\n")
		return QuestionPrompt
	}
	s.answers = answers
	s.answer = 0
	return ViewAnswer
}

func (n *Navigator) viewAnswer(s *session) (State, error) {
	a := s.answers[s.answer]
	if err := n.page(func(w io.Writer) error { return n.renderer.WriteAnswer(w, a) }); err != nil {
		return Done, fmt.Errorf("render answer %d: %w", a.ID, err)
	}

	key, err := n.pager.WaitForKey(answerMenu, keyNext, keyBack)
	if err != nil {
		return Done, err
	}
	if key == keyBack {
		return QuestionPrompt, nil
	}
	s.answer++
	if s.answer >= len(s.answers) {
		n.printf("No more answers.\n")
		return QuestionPrompt, nil
	}
	return ViewAnswer, nil
}

func (n *Navigator) questionPrompt(s *session) (State, error) {
	s.answers = nil
	key, err := n.pager.WaitForKey(nextMenu, keyNext, keyBack)
	if err != nil {
		return Done, err
	}
	if key == keyNext {
		return n.nextQuestion(s), nil
	}
	return Done, nil
}

func (n *Navigator) nextQuestion(s *session) State {
	s.question++
	if s.question >= len(s.questions) {
		n.printf("No more questions.\n")
		return Done
	}
	return ViewQuestion
}

// page replaces whatever the pager still holds with one rendered item and
// shows it. A cancelled page still leads to the item's menu.
func (n *Navigator) page(render func(io.Writer) error) error {
	n.pager.Discard()
	if err := render(n.pager); err != nil {
		n.pager.Discard()
		return err
	}
	if !n.pager.Show() {
		n.logger.Debug("page cancelled")
	}
	return nil
}

func (n *Navigator) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(n.out, format, args...)
}
