package lineinput

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
)

// Reader returns one trimmed line per call. io.EOF means the user is done.
type Reader interface {
	ReadLine(prompt string) (string, error)
}

// New picks the interactive prompt for terminals and plain line reads for
// pipes and files. Line reads go through buffered so that other readers of in
// (the pager's key fallback) see the input this reader has not consumed.
func New(in *os.File, buffered *bufio.Reader, out io.Writer) Reader {
	if isatty.IsTerminal(in.Fd()) || isatty.IsCygwinTerminal(in.Fd()) {
		return &Prompt{in: in, out: out}
	}
	if buffered == nil {
		buffered = bufio.NewReader(in)
	}
	return NewScanner(buffered, out)
}

type Prompt struct {
	in  io.Reader
	out io.Writer
}

func NewPrompt(in io.Reader, out io.Writer) *Prompt {
	return &Prompt{in: in, out: out}
}

func (p *Prompt) ReadLine(prompt string) (string, error) {
	program := tea.NewProgram(NewModel(prompt), tea.WithInput(p.in), tea.WithOutput(p.out))
	final, err := program.Run()
	if err != nil {
		return "", fmt.Errorf("run line prompt: %w", err)
	}
	m, ok := final.(Model)
	if !ok || m.Cancelled() {
		return "", io.EOF
	}
	return m.Value(), nil
}

// Scanner reads lines through a bufio.Reader that other line or key readers
// of the same input may share.
type Scanner struct {
	r   *bufio.Reader
	out io.Writer
}

// NewScanner reads lines from in. A *bufio.Reader is used as is.
func NewScanner(in io.Reader, out io.Writer) *Scanner {
	return &Scanner{r: bufio.NewReader(in), out: out}
}

func (s *Scanner) ReadLine(prompt string) (string, error) {
	_, _ = io.WriteString(s.out, prompt)
	line, err := s.r.ReadString('\n')
	if err != nil && line == "" {
		if errors.Is(err, io.EOF) {
			_, _ = io.WriteString(s.out, "\n")
			return "", io.EOF
		}
		return "", fmt.Errorf("read line: %w", err)
	}
	return strings.TrimSpace(line), nil
}
