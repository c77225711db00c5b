package style

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Styler turns tokens into terminal output.
type Styler interface {
	// Open returns the sequence that switches the given tokens on.
	Open(tokens ...Token) string
	// Reset returns the sequence that clears every active style.
	Reset() string
	// Render wraps text with the tokens and a trailing reset.
	Render(text string, tokens ...Token) string
}

// New picks a styler for out. mode is one of "auto", "always" or "never";
// "auto" styles only when out is a terminal.
func New(mode string, out *os.File) Styler {
	var w io.Writer
	if out != nil {
		w = out
	}
	switch mode {
	case "always":
		return NewANSI(w)
	case "never":
		return Plain{}
	}
	if out != nil && (isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd())) {
		return NewANSI(w)
	}
	return Plain{}
}

// Plain is the no-op styler.
type Plain struct{}

func (Plain) Open(...Token) string { return "" }

func (Plain) Reset() string { return "" }

func (Plain) Render(text string, _ ...Token) string { return text }

// ANSI emits basic 16-color escape sequences.
type ANSI struct {
	renderer *lipgloss.Renderer
}

func NewANSI(w io.Writer) *ANSI {
	if w == nil {
		w = io.Discard
	}
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(termenv.ANSI)
	return &ANSI{renderer: r}
}

func (a *ANSI) Open(tokens ...Token) string {
	seqs := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if seq := sequence(t); seq != "" {
			seqs = append(seqs, seq)
		}
	}
	if len(seqs) == 0 {
		return ""
	}
	return termenv.CSI + strings.Join(seqs, ";") + "m"
}

func (a *ANSI) Reset() string {
	return termenv.CSI + termenv.ResetSeq + "m"
}

func (a *ANSI) Render(text string, tokens ...Token) string {
	if text == "" {
		return ""
	}
	st := a.renderer.NewStyle()
	for _, t := range tokens {
		switch t.Kind {
		case KindBold:
			st = st.Bold(true)
		case KindUnderline:
			st = st.Underline(true)
		case KindBlink:
			st = st.Blink(true)
		case KindColor:
			if idx := t.Color.Index(); idx >= 0 {
				st = st.Foreground(lipgloss.ANSIColor(idx))
			}
		case KindBackground:
			if idx := t.Color.Index(); idx >= 0 {
				st = st.Background(lipgloss.ANSIColor(idx))
			}
		}
	}
	return st.Render(text)
}

func sequence(t Token) string {
	switch t.Kind {
	case KindReset:
		return termenv.ResetSeq
	case KindBold:
		return termenv.BoldSeq
	case KindUnderline:
		return termenv.UnderlineSeq
	case KindBlink:
		return termenv.BlinkSeq
	case KindColor:
		if idx := t.Color.Index(); idx >= 0 {
			return termenv.ANSIColor(idx).Sequence(false)
		}
	case KindBackground:
		if idx := t.Color.Index(); idx >= 0 {
			return termenv.ANSIColor(idx).Sequence(true)
		}
	}
	return ""
}

// Tagged renders tokens as readable markers such as "{bold}" and "{/}".
// It is meant for golden output and debugging.
type Tagged struct{}

func (Tagged) Open(tokens ...Token) string {
	if len(tokens) == 0 {
		return ""
	}
	names := make([]string, len(tokens))
	for i, t := range tokens {
		names[i] = t.String()
	}
	return "{" + strings.Join(names, ",") + "}"
}

func (Tagged) Reset() string { return "{/}" }

func (t Tagged) Render(text string, tokens ...Token) string {
	if text == "" {
		return ""
	}
	return t.Open(tokens...) + text + t.Reset()
}
