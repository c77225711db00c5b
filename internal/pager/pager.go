// Package pager shows buffered text a screenful at a time and reads the single
// key presses that drive the menus.
package pager

import (
	"errors"
	"io"
	"slices"
	"unicode"

	"github.com/glabrego/stack-cli/internal/style"
)

// ErrInterrupted is returned by WaitForKey when input ended or the user pressed
// the interrupt key.
var ErrInterrupted = errors.New("input interrupted")

// KeyReader reads one key press without waiting for a newline. ok is false when
// no key is available or the read was interrupted.
type KeyReader interface {
	ReadKey() (key rune, ok bool)
}

type Pager struct {
	out            io.Writer
	keys           KeyReader
	styler         style.Styler
	linesPerScreen int
	buf            Buffer
}

func New(out io.Writer, keys KeyReader, styler style.Styler, linesPerScreen int) *Pager {
	if styler == nil {
		styler = style.Plain{}
	}
	if linesPerScreen < 1 {
		linesPerScreen = 1
	}
	return &Pager{
		out:            out,
		keys:           keys,
		styler:         styler,
		linesPerScreen: linesPerScreen,
	}
}

// Write appends to the display buffer.
func (p *Pager) Write(b []byte) (int, error) {
	return p.buf.Write(b)
}

// LinesPerScreen is the size of one screenful.
func (p *Pager) LinesPerScreen() int {
	return p.linesPerScreen
}

// Buffered is the number of bytes waiting to be shown.
func (p *Pager) Buffered() int {
	return p.buf.Len()
}

// Show drains the buffer linesPerScreen lines at a time and waits for a key
// after every full screenful. Lines left after the last full screen are
// written without a final wait. A failed key read abandons the rest of the
// buffer, resets styling and reports false. The buffer is always empty when
// Show returns.
func (p *Pager) Show() bool {
	defer p.buf.Reset()
	for {
		shown := 0
		for shown < p.linesPerScreen {
			line, ok := p.buf.ReadLine()
			if !ok {
				break
			}
			_, _ = io.WriteString(p.out, line)
			shown++
		}
		if shown < p.linesPerScreen {
			return true
		}
		if _, ok := p.keys.ReadKey(); !ok {
			_, _ = io.WriteString(p.out, p.styler.Reset()+"\n")
			return false
		}
	}
}

// Discard drops whatever is buffered.
func (p *Pager) Discard() {
	p.buf.Reset()
}

// WaitForKey prints prompt and reads keys until one of allowed is pressed,
// re-prompting after every other key. Each pressed key is echoed.
func (p *Pager) WaitForKey(prompt string, allowed ...rune) (rune, error) {
	for {
		_, _ = io.WriteString(p.out, prompt)
		key, ok := p.keys.ReadKey()
		if !ok {
			_, _ = io.WriteString(p.out, p.styler.Reset()+"\n")
			return 0, ErrInterrupted
		}
		p.echo(key)
		if slices.Contains(allowed, key) {
			return key, nil
		}
	}
}

func (p *Pager) echo(key rune) {
	if unicode.IsPrint(key) {
		_, _ = io.WriteString(p.out, string(key))
	}
	_, _ = io.WriteString(p.out, "\n")
}
