package platform

import (
	"bufio"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

const (
	keyCtrlC = 0x03
	keyCtrlD = 0x04
	keyEsc   = 0x1b
)

// KeyReader reads a single key press. ok is false on interrupt or end of input.
type KeyReader interface {
	ReadKey() (key rune, ok bool)
}

// NewKeyReader picks raw single-key reads when in is a terminal and falls back
// to reading whole lines otherwise. Line reads go through buffered, which must
// be the only buffered reader over in so that line prompts reading the same
// input do not consume the keys. A nil buffered wraps in.
func NewKeyReader(in *os.File, buffered *bufio.Reader) KeyReader {
	if in != nil && term.IsTerminal(int(in.Fd())) {
		return &TerminalKeys{in: in}
	}
	if buffered != nil {
		return NewBufferedLineKeys(buffered)
	}
	var r io.Reader = strings.NewReader("")
	if in != nil {
		r = in
	}
	return NewLineKeys(r)
}

// TerminalKeys switches the terminal to raw mode for the duration of one read.
type TerminalKeys struct {
	in *os.File
}

func (k *TerminalKeys) ReadKey() (rune, bool) {
	fd := int(k.in.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return 0, false
	}
	defer func() { _ = term.Restore(fd, state) }()
	return readKey(k.in)
}

// readKey decodes one key press. In raw mode a single read returns what the
// terminal sent for one key, so the trailing bytes of an escape sequence such
// as an arrow key (ESC [ A) arrive together with ESC and are dropped here
// instead of being seen as further key presses.
func readKey(r io.Reader) (rune, bool) {
	var buf [32]byte
	n, err := r.Read(buf[:])
	if n == 0 {
		if err == nil {
			return readKey(r)
		}
		return 0, false
	}
	switch buf[0] {
	case keyCtrlC, keyCtrlD:
		return 0, false
	case keyEsc:
		return keyEsc, true
	}
	if buf[0] < utf8.RuneSelf {
		return rune(buf[0]), true
	}
	size := sequenceLength(buf[0])
	if n < size {
		if _, err := io.ReadFull(r, buf[n:size]); err != nil {
			return utf8.RuneError, true
		}
	}
	key, _ := utf8.DecodeRune(buf[:size])
	return key, true
}

func sequenceLength(lead byte) int {
	switch {
	case lead&0xE0 == 0xC0:
		return 2
	case lead&0xF0 == 0xE0:
		return 3
	case lead&0xF8 == 0xF0:
		return 4
	default:
		return 1
	}
}

// LineKeys emulates single key reads on input that is not a terminal: each
// line yields its first character, an empty line yields '\n'.
type LineKeys struct {
	r *bufio.Reader
}

func NewLineKeys(r io.Reader) *LineKeys {
	return &LineKeys{r: bufio.NewReader(r)}
}

// NewBufferedLineKeys reads keys from a reader shared with other line readers
// of the same input.
func NewBufferedLineKeys(r *bufio.Reader) *LineKeys {
	return &LineKeys{r: r}
}

func (k *LineKeys) ReadKey() (rune, bool) {
	line, err := k.r.ReadString('\n')
	if err != nil && line == "" {
		return 0, false
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return '\n', true
	}
	key, _ := utf8.DecodeRuneInString(line)
	if key == keyCtrlC || key == keyCtrlD {
		return 0, false
	}
	return key, true
}
