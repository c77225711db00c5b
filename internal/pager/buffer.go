package pager

import (
	"bytes"
	"io"
)

// Buffer is the display buffer: renderers append text, the pager drains it
// one line at a time.
type Buffer struct {
	buf bytes.Buffer
}

func (b *Buffer) Write(p []byte) (int, error) {
	return b.buf.Write(p)
}

func (b *Buffer) WriteString(s string) (int, error) {
	return b.buf.WriteString(s)
}

// ReadLine removes and returns the next line including its newline. The last
// line may lack one. ok is false once the buffer is empty.
func (b *Buffer) ReadLine() (line string, ok bool) {
	if b.buf.Len() == 0 {
		return "", false
	}
	line, err := b.buf.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", false
	}
	return line, true
}

// Len is the number of bytes not yet drained.
func (b *Buffer) Len() int {
	return b.buf.Len()
}

func (b *Buffer) Reset() {
	b.buf.Reset()
}
