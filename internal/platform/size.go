package platform

import (
	"os"

	"golang.org/x/term"
)

var termGetSize = term.GetSize

// TerminalSize reports the size of the first of files that is a terminal.
func TerminalSize(files ...*os.File) (width, height int, ok bool) {
	for _, f := range files {
		if f == nil {
			continue
		}
		w, h, err := termGetSize(int(f.Fd()))
		if err != nil || w <= 0 || h <= 0 {
			continue
		}
		return w, h, true
	}
	return 0, 0, false
}
