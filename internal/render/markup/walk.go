package markup

import (
	"strings"

	nethtml "golang.org/x/net/html"

	"github.com/glabrego/stack-cli/internal/style"
)

// walker keeps a stack of the styles opened by enclosing tags. Closing a tag
// resets the terminal and re-opens whatever is still active, so nested ranges
// keep their boundaries.
type walker struct {
	styler style.Styler
	width  int
	b      strings.Builder
	active [][]style.Token
}

func (w *walker) walk(node *nethtml.Node) {
	switch node.Type {
	case nethtml.TextNode:
		w.b.WriteString(node.Data)
	case nethtml.ElementNode:
		tag := strings.ToLower(node.Data)
		switch tag {
		case "script", "style", "noscript":
			return
		case "hr":
			w.separator()
			return
		case "br":
			w.b.WriteString("\n")
			return
		}

		tokens := tagTokens(tag)
		if len(tokens) > 0 {
			w.push(tokens)
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			w.walk(child)
		}
		if len(tokens) > 0 {
			w.pop()
		}
	}
}

func (w *walker) push(tokens []style.Token) {
	w.active = append(w.active, tokens)
	w.b.WriteString(w.styler.Open(tokens...))
}

func (w *walker) pop() {
	w.active = w.active[:len(w.active)-1]
	w.b.WriteString(w.styler.Reset())
	w.reopen()
}

func (w *walker) reopen() {
	if len(w.active) == 0 {
		return
	}
	tokens := make([]style.Token, 0, len(w.active)*2)
	for _, level := range w.active {
		tokens = append(tokens, level...)
	}
	w.b.WriteString(w.styler.Open(tokens...))
}

func (w *walker) separator() {
	w.b.WriteString(w.styler.Open(separatorTokens...))
	w.b.WriteString(strings.Repeat(separatorRune, w.width))
	w.b.WriteString(w.styler.Reset())
	w.reopen()
	w.b.WriteString("\n")
}
