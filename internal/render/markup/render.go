// Package markup converts question and answer bodies into terminal text.
//
// The body is parsed into an HTML tree and walked in document order. A small
// set of tags is reinterpreted as style tokens; every other tag is dropped and
// only its text is kept. Entities are decoded by the parser.
package markup

import (
	"html"
	"strings"

	nethtml "golang.org/x/net/html"

	"github.com/glabrego/stack-cli/internal/style"
)

const defaultWidth = 80

// Transformer renders markup fragments with a fixed styler and separator width.
type Transformer struct {
	styler style.Styler
	width  int
}

func New(styler style.Styler, width int) *Transformer {
	if styler == nil {
		styler = style.Plain{}
	}
	if width < 1 {
		width = defaultWidth
	}
	return &Transformer{styler: styler, width: width}
}

// Width is the length of the separator drawn for <hr>.
func (t *Transformer) Width() int {
	return t.width
}

// Render returns the text of markup with styling applied. It never fails:
// input the parser cannot make sense of comes back entity-decoded.
func (t *Transformer) Render(markup string) string {
	if strings.TrimSpace(markup) == "" {
		return ""
	}
	doc, err := nethtml.Parse(strings.NewReader("<html><body>" + markup + "</body></html>"))
	if err != nil {
		return html.UnescapeString(markup)
	}
	body := findBodyNode(doc)
	if body == nil {
		return html.UnescapeString(markup)
	}

	w := &walker{styler: t.styler, width: t.width}
	for child := body.FirstChild; child != nil; child = child.NextSibling {
		w.walk(child)
	}
	return w.b.String()
}

func findBodyNode(node *nethtml.Node) *nethtml.Node {
	if node == nil {
		return nil
	}
	if node.Type == nethtml.ElementNode && strings.EqualFold(node.Data, "body") {
		return node
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if found := findBodyNode(child); found != nil {
			return found
		}
	}
	return nil
}
