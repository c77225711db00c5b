// Package post formats questions and answers into text blocks for the pager.
package post

import (
	"io"
	"strconv"
	"strings"

	"github.com/glabrego/stack-cli/internal/render/markup"
	"github.com/glabrego/stack-cli/internal/stackexchange"
	"github.com/glabrego/stack-cli/internal/style"
)

var (
	delimiterTokens = []style.Token{style.Background(style.White), style.ColorCode(style.White)}
	labelTokens     = []style.Token{style.Bold}
)

type Renderer struct {
	styler style.Styler
	markup *markup.Transformer
	width  int
}

// New returns a renderer whose delimiter lines match the transformer width.
func New(styler style.Styler, tr *markup.Transformer) *Renderer {
	if styler == nil {
		styler = style.Plain{}
	}
	if tr == nil {
		tr = markup.New(styler, 0)
	}
	return &Renderer{styler: styler, markup: tr, width: tr.Width()}
}

func (r *Renderer) Question(q stackexchange.Question) string {
	var b strings.Builder
	r.delimiter(&b)
	b.WriteString(r.styler.Render(q.DisplayTitle(), style.ColorCode(style.Green)))
	b.WriteString("\n")
	r.field(&b, "ID", r.value(strconv.FormatInt(q.ID, 10), style.Blue))
	b.WriteString("\n")
	r.delimiter(&b)

	r.body(&b, q.Body)
	r.delimiter(&b)

	r.field(&b, "Score", r.value(strconv.Itoa(q.Score), style.Yellow))
	r.field(&b, "Tags", r.value(strings.Join(q.Tags, ", "), style.Blue))
	r.field(&b, "Author", r.value(q.Owner.Author(), style.Yellow))
	answers := r.value(strconv.Itoa(q.AnswerCount), style.Yellow)
	if q.HasAcceptedAnswer() {
		answers += r.value(", ", style.Yellow) + r.value("one accepted", style.Green)
	}
	r.field(&b, "Answers", answers)
	r.delimiter(&b)
	return b.String()
}

func (r *Renderer) Answer(a stackexchange.Answer) string {
	var b strings.Builder
	r.delimiter(&b)
	r.body(&b, a.Body)
	r.delimiter(&b)

	r.field(&b, "Score", r.value(strconv.Itoa(a.Score), style.Yellow))
	accepted := r.value("No", style.Red)
	if a.IsAccepted {
		accepted = r.value("Yes", style.Green)
	}
	r.field(&b, "Accepted", accepted)
	r.field(&b, "Author", r.value(a.Owner.Author(), style.Yellow))
	r.delimiter(&b)
	return b.String()
}

func (r *Renderer) WriteQuestion(w io.Writer, q stackexchange.Question) error {
	_, err := io.WriteString(w, r.Question(q))
	return err
}

func (r *Renderer) WriteAnswer(w io.Writer, a stackexchange.Answer) error {
	_, err := io.WriteString(w, r.Answer(a))
	return err
}

func (r *Renderer) body(b *strings.Builder, markup string) {
	b.WriteString(strings.TrimRight(r.markup.Render(markup), "\n"))
	b.WriteString("\n")
}

func (r *Renderer) field(b *strings.Builder, label, value string) {
	b.WriteString(r.styler.Render(label+": ", labelTokens...))
	b.WriteString(value)
	b.WriteString("\n")
}

func (r *Renderer) value(text string, color style.Color) string {
	return r.styler.Render(text, style.ColorCode(color))
}

func (r *Renderer) delimiter(b *strings.Builder) {
	b.WriteString(r.styler.Render(strings.Repeat("=", r.width), delimiterTokens...))
	b.WriteString("\n")
}
