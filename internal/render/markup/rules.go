package markup

import "github.com/glabrego/stack-cli/internal/style"

var headingTags = []string{"h1", "h2", "h3", "h4", "h5", "h6"}

// Tags reinterpreted as styles. Headings appear in both the code and bold
// groups and receive both.
var (
	codeTags      = append([]string{"code", "blockquote"}, headingTags...)
	boldTags      = append([]string{"strong", "b"}, headingTags...)
	underlineTags = []string{"em", "strike"}
	blinkTags     = []string{"sup", "sub"}
)

const separatorRune = "_"

var separatorTokens = []style.Token{style.ColorCode(style.Red)}

var tagRules = buildTagRules()

func buildTagRules() map[string][]style.Token {
	rules := make(map[string][]style.Token)
	add := func(tags []string, tok style.Token) {
		for _, tag := range tags {
			rules[tag] = append(rules[tag], tok)
		}
	}
	add(codeTags, style.ColorCode(style.Cyan))
	add(boldTags, style.Bold)
	add(underlineTags, style.Underline)
	add(blinkTags, style.Blink)
	return rules
}

func tagTokens(tag string) []style.Token {
	return tagRules[tag]
}
