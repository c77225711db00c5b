// Package style describes terminal formatting as abstract tokens and turns them
// into escape sequences through a Styler. The Plain styler is used when no
// styling backend is available and produces the same text without escapes.
package style

import "strings"

type Kind int

const (
	KindReset Kind = iota
	KindBold
	KindUnderline
	KindBlink
	KindColor
	KindBackground
)

// Color names one of the eight basic terminal colors.
type Color string

const (
	Black   Color = "black"
	Red     Color = "red"
	Green   Color = "green"
	Yellow  Color = "yellow"
	Blue    Color = "blue"
	Magenta Color = "magenta"
	Cyan    Color = "cyan"
	White   Color = "white"
)

var colorIndex = map[Color]int{
	Black: 0, Red: 1, Green: 2, Yellow: 3, Blue: 4, Magenta: 5, Cyan: 6, White: 7,
}

// Index returns the ANSI index of c, or -1 for unknown names.
func (c Color) Index() int {
	if idx, ok := colorIndex[Color(strings.ToLower(string(c)))]; ok {
		return idx
	}
	return -1
}

// Token is a single formatting instruction.
type Token struct {
	Kind  Kind
	Color Color
}

var (
	Reset     = Token{Kind: KindReset}
	Bold      = Token{Kind: KindBold}
	Underline = Token{Kind: KindUnderline}
	Blink     = Token{Kind: KindBlink}
)

// ColorCode sets the foreground color.
func ColorCode(c Color) Token {
	return Token{Kind: KindColor, Color: c}
}

// Background sets the background color.
func Background(c Color) Token {
	return Token{Kind: KindBackground, Color: c}
}

func (t Token) String() string {
	switch t.Kind {
	case KindReset:
		return "reset"
	case KindBold:
		return "bold"
	case KindUnderline:
		return "underline"
	case KindBlink:
		return "blink"
	case KindColor:
		return string(t.Color)
	case KindBackground:
		return "bg-" + string(t.Color)
	default:
		return "unknown"
	}
}
