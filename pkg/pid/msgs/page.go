package msgs

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Animate selects how a page is brought onto the display.
type Animate byte

// Animation device codes.
const (
	AnimateNone    Animate = 0x00
	AnimateVScroll Animate = 0x1D
	AnimateHScroll Animate = 0x2F
)

// Tag returns the one-letter tag used in the page string form.
func (a Animate) Tag() string {
	switch a {
	case AnimateVScroll:
		return "V"
	case AnimateHScroll:
		return "H"
	default:
		return "N"
	}
}

func animateFromTag(tag byte) (Animate, bool) {
	switch tag {
	case 'N':
		return AnimateNone, true
	case 'V':
		return AnimateVScroll, true
	case 'H':
		return AnimateHScroll, true
	}
	return 0, false
}

func animateFromByte(b byte) (Animate, bool) {
	switch a := Animate(b); a {
	case AnimateNone, AnimateVScroll, AnimateHScroll:
		return a, true
	}
	return 0, false
}

// Control characters allowed in page text besides the glyph set.
const (
	LineBreak    = '_' // starts a new line
	RightJustify = '~' // splits a line into left and right aligned halves
)

// PageSep separates the animate/delay prefix from the text in the page
// string form.
const PageSep = '^'

// DisplayWidth is the width of the display in pixels.
const DisplayWidth = 120

// MaxDelay is the longest page delay in seconds representable on the wire.
const MaxDelay = 63

// Defaults for a directly parsed page string.
const (
	DefaultAnimate = AnimateNone
	DefaultDelay   = 5
)

const (
	lineBreakByte byte = 0x0A
	fillByte      byte = 0xFF
)

// Page is one timed, animated screenful of text in a display message.
type Page struct {
	Animate Animate
	Delay   int // seconds the page stays on screen, 0..63
	Text    string
}

// ParsePage parses the compact page form "[animate][delay]^text". A
// missing prefix, or a missing part of it, falls back to the supplied
// defaults. The text portion may itself contain the separator.
func ParsePage(s string, defAnimate Animate, defDelay int) (Page, error) {
	p := Page{Animate: defAnimate, Delay: defDelay}
	if i := strings.IndexByte(s, PageSep); i >= 0 && parsePagePrefix(s[:i], &p) {
		s = s[i+1:]
	}
	if err := checkPageText(s); err != nil {
		return Page{}, err
	}
	if p.Delay < 0 || p.Delay > MaxDelay {
		return Page{}, &RangeError{Field: "delay", Value: p.Delay}
	}
	p.Text = s
	return p, nil
}

// parsePagePrefix applies an "[animate][delay]" prefix to p. It reports
// false, leaving p untouched, when the prefix does not have that shape.
func parsePagePrefix(prefix string, p *Page) bool {
	rest := prefix
	animate := p.Animate
	if len(rest) > 0 {
		if a, ok := animateFromTag(rest[0]); ok {
			animate, rest = a, rest[1:]
		}
	}
	for i := 0; i < len(rest); i++ {
		if rest[i] < '0' || rest[i] > '9' {
			return false
		}
	}
	delay := p.Delay
	if len(rest) > 0 {
		delay, _ = strconv.Atoi(rest)
	}
	p.Animate, p.Delay = animate, delay
	return true
}

func checkPageText(text string) error {
	var bad []rune
	for _, r := range text {
		if r == LineBreak || r == RightJustify {
			continue
		}
		if _, ok := glyphCodes[r]; !ok {
			bad = append(bad, r)
		}
	}
	if len(bad) > 0 {
		return &InvalidCharacterError{Chars: string(bad)}
	}
	return nil
}

// String renders the page in its compact form with explicit animate and
// delay, the exact inverse of ParsePage.
func (p Page) String() string {
	return fmt.Sprintf("%s%d%c%s", p.Animate.Tag(), p.Delay, PageSep, p.Text)
}

// Bytes encodes the page for the device: animation code, leading blank
// line count, delay in quarter seconds, a zero byte, then the encoded
// lines joined by the line break byte.
func (p Page) Bytes() ([]byte, error) {
	if p.Delay < 0 || p.Delay > MaxDelay {
		return nil, &RangeError{Field: "delay", Value: p.Delay}
	}
	// leading line breaks become blank lines carried in the header and do
	// not animate
	text := p.Text
	offset := 0
	for offset < len(text) && text[offset] == LineBreak {
		offset++
	}
	text = text[offset:]

	var lines [][]byte
	for _, line := range strings.Split(text, string(rune(LineBreak))) {
		enc, err := encodeLine(line)
		if err != nil {
			return nil, err
		}
		lines = append(lines, enc)
	}
	b := []byte{byte(p.Animate), byte(offset), byte(p.Delay * 4), 0x00}
	return append(b, bytes.Join(lines, []byte{lineBreakByte})...), nil
}

// encodeLine encodes one line, resolving a right-justify marker into space
// padding plus single-pixel filler bytes for the width remainder.
func encodeLine(line string) ([]byte, error) {
	i := strings.IndexRune(line, RightJustify)
	if i < 0 {
		return EncodeText(line)
	}
	left, right := line[:i], line[i+1:]
	lb, err := EncodeText(left)
	if err != nil {
		return nil, err
	}
	rb, err := EncodeText(right)
	if err != nil {
		return nil, err
	}
	lw, err := TextWidth(left)
	if err != nil {
		return nil, err
	}
	rw, err := TextWidth(right)
	if err != nil {
		return nil, err
	}
	pad := DisplayWidth - 2 - lw - rw
	if pad < 0 {
		return nil, &RangeError{Field: "line width", Value: lw + rw}
	}
	spaceWidth := glyphWidths[' ']
	out := lb
	for n := pad / spaceWidth; n > 0; n-- {
		out = append(out, glyphCodes[' '])
	}
	for n := pad % spaceWidth; n > 0; n-- {
		out = append(out, fillByte)
	}
	return append(out, rb...), nil
}

// PageFromBytes decodes the device representation of a page.
func PageFromBytes(b []byte) (Page, error) {
	if len(b) < 4 {
		return Page{}, &LengthError{Kind: "page", Len: len(b)}
	}
	animate, ok := animateFromByte(b[0])
	if !ok {
		return Page{}, &AnimateDecodeError{Byte: b[0]}
	}
	offset := int(b[1])
	delay := (int(b[2]) + 2) / 4 // nearest quarter-second multiple
	if b[3] != 0x00 {
		return Page{}, &UnexpectedByteError{Byte: b[3]}
	}

	var lines []string
	if body := bytes.TrimRight(b[4:], "\n"); len(body) > 0 {
		for _, line := range bytes.Split(body, []byte{lineBreakByte}) {
			lines = append(lines, decodeLine(line))
		}
	}
	text := strings.Repeat(string(rune(LineBreak)), offset) + strings.Join(lines, string(rune(LineBreak)))
	return Page{Animate: animate, Delay: delay, Text: text}, nil
}

// decodeLine decodes one line, trimming trailing spaces and rewriting a
// filler-byte run (and the padding spaces before it) back to the
// right-justify marker. A line padded purely with spaces carries no filler
// and is left as-is.
func decodeLine(b []byte) string {
	i := bytes.IndexByte(b, fillByte)
	if i < 0 {
		return strings.TrimRight(DecodeText(b), " ")
	}
	j := i
	for j < len(b) && b[j] == fillByte {
		j++
	}
	left := bytes.TrimRight(b[:i], " ")
	right := bytes.TrimRight(b[j:], " ")
	return DecodeText(left) + string(rune(RightJustify)) + DecodeText(right)
}
