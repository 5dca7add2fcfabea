package msgs

import "strings"

// EncodeText maps text through the device glyph table. All unsupported
// characters are collected and reported together, not just the first.
func EncodeText(text string) ([]byte, error) {
	b := make([]byte, 0, len(text))
	var bad []rune
	for _, r := range text {
		c, ok := glyphCodes[r]
		if !ok {
			bad = append(bad, r)
			continue
		}
		b = append(b, c)
	}
	if len(bad) > 0 {
		return nil, &InvalidCharacterError{Chars: string(bad)}
	}
	return b, nil
}

// DecodeText maps device bytes back to text. Bytes without a glyph mapping
// decode to the replacement character; decoding never fails. Several
// distinct byte values decode to the same character, so DecodeText is not
// an inverse of EncodeText.
func DecodeText(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, c := range b {
		r, ok := glyphChars[c]
		if !ok {
			r = Replacement
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// TextWidth returns the rendered width of text in pixels.
func TextWidth(text string) (int, error) {
	var w int
	for _, r := range text {
		pw, ok := glyphWidths[r]
		if !ok {
			return 0, &UnknownWidthError{Char: r}
		}
		w += pw
	}
	return w, nil
}
