package msgs

// Replacement is substituted for device bytes without a glyph mapping.
const Replacement = '?'

// The device glyph ROM follows ASCII for the printable set it supports.
// The layout control characters (line break, right justify, page prefix
// and page list separators) are deliberately absent from the set.
const supported = ` !"#$%&'()*+,-./0123456789:;<=>?@` +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"abcdefghijklmnopqrstuvwxyz"

// glyphWidths gives the rendered width of each glyph in pixels, including
// inter-character spacing.
var glyphWidths = map[rune]int{
	' ': 3, '!': 2, '"': 4, '#': 5, '$': 4, '%': 5, '&': 5, '\'': 2,
	'(': 3, ')': 3, '*': 4, '+': 4, ',': 3, '-': 4, '.': 2, '/': 4,

	'0': 4, '1': 3, '2': 4, '3': 4, '4': 4,
	'5': 4, '6': 4, '7': 4, '8': 4, '9': 4,

	':': 2, ';': 3, '<': 4, '=': 4, '>': 4, '?': 4, '@': 6,

	'A': 5, 'B': 5, 'C': 5, 'D': 5, 'E': 5, 'F': 5, 'G': 5, 'H': 5,
	'I': 3, 'J': 4, 'K': 5, 'L': 5, 'M': 6, 'N': 5, 'O': 5, 'P': 5,
	'Q': 5, 'R': 5, 'S': 5, 'T': 5, 'U': 5, 'V': 5, 'W': 6, 'X': 5,
	'Y': 5, 'Z': 5,

	'a': 4, 'b': 4, 'c': 4, 'd': 4, 'e': 4, 'f': 3, 'g': 4, 'h': 4,
	'i': 2, 'j': 3, 'k': 4, 'l': 2, 'm': 6, 'n': 4, 'o': 4, 'p': 4,
	'q': 4, 'r': 3, 's': 4, 't': 3, 'u': 4, 'v': 4, 'w': 6, 'x': 4,
	'y': 4, 'z': 4,
}

// glyphAliases lists additional device codes rendering the same glyph as
// an entry in the base set. Because of these the decode table is not an
// inverse of the encode table.
var glyphAliases = map[byte]rune{
	0x60: '\'', // grave renders as apostrophe
	0x91: '\'', // curly quotes fall back to straight ones
	0x92: '\'',
	0x93: '"',
	0x94: '"',
	0xC4: 'A', // accented glyphs render as their base letter
	0xD6: 'O',
	0xDC: 'U',
	0xE4: 'a',
	0xF6: 'o',
	0xFC: 'u',
}

var (
	glyphCodes = make(map[rune]byte, len(supported))
	glyphChars = make(map[byte]rune, len(supported)+len(glyphAliases))
)

func init() {
	for _, r := range supported {
		glyphCodes[r] = byte(r)
		glyphChars[byte(r)] = r
	}
	for c, r := range glyphAliases {
		glyphChars[c] = r
	}
}
