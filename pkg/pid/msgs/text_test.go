package msgs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeText(t *testing.T) {
	b, err := EncodeText("12:34 FUNKYTOWN")
	require.NoError(t, err)
	require.Equal(t, []byte("12:34 FUNKYTOWN"), b)

	b, err = EncodeText("")
	require.NoError(t, err)
	require.Empty(t, b)
}

func TestEncodeTextInvalid(t *testing.T) {
	// every offending character is reported, not just the first
	_, err := EncodeText("naïve £5 ☂")
	var ice *InvalidCharacterError
	require.True(t, errors.As(err, &ice))
	require.Equal(t, "ï£☂", ice.Chars)

	// the layout control characters are not part of the text charset
	_, err = EncodeText("a_b~c")
	require.True(t, errors.As(err, &ice))
	require.Equal(t, "_~", ice.Chars)
}

func TestDecodeText(t *testing.T) {
	require.Equal(t, "ABC abc 09", DecodeText([]byte("ABC abc 09")))
	// unmapped bytes decode to the replacement character
	require.Equal(t, "A?B", DecodeText([]byte{'A', 0x7F, 'B'}))
	// alias codes share glyphs with the base set
	require.Equal(t, "A'a", DecodeText([]byte{0xC4, 0x92, 0xE4}))
}

func TestDecodeTextNotInverse(t *testing.T) {
	// several distinct byte values decode to the same character
	require.Equal(t, DecodeText([]byte{0x27}), DecodeText([]byte{0x60}))
	require.Equal(t, DecodeText([]byte{'O'}), DecodeText([]byte{0xD6}))
}

func TestTextWidth(t *testing.T) {
	w, err := TextWidth("12:34")
	require.NoError(t, err)
	require.Equal(t, 17, w)

	w, err = TextWidth("")
	require.NoError(t, err)
	require.Zero(t, w)

	_, err = TextWidth("a_b")
	var uwe *UnknownWidthError
	require.True(t, errors.As(err, &uwe))
	require.Equal(t, '_', uwe.Char)
}
