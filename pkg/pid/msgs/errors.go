package msgs

import (
	"errors"
	"fmt"
)

// ErrUnexpectedEnd indicates a message truncated before its terminator.
var ErrUnexpectedEnd = errors.New("unexpected end of data")

// InvalidCharacterError reports every character of a text that is outside
// the device character set.
type InvalidCharacterError struct {
	Chars string
}

// Error implements error.
func (e *InvalidCharacterError) Error() string {
	return fmt.Sprintf("unsupported characters: %q", e.Chars)
}

// UnknownWidthError reports a character the layout cannot size.
type UnknownWidthError struct {
	Char rune
}

// Error implements error.
func (e *UnknownWidthError) Error() string {
	return fmt.Sprintf("no width for character %q", e.Char)
}

// AnimateDecodeError reports an unknown animation code byte.
type AnimateDecodeError struct {
	Byte byte
}

// Error implements error.
func (e *AnimateDecodeError) Error() string {
	return fmt.Sprintf("unknown animation code 0x%02x", e.Byte)
}

// MarkerMismatchError reports a message whose leading marker bytes do not
// match the expected kind and address.
type MarkerMismatchError struct {
	Want []byte
	Got  []byte
}

// Error implements error.
func (e *MarkerMismatchError) Error() string {
	return fmt.Sprintf("marker mismatch: got % x, want % x", e.Got, e.Want)
}

// LengthError reports a message shorter or longer than its kind permits.
type LengthError struct {
	Kind string
	Len  int
}

// Error implements error.
func (e *LengthError) Error() string {
	return fmt.Sprintf("bad %s message length %d", e.Kind, e.Len)
}

// RangeError reports a field value outside its permitted range.
type RangeError struct {
	Field string
	Value int
}

// Error implements error.
func (e *RangeError) Error() string {
	return fmt.Sprintf("%s %d out of range", e.Field, e.Value)
}

// UnexpectedByteError reports a byte value violating the message layout.
type UnexpectedByteError struct {
	Byte byte
}

// Error implements error.
func (e *UnexpectedByteError) Error() string {
	return fmt.Sprintf("unexpected byte value 0x%02x", e.Byte)
}
