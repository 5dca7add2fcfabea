package comm

import (
	"errors"
	"fmt"
)

// ErrShortPayload indicates a payload too short to carry a checksum.
var ErrShortPayload = errors.New("payload too short for checksum")

// FramingError reports a malformed packet envelope.
type FramingError struct {
	Reason  string
	Byte    byte
	HasByte bool
}

// Error implements error.
func (e *FramingError) Error() string {
	if e.HasByte {
		return fmt.Sprintf("%s: 0x%02x", e.Reason, e.Byte)
	}
	return e.Reason
}

// ChecksumError reports a mismatch between the checksum carried by a
// payload and the one recomputed over its content.
type ChecksumError struct {
	Got  []byte // carried by the payload
	Want []byte // recomputed
}

// Error implements error.
func (e *ChecksumError) Error() string {
	return fmt.Sprintf("checksum mismatch: got % x, want % x", e.Got, e.Want)
}
