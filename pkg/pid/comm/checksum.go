package comm

import (
	"bytes"

	"github.com/sigurn/crc16"
)

var x25 = crc16.MakeTable(crc16.CRC16_X_25)

// Checksum computes CRC-16/X-25 over payload, returned low byte first.
func Checksum(payload []byte) []byte {
	sum := crc16.Checksum(payload, x25)
	return []byte{byte(sum), byte(sum >> 8)}
}

// VerifyChecksum splits the trailing 2-byte checksum off payload,
// recomputes it over the rest and returns the payload with the checksum
// stripped. The comparison is by content.
func VerifyChecksum(payload []byte) ([]byte, error) {
	if len(payload) < 2 {
		return nil, ErrShortPayload
	}
	data, got := payload[:len(payload)-2], payload[len(payload)-2:]
	if want := Checksum(data); !bytes.Equal(got, want) {
		return nil, &ChecksumError{Got: got, Want: want}
	}
	return data, nil
}
