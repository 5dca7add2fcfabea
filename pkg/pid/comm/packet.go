package comm

// Framing control bytes.
const (
	DLE byte = 0x10
	STX byte = 0x02
	ETX byte = 0x03
)

// EncodePacket wraps payload in a DLE/STX/ETX envelope, doubling every
// literal DLE byte of the payload.
func EncodePacket(payload []byte) []byte {
	b := make([]byte, 0, len(payload)+4)
	b = append(b, DLE, STX)
	for _, c := range payload {
		if c == DLE {
			b = append(b, DLE, DLE)
		} else {
			b = append(b, c)
		}
	}
	return append(b, DLE, ETX)
}

// DecodePacket unwraps exactly one framed packet, undoing DLE doubling.
// Anything after the footer is an error: callers must supply one packet
// at a time.
func DecodePacket(framed []byte) ([]byte, error) {
	if len(framed) < 2 || framed[0] != DLE || framed[1] != STX {
		return nil, &FramingError{Reason: "bad packet header"}
	}
	payload := make([]byte, 0, len(framed)-2)
	i := 2
	for {
		if i+2 > len(framed) {
			return nil, &FramingError{Reason: "unexpected end of packet"}
		}
		if framed[i] != DLE {
			// the window slides by one byte so an escape starting at the
			// second position is still seen as a pair
			payload = append(payload, framed[i])
			i++
			continue
		}
		switch framed[i+1] {
		case DLE:
			payload = append(payload, DLE)
			i += 2
		case ETX:
			if i+2 != len(framed) {
				return nil, &FramingError{Reason: "extraneous bytes after end of packet"}
			}
			return payload, nil
		default:
			return nil, &FramingError{Reason: "unexpected byte after DLE", Byte: framed[i+1], HasByte: true}
		}
	}
}
