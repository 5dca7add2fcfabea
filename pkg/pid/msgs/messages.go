package msgs

import (
	"bytes"
	"strings"
)

// Message kind marker bytes, following the address byte.
const (
	markerDisplay  byte = 0x44
	markerDisplay2 byte = 0x00
	markerPing     byte = 0x50
	markerResponse byte = 0x52
)

const (
	pageSepByte  byte = 0x0D
	pageContByte byte = 0x01
)

// PageListSep separates pages in the display message string form.
const PageListSep = "|"

// Display message string page defaults: the first page scrolls in
// vertically and dwells, subsequent pages scroll through horizontally.
const (
	FirstPageDelay = 10
	NextPageDelay  = 0
)

// DefaultPingValue is the device-defined ping payload byte. Its value does
// not affect device behaviour.
const DefaultPingValue byte = 0x6F

// Message is one addressed PID protocol message.
type Message interface {
	// Address returns the device address the message is scoped to.
	Address() byte
	// Bytes encodes the message for the wire, before checksum and framing.
	Bytes() ([]byte, error)
}

// DisplayMessage carries one full, repeating on-device presentation.
// It owns its page sequence.
type DisplayMessage struct {
	Addr  byte
	Pages []Page
}

// ParseDisplayText parses the display message grammar "page1|page2|..."
// for the given address.
func ParseDisplayText(s string, addr byte) (*DisplayMessage, error) {
	m := &DisplayMessage{Addr: addr}
	for n, ps := range strings.Split(s, PageListSep) {
		defAnimate, defDelay := AnimateHScroll, NextPageDelay
		if n == 0 {
			defAnimate, defDelay = AnimateVScroll, FirstPageDelay
		}
		p, err := ParsePage(ps, defAnimate, defDelay)
		if err != nil {
			return nil, err
		}
		m.Pages = append(m.Pages, p)
	}
	return m, nil
}

// Address implements Message.
func (m *DisplayMessage) Address() byte { return m.Addr }

// Bytes implements Message.
func (m *DisplayMessage) Bytes() ([]byte, error) {
	if len(m.Pages) == 0 {
		return nil, &LengthError{Kind: "display", Len: 0}
	}
	b := []byte{m.Addr, markerDisplay, markerDisplay2}
	for n, p := range m.Pages {
		if n > 0 {
			b = append(b, pageSepByte, pageContByte)
		}
		pb, err := p.Bytes()
		if err != nil {
			return nil, err
		}
		b = append(b, pb...)
	}
	return append(b, pageSepByte), nil
}

// DisplayFromBytes decodes a display message scoped to addr.
func DisplayFromBytes(b []byte, addr byte) (*DisplayMessage, error) {
	if len(b) < 3 || b[0] != addr || b[1] != markerDisplay || b[2] != markerDisplay2 {
		return nil, &MarkerMismatchError{
			Want: []byte{addr, markerDisplay, markerDisplay2},
			Got:  head(b, 3),
		}
	}
	m := &DisplayMessage{Addr: addr}
	rest := b[3:]
	for {
		i := bytes.IndexByte(rest, pageSepByte)
		if i < 0 {
			return nil, ErrUnexpectedEnd
		}
		if i == 0 {
			// a separator must introduce a non-empty page
			return nil, &UnexpectedByteError{Byte: pageSepByte}
		}
		p, err := PageFromBytes(rest[:i])
		if err != nil {
			return nil, err
		}
		m.Pages = append(m.Pages, p)
		rest = rest[i+1:]
		if len(rest) == 0 {
			return m, nil
		}
		if rest[0] != pageContByte {
			return nil, &UnexpectedByteError{Byte: rest[0]}
		}
		rest = rest[1:]
	}
}

// PingMessage is a content-free keep-alive.
type PingMessage struct {
	Addr  byte
	Value byte
}

// NewPing creates a ping with the default payload byte.
func NewPing(addr byte) *PingMessage {
	return &PingMessage{Addr: addr, Value: DefaultPingValue}
}

// Address implements Message.
func (m *PingMessage) Address() byte { return m.Addr }

// Bytes implements Message.
func (m *PingMessage) Bytes() ([]byte, error) {
	return []byte{m.Addr, markerPing, m.Value}, nil
}

// PingFromBytes decodes a ping message scoped to addr.
func PingFromBytes(b []byte, addr byte) (*PingMessage, error) {
	if len(b) < 2 || b[0] != addr || b[1] != markerPing {
		return nil, &MarkerMismatchError{Want: []byte{addr, markerPing}, Got: head(b, 2)}
	}
	if len(b) != 3 {
		return nil, &LengthError{Kind: "ping", Len: len(b)}
	}
	return &PingMessage{Addr: addr, Value: b[2]}, nil
}

// ResponseMessage is the device acknowledgment. The payload byte is
// captured but has no defined meaning.
type ResponseMessage struct {
	Addr  byte
	Value byte
}

// Address implements Message.
func (m *ResponseMessage) Address() byte { return m.Addr }

// Bytes implements Message.
func (m *ResponseMessage) Bytes() ([]byte, error) {
	return []byte{m.Addr, markerResponse, m.Value, 0x00}, nil
}

// ResponseFromBytes decodes a response message scoped to addr.
func ResponseFromBytes(b []byte, addr byte) (*ResponseMessage, error) {
	if len(b) < 2 || b[0] != addr || b[1] != markerResponse {
		return nil, &MarkerMismatchError{Want: []byte{addr, markerResponse}, Got: head(b, 2)}
	}
	if len(b) != 4 {
		return nil, &LengthError{Kind: "response", Len: len(b)}
	}
	if b[3] != 0x00 {
		return nil, &UnexpectedByteError{Byte: b[3]}
	}
	return &ResponseMessage{Addr: addr, Value: b[2]}, nil
}

// MessageFromBytes decodes raw message bytes scoped to addr, selecting the
// message kind by its marker. Errors of the matched kind's decoder are
// propagated; with no matching marker it fails.
func MessageFromBytes(b []byte, addr byte) (Message, error) {
	if len(b) >= 2 && b[0] == addr {
		switch b[1] {
		case markerDisplay:
			if len(b) >= 3 && b[2] == markerDisplay2 {
				return DisplayFromBytes(b, addr)
			}
		case markerPing:
			return PingFromBytes(b, addr)
		case markerResponse:
			return ResponseFromBytes(b, addr)
		}
	}
	return nil, &MarkerMismatchError{Want: []byte{addr}, Got: head(b, 3)}
}

func head(b []byte, n int) []byte {
	if len(b) < n {
		return b
	}
	return b[:n]
}
