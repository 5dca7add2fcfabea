package pid

import (
	"context"
	"sync"
	"time"

	"github.com/golang/glog"

	"github.com/signalworks/pid.go/pkg/pid/comm"
	"github.com/signalworks/pid.go/pkg/pid/msgs"
)

// SettleTime is how long a send waits for the device acknowledgment to
// accumulate after the outbound bytes drained.
const SettleTime = 100 * time.Millisecond

// Session drives one PID over a Transport.
//
// A session performs no internal serialization: the inbound accumulator
// is read and cleared only inside the acknowledgment wait of one send, so
// Send, SendText, SendRaw, Ping and Close calls must not overlap. Callers
// must serialize them. The session does not retry; whatever accumulated
// when the settle interval elapses is validated as the acknowledgment.
type Session struct {
	Transport Transport
	Address   byte
	// NoAck suppresses the acknowledgment wait after each send.
	NoAck bool
	// Settle overrides SettleTime when non-zero.
	Settle time.Duration

	mu      sync.Mutex
	inbound []byte
}

// NewSession creates a session for the device at addr.
func NewSession(t Transport, addr byte) *Session {
	return &Session{Transport: t, Address: addr}
}

// HandleData implements DataHandler. Each inbound byte is inverted from
// the device signalling before accumulation.
func (s *Session) HandleData(p []byte) {
	s.mu.Lock()
	for _, b := range p {
		s.inbound = append(s.inbound, (0xFF-b)>>1)
	}
	s.mu.Unlock()
}

// SendText parses text in the display message grammar and sends it as a
// display message for the session address.
func (s *Session) SendText(ctx context.Context, text string) error {
	m, err := msgs.ParseDisplayText(text, s.Address)
	if err != nil {
		return err
	}
	return s.Send(ctx, m)
}

// Send encodes and sends a message.
func (s *Session) Send(ctx context.Context, m msgs.Message) error {
	payload, err := m.Bytes()
	if err != nil {
		return err
	}
	return s.send(ctx, comm.EncodePacket(append(payload, comm.Checksum(payload)...)))
}

// SendRaw sends raw bytes. Bytes that already decode as a framed packet
// pass through unchanged; anything else gets a checksum appended and is
// framed.
func (s *Session) SendRaw(ctx context.Context, raw []byte) error {
	if _, err := comm.DecodePacket(raw); err == nil {
		return s.send(ctx, raw)
	}
	payload := append(raw[:len(raw):len(raw)], comm.Checksum(raw)...)
	return s.send(ctx, comm.EncodePacket(payload))
}

// Ping sends a keep-alive for the session address.
func (s *Session) Ping(ctx context.Context) error {
	return s.Send(ctx, msgs.NewPing(s.Address))
}

// Close closes the transport.
func (s *Session) Close(ctx context.Context) error {
	return s.Transport.Close(ctx)
}

func (s *Session) send(ctx context.Context, framed []byte) error {
	glog.V(3).Infof("PID %d > % x", s.Address, framed)
	if _, err := s.Transport.Write(framed); err != nil {
		return err
	}
	if err := s.Transport.Drain(ctx); err != nil {
		return err
	}
	if s.NoAck {
		return nil
	}

	s.mu.Lock()
	s.inbound = s.inbound[:0]
	s.mu.Unlock()

	settle := s.Settle
	if settle == 0 {
		settle = SettleTime
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(settle):
	}

	s.mu.Lock()
	ack := append([]byte(nil), s.inbound...)
	s.mu.Unlock()
	glog.V(3).Infof("PID %d < % x", s.Address, ack)

	payload, err := comm.DecodePacket(ack)
	if err != nil {
		return err
	}
	data, err := comm.VerifyChecksum(payload)
	if err != nil {
		return err
	}
	if glog.V(2) {
		if m, err := msgs.MessageFromBytes(data, s.Address); err == nil {
			glog.Infof("PID %d acknowledged with %T", s.Address, m)
		}
	}
	return nil
}
