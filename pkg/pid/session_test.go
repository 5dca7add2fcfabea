package pid

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/signalworks/pid.go/pkg/pid/comm"
	"github.com/signalworks/pid.go/pkg/pid/msgs"
)

type fakeTransport struct {
	session *Session
	ack     []byte // post-inversion bytes delivered during the settle wait

	writes [][]byte
	drains int
	closed bool
}

func (t *fakeTransport) Write(p []byte) (int, error) {
	t.writes = append(t.writes, append([]byte{}, p...))
	return len(p), nil
}

func (t *fakeTransport) Drain(ctx context.Context) error {
	t.drains++
	if t.ack != nil {
		ack := t.ack
		time.AfterFunc(10*time.Millisecond, func() {
			t.session.HandleData(deviceBytes(ack))
		})
	}
	return nil
}

func (t *fakeTransport) Close(ctx context.Context) error {
	t.closed = true
	return nil
}

// deviceBytes maps wanted post-inversion bytes back to the raw device
// signalling consumed by HandleData. Only values up to 0x7F survive the
// inversion, which the ack vectors used here are chosen to respect.
func deviceBytes(want []byte) []byte {
	raw := make([]byte, len(want))
	for i, b := range want {
		raw[i] = 0xFF - 2*b
	}
	return raw
}

func newTestSession(ack []byte) (*Session, *fakeTransport) {
	tr := &fakeTransport{ack: ack}
	s := NewSession(tr, 1)
	s.Settle = 50 * time.Millisecond
	tr.session = s
	return s, tr
}

// ackFrame builds a framed, checksummed response message from the device
// at addr. The vector keeps every framed byte below 0x80.
func ackFrame(addr byte) []byte {
	payload := []byte{addr, 0x52, 0x69, 0x00}
	return comm.EncodePacket(append(payload, comm.Checksum(payload)...))
}

func TestHandleDataInversion(t *testing.T) {
	s := NewSession(&fakeTransport{}, 1)
	s.HandleData([]byte{0xFF, 0xFD, 0xDF})
	require.Equal(t, []byte{0x00, 0x01, 0x10}, s.inbound)
}

func TestSendPing(t *testing.T) {
	s, tr := newTestSession(ackFrame(1))
	require.NoError(t, s.Ping(context.Background()))
	require.Equal(t, 1, tr.drains)
	require.Len(t, tr.writes, 1)

	payload := []byte{0x01, 0x50, 0x6F}
	expect := comm.EncodePacket(append(payload, comm.Checksum(payload)...))
	require.Equal(t, expect, tr.writes[0])
}

func TestSendNoAck(t *testing.T) {
	s, tr := newTestSession(nil)
	s.NoAck = true
	require.NoError(t, s.Ping(context.Background()))
	require.Equal(t, 1, tr.drains)
}

func TestSendText(t *testing.T) {
	s, tr := newTestSession(ackFrame(1))
	require.NoError(t, s.SendText(context.Background(), "HELLO|_WORLD"))

	payload, err := comm.DecodePacket(tr.writes[0])
	require.NoError(t, err)
	data, err := comm.VerifyChecksum(payload)
	require.NoError(t, err)
	m, err := msgs.MessageFromBytes(data, 1)
	require.NoError(t, err)

	dm, ok := m.(*msgs.DisplayMessage)
	require.True(t, ok)
	require.Len(t, dm.Pages, 2)
	require.Equal(t, msgs.AnimateVScroll, dm.Pages[0].Animate)
	require.Equal(t, 10, dm.Pages[0].Delay)
	require.Equal(t, msgs.AnimateHScroll, dm.Pages[1].Animate)
}

func TestSendTextInvalid(t *testing.T) {
	s, tr := newTestSession(nil)
	require.Error(t, s.SendText(context.Background(), "sacré bleu"))
	require.Empty(t, tr.writes)
}

func TestSendRawPassThrough(t *testing.T) {
	s, tr := newTestSession(ackFrame(1))
	framed := comm.EncodePacket([]byte{0x01, 0x02, 0x03})
	require.NoError(t, s.SendRaw(context.Background(), framed))
	require.Equal(t, framed, tr.writes[0])
}

func TestSendRawUnframed(t *testing.T) {
	s, tr := newTestSession(ackFrame(1))
	raw := []byte{0x01, 0x50, 0x6F}
	require.NoError(t, s.SendRaw(context.Background(), raw))

	expect := comm.EncodePacket(append([]byte{0x01, 0x50, 0x6F}, comm.Checksum(raw)...))
	require.Equal(t, expect, tr.writes[0])
}

func TestSendNoResponse(t *testing.T) {
	s, _ := newTestSession(nil)
	err := s.Ping(context.Background())
	var fe *comm.FramingError
	require.True(t, errors.As(err, &fe))
}

func TestSendMalformedAck(t *testing.T) {
	s, _ := newTestSession([]byte{0x01, 0x02, 0x03})
	err := s.Ping(context.Background())
	var fe *comm.FramingError
	require.True(t, errors.As(err, &fe))
}

func TestSendCorruptAck(t *testing.T) {
	payload := []byte{0x01, 0x52, 0x69, 0x00}
	full := append(payload, comm.Checksum(payload)...)
	full[2] = 0x6B // corrupt a payload byte, keeping the carried checksum
	s, _ := newTestSession(comm.EncodePacket(full))

	err := s.Ping(context.Background())
	var ce *comm.ChecksumError
	require.True(t, errors.As(err, &ce))
}

func TestSendAckClearsAccumulator(t *testing.T) {
	s, _ := newTestSession(ackFrame(1))
	// noise arriving before the send must not corrupt the ack wait
	s.HandleData([]byte{0x42, 0x42, 0x42})
	require.NoError(t, s.Ping(context.Background()))
}

func TestSendContextCanceled(t *testing.T) {
	s, _ := newTestSession(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.Equal(t, context.Canceled, s.Ping(ctx))
}

func TestClose(t *testing.T) {
	s, tr := newTestSession(nil)
	require.NoError(t, s.Close(context.Background()))
	require.True(t, tr.closed)
}
