// Package serial adapts a serial device to the pid.Transport boundary.
package serial

import (
	"context"
	"io"
	"time"

	"github.com/golang/glog"
	tarm "github.com/tarm/serial"

	"github.com/signalworks/pid.go/pkg/pid"
)

// Baud is the fixed line rate of the PID.
const Baud = 9600

const readTimeout = 50 * time.Millisecond

// Port is a pid.Transport over a serial device.
type Port struct {
	// Handler receives inbound bytes. Set it before calling Run.
	Handler pid.DataHandler

	port    *tarm.Port
	pending int
}

// Open opens the named serial device at the fixed baud rate.
func Open(device string) (*Port, error) {
	p, err := tarm.OpenPort(&tarm.Config{Name: device, Baud: Baud, ReadTimeout: readTimeout})
	if err != nil {
		return nil, err
	}
	return &Port{port: p}, nil
}

// Write implements io.Writer, tracking bytes queued since the last Drain.
func (p *Port) Write(b []byte) (int, error) {
	n, err := p.port.Write(b)
	p.pending += n
	return n, err
}

// Drain waits until the bytes accepted by Write had time to leave the
// wire. The serial layer exposes no tcdrain, so the wait is computed from
// the line rate: 10 bits per byte at 9600 baud.
func (p *Port) Drain(ctx context.Context) error {
	n := p.pending
	p.pending = 0
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(drainTime(n)):
		return nil
	}
}

func drainTime(n int) time.Duration {
	return time.Duration(n) * 10 * time.Second / Baud
}

// Close implements pid.Transport.
func (p *Port) Close(ctx context.Context) error {
	return p.port.Close()
}

// Run pumps inbound bytes to the Handler until the context is canceled.
func (p *Port) Run(ctx context.Context) error {
	buf := make([]byte, 64)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		n, err := p.port.Read(buf)
		if n == 0 && (err == nil || err == io.EOF) {
			// read timeout, poll the context again
			continue
		}
		if err != nil && err != io.EOF {
			glog.Errorf("serial read: %v", err)
			return err
		}
		glog.V(4).Infof("serial < % x", buf[:n])
		if h := p.Handler; h != nil {
			h.HandleData(buf[:n])
		}
	}
}
