package pid

import (
	"context"
	"io"
)

// Transport is the physical byte-stream boundary to the device.
type Transport interface {
	io.Writer
	// Drain blocks until bytes accepted by Write have left for the wire.
	Drain(ctx context.Context) error
	// Close shuts the device down.
	Close(ctx context.Context) error
}

// DataHandler receives inbound bytes from a transport as they arrive.
type DataHandler interface {
	HandleData(p []byte)
}
