// Package msgs implements the device-level message formats of the PID:
// the glyph character set, the page codec and the three message kinds
// (display, ping, response) with their address-scoped markers.
package msgs
