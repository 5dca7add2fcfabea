// Package pid drives a serial-attached passenger information display
// (PID) sign: messages are checksummed, framed, written to a transport
// and acknowledged by the device.
package pid
