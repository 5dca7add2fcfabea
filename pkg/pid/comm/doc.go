// Package comm implements the transport-level codecs of the PID wire
// protocol: DLE/STX/ETX byte-stuffed packet framing and the CRC-16/X-25
// integrity trailer.
package comm

// A packet on the wire is
//
//	0x10 0x02 <payload, every literal 0x10 doubled> 0x10 0x03
//
// and the payload carried inside it is the message bytes followed by a
// 2-byte CRC-16/X-25 checksum, low byte first.
//
// The codecs here are pure: they know nothing about the serial line or the
// device signalling, which live in pkg/pid and pkg/pid/serial.
