// Package endian provides byte order utilities for binary encoding and decoding.
//
// It combines the ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single EndianEngine interface so codecs can both read fixed-width
// values and append them to growing buffers through one handle.
//
// The keyframe wire format is little-endian everywhere; big-endian hosts get
// correct results because encoding/binary.LittleEndian byte-swaps for them.
// GetBigEndianEngine exists for tooling that needs to inspect foreign data,
// never for the wire format itself.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary.
//
// It is satisfied by binary.LittleEndian and binary.BigEndian, so an engine
// value interoperates with any standard-library API expecting a ByteOrder.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine used by the wire format.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns a big-endian engine for diagnostic tooling.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
