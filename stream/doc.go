// Package stream implements the keyframe encoder and decoder state machines
// and the byte sinks and sources they run against.
//
// Wire layout:
//
//	[version: 1 byte]
//	[custom_info: declared custom header length, only if the schema has one]
//	[entry_0][entry_1]...
//
// There is no end marker; the source's end of stream terminates reading. An
// I-frame entry encodes every block with its block codec, variable-length
// fields followed by a single 0x00 terminator. A P-frame entry encodes
// compressed blocks with their compression codec instead. The first entry is
// always an I-frame and the cadence counter resets every i_frame_interval
// entries; without stream compression every entry is an I-frame.
//
// Encoders and decoders are single-threaded and borrow their schema and
// sink/source for their lifetime.
package stream
