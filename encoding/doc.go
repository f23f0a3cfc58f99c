// Package encoding implements the per-field codecs of the keyframe format.
//
// A BlockCodec turns one typed value into bytes and back. Fixed-width codecs
// advertise their exact byte length; variable-width codecs advertise
// format.VariableLength and rely on the stream layer's one-byte terminator
// framing. A CompressionCodec is the P-frame counterpart: it encodes a field
// relative to the previous entry's value and advertises a fixed P-frame byte
// length.
//
// Built-in block kinds are Numeric (all primitive types), Bytes and String
// (six text encodings). Built-in compression kinds are IFrameOnly
// (carry-forward, zero bytes) and NumericDelta (wrapping difference cast to a
// narrower primitive). User-defined kinds plug in through FuncBlockCodec and
// FuncCompressionCodec.
package encoding
