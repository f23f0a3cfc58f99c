// Package keyframe provides a compact, self-describing binary codec for
// streams of small, homogeneous records.
//
// A schema describes how each record ("entry") decomposes into typed blocks:
// fixed-width numeric primitives, variable-width byte and string fields, and
// user-defined kinds. Optional temporal compression borrows the I-frame /
// P-frame idea from video codecs: one full entry every i_frame_interval
// entries, with the entries between storing either nothing (carry-forward
// fields) or numeric deltas against the previous entry.
//
// # Basic Usage
//
// Describe the record shape once, then encode and decode entries:
//
//	xCodec, _ := encoding.NewNumericCodec(format.Uint16)
//	yCodec, _ := encoding.NewNumericCodec(format.Uint16)
//	delta, _ := encoding.NewNumericDeltaCodec(format.Uint16, format.Int8)
//
//	sch, _ := schema.FromDescriptor(schema.Descriptor{
//	    Version: 1,
//	    Fields: []schema.Field{
//	        {Property: "x", Codec: xCodec, Compression: delta},
//	        {Property: "y", Codec: yCodec},
//	    },
//	    IFrameInterval: 8,
//	})
//
//	data, _ := keyframe.Encode(sch, entries)
//	decoded, _ := keyframe.Decode(sch, data)
//
// For streaming against files or custom sinks, use the stream package
// directly; for persisted schemas, use schema.Schema.ToJSON and
// schema.FromJSON. Multi-version streams dispatch through
// schema.NewMultiVersion, which selects a schema by the stream's version
// byte at read time.
package keyframe

import (
	"github.com/arloliu/keyframe/internal/hash"
	"github.com/arloliu/keyframe/schema"
	"github.com/arloliu/keyframe/stream"
	"github.com/arloliu/keyframe/value"
)

// Encode writes all entries through an in-memory sink and returns the wire
// bytes. An empty entry list yields just the header.
//
// Parameters:
//   - s: The schema describing the entries
//   - entries: The entries, each with one value per schema block
//
// Returns:
//   - []byte: The encoded stream, caller-owned
//   - error: Encoder construction or per-entry failures
func Encode(s *schema.Schema, entries []value.Entry) ([]byte, error) {
	sink := stream.NewByteSink()
	defer sink.Finish()

	enc, err := stream.NewEncoder(s, sink)
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if err := enc.WriteEntry(entry); err != nil {
			return nil, err
		}
	}

	if err := enc.Finish(); err != nil {
		return nil, err
	}

	out := make([]byte, sink.Len())
	copy(out, sink.Bytes())

	return out, nil
}

// Decode reads every whole entry from data.
//
// Parameters:
//   - sel: Schema selection; a *schema.Schema or *schema.MultiVersion
//   - data: The encoded stream
//
// Returns:
//   - []value.Entry: Every whole entry; truncated trailing entries are dropped
//   - error: Header failures (ErrShortHeader, ErrVersionMismatch) or
//     block-decode failures
func Decode(sel stream.SchemaSelector, data []byte) ([]value.Entry, error) {
	dec, err := stream.NewDecoder(stream.NewByteSource(data), sel)
	if err != nil {
		return nil, err
	}

	var entries []value.Entry
	for entry := range dec.All() {
		entries = append(entries, entry)
	}

	if err := dec.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// SchemaID returns the xxHash64 of a persisted schema document, usable as a
// stable cache key for schema JSON.
func SchemaID(text string) uint64 {
	return hash.ID(text)
}
