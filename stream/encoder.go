package stream

import (
	"fmt"
	"slices"

	"github.com/arloliu/keyframe/errs"
	"github.com/arloliu/keyframe/internal/options"
	"github.com/arloliu/keyframe/internal/pool"
	"github.com/arloliu/keyframe/schema"
	"github.com/arloliu/keyframe/value"
)

// Encoder writes a stream of entries to a sink in the keyframe wire format.
//
// The encoder borrows its schema and sink for its lifetime, owns the sink
// exclusively, and is not safe for concurrent use. After Finish it must not
// be used again.
type Encoder struct {
	schema     *schema.Schema
	sink       Sink
	scratch    *pool.ByteBuffer
	customInfo []byte
	prev       value.Entry
	interval   int // 0 when every entry is an I-frame
	frame      int // entries since the last I-frame
	count      int
	headerDone bool
}

// EncoderOption configures an Encoder during construction.
type EncoderOption = options.Option[*Encoder]

// WithCustomInfo overrides the custom header bytes written after the version
// byte. The schema must declare a custom header of exactly this length.
//
// Returns an option failing with ErrCustomInfoLength on any length
// disagreement.
func WithCustomInfo(info []byte) EncoderOption {
	return options.New(func(e *Encoder) error {
		declared, ok := e.schema.CustomHeader()
		if !ok {
			return fmt.Errorf("%w: schema declares no custom header", errs.ErrCustomInfoLength)
		}

		if len(info) != len(declared) {
			return fmt.Errorf("%w: got %d bytes, schema declares %d",
				errs.ErrCustomInfoLength, len(info), len(declared))
		}

		e.customInfo = slices.Clone(info)

		return nil
	})
}

// NewEncoder creates an encoder for the given schema writing to sink.
//
// The header ([version][custom_info?]) is written lazily before the first
// entry; call Flush to force it out for an entry-less stream.
//
// Parameters:
//   - s: The schema; borrowed, never mutated
//   - sink: The output surface; owned exclusively until Finish
//   - opts: WithCustomInfo
//
// Returns:
//   - *Encoder: The encoder
//   - error: Option failures
func NewEncoder(s *schema.Schema, sink Sink, opts ...EncoderOption) (*Encoder, error) {
	e := &Encoder{
		schema: s,
		sink:   sink,
	}

	if info, ok := s.CustomHeader(); ok {
		e.customInfo = info
	}
	if n, ok := s.IFrameInterval(); ok {
		e.interval = n
	}

	if err := options.Apply(e, opts...); err != nil {
		return nil, err
	}

	e.scratch = pool.GetEntryBuffer()

	return e, nil
}

func (e *Encoder) writeHeader() error {
	if e.headerDone {
		return nil
	}

	if err := e.sink.WriteBytes([]byte{e.schema.Version()}); err != nil {
		return err
	}

	if _, ok := e.schema.CustomHeader(); ok && len(e.customInfo) > 0 {
		if err := e.sink.WriteBytes(e.customInfo); err != nil {
			return err
		}
	}

	e.headerDone = true

	return nil
}

// Flush forces the header out. An entry-less stream flushed this way is
// exactly [version][custom_info?].
func (e *Encoder) Flush() error {
	return e.writeHeader()
}

// WriteEntry encodes one entry.
//
// The entry must have one value per schema block, in index order. The first
// entry is an I-frame; with stream compression every i_frame_interval-th
// entry after it is too, and the entries between are P-frames whose
// compressed blocks go through their compression codec.
//
// Returns:
//   - error: ErrEntryShape on a length mismatch, codec failures, or wrapped
//     ErrLengthMismatch when a codec breaks its declared width; sink write
//     errors bubble up
func (e *Encoder) WriteEntry(entry value.Entry) error {
	blocks := e.schema.Blocks()
	if len(entry) != len(blocks) {
		return fmt.Errorf("%w: entry has %d values, schema has %d blocks",
			errs.ErrEntryShape, len(entry), len(blocks))
	}

	if err := e.writeHeader(); err != nil {
		return err
	}

	iframe := e.interval == 0 || e.frame == 0

	e.scratch.Reset()
	out := e.scratch.B
	var err error

	for i, blk := range blocks {
		start := len(out)

		if !iframe && blk.Compression != nil {
			out, err = blk.Compression.Compress(out, e.prev[i], entry[i])
			if err != nil {
				return fmt.Errorf("block %q: %w", blk.Property, err)
			}

			if want := blk.Compression.PFrameByteLength(); len(out)-start != want {
				return fmt.Errorf("%w: block %q compression emitted %d bytes, declared %d",
					errs.ErrLengthMismatch, blk.Property, len(out)-start, want)
			}

			continue
		}

		out, err = blk.Codec.Append(out, entry[i])
		if err != nil {
			return fmt.Errorf("block %q: %w", blk.Property, err)
		}

		if blk.Fixed() {
			if want := blk.Codec.ByteLength(); len(out)-start != want {
				return fmt.Errorf("%w: block %q emitted %d bytes, declared %d",
					errs.ErrLengthMismatch, blk.Property, len(out)-start, want)
			}
		} else {
			// Field terminator. Payload bytes equal to 0x00 are not escaped;
			// such payloads do not round-trip. Known format limitation.
			out = append(out, 0x00)
		}
	}

	e.scratch.B = out

	if err := e.sink.WriteBytes(out); err != nil {
		return err
	}

	e.prev = slices.Clone(entry)
	e.count++

	if e.interval > 0 {
		e.frame++
		if e.frame == e.interval {
			e.frame = 0
		}
	}

	return nil
}

// WriteRecord casts a record through the schema's property bindings and
// writes the resulting entry.
func (e *Encoder) WriteRecord(rec schema.Record) error {
	entry, err := e.schema.CastToEntry(rec)
	if err != nil {
		return err
	}

	return e.WriteEntry(entry)
}

// EntryCount returns the number of entries written.
func (e *Encoder) EntryCount() int {
	return e.count
}

// Finish flushes the header if nothing was written and releases the
// encoder's pooled resources. The encoder must not be used afterwards; the
// sink stays open for the caller.
func (e *Encoder) Finish() error {
	err := e.writeHeader()

	pool.PutEntryBuffer(e.scratch)
	e.scratch = nil

	return err
}
