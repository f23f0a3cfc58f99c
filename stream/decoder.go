package stream

import (
	"fmt"
	"iter"

	"github.com/arloliu/keyframe/errs"
	"github.com/arloliu/keyframe/internal/options"
	"github.com/arloliu/keyframe/schema"
	"github.com/arloliu/keyframe/value"
)

// SchemaSelector picks the schema for a stream's version byte. Both
// *schema.Schema and *schema.MultiVersion satisfy it.
type SchemaSelector interface {
	Select(version byte) (*schema.Schema, bool)
}

// Decoder reads a stream of entries from a source.
//
// The header (version byte plus custom header bytes) is consumed by
// NewDecoder; entries are yielded lazily by All. The decoder borrows its
// schema, owns its source exclusively, and is not safe for concurrent use.
type Decoder struct {
	source       Source
	sel          SchemaSelector
	schema       *schema.Schema
	err          error
	infoFn       func(info []byte)
	customInfo   []byte
	prev         value.Entry
	interval     int
	frame        int
	count        int
	version      byte
	checkVersion bool
}

// DecoderOption configures a Decoder during construction.
type DecoderOption = options.Option[*Decoder]

// WithoutVersionCheck disables version validation. The selector is still
// consulted; when it matches nothing and the selector is a single schema,
// that schema is used regardless of the stream's version byte.
func WithoutVersionCheck() DecoderOption {
	return options.NoError(func(d *Decoder) {
		d.checkVersion = false
	})
}

// WithCustomInfoFunc registers an inspection callback invoked with the raw
// custom header bytes right after the header is read.
func WithCustomInfoFunc(fn func(info []byte)) DecoderOption {
	return options.NoError(func(d *Decoder) {
		d.infoFn = fn
	})
}

// NewDecoder creates a decoder over source, selecting the schema through sel.
//
// The header is read eagerly: the version byte, schema selection, then the
// selected schema's custom header bytes (handed to the WithCustomInfoFunc
// callback when registered).
//
// Parameters:
//   - source: The input surface; owned exclusively by the decoder
//   - sel: Schema selection; a *schema.Schema or *schema.MultiVersion
//   - opts: WithoutVersionCheck, WithCustomInfoFunc
//
// Returns:
//   - *Decoder: The decoder, positioned at the first entry
//   - error: ErrShortHeader on a truncated header, ErrVersionMismatch when no
//     schema accepts the version byte, or source I/O failures
func NewDecoder(source Source, sel SchemaSelector, opts ...DecoderOption) (*Decoder, error) {
	d := &Decoder{
		source:       source,
		sel:          sel,
		checkVersion: true,
	}

	if err := options.Apply(d, opts...); err != nil {
		return nil, err
	}

	vb, err := source.ReadBytes(1)
	if err != nil {
		return nil, err
	}
	if len(vb) < 1 {
		return nil, fmt.Errorf("%w: missing version byte", errs.ErrShortHeader)
	}
	d.version = vb[0]

	s, ok := sel.Select(d.version)
	if !ok {
		if d.checkVersion {
			return nil, fmt.Errorf("%w: stream version %d", errs.ErrVersionMismatch, d.version)
		}

		// Validation is off: a single-schema selector decodes anyway. A
		// multi-version selector still has nothing to go on.
		single, isSingle := sel.(*schema.Schema)
		if !isSingle {
			return nil, fmt.Errorf("%w: stream version %d matched no schema", errs.ErrVersionMismatch, d.version)
		}
		s = single
	}
	d.schema = s

	if n, hasInterval := s.IFrameInterval(); hasInterval {
		d.interval = n
	}

	if declared, hasHeader := s.CustomHeader(); hasHeader {
		info := []byte{}
		if len(declared) > 0 {
			info, err = source.ReadBytes(len(declared))
			if err != nil {
				return nil, err
			}
			if len(info) < len(declared) {
				return nil, fmt.Errorf("%w: custom header wants %d bytes, got %d",
					errs.ErrShortHeader, len(declared), len(info))
			}
		}

		d.customInfo = info
		if d.infoFn != nil {
			d.infoFn(info)
		}
	}

	return d, nil
}

// All returns a lazy, finite, non-restartable sequence of entries.
//
// Iteration ends cleanly when the source runs out of bytes, including
// mid-entry: the partial entry is discarded and Err stays nil, so truncated
// streams yield every whole entry. A block-decode failure (for example
// malformed text) also ends iteration, with the cause in Err.
//
// A stream truncated between a variable-length payload and its terminator is
// indistinguishable from one ending before the field: both discard the
// in-progress entry.
func (d *Decoder) All() iter.Seq[value.Entry] {
	return func(yield func(value.Entry) bool) {
		for {
			entry, ok := d.next()
			if !ok {
				return
			}

			if !yield(entry) {
				return
			}
		}
	}
}

// next decodes one entry, returning false on clean end of stream or error.
func (d *Decoder) next() (value.Entry, bool) {
	if d.err != nil {
		return nil, false
	}

	blocks := d.schema.Blocks()
	if len(blocks) == 0 || !d.source.CanRead() {
		return nil, false
	}

	iframe := d.interval == 0 || d.frame == 0
	entry := make(value.Entry, len(blocks))

	for i, blk := range blocks {
		v, ok := d.readBlock(blk, iframe, i)
		if !ok {
			return nil, false
		}

		entry[i] = v
	}

	d.prev = entry
	d.count++

	if d.interval > 0 {
		d.frame++
		if d.frame == d.interval {
			d.frame = 0
		}
	}

	return entry, true
}

func (d *Decoder) readBlock(blk schema.Block, iframe bool, i int) (value.Value, bool) {
	if !iframe && blk.Compression != nil {
		data, ok := d.readExact(blk.Compression.PFrameByteLength())
		if !ok {
			return value.Value{}, false
		}

		v, err := blk.Compression.Decompress(d.prev[i], data)
		if err != nil {
			d.err = fmt.Errorf("block %q: %w", blk.Property, err)
			return value.Value{}, false
		}

		return v, true
	}

	var data []byte
	if blk.Fixed() {
		var ok bool
		data, ok = d.readExact(blk.Codec.ByteLength())
		if !ok {
			return value.Value{}, false
		}
	} else {
		var terminated bool
		data, terminated = d.readUntilTerminator()
		if !terminated {
			return value.Value{}, false
		}
	}

	v, err := blk.Codec.Decode(data)
	if err != nil {
		d.err = fmt.Errorf("block %q: %w", blk.Property, err)
		return value.Value{}, false
	}

	return v, true
}

// readExact returns exactly n bytes, or false on a short read (clean stop)
// or source failure (recorded in err).
func (d *Decoder) readExact(n int) ([]byte, bool) {
	if n == 0 {
		return nil, true
	}

	data, err := d.source.ReadBytes(n)
	if err != nil {
		d.err = err
		return nil, false
	}

	if len(data) < n {
		return nil, false
	}

	return data, true
}

// readUntilTerminator accumulates bytes until the 0x00 field terminator,
// excluded from the payload. Returns false when the source ends first.
func (d *Decoder) readUntilTerminator() ([]byte, bool) {
	var buf []byte

	for {
		b, err := d.source.ReadBytes(1)
		if err != nil {
			d.err = err
			return nil, false
		}

		if len(b) == 0 {
			return nil, false
		}

		if b[0] == 0x00 {
			return buf, true
		}

		buf = append(buf, b[0])
	}
}

// Version returns the stream's version byte.
func (d *Decoder) Version() byte { return d.version }

// Schema returns the schema selected for this stream.
func (d *Decoder) Schema() *schema.Schema { return d.schema }

// CustomInfo returns the raw custom header bytes, or nil when the schema
// declares none.
func (d *Decoder) CustomInfo() []byte { return d.customInfo }

// EntryCount returns the number of whole entries decoded so far.
func (d *Decoder) EntryCount() int { return d.count }

// Err returns the failure that ended iteration, or nil after a clean end
// (including truncation mid-entry).
func (d *Decoder) Err() error { return d.err }
