package schema

import (
	"fmt"

	"github.com/arloliu/keyframe/encoding"
	"github.com/arloliu/keyframe/errs"
	"github.com/arloliu/keyframe/value"
)

// Record is any object whose named properties the schema can read and write.
// Go has no runtime property reflection over arbitrary records the way the
// format's origin assumed, so records expose an explicit mapping instead.
type Record interface {
	// Property returns the value bound to name, or false when absent.
	Property(name string) (value.Value, bool)

	// SetProperty binds a value to name, returning false when the record
	// cannot accept it.
	SetProperty(name string, v value.Value) bool
}

// MapRecord is the ready-made map-backed Record implementation.
type MapRecord map[string]value.Value

var _ Record = MapRecord{}

// Property implements Record.
func (r MapRecord) Property(name string) (value.Value, bool) {
	v, ok := r[name]
	return v, ok
}

// SetProperty implements Record.
func (r MapRecord) SetProperty(name string, v value.Value) bool {
	r[name] = v
	return true
}

// CastToEntry reads each block's property out of the record, in index order.
//
// Returns:
//   - value.Entry: One value per block
//   - error: ErrPropertyBinding when a property is absent or of the wrong
//     dynamic type for its block codec
func (s *Schema) CastToEntry(rec Record) (value.Entry, error) {
	entry := make(value.Entry, len(s.blocks))

	for i, b := range s.blocks {
		v, ok := rec.Property(b.Property)
		if !ok {
			return nil, fmt.Errorf("%w: property %q missing", errs.ErrPropertyBinding, b.Property)
		}

		if err := checkValueShape(b.Codec, v); err != nil {
			return nil, fmt.Errorf("property %q: %w", b.Property, err)
		}

		entry[i] = v
	}

	return entry, nil
}

// CastFromEntry writes each entry value back into the record under its
// block's property name.
//
// Returns:
//   - error: ErrEntryShape on a length mismatch, ErrPropertyBinding when the
//     record rejects a property
func (s *Schema) CastFromEntry(rec Record, entry value.Entry) error {
	if len(entry) != len(s.blocks) {
		return fmt.Errorf("%w: entry has %d values, schema has %d blocks",
			errs.ErrEntryShape, len(entry), len(s.blocks))
	}

	for i, b := range s.blocks {
		if !rec.SetProperty(b.Property, entry[i]) {
			return fmt.Errorf("%w: record rejected property %q", errs.ErrPropertyBinding, b.Property)
		}
	}

	return nil
}

// checkValueShape rejects values whose dynamic type cannot feed the block's
// codec. User codec kinds accept any value; their encode function is the
// authority.
func checkValueShape(codec encoding.BlockCodec, v value.Value) error {
	switch c := codec.(type) {
	case encoding.NumericCodec:
		if v.Primitive() != c.Primitive() {
			return fmt.Errorf("%w: value is %s, block encodes %s",
				errs.ErrPropertyBinding, v.Kind(), c.Primitive())
		}
	case encoding.BytesCodec:
		if v.Kind() != value.KindBytes {
			return fmt.Errorf("%w: value is %s, block encodes bytes", errs.ErrPropertyBinding, v.Kind())
		}
	case encoding.StringCodec:
		if v.Kind() != value.KindString {
			return fmt.Errorf("%w: value is %s, block encodes string", errs.ErrPropertyBinding, v.Kind())
		}
	}

	return nil
}

// Field is one entry of a record descriptor: a property name with its codec
// and optional compression, in declaration order.
type Field struct {
	Codec       encoding.BlockCodec
	Compression encoding.CompressionCodec
	Property    string
}

// Descriptor is the record-metadata construction surface: per-field codecs in
// declaration order plus the schema-level settings. Declaration order is the
// authoritative block index.
type Descriptor struct {
	// CustomHeader, when non-nil, declares a custom header with this default
	// content. An empty non-nil slice declares a zero-length header.
	CustomHeader []byte

	Fields []Field

	// IFrameInterval enables stream compression when at least 2; zero leaves
	// it off.
	IFrameInterval int

	Version byte
}

// FromDescriptor builds a schema from a record descriptor.
//
// Returns:
//   - *Schema: The schema, with block indexes assigned in declaration order
//   - error: Validation failures from New
func FromDescriptor(d Descriptor) (*Schema, error) {
	blocks := make([]Block, len(d.Fields))
	for i, f := range d.Fields {
		blocks[i] = Block{
			Index:       i,
			Property:    f.Property,
			Codec:       f.Codec,
			Compression: f.Compression,
		}
	}

	var opts []Option
	if d.IFrameInterval > 0 {
		opts = append(opts, WithStreamCompression(d.IFrameInterval))
	}
	if d.CustomHeader != nil {
		opts = append(opts, WithCustomHeader(d.CustomHeader))
	}

	return New(d.Version, blocks, opts...)
}
