package schema

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/arloliu/keyframe/encoding"
	"github.com/arloliu/keyframe/errs"
	"github.com/arloliu/keyframe/internal/hash"
	"github.com/arloliu/keyframe/internal/options"
)

// StreamCompression enables I-frame keying: one full entry every
// IFrameInterval entries, delta-compressible fields in between.
type StreamCompression struct {
	// IFrameInterval is the cadence between full entries. At least 2.
	IFrameInterval int
}

// CustomHeader declares a fixed-length opaque byte region written between
// the version byte and the entry stream. Its declared length is len(Info);
// zero is legal and writes nothing.
type CustomHeader struct {
	// Info is the default header content an encoder writes when the caller
	// supplies none.
	Info []byte
}

// Schema is the immutable description of an entry stream: a version byte, an
// ordered block list, optional stream compression and an optional custom
// header.
type Schema struct {
	stream  *StreamCompression
	header  *CustomHeader
	blocks  []Block
	version byte
}

// Option configures a Schema during construction.
type Option = options.Option[*Schema]

// WithStreamCompression enables I-frame keying with the given interval.
//
// Returns an option that fails with ErrInvalidIFrameInterval when the
// interval is below 2.
func WithStreamCompression(iFrameInterval int) Option {
	return options.New(func(s *Schema) error {
		if iFrameInterval < 2 {
			return fmt.Errorf("%w: %d", errs.ErrInvalidIFrameInterval, iFrameInterval)
		}

		s.stream = &StreamCompression{IFrameInterval: iFrameInterval}

		return nil
	})
}

// WithCustomHeader declares a custom header region with the given default
// content. The declared length is len(info); an empty slice declares a
// zero-length header.
func WithCustomHeader(info []byte) Option {
	return options.NoError(func(s *Schema) {
		s.header = &CustomHeader{Info: slices.Clone(info)}
	})
}

// New creates a schema from a block list.
//
// Blocks are stored in ascending index order regardless of input order.
// Validation enforces non-negative unique indexes, non-empty unique property
// names, and compression/codec primitive compatibility for the built-in
// numeric delta kind.
//
// Parameters:
//   - version: The schema's version byte, written as the first stream byte
//   - blocks: The field descriptors
//   - opts: WithStreamCompression, WithCustomHeader
//
// Returns:
//   - *Schema: The validated, immutable schema
//   - error: The first validation failure
func New(version byte, blocks []Block, opts ...Option) (*Schema, error) {
	s := &Schema{
		version: version,
		blocks:  slices.Clone(blocks),
	}

	if err := options.Apply(s, opts...); err != nil {
		return nil, err
	}

	seenIdx := make(map[int]struct{}, len(s.blocks))
	seenProp := make(map[string]struct{}, len(s.blocks))

	for _, b := range s.blocks {
		if b.Codec == nil {
			return nil, fmt.Errorf("%w: block %d has no codec", errs.ErrUnknownBlockKind, b.Index)
		}

		if b.Property == "" {
			return nil, fmt.Errorf("%w: block index %d", errs.ErrEmptyProperty, b.Index)
		}

		if b.Index < 0 {
			return nil, fmt.Errorf("%w: negative index %d", errs.ErrDuplicateBlockIndex, b.Index)
		}

		if _, dup := seenIdx[b.Index]; dup {
			return nil, fmt.Errorf("%w: %d", errs.ErrDuplicateBlockIndex, b.Index)
		}
		seenIdx[b.Index] = struct{}{}

		if _, dup := seenProp[b.Property]; dup {
			return nil, fmt.Errorf("%w: %q", errs.ErrDuplicateProperty, b.Property)
		}
		seenProp[b.Property] = struct{}{}

		if err := checkCompression(b); err != nil {
			return nil, err
		}
	}

	slices.SortFunc(s.blocks, func(a, b Block) int { return a.Index - b.Index })

	return s, nil
}

// checkCompression verifies the built-in numeric delta's original primitive
// matches the block codec. User kinds are trusted as declared.
func checkCompression(b Block) error {
	nd, ok := b.Compression.(encoding.NumericDeltaCodec)
	if !ok {
		return nil
	}

	nc, ok := b.Codec.(encoding.NumericCodec)
	if !ok {
		return fmt.Errorf("%w: numeric delta on non-numeric block %q",
			errs.ErrIncompatibleCompression, b.Property)
	}

	if orig, _ := nd.Primitives(); orig != nc.Primitive() {
		return fmt.Errorf("%w: block %q is %s, delta original is %s",
			errs.ErrIncompatibleCompression, b.Property, nc.Primitive(), orig)
	}

	return nil
}

// Version returns the schema's version byte.
func (s *Schema) Version() byte { return s.version }

// Blocks returns the blocks in ascending index order. The returned slice
// must not be modified.
func (s *Schema) Blocks() []Block { return s.blocks }

// IFrameInterval returns the stream compression cadence, if any.
func (s *Schema) IFrameInterval() (int, bool) {
	if s.stream == nil {
		return 0, false
	}

	return s.stream.IFrameInterval, true
}

// CustomHeader returns the declared custom header content, if any. The
// returned slice must not be modified.
func (s *Schema) CustomHeader() ([]byte, bool) {
	if s.header == nil {
		return nil, false
	}

	return s.header.Info, true
}

// ValidateVersion reports whether the schema accepts a stream's version byte.
func (s *Schema) ValidateVersion(v byte) bool {
	return v == s.version
}

// Select returns the schema itself when it accepts the version. It makes a
// single Schema usable wherever a multi-version selector is expected.
func (s *Schema) Select(v byte) (*Schema, bool) {
	if !s.ValidateVersion(v) {
		return nil, false
	}

	return s, true
}

// Fingerprint returns a stable xxHash64 identity over the schema's version,
// block order, kind names, type parameters and property names. Two schemas
// that would produce the same wire layout for the same property set share a
// fingerprint; it is not a wire-format checksum.
func (s *Schema) Fingerprint() uint64 {
	d := hash.New()

	write := func(parts ...string) {
		for _, p := range parts {
			_, _ = d.WriteString(p)
			_, _ = d.Write([]byte{0x1f})
		}
	}

	write("v" + strconv.Itoa(int(s.version)))

	if s.stream != nil {
		write("k" + strconv.Itoa(s.stream.IFrameInterval))
	}
	if s.header != nil {
		write("h" + strconv.Itoa(len(s.header.Info)))
	}

	for _, b := range s.blocks {
		write(strconv.Itoa(b.Index), b.Property, b.Codec.KindName())
		if custom, ok := blockCustom(b.Codec); ok {
			write(custom...)
		}

		if b.Compression != nil {
			write(b.Compression.KindName())
			if custom, ok := compressionCustom(b.Compression); ok {
				write(custom...)
			}
		}
	}

	return d.Sum64()
}
