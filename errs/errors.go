// Package errs defines the sentinel errors shared across the keyframe packages.
//
// Call sites wrap these sentinels with fmt.Errorf("%w: ...") to attach context,
// so callers can match error categories with errors.Is while still seeing the
// details of the specific failure.
package errs

import "errors"

// Codec errors.
var (
	// ErrUnsupportedType indicates a block or compression codec was asked to
	// handle a primitive type it does not know.
	ErrUnsupportedType = errors.New("unsupported primitive type")

	// ErrLengthMismatch indicates a codec produced or received a byte count
	// that disagrees with its declared length.
	ErrLengthMismatch = errors.New("encoded length mismatch")

	// ErrIncompatibleCompression indicates a compression codec's original
	// primitive does not match the block it is attached to, or the delta
	// primitive class does not match the original's.
	ErrIncompatibleCompression = errors.New("incompatible compression primitive")
)

// Stream errors.
var (
	// ErrShortHeader indicates the stream ended inside the header, before any
	// entry could follow.
	ErrShortHeader = errors.New("stream header truncated")

	// ErrVersionMismatch indicates no schema accepted the stream's version byte.
	ErrVersionMismatch = errors.New("schema version mismatch")

	// ErrCustomInfoLength indicates the caller supplied custom header bytes
	// whose length differs from the schema's declared custom header length.
	ErrCustomInfoLength = errors.New("custom header info length mismatch")

	// ErrEntryShape indicates an entry's value count differs from the schema's
	// block count.
	ErrEntryShape = errors.New("entry shape mismatch")
)

// Schema errors.
var (
	// ErrPropertyBinding indicates a record property is missing or carries a
	// value of the wrong dynamic type.
	ErrPropertyBinding = errors.New("property binding failed")

	// ErrDuplicateBlockIndex indicates two blocks share the same index.
	ErrDuplicateBlockIndex = errors.New("duplicate block index")

	// ErrDuplicateProperty indicates two blocks share the same property name.
	ErrDuplicateProperty = errors.New("duplicate property name")

	// ErrEmptyProperty indicates a block has no property name.
	ErrEmptyProperty = errors.New("empty property name")

	// ErrInvalidIFrameInterval indicates a stream compression interval below 2.
	ErrInvalidIFrameInterval = errors.New("invalid i-frame interval")

	// ErrDuplicateVersion indicates a multi-version set already holds a schema
	// that accepts the version being added.
	ErrDuplicateVersion = errors.New("duplicate schema version")
)

// Schema JSON errors.
var (
	// ErrMalformedJSON indicates the schema JSON could not be parsed.
	ErrMalformedJSON = errors.New("malformed schema JSON")

	// ErrUnknownBlockKind indicates a block kind name matched no built-in kind
	// and no deserialization hook claimed it.
	ErrUnknownBlockKind = errors.New("unknown block kind")

	// ErrUnknownCompressionKind indicates a compression kind name matched no
	// built-in kind and no deserialization hook claimed it.
	ErrUnknownCompressionKind = errors.New("unknown compression kind")
)
