// Package schema models the shape of a data entry: an ordered list of typed
// blocks, a version byte, optional I-frame cadence and an optional
// fixed-length custom header region.
//
// Schemas are built once — from a record descriptor or from persisted JSON —
// and are immutable afterwards. The stream package borrows a schema for the
// lifetime of an encoder or decoder.
package schema
