package schema

import (
	"fmt"

	"github.com/arloliu/keyframe/errs"
)

// MultiVersion is an ordered collection of schemas dispatched on a stream's
// version byte. Selection is stateless: Select returns the matching schema
// and the decoder holds that reference for the remainder of the stream.
type MultiVersion struct {
	fingerprints map[uint64]struct{}
	schemas      []*Schema
}

// NewMultiVersion creates a multi-version set from the given schemas, in
// order. Dispatch order is registration order: the first schema whose
// ValidateVersion accepts a version byte wins.
//
// Returns:
//   - *MultiVersion: The set
//   - error: ErrDuplicateVersion when a schema's version is already claimed,
//     or a duplicate-fingerprint registration
func NewMultiVersion(schemas ...*Schema) (*MultiVersion, error) {
	m := &MultiVersion{
		fingerprints: make(map[uint64]struct{}, len(schemas)),
	}

	for _, s := range schemas {
		if err := m.Add(s); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Add appends a schema to the dispatch order.
//
// Returns:
//   - error: ErrDuplicateVersion when an earlier schema already accepts the
//     new schema's version byte or the exact schema is already registered
func (m *MultiVersion) Add(s *Schema) error {
	fp := s.Fingerprint()
	if _, dup := m.fingerprints[fp]; dup {
		return fmt.Errorf("%w: schema fingerprint %016x already registered", errs.ErrDuplicateVersion, fp)
	}

	for _, existing := range m.schemas {
		if existing.ValidateVersion(s.Version()) {
			return fmt.Errorf("%w: version %d already claimed", errs.ErrDuplicateVersion, s.Version())
		}
	}

	m.fingerprints[fp] = struct{}{}
	m.schemas = append(m.schemas, s)

	return nil
}

// Select returns the first schema accepting the version byte.
func (m *MultiVersion) Select(v byte) (*Schema, bool) {
	for _, s := range m.schemas {
		if s.ValidateVersion(v) {
			return s, true
		}
	}

	return nil, false
}

// Schemas returns the registered schemas in dispatch order. The returned
// slice must not be modified.
func (m *MultiVersion) Schemas() []*Schema { return m.schemas }

// Len returns the number of registered schemas.
func (m *MultiVersion) Len() int { return len(m.schemas) }
