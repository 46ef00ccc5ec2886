package pgns

import (
	"fmt"
)

// Registry is lookup table from PGN number to its definition. Registry is built once and is read-only
// after construction so it is safe for concurrent use without coordination.
type Registry struct {
	pgns map[uint32]PGN
}

// NewRegistry creates Registry out of given definitions. Definitions are validated and duplicate PGN
// numbers are rejected.
func NewRegistry(defs ...PGN) (*Registry, error) {
	pgns := make(map[uint32]PGN, len(defs))
	for _, d := range defs {
		if _, ok := pgns[d.PGN]; ok {
			return nil, fmt.Errorf("duplicate definition for PGN: %v", d.PGN)
		}
		for _, f := range d.Fields {
			if err := f.Validate(); err != nil {
				return nil, fmt.Errorf("PGN: %v, err: %w", d.PGN, err)
			}
		}
		pgns[d.PGN] = d
	}
	return &Registry{pgns: pgns}, nil
}

// Find returns definition for given PGN number.
func (r *Registry) Find(pgn uint32) (PGN, bool) {
	def, ok := r.pgns[pgn]
	return def, ok
}

// Count returns number of registered definitions.
func (r *Registry) Count() int {
	return len(r.pgns)
}
