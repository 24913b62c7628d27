// Package dataset holds the base pool a generated instance is sampled from:
// the raw pairwise distance and time tables, the ordered id table and the
// geographic positions of every location.
package dataset

import (
	"github.com/pkg/errors"

	"github.com/mobius-scheduler/vrptwgen/common"
)

// PairwiseRecord is one directed entry of a raw distance or time table.
type PairwiseRecord struct {
	From   common.LocationID
	To     common.LocationID
	Length float64
}

// Dataset is the full base pool, loaded once before any sampling.
type Dataset struct {
	Distances []PairwiseRecord
	Times     []PairwiseRecord
	// IDs maps a pool position to a real location id; position 0 is the depot.
	IDs       []common.LocationID
	Positions []common.Position
}

// Validate checks that every table carries at least one row.
func (d *Dataset) Validate() error {
	switch {
	case len(d.Distances) == 0:
		return errors.Wrap(common.ErrFatalConfiguration, "distance table is empty")
	case len(d.Times) == 0:
		return errors.Wrap(common.ErrFatalConfiguration, "time table is empty")
	case len(d.IDs) == 0:
		return errors.Wrap(common.ErrFatalConfiguration, "id table is empty")
	case len(d.Positions) == 0:
		return errors.Wrap(common.ErrFatalConfiguration, "position table is empty")
	}
	return nil
}

type pairKey struct {
	from common.LocationID
	to   common.LocationID
}

// PairTable indexes a raw table by directed (from, to) pair. Only the
// direction stored in the raw table resolves; the reverse direction must be
// present as its own record.
type PairTable struct {
	lengths map[pairKey]float64
}

// NewPairTable builds the index once. When a pair is recorded more than once
// the first record wins.
func NewPairTable(records []PairwiseRecord) (*PairTable, error) {
	if len(records) == 0 {
		return nil, errors.Wrap(common.ErrFatalConfiguration, "raw pairwise table is empty")
	}
	t := &PairTable{lengths: make(map[pairKey]float64, len(records))}
	for _, r := range records {
		k := pairKey{from: r.From, to: r.To}
		if _, ok := t.lengths[k]; !ok {
			t.lengths[k] = r.Length
		}
	}
	return t, nil
}

// Lookup returns the recorded length of the directed pair (from, to).
func (t *PairTable) Lookup(from, to common.LocationID) (float64, bool) {
	v, ok := t.lengths[pairKey{from: from, to: to}]
	return v, ok
}

// Len returns the number of distinct directed pairs.
func (t *PairTable) Len() int {
	return len(t.lengths)
}

// PositionIndex resolves a real location id to its position.
type PositionIndex struct {
	positions map[common.LocationID]common.Position
}

func NewPositionIndex(positions []common.Position) (*PositionIndex, error) {
	if len(positions) == 0 {
		return nil, errors.Wrap(common.ErrFatalConfiguration, "position table is empty")
	}
	idx := &PositionIndex{positions: make(map[common.LocationID]common.Position, len(positions))}
	for _, p := range positions {
		if _, ok := idx.positions[p.ID]; !ok {
			idx.positions[p.ID] = p
		}
	}
	return idx, nil
}

func (idx *PositionIndex) Lookup(id common.LocationID) (common.Position, bool) {
	p, ok := idx.positions[id]
	return p, ok
}
