package generator

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/mobius-scheduler/vrptwgen/common"
	"github.com/mobius-scheduler/vrptwgen/dataset"
)

// Reindex builds the dense matrix of one metric for a sampled sequence. Cell
// (i, j) holds the raw-table length from the real id at sequence position i
// to the real id at position j; the diagonal is zero and never looked up.
func Reindex(table *dataset.PairTable, sequence []int, ids []common.LocationID) (*mat.Dense, error) {
	n := len(sequence)
	if n == 0 {
		return nil, errors.Wrap(common.ErrInvalidSize, "empty sequence")
	}
	realIDs, err := resolveIDs(sequence, ids)
	if err != nil {
		return nil, err
	}

	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			v, ok := table.Lookup(realIDs[i], realIDs[j])
			if !ok {
				return nil, errors.Wrapf(
					common.ErrLookup,
					"no raw entry for pair (%d, %d) at slots (%d, %d)",
					realIDs[i], realIDs[j], i, j,
				)
			}
			m.Set(i, j, v)
		}
	}
	return m, nil
}

// resolveIDs maps id-table positions to real location ids.
func resolveIDs(sequence []int, ids []common.LocationID) ([]common.LocationID, error) {
	realIDs := make([]common.LocationID, len(sequence))
	for i, p := range sequence {
		if p < 0 || p >= len(ids) {
			return nil, errors.Wrapf(
				common.ErrLookup,
				"position %d at slot %d outside id table of %d entries",
				p, i, len(ids),
			)
		}
		realIDs[i] = ids[p]
	}
	return realIDs, nil
}
