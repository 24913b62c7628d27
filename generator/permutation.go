package generator

import (
	"math/rand"

	"github.com/pkg/errors"

	"github.com/mobius-scheduler/vrptwgen/common"
)

// DepotPosition is the id-table position of the depot; it always occupies
// slot 0 of a sampled sequence.
const DepotPosition = 0

// SamplePermutation draws size distinct customer positions from a pool of
// poolSize id-table positions and prepends the depot. Customers are drawn
// from positions 1..poolSize-1 so the depot is never sampled twice. The
// shuffle consumes rng only, which makes the sequence reproducible per seed.
//
// This departs from shuffling the whole pool, depot position included, and
// from accepting zero customers: an instance always has at least one
// customer and never visits the depot as a customer.
func SamplePermutation(poolSize, size int, rng *rand.Rand) ([]int, error) {
	if size < 1 || size >= poolSize {
		return nil, errors.Wrapf(
			common.ErrInvalidSize,
			"cannot sample %d customers from a pool of %d locations (depot included)",
			size,
			poolSize,
		)
	}
	perm := rng.Perm(poolSize - 1)

	sequence := make([]int, 0, size+1)
	sequence = append(sequence, DepotPosition)
	for _, p := range perm[:size] {
		sequence = append(sequence, p+1)
	}
	return sequence, nil
}
