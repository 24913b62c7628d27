package generator

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"github.com/mobius-scheduler/vrptwgen/common"
)

// CategoricalSampler maps a uniform draw in [0,1) to a category index by
// roulette-wheel selection over the normalised weights.
type CategoricalSampler struct {
	// cumulative[i] is the lower bound of category i; cumulative[k] closes
	// the last category and a trailing 1 absorbs floating-point drift.
	cumulative []float64
	sum        uint
	// last category with a positive weight
	last int
}

// NewCategoricalSampler normalises weights by their actual sum, which may
// differ from the nominal 100.
func NewCategoricalSampler(weights []uint) (*CategoricalSampler, error) {
	if len(weights) == 0 {
		return nil, errors.Wrap(common.ErrInvalidSpecification, "no categories to sample from")
	}
	var sum uint
	last := 0
	for i, w := range weights {
		if sum > math.MaxUint-w {
			return nil, errors.Wrapf(common.ErrInvalidSpecification, "category weights overflow at category %d", i)
		}
		sum += w
		if w > 0 {
			last = i
		}
	}
	if sum == 0 {
		return nil, errors.Wrap(common.ErrInvalidSpecification, "category weights sum to zero")
	}

	k := len(weights)
	normalised := make([]float64, k)
	for i, w := range weights {
		normalised[i] = float64(w) / float64(sum)
	}
	cumulative := make([]float64, k+2)
	floats.CumSum(cumulative[1:k+1], normalised)
	cumulative[k+1] = 1

	return &CategoricalSampler{cumulative: cumulative, sum: sum, last: last}, nil
}

// Sum returns the actual weight sum used for normalisation.
func (s *CategoricalSampler) Sum() uint {
	return s.sum
}

// Categories returns the number of categories.
func (s *CategoricalSampler) Categories() int {
	return len(s.cumulative) - 2
}

// Cumulative returns a copy of the cumulative distribution, sentinel included.
func (s *CategoricalSampler) Cumulative() []float64 {
	return append([]float64(nil), s.cumulative...)
}

// Sample returns the category i with draw in [c[i], c[i+1]). A draw on an
// interior boundary belongs to the upper interval. A draw that only the
// drift sentinel covers goes to the last category with a positive weight.
func (s *CategoricalSampler) Sample(draw float64) (int, error) {
	if math.IsNaN(draw) || draw < 0 || draw >= 1 {
		return 0, errors.Wrapf(common.ErrSampling, "draw %v outside [0,1)", draw)
	}
	k := s.Categories()
	for i := 0; i+1 < len(s.cumulative); i++ {
		if s.cumulative[i] <= draw && draw < s.cumulative[i+1] {
			if i >= k {
				return s.last, nil
			}
			return i, nil
		}
	}
	return 0, errors.Wrapf(
		common.ErrSampling,
		"draw %v not covered by cumulative distribution %v",
		draw,
		s.cumulative,
	)
}
