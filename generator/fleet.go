package generator

import (
	"math"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"github.com/mobius-scheduler/vrptwgen/common"
	"github.com/mobius-scheduler/vrptwgen/spec"
)

// ComputeFleet sizes a homogeneous fleet for the sampled demand. The minimum
// capacity is the largest demand any category defines, so one vehicle can
// always carry the largest possible customer. Delta adds that percentage of
// the remaining demand on top of the minimum.
func ComputeFleet(categories []spec.Category, demandIndex []int, delta uint) (common.Fleet, error) {
	if delta > spec.MaxDelta {
		return common.Fleet{}, errors.Wrapf(
			common.ErrInvalidSpecification, "delta %d exceeds %d", delta, spec.MaxDelta,
		)
	}
	if len(categories) == 0 {
		return common.Fleet{}, errors.Wrap(common.ErrInvalidSpecification, "no demand categories")
	}

	values := make([]float64, len(categories))
	for i, c := range categories {
		if math.IsNaN(c.Value) || math.IsInf(c.Value, 0) {
			return common.Fleet{}, errors.Wrapf(
				common.ErrInvalidSpecification, "demand category %d has non-finite value %v", i, c.Value,
			)
		}
		if c.Value < 0 {
			return common.Fleet{}, errors.Wrapf(
				common.ErrInvalidSpecification, "demand category %d has negative value %v", i, c.Value,
			)
		}
		values[i] = c.Value
	}
	maxDemand := floats.Max(values)
	if !(maxDemand > 0) {
		return common.Fleet{}, errors.Wrapf(
			common.ErrInvalidSpecification, "maximum demand %v is not positive", maxDemand,
		)
	}

	var sumOfDemands float64
	for slot, idx := range demandIndex {
		if idx < 0 || idx >= len(categories) {
			return common.Fleet{}, errors.Wrapf(
				common.ErrInvalidSpecification, "demand index %d at customer %d out of range", idx, slot,
			)
		}
		sumOfDemands += categories[idx].Value
	}

	minCapacity := maxDemand
	size := math.Ceil(sumOfDemands / minCapacity)
	// clamped so capacity never drops below the minimum when the total demand
	// is smaller than the largest category
	slack := math.Max(0, math.Ceil((sumOfDemands-minCapacity)*float64(delta)/100))

	log.Debugf(
		"[generator] demand sum %v, max demand %v, delta %d%%",
		sumOfDemands, maxDemand, delta,
	)
	return common.Fleet{
		Size:            uint(size),
		VehicleCapacity: minCapacity + slack,
	}, nil
}
