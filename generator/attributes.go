package generator

import (
	"fmt"
	"math/rand"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/mobius-scheduler/vrptwgen/spec"
)

// Domain is one sampled customer attribute.
type Domain int

const (
	TimeWindowDomain Domain = iota
	DemandDomain
	ServiceTimeDomain
)

func (d Domain) String() string {
	switch d {
	case TimeWindowDomain:
		return "time-window"
	case DemandDomain:
		return "demand"
	case ServiceTimeDomain:
		return "service-time"
	default:
		return fmt.Sprintf("domain(%d)", int(d))
	}
}

// Slots returns how many slots of an instance with the given number of
// customers receive a category. Service time also covers the depot slot.
func (d Domain) Slots(customers int) int {
	if d == ServiceTimeDomain {
		return customers + 1
	}
	return customers
}

// IntegrityWarning reports a category list whose weights do not add up to
// the nominal 100. Generation proceeds with the actual sum.
type IntegrityWarning struct {
	Domain Domain `json:"domain"`
	Sum    uint   `json:"sum"`
}

func (w IntegrityWarning) String() string {
	return fmt.Sprintf(
		"%s category weights sum to %d, not %d; normalising by %d",
		w.Domain, w.Sum, spec.NominalWeightSum, w.Sum,
	)
}

// AssignCategories draws one category index per slot from rng, in slot
// order.
func AssignCategories(domain Domain, weights []uint, slots int, rng *rand.Rand) ([]int, *IntegrityWarning, error) {
	sampler, err := NewCategoricalSampler(weights)
	if err != nil {
		return nil, nil, errors.WithMessagef(err, "%s categories", domain)
	}

	var warning *IntegrityWarning
	if sampler.Sum() != spec.NominalWeightSum {
		warning = &IntegrityWarning{Domain: domain, Sum: sampler.Sum()}
		log.Warnf("[generator] %s", warning)
	}

	indices := make([]int, 0, slots)
	for i := 0; i < slots; i++ {
		idx, err := sampler.Sample(rng.Float64())
		if err != nil {
			return nil, warning, errors.WithMessagef(err, "%s slot %d", domain, i)
		}
		indices = append(indices, idx)
	}
	return indices, warning, nil
}
