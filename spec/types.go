// Package spec holds the probabilistic specifications customer attributes are
// sampled from, and loads them from XML or YAML files.
package spec

// NominalWeightSum is the sum the weights of one category list are expected
// to add up to.
const NominalWeightSum = 100

// MaxDelta bounds the capacity slack percentage.
const MaxDelta = 100

// Category is one weighted outcome of a demand or service-time list.
type Category struct {
	Value  float64 `json:"value"`
	Weight uint    `json:"weight"`
}

// DepotWindow is the fixed time window of the depot. It carries no weight and
// is never sampled.
type DepotWindow struct {
	Opens  float64 `json:"opens"`
	Closes float64 `json:"closes"`
}

// CustomerWindow is one weighted time-window category for customers.
type CustomerWindow struct {
	Opens  float64 `json:"opens"`
	Closes float64 `json:"closes"`
	Weight uint    `json:"weight"`
}

type TimeWindowSpec struct {
	Depot     DepotWindow      `json:"depot"`
	Customers []CustomerWindow `json:"customers"`
}

// Weights returns the customer window weights in category order.
func (s *TimeWindowSpec) Weights() []uint {
	w := make([]uint, len(s.Customers))
	for i, c := range s.Customers {
		w[i] = c.Weight
	}
	return w
}

// DemandSpec describes customer demand levels. Delta (0..100) is the
// percentage of slack added to the minimum vehicle capacity.
type DemandSpec struct {
	Delta      uint       `json:"delta"`
	Categories []Category `json:"categories"`
}

func (s *DemandSpec) Weights() []uint {
	return weights(s.Categories)
}

type ServiceTimeSpec struct {
	Categories []Category `json:"categories"`
}

func (s *ServiceTimeSpec) Weights() []uint {
	return weights(s.Categories)
}

func weights(categories []Category) []uint {
	w := make([]uint, len(categories))
	for i, c := range categories {
		w[i] = c.Weight
	}
	return w
}
