package generator

import (
	"math/rand"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"

	"github.com/mobius-scheduler/vrptwgen/common"
	"github.com/mobius-scheduler/vrptwgen/dataset"
	"github.com/mobius-scheduler/vrptwgen/spec"
)

// Seeds are the four independent seeds of one instance. Each seeds its own
// stream and no stream is shared between domains.
type Seeds struct {
	Matrix      int64 `json:"matrix"`
	TimeWindow  int64 `json:"time_window"`
	Demand      int64 `json:"demand"`
	ServiceTime int64 `json:"service_time"`
}

// Input is everything an instance is generated from.
type Input struct {
	Dataset      *dataset.Dataset
	TimeWindows  *spec.TimeWindowSpec
	Demands      *spec.DemandSpec
	ServiceTimes *spec.ServiceTimeSpec
}

func (in Input) validate() error {
	switch {
	case in.Dataset == nil:
		return errors.Wrap(common.ErrFatalConfiguration, "no dataset")
	case in.TimeWindows == nil:
		return errors.Wrap(common.ErrFatalConfiguration, "no time-window specification")
	case in.Demands == nil:
		return errors.Wrap(common.ErrFatalConfiguration, "no demand specification")
	case in.ServiceTimes == nil:
		return errors.Wrap(common.ErrFatalConfiguration, "no service-time specification")
	}
	return in.Dataset.Validate()
}

// Instance is one generated VRPTW instance. It is assembled once by Generate
// and exposes no way to modify it: accessors return copies or read-only views.
type Instance struct {
	size  int
	seeds Seeds

	locationIDs []common.LocationID
	positions   []common.Position
	distances   *mat.Dense
	times       *mat.Dense

	timeWindowIndex  []int
	demandIndex      []int
	serviceTimeIndex []int
	fleet            common.Fleet
	warnings         []IntegrityWarning

	depotWindow     spec.DepotWindow
	customerWindows []spec.CustomerWindow
	demands         []spec.Category
	serviceTimes    []spec.Category
}

// Generate samples size customers and assembles the instance. The streams
// are consumed in a fixed order: permutation, time windows, demands, service
// times.
func Generate(in Input, size int, seeds Seeds) (*Instance, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	distanceTable, err := dataset.NewPairTable(in.Dataset.Distances)
	if err != nil {
		return nil, errors.WithMessage(err, "distances")
	}
	timeTable, err := dataset.NewPairTable(in.Dataset.Times)
	if err != nil {
		return nil, errors.WithMessage(err, "times")
	}
	positionIndex, err := dataset.NewPositionIndex(in.Dataset.Positions)
	if err != nil {
		return nil, err
	}

	// permutation
	ids := in.Dataset.IDs
	sequence, err := SamplePermutation(len(ids), size, newRand(seeds.Matrix))
	if err != nil {
		return nil, err
	}
	locationIDs, err := resolveIDs(sequence, ids)
	if err != nil {
		return nil, err
	}
	log.Debugf("[generator] sampled positions: %v", sequence)

	// matrices
	distances, err := Reindex(distanceTable, sequence, ids)
	if err != nil {
		return nil, errors.WithMessage(err, "distance matrix")
	}
	times, err := Reindex(timeTable, sequence, ids)
	if err != nil {
		return nil, errors.WithMessage(err, "time matrix")
	}

	// attributes
	var warnings []IntegrityWarning
	assign := func(d Domain, weights []uint, seed int64) ([]int, error) {
		idx, w, err := AssignCategories(d, weights, d.Slots(size), newRand(seed))
		if w != nil {
			warnings = append(warnings, *w)
		}
		return idx, err
	}
	timeWindowIndex, err := assign(TimeWindowDomain, in.TimeWindows.Weights(), seeds.TimeWindow)
	if err != nil {
		return nil, err
	}
	demandIndex, err := assign(DemandDomain, in.Demands.Weights(), seeds.Demand)
	if err != nil {
		return nil, err
	}
	serviceTimeIndex, err := assign(ServiceTimeDomain, in.ServiceTimes.Weights(), seeds.ServiceTime)
	if err != nil {
		return nil, err
	}

	// fleet
	fleet, err := ComputeFleet(in.Demands.Categories, demandIndex, in.Demands.Delta)
	if err != nil {
		return nil, err
	}
	log.Debugf("[generator] fleet: %d vehicles of capacity %v", fleet.Size, fleet.VehicleCapacity)

	// assembly
	positions := make([]common.Position, len(locationIDs))
	for slot, id := range locationIDs {
		p, ok := positionIndex.Lookup(id)
		if !ok {
			return nil, errors.Wrapf(common.ErrLookup, "no position for location %d at slot %d", id, slot)
		}
		positions[slot] = p
	}
	log.Debugf("[generator] real ids: %v", positions)

	return &Instance{
		size:             size,
		seeds:            seeds,
		locationIDs:      locationIDs,
		positions:        positions,
		distances:        distances,
		times:            times,
		timeWindowIndex:  timeWindowIndex,
		demandIndex:      demandIndex,
		serviceTimeIndex: serviceTimeIndex,
		fleet:            fleet,
		warnings:         warnings,
		depotWindow:      in.TimeWindows.Depot,
		customerWindows:  append([]spec.CustomerWindow(nil), in.TimeWindows.Customers...),
		demands:          append([]spec.Category(nil), in.Demands.Categories...),
		serviceTimes:     append([]spec.Category(nil), in.ServiceTimes.Categories...),
	}, nil
}

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Size returns the number of customers, depot excluded.
func (inst *Instance) Size() int { return inst.size }

func (inst *Instance) Seeds() Seeds { return inst.seeds }

// LocationIDs returns the real ids in slot order, depot first.
func (inst *Instance) LocationIDs() []common.LocationID {
	return append([]common.LocationID(nil), inst.locationIDs...)
}

// Positions returns the resolved positions in slot order, depot first.
func (inst *Instance) Positions() []common.Position {
	return append([]common.Position(nil), inst.positions...)
}

// DistanceMatrix returns a read-only view of the (N+1)x(N+1) distances.
func (inst *Instance) DistanceMatrix() mat.Matrix { return readOnly{inst.distances} }

// TimeMatrix returns a read-only view of the (N+1)x(N+1) travel times.
func (inst *Instance) TimeMatrix() mat.Matrix { return readOnly{inst.times} }

// TimeWindowIndex has one entry per customer; entry i-1 belongs to slot i.
func (inst *Instance) TimeWindowIndex() []int { return append([]int(nil), inst.timeWindowIndex...) }

// DemandIndex has one entry per customer; entry i-1 belongs to slot i.
func (inst *Instance) DemandIndex() []int { return append([]int(nil), inst.demandIndex...) }

// ServiceTimeIndex has one entry per slot, depot included; entry i belongs to
// slot i and the depot entry is never used.
func (inst *Instance) ServiceTimeIndex() []int { return append([]int(nil), inst.serviceTimeIndex...) }

func (inst *Instance) Fleet() common.Fleet { return inst.fleet }

// Warnings returns the integrity warnings raised while sampling.
func (inst *Instance) Warnings() []IntegrityWarning {
	return append([]IntegrityWarning(nil), inst.warnings...)
}

// Stop is one row of a Solomon-style customer table.
type Stop struct {
	ID          common.LocationID `json:"id"`
	Location    common.Location   `json:"location"`
	Demand      float64           `json:"demand"`
	ReadyTime   float64           `json:"ready_time"`
	DueDate     float64           `json:"due_date"`
	ServiceTime float64           `json:"service_time"`
}

// Stops resolves every slot to its attributes, depot first. The depot has
// zero demand and zero service time and uses the dedicated depot window.
func (inst *Instance) Stops() []Stop {
	stops := make([]Stop, len(inst.locationIDs))
	for slot, p := range inst.positions {
		s := Stop{ID: p.ID, Location: p.Location}
		if slot == 0 {
			s.ReadyTime = inst.depotWindow.Opens
			s.DueDate = inst.depotWindow.Closes
		} else {
			w := inst.customerWindows[inst.timeWindowIndex[slot-1]]
			s.ReadyTime = w.Opens
			s.DueDate = w.Closes
			s.Demand = inst.demands[inst.demandIndex[slot-1]].Value
			s.ServiceTime = inst.serviceTimes[inst.serviceTimeIndex[slot]].Value
		}
		stops[slot] = s
	}
	return stops
}

// readOnly hides the mutating methods of a dense matrix.
type readOnly struct {
	m *mat.Dense
}

func (r readOnly) Dims() (int, int)    { return r.m.Dims() }
func (r readOnly) At(i, j int) float64 { return r.m.At(i, j) }
func (r readOnly) T() mat.Matrix       { return mat.Transpose{Matrix: r} }
