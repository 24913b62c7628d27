package generator

import (
	"github.com/mobius-scheduler/vrptwgen/common"
	"github.com/mobius-scheduler/vrptwgen/dataset"
	"github.com/mobius-scheduler/vrptwgen/spec"
)

// idAt is the real id stored at an id-table position of the test pool.
func idAt(position int) common.LocationID {
	return common.LocationID(100 + position)
}

// rawDistance encodes both endpoints so every cell of a reindexed matrix can
// be traced back to its pair.
func rawDistance(from, to common.LocationID) float64 {
	return float64(from)*1000 + float64(to)
}

func testDataset(pool int) *dataset.Dataset {
	d := &dataset.Dataset{}
	for p := 0; p < pool; p++ {
		id := idAt(p)
		d.IDs = append(d.IDs, id)
		d.Positions = append(d.Positions, common.Position{
			ID:       id,
			Location: common.Location{Latitude: 52 + float64(p)/100, Longitude: -1 - float64(p)/100},
		})
		for q := 0; q < pool; q++ {
			if p == q {
				continue
			}
			to := idAt(q)
			d.Distances = append(d.Distances, dataset.PairwiseRecord{From: id, To: to, Length: rawDistance(id, to)})
			d.Times = append(d.Times, dataset.PairwiseRecord{From: id, To: to, Length: rawDistance(id, to) / 10})
		}
	}
	return d
}

func testInput(pool int) Input {
	return Input{
		Dataset: testDataset(pool),
		TimeWindows: &spec.TimeWindowSpec{
			Depot: spec.DepotWindow{Opens: 0, Closes: 1440},
			Customers: []spec.CustomerWindow{
				{Opens: 480, Closes: 720, Weight: 40},
				{Opens: 720, Closes: 960, Weight: 35},
				{Opens: 960, Closes: 1200, Weight: 25},
			},
		},
		Demands: &spec.DemandSpec{
			Delta: 20,
			Categories: []spec.Category{
				{Value: 5, Weight: 50},
				{Value: 10, Weight: 30},
				{Value: 20, Weight: 20},
			},
		},
		ServiceTimes: &spec.ServiceTimeSpec{
			Categories: []spec.Category{
				{Value: 10, Weight: 70},
				{Value: 30, Weight: 30},
			},
		},
	}
}
