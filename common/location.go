package common

import "fmt"

// real-world identifier of a location in the base dataset
type LocationID uint

// geographic coordinates
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// position of a location in the base dataset
type Position struct {
	ID       LocationID `json:"id"`
	Location Location   `json:"location"`
}

func (p Position) String() string {
	return fmt.Sprintf(
		"(%d: %0.6f, %0.6f)",
		p.ID,
		p.Location.Latitude,
		p.Location.Longitude,
	)
}
