package common

// homogeneous fleet serving a generated instance
type Fleet struct {
	Size            uint    `json:"size"`
	VehicleCapacity float64 `json:"vehicle_capacity"`
}
