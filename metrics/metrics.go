// Package metrics records generation figures in a dedicated Prometheus
// registry and dumps them in the node-exporter textfile format.
package metrics

import (
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mobius-scheduler/vrptwgen/generator"
)

const namespace = "vrptwgen"

// Metrics is the set of collectors for one generator run.
type Metrics struct {
	// Registry holds only the collectors below.
	Registry *prometheus.Registry

	// Customers is the number of sampled customers, depot excluded.
	Customers prometheus.Gauge
	// FleetSize is the number of vehicles of the generated fleet.
	FleetSize prometheus.Gauge
	// VehicleCapacity is the capacity of each vehicle.
	VehicleCapacity prometheus.Gauge
	// IntegrityWarnings counts category lists whose weights missed the
	// nominal sum, by domain.
	IntegrityWarnings *prometheus.CounterVec
	// GenerationSeconds is the wall time spent in generation.
	GenerationSeconds prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Customers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "customers", Help: "Sampled customers, depot excluded.",
		}),
		FleetSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "fleet_size", Help: "Vehicles in the generated fleet.",
		}),
		VehicleCapacity: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "vehicle_capacity", Help: "Capacity of each vehicle.",
		}),
		IntegrityWarnings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "integrity_warnings_total", Help: "Category lists not summing to 100, by domain.",
		}, []string{"domain"}),
		GenerationSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "generation_duration_seconds", Help: "Wall time spent generating the instance.",
		}),
	}
	m.Registry.MustRegister(
		m.Customers,
		m.FleetSize,
		m.VehicleCapacity,
		m.IntegrityWarnings,
		m.GenerationSeconds,
	)
	return m
}

// Observe records the figures of a generated instance.
func (m *Metrics) Observe(inst *generator.Instance, elapsed time.Duration) {
	fleet := inst.Fleet()
	m.Customers.Set(float64(inst.Size()))
	m.FleetSize.Set(float64(fleet.Size))
	m.VehicleCapacity.Set(fleet.VehicleCapacity)
	for _, w := range inst.Warnings() {
		m.IntegrityWarnings.WithLabelValues(w.Domain.String()).Inc()
	}
	m.GenerationSeconds.Set(elapsed.Seconds())
}

// WriteTextfile writes the registry to path, replacing it atomically.
func (m *Metrics) WriteTextfile(path string) error {
	return errors.Wrapf(
		prometheus.WriteToTextfile(path, m.Registry),
		"[metrics] error writing textfile %s", path,
	)
}
