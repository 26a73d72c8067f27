// Package metrics owns the Prometheus collectors published by the service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "warehouse"

// Metrics groups every collector of the service. Create it once per process with New
// and share it between the HTTP adapter and the jobs.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	pallets          prometheus.Gauge
	boxes            prometheus.Gauge
	unplacedBoxes    prometheus.Gauge
	palletsByExpiry  *prometheus.GaugeVec
	inventoryUpdated prometheus.Gauge
}

// New registers the collectors on a fresh registry together with the Go runtime and
// process collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		registry: registry,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		pallets: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "inventory",
			Name:      "pallets",
			Help:      "Number of stored pallets.",
		}),
		boxes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "inventory",
			Name:      "boxes",
			Help:      "Number of stored boxes.",
		}),
		unplacedBoxes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "inventory",
			Name:      "unplaced_boxes",
			Help:      "Number of boxes not standing on any pallet.",
		}),
		palletsByExpiry: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "inventory",
			Name:      "pallets_by_expire_date",
			Help:      "Number of pallets per derived expire date.",
		}, []string{"expire_date"}),
		inventoryUpdated: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "inventory",
			Name:      "last_refresh_timestamp_seconds",
			Help:      "Unix time of the last inventory refresh.",
		}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.pallets,
		m.boxes,
		m.unplacedBoxes,
		m.palletsByExpiry,
		m.inventoryUpdated,
	)
	return m
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Inventory is a point-in-time summary of the warehouse.
type Inventory struct {
	Pallets         int
	Boxes           int
	UnplacedBoxes   int
	PalletsByExpiry map[string]int
	RefreshedAt     time.Time
}

// SetInventory replaces the inventory gauges with snapshot values. Expire dates that
// disappeared since the previous refresh are dropped.
func (m *Metrics) SetInventory(inv Inventory) {
	m.pallets.Set(float64(inv.Pallets))
	m.boxes.Set(float64(inv.Boxes))
	m.unplacedBoxes.Set(float64(inv.UnplacedBoxes))

	m.palletsByExpiry.Reset()
	for expire, count := range inv.PalletsByExpiry {
		m.palletsByExpiry.WithLabelValues(expire).Set(float64(count))
	}
	m.inventoryUpdated.Set(float64(inv.RefreshedAt.Unix()))
}
