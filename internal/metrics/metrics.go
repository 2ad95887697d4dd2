// internal/metrics/metrics.go
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tamzrod/f70-replicator/internal/protocol"
)

const namespace = "f70"

// NewRegistry creates a private registry with the Go and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// Handler serves reg in the Prometheus exposition format.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}

// ---- driver ----

// DriverMetrics counts wire exchanges. A nil *DriverMetrics is a no-op.
type DriverMetrics struct {
	Queries       *prometheus.CounterVec   // labels: mnemonic, result
	Commands      *prometheus.CounterVec   // labels: mnemonic, result
	QueryDuration *prometheus.HistogramVec // labels: mnemonic
}

// NewDriverMetrics registers and returns the driver metrics.
func NewDriverMetrics(reg prometheus.Registerer) *DriverMetrics {
	m := &DriverMetrics{
		Queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queries_total",
			Help:      "Queries sent to the compressor by result.",
		}, []string{"mnemonic", "result"}),
		Commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Write-only commands sent to the compressor by result.",
		}, []string{"mnemonic", "result"}),
		QueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_duration_seconds",
			Help:      "Time from frame write to terminated response.",
			Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"mnemonic"}),
	}
	reg.MustRegister(m.Queries, m.Commands, m.QueryDuration)
	return m
}

// ObserveQuery records one query outcome.
func (m *DriverMetrics) ObserveQuery(mnemonic, result string, d time.Duration) {
	if m == nil {
		return
	}
	m.Queries.WithLabelValues(mnemonic, result).Inc()
	if result == "ok" {
		m.QueryDuration.WithLabelValues(mnemonic).Observe(d.Seconds())
	}
}

// ObserveCommand records one write-only command outcome.
func (m *DriverMetrics) ObserveCommand(mnemonic, result string) {
	if m == nil {
		return
	}
	m.Commands.WithLabelValues(mnemonic, result).Inc()
}

// ---- poll ----

// PollMetrics mirrors the latest compressor readings. A nil *PollMetrics is a no-op.
type PollMetrics struct {
	Polls          *prometheus.CounterVec // labels: result
	Temperature    *prometheus.GaugeVec   // labels: channel
	Pressure       *prometheus.GaugeVec   // labels: channel
	StatusBits     prometheus.Gauge
	State          prometheus.Gauge
	Alarm          *prometheus.GaugeVec // labels: name
	OperatingHours prometheus.Gauge
	Health         prometheus.Gauge
}

// NewPollMetrics registers and returns the poll metrics.
func NewPollMetrics(reg prometheus.Registerer) *PollMetrics {
	m := &PollMetrics{
		Polls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "poll_total",
			Help:      "Poll cycles by result.",
		}, []string{"result"}),
		Temperature: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "temperature_celsius",
			Help:      "Last temperature reading per channel.",
		}, []string{"channel"}),
		Pressure: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pressure_psig",
			Help:      "Last pressure reading per channel.",
		}, []string{"channel"}),
		StatusBits: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "status_bits",
			Help:      "Raw $STA status word.",
		}),
		State: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "state",
			Help:      "Operating state code (0-7).",
		}),
		Alarm: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "alarm",
			Help:      "1 while the named alarm flag is set.",
		}, []string{"name"}),
		OperatingHours: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "operating_hours",
			Help:      "Elapsed operating hours reported by $ID1.",
		}),
		Health: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "health",
			Help:      "Device health code (0 unknown, 1 ok, 2 error).",
		}),
	}
	reg.MustRegister(m.Polls, m.Temperature, m.Pressure, m.StatusBits, m.State, m.Alarm, m.OperatingHours, m.Health)
	return m
}

// PollDone counts one poll cycle.
func (m *PollMetrics) PollDone(result string) {
	if m == nil {
		return
	}
	m.Polls.WithLabelValues(result).Inc()
}

func (m *PollMetrics) SetTemperatures(t [protocol.TemperatureChannels]int) {
	if m == nil {
		return
	}
	for i, v := range t {
		m.Temperature.WithLabelValues(strconv.Itoa(i + 1)).Set(float64(v))
	}
}

func (m *PollMetrics) SetPressures(p [protocol.PressureChannels]int) {
	if m == nil {
		return
	}
	for i, v := range p {
		m.Pressure.WithLabelValues(strconv.Itoa(i + 1)).Set(float64(v))
	}
}

func (m *PollMetrics) SetStatus(s protocol.StatusBits) {
	if m == nil {
		return
	}
	m.StatusBits.Set(float64(s.Raw))
	m.State.Set(float64(s.StateNumber))

	active := make(map[string]bool)
	for _, name := range s.Alarms() {
		active[name] = true
	}
	for _, name := range protocol.AlarmNames() {
		v := 0.0
		if active[name] {
			v = 1
		}
		m.Alarm.WithLabelValues(name).Set(v)
	}
}

func (m *PollMetrics) SetOperatingHours(h float64) {
	if m == nil {
		return
	}
	m.OperatingHours.Set(h)
}

func (m *PollMetrics) SetHealth(code uint16) {
	if m == nil {
		return
	}
	m.Health.Set(float64(code))
}
