// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/telekom/icmpdiag/internal/traceroute"
	"github.com/telekom/icmpdiag/pkg/checks"
)

// metrics defines the metric collectors of the traceroute check
type metrics struct {
	hops    *prometheus.GaugeVec
	reached *prometheus.GaugeVec
	rtt     *prometheus.GaugeVec
	count   *prometheus.CounterVec
}

// newMetrics initializes metric collectors of the traceroute check
func newMetrics() metrics {
	return metrics{
		hops: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "icmpdiag_traceroute_hops",
				Help: "Number of hops of the last sweep to the target.",
			},
			[]string{"target"},
		),
		reached: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "icmpdiag_traceroute_reached",
				Help: "Specifies if the last sweep reached the target.",
			},
			[]string{"target"},
		),
		rtt: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "icmpdiag_traceroute_rtt_avg_milliseconds",
				Help: "Average round-trip time of the last hop of the sweep.",
			},
			[]string{"target"},
		),
		count: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "icmpdiag_traceroute_check_count",
				Help: "Total number of sweeps performed to the target.",
			},
			[]string{"target"},
		),
	}
}

// GetCollectors returns all metric collectors
func (m *metrics) GetCollectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.hops,
		m.reached,
		m.rtt,
		m.count,
	}
}

// Set sets the metrics of one sweep
func (m *metrics) Set(target string, res traceroute.Result) {
	m.count.WithLabelValues(target).Inc()
	m.hops.WithLabelValues(target).Set(float64(len(res.Hops)))

	reached := 0.0
	if res.Reached {
		reached = 1
	}
	m.reached.WithLabelValues(target).Set(reached)

	if n := len(res.Hops); n > 0 && res.Hops[n-1].Summary.HasData() {
		m.rtt.WithLabelValues(target).Set(float64(res.Hops[n-1].Summary.AvgRTT))
	}
}

// Remove removes the metrics of one target.
// Returns an [checks.ErrMetricNotFound] if no metric carried the target.
func (m *metrics) Remove(target string) error {
	found := false
	for _, vec := range []*prometheus.MetricVec{
		m.hops.MetricVec,
		m.reached.MetricVec,
		m.rtt.MetricVec,
		m.count.MetricVec,
	} {
		if vec.DeleteLabelValues(target) {
			found = true
		}
	}

	if !found {
		return checks.ErrMetricNotFound{Label: target}
	}
	return nil
}
