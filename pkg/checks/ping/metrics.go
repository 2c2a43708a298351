// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package ping

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/telekom/icmpdiag/internal/ping"
	"github.com/telekom/icmpdiag/pkg/checks"
)

// metrics defines the metric collectors of the ping check
type metrics struct {
	minRTT     *prometheus.GaugeVec
	maxRTT     *prometheus.GaugeVec
	avgRTT     *prometheus.GaugeVec
	packetLoss *prometheus.GaugeVec
	count      *prometheus.CounterVec
	histogram  *prometheus.HistogramVec
}

// newMetrics initializes metric collectors of the ping check
func newMetrics() metrics {
	return metrics{
		minRTT: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "icmpdiag_ping_rtt_min_milliseconds",
				Help: "Minimum round-trip time of the last ping run.",
			},
			[]string{"target"},
		),
		maxRTT: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "icmpdiag_ping_rtt_max_milliseconds",
				Help: "Maximum round-trip time of the last ping run.",
			},
			[]string{"target"},
		),
		avgRTT: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "icmpdiag_ping_rtt_avg_milliseconds",
				Help: "Average round-trip time of the last ping run.",
			},
			[]string{"target"},
		),
		packetLoss: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "icmpdiag_ping_packet_loss_percent",
				Help: "Percentage of echo requests of the last ping run without a valid reply.",
			},
			[]string{"target"},
		),
		count: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "icmpdiag_ping_check_count",
				Help: "Total number of ping runs performed on the target.",
			},
			[]string{"target"},
		),
		histogram: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "icmpdiag_ping_rtt_seconds",
				Help: "Histogram of the round-trip times of answered echo requests in seconds.",
			},
			[]string{"target"},
		),
	}
}

// GetCollectors returns all metric collectors
func (m *metrics) GetCollectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.minRTT,
		m.maxRTT,
		m.avgRTT,
		m.packetLoss,
		m.count,
		m.histogram,
	}
}

// Set sets the metrics of one ping run
func (m *metrics) Set(target string, res ping.Result) {
	m.count.WithLabelValues(target).Inc()
	m.packetLoss.WithLabelValues(target).Set(float64(res.Summary.PacketLoss))
	if res.Summary.HasData() {
		m.minRTT.WithLabelValues(target).Set(float64(res.Summary.MinRTT))
		m.maxRTT.WithLabelValues(target).Set(float64(res.Summary.MaxRTT))
		m.avgRTT.WithLabelValues(target).Set(float64(res.Summary.AvgRTT))
	}
	for _, ev := range res.Probes {
		if ev.Answered() {
			m.histogram.WithLabelValues(target).Observe(ev.RTT.Seconds())
		}
	}
}

// Remove removes the metrics of one target.
// Returns an [checks.ErrMetricNotFound] if no metric carried the target.
func (m *metrics) Remove(target string) error {
	found := false
	for _, vec := range []*prometheus.MetricVec{
		m.minRTT.MetricVec,
		m.maxRTT.MetricVec,
		m.avgRTT.MetricVec,
		m.packetLoss.MetricVec,
		m.count.MetricVec,
		m.histogram.MetricVec,
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
