// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

// Package stats aggregates round-trip samples of a reporting window.
package stats

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrEmptyWindow is returned when statistics are requested for a window without samples.
var ErrEmptyWindow = errors.New("no data")

// Window accumulates the RTT samples and probe counters of one reporting
// unit: the four probes of a ping or of a single traceroute TTL.
// The zero value is an empty window.
type Window struct {
	// samples in milliseconds, in arrival order.
	samples []float64
	sent    int
	dropped int
}

// AddSample records the round-trip time of a probe.
func (w *Window) AddSample(rtt time.Duration) {
	w.samples = append(w.samples, float64(rtt)/float64(time.Millisecond))
}

// MarkSent counts a probe answered by a valid reply.
func (w *Window) MarkSent() { w.sent++ }

// MarkDropped counts a lost or rejected probe.
func (w *Window) MarkDropped() { w.dropped++ }

// Len returns the number of samples.
func (w *Window) Len() int { return len(w.samples) }

// Sent returns the number of probes counted as sent.
func (w *Window) Sent() int { return w.sent }

// Dropped returns the number of probes counted as dropped.
func (w *Window) Dropped() int { return w.dropped }

// Reset clears all samples and both counters.
func (w *Window) Reset() {
	w.samples = nil
	w.sent = 0
	w.dropped = 0
}

// RTT returns the minimum (truncated), maximum (rounded up) and mean
// (truncated) round-trip time in whole milliseconds.
// Returns [ErrEmptyWindow] if no sample was recorded.
func (w *Window) RTT() (minRTT, maxRTT, avgRTT int, err error) {
	if len(w.samples) == 0 {
		return 0, 0, 0, ErrEmptyWindow
	}
	minRTT, maxRTT, avgRTT = w.rtt()
	return minRTT, maxRTT, avgRTT, nil
}

// rtt computes the RTT statistics of a non-empty window.
func (w *Window) rtt() (minRTT, maxRTT, avgRTT int) {
	lo, hi, sum := w.samples[0], w.samples[0], 0.0
	for _, s := range w.samples {
		lo = math.Min(lo, s)
		hi = math.Max(hi, s)
		sum += s
	}
	return int(lo), int(math.Ceil(hi)), int(sum / float64(len(w.samples)))
}

// PacketLoss returns the share of dropped probes in percent, truncated.
// A window without any counted probe has no loss.
func (w *Window) PacketLoss() int {
	total := w.sent + w.dropped
	if total == 0 {
		return 0
	}
	return w.dropped * 100 / total
}

// Summary returns a snapshot of the window.
func (w *Window) Summary() Summary {
	s := Summary{
		Samples:    len(w.samples),
		Sent:       w.sent,
		Dropped:    w.dropped,
		PacketLoss: w.PacketLoss(),
	}
	if len(w.samples) > 0 {
		s.MinRTT, s.MaxRTT, s.AvgRTT = w.rtt()
	}
	return s
}

// Summary is the reportable state of a [Window].
type Summary struct {
	Samples    int `json:"samples" yaml:"samples"`
	MinRTT     int `json:"minRtt" yaml:"minRtt"`
	MaxRTT     int `json:"maxRtt" yaml:"maxRtt"`
	AvgRTT     int `json:"avgRtt" yaml:"avgRtt"`
	Sent       int `json:"sent" yaml:"sent"`
	Dropped    int `json:"dropped" yaml:"dropped"`
	PacketLoss int `json:"packetLoss" yaml:"packetLoss"`
}

// HasData reports whether the summary is based on at least one sample.
func (s Summary) HasData() bool {
	return s.Samples > 0
}

// String renders the RTT statistics, or "no data" for an empty window.
func (s Summary) String() string {
	if !s.HasData() {
		return ErrEmptyWindow.Error()
	}
	return fmt.Sprintf("MinRTT=%d ms    MaxRTT=%d ms    AvgRTT=%d ms", s.MinRTT, s.MaxRTT, s.AvgRTT)
}
