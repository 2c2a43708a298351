// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"context"

	"github.com/telekom/icmpdiag/internal/logger"
	"github.com/telekom/icmpdiag/internal/probe"
	"github.com/telekom/icmpdiag/internal/stats"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// prober sends a single echo request.
//
//go:generate go tool moq -out prober_moq.go . prober
type prober interface {
	Probe(ctx context.Context, target probe.Target, seq uint16, ttl int) probe.Event
}

var _ prober = (*probe.Prober)(nil)

// hopper is responsible for probing the hops towards a target.
type hopper struct {
	prober       prober
	otelTracer   trace.Tracer
	target       probe.Target
	resolveNames bool
}

// run sends the probes of a single TTL and summarizes them into a hop.
// The window collects the samples of this TTL only and is reset before
// returning. The fourth probe decides the hop's responder.
func (h *hopper) run(ctx context.Context, win *stats.Window, ttl int) (Hop, error) {
	ctx, hopSpan := h.otelTracer.Start(ctx, h.target.Addr.String(), trace.WithAttributes(
		attribute.Stringer("traceroute.target.address", h.target.Addr),
		attribute.Int("traceroute.target.ttl", ttl),
	))
	defer hopSpan.End()
	log := logger.FromContext(ctx).With("ttl", ttl)
	defer win.Reset()

	hop := Hop{TTL: ttl, Probes: make([]probe.Event, 0, ProbesPerHop)}
	var last probe.Event
	for seq := range uint16(ProbesPerHop) {
		if err := ctx.Err(); err != nil {
			return hop, err
		}

		last = h.prober.Probe(ctx, h.target, seq, ttl)
		if last.Fatal() {
			hopSpan.RecordError(last.Err)
			hopSpan.SetStatus(codes.Error, "Failed to execute hop trace")
			return hop, last.Err
		}
		if !last.Answered() {
			log.DebugContext(ctx, "Probe lost", "seq", seq, "error", last.Err)
		}
		record(win, last)
		hop.Probes = append(hop.Probes, last)
	}

	hop.Summary = win.Summary()
	if last.Answered() {
		hop.Addr = newHopAddress(last.Source)
		hop.Type = last.Reply.Type
		hop.Code = last.Reply.Code
		hop.Reached = last.Reached()
		if h.resolveNames {
			hop.Name = resolveName(ctx, last.Source)
		}
	}

	hopSpan.AddEvent("Hop summarized", trace.WithAttributes(
		attribute.Stringer("traceroute.target.hop", hop),
		attribute.Bool("traceroute.target.reached", hop.Reached),
	))
	return hop, nil
}
