// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package ping

import (
	"context"
	"fmt"
	"io"

	"github.com/telekom/icmpdiag/internal/helper"
	"github.com/telekom/icmpdiag/internal/logger"
	"github.com/telekom/icmpdiag/internal/probe"
	"github.com/telekom/icmpdiag/internal/stats"
	"github.com/telekom/icmpdiag/internal/transport"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var _ Client = (*client)(nil)

// rule frames the banner and the statistics block.
const rule = "-----------------------------------------------------------------"

// Client is able to ping a target.
//
//go:generate go tool moq -out client_moq.go . Client
type Client interface {
	// Run pings the host with the specified options.
	// Returns an error only if the host cannot be resolved, no raw socket can be
	// opened or the context is done.
	Run(ctx context.Context, host string, opts *Options) (Result, error)
}

type client struct {
	prober *probe.Prober
	// out receives the report lines.
	out io.Writer
	// resolve resolves the target, replaced in tests.
	resolve func(ctx context.Context, host string, rc helper.RetryConfig) (probe.Target, error)
}

// NewClient creates a ping client sending probes through ex and
// writing its report to out.
func NewClient(ex transport.Exchanger, out io.Writer) Client {
	if out == nil {
		out = io.Discard
	}
	return &client{
		prober:  probe.NewProber(ex),
		out:     out,
		resolve: probe.Resolve,
	}
}

func (c *client) Run(ctx context.Context, host string, opts *Options) (Result, error) {
	tracer := trace.SpanFromContext(ctx).TracerProvider().Tracer("ping.client")
	ctx, span := tracer.Start(ctx, "Run", trace.WithAttributes(
		attribute.String("ping.target.host", host),
		attribute.Int("ping.options.ttl", opts.ttl()),
	))
	defer span.End()
	log := logger.FromContext(ctx)

	target, err := c.resolve(ctx, host, opts.retry())
	if err != nil {
		return Result{}, helper.WrapError(ctx, err, "failed to resolve ping target %s", host)
	}
	span.SetAttributes(attribute.Stringer("ping.target.addr", target.Addr))
	c.println(rule)
	c.println("Pinging " + target.String())
	c.println(rule)

	var win stats.Window
	res := Result{Target: target, Probes: make([]probe.Event, 0, ProbeCount)}
	for seq := range uint16(ProbeCount) {
		if err := ctx.Err(); err != nil {
			return res, helper.WrapError(ctx, err, "ping to %s interrupted", target.Addr)
		}

		ev := c.prober.Probe(ctx, target, seq, opts.ttl())
		if ev.Fatal() {
			return res, helper.WrapError(ctx, ev.Err, "ping to %s aborted", target.Addr)
		}
		record(&win, ev)
		c.report(ev)
		res.Probes = append(res.Probes, ev)
	}

	res.Summary = win.Summary()
	c.reportSummary(res.Summary)
	win.Reset()

	log.DebugContext(ctx, "Ping finished", "target", target.Addr, "summary", res.Summary)
	span.SetAttributes(
		attribute.Int("ping.summary.packet_loss", res.Summary.PacketLoss),
		attribute.Int("ping.summary.avg_rtt", res.Summary.AvgRTT),
	)
	return res, nil
}

// record adds the outcome of a probe to the window. Only answered probes
// contribute a sample; only valid replies count as sent.
func record(win *stats.Window, ev probe.Event) {
	if ev.Answered() {
		win.AddSample(ev.RTT)
	}
	if ev.Valid() {
		win.MarkSent()
		return
	}
	win.MarkDropped()
}

// report writes the line of a single probe.
func (c *client) report(ev probe.Event) {
	c.println("  " + ev.String())
	if ev.Answered() && !ev.Valid() {
		c.println("  ECHO REPLY IS INVALID")
		for _, line := range ev.Mismatches() {
			c.println("    " + line)
		}
	}
}

// reportSummary writes the statistics block.
func (c *client) reportSummary(s stats.Summary) {
	c.println(rule)
	c.println("Ping Statistics")
	c.println(rule)
	c.println(fmt.Sprintf("  %s    PacketLoss=%d", s, s.PacketLoss))
	c.println(rule)
}

func (c *client) println(line string) {
	_, _ = fmt.Fprintln(c.out, line)
}
