// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

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

var (
	_ Client = (*client)(nil)
)

// rule frames the banner and the footer of the report.
const rule = "-------------------------------------------------------------------------------------------------------------------------"

// Client is able to run a traceroute to a target.
//
//go:generate go tool moq -out client_moq.go . Client
type Client interface {
	// Run executes the traceroute to the given host with the specified options.
	// Returns a Result containing the hops, or an error if the target cannot be
	// resolved or the sweep is aborted.
	Run(ctx context.Context, host string, opts *Options) (Result, error)
}

type client struct {
	prober prober
	// out receives the report lines.
	out io.Writer
	// resolve resolves the target, replaced in tests.
	resolve func(ctx context.Context, host string, rc helper.RetryConfig) (probe.Target, error)
}

// NewClient creates a traceroute client sending probes through ex and
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
	tracer := trace.SpanFromContext(ctx).TracerProvider().Tracer("traceroute.client")
	ctx, sp := tracer.Start(ctx, "Run", trace.WithAttributes(
		attribute.String("traceroute.target.host", host),
		attribute.Int("traceroute.options.max_hops", opts.maxTTL()),
	))
	defer sp.End()
	log := logger.FromContext(ctx)

	target, err := c.resolve(ctx, host, opts.retry())
	if err != nil {
		return Result{}, helper.WrapError(ctx, err, "failed to resolve traceroute target %s", host)
	}
	c.println(rule)
	c.println("Traceroute to " + target.String())
	c.println(rule)

	h := &hopper{
		prober:       c.prober,
		otelTracer:   tracer,
		target:       target,
		resolveNames: opts.resolveNames(),
	}

	res := Result{Target: target, Hops: []Hop{}}
	var win stats.Window
	for ttl := 1; ttl <= opts.maxTTL(); ttl++ {
		hop, err := h.run(ctx, &win, ttl)
		if err != nil {
			return res, helper.WrapError(ctx, err, "traceroute to %s aborted at ttl %d", target.Addr, ttl)
		}
		res.Hops = append(res.Hops, hop)
		c.println("  " + hop.String())

		if hop.Reached {
			res.Reached = true
			break
		}
	}

	c.println(rule)
	c.println("Traceroute complete.")
	c.println(rule)

	logHops(ctx, res.Hops)
	log.DebugContext(ctx, "Traceroute finished", "target", target.Addr, "hops", len(res.Hops), "reached", res.Reached)
	sp.SetAttributes(
		attribute.Int("traceroute.result.hops", len(res.Hops)),
		attribute.Bool("traceroute.result.reached", res.Reached),
	)
	return res, nil
}

func (c *client) println(line string) {
	_, _ = fmt.Fprintln(c.out, line)
}
