// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package probe

import (
	"context"
	"fmt"
	"time"

	"github.com/telekom/icmpdiag/internal/logger"
	"github.com/telekom/icmpdiag/internal/packet"
	"github.com/telekom/icmpdiag/internal/transport"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/net/ipv4"
)

const (
	echoReply            = ipv4.ICMPTypeEchoReply
	destinationUnreached = ipv4.ICMPTypeDestinationUnreachable
	timeExceeded         = ipv4.ICMPTypeTimeExceeded
)

// Prober sends echo requests through an exchanger.
type Prober struct {
	exchanger transport.Exchanger
	// id is the echo identifier of all requests.
	id uint16
	// payload is the text carried by all requests.
	payload string
	// now returns the send timestamp, replaced in tests.
	now func() time.Time
}

// NewProber returns a [Prober] using the identifier of this process and
// the default payload.
func NewProber(ex transport.Exchanger) *Prober {
	return &Prober{
		exchanger: ex,
		id:        packet.Identifier(),
		payload:   packet.DefaultPayload,
		now:       time.Now,
	}
}

// Probe sends one echo request with the given sequence number and TTL to
// the target and classifies the reply.
//
// It never returns an error directly: failures are carried by the event so
// a single lost probe does not abort the caller's phase.
func (p *Prober) Probe(ctx context.Context, target Target, seq uint16, ttl int) Event {
	tracer := trace.SpanFromContext(ctx).TracerProvider().Tracer("probe.Prober")
	ctx, span := tracer.Start(ctx, "Probe", trace.WithAttributes(
		attribute.Stringer("probe.target.addr", target.Addr),
		attribute.Int("probe.sequence", int(seq)),
		attribute.Int("probe.ttl", ttl),
	))
	defer span.End()
	log := logger.FromContext(ctx).With("target", target.Addr, "seq", seq, "ttl", ttl)

	req := packet.NewEchoRequest(p.id, seq, p.payload, p.now())
	ev := Event{
		Sequence:   seq,
		Identifier: p.id,
		Payload:    p.payload,
		TTL:        ttl,
	}

	rep, err := p.exchanger.Exchange(ctx, transport.Probe{Dst: target.Addr, TTL: ttl, Packet: req.Bytes()})
	if err != nil {
		ev.Err = err
		if transport.IsTimeout(err) {
			log.DebugContext(ctx, "Probe timed out", "error", err)
			span.SetStatus(codes.Error, "probe timed out")
		} else {
			log.ErrorContext(ctx, "Probe failed", "error", err)
			span.SetStatus(codes.Error, "probe failed")
		}
		span.RecordError(err)
		return ev
	}
	ev.Source = rep.Source

	parsed, err := packet.ParseReply(rep.Data)
	if err != nil {
		log.WarnContext(ctx, "Discarding malformed reply", "source", rep.Source, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "malformed reply")
		ev.Err = err
		return ev
	}
	ev.Reply = parsed

	switch parsed.Type {
	case echoReply, destinationUnreached, timeExceeded:
	default:
		ev.Err = fmt.Errorf("%w: type %d code %d from %s", ErrUnexpectedType, int(parsed.Type), parsed.Code, rep.Source)
		log.WarnContext(ctx, "Unexpected ICMP reply", "type", int(parsed.Type), "code", parsed.Code, "source", rep.Source)
		span.RecordError(ev.Err)
		span.SetStatus(codes.Error, "unexpected ICMP type")
		return ev
	}

	ev.RTT = rep.RTT()
	ev.Validation = packet.Validate(req, parsed)
	if !ev.Validation.Valid() {
		log.InfoContext(ctx, "Reply does not match request", "mismatches", ev.Validation.Mismatches())
	}

	span.SetAttributes(
		attribute.Int("probe.reply.type", int(parsed.Type)),
		attribute.Int("probe.reply.code", parsed.Code),
		attribute.Stringer("probe.reply.source", rep.Source),
		attribute.Stringer("probe.reply.rtt", ev.RTT),
		attribute.Bool("probe.reply.valid", ev.Validation.Valid()),
	)
	return ev
}
