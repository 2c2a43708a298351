// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package test

import (
	"context"
	"net/netip"
	"sync"
	"time"

	"github.com/telekom/icmpdiag/internal/transport"
	"golang.org/x/net/ipv4"
)

// ReplyTo returns the raw bytes of a reply echoing packet with the given
// ICMP type and code, prefixed by an option-less IPv4 header.
func ReplyTo(packet []byte, typ ipv4.ICMPType, code int) []byte {
	b := make([]byte, ipv4.HeaderLen, ipv4.HeaderLen+len(packet))
	b[0] = 0x45
	b[9] = 1 // ICMP
	b = append(b, packet...)
	b[ipv4.HeaderLen] = byte(typ)
	b[ipv4.HeaderLen+1] = byte(code)
	return b
}

// Response describes how a scripted exchanger answers one probe.
type Response struct {
	// Type and Code of the reply. Ignored if Err is set.
	Type ipv4.ICMPType
	Code int
	// Source is the responder address. Defaults to the probe destination.
	Source netip.Addr
	// RTT is the simulated round-trip time.
	RTT time.Duration
	// Err is returned instead of a reply.
	Err error
	// Mutate alters the reply bytes before they are returned.
	Mutate func(b []byte)
}

// Script returns an exchanger mock answering probes with the responses
// produced by next, which receives the zero based call number and the probe.
func Script(next func(call int, p transport.Probe) Response) *transport.ExchangerMock {
	var (
		mu    sync.Mutex
		calls int
	)
	base := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	return &transport.ExchangerMock{
		ExchangeFunc: func(_ context.Context, p transport.Probe) (transport.Reply, error) {
			mu.Lock()
			n := calls
			calls++
			mu.Unlock()

			r := next(n, p)
			if r.Err != nil {
				return transport.Reply{}, r.Err
			}
			data := ReplyTo(p.Packet, r.Type, r.Code)
			if r.Mutate != nil {
				r.Mutate(data)
			}
			src := r.Source
			if !src.IsValid() {
				src = p.Dst
			}
			return transport.Reply{
				Data:       data,
				Source:     src,
				SentAt:     base,
				ReceivedAt: base.Add(r.RTT),
			}, nil
		},
	}
}
