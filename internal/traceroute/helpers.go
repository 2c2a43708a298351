// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"context"
	"net"
	"net/netip"
	"strings"

	"github.com/telekom/icmpdiag/internal/logger"
	"github.com/telekom/icmpdiag/internal/probe"
	"github.com/telekom/icmpdiag/internal/stats"
)

// lookupAddr performs reverse lookups, replaced in tests.
var lookupAddr = net.DefaultResolver.LookupAddr

// resolveName performs a reverse DNS lookup for the given IP address.
// If the lookup fails or returns no names, it returns an empty string.
func resolveName(ctx context.Context, addr netip.Addr) string {
	if !addr.IsValid() {
		return ""
	}

	names, err := lookupAddr(ctx, addr.String())
	if err != nil || len(names) == 0 {
		return ""
	}
	return strings.TrimSuffix(names[0], ".")
}

// record adds the outcome of a probe to the hop's window.
// Every answered probe contributes a sample and counts as sent, whether or
// not its reply matched the request: routers quote the request instead of
// echoing it.
func record(win *stats.Window, ev probe.Event) {
	if !ev.Answered() {
		win.MarkDropped()
		return
	}
	win.AddSample(ev.RTT)
	win.MarkSent()
}

// logHops logs the hops in a structured format.
func logHops(ctx context.Context, hops []Hop) {
	log := logger.FromContext(ctx)
	for _, hop := range hops {
		log.DebugContext(ctx, hop.String())
	}
}
