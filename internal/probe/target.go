// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package probe

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/netip"
	"strings"

	"github.com/telekom/icmpdiag/internal/helper"
	"github.com/telekom/icmpdiag/internal/logger"
)

// ErrResolution is returned when a target cannot be resolved to an IPv4 address.
var ErrResolution = errors.New("failed to resolve target")

// DefaultHost is probed when no host is given.
const DefaultHost = "127.0.0.1"

// lookupNetIP resolves host names, replaced in tests.
var lookupNetIP = net.DefaultResolver.LookupNetIP

// Target is a resolved diagnostic target.
type Target struct {
	// Host is the name or address as given by the user.
	Host string `json:"host" yaml:"host"`
	// Addr is the resolved IPv4 address.
	Addr netip.Addr `json:"addr" yaml:"addr"`
}

func (t Target) String() string {
	return fmt.Sprintf("(%s) %s", t.Host, t.Addr)
}

// Resolve resolves host to its first IPv4 address using the system resolver.
// Literal IPv4 addresses are used as they are. Failed lookups are retried
// according to rc; a lookup that still fails returns [ErrResolution].
func Resolve(ctx context.Context, host string, rc helper.RetryConfig) (Target, error) {
	log := logger.FromContext(ctx)
	host = strings.TrimSpace(host)
	if host == "" {
		host = DefaultHost
	}

	if addr, err := netip.ParseAddr(host); err == nil {
		if !addr.Unmap().Is4() {
			return Target{}, fmt.Errorf("%w: %s is not an IPv4 address", ErrResolution, host)
		}
		return Target{Host: host, Addr: addr.Unmap()}, nil
	}

	var addrs []netip.Addr
	lookup := helper.Retry(func(ctx context.Context) (err error) {
		addrs, err = lookupNetIP(ctx, "ip4", host)
		return err
	}, rc)
	if err := lookup(ctx); err != nil {
		log.ErrorContext(ctx, "Failed to resolve target", "host", host, "error", err)
		return Target{}, fmt.Errorf("%w %q: %w", ErrResolution, host, err)
	}

	for _, addr := range addrs {
		if addr.Unmap().Is4() {
			log.DebugContext(ctx, "Resolved target", "host", host, "addr", addr)
			return Target{Host: host, Addr: addr.Unmap()}, nil
		}
	}
	return Target{}, fmt.Errorf("%w %q: no IPv4 address found", ErrResolution, host)
}
