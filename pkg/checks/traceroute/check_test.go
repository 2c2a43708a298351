// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"context"
	"errors"
	"net/netip"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/telekom/icmpdiag/internal/probe"
	"github.com/telekom/icmpdiag/internal/stats"
	"github.com/telekom/icmpdiag/internal/traceroute"
	"github.com/telekom/icmpdiag/internal/transport"
	"github.com/telekom/icmpdiag/pkg/checks"
	"golang.org/x/net/ipv4"
)

var errMissingCapabilities = errors.New("failed to trace: " + transport.ErrRawSocketNotAvailable.Error())

func TestCheck(t *testing.T) {
	cases := []struct {
		name string
		c    *Traceroute
		want result
	}{
		{
			name: "Success 5 hops",
			c:    newTraceroute(t, Config{Options: traceroute.Options{MaxTTL: 5}, Targets: []string{"8.8.8.8"}}),
			want: result{
				"8.8.8.8": {Result: traceroute.Result{
					Target:  probe.Target{Host: "8.8.8.8", Addr: netip.MustParseAddr("8.8.8.8")},
					Reached: true,
					Hops: []traceroute.Hop{
						newHop(1, netip.MustParseAddr("10.0.0.1"), false),
						newHop(2, netip.MustParseAddr("10.0.0.2"), false),
						newHop(3, netip.MustParseAddr("10.0.0.3"), false),
						newHop(4, netip.MustParseAddr("10.0.0.4"), false),
						newHop(5, netip.MustParseAddr("8.8.8.8"), true),
					},
				}},
			},
		},
		{
			name: "Failed sweep is reported",
			c:    newTraceroute(t, Config{Options: traceroute.Options{MaxTTL: 2}, Targets: []string{"10.10.10.10"}}),
			want: result{
				"10.10.10.10": {Error: errMissingCapabilities.Error()},
			},
		},
		{
			name: "No targets",
			c:    newTraceroute(t, Config{}),
			want: result{},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			res := c.c.check(t.Context())

			if !cmp.Equal(res, c.want, cmp.Comparer(func(a, b netip.Addr) bool { return a == b })) {
				diff := cmp.Diff(res, c.want, cmp.Comparer(func(a, b netip.Addr) bool { return a == b }))
				t.Errorf("unexpected result: +want -got\n%s", diff)
			}
		})
	}
}

func TestCheck_metrics(t *testing.T) {
	c := newTraceroute(t, Config{Options: traceroute.Options{MaxTTL: 3}, Targets: []string{"8.8.8.8", "10.10.10.10"}})
	c.check(t.Context())

	require.NoError(t, c.RemoveLabelledMetrics("8.8.8.8"))
	var nfErr checks.ErrMetricNotFound
	assert.ErrorAs(t, c.RemoveLabelledMetrics("10.10.10.10"), &nfErr, "failed sweeps must not set metrics")
}

func TestTraceroute_Run(t *testing.T) {
	c := newTraceroute(t, Config{Interval: 10 * time.Millisecond, Options: traceroute.Options{MaxTTL: 2}, Targets: []string{"8.8.8.8"}})
	cResult := make(chan checks.ResultDTO, 1)
	cErr := make(chan error, 1)
	go func() { cErr <- c.Run(t.Context(), cResult) }()

	select {
	case dto := <-cResult:
		assert.Equal(t, CheckName, dto.Name)
		assert.IsType(t, result{}, dto.Result.Data)
	case <-time.After(time.Second):
		t.Fatal("no result received")
	}

	c.Shutdown()
	select {
	case err := <-cErr:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("check did not shut down")
	}
}

func TestTraceroute_UpdateConfig(t *testing.T) {
	c := newTraceroute(t, Config{Interval: time.Minute, Targets: []string{"8.8.8.8"}})

	want := &Config{Interval: time.Hour, Targets: []string{"1.1.1.1"}, Options: traceroute.Options{MaxTTL: 30, ResolveNames: true}}
	require.NoError(t, c.UpdateConfig(want), "removing a target without metrics must not fail")
	assert.Equal(t, want, c.GetConfig())

	err := c.UpdateConfig(&checks.RuntimeMock{ForFunc: func() string { return "ping" }})
	var mErr checks.ErrConfigMismatch
	require.ErrorAs(t, err, &mErr)
	assert.Equal(t, CheckName, mErr.Expected)
}

func TestTraceroute_Schema(t *testing.T) {
	c := NewCheck(transport.New(time.Second))
	schema, err := c.Schema()
	require.NoError(t, err)
	assert.Contains(t, schema.Value.Properties, "data")
	assert.Len(t, c.GetMetricCollectors(), 4)
	assert.Equal(t, CheckName, c.Name())
}

func newHop(ttl int, addr netip.Addr, reached bool) traceroute.Hop {
	typ := ipv4.ICMPTypeTimeExceeded
	if reached {
		typ = ipv4.ICMPTypeEchoReply
	}
	return traceroute.Hop{
		TTL:     ttl,
		Addr:    traceroute.HopAddress{IP: addr},
		Type:    typ,
		Summary: stats.Summary{Samples: 4, MinRTT: ttl, MaxRTT: ttl, AvgRTT: ttl, Sent: 4},
		Reached: reached,
	}
}

func newTraceroute(t testing.TB, cfg Config) *Traceroute {
	t.Helper()
	c, ok := NewCheck(transport.New(time.Second)).(*Traceroute)
	require.True(t, ok, "NewCheck should return a Traceroute check")
	c.config = cfg
	c.client = &traceroute.ClientMock{
		RunFunc: func(ctx context.Context, host string, opts *traceroute.Options) (traceroute.Result, error) {
			if host != "8.8.8.8" {
				return traceroute.Result{}, errMissingCapabilities
			}
			addr := netip.MustParseAddr(host)
			res := traceroute.Result{Target: probe.Target{Host: host, Addr: addr}}
			for ttl := 1; ttl < opts.MaxTTL; ttl++ {
				res.Hops = append(res.Hops, newHop(ttl, netip.AddrFrom4([4]byte{10, 0, 0, byte(ttl)}), false))
			}
			res.Hops = append(res.Hops, newHop(opts.MaxTTL, addr, true))
			res.Reached = true
			return res, nil
		},
	}
	return c
}
