// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"bytes"
	"context"
	"net/netip"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/telekom/icmpdiag/internal/helper"
	"github.com/telekom/icmpdiag/internal/probe"
	"github.com/telekom/icmpdiag/internal/stats"
	"github.com/telekom/icmpdiag/internal/transport"
	transporttest "github.com/telekom/icmpdiag/internal/transport/test"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/net/ipv4"
)

func newTestClient(p prober, out *bytes.Buffer) *client {
	return &client{
		prober: p,
		out:    out,
		resolve: func(context.Context, string, helper.RetryConfig) (probe.Target, error) {
			return testTarget, nil
		},
	}
}

// routerAt returns a distinct router address per ttl.
func routerAt(ttl int) netip.Addr {
	return netip.AddrFrom4([4]byte{198, 51, 100, byte(ttl)}) // #nosec G115 // ttl <= 255
}

func TestClient_Run_BoundedAt255(t *testing.T) {
	mock := &proberMock{
		ProbeFunc: func(_ context.Context, _ probe.Target, _ uint16, ttl int) probe.Event {
			return answered(ipv4.ICMPTypeTimeExceeded, routerAt(ttl), time.Millisecond)
		},
	}
	c := newTestClient(mock, &bytes.Buffer{})

	res, err := c.Run(t.Context(), testTarget.Host, nil)
	require.NoError(t, err)

	assert.False(t, res.Reached)
	require.Len(t, res.Hops, MaxTTL)
	assert.Len(t, mock.ProbeCalls(), MaxTTL*ProbesPerHop)
	assert.Equal(t, MaxTTL, res.Hops[len(res.Hops)-1].TTL)
	for _, call := range mock.ProbeCalls() {
		assert.LessOrEqual(t, call.Ttl, MaxTTL)
	}
}

func TestClient_Run_ReachesTargetAtTTL3(t *testing.T) {
	targetRTTs := []time.Duration{20 * time.Millisecond, 21 * time.Millisecond, 22 * time.Millisecond, 25 * time.Millisecond}
	mock := &proberMock{
		ProbeFunc: func(_ context.Context, _ probe.Target, seq uint16, ttl int) probe.Event {
			if ttl < 3 {
				return answered(ipv4.ICMPTypeTimeExceeded, routerAt(ttl), 100*time.Millisecond)
			}
			return answered(ipv4.ICMPTypeEchoReply, testTarget.Addr, targetRTTs[seq])
		},
	}
	var out bytes.Buffer
	c := newTestClient(mock, &out)

	res, err := c.Run(t.Context(), testTarget.Host, &Options{})
	require.NoError(t, err)

	assert.True(t, res.Reached)
	require.Len(t, res.Hops, 3)
	assert.Len(t, mock.ProbeCalls(), 3*ProbesPerHop, "no probe must be sent after the target answered")

	last := res.Hops[2]
	assert.True(t, last.Reached)
	assert.Equal(t, ipv4.ICMPTypeEchoReply, last.Type)
	assert.Equal(t, testTarget.Addr.String(), last.Addr.String())
	assert.Equal(t, stats.Summary{Samples: 4, MinRTT: 20, MaxRTT: 25, AvgRTT: 22, Sent: 4}, last.Summary,
		"statistics must only cover the probes of ttl 3")

	assert.Contains(t, out.String(), "Traceroute to (target.example) 192.0.2.10")
	assert.Contains(t, out.String(), "TTL=1    MinRTT=100 ms    MaxRTT=100 ms    AvgRTT=100 ms    Type=11    Code=0    198.51.100.1")
	assert.Contains(t, out.String(), "TTL=3    MinRTT=20 ms    MaxRTT=25 ms    AvgRTT=22 ms    Type=0    Code=0    192.0.2.10")
	assert.True(t, strings.HasSuffix(out.String(), "Traceroute complete.\n"+rule+"\n"))
}

func TestClient_Run_SilentHopsContinue(t *testing.T) {
	mock := &proberMock{
		ProbeFunc: func(_ context.Context, _ probe.Target, _ uint16, ttl int) probe.Event {
			if ttl == 2 {
				return lost()
			}
			if ttl == 3 {
				return answered(ipv4.ICMPTypeEchoReply, testTarget.Addr, time.Millisecond)
			}
			return answered(ipv4.ICMPTypeTimeExceeded, routerAt(ttl), time.Millisecond)
		},
	}
	var out bytes.Buffer
	c := newTestClient(mock, &out)

	res, err := c.Run(t.Context(), testTarget.Host, nil)
	require.NoError(t, err)

	require.Len(t, res.Hops, 3)
	assert.False(t, res.Hops[1].Responded())
	assert.Contains(t, out.String(), "TTL=2    no data    *")
	assert.True(t, res.Reached)
}

func TestClient_Run_MaxHops(t *testing.T) {
	mock := &proberMock{
		ProbeFunc: func(context.Context, probe.Target, uint16, int) probe.Event {
			return lost()
		},
	}
	c := newTestClient(mock, &bytes.Buffer{})

	res, err := c.Run(t.Context(), testTarget.Host, &Options{MaxTTL: 5})
	require.NoError(t, err)
	assert.Len(t, res.Hops, 5)
	assert.False(t, res.Reached)
}

func TestClient_Run_Errors(t *testing.T) {
	t.Run("unresolvable target", func(t *testing.T) {
		mock := &proberMock{}
		c := newTestClient(mock, &bytes.Buffer{})
		c.resolve = func(context.Context, string, helper.RetryConfig) (probe.Target, error) {
			return probe.Target{}, probe.ErrResolution
		}

		_, err := c.Run(t.Context(), "invalid.example", nil)
		require.ErrorIs(t, err, probe.ErrResolution)
		assert.Empty(t, mock.ProbeCalls())
	})

	t.Run("missing capabilities", func(t *testing.T) {
		mock := &proberMock{
			ProbeFunc: func(context.Context, probe.Target, uint16, int) probe.Event {
				return probe.Event{Err: transport.ErrRawSocketNotAvailable}
			},
		}
		c := newTestClient(mock, &bytes.Buffer{})

		res, err := c.Run(t.Context(), testTarget.Host, nil)
		require.ErrorIs(t, err, transport.ErrRawSocketNotAvailable)
		assert.Empty(t, res.Hops)
	})

	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()
		c := newTestClient(&proberMock{}, &bytes.Buffer{})

		_, err := c.Run(ctx, testTarget.Host, nil)
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestClient_Run_WithTransport(t *testing.T) {
	ex := transporttest.Script(func(_ int, p transport.Probe) transporttest.Response {
		if p.TTL < 2 {
			return transporttest.Response{Type: ipv4.ICMPTypeTimeExceeded, Source: routerAt(p.TTL), RTT: time.Millisecond}
		}
		return transporttest.Response{Type: ipv4.ICMPTypeEchoReply, RTT: 2 * time.Millisecond}
	})
	c, ok := NewClient(ex, nil).(*client)
	require.True(t, ok)
	c.resolve = func(context.Context, string, helper.RetryConfig) (probe.Target, error) {
		return testTarget, nil
	}

	ctx, span := noop.NewTracerProvider().Tracer("").Start(t.Context(), "run")
	defer span.End()

	res, err := c.Run(ctx, testTarget.Host, nil)
	require.NoError(t, err)
	require.Len(t, res.Hops, 2)
	assert.True(t, res.Reached)
	assert.Len(t, ex.ExchangeCalls(), 2*ProbesPerHop)
}
