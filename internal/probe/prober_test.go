// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package probe

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/telekom/icmpdiag/internal/packet"
	"github.com/telekom/icmpdiag/internal/transport"
	transporttest "github.com/telekom/icmpdiag/internal/transport/test"
	"golang.org/x/net/ipv4"
)

var target = Target{Host: "example.com", Addr: netip.MustParseAddr("192.0.2.10")}

func newTestProber(ex transport.Exchanger) *Prober {
	p := NewProber(ex)
	p.id = 0x1234
	p.now = func() time.Time { return time.Unix(1700000000, 0) }
	return p
}

func TestProber_Probe(t *testing.T) {
	router := netip.MustParseAddr("198.51.100.1")

	tests := []struct {
		name         string
		response     transporttest.Response
		wantErr      error
		wantAnswered bool
		wantValid    bool
		wantReached  bool
		wantSource   netip.Addr
		wantRTT      time.Duration
	}{
		{
			name:         "echo reply",
			response:     transporttest.Response{Type: ipv4.ICMPTypeEchoReply, RTT: 12 * time.Millisecond},
			wantAnswered: true,
			wantValid:    true,
			wantReached:  true,
			wantSource:   target.Addr,
			wantRTT:      12 * time.Millisecond,
		},
		{
			name:         "time exceeded from router",
			response:     transporttest.Response{Type: ipv4.ICMPTypeTimeExceeded, Source: router, RTT: 3 * time.Millisecond},
			wantAnswered: true,
			wantValid:    true,
			wantSource:   router,
			wantRTT:      3 * time.Millisecond,
		},
		{
			name:         "destination unreachable",
			response:     transporttest.Response{Type: ipv4.ICMPTypeDestinationUnreachable, Code: 1, Source: router, RTT: time.Millisecond},
			wantAnswered: true,
			wantValid:    true,
			wantSource:   router,
			wantRTT:      time.Millisecond,
		},
		{
			name:       "unexpected type",
			response:   transporttest.Response{Type: ipv4.ICMPTypeRedirect, Source: router},
			wantErr:    ErrUnexpectedType,
			wantSource: router,
		},
		{
			name: "sequence mismatch",
			response: transporttest.Response{
				Type: ipv4.ICMPTypeEchoReply,
				RTT:  5 * time.Millisecond,
				Mutate: func(b []byte) {
					binary.BigEndian.PutUint16(b[ipv4.HeaderLen+6:], 99)
				},
			},
			wantAnswered: true,
			wantReached:  true,
			wantSource:   target.Addr,
			wantRTT:      5 * time.Millisecond,
		},
		{
			name:     "timeout",
			response: transporttest.Response{Err: transport.ErrTimeout},
			wantErr:  transport.ErrTimeout,
		},
		{
			name:     "no raw socket",
			response: transporttest.Response{Err: transport.ErrRawSocketNotAvailable},
			wantErr:  transport.ErrRawSocketNotAvailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ex := transporttest.Script(func(int, transport.Probe) transporttest.Response {
				return tt.response
			})
			p := newTestProber(ex)

			ev := p.Probe(t.Context(), target, 2, 64)

			require.Len(t, ex.ExchangeCalls(), 1)
			sent := ex.ExchangeCalls()[0].P
			assert.Equal(t, target.Addr, sent.Dst)
			assert.Equal(t, 64, sent.TTL)
			assert.Zero(t, packet.Checksum(sent.Packet), "sent request must carry a valid checksum")

			assert.ErrorIs(t, ev.Err, tt.wantErr)
			assert.Equal(t, tt.wantAnswered, ev.Answered())
			assert.Equal(t, tt.wantValid, ev.Valid())
			assert.Equal(t, tt.wantReached, ev.Reached())
			assert.Equal(t, tt.wantSource, ev.Source)
			assert.Equal(t, tt.wantRTT, ev.RTT)
			assert.Equal(t, errors.Is(tt.wantErr, transport.ErrRawSocketNotAvailable), ev.Fatal())
			assert.Equal(t, uint16(2), ev.Sequence)
			assert.Equal(t, 64, ev.TTL)
		})
	}
}

func TestProber_Probe_Malformed(t *testing.T) {
	p := newTestProber(&transport.ExchangerMock{
		ExchangeFunc: func(context.Context, transport.Probe) (transport.Reply, error) {
			return transport.Reply{Data: make([]byte, 24), Source: target.Addr}, nil
		},
	})

	ev := p.Probe(t.Context(), target, 0, 255)
	assert.ErrorIs(t, ev.Err, packet.ErrMalformedPacket)
	assert.False(t, ev.Answered())
}

func TestEvent_String(t *testing.T) {
	answered := Event{
		TTL:    255,
		Reply:  packet.Reply{Type: ipv4.ICMPTypeEchoReply},
		Source: netip.MustParseAddr("192.0.2.10"),
		RTT:    12 * time.Millisecond,
	}

	tests := []struct {
		name string
		ev   Event
		want string
	}{
		{
			name: "answered",
			ev:   answered,
			want: "TTL=255  RTT=12     ms Type=0  Code=0  Address=192.0.2.10     ",
		},
		{
			name: "timeout",
			ev:   Event{Err: transport.ErrTimeout},
			want: "*        *        *        *        *    Request timed out.",
		},
		{
			name: "timeout exhausted",
			ev:   Event{Err: transport.ErrTimeoutExhausted},
			want: "*        *        *        *        *    Request timed out (By no remaining time left).",
		},
		{
			name: "timeout by exception",
			ev:   Event{Err: transport.ErrTimeoutByException},
			want: "*        *        *        *        *    Request timed out (By Exception).",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.ev.String())
		})
	}
}

func TestEvent_Mismatches(t *testing.T) {
	ev := Event{
		Sequence:   1,
		Identifier: 7,
		Payload:    "ABC",
		Reply:      packet.Reply{Sequence: 2, Identifier: 7, Payload: "ABC"},
		Validation: packet.Validation{IdentifierMatch: true, PayloadMatch: true},
	}

	assert.Equal(t, []string{"Expected Sequence Number: 1, Actual Sequence Number: 2"}, ev.Mismatches())
	assert.Nil(t, Event{Err: transport.ErrTimeout}.Mismatches())
}

func TestEvent_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(Event{TTL: 3, Err: transport.ErrTimeout})
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, "request timed out", got["error"])
	assert.NotContains(t, got, "rtt")
	assert.InDelta(t, 3, got["ttl"], 0)
}
