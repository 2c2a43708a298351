// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package packet

import (
	"encoding/binary"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"
)

func TestNewEchoRequest(t *testing.T) {
	sentAt := time.Unix(1733011200, 500_000_000)
	req := NewEchoRequest(0x1234, 3, DefaultPayload, sentAt)
	b := req.Bytes()

	require.Len(t, b, HeaderLen+timestampLen+len(DefaultPayload))
	assert.Equal(t, byte(ipv4.ICMPTypeEcho), b[0])
	assert.Equal(t, byte(0), b[1])
	assert.Equal(t, req.Checksum, binary.BigEndian.Uint16(b[2:4]))
	assert.Equal(t, uint16(0x1234), binary.BigEndian.Uint16(b[4:6]))
	assert.Equal(t, uint16(3), binary.BigEndian.Uint16(b[6:8]))
	assert.InDelta(t, 1733011200.5, math.Float64frombits(binary.LittleEndian.Uint64(b[8:16])), 1e-6)
	assert.Equal(t, DefaultPayload, string(b[16:]))
	assert.Zero(t, Checksum(b), "assembled request must verify")
}

func TestNewEchoRequest_MatchesStandardEncoder(t *testing.T) {
	req := NewEchoRequest(0xbeef, 2, DefaultPayload, time.Now())
	b := req.Bytes()

	msg := icmp.Message{
		Type: ipv4.ICMPTypeEcho,
		Code: 0,
		Body: &icmp.Echo{
			ID:   int(req.Identifier),
			Seq:  int(req.Sequence),
			Data: b[HeaderLen:],
		},
	}
	want, err := msg.Marshal(nil)
	require.NoError(t, err)

	assert.Equal(t, want, b)
}

func TestNewEchoRequest_DistinctSequences(t *testing.T) {
	sentAt := time.Now()
	first := NewEchoRequest(Identifier(), 0, DefaultPayload, sentAt)
	second := NewEchoRequest(Identifier(), 1, DefaultPayload, sentAt)

	assert.NotEqual(t, first.Checksum, second.Checksum)
	assert.Equal(t, first.Identifier, second.Identifier)
}

func TestDefaultPayload(t *testing.T) {
	assert.Len(t, DefaultPayload, 52)
}
