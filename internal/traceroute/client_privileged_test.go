// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/telekom/icmpdiag/internal/probe"
	"github.com/telekom/icmpdiag/internal/transport"
	"github.com/telekom/icmpdiag/test"
)

func TestClient_Run_loopback(t *testing.T) {
	test.MarkAsPrivileged(t)

	res, err := NewClient(transport.New(2*time.Second), nil).Run(t.Context(), probe.DefaultHost, nil)
	require.NoError(t, err)

	assert.True(t, res.Reached)
	require.Len(t, res.Hops, 1, "loopback is reached with the first TTL")
	assert.Equal(t, 1, res.Hops[0].TTL)
	assert.Equal(t, netip.MustParseAddr("127.0.0.1").String(), res.Hops[0].Addr.String())
}
