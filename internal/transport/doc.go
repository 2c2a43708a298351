// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

// Package transport exchanges single ICMP probes over raw IPv4 sockets.
//
// Every probe uses its own socket: it is opened, bound to an ephemeral local
// port, configured with the caller's TTL and a receive timeout, used for one
// send and one receive and closed again on every path. Waiting for the reply
// is bounded by a time budget (30 seconds by default) that is decremented by
// the time spent waiting for readiness.
//
// Opening a raw socket requires the NET_RAW capability. Without it every
// exchange fails with [ErrRawSocketNotAvailable].
package transport
