// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

// Package traceroute discovers the hops towards a target by sweeping the
// IP time to live of ICMP echo requests.
//
// It exposes a [Client] for running a traceroute against a single host with
// configurable [Options]. For every TTL starting at 1 the client sends four
// echo requests one after another. Routers on the path answer with Time
// Exceeded or Destination Unreachable messages, the target itself with an
// Echo Reply. The fourth probe of a TTL decides the hop: its responder,
// ICMP type and code are reported together with the round-trip statistics
// of all four probes. The sweep ends when the fourth probe is answered by
// an Echo Reply or the maximum TTL is reached.
//
// Key features:
//   - Raw ICMP sockets via x/sys/unix with a fresh socket per probe
//   - Bounded sweep: never more than 255 TTLs
//   - Optional reverse DNS lookup of hop responders
//   - Built-in OpenTelemetry spans for the run and each hop
//   - Configurable retry policy for resolving the target
//   - Mockable [Client] for unit testing
//
// Typical usage:
//
//	client := traceroute.NewClient(transport.New(0), os.Stdout)
//	res, err := client.Run(ctx, "example.com", &traceroute.Options{MaxTTL: 30})
//	// res.Hops holds one Hop per TTL, res.Reached tells if the target answered
package traceroute
