// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

// Package ping measures echo round trips to a single target.
//
// A run resolves the target once, sends four echo requests with a fixed
// TTL one after another and reports a line per probe followed by the
// statistics of the run:
//
//	client := ping.NewClient(transport.New(0), os.Stdout)
//	res, err := client.Run(ctx, "example.com", &ping.Options{TTL: 255})
//	// res.Summary holds min, max and mean RTT and the packet loss
//
// Lost probes never abort a run. Only a target that cannot be resolved
// fails it, before any probe is sent.
package ping
