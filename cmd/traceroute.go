// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/telekom/icmpdiag/internal/helper"
	"github.com/telekom/icmpdiag/internal/traceroute"
	"github.com/telekom/icmpdiag/internal/transport"
)

type tracerouteFlags struct {
	maxHops      int
	resolveNames bool
	timeout      time.Duration
	output       string
	retryCount   int
	retryDelay   time.Duration
}

// NewCmdTraceroute creates the traceroute command
func NewCmdTraceroute() *cobra.Command {
	var f tracerouteFlags

	cmd := &cobra.Command{
		Use:   "traceroute <host>",
		Short: "Trace the route to a host",
		Long: "Sends ICMP echo requests with increasing TTL to the host and reports\n" +
			"the responder of every hop until the host answers or the maximum TTL is reached.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := outputFormat(f.output)
			if err := out.Validate(); err != nil {
				return err
			}
			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			client := traceroute.NewClient(
				transport.New(f.timeout),
				out.reportWriter(cmd.OutOrStdout()),
			)
			res, err := client.Run(ctx, args[0], &traceroute.Options{
				MaxTTL:       f.maxHops,
				ResolveNames: f.resolveNames,
				Retry:        helper.RetryConfig{Count: f.retryCount, Delay: f.retryDelay},
			})
			if err != nil {
				return err
			}
			return out.render(cmd.OutOrStdout(), res)
		},
	}

	fs := cmd.Flags()
	fs.IntVar(&f.maxHops, "max-hops", traceroute.MaxTTL, "maximum TTL of the echo requests")
	fs.BoolVar(&f.resolveNames, "resolve-names", false, "look up the DNS names of the hop responders")
	addCommonFlags(cmd, &f.timeout, &f.output, &f.retryCount, &f.retryDelay)

	return cmd
}
