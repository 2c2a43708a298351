// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/telekom/icmpdiag/internal/helper"
	"github.com/telekom/icmpdiag/internal/ping"
	"github.com/telekom/icmpdiag/internal/transport"
)

type pingFlags struct {
	ttl        int
	timeout    time.Duration
	output     string
	retryCount int
	retryDelay time.Duration
}

// NewCmdPing creates the ping command
func NewCmdPing() *cobra.Command {
	var f pingFlags

	cmd := &cobra.Command{
		Use:   "ping <host>",
		Short: "Send ICMP echo requests to a host",
		Long: "Sends four ICMP echo requests to the host, one after another,\n" +
			"and reports the round trip time of every reply and the statistics over all of them.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := outputFormat(f.output)
			if err := out.Validate(); err != nil {
				return err
			}
			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			client := ping.NewClient(
				transport.New(f.timeout),
				out.reportWriter(cmd.OutOrStdout()),
			)
			res, err := client.Run(ctx, args[0], &ping.Options{
				TTL:   f.ttl,
				Retry: helper.RetryConfig{Count: f.retryCount, Delay: f.retryDelay},
			})
			if err != nil {
				return err
			}
			return out.render(cmd.OutOrStdout(), res)
		},
	}

	fs := cmd.Flags()
	fs.IntVar(&f.ttl, "ttl", ping.DefaultTTL, "time to live of the echo requests")
	addCommonFlags(cmd, &f.timeout, &f.output, &f.retryCount, &f.retryDelay)

	return cmd
}
