// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/telekom/icmpdiag/internal/transport"
)

// addCommonFlags adds the flags shared by the diagnostic commands
func addCommonFlags(cmd *cobra.Command, timeout *time.Duration, output *string, retryCount *int, retryDelay *time.Duration) {
	fs := cmd.Flags()
	fs.DurationVar(timeout, "timeout", transport.DefaultTimeout, "longest time to wait for the reply to a single probe")
	fs.StringVarP(output, "output", "o", string(outputText), "output format, one of text, json or yaml")
	fs.IntVar(retryCount, "retry", 0, "number of retries of the host's name resolution")
	fs.DurationVar(retryDelay, "retry-delay", time.Second, "initial delay between retries of the name resolution")
}

// signalContext returns a context that is canceled on SIGINT or SIGTERM
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
