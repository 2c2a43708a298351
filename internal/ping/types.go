// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package ping

import (
	"github.com/telekom/icmpdiag/internal/helper"
	"github.com/telekom/icmpdiag/internal/probe"
	"github.com/telekom/icmpdiag/internal/stats"
)

const (
	// ProbeCount is the number of echo requests of a run.
	ProbeCount = 4
	// DefaultTTL is the TTL echo requests are sent with unless configured otherwise.
	DefaultTTL = 255
)

// Options contains the optional configuration of a ping run.
type Options struct {
	// TTL is the time to live of the echo requests, between 1 and 255.
	TTL int `json:"ttl" yaml:"ttl" mapstructure:"ttl"`
	// Retry configures retries of the target's name resolution.
	Retry helper.RetryConfig `json:"retry" yaml:"retry" mapstructure:"retry"`
}

// ttl returns the configured TTL or [DefaultTTL].
func (o *Options) ttl() int {
	if o == nil || o.TTL <= 0 || o.TTL > DefaultTTL {
		return DefaultTTL
	}
	return o.TTL
}

// retry returns the configured retry policy.
func (o *Options) retry() helper.RetryConfig {
	if o == nil {
		return helper.RetryConfig{}
	}
	return o.Retry
}

// Result is the outcome of a ping run.
type Result struct {
	// Target is the resolved target.
	Target probe.Target `json:"target" yaml:"target"`
	// Probes holds the event of every probe in send order.
	Probes []probe.Event `json:"probes" yaml:"probes"`
	// Summary holds the statistics over all probes.
	Summary stats.Summary `json:"summary" yaml:"summary"`
}
