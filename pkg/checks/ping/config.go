// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package ping

import (
	"time"

	"github.com/telekom/icmpdiag/internal/ping"
	"github.com/telekom/icmpdiag/pkg/checks"
)

const minInterval = 100 * time.Millisecond

// Config is the configuration for the ping check
type Config struct {
	// Targets are the hosts to ping.
	Targets []string `json:"targets" yaml:"targets" mapstructure:"targets"`
	// Interval is the interval at which to run the ping check.
	Interval time.Duration `json:"interval" yaml:"interval" mapstructure:"interval"`
	// Options are the options of every ping run.
	ping.Options `json:",inline" yaml:",inline" mapstructure:",squash"`
}

func (c *Config) For() string {
	return CheckName
}

func (c *Config) Validate() error {
	if c.Interval < minInterval {
		return checks.ErrInvalidConfig{CheckName: CheckName, Field: "ping.interval", Reason: "must be at least 100ms"}
	}

	if c.TTL < 0 || c.TTL > ping.DefaultTTL {
		return checks.ErrInvalidConfig{CheckName: CheckName, Field: "ping.ttl", Reason: "must be between 0 and 255"}
	}

	if c.Retry.Count < 0 {
		return checks.ErrInvalidConfig{CheckName: CheckName, Field: "ping.retry.count", Reason: "must not be negative"}
	}

	return checks.ValidateTargets(CheckName, c.Targets)
}
