// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"time"

	"github.com/telekom/icmpdiag/internal/traceroute"
	"github.com/telekom/icmpdiag/pkg/checks"
)

const minInterval = time.Second

// Config is the configuration for the traceroute check
type Config struct {
	// Targets is a list of hosts to traceroute to.
	Targets []string `json:"targets" yaml:"targets" mapstructure:"targets"`
	// Interval is the interval at which to run the traceroute check.
	Interval time.Duration `json:"interval" yaml:"interval" mapstructure:"interval"`
	// Options are the options for the traceroute check.
	traceroute.Options `json:",inline" yaml:",inline" mapstructure:",squash"`
}

func (c *Config) For() string {
	return CheckName
}

func (c *Config) Validate() error {
	if c.Interval < minInterval {
		return checks.ErrInvalidConfig{CheckName: CheckName, Field: "traceroute.interval", Reason: "must be at least 1s"}
	}

	if c.MaxTTL < 0 || c.MaxTTL > traceroute.MaxTTL {
		return checks.ErrInvalidConfig{CheckName: CheckName, Field: "traceroute.maxHops", Reason: "must be between 0 and 255"}
	}

	if c.Retry.Count < 0 {
		return checks.ErrInvalidConfig{CheckName: CheckName, Field: "traceroute.retry.count", Reason: "must not be negative"}
	}

	return checks.ValidateTargets(CheckName, c.Targets)
}
