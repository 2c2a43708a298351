// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package factory

import (
	"errors"

	"github.com/telekom/icmpdiag/internal/transport"
	"github.com/telekom/icmpdiag/pkg/checks"
	"github.com/telekom/icmpdiag/pkg/checks/ping"
	"github.com/telekom/icmpdiag/pkg/checks/runtime"
	"github.com/telekom/icmpdiag/pkg/checks/traceroute"
)

var (
	// ErrNilConfig is returned when a check is created without configuration
	ErrNilConfig = errors.New("config is nil")
	// ErrUnknownCheck is returned for configurations of unregistered checks
	ErrUnknownCheck = errors.New("unknown check type")
)

// NewCheck creates a new check instance from the given configuration.
// The check sends its probes through ex.
func NewCheck(cfg checks.Runtime, ex transport.Exchanger) (checks.Check, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if f, ok := registry[cfg.For()]; ok {
		c := f(ex)
		err := c.UpdateConfig(cfg)
		return c, err
	}
	return nil, ErrUnknownCheck
}

// NewChecksFromConfig creates all checks defined provided config
func NewChecksFromConfig(cfg runtime.Config, ex transport.Exchanger) (map[string]checks.Check, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	result := make(map[string]checks.Check)
	for c := range cfg.Iter() {
		check, err := NewCheck(c, ex)
		if err != nil {
			return nil, err
		}
		result[check.Name()] = check
	}
	return result, nil
}

// registry is a convenience map to create new checks
var registry = map[string]func(transport.Exchanger) checks.Check{
	ping.CheckName:       ping.NewCheck,
	traceroute.CheckName: traceroute.NewCheck,
}
