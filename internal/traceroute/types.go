// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"encoding/json"
	"fmt"
	"net/netip"

	"github.com/telekom/icmpdiag/internal/helper"
	"github.com/telekom/icmpdiag/internal/probe"
	"github.com/telekom/icmpdiag/internal/stats"
	"golang.org/x/net/ipv4"
)

const (
	// MaxTTL is the highest TTL a sweep may reach.
	MaxTTL = 255
	// ProbesPerHop is the number of echo requests sent per TTL.
	ProbesPerHop = 4
)

// Options contains the optional configuration for the traceroute.
type Options struct {
	// MaxTTL is the maximum TTL to use for the traceroute.
	// Values outside of 1 to 255 fall back to 255.
	MaxTTL int `json:"maxHops" yaml:"maxHops" mapstructure:"maxHops"`
	// ResolveNames enables reverse DNS lookups of the hop responders.
	ResolveNames bool `json:"resolveNames" yaml:"resolveNames" mapstructure:"resolveNames"`
	// Retry is the retry configuration for resolving the target.
	Retry helper.RetryConfig `json:"retry" yaml:"retry" mapstructure:"retry"`
}

// maxTTL returns the effective upper bound of the sweep.
func (o *Options) maxTTL() int {
	if o == nil || o.MaxTTL < 1 || o.MaxTTL > MaxTTL {
		return MaxTTL
	}
	return o.MaxTTL
}

func (o *Options) resolveNames() bool {
	return o != nil && o.ResolveNames
}

func (o *Options) retry() helper.RetryConfig {
	if o == nil {
		return helper.RetryConfig{}
	}
	return o.Retry
}

// Result represents the result of a traceroute.
type Result struct {
	// Target is the resolved target.
	Target probe.Target `json:"target" yaml:"target"`
	// Hops holds one hop per TTL in ascending order.
	Hops []Hop `json:"hops" yaml:"hops"`
	// Reached is true if the target answered with an Echo Reply.
	Reached bool `json:"reached" yaml:"reached"`
}

// Hop is the summary of the probes sent with a single TTL.
type Hop struct {
	TTL int `json:"ttl" yaml:"ttl"`
	// Addr is the responder of the hop's last probe, "*" if it was lost.
	Addr HopAddress `json:"addr" yaml:"addr"`
	// Name is the reverse DNS name of the responder, if looked up.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	// Type and Code of the last probe's reply.
	Type ipv4.ICMPType `json:"type" yaml:"type"`
	Code int           `json:"code" yaml:"code"`
	// Summary holds the round-trip statistics of all probes of the hop.
	Summary stats.Summary `json:"summary" yaml:"summary"`
	// Reached is true if the hop is the target itself.
	Reached bool `json:"reached" yaml:"reached"`
	// Probes holds the individual probe events.
	Probes []probe.Event `json:"probes" yaml:"probes"`
}

// Responded reports whether the last probe of the hop was answered.
func (h Hop) Responded() bool {
	return h.Addr.IsValid()
}

func (h Hop) String() string {
	if !h.Responded() {
		return fmt.Sprintf("TTL=%d    %s    %s", h.TTL, h.Summary, h.Addr)
	}

	responder := h.Addr.String()
	if h.Name != "" {
		responder = fmt.Sprintf("%s (%s)", h.Name, h.Addr)
	}
	return fmt.Sprintf("TTL=%d    %s    Type=%d    Code=%d    %s",
		h.TTL, h.Summary, int(h.Type), h.Code, responder)
}

// HopAddress is the responder of a hop.
type HopAddress struct {
	IP netip.Addr
}

func newHopAddress(addr netip.Addr) HopAddress {
	return HopAddress{IP: addr}
}

// IsValid reports whether a responder is known.
func (a HopAddress) IsValid() bool {
	return a.IP.IsValid()
}

func (a HopAddress) String() string {
	if !a.IP.IsValid() {
		return "*"
	}
	return a.IP.String()
}

// MarshalJSON renders the address as a string, "*" for an unknown responder.
func (a HopAddress) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// MarshalYAML renders the address as a string, "*" for an unknown responder.
func (a HopAddress) MarshalYAML() (any, error) {
	return a.String(), nil
}
