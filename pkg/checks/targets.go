// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package checks

import (
	"fmt"
	"net/netip"
	"regexp"
)

var hostnameRegex = regexp.MustCompile(`^([a-zA-Z0-9]([a-zA-Z0-9\-]{0,61}[a-zA-Z0-9])?)(\.[a-zA-Z0-9]([a-zA-Z0-9\-]{0,61}[a-zA-Z0-9])?)*\.?$`)

// ValidateTargets returns an [ErrInvalidConfig] for the first target
// that is neither an IPv4 address nor a hostname.
func ValidateTargets(checkName string, targets []string) error {
	for i, t := range targets {
		field := fmt.Sprintf("%s.targets[%d]", checkName, i)
		if addr, err := netip.ParseAddr(t); err == nil {
			if !addr.Unmap().Is4() {
				return ErrInvalidConfig{CheckName: checkName, Field: field, Reason: "only IPv4 targets are supported"}
			}
			continue
		}
		if len(t) > 253 || !hostnameRegex.MatchString(t) {
			return ErrInvalidConfig{CheckName: checkName, Field: field, Reason: "invalid hostname or ip"}
		}
	}
	return nil
}
