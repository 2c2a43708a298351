// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package transport

import (
	"errors"
)

var (
	// ErrTimeout is returned when no reply became readable within the time budget.
	ErrTimeout = errors.New("request timed out")
	// ErrTimeoutExhausted is returned when a reply arrived but the time budget was used up while waiting for it.
	ErrTimeoutExhausted = errors.New("request timed out (by no remaining time left)")
	// ErrTimeoutByException is returned when the socket's receive timeout expired.
	ErrTimeoutByException = errors.New("request timed out (by exception)")
	// ErrRawSocketNotAvailable is returned when the process lacks the NET_RAW capability.
	ErrRawSocketNotAvailable = errors.New("no NET_RAW capabilities, raw ICMP socket not available")
	// ErrUnsupportedAddress is returned for destinations that are not IPv4 addresses.
	ErrUnsupportedAddress = errors.New("destination is not an IPv4 address")
)

// IsTimeout reports whether err is one of the timeout conditions.
// A timed out probe is lost but does not end the diagnostic.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout) ||
		errors.Is(err, ErrTimeoutExhausted) ||
		errors.Is(err, ErrTimeoutByException)
}
