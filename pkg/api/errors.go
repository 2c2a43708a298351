// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidListeningAddress is returned when the listening address cannot be parsed
	ErrInvalidListeningAddress = errors.New("invalid listening address")
	// ErrMissingTLSFiles is returned when tls is enabled without certificate or key
	ErrMissingTLSFiles = errors.New("tls is enabled but certificate or key path is missing")
)

// ErrInvalidRoute is returned when a route cannot be registered
type ErrInvalidRoute struct {
	Method string
	Path   string
}

func (e ErrInvalidRoute) Error() string {
	return fmt.Sprintf("cannot register route %s %q: unsupported method", e.Method, e.Path)
}
