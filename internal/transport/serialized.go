// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package transport

import (
	"context"
)

var _ Exchanger = (*serialized)(nil)

// serialized allows a single exchange at a time.
type serialized struct {
	sem  chan struct{}
	next Exchanger
}

// NewSerialized wraps ex so that concurrent callers take turns.
// Checks sharing the returned [Exchanger] never have more than one
// probe in flight.
func NewSerialized(ex Exchanger) Exchanger {
	return &serialized{
		sem:  make(chan struct{}, 1),
		next: ex,
	}
}

// Exchange waits for its turn and forwards the probe.
// Returns the context's error if it is done before the turn comes.
func (s *serialized) Exchange(ctx context.Context, p Probe) (Reply, error) {
	select {
	case s.sem <- struct{}{}:
	case <-ctx.Done():
		return Reply{}, ctx.Err()
	}
	defer func() { <-s.sem }()
	return s.next.Exchange(ctx, p)
}
