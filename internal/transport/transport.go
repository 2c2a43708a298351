// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package transport

import (
	"context"
	"errors"
	"fmt"
	"net/netip"
	"slices"
	"time"

	"github.com/telekom/icmpdiag/internal/logger"
	"golang.org/x/net/ipv4"
	"golang.org/x/sys/unix"
)

var _ Exchanger = (*rawTransport)(nil)

const (
	// DefaultTimeout is the ceiling of the time budget for a single reply.
	DefaultTimeout = 30 * time.Second
	// recvBufferSize is the maximum number of reply bytes read.
	recvBufferSize = 1024
)

// Exchanger sends a single probe and waits for its reply.
//
//go:generate go tool moq -out exchanger_moq.go . Exchanger
type Exchanger interface {
	// Exchange sends the probe and returns the first reply received on the socket.
	// Echo requests looped back to the socket are not replies and are skipped.
	// Timeouts are reported as [ErrTimeout], [ErrTimeoutExhausted] or [ErrTimeoutByException].
	Exchange(ctx context.Context, p Probe) (Reply, error)
}

// Probe is a single ICMP message to send.
type Probe struct {
	// Dst is the IPv4 destination.
	Dst netip.Addr
	// TTL is the IP time to live set on the socket.
	TTL int
	// Packet is the assembled ICMP message.
	Packet []byte
}

// Reply is the raw answer to a probe.
type Reply struct {
	// Data holds the IPv4 header followed by the ICMP message.
	Data []byte
	// Source is the address of the responder.
	Source netip.Addr
	// SentAt is the time right before the probe was sent.
	SentAt time.Time
	// ReceivedAt is the time right after the reply was read.
	ReceivedAt time.Time
}

// RTT returns the time between sending the probe and receiving the reply.
func (r Reply) RTT() time.Duration {
	return r.ReceivedAt.Sub(r.SentAt)
}

// rawTransport exchanges probes over a fresh raw socket per probe.
type rawTransport struct {
	// timeout is the ceiling of the time budget.
	timeout time.Duration
	// openSocket opens the raw socket, replaced in tests.
	openSocket func() (socket, error)
	// now returns the current time, replaced in tests.
	now func() time.Time
}

// New returns an [Exchanger] using raw ICMP sockets. A non-positive
// timeout falls back to [DefaultTimeout].
func New(timeout time.Duration) Exchanger {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &rawTransport{
		timeout:    timeout,
		openSocket: openRawSocket,
		now:        time.Now,
	}
}

// Exchange sends the probe and waits for a reply within the time budget.
// The budget starts at the configured timeout, or the time left until the
// context deadline if that is shorter.
func (t *rawTransport) Exchange(ctx context.Context, p Probe) (Reply, error) {
	log := logger.FromContext(ctx).With("dst", p.Dst, "ttl", p.TTL)
	if !p.Dst.Is4() {
		return Reply{}, fmt.Errorf("%w: %s", ErrUnsupportedAddress, p.Dst)
	}
	if err := ctx.Err(); err != nil {
		return Reply{}, err
	}

	budget := t.budget(ctx)
	sock, err := t.openSocket()
	if err != nil {
		return Reply{}, err
	}
	defer func() {
		if cErr := sock.Close(); cErr != nil {
			log.WarnContext(ctx, "Failed to close raw socket", "error", cErr)
		}
	}()

	if err = sock.Bind(); err != nil {
		return Reply{}, fmt.Errorf("failed to bind raw socket: %w", err)
	}
	if err = sock.SetTTL(p.TTL); err != nil {
		return Reply{}, fmt.Errorf("failed to set ttl %d: %w", p.TTL, err)
	}
	if err = sock.SetReadTimeout(budget); err != nil {
		return Reply{}, fmt.Errorf("failed to set receive timeout: %w", err)
	}

	sentAt := t.now()
	if err = sock.SendTo(p.Packet, p.Dst); err != nil {
		return Reply{}, fmt.Errorf("failed to send probe: %w", err)
	}

	buf := make([]byte, recvBufferSize)
	remaining := budget
	for {
		waitStart := t.now()
		ready, err := sock.WaitReadable(ctx, remaining)
		if err != nil {
			return Reply{}, fmt.Errorf("failed to wait for reply: %w", err)
		}
		waited := t.now().Sub(waitStart)
		if !ready {
			log.DebugContext(ctx, "No reply within time budget", "budget", budget)
			return Reply{}, ErrTimeout
		}

		n, src, err := sock.RecvFrom(buf)
		if err != nil {
			if errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EWOULDBLOCK) {
				return Reply{}, ErrTimeoutByException
			}
			return Reply{}, fmt.Errorf("failed to receive reply: %w", err)
		}
		receivedAt := t.now()

		remaining -= waited
		if remaining <= 0 {
			log.DebugContext(ctx, "Reply arrived after time budget was used up", "waited", budget-remaining)
			return Reply{}, ErrTimeoutExhausted
		}

		if isEchoRequest(buf[:n]) {
			log.DebugContext(ctx, "Discarding looped back echo request", "source", src)
			continue
		}

		log.DebugContext(ctx, "Received reply", "source", src, "bytes", n)
		return Reply{
			Data:       slices.Clone(buf[:n]),
			Source:     src,
			SentAt:     sentAt,
			ReceivedAt: receivedAt,
		}, nil
	}
}

// isEchoRequest reports whether the raw datagram carries an ICMP echo request.
// The ICMP message starts behind the IPv4 header, whose length is read from the IHL field.
func isEchoRequest(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	ihl := int(b[0]&0x0f) * 4
	return len(b) > ihl && ipv4.ICMPType(b[ihl]) == ipv4.ICMPTypeEcho
}

// budget returns the time allowed for waiting on a reply.
func (t *rawTransport) budget(ctx context.Context) time.Duration {
	deadline, ok := ctx.Deadline()
	if !ok {
		return t.timeout
	}
	return min(t.timeout, deadline.Sub(t.now()))
}
