// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package transport

import (
	"context"
	"errors"
	"fmt"
	"net/netip"
	"time"

	"golang.org/x/net/ipv4"
	"golang.org/x/sys/unix"
)

// pollInterval bounds a single poll call so context cancellation is noticed.
const pollInterval = 200 * time.Millisecond

// socket is the subset of raw socket operations needed for one exchange.
//
//go:generate go tool moq -out socket_moq.go . socket
type socket interface {
	// Bind binds the socket to an ephemeral local port.
	Bind() error
	// SetTTL sets the IP time to live of outgoing packets.
	SetTTL(ttl int) error
	// SetReadTimeout sets the receive timeout of the socket.
	SetReadTimeout(d time.Duration) error
	// SendTo sends b to dst.
	SendTo(b []byte, dst netip.Addr) error
	// WaitReadable waits up to timeout for the socket to become readable.
	WaitReadable(ctx context.Context, timeout time.Duration) (bool, error)
	// RecvFrom reads one datagram into b.
	RecvFrom(b []byte) (int, netip.Addr, error)
	// Close closes the socket.
	Close() error
}

var _ socket = (*rawSocket)(nil)

// rawSocket is an AF_INET/SOCK_RAW/IPPROTO_ICMP socket.
type rawSocket struct {
	fd int
}

// openRawSocket opens a raw ICMP socket.
// Returns [ErrRawSocketNotAvailable] if the process is not permitted to.
func openRawSocket() (socket, error) {
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_RAW, unix.IPPROTO_ICMP)
	if err != nil {
		if errors.Is(err, unix.EPERM) || errors.Is(err, unix.EACCES) {
			return nil, fmt.Errorf("%w: %w", ErrRawSocketNotAvailable, err)
		}
		return nil, fmt.Errorf("failed to open raw ICMP socket: %w", err)
	}
	unix.CloseOnExec(fd)

	// Drop outgoing echo requests looped back to us, e.g. when probing 127.0.0.1.
	if err := unix.SetsockoptInt(fd, unix.SOL_RAW, unix.ICMP_FILTER, 1<<int(ipv4.ICMPTypeEcho)); err != nil {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("failed to set ICMP filter: %w", err)
	}
	return &rawSocket{fd: fd}, nil
}

func (s *rawSocket) Bind() error {
	return unix.Bind(s.fd, &unix.SockaddrInet4{Port: 0})
}

func (s *rawSocket) SetTTL(ttl int) error {
	return unix.SetsockoptInt(s.fd, unix.IPPROTO_IP, unix.IP_TTL, ttl)
}

func (s *rawSocket) SetReadTimeout(d time.Duration) error {
	tv := unix.NsecToTimeval(d.Nanoseconds())
	return unix.SetsockoptTimeval(s.fd, unix.SOL_SOCKET, unix.SO_RCVTIMEO, &tv)
}

func (s *rawSocket) SendTo(b []byte, dst netip.Addr) error {
	return unix.Sendto(s.fd, b, 0, &unix.SockaddrInet4{Addr: dst.As4()})
}

// WaitReadable polls the socket in short slices until it becomes readable,
// the timeout elapses or the context is done.
func (s *rawSocket) WaitReadable(ctx context.Context, timeout time.Duration) (bool, error) {
	deadline := time.Now().Add(timeout)
	for {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return false, nil
		}

		fds := []unix.PollFd{{Fd: int32(s.fd), Events: unix.POLLIN}} // #nosec G115 // file descriptors fit into int32
		wait := max(min(remaining, pollInterval), time.Millisecond)
		n, err := unix.Poll(fds, int(wait.Milliseconds()))
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			return false, err
		}
		if n > 0 {
			return true, nil
		}
	}
}

func (s *rawSocket) RecvFrom(b []byte) (int, netip.Addr, error) {
	n, from, err := unix.Recvfrom(s.fd, b, 0)
	if err != nil {
		return 0, netip.Addr{}, err
	}
	var src netip.Addr
	if sa, ok := from.(*unix.SockaddrInet4); ok {
		src = netip.AddrFrom4(sa.Addr)
	}
	return n, src, nil
}

func (s *rawSocket) Close() error {
	return unix.Close(s.fd)
}
