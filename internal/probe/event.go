// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package probe

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/netip"
	"time"

	"github.com/telekom/icmpdiag/internal/packet"
	"github.com/telekom/icmpdiag/internal/transport"
)

// ErrUnexpectedType is returned for replies that are neither Echo Reply,
// Destination Unreachable nor Time Exceeded.
var ErrUnexpectedType = errors.New("unexpected ICMP type")

// timeoutPrefix leads every report line of a lost probe.
const timeoutPrefix = "*        *        *        *        *    "

// Event is the outcome of a single probe.
type Event struct {
	// Sequence and Identifier of the request.
	Sequence   uint16 `json:"sequence" yaml:"sequence"`
	Identifier uint16 `json:"identifier" yaml:"identifier"`
	// Payload is the text the request carried.
	Payload string `json:"-" yaml:"-"`
	// TTL the request was sent with.
	TTL int `json:"ttl" yaml:"ttl"`
	// Reply is the decoded reply. Zero if none was received or it could not be decoded.
	Reply packet.Reply `json:"reply" yaml:"reply"`
	// Source is the address of the responder.
	Source netip.Addr `json:"source" yaml:"source"`
	// RTT is the time between sending the request and receiving the reply.
	RTT time.Duration `json:"-" yaml:"-"`
	// Validation compares the reply with the request.
	Validation packet.Validation `json:"validation" yaml:"validation"`
	// Err is set if the probe failed.
	Err error `json:"-" yaml:"-"`
}

// Answered reports whether a reply of a known type was received.
// Only answered probes contribute a round-trip sample.
func (e Event) Answered() bool {
	return e.Err == nil
}

// Valid reports whether the probe was answered by a reply matching the request.
func (e Event) Valid() bool {
	return e.Answered() && e.Validation.Valid()
}

// Fatal reports whether the probe failed for a reason no later probe can
// recover from, such as a missing NET_RAW capability.
func (e Event) Fatal() bool {
	return errors.Is(e.Err, transport.ErrRawSocketNotAvailable) ||
		errors.Is(e.Err, transport.ErrUnsupportedAddress)
}

// Reached reports whether the reply came from the target itself.
func (e Event) Reached() bool {
	return e.Answered() && e.Reply.Type == echoReply
}

// String renders the report line of the probe.
func (e Event) String() string {
	switch {
	case e.Err == nil:
		return fmt.Sprintf("TTL=%-4d RTT=%-6.0f ms Type=%-2d Code=%-2d Address=%-15s",
			e.TTL, float64(e.RTT)/float64(time.Millisecond), int(e.Reply.Type), e.Reply.Code, e.Source)
	case errors.Is(e.Err, transport.ErrTimeoutExhausted):
		return timeoutPrefix + "Request timed out (By no remaining time left)."
	case errors.Is(e.Err, transport.ErrTimeoutByException):
		return timeoutPrefix + "Request timed out (By Exception)."
	case errors.Is(e.Err, transport.ErrTimeout):
		return timeoutPrefix + "Request timed out."
	case errors.Is(e.Err, ErrUnexpectedType):
		return fmt.Sprintf("TTL=%-4d error: unexpected ICMP reply Type=%-2d Code=%-2d Address=%-15s",
			e.TTL, int(e.Reply.Type), e.Reply.Code, e.Source)
	default:
		return fmt.Sprintf("TTL=%-4d error: %v", e.TTL, e.Err)
	}
}

// Mismatches returns one line per reply field not matching the request.
func (e Event) Mismatches() []string {
	if !e.Answered() {
		return nil
	}
	var lines []string
	if !e.Validation.SequenceMatch {
		lines = append(lines, fmt.Sprintf("Expected Sequence Number: %d, Actual Sequence Number: %d", e.Sequence, e.Reply.Sequence))
	}
	if !e.Validation.IdentifierMatch {
		lines = append(lines, fmt.Sprintf("Expected Packet Identifier: %d, Actual Packet Identifier: %d", e.Identifier, e.Reply.Identifier))
	}
	if !e.Validation.PayloadMatch {
		lines = append(lines, fmt.Sprintf("Expected Raw Data: %s, Actual Raw Data: %s", e.Payload, e.Reply.Payload))
	}
	return lines
}

// eventAlias avoids recursion when marshalling.
type eventAlias Event

// eventView is the serialized form of an [Event].
type eventView struct {
	eventAlias `yaml:",inline"`
	RTT        string `json:"rtt,omitempty" yaml:"rtt,omitempty"`
	Error      string `json:"error,omitempty" yaml:"error,omitempty"`
}

func (e Event) view() eventView {
	v := eventView{eventAlias: eventAlias(e)}
	if e.Answered() {
		v.RTT = e.RTT.String()
	}
	if e.Err != nil {
		v.Error = e.Err.Error()
	}
	return v
}

func (e Event) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.view())
}

func (e Event) MarshalYAML() (any, error) {
	return e.view(), nil
}
