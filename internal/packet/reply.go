// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package packet

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strings"

	"golang.org/x/net/ipv4"
)

// ErrMalformedPacket is returned when a reply is too short for the fields being decoded.
var ErrMalformedPacket = errors.New("malformed ICMP packet")

// Fixed offsets of the reply fields. The IPv4 header is assumed to carry no options.
const (
	offType       = ipv4.HeaderLen
	offCode       = ipv4.HeaderLen + 1
	offChecksum   = ipv4.HeaderLen + 2
	offIdentifier = ipv4.HeaderLen + 4
	offSequence   = ipv4.HeaderLen + 6
	offTimestamp  = ipv4.HeaderLen + HeaderLen
	offPayload    = offTimestamp + timestampLen
)

// Reply is a decoded ICMP reply.
type Reply struct {
	Type       ipv4.ICMPType `json:"type" yaml:"type"`
	Code       int           `json:"code" yaml:"code"`
	Checksum   uint16        `json:"checksum" yaml:"checksum"`
	Identifier uint16        `json:"identifier" yaml:"identifier"`
	Sequence   uint16        `json:"sequence" yaml:"sequence"`
	// Timestamp is the send time echoed back by the responder, in seconds since the epoch.
	Timestamp float64 `json:"timestamp" yaml:"timestamp"`
	// Payload is the echoed text. Bytes that are not valid UTF-8 are dropped.
	Payload string `json:"payload" yaml:"payload"`
}

// ParseReply decodes a raw reply (IPv4 header followed by the ICMP message).
func ParseReply(b []byte) (Reply, error) {
	d := decoder{buf: b}

	typ, err := d.uint8(offType)
	if err != nil {
		return Reply{}, err
	}
	code, err := d.uint8(offCode)
	if err != nil {
		return Reply{}, err
	}
	sum, err := d.uint16(offChecksum)
	if err != nil {
		return Reply{}, err
	}
	id, err := d.uint16(offIdentifier)
	if err != nil {
		return Reply{}, err
	}
	seq, err := d.uint16(offSequence)
	if err != nil {
		return Reply{}, err
	}
	ts, err := d.float64(offTimestamp)
	if err != nil {
		return Reply{}, err
	}
	payload, err := d.text(offPayload)
	if err != nil {
		return Reply{}, err
	}

	return Reply{
		Type:       ipv4.ICMPType(typ),
		Code:       int(code),
		Checksum:   sum,
		Identifier: id,
		Sequence:   seq,
		Timestamp:  ts,
		Payload:    payload,
	}, nil
}

// decoder reads fields at fixed offsets after validating the buffer length.
type decoder struct {
	buf []byte
}

func (d decoder) field(off, size int) ([]byte, error) {
	if off < 0 || len(d.buf) < off+size {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, got %d", ErrMalformedPacket, size, off, len(d.buf))
	}
	return d.buf[off : off+size], nil
}

func (d decoder) uint8(off int) (uint8, error) {
	b, err := d.field(off, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (d decoder) uint16(off int) (uint16, error) {
	b, err := d.field(off, 2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (d decoder) float64(off int) (float64, error) {
	b, err := d.field(off, timestampLen)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(b)), nil
}

func (d decoder) text(off int) (string, error) {
	if _, err := d.field(off, 0); err != nil {
		return "", err
	}
	return strings.ToValidUTF8(string(d.buf[off:]), ""), nil
}
