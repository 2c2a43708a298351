// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package packet

import (
	"encoding/binary"
	"math"
	"os"
	"time"

	"golang.org/x/net/ipv4"
)

const (
	// HeaderLen is the length of the ICMP echo header.
	HeaderLen = 8
	// timestampLen is the length of the send timestamp leading the payload.
	timestampLen = 8
)

// DefaultPayload is the ASCII pattern carried by every echo request.
const DefaultPayload = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// Identifier returns the echo identifier of this process,
// the process id masked to 16 bits.
func Identifier() uint16 {
	return uint16(os.Getpid() & 0xffff) // #nosec G115 // masked to 16 bits
}

// EchoRequest is an assembled ICMP Echo Request.
type EchoRequest struct {
	// Type is always [ipv4.ICMPTypeEcho].
	Type ipv4.ICMPType
	// Code is always 0.
	Code int
	// Identifier distinguishes our probes from those of other processes.
	Identifier uint16
	// Sequence is the probe number within a phase.
	Sequence uint16
	// Payload is the text following the timestamp.
	Payload string
	// Timestamp is the send time in seconds since the epoch.
	Timestamp float64
	// Checksum is the final checksum stored in the header.
	Checksum uint16

	header []byte
	data   []byte
}

// NewEchoRequest assembles an echo request for the given identifier and
// sequence number, stamped with sentAt.
//
// The header is packed twice: first with a zero checksum to compute the
// checksum over header and payload, then again with the final value.
func NewEchoRequest(id, seq uint16, payload string, sentAt time.Time) *EchoRequest {
	req := &EchoRequest{
		Type:       ipv4.ICMPTypeEcho,
		Code:       0,
		Identifier: id,
		Sequence:   seq,
		Payload:    payload,
		Timestamp:  float64(sentAt.UnixNano()) / float64(time.Second),
	}

	req.packHeader()
	req.encodeData()
	req.Checksum = Checksum(req.Bytes())
	req.packHeader()
	return req
}

// Bytes returns the wire representation of the request.
func (r *EchoRequest) Bytes() []byte {
	b := make([]byte, 0, len(r.header)+len(r.data))
	b = append(b, r.header...)
	return append(b, r.data...)
}

func (r *EchoRequest) packHeader() {
	h := make([]byte, HeaderLen)
	h[0] = byte(r.Type)
	h[1] = byte(r.Code)
	binary.BigEndian.PutUint16(h[2:4], r.Checksum)
	binary.BigEndian.PutUint16(h[4:6], r.Identifier)
	binary.BigEndian.PutUint16(h[6:8], r.Sequence)
	r.header = h
}

func (r *EchoRequest) encodeData() {
	d := make([]byte, timestampLen, timestampLen+len(r.Payload))
	binary.LittleEndian.PutUint64(d, math.Float64bits(r.Timestamp))
	r.data = append(d, r.Payload...)
}
