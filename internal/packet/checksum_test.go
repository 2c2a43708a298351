// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package packet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChecksum_ReferenceVector(t *testing.T) {
	b := []byte{
		0x08, 0x00, // type, code
		0x00, 0x00, // checksum
		0x12, 0x34, // identifier
		0x00, 0x01, // sequence
		'A', 'B',
	}

	assert.Equal(t, uint16(0xa488), Checksum(b))
}

func TestChecksum_VerifiesToZero(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "even length", data: []byte{0x08, 0x00, 0x00, 0x00, 0xff, 0xff, 0x00, 0x02, 'A', 'B', 'C', 'D'}},
		{name: "odd length", data: []byte{0x08, 0x00, 0x00, 0x00, 0x00, 0x07, 0x00, 0x03, 'x', 'y', 'z'}},
		{name: "carry heavy", data: []byte{0x08, 0x00, 0x00, 0x00, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}},
		{name: "header only", data: []byte{0x08, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sum := Checksum(tt.data)
			tt.data[2] = byte(sum >> 8)
			tt.data[3] = byte(sum)

			assert.Zero(t, Checksum(tt.data), "checksum over a checksummed packet must be zero")
		})
	}
}
