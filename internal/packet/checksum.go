// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package packet

// Checksum computes the ICMP checksum of b.
//
// Byte pairs are summed as little-endian 16-bit words into a 32-bit
// accumulator, a trailing odd byte is added as-is, the carries are folded
// back twice and the one's complement is byte-swapped. The result is the
// value to store big-endian in the checksum field.
//
// Running Checksum over a packet that already carries its checksum yields 0.
func Checksum(b []byte) uint16 {
	var sum uint32
	even := len(b) / 2 * 2
	for i := 0; i < even; i += 2 {
		sum += uint32(b[i+1])<<8 | uint32(b[i])
	}
	if even < len(b) {
		sum += uint32(b[len(b)-1])
	}

	sum = (sum >> 16) + (sum & 0xffff)
	sum = (sum >> 16) + (sum & 0xffff)

	answer := ^sum & 0xffff
	return uint16(answer>>8 | (answer<<8)&0xff00) // #nosec G115 // masked to 16 bits
}
