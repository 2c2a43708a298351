// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

// Package packet builds ICMP echo requests and decodes the raw replies
// read from an IPv4 raw socket.
//
// Requests carry an 8-byte header, an 8-byte send timestamp and a fixed
// ASCII pattern. Replies are decoded at fixed offsets behind a 20-byte IPv4
// header; every field access is bounds-checked and fails with
// [ErrMalformedPacket] instead of reading past the buffer.
package packet
