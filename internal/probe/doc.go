// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

// Package probe sends single ICMP echo requests and classifies their replies.
//
// A [Prober] builds the request, hands it to a [transport.Exchanger], decodes
// the reply and validates it against the request. The outcome of every probe
// is an [Event], which the ping and traceroute controllers aggregate.
package probe
