// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

// Package test provides helpers shared by the tests of all packages.
package test

import (
	"os"
	"testing"
)

// privilegedEnv enables tests that open raw sockets.
const privilegedEnv = "ICMPDIAG_PRIVILEGED_TESTS"

// MarkAsShort marks a test as a short unit test.
// Short tests are skipped when only privileged tests are requested.
func MarkAsShort(t testing.TB) {
	t.Helper()
	if os.Getenv(privilegedEnv) == "only" {
		t.Skip("skipping short test, only privileged tests are run")
	}
}

// MarkAsPrivileged marks a test that needs raw socket access.
// It is skipped in short mode and unless ICMPDIAG_PRIVILEGED_TESTS is set.
// Raw sockets see the ICMP traffic of every process, so privileged tests
// of several packages must not run at the same time (go test -p 1).
func MarkAsPrivileged(t testing.TB) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping privileged test in short mode")
	}
	if os.Getenv(privilegedEnv) == "" {
		t.Skipf("skipping privileged test, set %s to run it", privilegedEnv)
	}
}
