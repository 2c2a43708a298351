// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenDocs(t *testing.T) {
	tests := []struct {
		format  string
		want    []string
		wantErr bool
	}{
		{format: "markdown", want: []string{"icmpdiag.md", "icmpdiag_ping.md", "icmpdiag_traceroute.md", "icmpdiag_run.md"}},
		{format: "man", want: []string{"icmpdiag.1", "icmpdiag-ping.1", "icmpdiag-traceroute.1", "icmpdiag-run.1"}},
		{format: "html", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			dir := t.TempDir()
			cmd := NewCmdGenDocs()
			cmd.SetArgs([]string{"--path", dir, "--format", tt.format})

			err := cmd.Execute()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			for _, f := range tt.want {
				_, err := os.Stat(filepath.Join(dir, f))
				assert.NoError(t, err, f)
			}
		})
	}
}
