// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package ping

import (
	"testing"
	"time"

	"github.com/telekom/icmpdiag/internal/helper"
	"github.com/telekom/icmpdiag/internal/ping"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: Config{
				Targets:  []string{"8.8.8.8", "example.com"},
				Interval: 10 * time.Second,
				Options:  ping.Options{TTL: 64, Retry: helper.RetryConfig{Count: 2, Delay: time.Second}},
			},
			wantErr: false,
		},
		{
			name: "default ttl",
			config: Config{
				Targets:  []string{"example.com"},
				Interval: time.Second,
			},
			wantErr: false,
		},
		{
			name: "invalid interval",
			config: Config{
				Targets:  []string{"example.com"},
				Interval: 10 * time.Millisecond,
			},
			wantErr: true,
		},
		{
			name: "invalid ttl",
			config: Config{
				Targets:  []string{"example.com"},
				Interval: time.Second,
				Options:  ping.Options{TTL: 256},
			},
			wantErr: true,
		},
		{
			name: "negative retries",
			config: Config{
				Targets:  []string{"example.com"},
				Interval: time.Second,
				Options:  ping.Options{Retry: helper.RetryConfig{Count: -1}},
			},
			wantErr: true,
		},
		{
			name: "invalid target",
			config: Config{
				Targets:  []string{"http://example.com"},
				Interval: time.Second,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
