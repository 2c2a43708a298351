// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package packet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	req := NewEchoRequest(0x0101, 2, DefaultPayload, time.Now())
	matching := Reply{Identifier: 0x0101, Sequence: 2, Payload: DefaultPayload}

	tests := []struct {
		name           string
		mutate         func(r *Reply)
		wantValid      bool
		wantMismatches []string
	}{
		{name: "all fields match", mutate: func(*Reply) {}, wantValid: true},
		{name: "sequence differs", mutate: func(r *Reply) { r.Sequence = 3 }, wantMismatches: []string{"sequence"}},
		{name: "identifier differs", mutate: func(r *Reply) { r.Identifier = 0x0202 }, wantMismatches: []string{"identifier"}},
		{name: "payload differs", mutate: func(r *Reply) { r.Payload = "ABC" }, wantMismatches: []string{"payload"}},
		{
			name: "everything differs",
			mutate: func(r *Reply) {
				r.Sequence, r.Identifier, r.Payload = 9, 9, ""
			},
			wantMismatches: []string{"sequence", "identifier", "payload"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep := matching
			tt.mutate(&rep)

			v := Validate(req, rep)
			assert.Equal(t, tt.wantValid, v.Valid())
			assert.Equal(t, tt.wantMismatches, v.Mismatches())
		})
	}
}
