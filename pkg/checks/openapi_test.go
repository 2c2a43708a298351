// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package checks

import (
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenapiFromPerfData(t *testing.T) {
	type perfData struct {
		Loss    int    `json:"loss"`
		Address string `json:"address"`
	}

	got, err := OpenapiFromPerfData(map[string]perfData{})
	require.NoError(t, err)
	require.NotNil(t, got.Value)

	assert.Contains(t, got.Value.Properties, "timestamp")
	data, ok := got.Value.Properties["data"]
	require.True(t, ok, "data property missing")
	assert.True(t, data.Value.Type.Is(openapi3.TypeObject))
	require.NotNil(t, data.Value.AdditionalProperties.Schema)
	assert.Contains(t, data.Value.AdditionalProperties.Schema.Value.Properties, "loss")
	assert.Contains(t, data.Value.AdditionalProperties.Schema.Value.Properties, "address")
}
