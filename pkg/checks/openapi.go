// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package checks

import (
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3gen"
)

// OpenapiFromPerfData takes in check perfdata and returns an openapi3.SchemaRef
// of a [Result] whose "data" property describes the perfdata.
func OpenapiFromPerfData[T any](data T) (*openapi3.SchemaRef, error) {
	checkSchema, err := openapi3gen.NewSchemaRefForValue(Result{}, openapi3.Schemas{})
	if err != nil {
		return nil, fmt.Errorf("failed to generate result schema: %w", err)
	}
	perfdataSchema, err := openapi3gen.NewSchemaRefForValue(data, openapi3.Schemas{})
	if err != nil {
		return nil, fmt.Errorf("failed to generate perfdata schema: %w", err)
	}

	checkSchema.Value.Properties["data"] = perfdataSchema
	return checkSchema, nil
}
