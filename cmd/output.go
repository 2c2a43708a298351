// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"gopkg.in/yaml.v3"
)

// outputFormat is the format the result of a diagnostic is printed in
type outputFormat string

const (
	// outputText prints the report lines while the diagnostic is running
	outputText outputFormat = "text"
	outputJSON outputFormat = "json"
	outputYAML outputFormat = "yaml"
)

var outputFormats = []outputFormat{outputText, outputJSON, outputYAML}

func (o outputFormat) Validate() error {
	if !slices.Contains(outputFormats, o) {
		return fmt.Errorf("unsupported output format %q, must be one of %v", string(o), outputFormats)
	}
	return nil
}

// reportWriter returns the writer the live report is written to.
// Only the text format prints a live report.
func (o outputFormat) reportWriter(out io.Writer) io.Writer {
	if o == outputText {
		return out
	}
	return io.Discard
}

// render writes the final result v to out.
// Text results have already been reported while running.
func (o outputFormat) render(out io.Writer, v any) error {
	switch o {
	case outputJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return nil
	}
}
