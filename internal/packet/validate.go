// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package packet

// Validation holds the per-field comparison of a reply with its request.
type Validation struct {
	SequenceMatch   bool `json:"sequenceMatch" yaml:"sequenceMatch"`
	IdentifierMatch bool `json:"identifierMatch" yaml:"identifierMatch"`
	PayloadMatch    bool `json:"payloadMatch" yaml:"payloadMatch"`
}

// Valid reports whether sequence, identifier and payload all match.
func (v Validation) Valid() bool {
	return v.SequenceMatch && v.IdentifierMatch && v.PayloadMatch
}

// Mismatches returns the names of the fields that did not match.
func (v Validation) Mismatches() []string {
	var fields []string
	if !v.SequenceMatch {
		fields = append(fields, "sequence")
	}
	if !v.IdentifierMatch {
		fields = append(fields, "identifier")
	}
	if !v.PayloadMatch {
		fields = append(fields, "payload")
	}
	return fields
}

// Validate compares a decoded reply with the request it answers.
func Validate(req *EchoRequest, rep Reply) Validation {
	return Validation{
		SequenceMatch:   req.Sequence == rep.Sequence,
		IdentifierMatch: req.Identifier == rep.Identifier,
		PayloadMatch:    req.Payload == rep.Payload,
	}
}
