// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

// Package db stores the latest result of every check.
package db

import (
	"sync"

	"github.com/telekom/icmpdiag/pkg/checks"
)

var _ DB = (*InMemory)(nil)

// DB stores check results by check name.
type DB interface {
	// Save stores the result of a check, replacing the previous one.
	Save(result checks.ResultDTO)
	// Get returns the result of a check.
	// The second return value is false if the check has no result yet.
	Get(check string) (checks.Result, bool)
	// Delete removes the result of a check.
	Delete(check string)
	// List returns the results of all checks.
	List() map[string]checks.Result
}

// InMemory keeps the results in memory.
type InMemory struct {
	mu      sync.RWMutex
	results map[string]*checks.Result
}

// NewInMemory creates an empty in-memory store.
func NewInMemory() *InMemory {
	return &InMemory{
		results: make(map[string]*checks.Result),
	}
}

func (i *InMemory) Save(result checks.ResultDTO) {
	if result.Result == nil {
		return
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	i.results[result.Name] = result.Result
}

func (i *InMemory) Get(check string) (checks.Result, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	res, ok := i.results[check]
	if !ok {
		return checks.Result{}, false
	}
	return *res, true
}

func (i *InMemory) Delete(check string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	delete(i.results, check)
}

func (i *InMemory) List() map[string]checks.Result {
	i.mu.RLock()
	defer i.mu.RUnlock()
	results := make(map[string]checks.Result, len(i.results))
	for name, res := range i.results {
		results[name] = *res
	}
	return results
}
