// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/telekom/icmpdiag/pkg/checks"
)

func TestInMemory_Save(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name  string
		saves []checks.ResultDTO
		want  map[string]checks.Result
	}{
		{
			name:  "nothing saved",
			saves: nil,
			want:  map[string]checks.Result{},
		},
		{
			name: "later result replaces earlier",
			saves: []checks.ResultDTO{
				{Name: "ping", Result: &checks.Result{Data: "first", Timestamp: now}},
				{Name: "traceroute", Result: &checks.Result{Data: "hops", Timestamp: now}},
				{Name: "ping", Result: &checks.Result{Data: "second", Timestamp: now}},
			},
			want: map[string]checks.Result{
				"ping":       {Data: "second", Timestamp: now},
				"traceroute": {Data: "hops", Timestamp: now},
			},
		},
		{
			name:  "nil result is ignored",
			saves: []checks.ResultDTO{{Name: "ping"}},
			want:  map[string]checks.Result{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewInMemory()
			for _, s := range tt.saves {
				store.Save(s)
			}

			if diff := cmp.Diff(tt.want, store.List()); diff != "" {
				t.Errorf("List() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestInMemory_GetDelete(t *testing.T) {
	store := NewInMemory()
	if _, ok := store.Get("ping"); ok {
		t.Fatal("Get() on empty store returned a result")
	}

	store.Save(checks.ResultDTO{Name: "ping", Result: &checks.Result{Data: 1}})
	res, ok := store.Get("ping")
	if !ok || res.Data != 1 {
		t.Fatalf("Get() = %v, %v", res, ok)
	}

	store.Delete("ping")
	if _, ok := store.Get("ping"); ok {
		t.Error("Get() after Delete() returned a result")
	}
}

func TestInMemory_concurrent(t *testing.T) {
	store := NewInMemory()
	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Save(checks.ResultDTO{Name: fmt.Sprintf("check-%d", i), Result: &checks.Result{Data: i}})
			_ = store.List()
		}()
	}
	wg.Wait()

	if got := len(store.List()); got != 10 {
		t.Errorf("len(List()) = %d, want 10", got)
	}
}
