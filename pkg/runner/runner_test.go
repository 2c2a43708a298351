// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package runner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/telekom/icmpdiag/pkg/api"
	"github.com/telekom/icmpdiag/pkg/config"
	"github.com/telekom/icmpdiag/pkg/metrics"
)

func blockUntilDone(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

// newMockedRunner returns a runner whose components block until the context is done.
func newMockedRunner(t *testing.T) (*Runner, *api.APIMock, *config.LoaderMock, *metrics.ProviderMock) {
	t.Helper()
	cfg := &config.Config{Name: "icmpdiag.local"}
	r := New(cfg)

	registry := prometheus.NewRegistry()
	apiMock := &api.APIMock{
		RegisterRoutesFunc: func(context.Context, ...api.Route) error { return nil },
		RunFunc:            blockUntilDone,
		ShutdownFunc:       func(context.Context) error { return nil },
	}
	loaderMock := &config.LoaderMock{
		RunFunc:      blockUntilDone,
		ShutdownFunc: func(context.Context) {},
	}
	metricsMock := &metrics.ProviderMock{
		GetRegistryFunc: func() *prometheus.Registry { return registry },
		InitTracingFunc: func(context.Context) error { return nil },
		ShutdownFunc:    func(context.Context) error { return nil },
	}
	r.api = apiMock
	r.loader = loaderMock
	r.metrics = metricsMock
	r.controller.metrics = metricsMock
	return r, apiMock, loaderMock, metricsMock
}

// TestRunner_Run_FullComponentStart tests that the Run method starts the API
// and the loader with the real implementations.
func TestRunner_Run_FullComponentStart(t *testing.T) {
	c := &config.Config{
		Name: "icmpdiag.local",
		Api:  api.Config{ListeningAddress: ":9090"},
		Loader: config.LoaderConfig{
			Type:     "file",
			File:     config.FileLoaderConfig{Path: "../config/test/data/config.yaml"},
			Interval: time.Second * 1,
		},
	}

	r := New(c)
	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()
	go func() { _ = r.Run(ctx) }()

	t.Log("Running for 100ms")
	<-time.After(100 * time.Millisecond)
}

// TestRunner_Run_ContextCancel tests that after a context cancels the Run method
// will return an error and all started components will be shut down.
func TestRunner_Run_ContextCancel(t *testing.T) {
	r, apiMock, loaderMock, metricsMock := newMockedRunner(t)
	ctx, cancel := context.WithCancel(t.Context())

	cErr := make(chan error, 1)
	go func() { cErr <- r.Run(ctx) }()

	require.Eventually(t, func() bool {
		return len(apiMock.RunCalls()) == 1 && len(loaderMock.RunCalls()) == 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-cErr:
		assert.ErrorIs(t, err, ErrFinalShutdown)
	case <-time.After(time.Second):
		t.Fatal("runner did not shut down")
	}

	assert.Len(t, apiMock.ShutdownCalls(), 1)
	assert.Len(t, loaderMock.ShutdownCalls(), 1)
	assert.Len(t, metricsMock.ShutdownCalls(), 1)
	assert.Len(t, apiMock.RegisterRoutesCalls(), 1)
	assert.Len(t, apiMock.RegisterRoutesCalls()[0].Routes, 3)
}

func TestRunner_Run_ComponentError(t *testing.T) {
	r, apiMock, _, _ := newMockedRunner(t)
	errAPI := errors.New("address already in use")
	apiMock.RunFunc = func(context.Context) error { return errAPI }

	cErr := make(chan error, 1)
	go func() { cErr <- r.Run(t.Context()) }()

	select {
	case err := <-cErr:
		assert.ErrorIs(t, err, ErrFinalShutdown)
	case <-time.After(time.Second):
		t.Fatal("runner did not shut down after component error")
	}
	assert.Len(t, apiMock.ShutdownCalls(), 1)
}

func TestRunner_Run_TracingError(t *testing.T) {
	r, apiMock, _, metricsMock := newMockedRunner(t)
	errTracing := errors.New("invalid exporter")
	metricsMock.InitTracingFunc = func(context.Context) error { return errTracing }

	err := r.Run(t.Context())
	assert.ErrorIs(t, err, errTracing)
	assert.Empty(t, apiMock.RunCalls())
}

func TestRunner_Run_RegistersInstanceInfo(t *testing.T) {
	r, _, _, metricsMock := newMockedRunner(t)
	ctx, cancel := context.WithCancel(t.Context())

	cErr := make(chan error, 1)
	go func() { cErr <- r.Run(ctx) }()

	require.Eventually(t, func() bool {
		mfs, err := metricsMock.GetRegistry().Gather()
		if err != nil {
			return false
		}
		for _, mf := range mfs {
			if mf.GetName() == "icmpdiag_instance_info" {
				return true
			}
		}
		return false
	}, time.Second, 5*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-cErr, ErrFinalShutdown)
}

func TestErrShutdown_HasError(t *testing.T) {
	assert.False(t, ErrShutdown{}.HasError())
	assert.True(t, ErrShutdown{errAPI: errors.New("api")}.HasError())
	assert.True(t, ErrShutdown{errMetrics: errors.New("metrics")}.HasError())
}
