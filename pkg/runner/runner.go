// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package runner

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/telekom/icmpdiag/internal/logger"
	"github.com/telekom/icmpdiag/internal/transport"
	"github.com/telekom/icmpdiag/pkg/api"
	"github.com/telekom/icmpdiag/pkg/checks/runtime"
	"github.com/telekom/icmpdiag/pkg/config"
	"github.com/telekom/icmpdiag/pkg/db"
	"github.com/telekom/icmpdiag/pkg/metrics"
)

const shutdownTimeout = time.Second * 90

// Runner runs the periodic ping and traceroute checks
// and serves their results.
type Runner struct {
	// config is the startup configuration
	config *config.Config
	// db stores the latest result of every check
	db db.DB
	// api serves the results and metrics
	api api.API
	// loader is used to load the runtime configuration
	loader config.Loader
	// metrics is used to collect metrics
	metrics metrics.Provider
	// controller is used to manage the checks
	controller *ChecksController
	// cRuntime is used to signal that the runtime configuration has changed
	cRuntime chan runtime.Config
	// cErr is used to handle non-recoverable errors of the runner components
	cErr chan error
	// cDone is used to signal that the runner was shut down
	cDone chan struct{}
	// shutOnce ensures that the shutdown is only done once
	shutOnce sync.Once
}

// New creates a new runner from the given startup configuration
func New(cfg *config.Config) *Runner {
	m := metrics.New(cfg.Telemetry)
	dbase := db.NewInMemory()
	ex := transport.NewSerialized(transport.New(cfg.Probe.Timeout))

	r := &Runner{
		config:     cfg,
		db:         dbase,
		api:        api.New(cfg.Api),
		metrics:    m,
		controller: NewChecksController(dbase, m, ex),
		cRuntime:   make(chan runtime.Config, 1),
		cErr:       make(chan error, 1),
		cDone:      make(chan struct{}, 1),
		shutOnce:   sync.Once{},
	}
	r.loader = config.NewLoader(cfg, r.cRuntime)

	return r
}

// Run starts all components and blocks until the runner is shut down,
// either by canceling the context or by a non-recoverable error.
func (r *Runner) Run(ctx context.Context) error {
	ctx, cancel := logger.NewContextWithLogger(ctx)
	log := logger.FromContext(ctx)
	defer cancel()

	if err := r.metrics.InitTracing(ctx); err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}

	if err := metrics.RegisterInstanceInfo(r.metrics.GetRegistry(), r.config.Name, r.config.Metadata.Labels()); err != nil {
		log.WarnContext(ctx, "Failed to register instance info metric", "error", err)
	}

	go func() {
		r.cErr <- r.loader.Run(ctx)
	}()

	go func() {
		r.cErr <- r.startupAPI(ctx)
	}()

	go func() {
		r.cErr <- r.controller.Run(ctx)
	}()

	for {
		select {
		case cfg := <-r.cRuntime:
			r.controller.Reconcile(ctx, cfg)
		case <-ctx.Done():
			r.shutdown(ctx)
		case err := <-r.cErr:
			if err != nil {
				log.ErrorContext(ctx, "Non-recoverable error in runner component", "error", err)
				r.shutdown(ctx)
			}
		case <-r.cDone:
			log.InfoContext(ctx, "Runner was shut down")
			return ErrFinalShutdown
		}
	}
}

// shutdown shuts down the runner and all managed components gracefully.
func (r *Runner) shutdown(ctx context.Context) {
	errC := ctx.Err()
	log := logger.FromContext(ctx)
	ctx, cancel := context.WithTimeout(logger.IntoContext(context.Background(), log), shutdownTimeout)
	defer cancel()

	r.shutOnce.Do(func() {
		log.InfoContext(ctx, "Shutting down runner")
		var sErrs ErrShutdown
		sErrs.errAPI = r.api.Shutdown(ctx)
		sErrs.errMetrics = r.metrics.Shutdown(ctx)
		r.loader.Shutdown(ctx)
		r.controller.Shutdown(ctx)

		if sErrs.HasError() {
			log.ErrorContext(ctx, "Failed to shutdown gracefully", "contextError", errC, "errors", sErrs)
		}

		r.cDone <- struct{}{}
	})
}
