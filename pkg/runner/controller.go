// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package runner

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/telekom/icmpdiag/internal/logger"
	"github.com/telekom/icmpdiag/internal/transport"
	"github.com/telekom/icmpdiag/pkg"
	"github.com/telekom/icmpdiag/pkg/checks"
	"github.com/telekom/icmpdiag/pkg/checks/runtime"
	"github.com/telekom/icmpdiag/pkg/db"
	"github.com/telekom/icmpdiag/pkg/factory"
	"github.com/telekom/icmpdiag/pkg/metrics"
)

// resultBuffer is the number of results checks can hand in
// before they block on the controller.
const resultBuffer = 8

// ChecksController manages the lifecycle of the checks
// and stores their results.
type ChecksController struct {
	db      db.DB
	metrics metrics.Provider
	// exchanger is shared by all checks
	exchanger transport.Exchanger
	checks    runtime.Checks
	cResult   chan checks.ResultDTO
	cErr      chan error
	done      chan struct{}
}

// NewChecksController creates a new ChecksController.
func NewChecksController(dbase db.DB, m metrics.Provider, ex transport.Exchanger) *ChecksController {
	return &ChecksController{
		db:        dbase,
		metrics:   m,
		exchanger: ex,
		checks:    runtime.Checks{},
		cResult:   make(chan checks.ResultDTO, resultBuffer),
		cErr:      make(chan error, 1),
		done:      make(chan struct{}, 1),
	}
}

// Run saves the results of the checks until the context is done
// or the controller is shut down.
func (cc *ChecksController) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)
	for {
		select {
		case result := <-cc.cResult:
			cc.db.Save(result)
		case err := <-cc.cErr:
			log.ErrorContext(ctx, "Check stopped with an error", "error", err)
		case <-ctx.Done():
			return ctx.Err()
		case <-cc.done:
			log.InfoContext(ctx, "Checks controller shut down")
			return nil
		}
	}
}

// Shutdown shuts down all checks and stops the controller.
func (cc *ChecksController) Shutdown(ctx context.Context) {
	log := logger.FromContext(ctx)
	for c := range cc.checks.Iter() {
		cc.UnregisterCheck(ctx, c)
	}

	select {
	case cc.done <- struct{}{}:
		log.DebugContext(ctx, "Stopping checks controller")
	default:
	}
}

// Reconcile brings the running checks in line with the configuration.
// Running checks get the new configuration, checks missing in it are
// unregistered and new ones are created and registered.
func (cc *ChecksController) Reconcile(ctx context.Context, cfg runtime.Config) {
	log := logger.FromContext(ctx)

	newChecks, err := factory.NewChecksFromConfig(cfg, cc.exchanger)
	if err != nil {
		log.ErrorContext(ctx, "Failed to create checks from config", "error", err)
		return
	}

	var unregList []checks.Check
	for c := range cc.checks.Iter() {
		conf := cfg.For(c.Name())
		if conf == nil {
			unregList = append(unregList, c)
			continue
		}

		if err := c.UpdateConfig(conf); err != nil {
			log.ErrorContext(ctx, "Failed to update config of check", "check", c.Name(), "error", err)
		}
		delete(newChecks, c.Name())
	}

	for _, c := range unregList {
		cc.UnregisterCheck(ctx, c)
	}

	for _, c := range newChecks {
		cc.RegisterCheck(ctx, c)
	}
}

// RegisterCheck registers the metrics of the check and starts it.
func (cc *ChecksController) RegisterCheck(ctx context.Context, check checks.Check) {
	log := logger.FromContext(ctx).With("check", check.Name())

	cc.checks.Add(check)
	for _, collector := range check.GetMetricCollectors() {
		if err := cc.metrics.GetRegistry().Register(collector); err != nil {
			log.ErrorContext(ctx, "Could not register metrics collector", "error", err)
		}
	}

	go func() {
		log.InfoContext(ctx, "Starting check")
		err := check.Run(ctx, cc.cResult)
		if err == nil || errors.Is(err, context.Canceled) {
			return
		}
		select {
		case cc.cErr <- &ErrRunningCheck{Check: check, Err: err}:
		case <-ctx.Done():
		}
	}()
}

// UnregisterCheck stops the check and removes its metrics and results.
func (cc *ChecksController) UnregisterCheck(ctx context.Context, check checks.Check) {
	log := logger.FromContext(ctx).With("check", check.Name())

	check.Shutdown()
	for _, collector := range check.GetMetricCollectors() {
		if !cc.metrics.GetRegistry().Unregister(collector) {
			log.WarnContext(ctx, "Could not unregister metrics collector")
		}
	}
	cc.db.Delete(check.Name())
	cc.checks.Delete(check)
	log.InfoContext(ctx, "Check unregistered")
}

// GenerateCheckSpecs returns an openapi document describing the
// result endpoint of every registered check.
func (cc *ChecksController) GenerateCheckSpecs(ctx context.Context) (openapi3.T, error) {
	log := logger.FromContext(ctx)
	version := pkg.Version
	if version == "" {
		version = "dev"
	}

	doc := openapi3.T{
		OpenAPI: "3.0.0",
		Info: &openapi3.Info{
			Title:       "icmpdiag",
			Description: "Results of the periodic ping and traceroute checks",
			Version:     version,
		},
		Paths: openapi3.NewPaths(),
	}

	for c := range cc.checks.Iter() {
		name := c.Name()
		ref, err := c.Schema()
		if err != nil {
			log.ErrorContext(ctx, "Failed to get schema for check", "check", name, "error", err)
			return openapi3.T{}, ErrCreateOpenapiSchema{name: name, err: err}
		}

		doc.Paths.Set(fmt.Sprintf("/v1/metrics/%s", name), &openapi3.PathItem{
			Description: name,
			Get: &openapi3.Operation{
				Description: fmt.Sprintf("Returns the latest result of the %s check", name),
				Tags:        []string{"Metrics", name},
				Responses: openapi3.NewResponses(
					openapi3.WithStatus(http.StatusOK, &openapi3.ResponseRef{
						Value: openapi3.NewResponse().
							WithDescription(fmt.Sprintf("Result of the %s check", name)).
							WithJSONSchemaRef(ref),
					}),
				),
			},
		})
	}

	return doc, nil
}
