// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/telekom/icmpdiag/internal/logger"
	"github.com/telekom/icmpdiag/internal/traceroute"
	"github.com/telekom/icmpdiag/internal/transport"
	"github.com/telekom/icmpdiag/pkg/checks"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	_ checks.Check   = (*Traceroute)(nil)
	_ checks.Runtime = (*Config)(nil)
)

const CheckName = "traceroute"

// NewCheck creates a new instance of the traceroute check sending its probes through ex
func NewCheck(ex transport.Exchanger) checks.Check {
	c := &Traceroute{
		CheckBase: checks.CheckBase{
			Mu:       sync.Mutex{},
			DoneChan: make(chan struct{}, 1),
		},
		config: Config{
			Options: traceroute.Options{Retry: checks.DefaultRetry},
		},
		client:  traceroute.NewClient(ex, nil),
		metrics: newMetrics(),
	}
	c.tracer = otel.Tracer(c.Name())
	return c
}

type Traceroute struct {
	checks.CheckBase
	config  Config
	metrics metrics
	client  traceroute.Client
	tracer  trace.Tracer
}

// targetResult is the sweep to one target.
type targetResult struct {
	traceroute.Result `yaml:",inline"`
	// Error is set if the sweep could not be completed.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

type result map[string]targetResult

// Run runs the check in a loop sending results to the provided channel
func (tr *Traceroute) Run(ctx context.Context, cResult chan checks.ResultDTO) error {
	ctx, cancel := logger.NewContextWithLogger(ctx)
	defer cancel()
	log := logger.FromContext(ctx)

	interval := tr.GetConfig().(*Config).Interval

	log.InfoContext(ctx, "Starting traceroute check", "interval", interval.String())
	for {
		select {
		case <-ctx.Done():
			log.ErrorContext(ctx, "Context canceled", "error", ctx.Err())
			return ctx.Err()
		case <-tr.DoneChan:
			return nil
		case <-time.After(interval):
			res := tr.check(ctx)
			cResult <- checks.ResultDTO{
				Name: tr.Name(),
				Result: &checks.Result{
					Data:      res,
					Timestamp: time.Now(),
				},
			}
			log.DebugContext(ctx, "Successfully finished traceroute check run")
			interval = tr.GetConfig().(*Config).Interval
		}
	}
}

// GetConfig returns a copy of the current configuration of the check
func (tr *Traceroute) GetConfig() checks.Runtime {
	tr.Mu.Lock()
	defer tr.Mu.Unlock()
	configCopy := tr.config
	return &configCopy
}

func (tr *Traceroute) check(ctx context.Context) result {
	log := logger.FromContext(ctx)
	ctx, span := tr.tracer.Start(ctx, "traceroute.check")
	defer span.End()

	cfg := tr.GetConfig().(*Config)
	if len(cfg.Targets) == 0 {
		log.WarnContext(ctx, "No targets configured for traceroute check")
		return result{}
	}

	res := make(result, len(cfg.Targets))
	for _, target := range cfg.Targets {
		r, err := tr.client.Run(ctx, target, &cfg.Options)
		if err != nil {
			log.ErrorContext(ctx, "Failed to run traceroute", "target", target, "error", err)
			span.SetStatus(codes.Error, "Failed to run traceroute")
			span.RecordError(err)
			res[target] = targetResult{Result: r, Error: err.Error()}
			continue
		}

		tr.metrics.Set(target, r)
		res[target] = targetResult{Result: r}
	}
	return res
}

// Shutdown is called once when the check is unregistered or the runner shuts down
func (tr *Traceroute) Shutdown() {
	tr.DoneChan <- struct{}{}
	close(tr.DoneChan)
}

// UpdateConfig is called once when the check is registered
// This is also called while the check is running, if the checks file is reloaded
// This should return an error if the config is invalid
func (tr *Traceroute) UpdateConfig(cfg checks.Runtime) error {
	if c, ok := cfg.(*Config); ok {
		tr.Mu.Lock()
		defer tr.Mu.Unlock()

		for _, target := range tr.config.Targets {
			if !slices.Contains(c.Targets, target) {
				err := tr.metrics.Remove(target)
				var nfErr checks.ErrMetricNotFound
				if err != nil && !errors.As(err, &nfErr) {
					return err
				}
			}
		}

		tr.config = *c
		return nil
	}

	return checks.ErrConfigMismatch{
		Expected: CheckName,
		Current:  cfg.For(),
	}
}

// Schema returns an openapi3.SchemaRef of the result type returned by the check
func (tr *Traceroute) Schema() (*openapi3.SchemaRef, error) {
	return checks.OpenapiFromPerfData(result{})
}

// GetMetricCollectors allows the check to provide prometheus metric collectors
func (tr *Traceroute) GetMetricCollectors() []prometheus.Collector {
	return tr.metrics.GetCollectors()
}

// Name returns the name of the check
func (tr *Traceroute) Name() string {
	return CheckName
}

// RemoveLabelledMetrics removes the metrics which have the passed
// target as a label
func (tr *Traceroute) RemoveLabelledMetrics(target string) error {
	return tr.metrics.Remove(target)
}
