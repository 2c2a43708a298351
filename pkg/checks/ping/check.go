// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package ping

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/telekom/icmpdiag/internal/logger"
	"github.com/telekom/icmpdiag/internal/ping"
	"github.com/telekom/icmpdiag/internal/transport"
	"github.com/telekom/icmpdiag/pkg/checks"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	_ checks.Check   = (*Ping)(nil)
	_ checks.Runtime = (*Config)(nil)
)

const CheckName = "ping"

// Ping is a check that periodically pings its targets
type Ping struct {
	checks.CheckBase
	config  Config
	metrics metrics
	client  ping.Client
	tracer  trace.Tracer
}

// NewCheck creates a new instance of the ping check sending its probes through ex
func NewCheck(ex transport.Exchanger) checks.Check {
	c := &Ping{
		CheckBase: checks.CheckBase{
			Mu:       sync.Mutex{},
			DoneChan: make(chan struct{}, 1),
		},
		config: Config{
			Options: ping.Options{Retry: checks.DefaultRetry},
		},
		metrics: newMetrics(),
		client:  ping.NewClient(ex, nil),
	}
	c.tracer = otel.Tracer(c.Name())
	return c
}

// targetResult is the outcome of pinging one target.
type targetResult struct {
	ping.Result `yaml:",inline"`
	// Error is set if the target could not be pinged.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

type result map[string]targetResult

// Run runs the check in a loop sending results to the provided channel
func (p *Ping) Run(ctx context.Context, cResult chan checks.ResultDTO) error {
	ctx, cancel := logger.NewContextWithLogger(ctx)
	defer cancel()
	log := logger.FromContext(ctx)

	interval := p.GetConfig().(*Config).Interval

	log.InfoContext(ctx, "Starting ping check", "interval", interval.String())
	for {
		select {
		case <-ctx.Done():
			log.ErrorContext(ctx, "Context canceled", "error", ctx.Err())
			return ctx.Err()
		case <-p.DoneChan:
			log.DebugContext(ctx, "Soft shut down")
			return nil
		case <-time.After(interval):
			res := p.check(ctx)
			cResult <- checks.ResultDTO{
				Name: p.Name(),
				Result: &checks.Result{
					Data:      res,
					Timestamp: time.Now(),
				},
			}
			log.DebugContext(ctx, "Successfully finished ping check run")

			// Re-read interval in case config was updated
			interval = p.GetConfig().(*Config).Interval
		}
	}
}

// check pings all targets one after another
func (p *Ping) check(ctx context.Context) result {
	log := logger.FromContext(ctx)
	ctx, span := p.tracer.Start(ctx, "ping.check")
	defer span.End()

	cfg := p.GetConfig().(*Config)
	if len(cfg.Targets) == 0 {
		log.DebugContext(ctx, "No targets defined")
		return result{}
	}
	span.SetAttributes(attribute.StringSlice("ping.targets", cfg.Targets))

	res := make(result, len(cfg.Targets))
	for _, target := range cfg.Targets {
		l := log.With("target", target)
		r, err := p.client.Run(ctx, target, &cfg.Options)
		if err != nil {
			l.WarnContext(ctx, "Failed to ping target", "error", err)
			span.SetStatus(codes.Error, "Failed to ping target")
			span.RecordError(err)
			res[target] = targetResult{Result: r, Error: err.Error()}
			continue
		}

		p.metrics.Set(target, r)
		res[target] = targetResult{Result: r}
		l.DebugContext(ctx, "Pinged target", "loss", r.Summary.PacketLoss, "avgRtt", r.Summary.AvgRTT)
	}
	return res
}

// Shutdown is called once when the check is unregistered or the runner shuts down
func (p *Ping) Shutdown() {
	p.DoneChan <- struct{}{}
	close(p.DoneChan)
}

// UpdateConfig sets the configuration of the check and removes
// the metrics of targets that are no longer configured
func (p *Ping) UpdateConfig(cfg checks.Runtime) error {
	if c, ok := cfg.(*Config); ok {
		p.Mu.Lock()
		defer p.Mu.Unlock()

		for _, target := range p.config.Targets {
			if !slices.Contains(c.Targets, target) {
				err := p.metrics.Remove(target)
				var nfErr checks.ErrMetricNotFound
				if err != nil && !errors.As(err, &nfErr) {
					return err
				}
			}
		}

		p.config = *c
		return nil
	}

	return checks.ErrConfigMismatch{
		Expected: CheckName,
		Current:  cfg.For(),
	}
}

// GetConfig returns a copy of the current configuration of the check
func (p *Ping) GetConfig() checks.Runtime {
	p.Mu.Lock()
	defer p.Mu.Unlock()
	configCopy := p.config
	return &configCopy
}

// Name returns the name of the check
func (p *Ping) Name() string {
	return CheckName
}

// Schema returns an openapi3.SchemaRef of the result type returned by the check
func (p *Ping) Schema() (*openapi3.SchemaRef, error) {
	return checks.OpenapiFromPerfData(result{})
}

// GetMetricCollectors returns all metric collectors of the check
func (p *Ping) GetMetricCollectors() []prometheus.Collector {
	return p.metrics.GetCollectors()
}

// RemoveLabelledMetrics removes the metrics which have the passed
// target as a label
func (p *Ping) RemoveLabelledMetrics(target string) error {
	return p.metrics.Remove(target)
}
