// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/telekom/icmpdiag/internal/logger"
	"github.com/telekom/icmpdiag/pkg/config"
	"github.com/telekom/icmpdiag/pkg/runner"
)

// NewCmdRun creates a new run command
func NewCmdRun() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the periodic ping and traceroute checks",
		Long: "Runs the ping and traceroute checks of the checks file periodically\n" +
			"and serves their results, an openapi document and prometheus metrics via HTTP.",
		RunE: run,
	}

	fs := cmd.PersistentFlags()
	fs.String("name", "", "DNS name of this instance")
	fs.String("api.address", ":8080", "address the api server listens on")
	fs.String("loader.type", "file", "type of the checks loader, only file is supported")
	fs.Duration("loader.interval", time.Minute, "interval the checks file is reloaded in, 0 loads it once")
	fs.String("loader.file.path", "config.yaml", "path to the checks file")
	fs.Duration("probe.timeout", 0, "longest time to wait for the reply to a single probe")
	fs.String("log.format", "json", "log format, either json or text")
	fs.String("log.level", "info", "log level, one of debug, info, warn or error")
	fs.Bool("telemetry.enabled", false, "export traces")
	fs.String("telemetry.exporter", "", "trace exporter, one of http, grpc, stdout or noop")
	fs.String("telemetry.url", "", "url of the trace collector")

	fs.VisitAll(func(f *pflag.Flag) {
		cobra.CheckErr(viper.BindPFlag(f.Name, f))
	})

	return cmd
}

// run is the entry point to start the runner
func run(cmd *cobra.Command, _ []string) error {
	cfg := &config.Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	log := logger.NewLogger(logger.NewHandler(os.Stderr, cfg.Log.Format, cfg.Log.Level))
	ctx, cancel := signalContext(logger.IntoContext(cmd.Context(), log))
	defer cancel()

	if err := cfg.Validate(ctx); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	r := runner.New(cfg)
	log.InfoContext(ctx, "Running icmpdiag", "name", cfg.Name)
	if err := r.Run(ctx); err != nil && !errors.Is(err, runner.ErrFinalShutdown) {
		return fmt.Errorf("error while running icmpdiag: %w", err)
	}
	return nil
}
