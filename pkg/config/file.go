// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"time"

	"github.com/telekom/icmpdiag/internal/logger"
	"github.com/telekom/icmpdiag/pkg/checks/runtime"
	"gopkg.in/yaml.v3"
)

var _ Loader = (*FileLoader)(nil)

// FileLoader reads the checks file and publishes its content
// whenever it changed.
type FileLoader struct {
	config   LoaderConfig
	cRuntime chan<- runtime.Config
	done     chan struct{}
	fsys     fs.FS
	// last is the most recently published configuration
	last *runtime.Config
}

func NewFileLoader(cfg *Config, cRuntime chan<- runtime.Config) *FileLoader {
	return &FileLoader{
		config:   cfg.Loader,
		cRuntime: cRuntime,
		done:     make(chan struct{}, 1),
		fsys:     os.DirFS(filepath.Dir(cfg.Loader.File.Path)),
	}
}

// Run reads the checks file once on startup and publishes it, even if reading failed.
// Afterwards the file is re-read every loader interval and only valid changes are published.
// If the interval is 0, the file is only read once and the loader is disabled.
func (f *FileLoader) Run(ctx context.Context) error {
	ctx, cancel := logger.NewContextWithLogger(ctx)
	defer cancel()
	log := logger.FromContext(ctx)

	cfg, err := f.getRuntimeConfig(ctx)
	if err != nil {
		log.WarnContext(ctx, "Could not get checks configuration", "error", err)
		err = fmt.Errorf("could not get checks configuration: %w", err)
	}
	f.publish(cfg)

	if f.config.Interval == 0 {
		log.InfoContext(ctx, "File Loader disabled")
		return err
	}

	tick := time.NewTicker(f.config.Interval)
	defer tick.Stop()

	for {
		select {
		case <-f.done:
			log.InfoContext(ctx, "File Loader terminated")
			return nil
		case <-ctx.Done():
			return ctx.Err()
		case <-tick.C:
			runtimeCfg, err := f.getRuntimeConfig(ctx)
			if err != nil {
				log.WarnContext(ctx, "Could not get checks configuration", "error", err)
				continue
			}

			if f.last != nil && reflect.DeepEqual(*f.last, runtimeCfg) {
				log.DebugContext(ctx, "Checks configuration unchanged")
				continue
			}
			log.InfoContext(ctx, "Successfully reloaded checks configuration")
			f.publish(runtimeCfg)
		}
	}
}

func (f *FileLoader) publish(cfg runtime.Config) {
	f.last = &cfg
	f.cRuntime <- cfg
}

// getRuntimeConfig reads and validates the checks file.
func (f *FileLoader) getRuntimeConfig(ctx context.Context) (cfg runtime.Config, err error) {
	log := logger.FromContext(ctx).With("path", f.config.File.Path)

	file, err := f.fsys.Open(filepath.Base(f.config.File.Path))
	if err != nil {
		log.ErrorContext(ctx, "Failed to open checks file", "error", err)
		return cfg, fmt.Errorf("failed to open checks file: %w", err)
	}
	defer func() {
		cerr := file.Close()
		if cerr != nil {
			log.ErrorContext(ctx, "Failed to close checks file", "error", cerr)
		}
		err = errors.Join(cerr, err)
	}()

	b, err := io.ReadAll(file)
	if err != nil {
		log.ErrorContext(ctx, "Failed to read checks file", "error", err)
		return cfg, fmt.Errorf("failed to read checks file: %w", err)
	}

	if err := yaml.Unmarshal(b, &cfg); err != nil {
		log.ErrorContext(ctx, "Failed to parse checks file", "error", err)
		return cfg, fmt.Errorf("failed to parse checks file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		log.ErrorContext(ctx, "Checks file is invalid", "error", err)
		return runtime.Config{}, fmt.Errorf("invalid checks file: %w", err)
	}

	return cfg, nil
}

func (f *FileLoader) Shutdown(ctx context.Context) {
	log := logger.FromContext(ctx)
	select {
	case f.done <- struct{}{}:
		log.DebugContext(ctx, "Sending signal to shut down file loader")
	default:
	}
}
