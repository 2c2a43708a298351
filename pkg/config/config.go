// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"time"

	"github.com/telekom/icmpdiag/pkg/api"
	"github.com/telekom/icmpdiag/pkg/metrics"
)

// Metadata holds optional ownership and platform information for the instance.
// Exposed via the icmpdiag_instance_info Prometheus metric for alert routing.
type Metadata struct {
	// Team holds team ownership information
	Team TeamMetadata `yaml:"team" mapstructure:"team"`
	// Platform identifies the deployment platform (e.g. k8s-prod-eu, aws-eu-west-1)
	Platform string `yaml:"platform" mapstructure:"platform"`
}

// TeamMetadata holds team name and contact for ownership
type TeamMetadata struct {
	Name  string `yaml:"name" mapstructure:"name"`
	Email string `yaml:"email" mapstructure:"email"`
}

// Labels returns the metadata as instance info labels
func (m Metadata) Labels() map[string]string {
	return map[string]string{
		"team_name":  m.Team.Name,
		"team_email": m.Team.Email,
		"platform":   m.Platform,
	}
}

// Config is the startup configuration of the run mode
type Config struct {
	// Name is the DNS name of the instance
	Name string `yaml:"name" mapstructure:"name"`
	// Metadata is optional ownership and platform metadata (exposed as icmpdiag_instance_info)
	Metadata Metadata `yaml:"metadata" mapstructure:"metadata"`
	// Loader is the configuration for the checks loader
	Loader LoaderConfig `yaml:"loader" mapstructure:"loader"`
	// Api is the configuration for the api server
	Api api.Config `yaml:"api" mapstructure:"api"`
	// Telemetry is the configuration for the telemetry
	Telemetry metrics.Config `yaml:"telemetry" mapstructure:"telemetry"`
	// Probe configures the exchange of single probes shared by all checks
	Probe ProbeConfig `yaml:"probe" mapstructure:"probe"`
	// Log configures the logger
	Log LogConfig `yaml:"log" mapstructure:"log"`
}

// LoaderConfig is the configuration for loader
type LoaderConfig struct {
	Type     string           `yaml:"type" mapstructure:"type"`
	Interval time.Duration    `yaml:"interval" mapstructure:"interval"`
	File     FileLoaderConfig `yaml:"file" mapstructure:"file"`
}

// FileLoaderConfig is the configuration for the file loader
type FileLoaderConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// ProbeConfig configures the exchange of single probes
type ProbeConfig struct {
	// Timeout is the longest time to wait for the reply to a probe.
	// Zero means the transport's default of 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// LogConfig configures the logger
type LogConfig struct {
	// Format is either "json" or "text"
	Format string `yaml:"format" mapstructure:"format"`
	// Level is one of "debug", "info", "warn" or "error"
	Level string `yaml:"level" mapstructure:"level"`
}

// HasTelemetry returns true if the config has telemetry enabled
func (c *Config) HasTelemetry() bool {
	return c.Telemetry.Enabled
}
