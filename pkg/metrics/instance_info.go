// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/telekom/icmpdiag/pkg"
)

const (
	instanceInfoMetricName = "icmpdiag_instance_info"
	instanceInfoHelp       = "Ownership and platform metadata for this icmpdiag instance. Emitted once per instance for alert routing."
)

// instanceInfoLabels are the metadata keys exposed as labels, besides instance_name and version.
var instanceInfoLabels = []string{"team_name", "team_email", "platform"}

// RegisterInstanceInfo registers the icmpdiag_instance_info info-style metric on the given registry.
// It sets the gauge to 1 with the instance name, the build version and the metadata labels
// team_name, team_email and platform. Missing metadata is exposed as an empty label.
func RegisterInstanceInfo(registry *prometheus.Registry, instanceName string, metadata map[string]string) error {
	info := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: instanceInfoMetricName,
			Help: instanceInfoHelp,
		},
		append([]string{"instance_name", "version"}, instanceInfoLabels...),
	)

	values := []string{instanceName, pkg.Version}
	for _, l := range instanceInfoLabels {
		values = append(values, metadata[l])
	}
	info.WithLabelValues(values...).Set(1)
	return registry.Register(info)
}
