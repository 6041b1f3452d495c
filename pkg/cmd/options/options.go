/*
Copyright 2022 Bitworks Media.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package options

import "github.com/spf13/pflag"

var (
	// WordpressImage is the image used for the WordPress (apache) container.
	// Themes and plugins shipped with the image are treated as stock and are
	// never uninstalled.
	WordpressImage = "ghcr.io/bitworks/wordpress:5.9-apache"

	// ApacheExporterImage is the image used for the apache metrics exporter
	// sidecar.
	ApacheExporterImage = "docker.io/bitnami/apache-exporter:0.11.0"

	// LeaderElection enables manager leader election. Only the leader runs
	// the convergence loops, mirroring a single active unit.
	LeaderElection = true

	// LeaderElectionID is the name of the leader election lease.
	LeaderElectionID = "wordpress-site-operator.bitworks.dev"

	// MetricsBindAddress is the address the operator metrics endpoint binds to.
	MetricsBindAddress = ":8080"
)

// AddToFlagSet set command line arguments
func AddToFlagSet(flag *pflag.FlagSet) {
	flag.StringVar(&WordpressImage, "wordpress-image", WordpressImage, "The default image used for WordPress sites.")
	flag.StringVar(&ApacheExporterImage, "apache-exporter-image", ApacheExporterImage, "The image used for the apache metrics exporter sidecar.")
	flag.BoolVar(&LeaderElection, "leader-election", LeaderElection, "Enable leader election for the controller manager.")
	flag.StringVar(&LeaderElectionID, "leader-election-id", LeaderElectionID, "Name of the leader election lease.")
	flag.StringVar(&MetricsBindAddress, "metrics-addr", MetricsBindAddress, "The address the metric endpoint binds to.")
}
