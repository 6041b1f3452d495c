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

package wordpresssite

import (
	"github.com/prometheus/client_golang/prometheus"
	"sigs.k8s.io/controller-runtime/pkg/metrics"
)

const (
	resultSuccess    = "success"
	resultIncomplete = "incomplete"
	resultError      = "error"
)

var reconciliationsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "wordpress_site_reconciliations_total",
		Help: "Number of WordpressSite reconciliation passes, partitioned by result",
	},
	[]string{"result"},
)

func init() {
	metrics.Registry.MustRegister(reconciliationsTotal)
}

func recordReconciliation(result string) {
	reconciliationsTotal.WithLabelValues(result).Inc()
}
