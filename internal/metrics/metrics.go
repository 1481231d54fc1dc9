/*
Copyright 2024 The SUNET Authors.

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

// Package metrics declares the Prometheus instrumentation emitted by the
// operator's reconcilers, remote client, and garbage collectors. The
// reconcile and garbage-collection vectors are pre-initialised with every
// label combination at init time, so those series are scrapable with a
// zero value before the first event occurs. The OpenStack API vectors
// (calls, duration, retries), ManagedResources and OperatorInfo are not
// pre-initialised: a series appears on its first use.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	ctrlmetrics "sigs.k8s.io/controller-runtime/pkg/metrics"
)

var (
	resources  = []string{"Project", "Domain", "Flavor", "Image", "ProviderNetwork"}
	operations = []string{"create", "update", "delete"}
	statuses   = []string{"success", "error"}

	// ReconcileTotal counts reconciliations by resource kind, operation and
	// outcome.
	ReconcileTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reconcile_total",
		Help: "Total number of reconciliations.",
	}, []string{"resource", "operation", "status"})

	// ReconcileDuration observes wall-clock time spent per reconcile.
	ReconcileDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "reconcile_duration_seconds",
		Help:    "Time spent in reconciliation.",
		Buckets: []float64{0.1, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0, 60.0, 120.0},
	}, []string{"resource", "operation"})

	// ReconcileInProgress tracks concurrently running reconciles per kind.
	ReconcileInProgress = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "reconcile_in_progress",
		Help: "Number of reconciliations currently in progress.",
	}, []string{"resource"})

	// OpenStackAPICalls counts every remote call made through the rate
	// limited client wrapper.
	OpenStackAPICalls = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "openstack_api_calls_total",
		Help: "Total number of OpenStack API calls.",
	}, []string{"service", "operation", "status"})

	// OpenStackAPIDuration observes remote call latency.
	OpenStackAPIDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "openstack_api_duration_seconds",
		Help:    "Time spent in OpenStack API calls.",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
	}, []string{"service", "operation"})

	// OpenStackAPIRetries counts retried calls by service and operation.
	OpenStackAPIRetries = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "openstack_api_retries_total",
		Help: "Total number of OpenStack API call retries.",
	}, []string{"service", "operation"})

	// RateLimitWaitSeconds observes time spent waiting on the rate gate
	// before a call is allowed to proceed.
	RateLimitWaitSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "rate_limit_wait_seconds",
		Help:    "Time spent waiting for a rate limit slot.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
	})

	// ManagedResources reports registry size by kind and phase.
	ManagedResources = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "managed_resources",
		Help: "Number of managed resources by type and phase.",
	}, []string{"resource", "phase"})

	// ClusterGCRuns counts cluster-scoped GC sweeps by outcome.
	ClusterGCRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cluster_gc_runs_total",
		Help: "Total number of cluster-scoped garbage collection runs.",
	}, []string{"status"})

	// ClusterGCDeletedResources counts orphans removed by the cluster GC
	// daemon, labelled by kind.
	ClusterGCDeletedResources = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cluster_gc_deleted_resources_total",
		Help: "Total number of cluster-scoped resources deleted by garbage collection.",
	}, []string{"resource_type"})

	// ClusterGCDuration observes cluster GC sweep duration.
	ClusterGCDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cluster_gc_duration_seconds",
		Help:    "Time spent in cluster-scoped garbage collection.",
		Buckets: []float64{1.0, 5.0, 10.0, 30.0, 60.0, 120.0, 300.0},
	})

	// ProjectGCRuns counts namespace-scoped GC sweeps by outcome.
	ProjectGCRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "project_gc_runs_total",
		Help: "Total number of project garbage collection runs.",
	}, []string{"status"})

	// ProjectGCDeletedResources counts orphans removed by the project GC
	// daemon, labelled by kind.
	ProjectGCDeletedResources = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "project_gc_deleted_resources_total",
		Help: "Total number of project resources deleted by garbage collection.",
	}, []string{"resource_type"})

	// ProjectGCDuration observes project GC sweep duration.
	ProjectGCDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "project_gc_duration_seconds",
		Help:    "Time spent in project garbage collection.",
		Buckets: []float64{1.0, 5.0, 10.0, 30.0, 60.0, 120.0, 300.0},
	})

	// OperatorInfo exposes the running build as a constant-1 info metric.
	OperatorInfo = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "openstack_operator_info",
		Help: "Static information about the running operator build.",
	}, []string{"version", "cloud"})
)

func init() {
	ctrlmetrics.Registry.MustRegister(
		ReconcileTotal,
		ReconcileDuration,
		ReconcileInProgress,
		OpenStackAPICalls,
		OpenStackAPIDuration,
		OpenStackAPIRetries,
		RateLimitWaitSeconds,
		ManagedResources,
		ClusterGCRuns,
		ClusterGCDeletedResources,
		ClusterGCDuration,
		ProjectGCRuns,
		ProjectGCDeletedResources,
		ProjectGCDuration,
		OperatorInfo,
	)

	for _, r := range resources {
		ReconcileInProgress.WithLabelValues(r).Set(0)
		for _, op := range operations {
			ReconcileDuration.WithLabelValues(r, op)
			for _, s := range statuses {
				ReconcileTotal.WithLabelValues(r, op, s)
			}
		}
	}

	for _, s := range statuses {
		ClusterGCRuns.WithLabelValues(s)
		ProjectGCRuns.WithLabelValues(s)
	}

	for _, rt := range []string{"domain", "flavor", "image", "provider_network"} {
		ClusterGCDeletedResources.WithLabelValues(rt)
	}
	for _, rt := range []string{"project", "group", "network", "security_group", "mapping"} {
		ProjectGCDeletedResources.WithLabelValues(rt)
	}
}

// SetOperatorInfo records the running build version and target cloud.
func SetOperatorInfo(version, cloud string) {
	OperatorInfo.Reset()
	OperatorInfo.WithLabelValues(version, cloud).Set(1)
}
