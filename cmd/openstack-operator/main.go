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

// Package main starts the SUNET OpenStack operator: controllers for
// Project, Domain, Flavor, Image and ProviderNetwork custom resources,
// plus the two garbage collectors that reclaim remote resources whose
// CRs are gone.
package main

import (
	"fmt"
	"time"

	"github.com/alecthomas/kong"
	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/runtime"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	"k8s.io/client-go/tools/leaderelection/resourcelock"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/cache"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/healthz"
	metricsserver "sigs.k8s.io/controller-runtime/pkg/metrics/server"

	"github.com/crossplane/crossplane-runtime/pkg/controller"
	"github.com/crossplane/crossplane-runtime/pkg/errors"
	"github.com/crossplane/crossplane-runtime/pkg/feature"
	"github.com/crossplane/crossplane-runtime/pkg/logging"
	"github.com/crossplane/crossplane-runtime/pkg/ratelimiter"

	v1alpha1 "github.com/sunet/openstack-operator/apis/openstack/v1alpha1"
	osclient "github.com/sunet/openstack-operator/internal/clients/openstack"
	"github.com/sunet/openstack-operator/internal/controller/openstack"
	"github.com/sunet/openstack-operator/internal/metrics"
	"github.com/sunet/openstack-operator/internal/state"
)

// version is set at build time via -ldflags.
var version = "unknown"

type cli struct {
	Debug bool `help:"Print verbose logging statements." short:"d"`

	Cloud            string `default:"openstack" env:"OS_CLOUD"              help:"Name of the clouds.yaml entry to authenticate against."`
	CloudsConfigFile string `env:"OS_CLIENT_CONFIG_FILE"                     help:"Path to the clouds.yaml credentials file."`
	WatchNamespace   string `env:"WATCH_NAMESPACE"                           help:"Restrict reconciliation to one namespace. Empty watches the whole cluster."`
	MetricsPort      int    `default:"9090"      env:"METRICS_PORT"          help:"Port the Prometheus metrics endpoint listens on."`

	RegistryNamespace string `default:"openstack-operator" help:"Namespace holding the managed-resources registry ConfigMap."`

	GCIntervalSeconds        int    `default:"600"       env:"GC_INTERVAL_SECONDS"         help:"Seconds between project garbage collection sweeps."`
	ClusterGCIntervalSeconds int    `default:"600"       env:"CLUSTER_GC_INTERVAL_SECONDS" help:"Seconds between cluster garbage collection sweeps."`
	ManagedDomain            string `default:"sso-users" env:"MANAGED_DOMAIN"              help:"Domain scanned for legacy tagged projects."`

	MaxConcurrentCalls int     `default:"10" env:"OPENSTACK_MAX_CONCURRENT_CALLS" help:"Maximum concurrent OpenStack API calls."`
	RequestsPerSecond  float64 `default:"20" env:"OPENSTACK_REQUESTS_PER_SECOND"  help:"Maximum average OpenStack API call rate."`

	LeaderElect      bool `default:"true" help:"Use leader election for the controller manager."`
	MaxReconcileRate int  `default:"10"   help:"The global maximum rate per second at which resources may be reconciled."`
}

func main() {
	c := cli{}
	ctx := kong.Parse(&c,
		kong.Name("openstack-operator"),
		kong.Description("Reconciles OpenStack tenants from Kubernetes custom resources."),
		kong.UsageOnError(),
	)
	ctx.FatalIfErrorf(c.Run())
}

// Run starts the controller manager and blocks until shutdown.
func (c *cli) Run() error {
	zl, err := newLogger(c.Debug)
	if err != nil {
		return errors.Wrap(err, "cannot build logger")
	}
	ctrl.SetLogger(zl)
	log := logging.NewLogrLogger(zl.WithName("openstack-operator"))

	log.Info("starting", "version", version, "cloud", c.Cloud)
	metrics.SetOperatorInfo(version, c.Cloud)

	cfg, err := ctrl.GetConfig()
	if err != nil {
		return errors.Wrap(err, "cannot get kubeconfig")
	}

	scheme := runtime.NewScheme()
	if err := clientgoscheme.AddToScheme(scheme); err != nil {
		return errors.Wrap(err, "cannot add client-go types to scheme")
	}
	if err := v1alpha1.AddToScheme(scheme); err != nil {
		return errors.Wrap(err, "cannot add openstack types to scheme")
	}

	cacheOpts := cache.Options{}
	if c.WatchNamespace != "" {
		cacheOpts.DefaultNamespaces = map[string]cache.Config{c.WatchNamespace: {}}
	}

	mgr, err := ctrl.NewManager(cfg, ctrl.Options{
		Scheme: scheme,
		Cache:  cacheOpts,
		Client: client.Options{
			Cache: &client.CacheOptions{
				// The registry's optimistic-concurrency loop and the
				// federation config lookups need fresh reads, and the
				// registry ConfigMap may live outside the watch
				// namespace.
				DisableFor: []client.Object{&corev1.ConfigMap{}, &corev1.Secret{}},
			},
		},
		Metrics: metricsserver.Options{
			BindAddress: fmt.Sprintf(":%d", c.MetricsPort),
		},
		LeaderElection:             c.LeaderElect,
		LeaderElectionID:           "openstack-operator-leader-election",
		LeaderElectionResourceLock: resourcelock.LeasesResourceLock,
		HealthProbeBindAddress:     ":8081",
		// Bound how long the garbage collectors get to notice
		// cancellation before the process exits.
		GracefulShutdownTimeout: func() *time.Duration { d := 10 * time.Second; return &d }(),
	})
	if err != nil {
		return errors.Wrap(err, "cannot create manager")
	}

	if err := mgr.AddHealthzCheck("healthz", healthz.Ping); err != nil {
		return errors.Wrap(err, "cannot add healthz check")
	}
	if err := mgr.AddReadyzCheck("readyz", healthz.Ping); err != nil {
		return errors.Wrap(err, "cannot add readyz check")
	}

	s := state.New(osclient.Config{
		CloudName:          c.Cloud,
		CloudsYAMLPath:     c.CloudsConfigFile,
		MaxConcurrentCalls: c.MaxConcurrentCalls,
		RequestsPerSecond:  c.RequestsPerSecond,
	}, mgr.GetClient(), c.RegistryNamespace)

	o := controller.Options{
		Logger:                  log,
		MaxConcurrentReconciles: c.MaxReconcileRate,
		PollInterval:            time.Minute,
		GlobalRateLimiter:       ratelimiter.NewGlobal(c.MaxReconcileRate),
		Features:                &feature.Flags{},
	}

	gc := openstack.GCOptions{
		ProjectInterval: time.Duration(c.GCIntervalSeconds) * time.Second,
		ClusterInterval: time.Duration(c.ClusterGCIntervalSeconds) * time.Second,
		ManagedDomain:   c.ManagedDomain,
	}

	if err := openstack.Setup(mgr, o, s, gc); err != nil {
		return errors.Wrap(err, "cannot setup controllers")
	}

	return errors.Wrap(mgr.Start(ctrl.SetupSignalHandler()), "cannot start manager")
}

func newLogger(debug bool) (logr.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if debug {
		zcfg = zap.NewDevelopmentConfig()
	}
	zl, err := zcfg.Build()
	if err != nil {
		return logr.Logger{}, err
	}
	return zapr.NewLogger(zl), nil
}
