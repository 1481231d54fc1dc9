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

// Package cluster garbage-collects cluster-scoped primitives whose CR
// disappeared without going through the delete handler: provider
// networks (subnets first), images, flavors and domains, in that order.
// The registry is the ground truth; only resources the operator created
// are ever deleted. The collector runs only on the leader-elected
// manager replica.
package cluster

import (
	"context"
	"strings"
	"time"

	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/manager"

	"github.com/crossplane/crossplane-runtime/pkg/errors"
	"github.com/crossplane/crossplane-runtime/pkg/logging"

	v1alpha1 "github.com/sunet/openstack-operator/apis/openstack/v1alpha1"
	osclient "github.com/sunet/openstack-operator/internal/clients/openstack"
	"github.com/sunet/openstack-operator/internal/metrics"
	"github.com/sunet/openstack-operator/internal/registry"
	"github.com/sunet/openstack-operator/internal/resources/domain"
	"github.com/sunet/openstack-operator/internal/resources/flavor"
	"github.com/sunet/openstack-operator/internal/resources/image"
	"github.com/sunet/openstack-operator/internal/state"
)

// tickTimeout bounds one full sweep.
const tickTimeout = 5 * time.Minute

// A Collector periodically deletes orphaned cluster-scoped resources.
type Collector struct {
	kube  client.Client
	state *state.State
	log   logging.Logger

	interval time.Duration
}

// New returns a Collector sweeping every interval.
func New(kube client.Client, s *state.State, log logging.Logger, interval time.Duration) *Collector {
	return &Collector{kube: kube, state: s, log: log, interval: interval}
}

// NeedLeaderElection ensures only the leading manager replica sweeps.
func (c *Collector) NeedLeaderElection() bool { return true }

var _ manager.LeaderElectionRunnable = &Collector{}

// Start runs the sweep loop until ctx is cancelled.
func (c *Collector) Start(ctx context.Context) error {
	c.log.Info("starting cluster garbage collector", "interval", c.interval)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.log.Info("stopping cluster garbage collector")
			return nil
		case <-ticker.C:
			start := time.Now()
			tctx, cancel := context.WithTimeout(ctx, tickTimeout)
			err := c.tick(tctx)
			cancel()

			metrics.ClusterGCDuration.Observe(time.Since(start).Seconds())
			if err != nil {
				c.log.Info("cluster garbage collection failed", "error", err)
				metrics.ClusterGCRuns.WithLabelValues("error").Inc()
				continue
			}
			metrics.ClusterGCRuns.WithLabelValues("success").Inc()
		}
	}
}

// tick computes the orphan set per kind and deletes in dependency
// order. Failures on individual orphans are logged and skipped.
func (c *Collector) tick(ctx context.Context) error {
	osc, err := c.state.Client(ctx)
	if err != nil {
		return errors.Wrap(err, "cannot connect to OpenStack")
	}
	reg := c.state.Registry()

	c.collectProviderNetworks(ctx, osc, reg)
	c.collectImages(ctx, osc, reg)
	c.collectFlavors(ctx, osc, reg)
	c.collectDomains(ctx, osc, reg)

	return nil
}

func (c *Collector) expectedNames(ctx context.Context, list client.ObjectList) (map[string]bool, error) {
	if err := c.kube.List(ctx, list); err != nil {
		return nil, err
	}
	items, err := apiListNames(list)
	if err != nil {
		return nil, err
	}
	return items, nil
}

// apiListNames flattens a typed CR list into the set of CR names.
func apiListNames(list client.ObjectList) (map[string]bool, error) {
	out := map[string]bool{}
	switch l := list.(type) {
	case *v1alpha1.DomainList:
		for _, i := range l.Items {
			out[i.GetName()] = true
		}
	case *v1alpha1.FlavorList:
		for _, i := range l.Items {
			out[i.GetName()] = true
		}
	case *v1alpha1.ImageList:
		for _, i := range l.Items {
			out[i.GetName()] = true
		}
	case *v1alpha1.ProviderNetworkList:
		for _, i := range l.Items {
			out[i.GetName()] = true
		}
	default:
		return nil, errors.Errorf("unsupported list type %T", list)
	}
	return out, nil
}

func (c *Collector) collectProviderNetworks(ctx context.Context, osc osclient.Client, reg *registry.Registry) {
	expected, err := c.expectedNames(ctx, &v1alpha1.ProviderNetworkList{})
	if err != nil {
		c.log.Info("cannot list ProviderNetwork CRs", "error", err)
		return
	}
	orphans, err := reg.GetOrphans(ctx, registry.KindProviderNetwork, expected)
	if err != nil {
		c.log.Info("cannot list orphaned provider networks", "error", err)
		return
	}
	for _, rec := range orphans {
		log := c.log.WithValues("provider_network", rec.Name, "id", rec.ID, "cr", rec.CRName)

		failed := false
		for _, subnetID := range splitIDs(rec.Extra["subnet_ids"]) {
			if err := osc.DeleteSubnet(ctx, subnetID); err != nil {
				log.Info("cannot delete subnet", "subnet", subnetID, "error", err)
				failed = true
			}
		}
		if failed {
			continue
		}
		if err := osc.DeleteNetwork(ctx, rec.ID); err != nil {
			log.Info("cannot delete orphaned provider network", "error", err)
			continue
		}
		if err := reg.Unregister(ctx, registry.KindProviderNetwork, rec.Name); err != nil {
			log.Info("cannot unregister provider network", "error", err)
			continue
		}
		log.Info("deleted orphaned provider network")
		metrics.ClusterGCDeletedResources.WithLabelValues("provider_network").Inc()
	}
}

func (c *Collector) collectImages(ctx context.Context, osc osclient.Client, reg *registry.Registry) {
	expected, err := c.expectedNames(ctx, &v1alpha1.ImageList{})
	if err != nil {
		c.log.Info("cannot list Image CRs", "error", err)
		return
	}
	orphans, err := reg.GetOrphans(ctx, registry.KindImage, expected)
	if err != nil {
		c.log.Info("cannot list orphaned images", "error", err)
		return
	}
	for _, rec := range orphans {
		log := c.log.WithValues("image", rec.Name, "id", rec.ID, "cr", rec.CRName)
		if err := image.Delete(ctx, osc, reg, rec.Name, rec.ID); err != nil {
			log.Info("cannot delete orphaned image", "error", err)
			continue
		}
		log.Info("deleted orphaned image")
		metrics.ClusterGCDeletedResources.WithLabelValues("image").Inc()
	}
}

func (c *Collector) collectFlavors(ctx context.Context, osc osclient.Client, reg *registry.Registry) {
	expected, err := c.expectedNames(ctx, &v1alpha1.FlavorList{})
	if err != nil {
		c.log.Info("cannot list Flavor CRs", "error", err)
		return
	}
	orphans, err := reg.GetOrphans(ctx, registry.KindFlavor, expected)
	if err != nil {
		c.log.Info("cannot list orphaned flavors", "error", err)
		return
	}
	for _, rec := range orphans {
		log := c.log.WithValues("flavor", rec.Name, "id", rec.ID, "cr", rec.CRName)
		if err := flavor.Delete(ctx, osc, reg, rec.Name, rec.ID); err != nil {
			log.Info("cannot delete orphaned flavor", "error", err)
			continue
		}
		log.Info("deleted orphaned flavor")
		metrics.ClusterGCDeletedResources.WithLabelValues("flavor").Inc()
	}
}

func (c *Collector) collectDomains(ctx context.Context, osc osclient.Client, reg *registry.Registry) {
	expected, err := c.expectedNames(ctx, &v1alpha1.DomainList{})
	if err != nil {
		c.log.Info("cannot list Domain CRs", "error", err)
		return
	}
	orphans, err := reg.GetOrphans(ctx, registry.KindDomain, expected)
	if err != nil {
		c.log.Info("cannot list orphaned domains", "error", err)
		return
	}
	for _, rec := range orphans {
		log := c.log.WithValues("domain", rec.Name, "id", rec.ID, "cr", rec.CRName)
		if err := domain.Delete(ctx, osc, reg, rec.Name, rec.ID); err != nil {
			log.Info("cannot delete orphaned domain", "error", err)
			continue
		}
		log.Info("deleted orphaned domain")
		metrics.ClusterGCDeletedResources.WithLabelValues("domain").Inc()
	}
}

func splitIDs(joined string) []string {
	if joined == "" {
		return nil
	}
	out := make([]string, 0)
	for _, id := range strings.Split(joined, ",") {
		if id != "" {
			out = append(out, id)
		}
	}
	return out
}

// String names the runnable in manager logs.
func (c *Collector) String() string { return "gc/cluster" }
