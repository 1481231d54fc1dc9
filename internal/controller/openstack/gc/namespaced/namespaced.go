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

// Package namespaced garbage-collects tenant resources whose Project CR
// disappeared without going through the delete handler: security groups,
// tenant networks, user groups, the projects themselves, and each
// orphaned project's federation mapping rule. The registry is the ground
// truth for what the operator ever created; a legacy tag scan covers
// projects created before the registry existed. The collector runs only
// on the leader-elected manager replica, so at most one sweep is in
// progress at a time.
package namespaced

import (
	"context"
	"time"

	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/manager"

	"github.com/crossplane/crossplane-runtime/pkg/errors"
	"github.com/crossplane/crossplane-runtime/pkg/logging"

	v1alpha1 "github.com/sunet/openstack-operator/apis/openstack/v1alpha1"
	osclient "github.com/sunet/openstack-operator/internal/clients/openstack"
	"github.com/sunet/openstack-operator/internal/metrics"
	"github.com/sunet/openstack-operator/internal/registry"
	"github.com/sunet/openstack-operator/internal/resources"
	"github.com/sunet/openstack-operator/internal/resources/federation"
	"github.com/sunet/openstack-operator/internal/state"
	"github.com/sunet/openstack-operator/internal/util"
)

// tickTimeout bounds one full sweep.
const tickTimeout = 5 * time.Minute

// A Collector periodically deletes orphaned tenant resources.
type Collector struct {
	kube  client.Client
	state *state.State
	log   logging.Logger

	interval time.Duration

	// managedDomain is the domain scanned for legacy tagged projects.
	managedDomain string
}

// New returns a Collector sweeping every interval, scanning
// managedDomain for legacy tagged projects.
func New(kube client.Client, s *state.State, log logging.Logger, interval time.Duration, managedDomain string) *Collector {
	return &Collector{
		kube:          kube,
		state:         s,
		log:           log,
		interval:      interval,
		managedDomain: managedDomain,
	}
}

// NeedLeaderElection ensures only the leading manager replica sweeps.
func (c *Collector) NeedLeaderElection() bool { return true }

var _ manager.LeaderElectionRunnable = &Collector{}

// Start runs the sweep loop until ctx is cancelled.
func (c *Collector) Start(ctx context.Context) error {
	c.log.Info("starting project garbage collector", "interval", c.interval)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.log.Info("stopping project garbage collector")
			return nil
		case <-ticker.C:
			start := time.Now()
			tctx, cancel := context.WithTimeout(ctx, tickTimeout)
			err := c.tick(tctx)
			cancel()

			metrics.ProjectGCDuration.Observe(time.Since(start).Seconds())
			if err != nil {
				c.log.Info("project garbage collection failed", "error", err)
				metrics.ProjectGCRuns.WithLabelValues("error").Inc()
				continue
			}
			metrics.ProjectGCRuns.WithLabelValues("success").Inc()
		}
	}
}

// tick computes the orphan set per kind and deletes in dependency
// order. Failures on individual orphans are logged and skipped so the
// rest of the sweep proceeds.
func (c *Collector) tick(ctx context.Context) error {
	list := &v1alpha1.ProjectList{}
	if err := c.kube.List(ctx, list); err != nil {
		return errors.Wrap(err, "cannot list Project CRs")
	}

	expected := make(map[string]bool, len(list.Items))
	specNames := make(map[string]bool, len(list.Items))
	for _, p := range list.Items {
		expected[p.GetName()] = true
		specNames[p.Spec.Name] = true
	}

	osc, err := c.state.Client(ctx)
	if err != nil {
		return errors.Wrap(err, "cannot connect to OpenStack")
	}
	reg := c.state.Registry()

	c.collectSecurityGroups(ctx, osc, reg, expected)
	c.collectNetworks(ctx, osc, reg, expected)
	c.collectGroups(ctx, osc, reg, expected)
	c.collectProjects(ctx, osc, reg, expected)
	c.collectLegacyTagged(ctx, osc, reg, specNames)

	return nil
}

func (c *Collector) collectSecurityGroups(ctx context.Context, osc osclient.Client, reg *registry.Registry, expected map[string]bool) {
	orphans, err := reg.GetOrphans(ctx, registry.KindSecurityGroup, expected)
	if err != nil {
		c.log.Info("cannot list orphaned security groups", "error", err)
		return
	}
	for _, rec := range orphans {
		log := c.log.WithValues("security_group", rec.Name, "id", rec.ID, "cr", rec.CRName)
		if err := osc.DeleteSecurityGroup(ctx, rec.ID); err != nil {
			log.Info("cannot delete orphaned security group", "error", err)
			continue
		}
		if err := reg.Unregister(ctx, registry.KindSecurityGroup, rec.Name); err != nil {
			log.Info("cannot unregister security group", "error", err)
			continue
		}
		log.Info("deleted orphaned security group")
		metrics.ProjectGCDeletedResources.WithLabelValues("security_group").Inc()
	}
}

func (c *Collector) collectNetworks(ctx context.Context, osc osclient.Client, reg *registry.Registry, expected map[string]bool) {
	orphans, err := reg.GetOrphans(ctx, registry.KindNetwork, expected)
	if err != nil {
		c.log.Info("cannot list orphaned networks", "error", err)
		return
	}
	for _, rec := range orphans {
		log := c.log.WithValues("network", rec.Name, "id", rec.ID, "cr", rec.CRName)

		subnetID := rec.Extra["subnet_id"]
		routerID := rec.Extra["router_id"]
		if routerID != "" {
			if err := osc.RemoveRouterInterface(ctx, routerID, subnetID); err != nil {
				log.Info("cannot remove router interface", "error", err)
			}
			if err := osc.DeleteRouter(ctx, routerID); err != nil {
				log.Info("cannot delete router", "error", err)
				continue
			}
		}
		if subnetID != "" {
			if err := osc.DeleteSubnet(ctx, subnetID); err != nil {
				log.Info("cannot delete subnet", "error", err)
				continue
			}
		}
		if err := osc.DeleteNetwork(ctx, rec.ID); err != nil {
			log.Info("cannot delete orphaned network", "error", err)
			continue
		}
		if err := reg.Unregister(ctx, registry.KindNetwork, rec.Name); err != nil {
			log.Info("cannot unregister network", "error", err)
			continue
		}
		log.Info("deleted orphaned network")
		metrics.ProjectGCDeletedResources.WithLabelValues("network").Inc()
	}
}

func (c *Collector) collectGroups(ctx context.Context, osc osclient.Client, reg *registry.Registry, expected map[string]bool) {
	orphans, err := reg.GetOrphans(ctx, registry.KindGroup, expected)
	if err != nil {
		c.log.Info("cannot list orphaned groups", "error", err)
		return
	}
	for _, rec := range orphans {
		log := c.log.WithValues("group", rec.Name, "id", rec.ID, "cr", rec.CRName)
		if err := osc.DeleteGroup(ctx, rec.ID); err != nil {
			log.Info("cannot delete orphaned group", "error", err)
			continue
		}
		if err := reg.Unregister(ctx, registry.KindGroup, rec.Name); err != nil {
			log.Info("cannot unregister group", "error", err)
			continue
		}
		log.Info("deleted orphaned group")
		metrics.ProjectGCDeletedResources.WithLabelValues("group").Inc()
	}
}

func (c *Collector) collectProjects(ctx context.Context, osc osclient.Client, reg *registry.Registry, expected map[string]bool) {
	orphans, err := reg.GetOrphans(ctx, registry.KindProject, expected)
	if err != nil {
		c.log.Info("cannot list orphaned projects", "error", err)
		return
	}
	for _, rec := range orphans {
		log := c.log.WithValues("project", rec.Name, "id", rec.ID, "cr", rec.CRName)

		c.removeFederationRules(ctx, osc, reg, rec.Name)

		if err := osc.DeleteProject(ctx, rec.ID); err != nil {
			log.Info("cannot delete orphaned project", "error", err)
			continue
		}
		if err := reg.Unregister(ctx, registry.KindProject, rec.Name); err != nil {
			log.Info("cannot unregister project", "error", err)
			continue
		}
		log.Info("deleted orphaned project")
		metrics.ProjectGCDeletedResources.WithLabelValues("project").Inc()
	}
}

// removeFederationRules drops projectName's rule from every mapping the
// registry knows about. A project federated through at most one IdP, but
// sweeping all known mappings is cheap and avoids needing the orphan's
// long-gone federation ConfigMap.
func (c *Collector) removeFederationRules(ctx context.Context, osc osclient.Client, reg *registry.Registry, projectName string) {
	mappings, err := reg.GetAll(ctx, registry.KindFederationMapping)
	if err != nil {
		c.log.Info("cannot list registered mappings", "error", err)
		return
	}
	for _, m := range mappings {
		if err := federation.RemoveProjectRules(ctx, osc, m.Name, projectName); err != nil {
			c.log.Info("cannot remove federation rule", "mapping", m.Name, "project", projectName, "error", err)
			continue
		}
		metrics.ProjectGCDeletedResources.WithLabelValues("mapping").Inc()
	}
}

// collectLegacyTagged deletes projects carrying the managed-by tag that
// predate the registry: tagged, not registered, and not named by any
// current CR spec. Deletion at the remote is idempotent, so a project
// both tagged and registered is safe even if both paths race.
func (c *Collector) collectLegacyTagged(ctx context.Context, osc osclient.Client, reg *registry.Registry, specNames map[string]bool) {
	if c.managedDomain == "" {
		return
	}

	dom, err := osc.GetDomain(ctx, c.managedDomain)
	if err != nil || dom == nil {
		c.log.Info("cannot resolve managed domain for legacy scan", "domain", c.managedDomain, "error", err)
		return
	}

	tagged, err := osc.ListProjectsByTag(ctx, dom.ID, resources.ManagedByTag)
	if err != nil {
		c.log.Info("cannot list tagged projects", "error", err)
		return
	}

	for _, p := range tagged {
		if specNames[p.Name] {
			continue
		}
		rec, err := reg.Get(ctx, registry.KindProject, p.Name)
		if err != nil || rec != nil {
			// Registered projects are the registry sweep's job.
			continue
		}

		log := c.log.WithValues("project", p.Name, "id", p.ID)
		if err := osc.DeleteProject(ctx, p.ID); err != nil {
			log.Info("cannot delete legacy tagged project", "error", err)
			continue
		}
		log.Info("deleted legacy tagged project", "group", util.MakeGroupName(p.Name))
		metrics.ProjectGCDeletedResources.WithLabelValues("project").Inc()
	}
}

// String names the runnable in manager logs.
func (c *Collector) String() string { return "gc/projects" }
