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

// Package network manages a project's tenant networks: one neutron
// network, its single subnet, and an optional router wired to an
// external gateway.
package network

import (
	"context"

	"github.com/crossplane/crossplane-runtime/pkg/errors"
	"github.com/crossplane/crossplane-runtime/pkg/logging"

	v1alpha1 "github.com/sunet/openstack-operator/apis/openstack/v1alpha1"
	osclient "github.com/sunet/openstack-operator/internal/clients/openstack"
	"github.com/sunet/openstack-operator/internal/registry"
)

// Ensure finds or creates the network, its subnet, and (if spec.Router is
// set) a router attached to the named external network, then always
// re-attaches the subnet to the router so a router that already existed
// but lost its interface is repaired.
func Ensure(ctx context.Context, c osclient.Client, reg *registry.Registry, crName, projectID string, spec v1alpha1.ProjectNetworkSpec) (*v1alpha1.ProjectNetworkStatus, error) {
	net, err := c.GetNetwork(ctx, spec.Name, projectID)
	if err != nil {
		return nil, errors.Wrap(err, "cannot get network")
	}
	if net == nil {
		net, err = c.CreateNetwork(ctx, spec.Name, projectID)
		if err != nil {
			return nil, errors.Wrap(err, "cannot create network")
		}
	}

	subnetName := spec.Name + "-subnet"
	subnet, err := c.GetSubnet(ctx, subnetName, net.ID)
	if err != nil {
		return nil, errors.Wrap(err, "cannot get subnet")
	}
	if subnet == nil {
		subnet, err = c.CreateSubnet(ctx, subnetName, net.ID, spec.CIDR, spec.DHCP, spec.DNS)
		if err != nil {
			return nil, errors.Wrap(err, "cannot create subnet")
		}
	}

	status := &v1alpha1.ProjectNetworkStatus{Name: spec.Name, NetworkID: net.ID, SubnetID: subnet.ID}

	if spec.Router != nil {
		routerName := spec.Name + "-router"
		var externalNetworkID string
		if spec.Router.ExternalNetwork != "" {
			ext, err := c.GetExternalNetwork(ctx, spec.Router.ExternalNetwork)
			if err != nil {
				return nil, errors.Wrap(err, "cannot get external network")
			}
			if ext == nil {
				return nil, errors.Errorf("external network %q not found", spec.Router.ExternalNetwork)
			}
			externalNetworkID = ext.ID
		}

		router, err := c.GetRouter(ctx, routerName, projectID)
		if err != nil {
			return nil, errors.Wrap(err, "cannot get router")
		}
		if router == nil {
			router, err = c.CreateRouter(ctx, routerName, projectID, externalNetworkID, spec.Router.SNAT)
			if err != nil {
				return nil, errors.Wrap(err, "cannot create router")
			}
		}

		// Always re-attach: a router found via GetRouter may have lost its
		// interface to the subnet through out-of-band remote edits.
		if err := c.AddRouterInterface(ctx, router.ID, subnet.ID); err != nil {
			return nil, errors.Wrap(err, "cannot attach router interface")
		}
		status.RouterID = router.ID
	}

	extra := map[string]string{"subnet_id": status.SubnetID, "router_id": status.RouterID}
	if err := reg.Register(ctx, registry.KindNetwork, spec.Name, status.NetworkID, crName, extra); err != nil {
		return nil, errors.Wrap(err, "cannot register network")
	}

	return status, nil
}

// Delete tears down a tenant network and its router/subnet. Each step is
// best-effort: a failure is logged but never aborts the remaining steps,
// matching the original handler's tolerance for a network already
// partially cleaned up by a prior failed delete.
func Delete(ctx context.Context, c osclient.Client, reg *registry.Registry, log logging.Logger, crName string, status v1alpha1.ProjectNetworkStatus) {
	if status.RouterID != "" {
		if err := c.RemoveRouterInterface(ctx, status.RouterID, status.SubnetID); err != nil {
			log.Info("cannot remove router interface", "router", status.RouterID, "subnet", status.SubnetID, "error", err)
		}
		if err := c.DeleteRouter(ctx, status.RouterID); err != nil {
			log.Info("cannot delete router", "router", status.RouterID, "error", err)
		}
	}
	if status.SubnetID != "" {
		if err := c.DeleteSubnet(ctx, status.SubnetID); err != nil {
			log.Info("cannot delete subnet", "subnet", status.SubnetID, "error", err)
		}
	}
	if status.NetworkID != "" {
		if err := c.DeleteNetwork(ctx, status.NetworkID); err != nil {
			log.Info("cannot delete network", "network", status.NetworkID, "error", err)
		}
	}
	if err := reg.Unregister(ctx, registry.KindNetwork, status.Name); err != nil {
		log.Info("cannot unregister network", "network", status.Name, "error", err)
	}
}
