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

// Package providernetwork manages admin-created networks backed by
// physical infrastructure. Every provider attribute (type, physical
// network, segmentation id, external, shared) is immutable at the
// remote; a change to any of them recreates the whole network, subnets
// included.
package providernetwork

import (
	"context"
	"strings"

	"github.com/crossplane/crossplane-runtime/pkg/errors"
	"github.com/crossplane/crossplane-runtime/pkg/logging"
	"github.com/google/go-cmp/cmp"

	v1alpha1 "github.com/sunet/openstack-operator/apis/openstack/v1alpha1"
	osclient "github.com/sunet/openstack-operator/internal/clients/openstack"
	"github.com/sunet/openstack-operator/internal/registry"
)

// provider is the immutable attribute set of a provider network.
type provider struct {
	NetworkType     string
	PhysicalNetwork string
	SegmentationID  int
	External        bool
	Shared          bool
}

func providerOf(n *osclient.Network) provider {
	return provider{
		NetworkType:     n.ProviderNetworkType,
		PhysicalNetwork: n.ProviderPhysicalNetwork,
		SegmentationID:  n.ProviderSegmentationID,
		External:        n.External,
		Shared:          n.Shared,
	}
}

func providerFromSpec(spec v1alpha1.ProviderNetworkSpec) provider {
	p := provider{
		NetworkType:     spec.ProviderNetworkType,
		PhysicalNetwork: spec.ProviderPhysicalNetwork,
		External:        spec.External,
		Shared:          spec.Shared,
	}
	if spec.ProviderSegmentationID != nil {
		p.SegmentationID = int(*spec.ProviderSegmentationID)
	}
	return p
}

// NeedsRecreate reports whether converging current to spec requires
// deleting and recreating the network.
func NeedsRecreate(current *osclient.Network, spec v1alpha1.ProviderNetworkSpec) bool {
	return !cmp.Equal(providerOf(current), providerFromSpec(spec))
}

func fromSpec(spec v1alpha1.ProviderNetworkSpec) osclient.Network {
	n := osclient.Network{
		Name:                    spec.Name,
		ProviderNetworkType:     spec.ProviderNetworkType,
		ProviderPhysicalNetwork: spec.ProviderPhysicalNetwork,
		External:                spec.External,
		Shared:                  spec.Shared,
	}
	if spec.ProviderSegmentationID != nil {
		n.ProviderSegmentationID = int(*spec.ProviderSegmentationID)
	}
	return n
}

// Ensure finds or creates the provider network and each of its subnets.
// When the network exists with a different provider configuration, it and
// its subnets are deleted and recreated; recreated reports whether that
// path was taken. The registry record's extra carries the subnet ids so
// the garbage collector can delete subnets before the network.
func Ensure(ctx context.Context, c osclient.Client, reg *registry.Registry, log logging.Logger, crName string, spec v1alpha1.ProviderNetworkSpec, recorded []v1alpha1.ProviderNetworkSubnetStatus) (n *osclient.Network, subnets []v1alpha1.ProviderNetworkSubnetStatus, recreated bool, err error) {
	existing, err := c.GetNetworkByName(ctx, spec.Name)
	if err != nil {
		return nil, nil, false, errors.Wrap(err, "cannot get network")
	}

	if existing != nil && NeedsRecreate(existing, spec) {
		teardown(ctx, c, log, existing.ID, recorded)
		existing = nil
		recreated = true
	}

	if existing == nil {
		existing, err = c.CreateProviderNetwork(ctx, fromSpec(spec))
		if err != nil {
			return nil, nil, false, errors.Wrap(err, "cannot create provider network")
		}
	}

	subnets = make([]v1alpha1.ProviderNetworkSubnetStatus, 0, len(spec.Subnets))
	for _, sub := range spec.Subnets {
		s, err := c.GetSubnet(ctx, sub.Name, existing.ID)
		if err != nil {
			return nil, nil, false, errors.Wrapf(err, "cannot get subnet %q", sub.Name)
		}
		if s == nil {
			s, err = c.CreateSubnetWithPool(ctx, sub.Name, existing.ID, sub.CIDR, sub.DHCP, nil, sub.GatewayIP, sub.AllocationPoolStart, sub.AllocationPoolEnd)
			if err != nil {
				return nil, nil, false, errors.Wrapf(err, "cannot create subnet %q", sub.Name)
			}
		}
		subnets = append(subnets, v1alpha1.ProviderNetworkSubnetStatus{Name: sub.Name, SubnetID: s.ID})
	}

	ids := make([]string, 0, len(subnets))
	for _, s := range subnets {
		ids = append(ids, s.SubnetID)
	}
	extra := map[string]string{"subnet_ids": strings.Join(ids, ",")}
	if err := reg.Register(ctx, registry.KindProviderNetwork, spec.Name, existing.ID, crName, extra); err != nil {
		return nil, nil, false, errors.Wrap(err, "cannot register provider network")
	}

	return existing, subnets, recreated, nil
}

// teardown removes recorded subnets then the network, tolerating partial
// failures so a recreate can proceed past an already-deleted subnet.
func teardown(ctx context.Context, c osclient.Client, log logging.Logger, networkID string, recorded []v1alpha1.ProviderNetworkSubnetStatus) {
	for _, s := range recorded {
		if err := c.DeleteSubnet(ctx, s.SubnetID); err != nil {
			log.Info("cannot delete subnet", "subnet", s.SubnetID, "error", err)
		}
	}
	if err := c.DeleteNetwork(ctx, networkID); err != nil {
		log.Info("cannot delete network", "network", networkID, "error", err)
	}
}

// Delete removes the network's subnets, the network, and its registry
// record. Subnet ids are taken from status; a subnet or network already
// gone at the remote is not an error.
func Delete(ctx context.Context, c osclient.Client, reg *registry.Registry, name, networkID string, subnets []v1alpha1.ProviderNetworkSubnetStatus) error {
	for _, s := range subnets {
		if err := c.DeleteSubnet(ctx, s.SubnetID); err != nil {
			return errors.Wrapf(err, "cannot delete subnet %q", s.Name)
		}
	}
	if networkID != "" {
		if err := c.DeleteNetwork(ctx, networkID); err != nil {
			return errors.Wrap(err, "cannot delete network")
		}
	}
	return reg.Unregister(ctx, registry.KindProviderNetwork, name)
}
