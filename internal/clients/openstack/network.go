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

package openstack

import (
	"context"
	"strconv"

	"github.com/gophercloud/gophercloud/v2"
	"github.com/gophercloud/gophercloud/v2/openstack/networking/v2/extensions/external"
	"github.com/gophercloud/gophercloud/v2/openstack/networking/v2/extensions/layer3/routers"
	"github.com/gophercloud/gophercloud/v2/openstack/networking/v2/extensions/provider"
	"github.com/gophercloud/gophercloud/v2/openstack/networking/v2/networks"
	"github.com/gophercloud/gophercloud/v2/openstack/networking/v2/subnets"
)

func (c *client) GetNetwork(ctx context.Context, name, projectID string) (*Network, error) {
	return call(ctx, c.limiter, "network", "get_network", func(ctx context.Context) (*Network, error) {
		pages, err := networks.List(c.network, networks.ListOpts{Name: name, ProjectID: projectID}).AllPages(ctx)
		if err != nil {
			return nil, classify(err)
		}
		found, err := networks.ExtractNetworks(pages)
		if err != nil {
			return nil, classify(err)
		}
		if len(found) == 0 {
			return nil, nil
		}
		return toNetwork(&found[0]), nil
	})
}

func (c *client) GetExternalNetwork(ctx context.Context, name string) (*Network, error) {
	return call(ctx, c.limiter, "network", "get_external_network", func(ctx context.Context) (*Network, error) {
		isExternal := true
		listOpts := external.ListOptsExt{
			ListOptsBuilder: networks.ListOpts{Name: name},
			External:        &isExternal,
		}
		pages, err := networks.List(c.network, listOpts).AllPages(ctx)
		if err != nil {
			return nil, classify(err)
		}
		found, err := networks.ExtractNetworks(pages)
		if err != nil {
			return nil, classify(err)
		}
		if len(found) == 0 {
			return nil, nil
		}
		return toNetwork(&found[0]), nil
	})
}

func (c *client) CreateNetwork(ctx context.Context, name, projectID string) (*Network, error) {
	return call(ctx, c.limiter, "network", "create_network", func(ctx context.Context) (*Network, error) {
		n, err := networks.Create(ctx, c.network, networks.CreateOpts{
			Name:      name,
			ProjectID: projectID,
		}).Extract()
		if err != nil {
			return nil, classify(err)
		}
		return toNetwork(n), nil
	})
}

func (c *client) DeleteNetwork(ctx context.Context, id string) error {
	_, err := call(ctx, c.limiter, "network", "delete_network", func(ctx context.Context) (struct{}, error) {
		err := networks.Delete(ctx, c.network, id).ExtractErr()
		if IsNotFound(err) {
			return struct{}{}, nil
		}
		return struct{}{}, classify(err)
	})
	return err
}

// GetNetworkByName looks up a network cluster-wide, without scoping to a
// project. Used by the ProviderNetwork reconciler, which manages networks
// that do not belong to any single tenant project.
func (c *client) GetNetworkByName(ctx context.Context, name string) (*Network, error) {
	return call(ctx, c.limiter, "network", "get_network_by_name", func(ctx context.Context) (*Network, error) {
		pages, err := networks.List(c.network, networks.ListOpts{Name: name}).AllPages(ctx)
		if err != nil {
			return nil, classify(err)
		}
		found, err := networks.ExtractNetworks(pages)
		if err != nil {
			return nil, classify(err)
		}
		if len(found) == 0 {
			return nil, nil
		}
		return toNetwork(&found[0]), nil
	})
}

// CreateProviderNetwork creates a cluster-scoped network bound to a
// physical provider network segment, optionally marking it external and
// shared.
func (c *client) CreateProviderNetwork(ctx context.Context, n Network) (*Network, error) {
	return call(ctx, c.limiter, "network", "create_provider_network", func(ctx context.Context) (*Network, error) {
		base := networks.CreateOpts{
			Name:   n.Name,
			Shared: &n.Shared,
		}
		withExternal := external.CreateOptsExt{
			CreateOptsBuilder: base,
			External:          &n.External,
		}
		withProvider := provider.CreateOptsExt{
			CreateOptsBuilder: withExternal,
			Segments: []provider.Segment{{
				NetworkType:     n.ProviderNetworkType,
				PhysicalNetwork: n.ProviderPhysicalNetwork,
				SegmentationID:  n.ProviderSegmentationID,
			}},
		}

		var result struct {
			networks.Network
			external.NetworkExternalExt
			provider.NetworkProviderExt
		}
		r := networks.Create(ctx, c.network, withProvider)
		if err := r.ExtractInto(&result); err != nil {
			return nil, classify(err)
		}
		segmentationID, _ := strconv.Atoi(result.SegmentationID)
		return &Network{
			ID:                      result.ID,
			Name:                    result.Name,
			ProjectID:               result.ProjectID,
			Shared:                  result.Shared,
			External:                result.External,
			ProviderNetworkType:     result.NetworkType,
			ProviderPhysicalNetwork: result.PhysicalNetwork,
			ProviderSegmentationID:  segmentationID,
		}, nil
	})
}

func toNetwork(n *networks.Network) *Network {
	return &Network{ID: n.ID, Name: n.Name, ProjectID: n.ProjectID, Shared: n.Shared}
}

func (c *client) GetSubnet(ctx context.Context, name, networkID string) (*Subnet, error) {
	return call(ctx, c.limiter, "network", "get_subnet", func(ctx context.Context) (*Subnet, error) {
		pages, err := subnets.List(c.network, subnets.ListOpts{Name: name, NetworkID: networkID}).AllPages(ctx)
		if err != nil {
			return nil, classify(err)
		}
		found, err := subnets.ExtractSubnets(pages)
		if err != nil {
			return nil, classify(err)
		}
		if len(found) == 0 {
			return nil, nil
		}
		return toSubnet(&found[0]), nil
	})
}

func (c *client) CreateSubnet(ctx context.Context, name, networkID, cidr string, enableDHCP bool, dns []string) (*Subnet, error) {
	return c.CreateSubnetWithPool(ctx, name, networkID, cidr, enableDHCP, dns, "", "", "")
}

// CreateSubnetWithPool creates a subnet like CreateSubnet, additionally
// setting an explicit gateway IP and a single allocation pool when either
// is non-empty. Provider network subnets use this to honor an admin's
// explicit IPAM choices; tenant network subnets leave these unset and rely
// on Neutron's defaults.
func (c *client) CreateSubnetWithPool(ctx context.Context, name, networkID, cidr string, enableDHCP bool, dns []string, gatewayIP, allocationStart, allocationEnd string) (*Subnet, error) {
	return call(ctx, c.limiter, "network", "create_subnet", func(ctx context.Context) (*Subnet, error) {
		opts := subnets.CreateOpts{
			Name:           name,
			NetworkID:      networkID,
			CIDR:           cidr,
			IPVersion:      gophercloud.IPv4,
			EnableDHCP:     &enableDHCP,
			DNSNameservers: dns,
		}
		if gatewayIP != "" {
			opts.GatewayIP = &gatewayIP
		}
		if allocationStart != "" && allocationEnd != "" {
			opts.AllocationPools = []subnets.AllocationPool{{Start: allocationStart, End: allocationEnd}}
		}
		s, err := subnets.Create(ctx, c.network, opts).Extract()
		if err != nil {
			return nil, classify(err)
		}
		return toSubnet(s), nil
	})
}

func (c *client) DeleteSubnet(ctx context.Context, id string) error {
	_, err := call(ctx, c.limiter, "network", "delete_subnet", func(ctx context.Context) (struct{}, error) {
		err := subnets.Delete(ctx, c.network, id).ExtractErr()
		if IsNotFound(err) {
			return struct{}{}, nil
		}
		return struct{}{}, classify(err)
	})
	return err
}

func toSubnet(s *subnets.Subnet) *Subnet {
	out := &Subnet{
		ID:             s.ID,
		Name:           s.Name,
		NetworkID:      s.NetworkID,
		CIDR:           s.CIDR,
		GatewayIP:      s.GatewayIP,
		EnableDHCP:     s.EnableDHCP,
		DNSNameservers: s.DNSNameservers,
	}
	if len(s.AllocationPools) > 0 {
		out.AllocationStart = s.AllocationPools[0].Start
		out.AllocationEnd = s.AllocationPools[0].End
	}
	return out
}

func (c *client) GetRouter(ctx context.Context, name, projectID string) (*Router, error) {
	return call(ctx, c.limiter, "network", "get_router", func(ctx context.Context) (*Router, error) {
		pages, err := routers.List(c.network, routers.ListOpts{Name: name, ProjectID: projectID}).AllPages(ctx)
		if err != nil {
			return nil, classify(err)
		}
		found, err := routers.ExtractRouters(pages)
		if err != nil {
			return nil, classify(err)
		}
		if len(found) == 0 {
			return nil, nil
		}
		return toRouter(&found[0]), nil
	})
}

func (c *client) CreateRouter(ctx context.Context, name, projectID, externalNetworkID string, enableSNAT bool) (*Router, error) {
	return call(ctx, c.limiter, "network", "create_router", func(ctx context.Context) (*Router, error) {
		opts := routers.CreateOpts{
			Name:      name,
			ProjectID: projectID,
		}
		if externalNetworkID != "" {
			opts.GatewayInfo = &routers.GatewayInfo{
				NetworkID:  externalNetworkID,
				EnableSNAT: &enableSNAT,
			}
		}
		r, err := routers.Create(ctx, c.network, opts).Extract()
		if err != nil {
			return nil, classify(err)
		}
		return toRouter(r), nil
	})
}

func (c *client) AddRouterInterface(ctx context.Context, routerID, subnetID string) error {
	_, err := call(ctx, c.limiter, "network", "add_router_interface", func(ctx context.Context) (struct{}, error) {
		_, err := routers.AddInterface(ctx, c.network, routerID, routers.AddInterfaceOpts{SubnetID: subnetID}).Extract()
		if IsConflict(err) {
			return struct{}{}, nil
		}
		return struct{}{}, classify(err)
	})
	return err
}

func (c *client) RemoveRouterInterface(ctx context.Context, routerID, subnetID string) error {
	_, err := call(ctx, c.limiter, "network", "remove_router_interface", func(ctx context.Context) (struct{}, error) {
		_, err := routers.RemoveInterface(ctx, c.network, routerID, routers.RemoveInterfaceOpts{SubnetID: subnetID}).Extract()
		if IsNotFound(err) {
			return struct{}{}, nil
		}
		return struct{}{}, classify(err)
	})
	return err
}

func (c *client) DeleteRouter(ctx context.Context, id string) error {
	_, err := call(ctx, c.limiter, "network", "delete_router", func(ctx context.Context) (struct{}, error) {
		err := routers.Delete(ctx, c.network, id).ExtractErr()
		if IsNotFound(err) {
			return struct{}{}, nil
		}
		return struct{}{}, classify(err)
	})
	return err
}

func toRouter(r *routers.Router) *Router {
	out := &Router{ID: r.ID, Name: r.Name, ProjectID: r.ProjectID}
	if r.GatewayInfo.NetworkID != "" {
		out.ExternalNetworkID = r.GatewayInfo.NetworkID
		if r.GatewayInfo.EnableSNAT != nil {
			out.EnableSNAT = *r.GatewayInfo.EnableSNAT
		}
	}
	return out
}
