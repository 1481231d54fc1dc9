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

package network

import (
	"context"
	"testing"

	"github.com/crossplane/crossplane-runtime/pkg/logging"
	. "github.com/onsi/gomega"
	kfake "sigs.k8s.io/controller-runtime/pkg/client/fake"

	v1alpha1 "github.com/sunet/openstack-operator/apis/openstack/v1alpha1"
	osclient "github.com/sunet/openstack-operator/internal/clients/openstack"
	"github.com/sunet/openstack-operator/internal/clients/openstack/fake"
	"github.com/sunet/openstack-operator/internal/registry"
)

func newTestRegistry() *registry.Registry {
	return registry.New(kfake.NewClientBuilder().Build(), "testing")
}

func TestEnsureCreatesNetworkSubnetAndRouter(t *testing.T) {
	g := NewGomegaWithT(t)
	ctx := context.Background()

	var subnetName, routerName, gatewayNet string
	attached := [][2]string{}
	c := &fake.Client{
		MockCreateNetwork: func(_ context.Context, name, projectID string) (*osclient.Network, error) {
			return &osclient.Network{ID: "net-1", Name: name, ProjectID: projectID}, nil
		},
		MockCreateSubnet: func(_ context.Context, name, networkID, cidr string, dhcp bool, _ []string) (*osclient.Subnet, error) {
			subnetName = name
			g.Expect(networkID).To(Equal("net-1"))
			g.Expect(cidr).To(Equal("10.0.1.0/24"))
			g.Expect(dhcp).To(BeTrue())
			return &osclient.Subnet{ID: "sub-1", Name: name, NetworkID: networkID, CIDR: cidr}, nil
		},
		MockGetExternalNetwork: func(_ context.Context, name string) (*osclient.Network, error) {
			gatewayNet = name
			return &osclient.Network{ID: "ext-1", Name: name, External: true}, nil
		},
		MockCreateRouter: func(_ context.Context, name, projectID, externalNetworkID string, snat bool) (*osclient.Router, error) {
			routerName = name
			g.Expect(externalNetworkID).To(Equal("ext-1"))
			g.Expect(snat).To(BeTrue())
			return &osclient.Router{ID: "rtr-1", Name: name, ProjectID: projectID}, nil
		},
		MockAddRouterInterface: func(_ context.Context, routerID, subnetID string) error {
			attached = append(attached, [2]string{routerID, subnetID})
			return nil
		},
	}

	spec := v1alpha1.ProjectNetworkSpec{
		Name: "dmz",
		CIDR: "10.0.1.0/24",
		DHCP: true,
		Router: &v1alpha1.RouterSpec{
			ExternalNetwork: "public",
			SNAT:            true,
		},
	}

	status, err := Ensure(ctx, c, newTestRegistry(), "cr-a", "pid", spec)
	g.Expect(err).NotTo(HaveOccurred())

	g.Expect(status.NetworkID).To(Equal("net-1"))
	g.Expect(status.SubnetID).To(Equal("sub-1"))
	g.Expect(status.RouterID).To(Equal("rtr-1"))
	g.Expect(subnetName).To(Equal("dmz-subnet"))
	g.Expect(routerName).To(Equal("dmz-router"))
	g.Expect(gatewayNet).To(Equal("public"))
	g.Expect(attached).To(Equal([][2]string{{"rtr-1", "sub-1"}}))
}

func TestEnsureWithoutRouter(t *testing.T) {
	g := NewGomegaWithT(t)
	ctx := context.Background()

	routerCreated := false
	c := &fake.Client{
		MockCreateNetwork: func(_ context.Context, name, projectID string) (*osclient.Network, error) {
			return &osclient.Network{ID: "net-1", Name: name, ProjectID: projectID}, nil
		},
		MockCreateSubnet: func(_ context.Context, name, networkID, cidr string, _ bool, _ []string) (*osclient.Subnet, error) {
			return &osclient.Subnet{ID: "sub-1", Name: name, NetworkID: networkID, CIDR: cidr}, nil
		},
		MockCreateRouter: func(context.Context, string, string, string, bool) (*osclient.Router, error) {
			routerCreated = true
			return nil, nil
		},
	}

	spec := v1alpha1.ProjectNetworkSpec{Name: "internal", CIDR: "10.0.0.0/24"}
	status, err := Ensure(ctx, c, newTestRegistry(), "cr-a", "pid", spec)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(status.RouterID).To(BeEmpty())
	g.Expect(routerCreated).To(BeFalse())
}

func TestEnsureReattachesExistingRouter(t *testing.T) {
	g := NewGomegaWithT(t)
	ctx := context.Background()

	attached := 0
	c := &fake.Client{
		MockGetNetwork: func(_ context.Context, name, projectID string) (*osclient.Network, error) {
			return &osclient.Network{ID: "net-1", Name: name, ProjectID: projectID}, nil
		},
		MockGetSubnet: func(_ context.Context, name, networkID string) (*osclient.Subnet, error) {
			return &osclient.Subnet{ID: "sub-1", Name: name, NetworkID: networkID}, nil
		},
		MockGetRouter: func(_ context.Context, name, projectID string) (*osclient.Router, error) {
			return &osclient.Router{ID: "rtr-1", Name: name, ProjectID: projectID}, nil
		},
		MockAddRouterInterface: func(context.Context, string, string) error {
			attached++
			return nil
		},
	}

	spec := v1alpha1.ProjectNetworkSpec{Name: "dmz", CIDR: "10.0.1.0/24", Router: &v1alpha1.RouterSpec{}}
	status, err := Ensure(ctx, c, newTestRegistry(), "cr-a", "pid", spec)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(status.RouterID).To(Equal("rtr-1"))
	g.Expect(attached).To(Equal(1))
}

func TestDeleteTearsDownInReverseOrder(t *testing.T) {
	g := NewGomegaWithT(t)
	ctx := context.Background()

	order := []string{}
	c := &fake.Client{
		MockRemoveRouterInterface: func(context.Context, string, string) error {
			order = append(order, "interface")
			return nil
		},
		MockDeleteRouter: func(context.Context, string) error {
			order = append(order, "router")
			return nil
		},
		MockDeleteSubnet: func(context.Context, string) error {
			order = append(order, "subnet")
			return nil
		},
		MockDeleteNetwork: func(context.Context, string) error {
			order = append(order, "network")
			return nil
		},
	}

	status := v1alpha1.ProjectNetworkStatus{Name: "dmz", NetworkID: "net-1", SubnetID: "sub-1", RouterID: "rtr-1"}
	Delete(ctx, c, newTestRegistry(), logging.NewNopLogger(), "cr-a", status)

	g.Expect(order).To(Equal([]string{"interface", "router", "subnet", "network"}))
}
