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

// Package fake provides a function-field implementation of
// openstack.Client for use in reconciler and resource unit tests. By
// default every finder returns a "not found" (nil, nil) response and every
// mutation succeeds; tests override only the functions their scenario
// exercises.
package fake

import (
	"context"

	"github.com/sunet/openstack-operator/internal/clients/openstack"
)

// Client is a mock openstack.Client. The zero value is usable: every call
// succeeds and reports its target as absent.
type Client struct {
	MockGetDomain     func(ctx context.Context, nameOrID string) (*openstack.Domain, error)
	MockCreateDomain  func(ctx context.Context, name, description string, enabled bool) (*openstack.Domain, error)
	MockUpdateDomain  func(ctx context.Context, id, description string, enabled bool) (*openstack.Domain, error)
	MockDeleteDomain  func(ctx context.Context, id string) error
	MockGetProject    func(ctx context.Context, name, domainID string) (*openstack.Project, error)
	MockCreateProject func(ctx context.Context, name, domainID, description string, enabled bool) (*openstack.Project, error)
	MockUpdateProject func(ctx context.Context, id, description string, enabled bool) (*openstack.Project, error)
	MockDeleteProject func(ctx context.Context, id string) error

	MockGetGroup     func(ctx context.Context, name, domainID string) (*openstack.Group, error)
	MockGetGroupByID func(ctx context.Context, id string) (*openstack.Group, error)
	MockCreateGroup  func(ctx context.Context, name, domainID, description string) (*openstack.Group, error)
	MockDeleteGroup  func(ctx context.Context, id string) error

	MockGetRole             func(ctx context.Context, name string) (*openstack.Role, error)
	MockAssignRoleToGroup   func(ctx context.Context, roleID, groupID, projectID string) error
	MockRevokeRoleFromGroup func(ctx context.Context, roleID, groupID, projectID string) error

	MockGetUser             func(ctx context.Context, name, domainID string) (*openstack.User, error)
	MockListGroupUsers      func(ctx context.Context, groupID string) ([]openstack.User, error)
	MockAddUserToGroup      func(ctx context.Context, groupID, userID string) error
	MockRemoveUserFromGroup func(ctx context.Context, groupID, userID string) error
	MockAddProjectTag       func(ctx context.Context, projectID, tag string) error
	MockListProjectsByTag   func(ctx context.Context, domainID, tag string) ([]openstack.Project, error)

	MockSetComputeQuotas func(ctx context.Context, projectID string, q openstack.ComputeQuotaSet) error
	MockSetVolumeQuotas  func(ctx context.Context, projectID string, q openstack.VolumeQuotaSet) error
	MockSetNetworkQuotas func(ctx context.Context, projectID string, q openstack.NetworkQuotaSet) error

	MockGetNetwork            func(ctx context.Context, name, projectID string) (*openstack.Network, error)
	MockCreateNetwork         func(ctx context.Context, name, projectID string) (*openstack.Network, error)
	MockDeleteNetwork         func(ctx context.Context, id string) error
	MockGetExternalNetwork    func(ctx context.Context, name string) (*openstack.Network, error)
	MockGetNetworkByName      func(ctx context.Context, name string) (*openstack.Network, error)
	MockCreateProviderNetwork func(ctx context.Context, n openstack.Network) (*openstack.Network, error)

	MockGetSubnet            func(ctx context.Context, name, networkID string) (*openstack.Subnet, error)
	MockCreateSubnet         func(ctx context.Context, name, networkID, cidr string, enableDHCP bool, dns []string) (*openstack.Subnet, error)
	MockCreateSubnetWithPool func(ctx context.Context, name, networkID, cidr string, enableDHCP bool, dns []string, gatewayIP, allocationStart, allocationEnd string) (*openstack.Subnet, error)
	MockDeleteSubnet         func(ctx context.Context, id string) error

	MockGetRouter             func(ctx context.Context, name, projectID string) (*openstack.Router, error)
	MockCreateRouter          func(ctx context.Context, name, projectID, externalNetworkID string, enableSNAT bool) (*openstack.Router, error)
	MockAddRouterInterface    func(ctx context.Context, routerID, subnetID string) error
	MockRemoveRouterInterface func(ctx context.Context, routerID, subnetID string) error
	MockDeleteRouter          func(ctx context.Context, id string) error

	MockGetSecurityGroup        func(ctx context.Context, name, projectID string) (*openstack.SecurityGroup, error)
	MockCreateSecurityGroup     func(ctx context.Context, name, projectID, description string) (*openstack.SecurityGroup, error)
	MockDeleteSecurityGroup     func(ctx context.Context, id string) error
	MockCreateSecurityGroupRule func(ctx context.Context, r openstack.SecurityGroupRule) (*openstack.SecurityGroupRule, error)

	MockGetIdentityProvider      func(ctx context.Context, idpID string) (*openstack.IdentityProvider, error)
	MockCreateIdentityProvider   func(ctx context.Context, idpID string, remoteIDs []string) (*openstack.IdentityProvider, error)
	MockGetMapping               func(ctx context.Context, mappingID string) (*openstack.Mapping, error)
	MockCreateMapping            func(ctx context.Context, mappingID string, rules []openstack.MappingRule) (*openstack.Mapping, error)
	MockUpdateMapping            func(ctx context.Context, mappingID string, rules []openstack.MappingRule) (*openstack.Mapping, error)
	MockGetFederationProtocol    func(ctx context.Context, idpID, protocolID string) (*openstack.FederationProtocol, error)
	MockCreateFederationProtocol func(ctx context.Context, idpID, protocolID, mappingID string) (*openstack.FederationProtocol, error)

	MockGetFlavor              func(ctx context.Context, nameOrID string) (*openstack.Flavor, error)
	MockCreateFlavor           func(ctx context.Context, f openstack.Flavor) (*openstack.Flavor, error)
	MockUpdateFlavorExtraSpecs func(ctx context.Context, id string, extraSpecs map[string]string) error
	MockDeleteFlavor           func(ctx context.Context, id string) error

	MockGetImage            func(ctx context.Context, nameOrID string) (*openstack.Image, error)
	MockCreateImageFromURL  func(ctx context.Context, spec openstack.Image, sourceURL string) (*openstack.Image, error)
	MockUpdateImageMetadata func(ctx context.Context, id string, spec openstack.Image) (*openstack.Image, error)
	MockDeleteImage         func(ctx context.Context, id string) error
}

var _ openstack.Client = &Client{}

func (c *Client) GetDomain(ctx context.Context, nameOrID string) (*openstack.Domain, error) {
	if c.MockGetDomain != nil {
		return c.MockGetDomain(ctx, nameOrID)
	}
	return nil, nil
}

func (c *Client) CreateDomain(ctx context.Context, name, description string, enabled bool) (*openstack.Domain, error) {
	if c.MockCreateDomain != nil {
		return c.MockCreateDomain(ctx, name, description, enabled)
	}
	return &openstack.Domain{Name: name, Description: description, Enabled: enabled}, nil
}

func (c *Client) UpdateDomain(ctx context.Context, id, description string, enabled bool) (*openstack.Domain, error) {
	if c.MockUpdateDomain != nil {
		return c.MockUpdateDomain(ctx, id, description, enabled)
	}
	return &openstack.Domain{ID: id, Description: description, Enabled: enabled}, nil
}

func (c *Client) DeleteDomain(ctx context.Context, id string) error {
	if c.MockDeleteDomain != nil {
		return c.MockDeleteDomain(ctx, id)
	}
	return nil
}

func (c *Client) GetProject(ctx context.Context, name, domainID string) (*openstack.Project, error) {
	if c.MockGetProject != nil {
		return c.MockGetProject(ctx, name, domainID)
	}
	return nil, nil
}

func (c *Client) CreateProject(ctx context.Context, name, domainID, description string, enabled bool) (*openstack.Project, error) {
	if c.MockCreateProject != nil {
		return c.MockCreateProject(ctx, name, domainID, description, enabled)
	}
	return &openstack.Project{Name: name, DomainID: domainID, Description: description, Enabled: enabled}, nil
}

func (c *Client) UpdateProject(ctx context.Context, id, description string, enabled bool) (*openstack.Project, error) {
	if c.MockUpdateProject != nil {
		return c.MockUpdateProject(ctx, id, description, enabled)
	}
	return &openstack.Project{ID: id, Description: description, Enabled: enabled}, nil
}

func (c *Client) DeleteProject(ctx context.Context, id string) error {
	if c.MockDeleteProject != nil {
		return c.MockDeleteProject(ctx, id)
	}
	return nil
}

func (c *Client) GetGroup(ctx context.Context, name, domainID string) (*openstack.Group, error) {
	if c.MockGetGroup != nil {
		return c.MockGetGroup(ctx, name, domainID)
	}
	return nil, nil
}

func (c *Client) GetGroupByID(ctx context.Context, id string) (*openstack.Group, error) {
	if c.MockGetGroupByID != nil {
		return c.MockGetGroupByID(ctx, id)
	}
	return nil, nil
}

func (c *Client) CreateGroup(ctx context.Context, name, domainID, description string) (*openstack.Group, error) {
	if c.MockCreateGroup != nil {
		return c.MockCreateGroup(ctx, name, domainID, description)
	}
	return &openstack.Group{Name: name, DomainID: domainID, Description: description}, nil
}

func (c *Client) DeleteGroup(ctx context.Context, id string) error {
	if c.MockDeleteGroup != nil {
		return c.MockDeleteGroup(ctx, id)
	}
	return nil
}

func (c *Client) GetRole(ctx context.Context, name string) (*openstack.Role, error) {
	if c.MockGetRole != nil {
		return c.MockGetRole(ctx, name)
	}
	return nil, nil
}

func (c *Client) AssignRoleToGroup(ctx context.Context, roleID, groupID, projectID string) error {
	if c.MockAssignRoleToGroup != nil {
		return c.MockAssignRoleToGroup(ctx, roleID, groupID, projectID)
	}
	return nil
}

func (c *Client) RevokeRoleFromGroup(ctx context.Context, roleID, groupID, projectID string) error {
	if c.MockRevokeRoleFromGroup != nil {
		return c.MockRevokeRoleFromGroup(ctx, roleID, groupID, projectID)
	}
	return nil
}

func (c *Client) GetUser(ctx context.Context, name, domainID string) (*openstack.User, error) {
	if c.MockGetUser != nil {
		return c.MockGetUser(ctx, name, domainID)
	}
	return nil, nil
}

func (c *Client) ListGroupUsers(ctx context.Context, groupID string) ([]openstack.User, error) {
	if c.MockListGroupUsers != nil {
		return c.MockListGroupUsers(ctx, groupID)
	}
	return nil, nil
}

func (c *Client) AddUserToGroup(ctx context.Context, groupID, userID string) error {
	if c.MockAddUserToGroup != nil {
		return c.MockAddUserToGroup(ctx, groupID, userID)
	}
	return nil
}

func (c *Client) RemoveUserFromGroup(ctx context.Context, groupID, userID string) error {
	if c.MockRemoveUserFromGroup != nil {
		return c.MockRemoveUserFromGroup(ctx, groupID, userID)
	}
	return nil
}

func (c *Client) AddProjectTag(ctx context.Context, projectID, tag string) error {
	if c.MockAddProjectTag != nil {
		return c.MockAddProjectTag(ctx, projectID, tag)
	}
	return nil
}

func (c *Client) ListProjectsByTag(ctx context.Context, domainID, tag string) ([]openstack.Project, error) {
	if c.MockListProjectsByTag != nil {
		return c.MockListProjectsByTag(ctx, domainID, tag)
	}
	return nil, nil
}

func (c *Client) SetComputeQuotas(ctx context.Context, projectID string, q openstack.ComputeQuotaSet) error {
	if c.MockSetComputeQuotas != nil {
		return c.MockSetComputeQuotas(ctx, projectID, q)
	}
	return nil
}

func (c *Client) SetVolumeQuotas(ctx context.Context, projectID string, q openstack.VolumeQuotaSet) error {
	if c.MockSetVolumeQuotas != nil {
		return c.MockSetVolumeQuotas(ctx, projectID, q)
	}
	return nil
}

func (c *Client) SetNetworkQuotas(ctx context.Context, projectID string, q openstack.NetworkQuotaSet) error {
	if c.MockSetNetworkQuotas != nil {
		return c.MockSetNetworkQuotas(ctx, projectID, q)
	}
	return nil
}

func (c *Client) GetNetwork(ctx context.Context, name, projectID string) (*openstack.Network, error) {
	if c.MockGetNetwork != nil {
		return c.MockGetNetwork(ctx, name, projectID)
	}
	return nil, nil
}

func (c *Client) CreateNetwork(ctx context.Context, name, projectID string) (*openstack.Network, error) {
	if c.MockCreateNetwork != nil {
		return c.MockCreateNetwork(ctx, name, projectID)
	}
	return &openstack.Network{Name: name, ProjectID: projectID}, nil
}

func (c *Client) DeleteNetwork(ctx context.Context, id string) error {
	if c.MockDeleteNetwork != nil {
		return c.MockDeleteNetwork(ctx, id)
	}
	return nil
}

func (c *Client) GetExternalNetwork(ctx context.Context, name string) (*openstack.Network, error) {
	if c.MockGetExternalNetwork != nil {
		return c.MockGetExternalNetwork(ctx, name)
	}
	return nil, nil
}

func (c *Client) GetNetworkByName(ctx context.Context, name string) (*openstack.Network, error) {
	if c.MockGetNetworkByName != nil {
		return c.MockGetNetworkByName(ctx, name)
	}
	return nil, nil
}

func (c *Client) CreateProviderNetwork(ctx context.Context, n openstack.Network) (*openstack.Network, error) {
	if c.MockCreateProviderNetwork != nil {
		return c.MockCreateProviderNetwork(ctx, n)
	}
	return &n, nil
}

func (c *Client) GetSubnet(ctx context.Context, name, networkID string) (*openstack.Subnet, error) {
	if c.MockGetSubnet != nil {
		return c.MockGetSubnet(ctx, name, networkID)
	}
	return nil, nil
}

func (c *Client) CreateSubnet(ctx context.Context, name, networkID, cidr string, enableDHCP bool, dns []string) (*openstack.Subnet, error) {
	if c.MockCreateSubnet != nil {
		return c.MockCreateSubnet(ctx, name, networkID, cidr, enableDHCP, dns)
	}
	return &openstack.Subnet{Name: name, NetworkID: networkID, CIDR: cidr, EnableDHCP: enableDHCP, DNSNameservers: dns}, nil
}

func (c *Client) CreateSubnetWithPool(ctx context.Context, name, networkID, cidr string, enableDHCP bool, dns []string, gatewayIP, allocationStart, allocationEnd string) (*openstack.Subnet, error) {
	if c.MockCreateSubnetWithPool != nil {
		return c.MockCreateSubnetWithPool(ctx, name, networkID, cidr, enableDHCP, dns, gatewayIP, allocationStart, allocationEnd)
	}
	return &openstack.Subnet{Name: name, NetworkID: networkID, CIDR: cidr, EnableDHCP: enableDHCP, DNSNameservers: dns, GatewayIP: gatewayIP, AllocationStart: allocationStart, AllocationEnd: allocationEnd}, nil
}

func (c *Client) DeleteSubnet(ctx context.Context, id string) error {
	if c.MockDeleteSubnet != nil {
		return c.MockDeleteSubnet(ctx, id)
	}
	return nil
}

func (c *Client) GetRouter(ctx context.Context, name, projectID string) (*openstack.Router, error) {
	if c.MockGetRouter != nil {
		return c.MockGetRouter(ctx, name, projectID)
	}
	return nil, nil
}

func (c *Client) CreateRouter(ctx context.Context, name, projectID, externalNetworkID string, enableSNAT bool) (*openstack.Router, error) {
	if c.MockCreateRouter != nil {
		return c.MockCreateRouter(ctx, name, projectID, externalNetworkID, enableSNAT)
	}
	return &openstack.Router{Name: name, ProjectID: projectID, ExternalNetworkID: externalNetworkID, EnableSNAT: enableSNAT}, nil
}

func (c *Client) AddRouterInterface(ctx context.Context, routerID, subnetID string) error {
	if c.MockAddRouterInterface != nil {
		return c.MockAddRouterInterface(ctx, routerID, subnetID)
	}
	return nil
}

func (c *Client) RemoveRouterInterface(ctx context.Context, routerID, subnetID string) error {
	if c.MockRemoveRouterInterface != nil {
		return c.MockRemoveRouterInterface(ctx, routerID, subnetID)
	}
	return nil
}

func (c *Client) DeleteRouter(ctx context.Context, id string) error {
	if c.MockDeleteRouter != nil {
		return c.MockDeleteRouter(ctx, id)
	}
	return nil
}

func (c *Client) GetSecurityGroup(ctx context.Context, name, projectID string) (*openstack.SecurityGroup, error) {
	if c.MockGetSecurityGroup != nil {
		return c.MockGetSecurityGroup(ctx, name, projectID)
	}
	return nil, nil
}

func (c *Client) CreateSecurityGroup(ctx context.Context, name, projectID, description string) (*openstack.SecurityGroup, error) {
	if c.MockCreateSecurityGroup != nil {
		return c.MockCreateSecurityGroup(ctx, name, projectID, description)
	}
	return &openstack.SecurityGroup{Name: name, ProjectID: projectID, Description: description}, nil
}

func (c *Client) DeleteSecurityGroup(ctx context.Context, id string) error {
	if c.MockDeleteSecurityGroup != nil {
		return c.MockDeleteSecurityGroup(ctx, id)
	}
	return nil
}

func (c *Client) CreateSecurityGroupRule(ctx context.Context, r openstack.SecurityGroupRule) (*openstack.SecurityGroupRule, error) {
	if c.MockCreateSecurityGroupRule != nil {
		return c.MockCreateSecurityGroupRule(ctx, r)
	}
	return &r, nil
}

func (c *Client) GetIdentityProvider(ctx context.Context, idpID string) (*openstack.IdentityProvider, error) {
	if c.MockGetIdentityProvider != nil {
		return c.MockGetIdentityProvider(ctx, idpID)
	}
	return nil, nil
}

func (c *Client) CreateIdentityProvider(ctx context.Context, idpID string, remoteIDs []string) (*openstack.IdentityProvider, error) {
	if c.MockCreateIdentityProvider != nil {
		return c.MockCreateIdentityProvider(ctx, idpID, remoteIDs)
	}
	return &openstack.IdentityProvider{ID: idpID, RemoteIDs: remoteIDs, Enabled: true}, nil
}

func (c *Client) GetMapping(ctx context.Context, mappingID string) (*openstack.Mapping, error) {
	if c.MockGetMapping != nil {
		return c.MockGetMapping(ctx, mappingID)
	}
	return nil, nil
}

func (c *Client) CreateMapping(ctx context.Context, mappingID string, rules []openstack.MappingRule) (*openstack.Mapping, error) {
	if c.MockCreateMapping != nil {
		return c.MockCreateMapping(ctx, mappingID, rules)
	}
	return &openstack.Mapping{ID: mappingID, Rules: rules}, nil
}

func (c *Client) UpdateMapping(ctx context.Context, mappingID string, rules []openstack.MappingRule) (*openstack.Mapping, error) {
	if c.MockUpdateMapping != nil {
		return c.MockUpdateMapping(ctx, mappingID, rules)
	}
	return &openstack.Mapping{ID: mappingID, Rules: rules}, nil
}

func (c *Client) GetFederationProtocol(ctx context.Context, idpID, protocolID string) (*openstack.FederationProtocol, error) {
	if c.MockGetFederationProtocol != nil {
		return c.MockGetFederationProtocol(ctx, idpID, protocolID)
	}
	return nil, nil
}

func (c *Client) CreateFederationProtocol(ctx context.Context, idpID, protocolID, mappingID string) (*openstack.FederationProtocol, error) {
	if c.MockCreateFederationProtocol != nil {
		return c.MockCreateFederationProtocol(ctx, idpID, protocolID, mappingID)
	}
	return &openstack.FederationProtocol{ID: protocolID, IdPID: idpID, MappingID: mappingID}, nil
}

func (c *Client) GetFlavor(ctx context.Context, nameOrID string) (*openstack.Flavor, error) {
	if c.MockGetFlavor != nil {
		return c.MockGetFlavor(ctx, nameOrID)
	}
	return nil, nil
}

func (c *Client) CreateFlavor(ctx context.Context, f openstack.Flavor) (*openstack.Flavor, error) {
	if c.MockCreateFlavor != nil {
		return c.MockCreateFlavor(ctx, f)
	}
	return &f, nil
}

func (c *Client) UpdateFlavorExtraSpecs(ctx context.Context, id string, extraSpecs map[string]string) error {
	if c.MockUpdateFlavorExtraSpecs != nil {
		return c.MockUpdateFlavorExtraSpecs(ctx, id, extraSpecs)
	}
	return nil
}

func (c *Client) DeleteFlavor(ctx context.Context, id string) error {
	if c.MockDeleteFlavor != nil {
		return c.MockDeleteFlavor(ctx, id)
	}
	return nil
}

func (c *Client) GetImage(ctx context.Context, nameOrID string) (*openstack.Image, error) {
	if c.MockGetImage != nil {
		return c.MockGetImage(ctx, nameOrID)
	}
	return nil, nil
}

func (c *Client) CreateImageFromURL(ctx context.Context, spec openstack.Image, sourceURL string) (*openstack.Image, error) {
	if c.MockCreateImageFromURL != nil {
		return c.MockCreateImageFromURL(ctx, spec, sourceURL)
	}
	return &spec, nil
}

func (c *Client) UpdateImageMetadata(ctx context.Context, id string, spec openstack.Image) (*openstack.Image, error) {
	if c.MockUpdateImageMetadata != nil {
		return c.MockUpdateImageMetadata(ctx, id, spec)
	}
	return &spec, nil
}

func (c *Client) DeleteImage(ctx context.Context, id string) error {
	if c.MockDeleteImage != nil {
		return c.MockDeleteImage(ctx, id)
	}
	return nil
}
