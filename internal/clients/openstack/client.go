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

// Package openstack wraps the OpenStack Identity, Compute, Block Storage,
// Image and Network APIs behind a single rate limited, metrics-instrumented
// Client interface. Every method retries transient failures with
// exponential backoff before surfacing an error to its caller.
package openstack

import (
	"context"

	"github.com/gophercloud/gophercloud/v2"
	"github.com/gophercloud/gophercloud/v2/openstack"
	"github.com/gophercloud/gophercloud/v2/openstack/config"
	"github.com/gophercloud/gophercloud/v2/openstack/config/clouds"
)

// Client is the full surface the resource reconcilers need from an
// OpenStack cloud. A single implementation backs production use; tests use
// the hand-written function-field fake under ./fake.
type Client interface {
	// Identity

	GetDomain(ctx context.Context, nameOrID string) (*Domain, error)
	CreateDomain(ctx context.Context, name, description string, enabled bool) (*Domain, error)
	UpdateDomain(ctx context.Context, id, description string, enabled bool) (*Domain, error)
	DeleteDomain(ctx context.Context, id string) error
	GetProject(ctx context.Context, name, domainID string) (*Project, error)
	CreateProject(ctx context.Context, name, domainID, description string, enabled bool) (*Project, error)
	UpdateProject(ctx context.Context, id, description string, enabled bool) (*Project, error)
	DeleteProject(ctx context.Context, id string) error

	GetGroup(ctx context.Context, name, domainID string) (*Group, error)
	GetGroupByID(ctx context.Context, id string) (*Group, error)
	CreateGroup(ctx context.Context, name, domainID, description string) (*Group, error)
	DeleteGroup(ctx context.Context, id string) error

	GetRole(ctx context.Context, name string) (*Role, error)
	AssignRoleToGroup(ctx context.Context, roleID, groupID, projectID string) error
	RevokeRoleFromGroup(ctx context.Context, roleID, groupID, projectID string) error

	GetUser(ctx context.Context, name, domainID string) (*User, error)
	ListGroupUsers(ctx context.Context, groupID string) ([]User, error)
	AddUserToGroup(ctx context.Context, groupID, userID string) error
	RemoveUserFromGroup(ctx context.Context, groupID, userID string) error

	// AddProjectTag attaches the legacy managed-by marker to a project.
	AddProjectTag(ctx context.Context, projectID, tag string) error
	// ListProjectsByTag lists every project in domainID carrying tag, used
	// by garbage collection to find operator-managed projects whose CR no
	// longer exists.
	ListProjectsByTag(ctx context.Context, domainID, tag string) ([]Project, error)

	// Quotas

	SetComputeQuotas(ctx context.Context, projectID string, q ComputeQuotaSet) error
	SetVolumeQuotas(ctx context.Context, projectID string, q VolumeQuotaSet) error
	SetNetworkQuotas(ctx context.Context, projectID string, q NetworkQuotaSet) error

	// Networking

	GetNetwork(ctx context.Context, name, projectID string) (*Network, error)
	CreateNetwork(ctx context.Context, name, projectID string) (*Network, error)
	DeleteNetwork(ctx context.Context, id string) error
	GetExternalNetwork(ctx context.Context, name string) (*Network, error)
	GetNetworkByName(ctx context.Context, name string) (*Network, error)
	CreateProviderNetwork(ctx context.Context, n Network) (*Network, error)

	GetSubnet(ctx context.Context, name, networkID string) (*Subnet, error)
	CreateSubnet(ctx context.Context, name, networkID, cidr string, enableDHCP bool, dns []string) (*Subnet, error)
	CreateSubnetWithPool(ctx context.Context, name, networkID, cidr string, enableDHCP bool, dns []string, gatewayIP, allocationStart, allocationEnd string) (*Subnet, error)
	DeleteSubnet(ctx context.Context, id string) error

	GetRouter(ctx context.Context, name, projectID string) (*Router, error)
	CreateRouter(ctx context.Context, name, projectID, externalNetworkID string, enableSNAT bool) (*Router, error)
	AddRouterInterface(ctx context.Context, routerID, subnetID string) error
	RemoveRouterInterface(ctx context.Context, routerID, subnetID string) error
	DeleteRouter(ctx context.Context, id string) error

	GetSecurityGroup(ctx context.Context, name, projectID string) (*SecurityGroup, error)
	CreateSecurityGroup(ctx context.Context, name, projectID, description string) (*SecurityGroup, error)
	DeleteSecurityGroup(ctx context.Context, id string) error
	CreateSecurityGroupRule(ctx context.Context, r SecurityGroupRule) (*SecurityGroupRule, error)

	// Federation

	GetIdentityProvider(ctx context.Context, idpID string) (*IdentityProvider, error)
	CreateIdentityProvider(ctx context.Context, idpID string, remoteIDs []string) (*IdentityProvider, error)
	GetMapping(ctx context.Context, mappingID string) (*Mapping, error)
	CreateMapping(ctx context.Context, mappingID string, rules []MappingRule) (*Mapping, error)
	UpdateMapping(ctx context.Context, mappingID string, rules []MappingRule) (*Mapping, error)
	GetFederationProtocol(ctx context.Context, idpID, protocolID string) (*FederationProtocol, error)
	CreateFederationProtocol(ctx context.Context, idpID, protocolID, mappingID string) (*FederationProtocol, error)

	// Flavors

	GetFlavor(ctx context.Context, nameOrID string) (*Flavor, error)
	CreateFlavor(ctx context.Context, f Flavor) (*Flavor, error)
	UpdateFlavorExtraSpecs(ctx context.Context, id string, extraSpecs map[string]string) error
	DeleteFlavor(ctx context.Context, id string) error

	// Images

	GetImage(ctx context.Context, nameOrID string) (*Image, error)
	CreateImageFromURL(ctx context.Context, spec Image, sourceURL string) (*Image, error)
	UpdateImageMetadata(ctx context.Context, id string, spec Image) (*Image, error)
	DeleteImage(ctx context.Context, id string) error
}

// Config configures how the client authenticates and how aggressively it
// is allowed to call the remote APIs.
type Config struct {
	// CloudName selects a stanza from clouds.yaml, mirroring OS_CLOUD.
	CloudName string

	// CloudsYAMLPath overrides the default clouds.yaml search path.
	CloudsYAMLPath string

	// MaxConcurrentCalls bounds in-flight requests across all services.
	// Zero selects the default of 10.
	MaxConcurrentCalls int

	// RequestsPerSecond bounds the average call rate across all services.
	// Zero selects the default of 20.
	RequestsPerSecond float64

	// MaxRetries bounds the number of retries per call on a transient
	// error. Zero selects the default of 3.
	MaxRetries int
}

func (c Config) withDefaults() Config {
	if c.MaxConcurrentCalls <= 0 {
		c.MaxConcurrentCalls = 10
	}
	if c.RequestsPerSecond <= 0 {
		c.RequestsPerSecond = 20
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = 3
	}
	return c
}

// client is the production Client backed by gophercloud service clients.
type client struct {
	identity *gophercloud.ServiceClient
	compute  *gophercloud.ServiceClient
	volume   *gophercloud.ServiceClient
	network  *gophercloud.ServiceClient
	image    *gophercloud.ServiceClient

	limiter *rateLimiter
}

// NewClient authenticates against the cloud named in cfg and returns a
// Client backed by live Identity, Compute, Block Storage, Network and
// Image service clients.
func NewClient(ctx context.Context, cfg Config) (Client, error) {
	cfg = cfg.withDefaults()

	parseOpts := []clouds.ParseOption{clouds.WithCloudName(cfg.CloudName)}
	if cfg.CloudsYAMLPath != "" {
		parseOpts = append(parseOpts, clouds.WithLocations(cfg.CloudsYAMLPath))
	}

	ao, eo, tlsConfig, err := clouds.Parse(parseOpts...)
	if err != nil {
		return nil, err
	}

	providerClient, err := config.NewProviderClient(ctx, ao, config.WithTLSConfig(tlsConfig))
	if err != nil {
		return nil, err
	}

	identitySC, err := openstack.NewIdentityV3(providerClient, eo)
	if err != nil {
		return nil, err
	}
	computeSC, err := openstack.NewComputeV2(providerClient, eo)
	if err != nil {
		return nil, err
	}
	volumeSC, err := openstack.NewBlockStorageV3(providerClient, eo)
	if err != nil {
		return nil, err
	}
	networkSC, err := openstack.NewNetworkV2(providerClient, eo)
	if err != nil {
		return nil, err
	}
	imageSC, err := openstack.NewImageV2(providerClient, eo)
	if err != nil {
		return nil, err
	}

	return &client{
		identity: identitySC,
		compute:  computeSC,
		volume:   volumeSC,
		network:  networkSC,
		image:    imageSC,
		limiter:  newRateLimiter(cfg.MaxConcurrentCalls, cfg.RequestsPerSecond, cfg.MaxRetries),
	}, nil
}
