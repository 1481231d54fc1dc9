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

// Domain is the subset of a Keystone domain the operator cares about.
type Domain struct {
	ID          string
	Name        string
	Description string
	Enabled     bool
}

// Project is the subset of a Keystone project the operator cares about.
type Project struct {
	ID          string
	Name        string
	DomainID    string
	Description string
	Enabled     bool
}

// Group is a Keystone group used to bind roles to a project's users.
type Group struct {
	ID          string
	Name        string
	DomainID    string
	Description string
}

// Role is a named Keystone role, e.g. "member" or "admin".
type Role struct {
	ID   string
	Name string
}

// User is a Keystone user, as referenced from a role binding.
type User struct {
	ID       string
	Name     string
	DomainID string
}

// ComputeQuotaSet mirrors the nova quota fields the operator manages.
type ComputeQuotaSet struct {
	Instances          *int64
	Cores              *int64
	RAMMB              *int64
	ServerGroups       *int64
	ServerGroupMembers *int64
}

// VolumeQuotaSet mirrors the cinder quota fields the operator manages.
type VolumeQuotaSet struct {
	Volumes   *int64
	VolumesGB *int64
	Snapshots *int64
	Backups   *int64
	BackupsGB *int64
}

// NetworkQuotaSet mirrors the neutron quota fields the operator manages.
type NetworkQuotaSet struct {
	FloatingIPs        *int64
	Networks           *int64
	Subnets            *int64
	Routers            *int64
	Ports              *int64
	SecurityGroups     *int64
	SecurityGroupRules *int64
}

// Network is a neutron network.
type Network struct {
	ID                      string
	Name                    string
	ProjectID               string
	External                bool
	Shared                  bool
	ProviderNetworkType     string
	ProviderPhysicalNetwork string
	ProviderSegmentationID  int
}

// Subnet is a neutron subnet.
type Subnet struct {
	ID              string
	Name            string
	NetworkID       string
	CIDR            string
	GatewayIP       string
	EnableDHCP      bool
	DNSNameservers  []string
	AllocationStart string
	AllocationEnd   string
}

// Router is a neutron router.
type Router struct {
	ID                 string
	Name               string
	ProjectID          string
	ExternalNetworkID  string
	EnableSNAT         bool
	InterfaceSubnetIDs []string
}

// SecurityGroup is a neutron security group.
type SecurityGroup struct {
	ID          string
	Name        string
	ProjectID   string
	Description string
}

// SecurityGroupRule is a single rule within a security group.
type SecurityGroupRule struct {
	ID              string
	SecurityGroupID string
	Direction       string
	Protocol        string
	PortRangeMin    *int
	PortRangeMax    *int
	RemoteIPPrefix  string
	RemoteGroupID   string
	Ethertype       string
}

// IdentityProvider is a Keystone federation identity provider.
type IdentityProvider struct {
	ID        string
	RemoteIDs []string
	Enabled   bool
}

// MappingRule is one rule of a federation attribute mapping, expressed as
// the generic JSON structure Keystone expects.
type MappingRule map[string]interface{}

// Mapping is a Keystone federation attribute mapping.
type Mapping struct {
	ID    string
	Rules []MappingRule
}

// FederationProtocol binds a mapping to an identity provider under a
// protocol name (e.g. "saml2", "openid").
type FederationProtocol struct {
	ID        string
	IdPID     string
	MappingID string
}

// Flavor is a nova compute flavor.
type Flavor struct {
	ID         string
	Name       string
	VCPUs      int
	RAMMB      int
	DiskGB     int
	Ephemeral  int
	Swap       int
	IsPublic   bool
	ExtraSpecs map[string]string
}

// Image is a glance image.
type Image struct {
	ID              string
	Name            string
	Visibility      string
	Protected       bool
	Tags            []string
	Properties      map[string]string
	DiskFormat      string
	ContainerFormat string
	Status          string
	Checksum        string
	SizeBytes       int64
}
