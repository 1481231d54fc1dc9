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

package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// ComputeQuota describes the subset of Nova quota fields this operator sets.
type ComputeQuota struct {
	// +optional
	Instances *int64 `json:"instances,omitempty"`
	// +optional
	Cores *int64 `json:"cores,omitempty"`
	// +optional
	RAMMB *int64 `json:"ramMB,omitempty"`
	// +optional
	ServerGroups *int64 `json:"serverGroups,omitempty"`
	// +optional
	ServerGroupMembers *int64 `json:"serverGroupMembers,omitempty"`
}

// StorageQuota describes the subset of Cinder quota fields this operator sets.
type StorageQuota struct {
	// +optional
	Volumes *int64 `json:"volumes,omitempty"`
	// +optional
	VolumesGB *int64 `json:"volumesGB,omitempty"`
	// +optional
	Snapshots *int64 `json:"snapshots,omitempty"`
	// +optional
	Backups *int64 `json:"backups,omitempty"`
	// +optional
	BackupsGB *int64 `json:"backupsGB,omitempty"`
}

// NetworkQuota describes the subset of Neutron quota fields this operator sets.
type NetworkQuota struct {
	// +optional
	FloatingIPs *int64 `json:"floatingIps,omitempty"`
	// +optional
	Networks *int64 `json:"networks,omitempty"`
	// +optional
	Subnets *int64 `json:"subnets,omitempty"`
	// +optional
	Routers *int64 `json:"routers,omitempty"`
	// +optional
	Ports *int64 `json:"ports,omitempty"`
	// +optional
	SecurityGroups *int64 `json:"securityGroups,omitempty"`
	// +optional
	SecurityGroupRules *int64 `json:"securityGroupRules,omitempty"`
}

// ProjectQuotas groups the three independently-applied quota sub-maps.
type ProjectQuotas struct {
	// +optional
	Compute *ComputeQuota `json:"compute,omitempty"`
	// +optional
	Storage *StorageQuota `json:"storage,omitempty"`
	// +optional
	Network *NetworkQuota `json:"network,omitempty"`
}

// RouterSpec declares an optional router attached to a tenant network.
type RouterSpec struct {
	// ExternalNetwork is the name of the external network to use as the
	// router's gateway.
	// +optional
	ExternalNetwork string `json:"externalNetwork,omitempty"`

	// SNAT enables source NAT on the router's external gateway.
	// +optional
	// +kubebuilder:default=true
	SNAT bool `json:"snat,omitempty"`
}

// ProjectNetworkSpec declares one tenant network, its subnet and optional
// router.
type ProjectNetworkSpec struct {
	Name string `json:"name"`
	CIDR string `json:"cidr"`

	// +optional
	// +kubebuilder:default=true
	DHCP bool `json:"dhcp,omitempty"`

	// +optional
	DNS []string `json:"dns,omitempty"`

	// +optional
	Router *RouterSpec `json:"router,omitempty"`
}

// SecurityGroupRuleSpec is one ingress/egress rule in a security group.
type SecurityGroupRuleSpec struct {
	Direction string `json:"direction"`

	// +optional
	Protocol string `json:"protocol,omitempty"`
	// +optional
	PortRangeMin *int32 `json:"portRangeMin,omitempty"`
	// +optional
	PortRangeMax *int32 `json:"portRangeMax,omitempty"`
	// +optional
	RemoteIPPrefix string `json:"remoteIpPrefix,omitempty"`

	// RemoteGroupName references another security group by name, within
	// the same CR, that this rule should allow traffic from/to.
	// +optional
	RemoteGroupName string `json:"remoteGroupName,omitempty"`

	// +optional
	// +kubebuilder:default=IPv4
	Ethertype string `json:"ethertype,omitempty"`
}

// SecurityGroupSpec declares one security group and its rule graph.
type SecurityGroupSpec struct {
	Name string `json:"name"`

	// +optional
	Description string `json:"description,omitempty"`

	// +optional
	Rules []SecurityGroupRuleSpec `json:"rules,omitempty"`
}

// RoleBindingSpec assigns a role to a set of users and/or groups on the
// project, and always to the project's own user-group.
type RoleBindingSpec struct {
	Role string `json:"role"`

	// +optional
	Users []string `json:"users,omitempty"`

	// +optional
	Groups []string `json:"groups,omitempty"`

	// UserDomain is the domain explicit Users are looked up in.
	// +optional
	UserDomain string `json:"userDomain,omitempty"`

	// GroupDomain is the domain explicit Groups are looked up in.
	// +optional
	GroupDomain string `json:"groupDomain,omitempty"`
}

// ProjectSpec is the desired state of an OpenStack tenant.
type ProjectSpec struct {
	Name   string `json:"name"`
	Domain string `json:"domain"`

	// +optional
	Description string `json:"description,omitempty"`

	// +optional
	// +kubebuilder:default=true
	Enabled bool `json:"enabled,omitempty"`

	// +optional
	Quotas *ProjectQuotas `json:"quotas,omitempty"`

	// +optional
	Networks []ProjectNetworkSpec `json:"networks,omitempty"`

	// +optional
	SecurityGroups []SecurityGroupSpec `json:"securityGroups,omitempty"`

	// +optional
	RoleBindings []RoleBindingSpec `json:"roleBindings,omitempty"`

	// +optional
	FederationRef *FederationConfigRef `json:"federationRef,omitempty"`
}

// ProjectNetworkStatus reports the remote ids created for one tenant network.
type ProjectNetworkStatus struct {
	Name      string `json:"name"`
	NetworkID string `json:"networkId"`
	SubnetID  string `json:"subnetId"`
	// +optional
	RouterID string `json:"routerId,omitempty"`
}

// ProjectSecurityGroupStatus reports the remote id of one created security group.
type ProjectSecurityGroupStatus struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// ProjectStatus is the observed state of an OpenStack tenant.
type ProjectStatus struct {
	CommonStatus `json:",inline"`

	// +optional
	ProjectID string `json:"projectId,omitempty"`
	// +optional
	GroupID string `json:"groupId,omitempty"`

	// +optional
	Networks []ProjectNetworkStatus `json:"networks,omitempty"`
	// +optional
	SecurityGroups []ProjectSecurityGroupStatus `json:"securityGroups,omitempty"`
}

// +kubebuilder:object:root=true
// +genclient

// A Project is a namespace-scoped CR describing an OpenStack tenant: its
// quotas, tenant networks, security groups, role bindings and optional
// OIDC federation mapping.
//
// +kubebuilder:subresource:status
// +kubebuilder:printcolumn:name="SYNCED",type="string",JSONPath=".status.conditions[?(@.type=='Synced')].status"
// +kubebuilder:printcolumn:name="READY",type="string",JSONPath=".status.conditions[?(@.type=='Ready')].status"
// +kubebuilder:printcolumn:name="PROJECT-ID",type="string",JSONPath=".status.projectId"
// +kubebuilder:printcolumn:name="AGE",type="date",JSONPath=".metadata.creationTimestamp"
// +kubebuilder:resource:path=openstackprojects,scope=Namespaced,categories=openstack,shortName=osproject
type Project struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   ProjectSpec   `json:"spec,omitempty"`
	Status ProjectStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

// ProjectList contains a list of Project.
type ProjectList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []Project `json:"items"`
}
