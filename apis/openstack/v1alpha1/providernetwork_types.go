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

// ProviderSubnetSpec declares one subnet of a provider network.
type ProviderSubnetSpec struct {
	Name string `json:"name"`
	CIDR string `json:"cidr"`

	// +optional
	// +kubebuilder:default=true
	DHCP bool `json:"dhcp,omitempty"`

	// +optional
	GatewayIP string `json:"gatewayIp,omitempty"`

	// +optional
	AllocationPoolStart string `json:"allocationPoolStart,omitempty"`
	// +optional
	AllocationPoolEnd string `json:"allocationPoolEnd,omitempty"`
}

// ProviderNetworkSpec is the desired state of an admin-created, physically
// backed network. Type/physical-network/segmentation-id/external/shared
// are immutable once created.
type ProviderNetworkSpec struct {
	Name string `json:"name"`

	// +kubebuilder:validation:Enum=flat;vlan;vxlan;gre;geneve
	ProviderNetworkType string `json:"providerNetworkType"`

	// +optional
	ProviderPhysicalNetwork string `json:"providerPhysicalNetwork,omitempty"`

	// +optional
	ProviderSegmentationID *int64 `json:"providerSegmentationId,omitempty"`

	// +optional
	External bool `json:"external,omitempty"`

	// +optional
	Shared bool `json:"shared,omitempty"`

	// +optional
	Subnets []ProviderSubnetSpec `json:"subnets,omitempty"`
}

// ProviderNetworkSubnetStatus reports the remote id of one created subnet.
type ProviderNetworkSubnetStatus struct {
	Name     string `json:"name"`
	SubnetID string `json:"subnetId"`
}

// ProviderNetworkStatus is the observed state of a provider network.
type ProviderNetworkStatus struct {
	CommonStatus `json:",inline"`

	// +optional
	NetworkID string `json:"networkId,omitempty"`

	// +optional
	Subnets []ProviderNetworkSubnetStatus `json:"subnets,omitempty"`
}

// +kubebuilder:object:root=true
// +genclient
// +genclient:nonNamespaced

// A ProviderNetwork is a cluster-scoped CR describing an admin-created
// network backed by physical infrastructure.
//
// +kubebuilder:subresource:status
// +kubebuilder:printcolumn:name="READY",type="string",JSONPath=".status.conditions[?(@.type=='Ready')].status"
// +kubebuilder:printcolumn:name="NETWORK-ID",type="string",JSONPath=".status.networkId"
// +kubebuilder:printcolumn:name="AGE",type="date",JSONPath=".metadata.creationTimestamp"
// +kubebuilder:resource:path=openstacknetworks,scope=Cluster,categories=openstack,shortName=osprovidernetwork
type ProviderNetwork struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   ProviderNetworkSpec   `json:"spec,omitempty"`
	Status ProviderNetworkStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

// ProviderNetworkList contains a list of ProviderNetwork.
type ProviderNetworkList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []ProviderNetwork `json:"items"`
}
