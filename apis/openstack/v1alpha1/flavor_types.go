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

// FlavorSpec is the desired state of an OpenStack compute flavor. All
// fields except ExtraSpecs are immutable at the remote once created.
type FlavorSpec struct {
	Name string `json:"name"`

	VCPUs int64 `json:"vcpus"`
	RAM   int64 `json:"ram"`
	Disk  int64 `json:"disk"`

	// +optional
	Ephemeral int64 `json:"ephemeral,omitempty"`
	// +optional
	Swap int64 `json:"swap,omitempty"`

	// +optional
	// +kubebuilder:default=true
	IsPublic bool `json:"isPublic,omitempty"`

	// +optional
	ExtraSpecs map[string]string `json:"extraSpecs,omitempty"`
}

// FlavorStatus is the observed state of an OpenStack compute flavor.
type FlavorStatus struct {
	CommonStatus `json:",inline"`

	// +optional
	FlavorID string `json:"flavorId,omitempty"`
}

// +kubebuilder:object:root=true
// +genclient
// +genclient:nonNamespaced

// A Flavor is a cluster-scoped CR describing an OpenStack compute shape.
//
// +kubebuilder:subresource:status
// +kubebuilder:printcolumn:name="READY",type="string",JSONPath=".status.conditions[?(@.type=='Ready')].status"
// +kubebuilder:printcolumn:name="FLAVOR-ID",type="string",JSONPath=".status.flavorId"
// +kubebuilder:printcolumn:name="AGE",type="date",JSONPath=".metadata.creationTimestamp"
// +kubebuilder:resource:path=openstackflavors,scope=Cluster,categories=openstack,shortName=osflavor
type Flavor struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   FlavorSpec   `json:"spec,omitempty"`
	Status FlavorStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

// FlavorList contains a list of Flavor.
type FlavorList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []Flavor `json:"items"`
}
