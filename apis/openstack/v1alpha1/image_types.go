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

// ImageSource describes where to fetch image bytes from for a managed
// (non-external) image.
type ImageSource struct {
	URL string `json:"url"`
}

// ImageContentSpec describes the format of the image payload.
type ImageContentSpec struct {
	// +optional
	// +kubebuilder:default=qcow2
	DiskFormat string `json:"diskFormat,omitempty"`

	// +optional
	// +kubebuilder:default=bare
	ContainerFormat string `json:"containerFormat,omitempty"`

	// Source is required unless Spec.External is true.
	// +optional
	Source *ImageSource `json:"source,omitempty"`
}

// ImageSpec is the desired state of an OpenStack Glance image.
type ImageSpec struct {
	Name string `json:"name"`

	// +optional
	// +kubebuilder:default=private
	// +kubebuilder:validation:Enum=public;private;shared;community
	Visibility string `json:"visibility,omitempty"`

	// +optional
	Protected bool `json:"protected,omitempty"`

	// +optional
	Tags []string `json:"tags,omitempty"`

	// +optional
	Properties map[string]string `json:"properties,omitempty"`

	// +optional
	Content ImageContentSpec `json:"content,omitempty"`

	// External means the operator never creates or deletes this image; it
	// only asserts metadata on a pre-existing one.
	// +optional
	External bool `json:"external,omitempty"`
}

// ImageStatus is the observed state of an OpenStack Glance image.
type ImageStatus struct {
	CommonStatus `json:",inline"`

	// +optional
	ImageID string `json:"imageId,omitempty"`

	// +optional
	UploadStatus string `json:"uploadStatus,omitempty"`

	// +optional
	Checksum string `json:"checksum,omitempty"`

	// +optional
	SizeBytes int64 `json:"sizeBytes,omitempty"`
}

// +kubebuilder:object:root=true
// +genclient
// +genclient:nonNamespaced

// An Image is a cluster-scoped CR describing an OpenStack Glance image,
// either operator-managed (web-download import) or externally provided.
//
// +kubebuilder:subresource:status
// +kubebuilder:printcolumn:name="READY",type="string",JSONPath=".status.conditions[?(@.type=='Ready')].status"
// +kubebuilder:printcolumn:name="UPLOAD",type="string",JSONPath=".status.uploadStatus"
// +kubebuilder:printcolumn:name="IMAGE-ID",type="string",JSONPath=".status.imageId"
// +kubebuilder:printcolumn:name="AGE",type="date",JSONPath=".metadata.creationTimestamp"
// +kubebuilder:resource:path=openstackimages,scope=Cluster,categories=openstack,shortName=osimage
type Image struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   ImageSpec   `json:"spec,omitempty"`
	Status ImageStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

// ImageList contains a list of Image.
type ImageList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []Image `json:"items"`
}
