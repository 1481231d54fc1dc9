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
	"reflect"

	"k8s.io/apimachinery/pkg/runtime/schema"
	"sigs.k8s.io/controller-runtime/pkg/scheme"
)

// Package type metadata.
const (
	Group   = "sunet.se"
	Version = "v1alpha1"
)

var (
	// SchemeGroupVersion is group version used to register these objects.
	SchemeGroupVersion = schema.GroupVersion{Group: Group, Version: Version}

	// SchemeBuilder is used to add go types to the GroupVersionKind scheme.
	SchemeBuilder = &scheme.Builder{GroupVersion: SchemeGroupVersion}

	// AddToScheme adds all registered types to the scheme.
	AddToScheme = SchemeBuilder.AddToScheme
)

// Project type metadata.
var (
	ProjectKind             = reflect.TypeOf(Project{}).Name()
	ProjectGroupKind        = schema.GroupKind{Group: Group, Kind: ProjectKind}.String()
	ProjectKindAPIVersion   = ProjectKind + "." + SchemeGroupVersion.String()
	ProjectGroupVersionKind = SchemeGroupVersion.WithKind(ProjectKind)
)

// Domain type metadata.
var (
	DomainKind             = reflect.TypeOf(Domain{}).Name()
	DomainGroupKind        = schema.GroupKind{Group: Group, Kind: DomainKind}.String()
	DomainKindAPIVersion   = DomainKind + "." + SchemeGroupVersion.String()
	DomainGroupVersionKind = SchemeGroupVersion.WithKind(DomainKind)
)

// Flavor type metadata.
var (
	FlavorKind             = reflect.TypeOf(Flavor{}).Name()
	FlavorGroupKind        = schema.GroupKind{Group: Group, Kind: FlavorKind}.String()
	FlavorKindAPIVersion   = FlavorKind + "." + SchemeGroupVersion.String()
	FlavorGroupVersionKind = SchemeGroupVersion.WithKind(FlavorKind)
)

// Image type metadata.
var (
	ImageKind             = reflect.TypeOf(Image{}).Name()
	ImageGroupKind        = schema.GroupKind{Group: Group, Kind: ImageKind}.String()
	ImageKindAPIVersion   = ImageKind + "." + SchemeGroupVersion.String()
	ImageGroupVersionKind = SchemeGroupVersion.WithKind(ImageKind)
)

// ProviderNetwork type metadata.
var (
	ProviderNetworkKind             = reflect.TypeOf(ProviderNetwork{}).Name()
	ProviderNetworkGroupKind        = schema.GroupKind{Group: Group, Kind: ProviderNetworkKind}.String()
	ProviderNetworkKindAPIVersion   = ProviderNetworkKind + "." + SchemeGroupVersion.String()
	ProviderNetworkGroupVersionKind = SchemeGroupVersion.WithKind(ProviderNetworkKind)
)

func init() {
	SchemeBuilder.Register(&Project{}, &ProjectList{})
	SchemeBuilder.Register(&Domain{}, &DomainList{})
	SchemeBuilder.Register(&Flavor{}, &FlavorList{})
	SchemeBuilder.Register(&Image{}, &ImageList{})
	SchemeBuilder.Register(&ProviderNetwork{}, &ProviderNetworkList{})
}
