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

// Package resources holds one small package per OpenStack primitive the
// operator manages (domain, flavor, image, providernetwork, project,
// group, network, securitygroup, quota, rolebinding, federation); network
// covers a tenant network's subnet and router. Most export Ensure, which
// finds-by-name-and-scope first and only creates on a miss, and Delete,
// which is a no-op when the remote object is already gone. quota and
// rolebinding export Apply instead, and federation exposes its operations
// on a Reconciler. There is no shared "generic ensure"
// helper: finder and creator signatures differ enough per kind that
// sharing one would cost more in indirection than it saves in lines.
package resources
