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

package resources

import (
	"context"
	"strings"

	osclient "github.com/sunet/openstack-operator/internal/clients/openstack"
)

// ManagedByTag is attached to every project this operator creates, on top
// of the registry record, so that a human auditing the remote directly can
// tell which projects are operator-managed.
const ManagedByTag = "managed-by-openstack-operator"

// ManagedByPrefix is prepended to a Keystone group's description, since
// groups carry no tag API of their own.
const ManagedByPrefix = "[managed-by-openstack-operator] "

// TagManagedProject best-effort tags projectID as operator-managed. A
// failure here never fails the calling reconcile: the registry, not this
// tag, is the source of truth for ownership.
func TagManagedProject(ctx context.Context, c osclient.Client, projectID string) {
	_ = c.AddProjectTag(ctx, projectID, ManagedByTag)
}

// WithManagedByPrefix ensures description begins with ManagedByPrefix,
// used for groups and any other object without native tag support.
func WithManagedByPrefix(description string) string {
	if strings.HasPrefix(description, ManagedByPrefix) {
		return description
	}
	return ManagedByPrefix + description
}
