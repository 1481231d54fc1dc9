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

// Package project manages OpenStack Keystone projects: the tenant
// container every other namespaced resource (networks, security groups,
// quotas, role bindings) hangs off.
package project

import (
	"context"

	"github.com/crossplane/crossplane-runtime/pkg/errors"

	v1alpha1 "github.com/sunet/openstack-operator/apis/openstack/v1alpha1"
	osclient "github.com/sunet/openstack-operator/internal/clients/openstack"
	"github.com/sunet/openstack-operator/internal/registry"
	"github.com/sunet/openstack-operator/internal/resources"
)

// MemberRole is the role every project's user-group is always assigned,
// regardless of the CR's explicit role bindings.
const MemberRole = "member"

// Ensure finds or creates the project named spec.Name in domainID,
// reconciling description and enabled state in place when they differ,
// tags it as operator-managed, and registers it under crName.
func Ensure(ctx context.Context, c osclient.Client, reg *registry.Registry, crName, domainID string, spec v1alpha1.ProjectSpec) (*osclient.Project, error) {
	existing, err := c.GetProject(ctx, spec.Name, domainID)
	if err != nil {
		return nil, errors.Wrap(err, "cannot get project")
	}

	if existing == nil {
		existing, err = c.CreateProject(ctx, spec.Name, domainID, spec.Description, spec.Enabled)
		if err != nil {
			return nil, errors.Wrap(err, "cannot create project")
		}
	} else if existing.Description != spec.Description || existing.Enabled != spec.Enabled {
		existing, err = c.UpdateProject(ctx, existing.ID, spec.Description, spec.Enabled)
		if err != nil {
			return nil, errors.Wrap(err, "cannot update project")
		}
	}

	resources.TagManagedProject(ctx, c, existing.ID)

	extra := map[string]string{"domain_id": domainID}
	if err := reg.Register(ctx, registry.KindProject, spec.Name, existing.ID, crName, extra); err != nil {
		return nil, errors.Wrap(err, "cannot register project")
	}
	return existing, nil
}

// EnsureMemberRole assigns the implicit member role to groupID on
// projectID. The assignment is idempotent at the remote.
func EnsureMemberRole(ctx context.Context, c osclient.Client, groupID, projectID string) error {
	role, err := c.GetRole(ctx, MemberRole)
	if err != nil {
		return errors.Wrap(err, "cannot get member role")
	}
	if role == nil {
		return errors.Errorf("role %q not found", MemberRole)
	}
	return errors.Wrap(c.AssignRoleToGroup(ctx, role.ID, groupID, projectID), "cannot assign member role")
}

// Exists reports whether a project named name still exists in domainID
// with the given id, the drift check run by the periodic timer.
func Exists(ctx context.Context, c osclient.Client, name, domainID, id string) (bool, error) {
	p, err := c.GetProject(ctx, name, domainID)
	if err != nil {
		return false, errors.Wrap(err, "cannot get project")
	}
	return p != nil && p.ID == id, nil
}

// Delete removes the project and its registry record. A missing remote
// project is not an error.
func Delete(ctx context.Context, c osclient.Client, reg *registry.Registry, name, id string) error {
	if id != "" {
		if err := c.DeleteProject(ctx, id); err != nil {
			return errors.Wrap(err, "cannot delete project")
		}
	}
	return reg.Unregister(ctx, registry.KindProject, name)
}
