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

// Package group manages a project's companion Keystone group, the target
// of every role binding and federation mapping rule for that project.
// There is no Group CRD: a project's group is entirely owned by its
// Project CR and is only ever addressed through Project.status.groupId.
package group

import (
	"context"

	"github.com/crossplane/crossplane-runtime/pkg/errors"

	osclient "github.com/sunet/openstack-operator/internal/clients/openstack"
	"github.com/sunet/openstack-operator/internal/registry"
	"github.com/sunet/openstack-operator/internal/resources"
	"github.com/sunet/openstack-operator/internal/util"
)

// Ensure finds or creates the user group for projectName in domainID and
// registers it under crName.
func Ensure(ctx context.Context, c osclient.Client, reg *registry.Registry, crName, projectName, domainID string) (*osclient.Group, error) {
	name := util.MakeGroupName(projectName)

	existing, err := c.GetGroup(ctx, name, domainID)
	if err != nil {
		return nil, errors.Wrap(err, "cannot get group")
	}
	if existing == nil {
		desc := resources.WithManagedByPrefix("Users for " + projectName)
		existing, err = c.CreateGroup(ctx, name, domainID, desc)
		if err != nil {
			return nil, errors.Wrap(err, "cannot create group")
		}
	}

	if err := reg.Register(ctx, registry.KindGroup, name, existing.ID, crName, nil); err != nil {
		return nil, errors.Wrap(err, "cannot register group")
	}
	return existing, nil
}

// Delete removes the group and its registry record. A missing remote
// group is not an error.
func Delete(ctx context.Context, c osclient.Client, reg *registry.Registry, name, groupID string) error {
	if groupID != "" {
		if err := c.DeleteGroup(ctx, groupID); err != nil {
			return errors.Wrap(err, "cannot delete group")
		}
	}
	return reg.Unregister(ctx, registry.KindGroup, name)
}
