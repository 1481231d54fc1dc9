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

// Package domain manages OpenStack Keystone domains.
package domain

import (
	"context"

	"github.com/crossplane/crossplane-runtime/pkg/errors"

	v1alpha1 "github.com/sunet/openstack-operator/apis/openstack/v1alpha1"
	osclient "github.com/sunet/openstack-operator/internal/clients/openstack"
	"github.com/sunet/openstack-operator/internal/registry"
)

// Ensure finds a domain named spec.Name, creating it if absent and
// reconciling its description and enabled state otherwise, and registers
// it under crName.
func Ensure(ctx context.Context, c osclient.Client, reg *registry.Registry, crName string, spec v1alpha1.DomainSpec) (*osclient.Domain, error) {
	existing, err := c.GetDomain(ctx, spec.Name)
	if err != nil {
		return nil, errors.Wrap(err, "cannot get domain")
	}

	if existing == nil {
		created, err := c.CreateDomain(ctx, spec.Name, spec.Description, spec.Enabled)
		if err != nil {
			return nil, errors.Wrap(err, "cannot create domain")
		}
		return created, reg.Register(ctx, registry.KindDomain, spec.Name, created.ID, crName, nil)
	}

	if existing.Description != spec.Description || existing.Enabled != spec.Enabled {
		updated, err := c.UpdateDomain(ctx, existing.ID, spec.Description, spec.Enabled)
		if err != nil {
			return nil, errors.Wrap(err, "cannot update domain")
		}
		existing = updated
	}

	return existing, reg.Register(ctx, registry.KindDomain, spec.Name, existing.ID, crName, nil)
}

// Delete disables the domain, which the remote API requires before a
// domain can be deleted, then deletes it and its registry record. A
// missing remote domain is not an error.
func Delete(ctx context.Context, c osclient.Client, reg *registry.Registry, name, id string) error {
	if id != "" {
		existing, err := c.GetDomain(ctx, id)
		if err != nil {
			return errors.Wrap(err, "cannot get domain")
		}
		if existing != nil && existing.Enabled {
			if _, err := c.UpdateDomain(ctx, id, existing.Description, false); err != nil {
				return errors.Wrap(err, "cannot disable domain")
			}
		}
		if err := c.DeleteDomain(ctx, id); err != nil {
			return errors.Wrap(err, "cannot delete domain")
		}
	}
	return reg.Unregister(ctx, registry.KindDomain, name)
}
