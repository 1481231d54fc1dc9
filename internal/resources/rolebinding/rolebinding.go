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

// Package rolebinding grants a project's roles to its own user-group and
// to any additional groups a binding names, and keeps that user-group's
// membership in sync with the explicit users a binding lists. Users and
// groups that do not yet exist at the remote (a user who has never
// logged in through SSO, an externally managed group) are tolerated, not
// treated as an error: role bindings are re-applied on every reconcile,
// so a missing principal heals itself once it appears.
package rolebinding

import (
	"context"

	"github.com/crossplane/crossplane-runtime/pkg/errors"
	"github.com/crossplane/crossplane-runtime/pkg/logging"

	v1alpha1 "github.com/sunet/openstack-operator/apis/openstack/v1alpha1"
	osclient "github.com/sunet/openstack-operator/internal/clients/openstack"
)

// UserRef names one user a role binding lists, in the domain it should be
// looked up in.
type UserRef struct {
	Name   string
	Domain string
}

// CollectUsers flattens and deduplicates every user named across
// bindings, in binding order. Federation mapping rules are built from
// this same set, so moving a user between bindings never drops them from
// the mapping.
func CollectUsers(bindings []v1alpha1.RoleBindingSpec) []UserRef {
	seen := make(map[UserRef]bool)
	out := make([]UserRef, 0, len(bindings))
	for _, rb := range bindings {
		for _, name := range rb.Users {
			ref := UserRef{Name: name, Domain: rb.UserDomain}
			if seen[ref] {
				continue
			}
			seen[ref] = true
			out = append(out, ref)
		}
	}
	return out
}

// Apply grants every binding's role to groupID (the project's own
// user-group) and to any additional named groups, then syncs groupID's
// membership to exactly the users named across all bindings.
func Apply(ctx context.Context, c osclient.Client, log logging.Logger, groupID, projectID string, bindings []v1alpha1.RoleBindingSpec) error {
	for _, rb := range bindings {
		role, err := c.GetRole(ctx, rb.Role)
		if err != nil {
			return errors.Wrapf(err, "cannot get role %q", rb.Role)
		}
		if role == nil {
			log.Info("role not found, skipping binding", "role", rb.Role)
			continue
		}

		if err := c.AssignRoleToGroup(ctx, role.ID, groupID, projectID); err != nil {
			return errors.Wrapf(err, "cannot assign role %q to project group", rb.Role)
		}

		for _, gname := range rb.Groups {
			g, err := c.GetGroup(ctx, gname, rb.GroupDomain)
			if err != nil {
				return errors.Wrapf(err, "cannot get group %q", gname)
			}
			if g == nil {
				log.Info("group not found, skipping role assignment", "group", gname, "role", rb.Role)
				continue
			}
			if err := c.AssignRoleToGroup(ctx, role.ID, g.ID, projectID); err != nil {
				return errors.Wrapf(err, "cannot assign role %q to group %q", rb.Role, gname)
			}
		}
	}

	return syncMembership(ctx, c, log, groupID, CollectUsers(bindings))
}

// syncMembership adds desired users missing from groupID and removes
// current members no longer named by any binding.
func syncMembership(ctx context.Context, c osclient.Client, log logging.Logger, groupID string, desired []UserRef) error {
	current, err := c.ListGroupUsers(ctx, groupID)
	if err != nil {
		return errors.Wrap(err, "cannot list group members")
	}
	currentByID := make(map[string]bool, len(current))
	for _, u := range current {
		currentByID[u.ID] = true
	}

	desiredIDs := make(map[string]bool, len(desired))
	for _, ref := range desired {
		u, err := c.GetUser(ctx, ref.Name, ref.Domain)
		if err != nil {
			return errors.Wrapf(err, "cannot get user %q", ref.Name)
		}
		if u == nil {
			log.Info("user not found, will be added after first SSO login", "user", ref.Name)
			continue
		}
		desiredIDs[u.ID] = true
		if !currentByID[u.ID] {
			if err := c.AddUserToGroup(ctx, groupID, u.ID); err != nil {
				return errors.Wrapf(err, "cannot add user %q to group", ref.Name)
			}
		}
	}

	for _, u := range current {
		if !desiredIDs[u.ID] {
			if err := c.RemoveUserFromGroup(ctx, groupID, u.ID); err != nil {
				return errors.Wrapf(err, "cannot remove user %q from group", u.Name)
			}
		}
	}

	return nil
}
