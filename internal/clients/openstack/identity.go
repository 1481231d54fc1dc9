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

package openstack

import (
	"context"

	"github.com/gophercloud/gophercloud/v2"
	"github.com/gophercloud/gophercloud/v2/openstack/identity/v3/domains"
	"github.com/gophercloud/gophercloud/v2/openstack/identity/v3/groups"
	"github.com/gophercloud/gophercloud/v2/openstack/identity/v3/projects"
	"github.com/gophercloud/gophercloud/v2/openstack/identity/v3/roles"
	"github.com/gophercloud/gophercloud/v2/openstack/identity/v3/users"
)

func (c *client) GetDomain(ctx context.Context, nameOrID string) (*Domain, error) {
	return call(ctx, c.limiter, "identity", "get_domain", func(ctx context.Context) (*Domain, error) {
		pages, err := domains.List(c.identity, domains.ListOpts{Name: nameOrID}).AllPages(ctx)
		if err != nil {
			return nil, classify(err)
		}
		found, err := domains.ExtractDomains(pages)
		if err != nil {
			return nil, classify(err)
		}
		if len(found) == 0 {
			d, err := domains.Get(ctx, c.identity, nameOrID).Extract()
			if err != nil {
				if IsNotFound(err) {
					return nil, nil
				}
				return nil, classify(err)
			}
			return toDomain(d), nil
		}
		return toDomain(&found[0]), nil
	})
}

func toDomain(d *domains.Domain) *Domain {
	return &Domain{ID: d.ID, Name: d.Name, Description: d.Description, Enabled: d.Enabled}
}

func (c *client) CreateDomain(ctx context.Context, name, description string, enabled bool) (*Domain, error) {
	return call(ctx, c.limiter, "identity", "create_domain", func(ctx context.Context) (*Domain, error) {
		d, err := domains.Create(ctx, c.identity, domains.CreateOpts{
			Name:        name,
			Description: description,
			Enabled:     &enabled,
		}).Extract()
		if err != nil {
			return nil, classify(err)
		}
		return toDomain(d), nil
	})
}

func (c *client) UpdateDomain(ctx context.Context, id, description string, enabled bool) (*Domain, error) {
	return call(ctx, c.limiter, "identity", "update_domain", func(ctx context.Context) (*Domain, error) {
		d, err := domains.Update(ctx, c.identity, id, domains.UpdateOpts{
			Description: &description,
			Enabled:     &enabled,
		}).Extract()
		if err != nil {
			return nil, classify(err)
		}
		return toDomain(d), nil
	})
}

func (c *client) DeleteDomain(ctx context.Context, id string) error {
	_, err := call(ctx, c.limiter, "identity", "delete_domain", func(ctx context.Context) (struct{}, error) {
		err := domains.Delete(ctx, c.identity, id).ExtractErr()
		if IsNotFound(err) {
			return struct{}{}, nil
		}
		return struct{}{}, classify(err)
	})
	return err
}

func (c *client) GetProject(ctx context.Context, name, domainID string) (*Project, error) {
	return call(ctx, c.limiter, "identity", "get_project", func(ctx context.Context) (*Project, error) {
		pages, err := projects.List(c.identity, projects.ListOpts{Name: name, DomainID: domainID}).AllPages(ctx)
		if err != nil {
			return nil, classify(err)
		}
		found, err := projects.ExtractProjects(pages)
		if err != nil {
			return nil, classify(err)
		}
		if len(found) == 0 {
			return nil, nil
		}
		return toProject(&found[0]), nil
	})
}

func (c *client) CreateProject(ctx context.Context, name, domainID, description string, enabled bool) (*Project, error) {
	return call(ctx, c.limiter, "identity", "create_project", func(ctx context.Context) (*Project, error) {
		p, err := projects.Create(ctx, c.identity, projects.CreateOpts{
			Name:        name,
			DomainID:    domainID,
			Description: description,
			Enabled:     &enabled,
		}).Extract()
		if err != nil {
			return nil, classify(err)
		}
		return toProject(p), nil
	})
}

func (c *client) UpdateProject(ctx context.Context, id, description string, enabled bool) (*Project, error) {
	return call(ctx, c.limiter, "identity", "update_project", func(ctx context.Context) (*Project, error) {
		p, err := projects.Update(ctx, c.identity, id, projects.UpdateOpts{
			Description: &description,
			Enabled:     &enabled,
		}).Extract()
		if err != nil {
			return nil, classify(err)
		}
		return toProject(p), nil
	})
}

func (c *client) DeleteProject(ctx context.Context, id string) error {
	_, err := call(ctx, c.limiter, "identity", "delete_project", func(ctx context.Context) (struct{}, error) {
		err := projects.Delete(ctx, c.identity, id).ExtractErr()
		if IsNotFound(err) {
			return struct{}{}, nil
		}
		return struct{}{}, classify(err)
	})
	return err
}

func toProject(p *projects.Project) *Project {
	return &Project{ID: p.ID, Name: p.Name, DomainID: p.DomainID, Description: p.Description, Enabled: p.Enabled}
}

// ListProjectsByTag returns every project in domainID carrying tag.
// Keystone's tag-filtered project list has no typed gophercloud binding,
// so this builds the query directly against the identity service client.
func (c *client) ListProjectsByTag(ctx context.Context, domainID, tag string) ([]Project, error) {
	return call(ctx, c.limiter, "identity", "list_projects_by_tag", func(ctx context.Context) ([]Project, error) {
		url := c.identity.ServiceURL("projects") + "?domain_id=" + domainID + "&tags=" + tag
		var result struct {
			Projects []projects.Project `json:"projects"`
		}
		_, err := c.identity.Get(ctx, url, &result, &gophercloud.RequestOpts{OkCodes: []int{200}})
		if err != nil {
			return nil, classify(err)
		}
		out := make([]Project, 0, len(result.Projects))
		for _, p := range result.Projects {
			out = append(out, *toProject(&p))
		}
		return out, nil
	})
}

func (c *client) GetGroup(ctx context.Context, name, domainID string) (*Group, error) {
	return call(ctx, c.limiter, "identity", "get_group", func(ctx context.Context) (*Group, error) {
		pages, err := groups.List(c.identity, groups.ListOpts{Name: name, DomainID: domainID}).AllPages(ctx)
		if err != nil {
			return nil, classify(err)
		}
		found, err := groups.ExtractGroups(pages)
		if err != nil {
			return nil, classify(err)
		}
		if len(found) == 0 {
			return nil, nil
		}
		return toGroup(&found[0]), nil
	})
}

// GetGroupByID fetches a group directly by id, used to confirm a
// remembered group id still resolves on the remote before trusting it.
func (c *client) GetGroupByID(ctx context.Context, id string) (*Group, error) {
	return call(ctx, c.limiter, "identity", "get_group_by_id", func(ctx context.Context) (*Group, error) {
		g, err := groups.Get(ctx, c.identity, id).Extract()
		if err != nil {
			if IsNotFound(err) {
				return nil, nil
			}
			return nil, classify(err)
		}
		return toGroup(g), nil
	})
}

func (c *client) CreateGroup(ctx context.Context, name, domainID, description string) (*Group, error) {
	return call(ctx, c.limiter, "identity", "create_group", func(ctx context.Context) (*Group, error) {
		g, err := groups.Create(ctx, c.identity, groups.CreateOpts{
			Name:        name,
			DomainID:    domainID,
			Description: description,
		}).Extract()
		if err != nil {
			return nil, classify(err)
		}
		return toGroup(g), nil
	})
}

func (c *client) DeleteGroup(ctx context.Context, id string) error {
	_, err := call(ctx, c.limiter, "identity", "delete_group", func(ctx context.Context) (struct{}, error) {
		err := groups.Delete(ctx, c.identity, id).ExtractErr()
		if IsNotFound(err) {
			return struct{}{}, nil
		}
		return struct{}{}, classify(err)
	})
	return err
}

func toGroup(g *groups.Group) *Group {
	return &Group{ID: g.ID, Name: g.Name, DomainID: g.DomainID, Description: g.Description}
}

func (c *client) GetRole(ctx context.Context, name string) (*Role, error) {
	return call(ctx, c.limiter, "identity", "get_role", func(ctx context.Context) (*Role, error) {
		pages, err := roles.List(c.identity, roles.ListOpts{Name: name}).AllPages(ctx)
		if err != nil {
			return nil, classify(err)
		}
		found, err := roles.ExtractRoles(pages)
		if err != nil {
			return nil, classify(err)
		}
		if len(found) == 0 {
			return nil, nil
		}
		return &Role{ID: found[0].ID, Name: found[0].Name}, nil
	})
}

// AssignRoleToGroup assigns roleID to groupID scoped to projectID. A 409
// from the remote means the assignment already exists and is treated as
// success, matching the idempotent ensure contract every resource module
// relies on.
func (c *client) AssignRoleToGroup(ctx context.Context, roleID, groupID, projectID string) error {
	_, err := call(ctx, c.limiter, "identity", "assign_role_to_group", func(ctx context.Context) (struct{}, error) {
		err := roles.Assign(ctx, c.identity, roleID, roles.AssignOpts{GroupID: groupID, ProjectID: projectID}).ExtractErr()
		if IsConflict(err) {
			return struct{}{}, nil
		}
		return struct{}{}, classify(err)
	})
	return err
}

// RevokeRoleFromGroup revokes roleID from groupID scoped to projectID. A
// 404 from the remote means the assignment is already gone.
func (c *client) RevokeRoleFromGroup(ctx context.Context, roleID, groupID, projectID string) error {
	_, err := call(ctx, c.limiter, "identity", "revoke_role_from_group", func(ctx context.Context) (struct{}, error) {
		err := roles.Unassign(ctx, c.identity, roleID, roles.UnassignOpts{GroupID: groupID, ProjectID: projectID}).ExtractErr()
		if IsNotFound(err) {
			return struct{}{}, nil
		}
		return struct{}{}, classify(err)
	})
	return err
}

// GetUser looks up a user by name within domainID. A missing user returns
// (nil, nil): role bindings that reference a user who has not federated in
// yet are tolerated, not treated as an error.
func (c *client) GetUser(ctx context.Context, name, domainID string) (*User, error) {
	return call(ctx, c.limiter, "identity", "get_user", func(ctx context.Context) (*User, error) {
		pages, err := users.List(c.identity, users.ListOpts{Name: name, DomainID: domainID}).AllPages(ctx)
		if err != nil {
			return nil, classify(err)
		}
		found, err := users.ExtractUsers(pages)
		if err != nil {
			return nil, classify(err)
		}
		if len(found) == 0 {
			return nil, nil
		}
		return &User{ID: found[0].ID, Name: found[0].Name, DomainID: found[0].DomainID}, nil
	})
}

// ListGroupUsers returns the members of groupID.
func (c *client) ListGroupUsers(ctx context.Context, groupID string) ([]User, error) {
	return call(ctx, c.limiter, "identity", "list_group_users", func(ctx context.Context) ([]User, error) {
		pages, err := users.ListInGroup(c.identity, groupID, users.ListOpts{}).AllPages(ctx)
		if err != nil {
			return nil, classify(err)
		}
		found, err := users.ExtractUsers(pages)
		if err != nil {
			return nil, classify(err)
		}
		out := make([]User, 0, len(found))
		for _, u := range found {
			out = append(out, User{ID: u.ID, Name: u.Name, DomainID: u.DomainID})
		}
		return out, nil
	})
}

// AddUserToGroup adds userID as a member of groupID. A 409 means the user
// is already a member.
func (c *client) AddUserToGroup(ctx context.Context, groupID, userID string) error {
	_, err := call(ctx, c.limiter, "identity", "add_user_to_group", func(ctx context.Context) (struct{}, error) {
		url := c.identity.ServiceURL("groups", groupID, "users", userID)
		_, err := c.identity.Put(ctx, url, nil, nil, &gophercloud.RequestOpts{OkCodes: []int{204}})
		if IsConflict(err) {
			return struct{}{}, nil
		}
		return struct{}{}, classify(err)
	})
	return err
}

// RemoveUserFromGroup removes userID from groupID. A 404 means the user is
// already not a member.
func (c *client) RemoveUserFromGroup(ctx context.Context, groupID, userID string) error {
	_, err := call(ctx, c.limiter, "identity", "remove_user_from_group", func(ctx context.Context) (struct{}, error) {
		url := c.identity.ServiceURL("groups", groupID, "users", userID)
		_, err := c.identity.Delete(ctx, url, &gophercloud.RequestOpts{OkCodes: []int{204}})
		if IsNotFound(err) {
			return struct{}{}, nil
		}
		return struct{}{}, classify(err)
	})
	return err
}

// AddProjectTag attaches the legacy managed-by marker tag to a project.
// Keystone's project-tags API has no typed gophercloud binding, so this
// issues the PUT directly against the identity service client.
func (c *client) AddProjectTag(ctx context.Context, projectID, tag string) error {
	_, err := call(ctx, c.limiter, "identity", "add_project_tag", func(ctx context.Context) (struct{}, error) {
		url := c.identity.ServiceURL("projects", projectID, "tags", tag)
		_, err := c.identity.Put(ctx, url, nil, nil, &gophercloud.RequestOpts{OkCodes: []int{201, 204}})
		return struct{}{}, classify(err)
	})
	return err
}
