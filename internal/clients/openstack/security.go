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

	"github.com/gophercloud/gophercloud/v2/openstack/networking/v2/extensions/security/groups"
	"github.com/gophercloud/gophercloud/v2/openstack/networking/v2/extensions/security/rules"
)

func (c *client) GetSecurityGroup(ctx context.Context, name, projectID string) (*SecurityGroup, error) {
	return call(ctx, c.limiter, "network", "get_security_group", func(ctx context.Context) (*SecurityGroup, error) {
		pages, err := groups.List(c.network, groups.ListOpts{Name: name, ProjectID: projectID}).AllPages(ctx)
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
		return toSecurityGroup(&found[0]), nil
	})
}

func (c *client) CreateSecurityGroup(ctx context.Context, name, projectID, description string) (*SecurityGroup, error) {
	return call(ctx, c.limiter, "network", "create_security_group", func(ctx context.Context) (*SecurityGroup, error) {
		g, err := groups.Create(ctx, c.network, groups.CreateOpts{
			Name:        name,
			ProjectID:   projectID,
			Description: description,
		}).Extract()
		if err != nil {
			return nil, classify(err)
		}
		return toSecurityGroup(g), nil
	})
}

func (c *client) DeleteSecurityGroup(ctx context.Context, id string) error {
	_, err := call(ctx, c.limiter, "network", "delete_security_group", func(ctx context.Context) (struct{}, error) {
		err := groups.Delete(ctx, c.network, id).ExtractErr()
		if IsNotFound(err) {
			return struct{}{}, nil
		}
		return struct{}{}, classify(err)
	})
	return err
}

func toSecurityGroup(g *groups.SecGroup) *SecurityGroup {
	return &SecurityGroup{ID: g.ID, Name: g.Name, ProjectID: g.ProjectID, Description: g.Description}
}

// CreateSecurityGroupRule creates a single rule. A 409 from the remote
// means an identical rule already exists; the caller's two-pass resolver
// treats that as success and returns the input unchanged with no ID.
func (c *client) CreateSecurityGroupRule(ctx context.Context, r SecurityGroupRule) (*SecurityGroupRule, error) {
	return call(ctx, c.limiter, "network", "create_security_group_rule", func(ctx context.Context) (*SecurityGroupRule, error) {
		opts := rules.CreateOpts{
			Direction:      rules.RuleDirection(r.Direction),
			SecGroupID:     r.SecurityGroupID,
			EtherType:      rules.RuleEtherType(r.Ethertype),
			RemoteIPPrefix: r.RemoteIPPrefix,
			RemoteGroupID:  r.RemoteGroupID,
		}
		if r.Protocol != "" && r.Protocol != "any" {
			opts.Protocol = rules.RuleProtocol(r.Protocol)
		}
		if r.PortRangeMin != nil {
			opts.PortRangeMin = *r.PortRangeMin
		}
		if r.PortRangeMax != nil {
			opts.PortRangeMax = *r.PortRangeMax
		}

		created, err := rules.Create(ctx, c.network, opts).Extract()
		if err != nil {
			if IsConflict(err) {
				return &r, nil
			}
			return nil, classify(err)
		}

		out := r
		out.ID = created.ID
		return &out, nil
	})
}
