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

// Package securitygroup manages a project's security groups and their
// rules in two passes: every group in a CR's list is created first, then
// every rule is created, so a rule may reference a sibling group in the
// same CR by name before that group's id was known.
package securitygroup

import (
	"context"

	"github.com/crossplane/crossplane-runtime/pkg/errors"
	"github.com/crossplane/crossplane-runtime/pkg/logging"

	v1alpha1 "github.com/sunet/openstack-operator/apis/openstack/v1alpha1"
	osclient "github.com/sunet/openstack-operator/internal/clients/openstack"
	"github.com/sunet/openstack-operator/internal/registry"
)

// Ensure creates or finds every security group in specs, then creates
// every rule, resolving RemoteGroupName references against the full set
// of groups just ensured.
func Ensure(ctx context.Context, c osclient.Client, reg *registry.Registry, crName, projectID string, specs []v1alpha1.SecurityGroupSpec) ([]v1alpha1.ProjectSecurityGroupStatus, error) {
	statuses := make([]v1alpha1.ProjectSecurityGroupStatus, 0, len(specs))
	nameToID := make(map[string]string, len(specs))

	for _, spec := range specs {
		sg, err := c.GetSecurityGroup(ctx, spec.Name, projectID)
		if err != nil {
			return nil, errors.Wrapf(err, "cannot get security group %q", spec.Name)
		}
		if sg == nil {
			sg, err = c.CreateSecurityGroup(ctx, spec.Name, projectID, spec.Description)
			if err != nil {
				return nil, errors.Wrapf(err, "cannot create security group %q", spec.Name)
			}
		}
		nameToID[spec.Name] = sg.ID
		statuses = append(statuses, v1alpha1.ProjectSecurityGroupStatus{Name: spec.Name, ID: sg.ID})

		if err := reg.Register(ctx, registry.KindSecurityGroup, spec.Name, sg.ID, crName, nil); err != nil {
			return nil, errors.Wrapf(err, "cannot register security group %q", spec.Name)
		}
	}

	for _, spec := range specs {
		sgID := nameToID[spec.Name]
		for _, rule := range spec.Rules {
			r := osclient.SecurityGroupRule{
				SecurityGroupID: sgID,
				Direction:       rule.Direction,
				Protocol:        rule.Protocol,
				RemoteIPPrefix:  rule.RemoteIPPrefix,
				Ethertype:       rule.Ethertype,
			}
			if rule.PortRangeMin != nil {
				v := int(*rule.PortRangeMin)
				r.PortRangeMin = &v
			}
			if rule.PortRangeMax != nil {
				v := int(*rule.PortRangeMax)
				r.PortRangeMax = &v
			}
			if rule.RemoteGroupName != "" {
				remoteID, ok := nameToID[rule.RemoteGroupName]
				if !ok {
					return nil, errors.Errorf("rule in security group %q references unknown remoteGroupName %q", spec.Name, rule.RemoteGroupName)
				}
				r.RemoteGroupID = remoteID
			}

			if _, err := c.CreateSecurityGroupRule(ctx, r); err != nil {
				return nil, errors.Wrapf(err, "cannot create rule in security group %q", spec.Name)
			}
		}
	}

	return statuses, nil
}

// Delete removes every security group in statuses. Each deletion is
// best-effort: deleting a security group implicitly removes its rules,
// and a failure on one group is logged but never blocks deleting the
// rest.
func Delete(ctx context.Context, c osclient.Client, reg *registry.Registry, log logging.Logger, statuses []v1alpha1.ProjectSecurityGroupStatus) {
	for _, sg := range statuses {
		if err := c.DeleteSecurityGroup(ctx, sg.ID); err != nil {
			log.Info("cannot delete security group", "name", sg.Name, "id", sg.ID, "error", err)
		}
		if err := reg.Unregister(ctx, registry.KindSecurityGroup, sg.Name); err != nil {
			log.Info("cannot unregister security group", "name", sg.Name, "error", err)
		}
	}
}
