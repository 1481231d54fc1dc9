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

// Package quota applies a project's compute, storage and network quotas.
// There is no notion of "current" quotas to diff against: every field the
// CR sets is pushed on every reconcile, and a nil field is simply never
// sent, leaving whatever the remote already has in place.
package quota

import (
	"context"

	"github.com/crossplane/crossplane-runtime/pkg/errors"

	v1alpha1 "github.com/sunet/openstack-operator/apis/openstack/v1alpha1"
	osclient "github.com/sunet/openstack-operator/internal/clients/openstack"
)

// Apply pushes every quota sub-map set in spec to projectID. A nil
// ProjectQuotas, or a nil sub-map within it, is a no-op for that tier.
func Apply(ctx context.Context, c osclient.Client, projectID string, spec *v1alpha1.ProjectQuotas) error {
	if spec == nil {
		return nil
	}

	if spec.Compute != nil {
		q := osclient.ComputeQuotaSet{
			Instances:          spec.Compute.Instances,
			Cores:              spec.Compute.Cores,
			RAMMB:              spec.Compute.RAMMB,
			ServerGroups:       spec.Compute.ServerGroups,
			ServerGroupMembers: spec.Compute.ServerGroupMembers,
		}
		if err := c.SetComputeQuotas(ctx, projectID, q); err != nil {
			return errors.Wrap(err, "cannot set compute quotas")
		}
	}

	if spec.Storage != nil {
		q := osclient.VolumeQuotaSet{
			Volumes:   spec.Storage.Volumes,
			VolumesGB: spec.Storage.VolumesGB,
			Snapshots: spec.Storage.Snapshots,
			Backups:   spec.Storage.Backups,
			BackupsGB: spec.Storage.BackupsGB,
		}
		if err := c.SetVolumeQuotas(ctx, projectID, q); err != nil {
			return errors.Wrap(err, "cannot set volume quotas")
		}
	}

	if spec.Network != nil {
		q := osclient.NetworkQuotaSet{
			FloatingIPs:        spec.Network.FloatingIPs,
			Networks:           spec.Network.Networks,
			Subnets:            spec.Network.Subnets,
			Routers:            spec.Network.Routers,
			Ports:              spec.Network.Ports,
			SecurityGroups:     spec.Network.SecurityGroups,
			SecurityGroupRules: spec.Network.SecurityGroupRules,
		}
		if err := c.SetNetworkQuotas(ctx, projectID, q); err != nil {
			return errors.Wrap(err, "cannot set network quotas")
		}
	}

	return nil
}
