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

	blockquotas "github.com/gophercloud/gophercloud/v2/openstack/blockstorage/v3/quotasets"
	computequotas "github.com/gophercloud/gophercloud/v2/openstack/compute/v2/quotasets"
	networkquotas "github.com/gophercloud/gophercloud/v2/openstack/networking/v2/extensions/quotas"
)

// SetComputeQuotas applies only the fields the caller set; a zero-value
// ProjectSpec field means "leave the remote quota untouched", mirroring
// the original reconciler's partial quota_args dict.
func (c *client) SetComputeQuotas(ctx context.Context, projectID string, q ComputeQuotaSet) error {
	if q.Instances == nil && q.Cores == nil && q.RAMMB == nil && q.ServerGroups == nil && q.ServerGroupMembers == nil {
		return nil
	}
	_, err := call(ctx, c.limiter, "compute", "set_quotas", func(ctx context.Context) (struct{}, error) {
		opts := computequotas.UpdateOpts{}
		if q.Instances != nil {
			v := int(*q.Instances)
			opts.Instances = &v
		}
		if q.Cores != nil {
			v := int(*q.Cores)
			opts.Cores = &v
		}
		if q.RAMMB != nil {
			v := int(*q.RAMMB)
			opts.RAM = &v
		}
		if q.ServerGroups != nil {
			v := int(*q.ServerGroups)
			opts.ServerGroups = &v
		}
		if q.ServerGroupMembers != nil {
			v := int(*q.ServerGroupMembers)
			opts.ServerGroupMembers = &v
		}
		_, err := computequotas.Update(ctx, c.compute, projectID, opts).Extract()
		return struct{}{}, classify(err)
	})
	return err
}

// SetVolumeQuotas applies the cinder quota fields the caller set.
func (c *client) SetVolumeQuotas(ctx context.Context, projectID string, q VolumeQuotaSet) error {
	if q.Volumes == nil && q.VolumesGB == nil && q.Snapshots == nil && q.Backups == nil && q.BackupsGB == nil {
		return nil
	}
	_, err := call(ctx, c.limiter, "block_storage", "set_quotas", func(ctx context.Context) (struct{}, error) {
		opts := blockquotas.UpdateOpts{}
		if q.Volumes != nil {
			v := int(*q.Volumes)
			opts.Volumes = &v
		}
		if q.VolumesGB != nil {
			v := int(*q.VolumesGB)
			opts.Gigabytes = &v
		}
		if q.Snapshots != nil {
			v := int(*q.Snapshots)
			opts.Snapshots = &v
		}
		if q.Backups != nil {
			v := int(*q.Backups)
			opts.Backups = &v
		}
		if q.BackupsGB != nil {
			v := int(*q.BackupsGB)
			opts.BackupGigabytes = &v
		}
		_, err := blockquotas.Update(ctx, c.volume, projectID, opts).Extract()
		return struct{}{}, classify(err)
	})
	return err
}

// SetNetworkQuotas applies the neutron quota fields the caller set.
func (c *client) SetNetworkQuotas(ctx context.Context, projectID string, q NetworkQuotaSet) error {
	if q.FloatingIPs == nil && q.Networks == nil && q.Subnets == nil && q.Routers == nil &&
		q.Ports == nil && q.SecurityGroups == nil && q.SecurityGroupRules == nil {
		return nil
	}
	_, err := call(ctx, c.limiter, "network", "set_quotas", func(ctx context.Context) (struct{}, error) {
		opts := networkquotas.UpdateOpts{}
		if q.FloatingIPs != nil {
			v := int(*q.FloatingIPs)
			opts.FloatingIP = &v
		}
		if q.Networks != nil {
			v := int(*q.Networks)
			opts.Network = &v
		}
		if q.Subnets != nil {
			v := int(*q.Subnets)
			opts.Subnet = &v
		}
		if q.Routers != nil {
			v := int(*q.Routers)
			opts.Router = &v
		}
		if q.Ports != nil {
			v := int(*q.Ports)
			opts.Port = &v
		}
		if q.SecurityGroups != nil {
			v := int(*q.SecurityGroups)
			opts.SecurityGroup = &v
		}
		if q.SecurityGroupRules != nil {
			v := int(*q.SecurityGroupRules)
			opts.SecurityGroupRule = &v
		}
		_, err := networkquotas.Update(ctx, c.network, projectID, opts).Extract()
		return struct{}{}, classify(err)
	})
	return err
}
