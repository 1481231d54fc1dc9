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

	"github.com/gophercloud/gophercloud/v2/openstack/compute/v2/flavors"
)

func (c *client) GetFlavor(ctx context.Context, nameOrID string) (*Flavor, error) {
	return call(ctx, c.limiter, "compute", "get_flavor", func(ctx context.Context) (*Flavor, error) {
		pages, err := flavors.ListDetail(c.compute, flavors.ListOpts{}).AllPages(ctx)
		if err != nil {
			return nil, classify(err)
		}
		found, err := flavors.ExtractFlavors(pages)
		if err != nil {
			return nil, classify(err)
		}
		for _, f := range found {
			if f.ID == nameOrID || f.Name == nameOrID {
				return c.toFlavor(ctx, &f)
			}
		}
		return nil, nil
	})
}

func (c *client) CreateFlavor(ctx context.Context, f Flavor) (*Flavor, error) {
	return call(ctx, c.limiter, "compute", "create_flavor", func(ctx context.Context) (*Flavor, error) {
		isPublic := f.IsPublic
		created, err := flavors.Create(ctx, c.compute, flavors.CreateOpts{
			Name:      f.Name,
			VCPUs:     f.VCPUs,
			RAM:       f.RAMMB,
			Disk:      gophercloudIntPtr(f.DiskGB),
			Ephemeral: gophercloudIntPtr(f.Ephemeral),
			Swap:      gophercloudIntPtr(f.Swap),
			IsPublic:  &isPublic,
		}).Extract()
		if err != nil {
			return nil, classify(err)
		}
		if len(f.ExtraSpecs) > 0 {
			if _, err := flavors.CreateExtraSpecs(ctx, c.compute, created.ID, flavors.ExtraSpecsOpts(f.ExtraSpecs)).Extract(); err != nil {
				return nil, classify(err)
			}
		}
		return c.toFlavor(ctx, created)
	})
}

func (c *client) UpdateFlavorExtraSpecs(ctx context.Context, id string, extraSpecsMap map[string]string) error {
	_, err := call(ctx, c.limiter, "compute", "update_flavor_extra_specs", func(ctx context.Context) (struct{}, error) {
		_, err := flavors.CreateExtraSpecs(ctx, c.compute, id, flavors.ExtraSpecsOpts(extraSpecsMap)).Extract()
		return struct{}{}, classify(err)
	})
	return err
}

func (c *client) DeleteFlavor(ctx context.Context, id string) error {
	_, err := call(ctx, c.limiter, "compute", "delete_flavor", func(ctx context.Context) (struct{}, error) {
		err := flavors.Delete(ctx, c.compute, id).ExtractErr()
		if IsNotFound(err) {
			return struct{}{}, nil
		}
		return struct{}{}, classify(err)
	})
	return err
}

func (c *client) toFlavor(ctx context.Context, f *flavors.Flavor) (*Flavor, error) {
	extraSpecsMap, err := flavors.ListExtraSpecs(ctx, c.compute, f.ID).Extract()
	if err != nil {
		extraSpecsMap = map[string]string{}
	}
	return &Flavor{
		ID:         f.ID,
		Name:       f.Name,
		VCPUs:      f.VCPUs,
		RAMMB:      f.RAM,
		DiskGB:     f.Disk,
		Ephemeral:  f.Ephemeral,
		Swap:       f.Swap,
		IsPublic:   f.IsPublic,
		ExtraSpecs: extraSpecsMap,
	}, nil
}

func gophercloudIntPtr(v int) *int {
	return &v
}
