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

	"github.com/gophercloud/gophercloud/v2/openstack/image/v2/imageimport"
	"github.com/gophercloud/gophercloud/v2/openstack/image/v2/images"
)

func (c *client) GetImage(ctx context.Context, nameOrID string) (*Image, error) {
	return call(ctx, c.limiter, "image", "get_image", func(ctx context.Context) (*Image, error) {
		img, err := images.Get(ctx, c.image, nameOrID).Extract()
		if err == nil {
			return toImage(img), nil
		}
		if !IsNotFound(err) {
			return nil, classify(err)
		}

		pages, err := images.List(c.image, images.ListOpts{Name: nameOrID}).AllPages(ctx)
		if err != nil {
			return nil, classify(err)
		}
		found, err := images.ExtractImages(pages)
		if err != nil {
			return nil, classify(err)
		}
		if len(found) == 0 {
			return nil, nil
		}
		return toImage(&found[0]), nil
	})
}

// CreateImageFromURL registers the image record and triggers a
// web-download import, the same two-step flow the remote requires for
// any image whose bytes are not uploaded directly.
func (c *client) CreateImageFromURL(ctx context.Context, spec Image, sourceURL string) (*Image, error) {
	return call(ctx, c.limiter, "image", "create_image", func(ctx context.Context) (*Image, error) {
		created, err := images.Create(ctx, c.image, images.CreateOpts{
			Name:            spec.Name,
			Visibility:      visibilityPtr(spec.Visibility),
			Protected:       &spec.Protected,
			Tags:            spec.Tags,
			DiskFormat:      spec.DiskFormat,
			ContainerFormat: spec.ContainerFormat,
			Properties:      spec.Properties,
		}).Extract()
		if err != nil {
			return nil, classify(err)
		}

		err = imageimport.Create(ctx, c.image, created.ID, imageimport.CreateOpts{
			Name: imageimport.WebDownloadMethod,
			URI:  sourceURL,
		}).ExtractErr()
		if err != nil {
			return nil, classify(err)
		}

		return toImage(created), nil
	})
}

func (c *client) UpdateImageMetadata(ctx context.Context, id string, spec Image) (*Image, error) {
	return call(ctx, c.limiter, "image", "update_image", func(ctx context.Context) (*Image, error) {
		ops := images.UpdateOpts{
			images.ReplaceImageTags{NewTags: spec.Tags},
			images.ReplaceImageProtected{NewProtected: spec.Protected},
		}
		if spec.Visibility != "" {
			ops = append(ops, images.UpdateVisibility{Visibility: imageVisibility(spec.Visibility)})
		}
		for k, v := range spec.Properties {
			ops = append(ops, images.UpdateImageProperty{Name: k, Value: v, Op: images.ReplaceOp})
		}
		updated, err := images.Update(ctx, c.image, id, ops).Extract()
		if err != nil {
			return nil, classify(err)
		}
		return toImage(updated), nil
	})
}

func (c *client) DeleteImage(ctx context.Context, id string) error {
	_, err := call(ctx, c.limiter, "image", "delete_image", func(ctx context.Context) (struct{}, error) {
		err := images.Delete(ctx, c.image, id).ExtractErr()
		if IsNotFound(err) {
			return struct{}{}, nil
		}
		return struct{}{}, classify(err)
	})
	return err
}

func imageVisibility(v string) images.ImageVisibility {
	if v == "" {
		return images.ImageVisibilityPrivate
	}
	return images.ImageVisibility(v)
}

func visibilityPtr(v string) *images.ImageVisibility {
	vis := imageVisibility(v)
	return &vis
}

func toImage(i *images.Image) *Image {
	return &Image{
		ID:              i.ID,
		Name:            i.Name,
		Visibility:      string(i.Visibility),
		Protected:       i.Protected,
		Tags:            i.Tags,
		DiskFormat:      i.DiskFormat,
		ContainerFormat: i.ContainerFormat,
		Status:          string(i.Status),
		Checksum:        i.Checksum,
		SizeBytes:       i.SizeBytes,
	}
}
