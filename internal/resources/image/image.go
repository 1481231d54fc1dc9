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

// Package image manages OpenStack Glance images in two modes. A managed
// image is created by the operator and filled by an asynchronous
// web-download import whose progress the Image reconciler polls. An
// external image pre-exists the operator; only its metadata (visibility,
// protection, tags, properties) is asserted, and it is never created or
// deleted.
package image

import (
	"context"

	"github.com/crossplane/crossplane-runtime/pkg/errors"

	v1alpha1 "github.com/sunet/openstack-operator/apis/openstack/v1alpha1"
	osclient "github.com/sunet/openstack-operator/internal/clients/openstack"
	"github.com/sunet/openstack-operator/internal/registry"
)

// Remote image states the poll timer maps to CR phases.
const (
	StatusActive  = "active"
	StatusKilled  = "killed"
	StatusDeleted = "deleted"
	StatusQueued  = "queued"
)

func fromSpec(spec v1alpha1.ImageSpec) osclient.Image {
	return osclient.Image{
		Name:            spec.Name,
		Visibility:      spec.Visibility,
		Protected:       spec.Protected,
		Tags:            spec.Tags,
		Properties:      spec.Properties,
		DiskFormat:      spec.Content.DiskFormat,
		ContainerFormat: spec.Content.ContainerFormat,
	}
}

// Ensure finds or creates a managed image. On a miss it creates the image
// record and initiates a web-download import from the spec's source URL;
// the returned image is then still queued, and the caller's poll timer is
// responsible for observing the import to completion.
func Ensure(ctx context.Context, c osclient.Client, reg *registry.Registry, crName string, spec v1alpha1.ImageSpec) (*osclient.Image, error) {
	existing, err := c.GetImage(ctx, spec.Name)
	if err != nil {
		return nil, errors.Wrap(err, "cannot get image")
	}

	if existing == nil {
		if spec.Content.Source == nil || spec.Content.Source.URL == "" {
			return nil, errors.New("managed image requires content.source.url")
		}
		existing, err = c.CreateImageFromURL(ctx, fromSpec(spec), spec.Content.Source.URL)
		if err != nil {
			return nil, errors.Wrap(err, "cannot create image")
		}
	}

	if err := reg.Register(ctx, registry.KindImage, spec.Name, existing.ID, crName, nil); err != nil {
		return nil, errors.Wrap(err, "cannot register image")
	}
	return existing, nil
}

// EnsureExternal asserts spec's metadata on a pre-existing image. A
// missing image returns (nil, nil): the caller keeps the CR Pending and
// retries from its timer, since an external image may appear at any time.
// External images are never registered; the operator does not own them
// and the garbage collectors must never delete them.
func EnsureExternal(ctx context.Context, c osclient.Client, spec v1alpha1.ImageSpec) (*osclient.Image, error) {
	existing, err := c.GetImage(ctx, spec.Name)
	if err != nil {
		return nil, errors.Wrap(err, "cannot get image")
	}
	if existing == nil {
		return nil, nil
	}

	updated, err := c.UpdateImageMetadata(ctx, existing.ID, fromSpec(spec))
	if err != nil {
		return nil, errors.Wrap(err, "cannot update image metadata")
	}
	return updated, nil
}

// Delete unprotects the image if necessary, deletes it, and removes its
// registry record. A missing remote image is not an error.
func Delete(ctx context.Context, c osclient.Client, reg *registry.Registry, name, id string) error {
	if id != "" {
		existing, err := c.GetImage(ctx, id)
		if err != nil {
			return errors.Wrap(err, "cannot get image")
		}
		if existing != nil {
			if existing.Protected {
				unprotected := *existing
				unprotected.Protected = false
				if _, err := c.UpdateImageMetadata(ctx, id, unprotected); err != nil {
					return errors.Wrap(err, "cannot unprotect image")
				}
			}
			if err := c.DeleteImage(ctx, id); err != nil {
				return errors.Wrap(err, "cannot delete image")
			}
		}
	}
	return reg.Unregister(ctx, registry.KindImage, name)
}
