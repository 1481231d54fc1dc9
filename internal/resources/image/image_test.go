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

package image

import (
	"context"
	"testing"

	. "github.com/onsi/gomega"
	kfake "sigs.k8s.io/controller-runtime/pkg/client/fake"

	v1alpha1 "github.com/sunet/openstack-operator/apis/openstack/v1alpha1"
	osclient "github.com/sunet/openstack-operator/internal/clients/openstack"
	"github.com/sunet/openstack-operator/internal/clients/openstack/fake"
	"github.com/sunet/openstack-operator/internal/registry"
)

func newTestRegistry() *registry.Registry {
	return registry.New(kfake.NewClientBuilder().Build(), "testing")
}

func managedSpec() v1alpha1.ImageSpec {
	return v1alpha1.ImageSpec{
		Name:       "ubuntu-24.04",
		Visibility: "public",
		Content: v1alpha1.ImageContentSpec{
			DiskFormat:      "qcow2",
			ContainerFormat: "bare",
			Source:          &v1alpha1.ImageSource{URL: "https://cloud-images.example.se/noble.img"},
		},
	}
}

func TestEnsureStartsWebDownloadImport(t *testing.T) {
	g := NewGomegaWithT(t)
	ctx := context.Background()

	var importedFrom string
	c := &fake.Client{
		MockCreateImageFromURL: func(_ context.Context, spec osclient.Image, sourceURL string) (*osclient.Image, error) {
			importedFrom = sourceURL
			return &osclient.Image{ID: "img-1", Name: spec.Name, Status: StatusQueued}, nil
		},
	}

	reg := newTestRegistry()
	img, err := Ensure(ctx, c, reg, "cr-img", managedSpec())
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(img.Status).To(Equal(StatusQueued))
	g.Expect(importedFrom).To(Equal("https://cloud-images.example.se/noble.img"))

	rec, err := reg.Get(ctx, registry.KindImage, "ubuntu-24.04")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(rec).NotTo(BeNil())
	g.Expect(rec.ID).To(Equal("img-1"))
}

func TestEnsureRequiresSourceURL(t *testing.T) {
	g := NewGomegaWithT(t)
	ctx := context.Background()

	spec := managedSpec()
	spec.Content.Source = nil

	_, err := Ensure(ctx, &fake.Client{}, newTestRegistry(), "cr-img", spec)
	g.Expect(err).To(HaveOccurred())
}

func TestEnsureExternalMissingImageReturnsNil(t *testing.T) {
	g := NewGomegaWithT(t)
	ctx := context.Background()

	spec := managedSpec()
	spec.External = true

	img, err := EnsureExternal(ctx, &fake.Client{}, spec)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(img).To(BeNil())
}

func TestEnsureExternalAssertsMetadata(t *testing.T) {
	g := NewGomegaWithT(t)
	ctx := context.Background()

	var asserted osclient.Image
	c := &fake.Client{
		MockGetImage: func(context.Context, string) (*osclient.Image, error) {
			return &osclient.Image{ID: "img-ext", Name: "ubuntu-24.04", Status: StatusActive}, nil
		},
		MockUpdateImageMetadata: func(_ context.Context, id string, spec osclient.Image) (*osclient.Image, error) {
			asserted = spec
			return &osclient.Image{ID: id, Name: spec.Name, Visibility: spec.Visibility, Status: StatusActive}, nil
		},
	}

	spec := managedSpec()
	spec.External = true

	img, err := EnsureExternal(ctx, c, spec)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(img.ID).To(Equal("img-ext"))
	g.Expect(asserted.Visibility).To(Equal("public"))
}

func TestDeleteUnprotectsFirst(t *testing.T) {
	g := NewGomegaWithT(t)
	ctx := context.Background()

	order := []string{}
	c := &fake.Client{
		MockGetImage: func(context.Context, string) (*osclient.Image, error) {
			return &osclient.Image{ID: "img-1", Name: "ubuntu-24.04", Protected: true, Status: StatusActive}, nil
		},
		MockUpdateImageMetadata: func(_ context.Context, _ string, spec osclient.Image) (*osclient.Image, error) {
			g.Expect(spec.Protected).To(BeFalse())
			order = append(order, "unprotect")
			return &osclient.Image{ID: "img-1", Protected: false}, nil
		},
		MockDeleteImage: func(context.Context, string) error {
			order = append(order, "delete")
			return nil
		},
	}

	reg := newTestRegistry()
	g.Expect(reg.Register(ctx, registry.KindImage, "ubuntu-24.04", "img-1", "cr-img", nil)).To(Succeed())

	g.Expect(Delete(ctx, c, reg, "ubuntu-24.04", "img-1")).To(Succeed())
	g.Expect(order).To(Equal([]string{"unprotect", "delete"}))

	rec, err := reg.Get(ctx, registry.KindImage, "ubuntu-24.04")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(rec).To(BeNil())
}
