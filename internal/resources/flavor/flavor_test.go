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

package flavor

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

func TestNeedsRecreate(t *testing.T) {
	g := NewGomegaWithT(t)

	current := &osclient.Flavor{Name: "m1", VCPUs: 2, RAMMB: 2048, DiskGB: 10, IsPublic: true}

	same := v1alpha1.FlavorSpec{Name: "m1", VCPUs: 2, RAM: 2048, Disk: 10, IsPublic: true}
	g.Expect(NeedsRecreate(current, same)).To(BeFalse())

	moreCPU := same
	moreCPU.VCPUs = 4
	g.Expect(NeedsRecreate(current, moreCPU)).To(BeTrue())

	// Extra specs are mutable and never force a recreate.
	specsOnly := same
	specsOnly.ExtraSpecs = map[string]string{"hw:cpu_policy": "dedicated"}
	g.Expect(NeedsRecreate(current, specsOnly)).To(BeFalse())
}

func TestEnsureRecreatesOnImmutableChange(t *testing.T) {
	g := NewGomegaWithT(t)
	ctx := context.Background()

	deleted := []string{}
	c := &fake.Client{
		MockGetFlavor: func(context.Context, string) (*osclient.Flavor, error) {
			return &osclient.Flavor{ID: "old-id", Name: "m1", VCPUs: 2, RAMMB: 2048, DiskGB: 10, IsPublic: true}, nil
		},
		MockDeleteFlavor: func(_ context.Context, id string) error {
			deleted = append(deleted, id)
			return nil
		},
		MockCreateFlavor: func(_ context.Context, f osclient.Flavor) (*osclient.Flavor, error) {
			f.ID = "new-id"
			return &f, nil
		},
	}

	spec := v1alpha1.FlavorSpec{Name: "m1", VCPUs: 4, RAM: 2048, Disk: 10, IsPublic: true}
	f, recreated, err := Ensure(ctx, c, newTestRegistry(), "cr-m1", spec)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(recreated).To(BeTrue())
	g.Expect(deleted).To(Equal([]string{"old-id"}))
	g.Expect(f.ID).To(Equal("new-id"))
	g.Expect(f.VCPUs).To(Equal(4))
}

func TestEnsureUpdatesExtraSpecsInPlace(t *testing.T) {
	g := NewGomegaWithT(t)
	ctx := context.Background()

	updated := map[string]string(nil)
	deleted := false
	c := &fake.Client{
		MockGetFlavor: func(context.Context, string) (*osclient.Flavor, error) {
			return &osclient.Flavor{ID: "fid", Name: "m1", VCPUs: 2, RAMMB: 2048, DiskGB: 10, IsPublic: true}, nil
		},
		MockDeleteFlavor: func(context.Context, string) error {
			deleted = true
			return nil
		},
		MockUpdateFlavorExtraSpecs: func(_ context.Context, _ string, specs map[string]string) error {
			updated = specs
			return nil
		},
	}

	spec := v1alpha1.FlavorSpec{
		Name: "m1", VCPUs: 2, RAM: 2048, Disk: 10, IsPublic: true,
		ExtraSpecs: map[string]string{"hw:cpu_policy": "dedicated"},
	}
	f, recreated, err := Ensure(ctx, c, newTestRegistry(), "cr-m1", spec)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(recreated).To(BeFalse())
	g.Expect(deleted).To(BeFalse())
	g.Expect(updated).To(HaveKeyWithValue("hw:cpu_policy", "dedicated"))
	g.Expect(f.ID).To(Equal("fid"))
}

func TestEnsureIsIdempotent(t *testing.T) {
	g := NewGomegaWithT(t)
	ctx := context.Background()

	created := 0
	c := &fake.Client{
		MockGetFlavor: func(context.Context, string) (*osclient.Flavor, error) {
			if created == 0 {
				return nil, nil
			}
			return &osclient.Flavor{ID: "fid", Name: "m1", VCPUs: 2, RAMMB: 2048}, nil
		},
		MockCreateFlavor: func(_ context.Context, f osclient.Flavor) (*osclient.Flavor, error) {
			created++
			f.ID = "fid"
			return &f, nil
		},
	}

	spec := v1alpha1.FlavorSpec{Name: "m1", VCPUs: 2, RAM: 2048}
	reg := newTestRegistry()

	first, _, err := Ensure(ctx, c, reg, "cr-m1", spec)
	g.Expect(err).NotTo(HaveOccurred())
	second, _, err := Ensure(ctx, c, reg, "cr-m1", spec)
	g.Expect(err).NotTo(HaveOccurred())

	g.Expect(created).To(Equal(1))
	g.Expect(second.ID).To(Equal(first.ID))
}
