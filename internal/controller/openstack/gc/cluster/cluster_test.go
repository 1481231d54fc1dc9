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

package cluster

import (
	"context"
	"testing"
	"time"

	. "github.com/onsi/gomega"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	kfake "sigs.k8s.io/controller-runtime/pkg/client/fake"

	"github.com/crossplane/crossplane-runtime/pkg/logging"

	v1alpha1 "github.com/sunet/openstack-operator/apis/openstack/v1alpha1"
	osclient "github.com/sunet/openstack-operator/internal/clients/openstack"
	"github.com/sunet/openstack-operator/internal/clients/openstack/fake"
	"github.com/sunet/openstack-operator/internal/registry"
	"github.com/sunet/openstack-operator/internal/state"
)

func TestTickDeletesClusterOrphansInDependencyOrder(t *testing.T) {
	g := NewGomegaWithT(t)
	ctx := context.Background()

	scheme := runtime.NewScheme()
	g.Expect(v1alpha1.AddToScheme(scheme)).To(Succeed())
	g.Expect(corev1.AddToScheme(scheme)).To(Succeed())

	// A Flavor CR still exists for m-live; everything else is orphaned.
	live := &v1alpha1.Flavor{
		ObjectMeta: metav1.ObjectMeta{Name: "m-live"},
		Spec:       v1alpha1.FlavorSpec{Name: "m-live", VCPUs: 2, RAM: 1024},
	}
	kube := kfake.NewClientBuilder().WithScheme(scheme).WithObjects(live).Build()

	reg := registry.New(kube, "openstack-operator")
	g.Expect(reg.Register(ctx, registry.KindProviderNetwork, "phys-1", "PN7", "gone-pn",
		map[string]string{"subnet_ids": "S1,S2"})).To(Succeed())
	g.Expect(reg.Register(ctx, registry.KindImage, "img-ghost", "I7", "gone-img", nil)).To(Succeed())
	g.Expect(reg.Register(ctx, registry.KindFlavor, "m-ghost", "F7", "gone-flavor", nil)).To(Succeed())
	g.Expect(reg.Register(ctx, registry.KindFlavor, "m-live", "F1", "m-live", nil)).To(Succeed())
	g.Expect(reg.Register(ctx, registry.KindDomain, "dom-ghost", "D7", "gone-dom", nil)).To(Succeed())

	order := []string{}
	c := &fake.Client{
		MockDeleteSubnet: func(_ context.Context, id string) error {
			order = append(order, "subnet:"+id)
			return nil
		},
		MockDeleteNetwork: func(_ context.Context, id string) error {
			order = append(order, "network:"+id)
			return nil
		},
		MockGetImage: func(_ context.Context, id string) (*osclient.Image, error) {
			return &osclient.Image{ID: id, Name: "img-ghost", Status: "active"}, nil
		},
		MockDeleteImage: func(_ context.Context, id string) error {
			order = append(order, "image:"+id)
			return nil
		},
		MockDeleteFlavor: func(_ context.Context, id string) error {
			order = append(order, "flavor:"+id)
			return nil
		},
		MockGetDomain: func(_ context.Context, id string) (*osclient.Domain, error) {
			return &osclient.Domain{ID: id, Name: "dom-ghost", Enabled: false}, nil
		},
		MockDeleteDomain: func(_ context.Context, id string) error {
			order = append(order, "domain:"+id)
			return nil
		},
	}

	s := state.NewFromParts(c, reg, kube)
	col := New(kube, s, logging.NewNopLogger(), time.Minute)
	g.Expect(col.tick(ctx)).To(Succeed())

	g.Expect(order).To(Equal([]string{
		"subnet:S1",
		"subnet:S2",
		"network:PN7",
		"image:I7",
		"flavor:F7",
		"domain:D7",
	}))

	// The live flavor's record survives; every orphan record is gone.
	rec, err := reg.Get(ctx, registry.KindFlavor, "m-live")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(rec).NotTo(BeNil())

	for kind, name := range map[registry.Kind]string{
		registry.KindProviderNetwork: "phys-1",
		registry.KindImage:           "img-ghost",
		registry.KindFlavor:          "m-ghost",
		registry.KindDomain:          "dom-ghost",
	} {
		rec, err := reg.Get(ctx, kind, name)
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(rec).To(BeNil(), string(kind))
	}
}
