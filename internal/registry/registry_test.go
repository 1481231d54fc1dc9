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

package registry

import (
	"context"
	"testing"

	. "github.com/onsi/gomega"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	c := fake.NewClientBuilder().Build()
	return New(c, "testing")
}

func TestRegisterGetUnregister(t *testing.T) {
	g := NewGomegaWithT(t)
	ctx := context.Background()
	r := newTestRegistry(t)

	g.Expect(r.Register(ctx, KindProject, "proj-a", "uuid-1", "cr-a", nil)).To(Succeed())

	rec, err := r.Get(ctx, KindProject, "proj-a")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(rec).NotTo(BeNil())
	g.Expect(rec.ID).To(Equal("uuid-1"))
	g.Expect(rec.CRName).To(Equal("cr-a"))

	g.Expect(r.Unregister(ctx, KindProject, "proj-a")).To(Succeed())

	rec, err = r.Get(ctx, KindProject, "proj-a")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(rec).To(BeNil())
}

func TestGetMissingReturnsNilNotError(t *testing.T) {
	g := NewGomegaWithT(t)
	ctx := context.Background()
	r := newTestRegistry(t)

	rec, err := r.Get(ctx, KindDomain, "does-not-exist")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(rec).To(BeNil())
}

func TestGetByCR(t *testing.T) {
	g := NewGomegaWithT(t)
	ctx := context.Background()
	r := newTestRegistry(t)

	g.Expect(r.Register(ctx, KindNetwork, "net-a", "id-a", "proj-1", nil)).To(Succeed())
	g.Expect(r.Register(ctx, KindNetwork, "net-b", "id-b", "proj-1", nil)).To(Succeed())
	g.Expect(r.Register(ctx, KindNetwork, "net-c", "id-c", "proj-2", nil)).To(Succeed())

	recs, err := r.GetByCR(ctx, KindNetwork, "proj-1")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(recs).To(HaveLen(2))
}

func TestGetOrphans(t *testing.T) {
	g := NewGomegaWithT(t)
	ctx := context.Background()
	r := newTestRegistry(t)

	g.Expect(r.Register(ctx, KindDomain, "dom-live", "id-1", "cr-live", nil)).To(Succeed())
	g.Expect(r.Register(ctx, KindDomain, "dom-dead", "id-2", "cr-dead", nil)).To(Succeed())

	orphans, err := r.GetOrphans(ctx, KindDomain, map[string]bool{"cr-live": true})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(orphans).To(HaveLen(1))
	g.Expect(orphans[0].Name).To(Equal("dom-dead"))
}

func TestKindsAreIndependentBlobs(t *testing.T) {
	g := NewGomegaWithT(t)
	ctx := context.Background()
	r := newTestRegistry(t)

	g.Expect(r.Register(ctx, KindProject, "shared-name", "proj-id", "cr-a", nil)).To(Succeed())
	g.Expect(r.Register(ctx, KindGroup, "shared-name", "group-id", "cr-a", nil)).To(Succeed())

	p, err := r.Get(ctx, KindProject, "shared-name")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(p.ID).To(Equal("proj-id"))

	grp, err := r.Get(ctx, KindGroup, "shared-name")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(grp.ID).To(Equal("group-id"))
}
