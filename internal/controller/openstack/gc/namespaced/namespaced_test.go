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

package namespaced

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

// deletions records every remote delete the sweep performs, in order.
type deletions struct {
	order []string
}

func (d *deletions) client(mappings map[string][]osclient.MappingRule) *fake.Client {
	return &fake.Client{
		MockDeleteSecurityGroup: func(_ context.Context, id string) error {
			d.order = append(d.order, "security_group:"+id)
			return nil
		},
		MockDeleteNetwork: func(_ context.Context, id string) error {
			d.order = append(d.order, "network:"+id)
			return nil
		},
		MockDeleteSubnet: func(_ context.Context, id string) error {
			d.order = append(d.order, "subnet:"+id)
			return nil
		},
		MockDeleteGroup: func(_ context.Context, id string) error {
			d.order = append(d.order, "group:"+id)
			return nil
		},
		MockDeleteProject: func(_ context.Context, id string) error {
			d.order = append(d.order, "project:"+id)
			return nil
		},
		MockGetMapping: func(_ context.Context, id string) (*osclient.Mapping, error) {
			rules, ok := mappings[id]
			if !ok {
				return nil, nil
			}
			return &osclient.Mapping{ID: id, Rules: rules}, nil
		},
		MockUpdateMapping: func(_ context.Context, id string, rules []osclient.MappingRule) (*osclient.Mapping, error) {
			mappings[id] = rules
			return &osclient.Mapping{ID: id, Rules: rules}, nil
		},
	}
}

func ghostRule() osclient.MappingRule {
	return osclient.MappingRule{
		"local": []interface{}{
			map[string]interface{}{"group": map[string]interface{}{"name": "ghost-users"}},
		},
		"remote": []interface{}{
			map[string]interface{}{"type": "HTTP_OIDC_SUB"},
		},
	}
}

func TestTickDeletesOrphansInDependencyOrder(t *testing.T) {
	g := NewGomegaWithT(t)
	ctx := context.Background()

	scheme := runtime.NewScheme()
	g.Expect(v1alpha1.AddToScheme(scheme)).To(Succeed())
	g.Expect(corev1.AddToScheme(scheme)).To(Succeed())

	// One live Project CR and one ghost whose CR is gone.
	live := &v1alpha1.Project{
		ObjectMeta: metav1.ObjectMeta{Name: "live", Namespace: "tenants"},
		Spec:       v1alpha1.ProjectSpec{Name: "live.example.se", Domain: "sso-users"},
	}
	kube := kfake.NewClientBuilder().WithScheme(scheme).WithObjects(live).Build()

	reg := registry.New(kube, "openstack-operator")
	g.Expect(reg.Register(ctx, registry.KindProject, "ghost", "P7", "ghost", nil)).To(Succeed())
	g.Expect(reg.Register(ctx, registry.KindGroup, "ghost-users", "G7", "ghost", nil)).To(Succeed())
	g.Expect(reg.Register(ctx, registry.KindNetwork, "ghost-net", "N7", "ghost",
		map[string]string{"subnet_id": "S7", "router_id": "R7"})).To(Succeed())
	g.Expect(reg.Register(ctx, registry.KindSecurityGroup, "ghost-web", "SG7", "ghost", nil)).To(Succeed())
	g.Expect(reg.Register(ctx, registry.KindFederationMapping, "sso_oidc_mapping", "sso_oidc_mapping", "ghost", nil)).To(Succeed())

	// Records owned by the live CR must survive.
	g.Expect(reg.Register(ctx, registry.KindProject, "live.example.se", "P1", "live", nil)).To(Succeed())

	mappings := map[string][]osclient.MappingRule{"sso_oidc_mapping": {ghostRule()}}
	d := &deletions{}
	s := state.NewFromParts(d.client(mappings), reg, kube)

	c := New(kube, s, logging.NewNopLogger(), time.Minute, "")
	g.Expect(c.tick(ctx)).To(Succeed())

	g.Expect(d.order).To(Equal([]string{
		"security_group:SG7",
		"subnet:S7",
		"network:N7",
		"group:G7",
		"project:P7",
	}))

	// No registry record with crName=ghost remains.
	for _, kind := range []registry.Kind{registry.KindProject, registry.KindGroup, registry.KindNetwork, registry.KindSecurityGroup} {
		recs, err := reg.GetByCR(ctx, kind, "ghost")
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(recs).To(BeEmpty(), string(kind))
	}

	// The live project's record is untouched.
	rec, err := reg.Get(ctx, registry.KindProject, "live.example.se")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(rec).NotTo(BeNil())

	// The ghost's federation rule is gone.
	g.Expect(mappings["sso_oidc_mapping"]).To(BeEmpty())
}

func TestTickTearsDownNetworkPlumbing(t *testing.T) {
	g := NewGomegaWithT(t)
	ctx := context.Background()

	scheme := runtime.NewScheme()
	g.Expect(v1alpha1.AddToScheme(scheme)).To(Succeed())
	g.Expect(corev1.AddToScheme(scheme)).To(Succeed())
	kube := kfake.NewClientBuilder().WithScheme(scheme).Build()

	reg := registry.New(kube, "openstack-operator")
	g.Expect(reg.Register(ctx, registry.KindNetwork, "ghost-net", "N7", "ghost",
		map[string]string{"subnet_id": "S7", "router_id": "R7"})).To(Succeed())

	routerOps := []string{}
	d := &deletions{}
	c := d.client(map[string][]osclient.MappingRule{})
	c.MockRemoveRouterInterface = func(_ context.Context, routerID, subnetID string) error {
		routerOps = append(routerOps, "detach:"+routerID+":"+subnetID)
		return nil
	}
	c.MockDeleteRouter = func(_ context.Context, id string) error {
		routerOps = append(routerOps, "router:"+id)
		return nil
	}

	s := state.NewFromParts(c, reg, kube)
	col := New(kube, s, logging.NewNopLogger(), time.Minute, "")
	g.Expect(col.tick(ctx)).To(Succeed())

	g.Expect(routerOps).To(Equal([]string{"detach:R7:S7", "router:R7"}))
	g.Expect(d.order).To(ContainElements("subnet:S7", "network:N7"))
}

func TestLegacyTaggedProjectsAreCollected(t *testing.T) {
	g := NewGomegaWithT(t)
	ctx := context.Background()

	scheme := runtime.NewScheme()
	g.Expect(v1alpha1.AddToScheme(scheme)).To(Succeed())
	g.Expect(corev1.AddToScheme(scheme)).To(Succeed())

	// A CR exists for kept.example.se; old-tenant has neither CR nor
	// registry record and must be reaped by the tag scan.
	live := &v1alpha1.Project{
		ObjectMeta: metav1.ObjectMeta{Name: "kept", Namespace: "tenants"},
		Spec:       v1alpha1.ProjectSpec{Name: "kept.example.se", Domain: "sso-users"},
	}
	kube := kfake.NewClientBuilder().WithScheme(scheme).WithObjects(live).Build()
	reg := registry.New(kube, "openstack-operator")

	d := &deletions{}
	c := d.client(map[string][]osclient.MappingRule{})
	c.MockGetDomain = func(_ context.Context, nameOrID string) (*osclient.Domain, error) {
		return &osclient.Domain{ID: "did", Name: nameOrID}, nil
	}
	c.MockListProjectsByTag = func(_ context.Context, domainID, tag string) ([]osclient.Project, error) {
		// The scan must use the legacy marker value verbatim; anything
		// else finds nothing at a real remote.
		g.Expect(domainID).To(Equal("did"))
		g.Expect(tag).To(Equal("managed-by-openstack-operator"))
		return []osclient.Project{
			{ID: "P-kept", Name: "kept.example.se"},
			{ID: "P-old", Name: "old-tenant"},
		}, nil
	}

	s := state.NewFromParts(c, reg, kube)
	col := New(kube, s, logging.NewNopLogger(), time.Minute, "sso-users")
	g.Expect(col.tick(ctx)).To(Succeed())

	g.Expect(d.order).To(Equal([]string{"project:P-old"}))
}
