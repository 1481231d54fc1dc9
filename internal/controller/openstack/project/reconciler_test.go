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

package project

import (
	"context"
	"fmt"
	"testing"
	"time"

	. "github.com/onsi/gomega"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"
	kfake "sigs.k8s.io/controller-runtime/pkg/client/fake"
	"sigs.k8s.io/controller-runtime/pkg/reconcile"

	"github.com/crossplane/crossplane-runtime/pkg/event"
	"github.com/crossplane/crossplane-runtime/pkg/logging"
	"github.com/crossplane/crossplane-runtime/pkg/resource"

	v1alpha1 "github.com/sunet/openstack-operator/apis/openstack/v1alpha1"
	osclient "github.com/sunet/openstack-operator/internal/clients/openstack"
	"github.com/sunet/openstack-operator/internal/clients/openstack/fake"
	"github.com/sunet/openstack-operator/internal/registry"
	"github.com/sunet/openstack-operator/internal/state"
)

var testTime = time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)

// cloud is a tiny in-memory Keystone/Neutron standing in for the remote,
// enough to run a Project reconcile end to end.
type cloud struct {
	projects map[string]*osclient.Project
	groups   map[string]*osclient.Group
	networks map[string]*osclient.Network
	subnets  map[string]*osclient.Subnet
	routers  map[string]*osclient.Router
	mappings map[string][]osclient.MappingRule

	seq int
}

func newCloud() *cloud {
	return &cloud{
		projects: map[string]*osclient.Project{},
		groups:   map[string]*osclient.Group{},
		networks: map[string]*osclient.Network{},
		subnets:  map[string]*osclient.Subnet{},
		routers:  map[string]*osclient.Router{},
		mappings: map[string][]osclient.MappingRule{},
	}
}

func (cl *cloud) id(prefix string) string {
	cl.seq++
	return fmt.Sprintf("%s-%d", prefix, cl.seq)
}

func (cl *cloud) client() *fake.Client {
	return &fake.Client{
		MockGetDomain: func(_ context.Context, nameOrID string) (*osclient.Domain, error) {
			return &osclient.Domain{ID: "did", Name: nameOrID, Enabled: true}, nil
		},
		MockGetProject: func(_ context.Context, name, _ string) (*osclient.Project, error) {
			return cl.projects[name], nil
		},
		MockCreateProject: func(_ context.Context, name, domainID, description string, enabled bool) (*osclient.Project, error) {
			p := &osclient.Project{ID: cl.id("pid"), Name: name, DomainID: domainID, Description: description, Enabled: enabled}
			cl.projects[name] = p
			return p, nil
		},
		MockDeleteProject: func(_ context.Context, id string) error {
			for name, p := range cl.projects {
				if p.ID == id {
					delete(cl.projects, name)
				}
			}
			return nil
		},
		MockGetGroup: func(_ context.Context, name, _ string) (*osclient.Group, error) {
			return cl.groups[name], nil
		},
		MockCreateGroup: func(_ context.Context, name, domainID, description string) (*osclient.Group, error) {
			grp := &osclient.Group{ID: cl.id("gid"), Name: name, DomainID: domainID, Description: description}
			cl.groups[name] = grp
			return grp, nil
		},
		MockDeleteGroup: func(_ context.Context, id string) error {
			for name, grp := range cl.groups {
				if grp.ID == id {
					delete(cl.groups, name)
				}
			}
			return nil
		},
		MockGetRole: func(_ context.Context, name string) (*osclient.Role, error) {
			return &osclient.Role{ID: "rid-" + name, Name: name}, nil
		},
		MockGetUser: func(_ context.Context, name, _ string) (*osclient.User, error) {
			return &osclient.User{ID: "uid-" + name, Name: name}, nil
		},
		MockGetNetwork: func(_ context.Context, name, _ string) (*osclient.Network, error) {
			return cl.networks[name], nil
		},
		MockCreateNetwork: func(_ context.Context, name, projectID string) (*osclient.Network, error) {
			n := &osclient.Network{ID: cl.id("net"), Name: name, ProjectID: projectID}
			cl.networks[name] = n
			return n, nil
		},
		MockGetSubnet: func(_ context.Context, name, _ string) (*osclient.Subnet, error) {
			return cl.subnets[name], nil
		},
		MockCreateSubnet: func(_ context.Context, name, networkID, cidr string, _ bool, _ []string) (*osclient.Subnet, error) {
			s := &osclient.Subnet{ID: cl.id("sub"), Name: name, NetworkID: networkID, CIDR: cidr}
			cl.subnets[name] = s
			return s, nil
		},
		MockGetExternalNetwork: func(_ context.Context, name string) (*osclient.Network, error) {
			return &osclient.Network{ID: "ext-1", Name: name, External: true}, nil
		},
		MockGetRouter: func(_ context.Context, name, _ string) (*osclient.Router, error) {
			return cl.routers[name], nil
		},
		MockCreateRouter: func(_ context.Context, name, projectID, externalNetworkID string, snat bool) (*osclient.Router, error) {
			r := &osclient.Router{ID: cl.id("rtr"), Name: name, ProjectID: projectID, ExternalNetworkID: externalNetworkID, EnableSNAT: snat}
			cl.routers[name] = r
			return r, nil
		},
		MockGetMapping: func(_ context.Context, id string) (*osclient.Mapping, error) {
			rules, ok := cl.mappings[id]
			if !ok {
				return nil, nil
			}
			return &osclient.Mapping{ID: id, Rules: rules}, nil
		},
		MockCreateMapping: func(_ context.Context, id string, rules []osclient.MappingRule) (*osclient.Mapping, error) {
			cl.mappings[id] = rules
			return &osclient.Mapping{ID: id, Rules: rules}, nil
		},
		MockUpdateMapping: func(_ context.Context, id string, rules []osclient.MappingRule) (*osclient.Mapping, error) {
			cl.mappings[id] = rules
			return &osclient.Mapping{ID: id, Rules: rules}, nil
		},
	}
}

func testScheme(t *testing.T) *runtime.Scheme {
	t.Helper()
	s := runtime.NewScheme()
	if err := corev1.AddToScheme(s); err != nil {
		t.Fatal(err)
	}
	if err := v1alpha1.AddToScheme(s); err != nil {
		t.Fatal(err)
	}
	return s
}

func fedConfigMap(ns string) *corev1.ConfigMap {
	return &corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{Name: "fed", Namespace: ns},
		Data: map[string]string{
			"idp-name":      "sso",
			"idp-remote-id": "https://idp.example.se",
			"sso-domain":    "sso-users",
		},
	}
}

func alphaProject() *v1alpha1.Project {
	return &v1alpha1.Project{
		ObjectMeta: metav1.ObjectMeta{Name: "alpha", Namespace: "tenants", Generation: 1},
		Spec: v1alpha1.ProjectSpec{
			Name:    "alpha.example.se",
			Domain:  "sso-users",
			Enabled: true,
			Networks: []v1alpha1.ProjectNetworkSpec{
				{Name: "internal", CIDR: "10.0.0.0/24", DHCP: true},
				{Name: "dmz", CIDR: "10.0.1.0/24", DHCP: true, Router: &v1alpha1.RouterSpec{ExternalNetwork: "public", SNAT: true}},
			},
			RoleBindings:  []v1alpha1.RoleBindingSpec{{Role: "member", Users: []string{"alice@x"}}},
			FederationRef: &v1alpha1.FederationConfigRef{ConfigMapName: "fed"},
		},
	}
}

type harness struct {
	r     *Reconciler
	kube  client.Client
	cloud *cloud
	reg   *registry.Registry
}

func newHarness(t *testing.T, objs ...client.Object) *harness {
	t.Helper()

	kube := kfake.NewClientBuilder().
		WithScheme(testScheme(t)).
		WithObjects(objs...).
		WithStatusSubresource(&v1alpha1.Project{}).
		Build()

	cl := newCloud()
	reg := registry.New(kube, "openstack-operator")
	s := state.NewFromParts(cl.client(), reg, kube)

	r := &Reconciler{
		kube:      kube,
		state:     s,
		finalizer: resource.NewAPIFinalizer(kube, v1alpha1.Finalizer),
		now:       func() time.Time { return testTime },
		log:       logging.NewNopLogger(),
		record:    event.NewNopRecorder(),
	}
	return &harness{r: r, kube: kube, cloud: cl, reg: reg}
}

func (h *harness) reconcile(t *testing.T) reconcile.Result {
	t.Helper()
	res, err := h.r.Reconcile(context.Background(), reconcile.Request{
		NamespacedName: types.NamespacedName{Name: "alpha", Namespace: "tenants"},
	})
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	return res
}

func (h *harness) get(t *testing.T) *v1alpha1.Project {
	t.Helper()
	cr := &v1alpha1.Project{}
	if err := h.kube.Get(context.Background(), types.NamespacedName{Name: "alpha", Namespace: "tenants"}, cr); err != nil {
		t.Fatalf("Get: %v", err)
	}
	return cr
}

func TestCreateProjectWithNetworksAndFederation(t *testing.T) {
	g := NewGomegaWithT(t)
	ctx := context.Background()

	h := newHarness(t, alphaProject(), fedConfigMap("tenants"))
	h.reconcile(t)

	cr := h.get(t)
	g.Expect(cr.Status.Phase).To(Equal(v1alpha1.PhaseReady))
	g.Expect(cr.Status.ObservedGeneration).To(Equal(int64(1)))
	g.Expect(cr.Status.ProjectID).NotTo(BeEmpty())
	g.Expect(cr.Status.GroupID).NotTo(BeEmpty())
	g.Expect(cr.Status.LastSyncTime).To(Equal("2024-07-01T12:00:00Z"))

	// The derived user-group exists under its sanitised name.
	g.Expect(h.cloud.groups).To(HaveKey("alpha-example-se-users"))

	// Two networks, two subnets, exactly one router on dmz.
	g.Expect(cr.Status.Networks).To(HaveLen(2))
	g.Expect(cr.Status.Networks[0].Name).To(Equal("internal"))
	g.Expect(cr.Status.Networks[0].RouterID).To(BeEmpty())
	g.Expect(cr.Status.Networks[1].Name).To(Equal("dmz"))
	g.Expect(cr.Status.Networks[1].RouterID).NotTo(BeEmpty())
	g.Expect(h.cloud.subnets).To(HaveKey("internal-subnet"))
	g.Expect(h.cloud.subnets).To(HaveKey("dmz-subnet"))
	g.Expect(h.cloud.routers).To(HaveLen(1))

	// One federation rule, scoped to this project's group and users.
	rules := h.cloud.mappings["sso_oidc_mapping"]
	g.Expect(rules).To(HaveLen(1))
	local := rules[0]["local"].([]interface{})
	grp := local[1].(map[string]interface{})["group"].(map[string]interface{})
	g.Expect(grp["name"]).To(Equal("alpha-example-se-users"))
	remote := rules[0]["remote"].([]interface{})
	g.Expect(remote[1].(map[string]interface{})["any_one_of"]).To(Equal([]string{"alice@x"}))

	// Registry records every created resource against this CR.
	rec, err := h.reg.Get(ctx, registry.KindProject, "alpha.example.se")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(rec).NotTo(BeNil())
	g.Expect(rec.CRName).To(Equal("alpha"))
	g.Expect(rec.ID).To(Equal(cr.Status.ProjectID))

	nets, err := h.reg.GetByCR(ctx, registry.KindNetwork, "alpha")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(nets).To(HaveLen(2))
}

func TestCreateIsIdempotent(t *testing.T) {
	g := NewGomegaWithT(t)

	h := newHarness(t, alphaProject(), fedConfigMap("tenants"))
	h.reconcile(t)
	first := h.get(t)

	// Force a second full sync pass with a spec change that touches no
	// remote identity.
	first.Spec.Description = "updated"
	first.Generation = 2
	g.Expect(h.kube.Update(context.Background(), first)).To(Succeed())
	h.reconcile(t)

	second := h.get(t)
	g.Expect(second.Status.ProjectID).To(Equal(first.Status.ProjectID))
	g.Expect(second.Status.GroupID).To(Equal(first.Status.GroupID))
	g.Expect(second.Status.Networks).To(Equal(first.Status.Networks))
	g.Expect(h.cloud.mappings["sso_oidc_mapping"]).To(HaveLen(1))
}

func TestMissingSpecFieldsArePermanent(t *testing.T) {
	g := NewGomegaWithT(t)

	cr := alphaProject()
	cr.Spec.Domain = ""
	h := newHarness(t, cr, fedConfigMap("tenants"))

	res := h.reconcile(t)
	g.Expect(res.RequeueAfter).To(BeZero())

	got := h.get(t)
	g.Expect(got.Status.Phase).To(Equal(v1alpha1.PhaseError))
}

func TestDriftResetsWhenRemoteProjectGone(t *testing.T) {
	g := NewGomegaWithT(t)

	h := newHarness(t, alphaProject(), fedConfigMap("tenants"))
	h.reconcile(t)
	g.Expect(h.get(t).Status.Phase).To(Equal(v1alpha1.PhaseReady))

	// Delete the project at the remote, out of band.
	delete(h.cloud.projects, "alpha.example.se")

	h.reconcile(t)
	cr := h.get(t)
	g.Expect(cr.Status.Phase).To(Equal(v1alpha1.PhasePending))
	g.Expect(cr.Status.ProjectID).To(BeEmpty())
	g.Expect(cr.Status.GroupID).To(BeEmpty())

	// The next pass recreates everything.
	h.reconcile(t)
	cr = h.get(t)
	g.Expect(cr.Status.Phase).To(Equal(v1alpha1.PhaseReady))
	g.Expect(cr.Status.ProjectID).NotTo(BeEmpty())
}

func TestDriftRepairsNonUUIDGroupID(t *testing.T) {
	g := NewGomegaWithT(t)

	h := newHarness(t, alphaProject(), fedConfigMap("tenants"))
	h.reconcile(t)

	// Simulate a legacy status where the group name was stored instead
	// of the id.
	cr := h.get(t)
	cr.Status.GroupID = "alpha-example-se-users"
	g.Expect(h.kube.Status().Update(context.Background(), cr)).To(Succeed())

	// Make the remote group id look like a UUID so the repair is
	// observable.
	h.cloud.groups["alpha-example-se-users"].ID = "6ba7b810-9dad-11d1-80b4-00c04fd430c8"

	h.reconcile(t)
	g.Expect(h.get(t).Status.GroupID).To(Equal("6ba7b810-9dad-11d1-80b4-00c04fd430c8"))
}

func TestDeleteTearsDownAndRemovesFinalizer(t *testing.T) {
	g := NewGomegaWithT(t)
	ctx := context.Background()

	h := newHarness(t, alphaProject(), fedConfigMap("tenants"))
	h.reconcile(t)

	g.Expect(h.kube.Delete(ctx, h.get(t))).To(Succeed())
	h.reconcile(t)

	// The CR is gone once the finalizer is removed.
	err := h.kube.Get(ctx, types.NamespacedName{Name: "alpha", Namespace: "tenants"}, &v1alpha1.Project{})
	g.Expect(err).To(HaveOccurred())

	// Remote and registry are both clean.
	g.Expect(h.cloud.projects).To(BeEmpty())
	g.Expect(h.cloud.groups).To(BeEmpty())
	g.Expect(h.cloud.mappings["sso_oidc_mapping"]).To(BeEmpty())

	rec, err := h.reg.Get(ctx, registry.KindProject, "alpha.example.se")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(rec).To(BeNil())
}
