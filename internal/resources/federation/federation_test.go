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

package federation

import (
	"context"
	"testing"

	. "github.com/onsi/gomega"
	kfake "sigs.k8s.io/controller-runtime/pkg/client/fake"

	osclient "github.com/sunet/openstack-operator/internal/clients/openstack"
	"github.com/sunet/openstack-operator/internal/clients/openstack/fake"
	"github.com/sunet/openstack-operator/internal/registry"
)

var testConfig = Config{IdPName: "sso", IdPRemoteID: "https://idp.example.se", SSODomain: "sso-users"}

// mappingStore wires a fake client's mapping operations to an in-memory
// document, so tests observe exactly what a sequence of add/remove calls
// leaves behind.
type mappingStore struct {
	rules map[string][]osclient.MappingRule
}

func newMappingStore() *mappingStore {
	return &mappingStore{rules: map[string][]osclient.MappingRule{}}
}

func (s *mappingStore) client() *fake.Client {
	return &fake.Client{
		MockGetMapping: func(_ context.Context, id string) (*osclient.Mapping, error) {
			r, ok := s.rules[id]
			if !ok {
				return nil, nil
			}
			return &osclient.Mapping{ID: id, Rules: r}, nil
		},
		MockCreateMapping: func(_ context.Context, id string, rules []osclient.MappingRule) (*osclient.Mapping, error) {
			s.rules[id] = rules
			return &osclient.Mapping{ID: id, Rules: rules}, nil
		},
		MockUpdateMapping: func(_ context.Context, id string, rules []osclient.MappingRule) (*osclient.Mapping, error) {
			s.rules[id] = rules
			return &osclient.Mapping{ID: id, Rules: rules}, nil
		},
	}
}

func newTestReconciler(c osclient.Client) *Reconciler {
	reg := registry.New(kfake.NewClientBuilder().Build(), "testing")
	return NewReconciler(c, reg, testConfig)
}

func rulesFor(s *mappingStore) []osclient.MappingRule {
	return s.rules[testConfig.MappingName()]
}

func anyOneOf(rule osclient.MappingRule) []string {
	remote := rule["remote"].([]interface{})
	matcher := remote[1].(map[string]interface{})
	return matcher["any_one_of"].([]string)
}

func TestAddProjectMappingIsIdempotent(t *testing.T) {
	g := NewGomegaWithT(t)
	ctx := context.Background()

	store := newMappingStore()
	r := newTestReconciler(store.client())

	users := []string{"alice@x", "bob@x", "alice@x"}
	g.Expect(r.AddProjectMapping(ctx, "cr-alpha", "alpha.example.se", users)).To(Succeed())
	g.Expect(r.AddProjectMapping(ctx, "cr-alpha", "alpha.example.se", users)).To(Succeed())

	rules := rulesFor(store)
	g.Expect(rules).To(HaveLen(1))
	g.Expect(ruleGroupName(rules[0])).To(Equal("alpha-example-se-users"))

	// Duplicate users collapse to one entry.
	g.Expect(anyOneOf(rules[0])).To(ConsistOf("alice@x", "bob@x"))
}

func TestAddProjectMappingPreservesOtherProjects(t *testing.T) {
	g := NewGomegaWithT(t)
	ctx := context.Background()

	store := newMappingStore()
	r := newTestReconciler(store.client())

	g.Expect(r.AddProjectMapping(ctx, "cr-alpha", "alpha.example.se", []string{"alice@x"})).To(Succeed())
	g.Expect(r.AddProjectMapping(ctx, "cr-beta", "beta.example.se", []string{"bob@x"})).To(Succeed())
	g.Expect(r.AddProjectMapping(ctx, "cr-alpha", "alpha.example.se", []string{"carol@x"})).To(Succeed())

	rules := rulesFor(store)
	g.Expect(rules).To(HaveLen(2))

	groups := []string{ruleGroupName(rules[0]), ruleGroupName(rules[1])}
	g.Expect(groups).To(ConsistOf("alpha-example-se-users", "beta-example-se-users"))
}

func TestRemoveProjectMapping(t *testing.T) {
	g := NewGomegaWithT(t)
	ctx := context.Background()

	store := newMappingStore()
	r := newTestReconciler(store.client())

	g.Expect(r.AddProjectMapping(ctx, "cr-alpha", "alpha.example.se", []string{"alice@x"})).To(Succeed())
	g.Expect(r.AddProjectMapping(ctx, "cr-beta", "beta.example.se", []string{"bob@x"})).To(Succeed())

	g.Expect(r.RemoveProjectMapping(ctx, "alpha.example.se")).To(Succeed())

	rules := rulesFor(store)
	g.Expect(rules).To(HaveLen(1))
	g.Expect(ruleGroupName(rules[0])).To(Equal("beta-example-se-users"))
}

func TestRemoveProjectMappingMissingMappingIsNoop(t *testing.T) {
	g := NewGomegaWithT(t)
	ctx := context.Background()

	store := newMappingStore()
	r := newTestReconciler(store.client())

	g.Expect(r.RemoveProjectMapping(ctx, "never-federated")).To(Succeed())
	g.Expect(rulesFor(store)).To(BeEmpty())
}

func TestEnsureIdentityProviderOnlyCreatesOnMiss(t *testing.T) {
	g := NewGomegaWithT(t)
	ctx := context.Background()

	created := 0
	c := &fake.Client{
		MockGetIdentityProvider: func(context.Context, string) (*osclient.IdentityProvider, error) {
			if created > 0 {
				return &osclient.IdentityProvider{ID: testConfig.IdPName}, nil
			}
			return nil, nil
		},
		MockCreateIdentityProvider: func(_ context.Context, id string, remoteIDs []string) (*osclient.IdentityProvider, error) {
			created++
			g.Expect(remoteIDs).To(ConsistOf(testConfig.IdPRemoteID))
			return &osclient.IdentityProvider{ID: id, RemoteIDs: remoteIDs}, nil
		},
	}

	r := newTestReconciler(c)
	g.Expect(r.EnsureIdentityProvider(ctx)).To(Succeed())
	g.Expect(r.EnsureIdentityProvider(ctx)).To(Succeed())
	g.Expect(created).To(Equal(1))
}

func TestMappingName(t *testing.T) {
	g := NewGomegaWithT(t)
	g.Expect(testConfig.MappingName()).To(Equal("sso_oidc_mapping"))
}
