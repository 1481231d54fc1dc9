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

package securitygroup

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

func TestEnsureResolvesSiblingGroupReferences(t *testing.T) {
	g := NewGomegaWithT(t)
	ctx := context.Background()

	nextID := map[string]string{"web": "sg-web", "db": "sg-db"}
	rules := []osclient.SecurityGroupRule{}
	c := &fake.Client{
		MockGetSecurityGroup: func(context.Context, string, string) (*osclient.SecurityGroup, error) {
			return nil, nil
		},
		MockCreateSecurityGroup: func(_ context.Context, name, projectID, description string) (*osclient.SecurityGroup, error) {
			return &osclient.SecurityGroup{ID: nextID[name], Name: name, ProjectID: projectID, Description: description}, nil
		},
		MockCreateSecurityGroupRule: func(_ context.Context, r osclient.SecurityGroupRule) (*osclient.SecurityGroupRule, error) {
			rules = append(rules, r)
			return &r, nil
		},
	}

	specs := []v1alpha1.SecurityGroupSpec{
		{Name: "web", Rules: []v1alpha1.SecurityGroupRuleSpec{
			// References db, which is declared after web.
			{Direction: "ingress", Protocol: "tcp", RemoteGroupName: "db"},
		}},
		{Name: "db", Rules: []v1alpha1.SecurityGroupRuleSpec{
			{Direction: "ingress", Protocol: "tcp", RemoteGroupName: "web"},
		}},
	}

	statuses, err := Ensure(ctx, c, newTestRegistry(), "cr-a", "pid", specs)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(statuses).To(Equal([]v1alpha1.ProjectSecurityGroupStatus{
		{Name: "web", ID: "sg-web"},
		{Name: "db", ID: "sg-db"},
	}))

	g.Expect(rules).To(HaveLen(2))
	g.Expect(rules[0].SecurityGroupID).To(Equal("sg-web"))
	g.Expect(rules[0].RemoteGroupID).To(Equal("sg-db"))
	g.Expect(rules[1].SecurityGroupID).To(Equal("sg-db"))
	g.Expect(rules[1].RemoteGroupID).To(Equal("sg-web"))
}

func TestEnsureReusesExistingGroups(t *testing.T) {
	g := NewGomegaWithT(t)
	ctx := context.Background()

	created := 0
	c := &fake.Client{
		MockGetSecurityGroup: func(_ context.Context, name, projectID string) (*osclient.SecurityGroup, error) {
			return &osclient.SecurityGroup{ID: "sg-existing", Name: name, ProjectID: projectID}, nil
		},
		MockCreateSecurityGroup: func(context.Context, string, string, string) (*osclient.SecurityGroup, error) {
			created++
			return nil, nil
		},
	}

	specs := []v1alpha1.SecurityGroupSpec{{Name: "web"}}
	statuses, err := Ensure(ctx, c, newTestRegistry(), "cr-a", "pid", specs)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(created).To(Equal(0))
	g.Expect(statuses[0].ID).To(Equal("sg-existing"))
}

func TestEnsureRejectsUnknownRemoteGroupName(t *testing.T) {
	g := NewGomegaWithT(t)
	ctx := context.Background()

	c := &fake.Client{
		MockCreateSecurityGroup: func(_ context.Context, name, projectID, _ string) (*osclient.SecurityGroup, error) {
			return &osclient.SecurityGroup{ID: "sg-" + name, Name: name, ProjectID: projectID}, nil
		},
	}

	specs := []v1alpha1.SecurityGroupSpec{
		{Name: "web", Rules: []v1alpha1.SecurityGroupRuleSpec{
			{Direction: "ingress", RemoteGroupName: "not-declared"},
		}},
	}

	_, err := Ensure(ctx, c, newTestRegistry(), "cr-a", "pid", specs)
	g.Expect(err).To(HaveOccurred())
	g.Expect(err.Error()).To(ContainSubstring("not-declared"))
}
