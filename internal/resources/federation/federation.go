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

// Package federation maintains the Keystone federation pieces that map
// OIDC identities to each project's user-group: one identity provider,
// one "openid" protocol, and one shared mapping document holding one rule
// per project. Because every Project CR that shares an IdP writes the
// same mapping document, every mutation here is a full fetch-modify-write
// of the latest remote state; a concurrent writer can still lose an
// update, and the Project drift timer re-adds the lost rule on its next
// tick.
package federation

import (
	"context"
	"encoding/json"

	"github.com/crossplane/crossplane-runtime/pkg/errors"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"

	osclient "github.com/sunet/openstack-operator/internal/clients/openstack"
	"github.com/sunet/openstack-operator/internal/registry"
	"github.com/sunet/openstack-operator/internal/util"
)

// ProtocolOpenID is the federation protocol the mapping is bound under.
const ProtocolOpenID = "openid"

// ConfigMap keys a federationRef points at.
const (
	KeyIdPName     = "idp-name"
	KeyIdPRemoteID = "idp-remote-id"
	KeySSODomain   = "sso-domain"
)

// RemoteTypeOIDCSub is the OIDC claim federation rules match users on.
const RemoteTypeOIDCSub = "HTTP_OIDC_SUB"

// Config holds the identity-provider settings shared by every project
// federated through the same SSO.
type Config struct {
	IdPName     string
	IdPRemoteID string
	SSODomain   string
}

// MappingName derives the shared mapping document's name from the IdP
// name.
func (c Config) MappingName() string {
	return c.IdPName + "_oidc_mapping"
}

// LoadConfig reads a federation Config from the ConfigMap a Project's
// federationRef names. A missing key is a permanent spec error for the
// referring Project.
func LoadConfig(ctx context.Context, kube client.Client, namespace, name string) (*Config, error) {
	cm := &corev1.ConfigMap{}
	if err := kube.Get(ctx, types.NamespacedName{Namespace: namespace, Name: name}, cm); err != nil {
		return nil, errors.Wrap(err, "cannot get federation configmap")
	}

	cfg := &Config{
		IdPName:     cm.Data[KeyIdPName],
		IdPRemoteID: cm.Data[KeyIdPRemoteID],
		SSODomain:   cm.Data[KeySSODomain],
	}
	if cfg.IdPName == "" || cfg.IdPRemoteID == "" || cfg.SSODomain == "" {
		return nil, errors.Errorf("federation configmap %q must set %s, %s and %s", name, KeyIdPName, KeyIdPRemoteID, KeySSODomain)
	}
	return cfg, nil
}

// Reconciler converges the remote IdP, protocol and shared mapping
// document for one federation Config.
type Reconciler struct {
	client osclient.Client
	reg    *registry.Registry
	cfg    Config
}

// NewReconciler returns a Reconciler for cfg backed by c and reg.
func NewReconciler(c osclient.Client, reg *registry.Registry, cfg Config) *Reconciler {
	return &Reconciler{client: c, reg: reg, cfg: cfg}
}

// EnsureIdentityProvider finds or creates the identity provider with the
// configured remote id.
func (r *Reconciler) EnsureIdentityProvider(ctx context.Context) error {
	idp, err := r.client.GetIdentityProvider(ctx, r.cfg.IdPName)
	if err != nil {
		return errors.Wrap(err, "cannot get identity provider")
	}
	if idp != nil {
		return nil
	}
	_, err = r.client.CreateIdentityProvider(ctx, r.cfg.IdPName, []string{r.cfg.IdPRemoteID})
	return errors.Wrap(err, "cannot create identity provider")
}

// EnsureProtocol finds or creates the openid protocol binding the mapping
// to the identity provider.
func (r *Reconciler) EnsureProtocol(ctx context.Context) error {
	p, err := r.client.GetFederationProtocol(ctx, r.cfg.IdPName, ProtocolOpenID)
	if err != nil {
		return errors.Wrap(err, "cannot get federation protocol")
	}
	if p != nil {
		return nil
	}
	_, err = r.client.CreateFederationProtocol(ctx, r.cfg.IdPName, ProtocolOpenID, r.cfg.MappingName())
	return errors.Wrap(err, "cannot create federation protocol")
}

// projectRule builds the mapping rule for one project: an ephemeral user
// in the SSO domain plus membership of the project's group, matched on
// the OIDC subject being one of users.
func (r *Reconciler) projectRule(groupName string, users []string) osclient.MappingRule {
	domain := map[string]interface{}{"name": r.cfg.SSODomain}
	return osclient.MappingRule{
		"local": []interface{}{
			map[string]interface{}{
				"user": map[string]interface{}{
					"name":   "{0}",
					"domain": domain,
					"type":   "ephemeral",
				},
			},
			map[string]interface{}{
				"group": map[string]interface{}{
					"name":   groupName,
					"domain": domain,
				},
			},
		},
		"remote": []interface{}{
			map[string]interface{}{"type": RemoteTypeOIDCSub},
			map[string]interface{}{"type": RemoteTypeOIDCSub, "any_one_of": dedup(users)},
		},
	}
}

func dedup(users []string) []string {
	seen := make(map[string]bool, len(users))
	out := make([]string, 0, len(users))
	for _, u := range users {
		if seen[u] {
			continue
		}
		seen[u] = true
		out = append(out, u)
	}
	return out
}

// ruleGroupName extracts the local group name a rule targets, tolerating
// both the map-shaped rules this package writes and the typed structs the
// remote client returns, by round-tripping through JSON.
func ruleGroupName(rule osclient.MappingRule) string {
	raw, err := json.Marshal(rule)
	if err != nil {
		return ""
	}
	var parsed struct {
		Local []struct {
			Group *struct {
				Name string `json:"name"`
			} `json:"group"`
		} `json:"local"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return ""
	}
	for _, l := range parsed.Local {
		if l.Group != nil && l.Group.Name != "" {
			return l.Group.Name
		}
	}
	return ""
}

// dropProjectRules returns rules without any rule targeting groupName,
// and whether anything was dropped.
func dropProjectRules(rules []osclient.MappingRule, groupName string) ([]osclient.MappingRule, bool) {
	out := make([]osclient.MappingRule, 0, len(rules))
	dropped := false
	for _, rule := range rules {
		if ruleGroupName(rule) == groupName {
			dropped = true
			continue
		}
		out = append(out, rule)
	}
	return out, dropped
}

// AddProjectMapping replaces projectName's rule in the shared mapping
// with one matching users, creating the mapping, identity provider and
// protocol if any of them is missing. crName is the owning Project CR,
// recorded against the mapping in the registry.
func (r *Reconciler) AddProjectMapping(ctx context.Context, crName, projectName string, users []string) error {
	groupName := util.MakeGroupName(projectName)
	mappingName := r.cfg.MappingName()

	mapping, err := r.client.GetMapping(ctx, mappingName)
	if err != nil {
		return errors.Wrap(err, "cannot get mapping")
	}

	var rules []osclient.MappingRule
	if mapping != nil {
		rules, _ = dropProjectRules(mapping.Rules, groupName)
	}
	rules = append(rules, r.projectRule(groupName, users))

	if mapping == nil {
		if _, err := r.client.CreateMapping(ctx, mappingName, rules); err != nil {
			return errors.Wrap(err, "cannot create mapping")
		}
	} else {
		if _, err := r.client.UpdateMapping(ctx, mappingName, rules); err != nil {
			return errors.Wrap(err, "cannot update mapping")
		}
	}

	if err := r.EnsureIdentityProvider(ctx); err != nil {
		return err
	}
	if err := r.EnsureProtocol(ctx); err != nil {
		return err
	}

	extra := map[string]string{"idp_name": r.cfg.IdPName}
	return errors.Wrap(r.reg.Register(ctx, registry.KindFederationMapping, mappingName, mappingName, crName, extra), "cannot register mapping")
}

// RemoveProjectMapping drops projectName's rule from the shared mapping,
// writing back only if a rule was actually removed. The mapping document
// itself is left in place: other projects share it.
func (r *Reconciler) RemoveProjectMapping(ctx context.Context, projectName string) error {
	return RemoveProjectRules(ctx, r.client, r.cfg.MappingName(), projectName)
}

// RemoveProjectRules drops projectName's rule from the named mapping.
// The garbage collector uses this directly: it knows the mapping name
// from the registry but has no federation ConfigMap to build a full
// Config from.
func RemoveProjectRules(ctx context.Context, c osclient.Client, mappingName, projectName string) error {
	groupName := util.MakeGroupName(projectName)

	mapping, err := c.GetMapping(ctx, mappingName)
	if err != nil {
		return errors.Wrap(err, "cannot get mapping")
	}
	if mapping == nil {
		return nil
	}

	rules, dropped := dropProjectRules(mapping.Rules, groupName)
	if !dropped {
		return nil
	}

	_, err = c.UpdateMapping(ctx, mapping.ID, rules)
	return errors.Wrap(err, "cannot update mapping")
}
