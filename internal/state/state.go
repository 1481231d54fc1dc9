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

// Package state holds the handles every reconciler shares: the rate
// limited OpenStack client and the managed-resource registry. Both are
// created lazily on first use so a reconciler can be constructed before
// the manager's client cache is ready.
package state

import (
	"context"
	"sync"

	"sigs.k8s.io/controller-runtime/pkg/client"

	osclient "github.com/sunet/openstack-operator/internal/clients/openstack"
	"github.com/sunet/openstack-operator/internal/registry"
)

// State is shared by every reconciler and GC runnable in the operator.
// All three getters are safe for concurrent use.
type State struct {
	mu sync.Mutex

	clientCfg osclient.Config
	kube      client.Client
	namespace string

	client   osclient.Client
	registry *registry.Registry
}

// New returns a State that will lazily build its OpenStack client from
// cfg and its registry against kube in namespace.
func New(cfg osclient.Config, kube client.Client, namespace string) *State {
	return &State{clientCfg: cfg, kube: kube, namespace: namespace}
}

// NewFromParts returns a State with pre-built handles. Tests use it to
// inject a fake OpenStack client and a registry over a fake kube client.
func NewFromParts(c osclient.Client, reg *registry.Registry, kube client.Client) *State {
	return &State{client: c, registry: reg, kube: kube}
}

// Client returns the shared OpenStack client, authenticating on first
// call.
func (s *State) Client(ctx context.Context) (osclient.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client != nil {
		return s.client, nil
	}

	c, err := osclient.NewClient(ctx, s.clientCfg)
	if err != nil {
		return nil, err
	}
	s.client = c
	return s.client, nil
}

// Registry returns the shared managed-resource registry, constructing it
// on first call.
func (s *State) Registry() *registry.Registry {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.registry == nil {
		s.registry = registry.New(s.kube, s.namespace)
	}
	return s.registry
}

// Core returns the controller-runtime client used for core API object
// access (ConfigMaps, Secrets) outside of the managed CRs themselves.
func (s *State) Core() client.Client {
	return s.kube
}
