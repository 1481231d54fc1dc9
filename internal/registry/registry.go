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

// Package registry tracks every OpenStack resource the operator manages in
// a single ConfigMap, one JSON blob per kind. It is the ground truth used
// by the garbage collectors to find orphans without relying on any
// tagging or naming convention at the remote.
package registry

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/crossplane/crossplane-runtime/pkg/errors"
	corev1 "k8s.io/api/core/v1"
	kerrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/client-go/util/retry"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/yaml"

	"github.com/sunet/openstack-operator/internal/metrics"
)

const (
	// ConfigMapName is the name of the ConfigMap that backs the registry.
	ConfigMapName = "openstack-operator-managed-resources"

	// DefaultNamespace is used when no namespace is supplied to New.
	DefaultNamespace = "openstack-operator"
)

// Kind enumerates the resource types the registry tracks. Each maps to one
// key ("<kind>.json") in the backing ConfigMap's data.
type Kind string

const (
	KindDomain            Kind = "domains"
	KindFlavor            Kind = "flavors"
	KindImage             Kind = "images"
	KindProviderNetwork   Kind = "provider_networks"
	KindProject           Kind = "projects"
	KindGroup             Kind = "groups"
	KindNetwork           Kind = "networks"
	KindSecurityGroup     Kind = "security_groups"
	KindFederationMapping Kind = "federation_mappings"
)

// Record is one managed resource's registry entry.
type Record struct {
	Name   string            `json:"-"`
	ID     string            `json:"id"`
	CRName string            `json:"cr_name"`
	Extra  map[string]string `json:"extra,omitempty"`
}

// Registry reads and writes managed-resource records through a single
// ConfigMap, using the object's resourceVersion for optimistic
// concurrency: every mutation (Register, Unregister) is a Get, in-memory
// edit, then Update, and mutate retries the whole cycle on a Conflict.
// Reads are a single Get with no Update.
type Registry struct {
	client    client.Client
	namespace string

	mu sync.Mutex
}

// New returns a Registry backed by cm's namespace, defaulting to
// DefaultNamespace when namespace is empty.
func New(c client.Client, namespace string) *Registry {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &Registry{client: c, namespace: namespace}
}

func (r *Registry) key() types.NamespacedName {
	return types.NamespacedName{Name: ConfigMapName, Namespace: r.namespace}
}

// getOrCreateConfigMap fetches the backing ConfigMap, creating it empty if
// it does not exist yet.
func (r *Registry) getOrCreateConfigMap(ctx context.Context) (*corev1.ConfigMap, error) {
	cm := &corev1.ConfigMap{}
	err := r.client.Get(ctx, r.key(), cm)
	if err == nil {
		return cm, nil
	}
	if !kerrors.IsNotFound(err) {
		return nil, errors.Wrap(err, "cannot get managed resources configmap")
	}

	cm = &corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{
			Name:      ConfigMapName,
			Namespace: r.namespace,
		},
		Data: map[string]string{},
	}
	if err := r.client.Create(ctx, cm); err != nil && !kerrors.IsAlreadyExists(err) {
		return nil, errors.Wrap(err, "cannot create managed resources configmap")
	}
	if err := r.client.Get(ctx, r.key(), cm); err != nil {
		return nil, errors.Wrap(err, "cannot get managed resources configmap after create")
	}
	return cm, nil
}

func dataKey(kind Kind) string { return string(kind) + ".json" }

func decodeRecords(cm *corev1.ConfigMap, kind Kind) (map[string]Record, error) {
	raw, ok := cm.Data[dataKey(kind)]
	if !ok || raw == "" {
		return map[string]Record{}, nil
	}
	out := map[string]Record{}
	if err := yaml.Unmarshal([]byte(raw), &out); err != nil {
		return nil, errors.Wrap(err, "cannot decode registry blob")
	}
	return out, nil
}

func encodeRecords(records map[string]Record) (string, error) {
	raw, err := json.Marshal(records)
	if err != nil {
		return "", errors.Wrap(err, "cannot encode registry blob")
	}
	return string(raw), nil
}

// mutate performs a read-modify-write cycle against the backing
// ConfigMap's kind key, retrying the whole cycle on a resourceVersion
// conflict.
func (r *Registry) mutate(ctx context.Context, kind Kind, fn func(records map[string]Record) (map[string]Record, error)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return retry.RetryOnConflict(retry.DefaultBackoff, func() error {
		cm, err := r.getOrCreateConfigMap(ctx)
		if err != nil {
			return err
		}

		records, err := decodeRecords(cm, kind)
		if err != nil {
			return err
		}

		updated, err := fn(records)
		if err != nil {
			return err
		}

		raw, err := encodeRecords(updated)
		if err != nil {
			return err
		}

		if cm.Data == nil {
			cm.Data = map[string]string{}
		}
		cm.Data[dataKey(kind)] = raw

		if err := r.client.Update(ctx, cm); err != nil {
			return err
		}

		metrics.ManagedResources.WithLabelValues(string(kind), "registered").Set(float64(len(updated)))
		return nil
	})
}

// Register records that name (the remote resource's name) identifies
// resourceID and is owned by crName, replacing any existing record for
// name, extra metadata included.
func (r *Registry) Register(ctx context.Context, kind Kind, name, resourceID, crName string, extra map[string]string) error {
	return r.mutate(ctx, kind, func(records map[string]Record) (map[string]Record, error) {
		records[name] = Record{ID: resourceID, CRName: crName, Extra: extra}
		return records, nil
	})
}

// Unregister removes name's record, if any.
func (r *Registry) Unregister(ctx context.Context, kind Kind, name string) error {
	return r.mutate(ctx, kind, func(records map[string]Record) (map[string]Record, error) {
		delete(records, name)
		return records, nil
	})
}

// Get returns name's record, or nil if it is not registered.
func (r *Registry) Get(ctx context.Context, kind Kind, name string) (*Record, error) {
	cm, err := r.getOrCreateConfigMap(ctx)
	if err != nil {
		return nil, err
	}
	records, err := decodeRecords(cm, kind)
	if err != nil {
		return nil, err
	}
	rec, ok := records[name]
	if !ok {
		return nil, nil
	}
	rec.Name = name
	return &rec, nil
}

// GetByCR returns every record owned by crName, sorted by name for
// deterministic test output.
func (r *Registry) GetByCR(ctx context.Context, kind Kind, crName string) ([]Record, error) {
	all, err := r.GetAll(ctx, kind)
	if err != nil {
		return nil, err
	}
	out := make([]Record, 0, len(all))
	for _, rec := range all {
		if rec.CRName == crName {
			out = append(out, rec)
		}
	}
	return out, nil
}

// GetAll returns every record of kind, sorted by name.
func (r *Registry) GetAll(ctx context.Context, kind Kind) ([]Record, error) {
	cm, err := r.getOrCreateConfigMap(ctx)
	if err != nil {
		return nil, err
	}
	records, err := decodeRecords(cm, kind)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(records))
	for name := range records {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Record, 0, len(records))
	for _, name := range names {
		rec := records[name]
		rec.Name = name
		out = append(out, rec)
	}
	return out, nil
}

// GetOrphans returns every record of kind whose CRName is not present in
// expectedCRNames, the set of CRs the caller observed still existing.
func (r *Registry) GetOrphans(ctx context.Context, kind Kind, expectedCRNames map[string]bool) ([]Record, error) {
	all, err := r.GetAll(ctx, kind)
	if err != nil {
		return nil, err
	}
	out := make([]Record, 0)
	for _, rec := range all {
		if !expectedCRNames[rec.CRName] {
			out = append(out, rec)
		}
	}
	return out, nil
}
