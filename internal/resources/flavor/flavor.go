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

// Package flavor manages OpenStack Nova flavors. Every core attribute of
// a flavor is immutable at the remote, so a spec change to any of them is
// realised as a delete of the old flavor followed by a create of a new
// one with a new id. Only extra specs can be updated in place.
package flavor

import (
	"context"

	"github.com/crossplane/crossplane-runtime/pkg/errors"
	"github.com/google/go-cmp/cmp"

	v1alpha1 "github.com/sunet/openstack-operator/apis/openstack/v1alpha1"
	osclient "github.com/sunet/openstack-operator/internal/clients/openstack"
	"github.com/sunet/openstack-operator/internal/registry"
)

// core is the immutable attribute set of a flavor, used to decide
// between an in-place update and a delete-then-create.
type core struct {
	VCPUs     int
	RAMMB     int
	DiskGB    int
	Ephemeral int
	Swap      int
	IsPublic  bool
}

func coreOf(f *osclient.Flavor) core {
	return core{
		VCPUs:     f.VCPUs,
		RAMMB:     f.RAMMB,
		DiskGB:    f.DiskGB,
		Ephemeral: f.Ephemeral,
		Swap:      f.Swap,
		IsPublic:  f.IsPublic,
	}
}

func coreFromSpec(spec v1alpha1.FlavorSpec) core {
	return core{
		VCPUs:     int(spec.VCPUs),
		RAMMB:     int(spec.RAM),
		DiskGB:    int(spec.Disk),
		Ephemeral: int(spec.Ephemeral),
		Swap:      int(spec.Swap),
		IsPublic:  spec.IsPublic,
	}
}

// NeedsRecreate reports whether converging current to spec requires
// deleting and recreating the flavor rather than updating it in place.
func NeedsRecreate(current *osclient.Flavor, spec v1alpha1.FlavorSpec) bool {
	return !cmp.Equal(coreOf(current), coreFromSpec(spec))
}

func fromSpec(spec v1alpha1.FlavorSpec) osclient.Flavor {
	return osclient.Flavor{
		Name:       spec.Name,
		VCPUs:      int(spec.VCPUs),
		RAMMB:      int(spec.RAM),
		DiskGB:     int(spec.Disk),
		Ephemeral:  int(spec.Ephemeral),
		Swap:       int(spec.Swap),
		IsPublic:   spec.IsPublic,
		ExtraSpecs: spec.ExtraSpecs,
	}
}

// Ensure finds or creates the flavor named spec.Name. When a flavor of
// that name exists but differs from spec in an immutable attribute, it is
// deleted and recreated; recreated reports whether that path was taken so
// the reconciler can surface it in the CR's conditions.
func Ensure(ctx context.Context, c osclient.Client, reg *registry.Registry, crName string, spec v1alpha1.FlavorSpec) (f *osclient.Flavor, recreated bool, err error) {
	existing, err := c.GetFlavor(ctx, spec.Name)
	if err != nil {
		return nil, false, errors.Wrap(err, "cannot get flavor")
	}

	switch {
	case existing == nil:
		existing, err = c.CreateFlavor(ctx, fromSpec(spec))
		if err != nil {
			return nil, false, errors.Wrap(err, "cannot create flavor")
		}

	case NeedsRecreate(existing, spec):
		if err := c.DeleteFlavor(ctx, existing.ID); err != nil {
			return nil, false, errors.Wrap(err, "cannot delete flavor for recreate")
		}
		existing, err = c.CreateFlavor(ctx, fromSpec(spec))
		if err != nil {
			return nil, false, errors.Wrap(err, "cannot recreate flavor")
		}
		recreated = true

	case !extraSpecsEqual(existing.ExtraSpecs, spec.ExtraSpecs):
		if err := c.UpdateFlavorExtraSpecs(ctx, existing.ID, spec.ExtraSpecs); err != nil {
			return nil, false, errors.Wrap(err, "cannot update flavor extra specs")
		}
		existing.ExtraSpecs = spec.ExtraSpecs
	}

	if err := reg.Register(ctx, registry.KindFlavor, spec.Name, existing.ID, crName, nil); err != nil {
		return nil, false, errors.Wrap(err, "cannot register flavor")
	}
	return existing, recreated, nil
}

// extraSpecsEqual treats nil and empty maps as equal so an unset spec
// never diffs against a remote that reports an empty map.
func extraSpecsEqual(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}

// Delete removes the flavor and its registry record. A missing remote
// flavor is not an error.
func Delete(ctx context.Context, c osclient.Client, reg *registry.Registry, name, id string) error {
	if id != "" {
		if err := c.DeleteFlavor(ctx, id); err != nil {
			return errors.Wrap(err, "cannot delete flavor")
		}
	}
	return reg.Unregister(ctx, registry.KindFlavor, name)
}
