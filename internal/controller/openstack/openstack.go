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

// Package openstack wires every OpenStack controller and both garbage
// collectors into a controller manager.
package openstack

import (
	"time"

	ctrl "sigs.k8s.io/controller-runtime"

	"github.com/crossplane/crossplane-runtime/pkg/controller"
	"github.com/crossplane/crossplane-runtime/pkg/errors"

	"github.com/sunet/openstack-operator/internal/controller/openstack/domain"
	"github.com/sunet/openstack-operator/internal/controller/openstack/flavor"
	"github.com/sunet/openstack-operator/internal/controller/openstack/gc/cluster"
	"github.com/sunet/openstack-operator/internal/controller/openstack/gc/namespaced"
	"github.com/sunet/openstack-operator/internal/controller/openstack/image"
	"github.com/sunet/openstack-operator/internal/controller/openstack/project"
	"github.com/sunet/openstack-operator/internal/controller/openstack/providernetwork"
	"github.com/sunet/openstack-operator/internal/state"
)

// GCOptions configures the two garbage collectors.
type GCOptions struct {
	// ProjectInterval is the namespaced sweep cadence.
	ProjectInterval time.Duration

	// ClusterInterval is the cluster-scoped sweep cadence.
	ClusterInterval time.Duration

	// ManagedDomain is the domain scanned for legacy tagged projects.
	ManagedDomain string
}

// Setup registers all OpenStack controllers and garbage collectors with
// mgr.
func Setup(mgr ctrl.Manager, o controller.Options, s *state.State, gc GCOptions) error {
	for _, setup := range []func(ctrl.Manager, controller.Options, *state.State) error{
		project.Setup,
		domain.Setup,
		flavor.Setup,
		image.Setup,
		providernetwork.Setup,
	} {
		if err := setup(mgr, o, s); err != nil {
			return err
		}
	}

	if err := mgr.Add(namespaced.New(mgr.GetClient(), s, o.Logger.WithValues("runnable", "gc/projects"), gc.ProjectInterval, gc.ManagedDomain)); err != nil {
		return errors.Wrap(err, "cannot add project garbage collector")
	}
	if err := mgr.Add(cluster.New(mgr.GetClient(), s, o.Logger.WithValues("runnable", "gc/cluster"), gc.ClusterInterval)); err != nil {
		return errors.Wrap(err, "cannot add cluster garbage collector")
	}
	return nil
}
