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

// Package flavor reconciles Flavor custom resources into OpenStack Nova
// flavors. A spec change to an immutable attribute recreates the remote
// flavor under a new id.
package flavor

import (
	"context"
	"strings"
	"time"

	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/reconcile"

	xpv1 "github.com/crossplane/crossplane-runtime/apis/common/v1"
	"github.com/crossplane/crossplane-runtime/pkg/controller"
	"github.com/crossplane/crossplane-runtime/pkg/errors"
	"github.com/crossplane/crossplane-runtime/pkg/event"
	"github.com/crossplane/crossplane-runtime/pkg/logging"
	"github.com/crossplane/crossplane-runtime/pkg/meta"
	"github.com/crossplane/crossplane-runtime/pkg/ratelimiter"
	"github.com/crossplane/crossplane-runtime/pkg/resource"

	v1alpha1 "github.com/sunet/openstack-operator/apis/openstack/v1alpha1"
	osclient "github.com/sunet/openstack-operator/internal/clients/openstack"
	"github.com/sunet/openstack-operator/internal/metrics"
	"github.com/sunet/openstack-operator/internal/registry"
	"github.com/sunet/openstack-operator/internal/resources/flavor"
	"github.com/sunet/openstack-operator/internal/state"
	"github.com/sunet/openstack-operator/internal/util"
)

const (
	timeout      = 2 * time.Minute
	retryDelay   = time.Minute
	syncInterval = 5 * time.Minute

	kind = "Flavor"

	errGetCR = "cannot get Flavor"
)

// Event reasons.
const (
	reasonSync   event.Reason = "SyncFlavor"
	reasonDelete event.Reason = "DeleteFlavor"
)

// Setup adds a controller that reconciles Flavor CRs.
func Setup(mgr ctrl.Manager, o controller.Options, s *state.State) error {
	name := "openstack/" + strings.ToLower(v1alpha1.FlavorGroupKind)

	r := NewReconciler(mgr, s,
		WithLogger(o.Logger.WithValues("controller", name)),
		WithRecorder(event.NewAPIRecorder(mgr.GetEventRecorderFor(name))))

	return ctrl.NewControllerManagedBy(mgr).
		Named(name).
		For(&v1alpha1.Flavor{}).
		WithOptions(o.ForControllerRuntime()).
		Complete(ratelimiter.NewReconciler(name, errors.WithSilentRequeueOnConflict(r), o.GlobalRateLimiter))
}

// ReconcilerOption is used to configure the Reconciler.
type ReconcilerOption func(*Reconciler)

// WithLogger specifies how the Reconciler should log messages.
func WithLogger(log logging.Logger) ReconcilerOption {
	return func(r *Reconciler) {
		r.log = log
	}
}

// WithRecorder specifies how the Reconciler should record Kubernetes
// events.
func WithRecorder(er event.Recorder) ReconcilerOption {
	return func(r *Reconciler) {
		r.record = er
	}
}

// WithNow overrides the clock used for status timestamps.
func WithNow(now func() time.Time) ReconcilerOption {
	return func(r *Reconciler) {
		r.now = now
	}
}

// NewReconciler returns a Reconciler of Flavors.
func NewReconciler(mgr ctrl.Manager, s *state.State, opts ...ReconcilerOption) *Reconciler {
	r := &Reconciler{
		kube:      mgr.GetClient(),
		state:     s,
		finalizer: resource.NewAPIFinalizer(mgr.GetClient(), v1alpha1.Finalizer),
		now:       time.Now,
		log:       logging.NewNopLogger(),
		record:    event.NewNopRecorder(),
	}

	for _, f := range opts {
		f(r)
	}
	return r
}

// A Reconciler reconciles Flavor CRs.
type Reconciler struct {
	kube      client.Client
	state     *state.State
	finalizer resource.Finalizer
	now       func() time.Time

	log    logging.Logger
	record event.Recorder
}

// Reconcile a Flavor CR into a Nova flavor.
func (r *Reconciler) Reconcile(ctx context.Context, req reconcile.Request) (reconcile.Result, error) {
	log := r.log.WithValues("request", req)
	log.Debug("Reconciling")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cr := &v1alpha1.Flavor{}
	if err := r.kube.Get(ctx, req.NamespacedName, cr); err != nil {
		return reconcile.Result{}, errors.Wrap(resource.IgnoreNotFound(err), errGetCR)
	}

	metrics.ReconcileInProgress.WithLabelValues(kind).Inc()
	defer metrics.ReconcileInProgress.WithLabelValues(kind).Dec()

	osc, err := r.state.Client(ctx)
	if err != nil {
		return r.transient(ctx, cr, "create", r.now(), errors.Wrap(err, "cannot connect to OpenStack"))
	}
	reg := r.state.Registry()

	if meta.WasDeleted(cr) {
		return r.delete(ctx, cr, osc, reg)
	}

	if err := r.finalizer.AddFinalizer(ctx, cr); err != nil {
		return reconcile.Result{}, errors.Wrap(err, "cannot add finalizer")
	}

	if cr.Status.Phase == v1alpha1.PhaseReady && cr.Status.ObservedGeneration == cr.GetGeneration() {
		return r.drift(ctx, cr, osc)
	}

	return r.sync(ctx, cr, osc, reg)
}

func (r *Reconciler) sync(ctx context.Context, cr *v1alpha1.Flavor, osc osclient.Client, reg *registry.Registry) (reconcile.Result, error) {
	start := r.now()
	op := "create"
	if cr.Status.FlavorID != "" {
		op = "update"
	}

	cr.Status.Phase = v1alpha1.PhaseProvisioning
	cr.Status.ObservedGeneration = cr.GetGeneration()
	if err := r.kube.Status().Update(ctx, cr); err != nil {
		return reconcile.Result{}, errors.Wrap(err, "cannot update status")
	}

	if cr.Spec.Name == "" || cr.Spec.VCPUs <= 0 || cr.Spec.RAM <= 0 {
		return r.permanent(ctx, cr, op, start, errors.New("spec.name, spec.vcpus and spec.ram are required"))
	}

	f, recreated, err := flavor.Ensure(ctx, osc, reg, cr.GetName(), cr.Spec)
	if err != nil {
		return r.transient(ctx, cr, op, start, err)
	}
	cr.Status.FlavorID = f.ID

	if recreated {
		cr.SetConditions(xpv1.Condition{
			Type:   v1alpha1.TypeFlavorReady,
			Status: "True",
			Reason: v1alpha1.ReasonRecreated,
		})
	} else {
		cr.SetConditions(v1alpha1.StepDone(v1alpha1.TypeFlavorReady))
	}

	cr.Status.Phase = v1alpha1.PhaseReady
	cr.Status.LastSyncTime = util.NowRFC3339(r.now())
	cr.SetConditions(xpv1.ReconcileSuccess(), xpv1.Available())
	if err := r.kube.Status().Update(ctx, cr); err != nil {
		return reconcile.Result{}, errors.Wrap(err, "cannot update status")
	}

	r.observe(op, start, true)
	return reconcile.Result{RequeueAfter: syncInterval}, nil
}

func (r *Reconciler) drift(ctx context.Context, cr *v1alpha1.Flavor, osc osclient.Client) (reconcile.Result, error) {
	f, err := osc.GetFlavor(ctx, cr.Spec.Name)
	if err != nil {
		return reconcile.Result{RequeueAfter: retryDelay}, nil
	}
	if f == nil || f.ID != cr.Status.FlavorID {
		r.log.Info("remote flavor is gone, resetting for recreate", "flavor", cr.Spec.Name)
		cr.Status.Phase = v1alpha1.PhasePending
		cr.Status.FlavorID = ""
		cr.SetConditions(xpv1.Unavailable().WithMessage("remote flavor deleted out of band"))
		if err := r.kube.Status().Update(ctx, cr); err != nil {
			return reconcile.Result{}, errors.Wrap(err, "cannot update status")
		}
		return reconcile.Result{Requeue: true}, nil
	}

	cr.Status.LastSyncTime = util.NowRFC3339(r.now())
	if err := r.kube.Status().Update(ctx, cr); err != nil {
		return reconcile.Result{}, errors.Wrap(err, "cannot update status")
	}
	return reconcile.Result{RequeueAfter: syncInterval}, nil
}

func (r *Reconciler) delete(ctx context.Context, cr *v1alpha1.Flavor, osc osclient.Client, reg *registry.Registry) (reconcile.Result, error) {
	start := r.now()

	if err := flavor.Delete(ctx, osc, reg, cr.Spec.Name, cr.Status.FlavorID); err != nil {
		r.record.Event(cr, event.Warning(reasonDelete, err))
		r.observe("delete", start, false)
		return reconcile.Result{RequeueAfter: retryDelay}, nil
	}

	if err := r.finalizer.RemoveFinalizer(ctx, cr); err != nil {
		return reconcile.Result{}, errors.Wrap(err, "cannot remove finalizer")
	}
	r.observe("delete", start, true)
	return reconcile.Result{}, nil
}

func (r *Reconciler) transient(ctx context.Context, cr *v1alpha1.Flavor, op string, start time.Time, err error) (reconcile.Result, error) {
	r.log.Info("transient reconcile failure", "flavor", cr.Spec.Name, "error", err)
	r.record.Event(cr, event.Warning(reasonSync, err))

	cr.Status.Phase = v1alpha1.PhaseError
	cr.SetConditions(xpv1.ReconcileError(err), xpv1.Unavailable().WithMessage(util.Truncate(err.Error(), 200)))
	_ = r.kube.Status().Update(ctx, cr)

	r.observe(op, start, false)
	return reconcile.Result{RequeueAfter: retryDelay}, nil
}

func (r *Reconciler) permanent(ctx context.Context, cr *v1alpha1.Flavor, op string, start time.Time, err error) (reconcile.Result, error) {
	r.log.Info("permanent reconcile failure", "flavor", cr.Spec.Name, "error", err)
	r.record.Event(cr, event.Warning(reasonSync, err))

	cr.Status.Phase = v1alpha1.PhaseError
	cr.SetConditions(xpv1.ReconcileError(err), xpv1.Unavailable().WithMessage(util.Truncate(err.Error(), 200)))
	_ = r.kube.Status().Update(ctx, cr)

	r.observe(op, start, false)
	return reconcile.Result{}, nil
}

func (r *Reconciler) observe(op string, start time.Time, ok bool) {
	status := "success"
	if !ok {
		status = "error"
	}
	metrics.ReconcileTotal.WithLabelValues(kind, op, status).Inc()
	metrics.ReconcileDuration.WithLabelValues(kind, op).Observe(r.now().Sub(start).Seconds())
}
