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

// Package image reconciles Image custom resources into OpenStack Glance
// images. Managed images are imported asynchronously by the remote; the
// reconciler polls the import every 30 seconds until the image reaches a
// terminal state. External images are only asserted, never created or
// deleted.
package image

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
	"github.com/sunet/openstack-operator/internal/resources/image"
	"github.com/sunet/openstack-operator/internal/state"
	"github.com/sunet/openstack-operator/internal/util"
)

const (
	timeout      = 2 * time.Minute
	retryDelay   = time.Minute
	syncInterval = 5 * time.Minute

	// pollInterval is how often a non-terminal import is re-checked.
	pollInterval = 30 * time.Second

	kind = "Image"

	errGetCR = "cannot get Image"
)

// Event reasons.
const (
	reasonSync   event.Reason = "SyncImage"
	reasonDelete event.Reason = "DeleteImage"
	reasonImport event.Reason = "ImportImage"
)

// Setup adds a controller that reconciles Image CRs.
func Setup(mgr ctrl.Manager, o controller.Options, s *state.State) error {
	name := "openstack/" + strings.ToLower(v1alpha1.ImageGroupKind)

	r := NewReconciler(mgr, s,
		WithLogger(o.Logger.WithValues("controller", name)),
		WithRecorder(event.NewAPIRecorder(mgr.GetEventRecorderFor(name))))

	return ctrl.NewControllerManagedBy(mgr).
		Named(name).
		For(&v1alpha1.Image{}).
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

// NewReconciler returns a Reconciler of Images.
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

// A Reconciler reconciles Image CRs.
type Reconciler struct {
	kube      client.Client
	state     *state.State
	finalizer resource.Finalizer
	now       func() time.Time

	log    logging.Logger
	record event.Recorder
}

// Reconcile an Image CR into a Glance image.
func (r *Reconciler) Reconcile(ctx context.Context, req reconcile.Request) (reconcile.Result, error) {
	log := r.log.WithValues("request", req)
	log.Debug("Reconciling")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cr := &v1alpha1.Image{}
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

	// A managed image whose import has not finished is polled rather than
	// re-synced: the remote is already doing the work.
	if !cr.Spec.External && cr.Status.ImageID != "" &&
		(cr.Status.Phase == v1alpha1.PhaseProvisioning || cr.Status.Phase == v1alpha1.PhasePending) {
		return r.poll(ctx, cr, osc)
	}

	if cr.Status.Phase == v1alpha1.PhaseReady && cr.Status.ObservedGeneration == cr.GetGeneration() {
		return r.drift(ctx, cr, osc)
	}

	return r.sync(ctx, cr, osc, reg)
}

func (r *Reconciler) sync(ctx context.Context, cr *v1alpha1.Image, osc osclient.Client, reg *registry.Registry) (reconcile.Result, error) {
	start := r.now()
	op := "create"
	if cr.Status.ImageID != "" {
		op = "update"
	}

	cr.Status.Phase = v1alpha1.PhaseProvisioning
	cr.Status.ObservedGeneration = cr.GetGeneration()
	if err := r.kube.Status().Update(ctx, cr); err != nil {
		return reconcile.Result{}, errors.Wrap(err, "cannot update status")
	}

	if cr.Spec.Name == "" {
		return r.permanent(ctx, cr, op, start, errors.New("spec.name is required"))
	}
	if !cr.Spec.External && (cr.Spec.Content.Source == nil || cr.Spec.Content.Source.URL == "") {
		return r.permanent(ctx, cr, op, start, errors.New("spec.content.source.url is required for a managed image"))
	}

	if cr.Spec.External {
		return r.syncExternal(ctx, cr, osc, op, start)
	}

	img, err := image.Ensure(ctx, osc, reg, cr.GetName(), cr.Spec)
	if err != nil {
		return r.transient(ctx, cr, op, start, err)
	}
	cr.Status.ImageID = img.ID
	cr.Status.UploadStatus = img.Status
	if cr.Status.UploadStatus == "" {
		cr.Status.UploadStatus = image.StatusQueued
	}

	r.observe(op, start, true)
	return r.settle(ctx, cr, img)
}

// syncExternal asserts metadata on a pre-existing image. Absence is a
// temporary condition: the image may be uploaded out of band at any
// time, so the CR stays Pending and is re-checked from the timer.
func (r *Reconciler) syncExternal(ctx context.Context, cr *v1alpha1.Image, osc osclient.Client, op string, start time.Time) (reconcile.Result, error) {
	img, err := image.EnsureExternal(ctx, osc, cr.Spec)
	if err != nil {
		return r.transient(ctx, cr, op, start, err)
	}
	if img == nil {
		cr.Status.Phase = v1alpha1.PhasePending
		cr.SetConditions(xpv1.Condition{
			Type:    v1alpha1.TypeImageReady,
			Status:  "False",
			Reason:  "TemporaryError",
			Message: "external image not found yet",
		})
		if err := r.kube.Status().Update(ctx, cr); err != nil {
			return reconcile.Result{}, errors.Wrap(err, "cannot update status")
		}
		r.observe(op, start, false)
		return reconcile.Result{RequeueAfter: retryDelay}, nil
	}

	cr.Status.ImageID = img.ID
	cr.Status.Phase = v1alpha1.PhaseReady
	cr.Status.LastSyncTime = util.NowRFC3339(r.now())
	cr.SetConditions(v1alpha1.StepDone(v1alpha1.TypeImageReady), xpv1.ReconcileSuccess(), xpv1.Available())
	if err := r.kube.Status().Update(ctx, cr); err != nil {
		return reconcile.Result{}, errors.Wrap(err, "cannot update status")
	}
	r.observe(op, start, true)
	return reconcile.Result{RequeueAfter: syncInterval}, nil
}

// poll re-reads a managed image mid-import and advances the CR.
func (r *Reconciler) poll(ctx context.Context, cr *v1alpha1.Image, osc osclient.Client) (reconcile.Result, error) {
	img, err := osc.GetImage(ctx, cr.Status.ImageID)
	if err != nil {
		return reconcile.Result{RequeueAfter: pollInterval}, nil
	}
	if img == nil {
		// The import target vanished; restart from sync on next event.
		cr.Status.Phase = v1alpha1.PhasePending
		cr.Status.ImageID = ""
		if err := r.kube.Status().Update(ctx, cr); err != nil {
			return reconcile.Result{}, errors.Wrap(err, "cannot update status")
		}
		return reconcile.Result{Requeue: true}, nil
	}
	return r.settle(ctx, cr, img)
}

// settle maps the remote image state onto the CR's phase: active is
// Ready, killed or deleted is a permanent Error, anything else keeps
// Provisioning and another poll tick.
func (r *Reconciler) settle(ctx context.Context, cr *v1alpha1.Image, img *osclient.Image) (reconcile.Result, error) {
	cr.Status.UploadStatus = img.Status
	if img.Checksum != "" {
		cr.Status.Checksum = img.Checksum
	}
	if img.SizeBytes != 0 {
		cr.Status.SizeBytes = img.SizeBytes
	}

	switch img.Status {
	case image.StatusActive:
		cr.Status.Phase = v1alpha1.PhaseReady
		cr.Status.LastSyncTime = util.NowRFC3339(r.now())
		cr.SetConditions(v1alpha1.StepDone(v1alpha1.TypeImageReady), xpv1.ReconcileSuccess(), xpv1.Available())
		if err := r.kube.Status().Update(ctx, cr); err != nil {
			return reconcile.Result{}, errors.Wrap(err, "cannot update status")
		}
		return reconcile.Result{RequeueAfter: syncInterval}, nil

	case image.StatusKilled, image.StatusDeleted:
		err := errors.Errorf("image import failed: remote status %q", img.Status)
		r.record.Event(cr, event.Warning(reasonImport, err))
		cr.Status.Phase = v1alpha1.PhaseError
		cr.SetConditions(xpv1.ReconcileError(err), xpv1.Unavailable().WithMessage(util.Truncate(err.Error(), 200)))
		if uerr := r.kube.Status().Update(ctx, cr); uerr != nil {
			return reconcile.Result{}, errors.Wrap(uerr, "cannot update status")
		}
		// Permanent: no requeue until the spec changes.
		return reconcile.Result{}, nil

	default:
		cr.Status.Phase = v1alpha1.PhaseProvisioning
		cr.SetConditions(v1alpha1.StepInProgress(v1alpha1.TypeImageReady))
		if err := r.kube.Status().Update(ctx, cr); err != nil {
			return reconcile.Result{}, errors.Wrap(err, "cannot update status")
		}
		return reconcile.Result{RequeueAfter: pollInterval}, nil
	}
}

func (r *Reconciler) drift(ctx context.Context, cr *v1alpha1.Image, osc osclient.Client) (reconcile.Result, error) {
	img, err := osc.GetImage(ctx, cr.Spec.Name)
	if err != nil {
		return reconcile.Result{RequeueAfter: retryDelay}, nil
	}
	if img == nil || img.ID != cr.Status.ImageID {
		if cr.Spec.External {
			// Someone removed the external image; report and wait for it
			// to come back.
			cr.Status.Phase = v1alpha1.PhasePending
			cr.Status.ImageID = ""
		} else {
			r.log.Info("remote image is gone, resetting for recreate", "image", cr.Spec.Name)
			cr.Status.Phase = v1alpha1.PhasePending
			cr.Status.ImageID = ""
			cr.Status.UploadStatus = ""
		}
		cr.SetConditions(xpv1.Unavailable().WithMessage("remote image deleted out of band"))
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

// delete removes a managed image (unprotecting it first if needed); an
// external image is left untouched and only the finalizer is removed.
func (r *Reconciler) delete(ctx context.Context, cr *v1alpha1.Image, osc osclient.Client, reg *registry.Registry) (reconcile.Result, error) {
	start := r.now()

	if !cr.Spec.External {
		if err := image.Delete(ctx, osc, reg, cr.Spec.Name, cr.Status.ImageID); err != nil {
			r.record.Event(cr, event.Warning(reasonDelete, err))
			r.observe("delete", start, false)
			return reconcile.Result{RequeueAfter: retryDelay}, nil
		}
	}

	if err := r.finalizer.RemoveFinalizer(ctx, cr); err != nil {
		return reconcile.Result{}, errors.Wrap(err, "cannot remove finalizer")
	}
	r.observe("delete", start, true)
	return reconcile.Result{}, nil
}

func (r *Reconciler) transient(ctx context.Context, cr *v1alpha1.Image, op string, start time.Time, err error) (reconcile.Result, error) {
	r.log.Info("transient reconcile failure", "image", cr.Spec.Name, "error", err)
	r.record.Event(cr, event.Warning(reasonSync, err))

	cr.Status.Phase = v1alpha1.PhaseError
	cr.SetConditions(xpv1.ReconcileError(err), xpv1.Unavailable().WithMessage(util.Truncate(err.Error(), 200)))
	_ = r.kube.Status().Update(ctx, cr)

	r.observe(op, start, false)
	return reconcile.Result{RequeueAfter: retryDelay}, nil
}

func (r *Reconciler) permanent(ctx context.Context, cr *v1alpha1.Image, op string, start time.Time, err error) (reconcile.Result, error) {
	r.log.Info("permanent reconcile failure", "image", cr.Spec.Name, "error", err)
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
