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

// Package project reconciles Project custom resources into OpenStack
// tenants: a Keystone project and user-group, quotas, tenant networks,
// security groups, role bindings and an optional OIDC federation mapping
// rule.
package project

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
	"github.com/sunet/openstack-operator/internal/resources/federation"
	"github.com/sunet/openstack-operator/internal/resources/group"
	"github.com/sunet/openstack-operator/internal/resources/network"
	"github.com/sunet/openstack-operator/internal/resources/project"
	"github.com/sunet/openstack-operator/internal/resources/quota"
	"github.com/sunet/openstack-operator/internal/resources/rolebinding"
	"github.com/sunet/openstack-operator/internal/resources/securitygroup"
	"github.com/sunet/openstack-operator/internal/state"
	"github.com/sunet/openstack-operator/internal/util"
)

const (
	timeout = 4 * time.Minute

	// retryDelay is how long a transiently failed reconcile waits before
	// it is retried.
	retryDelay = time.Minute

	// syncInterval is the drift-check cadence for Ready resources.
	syncInterval = 5 * time.Minute

	kind = "Project"

	errGetCR = "cannot get Project"
)

// Event reasons.
const (
	reasonSync   event.Reason = "SyncProject"
	reasonDelete event.Reason = "DeleteProject"
)

// Setup adds a controller that reconciles Project CRs.
func Setup(mgr ctrl.Manager, o controller.Options, s *state.State) error {
	name := "openstack/" + strings.ToLower(v1alpha1.ProjectGroupKind)

	r := NewReconciler(mgr, s,
		WithLogger(o.Logger.WithValues("controller", name)),
		WithRecorder(event.NewAPIRecorder(mgr.GetEventRecorderFor(name))))

	return ctrl.NewControllerManagedBy(mgr).
		Named(name).
		For(&v1alpha1.Project{}).
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

// NewReconciler returns a Reconciler of Projects.
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

// A Reconciler reconciles Project CRs.
type Reconciler struct {
	kube      client.Client
	state     *state.State
	finalizer resource.Finalizer
	now       func() time.Time

	log    logging.Logger
	record event.Recorder
}

// Reconcile a Project CR into an OpenStack tenant.
func (r *Reconciler) Reconcile(ctx context.Context, req reconcile.Request) (reconcile.Result, error) {
	log := r.log.WithValues("request", req)
	log.Debug("Reconciling")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cr := &v1alpha1.Project{}
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
		return r.drift(ctx, cr, osc, reg)
	}

	return r.sync(ctx, cr, osc, reg)
}

// sync is the create/update path: it converges every remote resource the
// spec declares, in dependency order, and records ids in status.
func (r *Reconciler) sync(ctx context.Context, cr *v1alpha1.Project, osc osclient.Client, reg *registry.Registry) (reconcile.Result, error) { //nolint:gocognit // The sequence of spec sub-steps is long but linear.
	log := r.log.WithValues("project", cr.Spec.Name)
	start := r.now()
	op := "create"
	if cr.Status.ProjectID != "" {
		op = "update"
	}

	cr.Status.Phase = v1alpha1.PhaseProvisioning
	cr.Status.ObservedGeneration = cr.GetGeneration()
	if err := r.kube.Status().Update(ctx, cr); err != nil {
		return reconcile.Result{}, errors.Wrap(err, "cannot update status")
	}

	if cr.Spec.Name == "" || cr.Spec.Domain == "" {
		return r.permanent(ctx, cr, op, start, errors.New("spec.name and spec.domain are required"))
	}

	dom, err := osc.GetDomain(ctx, cr.Spec.Domain)
	if err != nil {
		return r.transient(ctx, cr, op, start, errors.Wrap(err, "cannot get domain"))
	}
	if dom == nil {
		return r.transient(ctx, cr, op, start, errors.Errorf("domain %q not found", cr.Spec.Domain))
	}

	// Project and its companion user-group.
	p, err := project.Ensure(ctx, osc, reg, cr.GetName(), dom.ID, cr.Spec)
	if err != nil {
		return r.transient(ctx, cr, op, start, err)
	}
	cr.Status.ProjectID = p.ID

	g, err := group.Ensure(ctx, osc, reg, cr.GetName(), cr.Spec.Name, dom.ID)
	if err != nil {
		return r.transient(ctx, cr, op, start, err)
	}
	cr.Status.GroupID = g.ID

	if err := project.EnsureMemberRole(ctx, osc, g.ID, p.ID); err != nil {
		return r.transient(ctx, cr, op, start, err)
	}

	// Quotas.
	cr.SetConditions(v1alpha1.StepInProgress(v1alpha1.TypeQuotasReady))
	if err := quota.Apply(ctx, osc, p.ID, cr.Spec.Quotas); err != nil {
		return r.transientStep(ctx, cr, op, start, v1alpha1.TypeQuotasReady, err)
	}
	cr.SetConditions(v1alpha1.StepDone(v1alpha1.TypeQuotasReady))

	// Networks. Recorded networks no longer in the spec are torn down
	// before the declared set is ensured.
	cr.SetConditions(v1alpha1.StepInProgress(v1alpha1.TypeNetworksReady))
	declared := make(map[string]bool, len(cr.Spec.Networks))
	for _, n := range cr.Spec.Networks {
		declared[n.Name] = true
	}
	for _, ns := range cr.Status.Networks {
		if !declared[ns.Name] {
			network.Delete(ctx, osc, reg, log, cr.GetName(), ns)
		}
	}
	netStatuses := make([]v1alpha1.ProjectNetworkStatus, 0, len(cr.Spec.Networks))
	for _, n := range cr.Spec.Networks {
		ns, err := network.Ensure(ctx, osc, reg, cr.GetName(), p.ID, n)
		if err != nil {
			return r.transientStep(ctx, cr, op, start, v1alpha1.TypeNetworksReady, err)
		}
		netStatuses = append(netStatuses, *ns)
	}
	cr.Status.Networks = netStatuses
	cr.SetConditions(v1alpha1.StepDone(v1alpha1.TypeNetworksReady))

	// Security groups, two passes so rules can reference sibling groups.
	cr.SetConditions(v1alpha1.StepInProgress(v1alpha1.TypeSecGroupsReady))
	declaredSG := make(map[string]bool, len(cr.Spec.SecurityGroups))
	for _, sg := range cr.Spec.SecurityGroups {
		declaredSG[sg.Name] = true
	}
	stale := make([]v1alpha1.ProjectSecurityGroupStatus, 0)
	for _, sg := range cr.Status.SecurityGroups {
		if !declaredSG[sg.Name] {
			stale = append(stale, sg)
		}
	}
	securitygroup.Delete(ctx, osc, reg, log, stale)
	sgStatuses, err := securitygroup.Ensure(ctx, osc, reg, cr.GetName(), p.ID, cr.Spec.SecurityGroups)
	if err != nil {
		return r.transientStep(ctx, cr, op, start, v1alpha1.TypeSecGroupsReady, err)
	}
	cr.Status.SecurityGroups = sgStatuses
	cr.SetConditions(v1alpha1.StepDone(v1alpha1.TypeSecGroupsReady))

	// Role bindings and user-group membership.
	cr.SetConditions(v1alpha1.StepInProgress(v1alpha1.TypeBindingsReady))
	if err := rolebinding.Apply(ctx, osc, log, g.ID, p.ID, cr.Spec.RoleBindings); err != nil {
		return r.transientStep(ctx, cr, op, start, v1alpha1.TypeBindingsReady, err)
	}
	cr.SetConditions(v1alpha1.StepDone(v1alpha1.TypeBindingsReady))

	// Federation mapping rule for this project's users.
	if err := r.ensureFederation(ctx, cr, osc, reg); err != nil {
		return r.transientStep(ctx, cr, op, start, v1alpha1.TypeFederationReady, err)
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

// ensureFederation adds or refreshes this project's rule in the shared
// mapping when the spec names a federation config and at least one user.
func (r *Reconciler) ensureFederation(ctx context.Context, cr *v1alpha1.Project, osc osclient.Client, reg *registry.Registry) error {
	if cr.Spec.FederationRef == nil {
		return nil
	}
	users := rolebinding.CollectUsers(cr.Spec.RoleBindings)
	if len(users) == 0 {
		return nil
	}

	cr.SetConditions(v1alpha1.StepInProgress(v1alpha1.TypeFederationReady))
	cfg, err := federation.LoadConfig(ctx, r.kube, cr.GetNamespace(), cr.Spec.FederationRef.ConfigMapName)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(users))
	for _, u := range users {
		names = append(names, u.Name)
	}
	fed := federation.NewReconciler(osc, reg, *cfg)
	if err := fed.AddProjectMapping(ctx, cr.GetName(), cr.Spec.Name, names); err != nil {
		return err
	}
	cr.SetConditions(v1alpha1.StepDone(v1alpha1.TypeFederationReady))
	return nil
}

// drift is the periodic timer for Ready projects: it confirms the remote
// project still exists under the recorded id, repairs a group id that is
// not a UUID, and re-asserts the federation rule.
func (r *Reconciler) drift(ctx context.Context, cr *v1alpha1.Project, osc osclient.Client, reg *registry.Registry) (reconcile.Result, error) {
	log := r.log.WithValues("project", cr.Spec.Name)

	dom, err := osc.GetDomain(ctx, cr.Spec.Domain)
	if err != nil || dom == nil {
		return reconcile.Result{RequeueAfter: retryDelay}, nil
	}

	exists, err := project.Exists(ctx, osc, cr.Spec.Name, dom.ID, cr.Status.ProjectID)
	if err != nil {
		return reconcile.Result{RequeueAfter: retryDelay}, nil
	}
	if !exists {
		log.Info("remote project is gone, resetting for recreate", "id", cr.Status.ProjectID)
		cr.Status.Phase = v1alpha1.PhasePending
		cr.Status.ProjectID = ""
		cr.Status.GroupID = ""
		cr.SetConditions(xpv1.Unavailable().WithMessage("remote project deleted out of band"))
		if err := r.kube.Status().Update(ctx, cr); err != nil {
			return reconcile.Result{}, errors.Wrap(err, "cannot update status")
		}
		return reconcile.Result{Requeue: true}, nil
	}

	// A group id recorded by an older operator version may be the group's
	// name rather than its id. Resolve and rewrite it.
	if cr.Status.GroupID != "" && !util.IsValidUUID(cr.Status.GroupID) {
		g, err := osc.GetGroup(ctx, util.MakeGroupName(cr.Spec.Name), dom.ID)
		if err == nil && g != nil {
			log.Info("repaired non-UUID group id", "was", cr.Status.GroupID, "now", g.ID)
			cr.Status.GroupID = g.ID
		}
	}

	// Re-assert the federation rule so an out-of-band mapping edit heals.
	if err := r.ensureFederation(ctx, cr, osc, reg); err != nil {
		log.Info("cannot re-assert federation mapping", "error", err)
		return reconcile.Result{RequeueAfter: retryDelay}, nil
	}

	cr.Status.LastSyncTime = util.NowRFC3339(r.now())
	if err := r.kube.Status().Update(ctx, cr); err != nil {
		return reconcile.Result{}, errors.Wrap(err, "cannot update status")
	}
	return reconcile.Result{RequeueAfter: syncInterval}, nil
}

// delete tears down in reverse creation order. Sub-steps log and
// continue on failure. A failed federation-rule removal, group delete or
// project delete keeps the finalizer and retries the delete; a federation
// ConfigMap that cannot be loaded, and security-group or network teardown
// failures (logged inside those helpers), do not block finalizer removal.
func (r *Reconciler) delete(ctx context.Context, cr *v1alpha1.Project, osc osclient.Client, reg *registry.Registry) (reconcile.Result, error) {
	log := r.log.WithValues("project", cr.Spec.Name)
	start := r.now()
	failed := false

	// This project's federation rule. The shared mapping document stays:
	// other projects reference it.
	if cr.Spec.FederationRef != nil {
		cfg, err := federation.LoadConfig(ctx, r.kube, cr.GetNamespace(), cr.Spec.FederationRef.ConfigMapName)
		if err != nil {
			log.Info("cannot load federation config during delete", "error", err)
		} else if err := federation.NewReconciler(osc, reg, *cfg).RemoveProjectMapping(ctx, cr.Spec.Name); err != nil {
			log.Info("cannot remove federation mapping rule", "error", err)
			failed = true
		}
	}

	securitygroup.Delete(ctx, osc, reg, log, cr.Status.SecurityGroups)

	for _, ns := range cr.Status.Networks {
		network.Delete(ctx, osc, reg, log, cr.GetName(), ns)
	}

	if err := group.Delete(ctx, osc, reg, util.MakeGroupName(cr.Spec.Name), cr.Status.GroupID); err != nil {
		log.Info("cannot delete group", "error", err)
		failed = true
	}

	if err := project.Delete(ctx, osc, reg, cr.Spec.Name, cr.Status.ProjectID); err != nil {
		log.Info("cannot delete project", "error", err)
		failed = true
	}

	if failed {
		err := errors.New("one or more teardown steps failed")
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

// transient records err against the Ready condition and schedules a
// retry.
func (r *Reconciler) transient(ctx context.Context, cr *v1alpha1.Project, op string, start time.Time, err error) (reconcile.Result, error) {
	r.log.Info("transient reconcile failure", "project", cr.Spec.Name, "error", err)
	r.record.Event(cr, event.Warning(reasonSync, err))

	cr.Status.Phase = v1alpha1.PhaseError
	cr.SetConditions(xpv1.ReconcileError(err), xpv1.Unavailable().WithMessage(util.Truncate(err.Error(), 200)))
	_ = r.kube.Status().Update(ctx, cr)

	r.observe(op, start, false)
	return reconcile.Result{RequeueAfter: retryDelay}, nil
}

// transientStep is transient plus a failed step condition.
func (r *Reconciler) transientStep(ctx context.Context, cr *v1alpha1.Project, op string, start time.Time, t xpv1.ConditionType, err error) (reconcile.Result, error) {
	cr.SetConditions(xpv1.Condition{
		Type:    t,
		Status:  "False",
		Reason:  v1alpha1.ReasonError,
		Message: util.Truncate(err.Error(), 200),
	})
	return r.transient(ctx, cr, op, start, err)
}

// permanent marks a spec-invalid CR Error without scheduling a retry; it
// stays Error until the spec changes.
func (r *Reconciler) permanent(ctx context.Context, cr *v1alpha1.Project, op string, start time.Time, err error) (reconcile.Result, error) {
	r.log.Info("permanent reconcile failure", "project", cr.Spec.Name, "error", err)
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
