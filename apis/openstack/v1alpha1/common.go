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

package v1alpha1

import (
	corev1 "k8s.io/api/core/v1"

	xpv1 "github.com/crossplane/crossplane-runtime/apis/common/v1"
)

// Finalizer is added to every CR this operator reconciles. Deletion is
// blocked until the delete handler has torn down the remote resources and
// removed this finalizer.
const Finalizer = "sunet.se/openstack-operator"

// A Phase describes where a CR is in its reconciliation lifecycle.
type Phase string

// Phases.
const (
	PhasePending      Phase = "Pending"
	PhaseProvisioning Phase = "Provisioning"
	PhaseReady        Phase = "Ready"
	PhaseError        Phase = "Error"
)

// Condition types in addition to the crossplane-runtime system types
// (Ready, Synced).
const (
	TypeQuotasReady     xpv1.ConditionType = "QuotasReady"
	TypeNetworksReady   xpv1.ConditionType = "NetworksReady"
	TypeSecGroupsReady  xpv1.ConditionType = "SecurityGroupsReady"
	TypeBindingsReady   xpv1.ConditionType = "RoleBindingsReady"
	TypeFederationReady xpv1.ConditionType = "FederationReady"
	TypeFlavorReady     xpv1.ConditionType = "FlavorReady"
	TypeImageReady      xpv1.ConditionType = "ImageReady"
)

// Condition reasons used across reconcilers.
const (
	ReasonInProgress xpv1.ConditionReason = "InProgress"
	ReasonDone       xpv1.ConditionReason = "Done"
	ReasonError      xpv1.ConditionReason = "Error"
	ReasonRecreated  xpv1.ConditionReason = "Recreated"
)

// StepInProgress returns a False condition of the given type indicating a
// reconcile sub-step has started.
func StepInProgress(t xpv1.ConditionType) xpv1.Condition {
	return xpv1.Condition{
		Type:    t,
		Status:  corev1.ConditionFalse,
		Reason:  ReasonInProgress,
		Message: "reconciling",
	}
}

// StepDone returns a True condition of the given type indicating a reconcile
// sub-step finished successfully.
func StepDone(t xpv1.ConditionType) xpv1.Condition {
	return xpv1.Condition{
		Type:   t,
		Status: corev1.ConditionTrue,
		Reason: ReasonDone,
	}
}

// CommonStatus is embedded by every CR kind's status.
type CommonStatus struct {
	xpv1.ConditionedStatus `json:",inline"`

	// Phase is a coarse summary of where the resource is in its lifecycle.
	// +optional
	Phase Phase `json:"phase,omitempty"`

	// ObservedGeneration is the most recent spec generation the operator
	// has finished reconciling.
	// +optional
	ObservedGeneration int64 `json:"observedGeneration,omitempty"`

	// LastSyncTime is when the resource last reconciled successfully.
	// +optional
	LastSyncTime string `json:"lastSyncTime,omitempty"`
}

// FederationConfigRef points at a ConfigMap holding the OIDC federation
// settings for a Project (idp-name, idp-remote-id, sso-domain).
type FederationConfigRef struct {
	// ConfigMapName is the name of the ConfigMap, in the Project's
	// namespace, holding the federation configuration.
	ConfigMapName string `json:"configMapName"`
}
