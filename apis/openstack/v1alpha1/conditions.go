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
	xpv1 "github.com/crossplane/crossplane-runtime/apis/common/v1"
)

// SetConditions delegates to Status.SetConditions.
func (p *Project) SetConditions(c ...xpv1.Condition) { p.Status.SetConditions(c...) }

// GetCondition delegates to Status.GetCondition.
func (p *Project) GetCondition(t xpv1.ConditionType) xpv1.Condition { return p.Status.GetCondition(t) }

// SetConditions delegates to Status.SetConditions.
func (d *Domain) SetConditions(c ...xpv1.Condition) { d.Status.SetConditions(c...) }

// GetCondition delegates to Status.GetCondition.
func (d *Domain) GetCondition(t xpv1.ConditionType) xpv1.Condition { return d.Status.GetCondition(t) }

// SetConditions delegates to Status.SetConditions.
func (f *Flavor) SetConditions(c ...xpv1.Condition) { f.Status.SetConditions(c...) }

// GetCondition delegates to Status.GetCondition.
func (f *Flavor) GetCondition(t xpv1.ConditionType) xpv1.Condition { return f.Status.GetCondition(t) }

// SetConditions delegates to Status.SetConditions.
func (i *Image) SetConditions(c ...xpv1.Condition) { i.Status.SetConditions(c...) }

// GetCondition delegates to Status.GetCondition.
func (i *Image) GetCondition(t xpv1.ConditionType) xpv1.Condition { return i.Status.GetCondition(t) }

// SetConditions delegates to Status.SetConditions.
func (n *ProviderNetwork) SetConditions(c ...xpv1.Condition) { n.Status.SetConditions(c...) }

// GetCondition delegates to Status.GetCondition.
func (n *ProviderNetwork) GetCondition(t xpv1.ConditionType) xpv1.Condition {
	return n.Status.GetCondition(t)
}
