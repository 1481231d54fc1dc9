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

package flavor

import (
	"context"
	"testing"
	"time"

	. "github.com/onsi/gomega"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"
	kfake "sigs.k8s.io/controller-runtime/pkg/client/fake"
	"sigs.k8s.io/controller-runtime/pkg/reconcile"

	"github.com/crossplane/crossplane-runtime/pkg/event"
	"github.com/crossplane/crossplane-runtime/pkg/logging"
	"github.com/crossplane/crossplane-runtime/pkg/resource"

	v1alpha1 "github.com/sunet/openstack-operator/apis/openstack/v1alpha1"
	osclient "github.com/sunet/openstack-operator/internal/clients/openstack"
	"github.com/sunet/openstack-operator/internal/clients/openstack/fake"
	"github.com/sunet/openstack-operator/internal/registry"
	"github.com/sunet/openstack-operator/internal/state"
)

var testTime = time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)

// flavorStore keeps the remote's single flavor, keyed by name.
type flavorStore struct {
	byName map[string]*osclient.Flavor
	seq    int
}

func (s *flavorStore) client() *fake.Client {
	return &fake.Client{
		MockGetFlavor: func(_ context.Context, nameOrID string) (*osclient.Flavor, error) {
			return s.byName[nameOrID], nil
		},
		MockCreateFlavor: func(_ context.Context, f osclient.Flavor) (*osclient.Flavor, error) {
			s.seq++
			f.ID = map[int]string{1: "fid-1", 2: "fid-2", 3: "fid-3"}[s.seq]
			s.byName[f.Name] = &f
			return &f, nil
		},
		MockDeleteFlavor: func(_ context.Context, id string) error {
			for name, f := range s.byName {
				if f.ID == id {
					delete(s.byName, name)
				}
			}
			return nil
		},
	}
}

func newTestReconciler(t *testing.T, store *flavorStore, objs ...client.Object) (*Reconciler, client.Client) {
	t.Helper()

	scheme := runtime.NewScheme()
	if err := corev1.AddToScheme(scheme); err != nil {
		t.Fatal(err)
	}
	if err := v1alpha1.AddToScheme(scheme); err != nil {
		t.Fatal(err)
	}

	kube := kfake.NewClientBuilder().
		WithScheme(scheme).
		WithObjects(objs...).
		WithStatusSubresource(&v1alpha1.Flavor{}).
		Build()

	s := state.NewFromParts(store.client(), registry.New(kube, "openstack-operator"), kube)
	r := &Reconciler{
		kube:      kube,
		state:     s,
		finalizer: resource.NewAPIFinalizer(kube, v1alpha1.Finalizer),
		now:       func() time.Time { return testTime },
		log:       logging.NewNopLogger(),
		record:    event.NewNopRecorder(),
	}
	return r, kube
}

func m1() *v1alpha1.Flavor {
	return &v1alpha1.Flavor{
		ObjectMeta: metav1.ObjectMeta{Name: "m1", Generation: 1},
		Spec:       v1alpha1.FlavorSpec{Name: "m1", VCPUs: 2, RAM: 2048, Disk: 10, IsPublic: true},
	}
}

func reconcileOnce(t *testing.T, r *Reconciler) {
	t.Helper()
	if _, err := r.Reconcile(context.Background(), reconcile.Request{
		NamespacedName: types.NamespacedName{Name: "m1"},
	}); err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
}

func TestCreateFlavor(t *testing.T) {
	g := NewGomegaWithT(t)

	store := &flavorStore{byName: map[string]*osclient.Flavor{}}
	r, kube := newTestReconciler(t, store, m1())
	reconcileOnce(t, r)

	cr := &v1alpha1.Flavor{}
	g.Expect(kube.Get(context.Background(), types.NamespacedName{Name: "m1"}, cr)).To(Succeed())
	g.Expect(cr.Status.Phase).To(Equal(v1alpha1.PhaseReady))
	g.Expect(cr.Status.FlavorID).To(Equal("fid-1"))
}

func TestImmutableChangeRecreatesFlavor(t *testing.T) {
	g := NewGomegaWithT(t)
	ctx := context.Background()

	store := &flavorStore{byName: map[string]*osclient.Flavor{}}
	r, kube := newTestReconciler(t, store, m1())
	reconcileOnce(t, r)

	cr := &v1alpha1.Flavor{}
	g.Expect(kube.Get(ctx, types.NamespacedName{Name: "m1"}, cr)).To(Succeed())
	g.Expect(cr.Status.FlavorID).To(Equal("fid-1"))

	cr.Spec.VCPUs = 4
	cr.Generation = 2
	g.Expect(kube.Update(ctx, cr)).To(Succeed())
	reconcileOnce(t, r)

	g.Expect(kube.Get(ctx, types.NamespacedName{Name: "m1"}, cr)).To(Succeed())
	g.Expect(cr.Status.Phase).To(Equal(v1alpha1.PhaseReady))
	g.Expect(cr.Status.FlavorID).To(Equal("fid-2"))

	cond := cr.GetCondition(v1alpha1.TypeFlavorReady)
	g.Expect(cond.Reason).To(Equal(v1alpha1.ReasonRecreated))

	// The old flavor is gone from the remote.
	g.Expect(store.byName["m1"].ID).To(Equal("fid-2"))
	g.Expect(store.byName["m1"].VCPUs).To(Equal(4))
}
