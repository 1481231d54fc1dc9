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

package image

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
	imageresource "github.com/sunet/openstack-operator/internal/resources/image"
	"github.com/sunet/openstack-operator/internal/state"
)

var testTime = time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)

// imageStore simulates a glance image whose import advances through a
// scripted sequence of states, one per Get.
type imageStore struct {
	img    *osclient.Image
	states []string
}

func (s *imageStore) advance() {
	if len(s.states) == 0 || s.img == nil {
		return
	}
	s.img.Status = s.states[0]
	s.states = s.states[1:]
	if s.img.Status == imageresource.StatusActive {
		s.img.Checksum = "d41d8cd98f00b204e9800998ecf8427e"
		s.img.SizeBytes = 2361393152
	}
}

func (s *imageStore) client() *fake.Client {
	return &fake.Client{
		MockGetImage: func(context.Context, string) (*osclient.Image, error) {
			if s.img == nil {
				return nil, nil
			}
			s.advance()
			img := *s.img
			return &img, nil
		},
		MockCreateImageFromURL: func(_ context.Context, spec osclient.Image, _ string) (*osclient.Image, error) {
			s.img = &osclient.Image{ID: "img-1", Name: spec.Name, Status: imageresource.StatusQueued}
			img := *s.img
			return &img, nil
		},
	}
}

func newTestReconciler(t *testing.T, store *imageStore, objs ...client.Object) (*Reconciler, client.Client) {
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
		WithStatusSubresource(&v1alpha1.Image{}).
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

func managedImage() *v1alpha1.Image {
	return &v1alpha1.Image{
		ObjectMeta: metav1.ObjectMeta{Name: "ubuntu", Generation: 1},
		Spec: v1alpha1.ImageSpec{
			Name:       "ubuntu-24.04",
			Visibility: "public",
			Content: v1alpha1.ImageContentSpec{
				DiskFormat:      "qcow2",
				ContainerFormat: "bare",
				Source:          &v1alpha1.ImageSource{URL: "https://cloud-images.example.se/noble.img"},
			},
		},
	}
}

func reconcileOnce(t *testing.T, r *Reconciler) reconcile.Result {
	t.Helper()
	res, err := r.Reconcile(context.Background(), reconcile.Request{
		NamespacedName: types.NamespacedName{Name: "ubuntu"},
	})
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	return res
}

func getImage(t *testing.T, kube client.Client) *v1alpha1.Image {
	t.Helper()
	cr := &v1alpha1.Image{}
	if err := kube.Get(context.Background(), types.NamespacedName{Name: "ubuntu"}, cr); err != nil {
		t.Fatalf("Get: %v", err)
	}
	return cr
}

func TestAsyncImportReachesReady(t *testing.T) {
	g := NewGomegaWithT(t)

	store := &imageStore{states: []string{"saving", "active"}}
	r, kube := newTestReconciler(t, store, managedImage())

	// Create kicks off the web-download import and leaves the CR
	// provisioning with a 30s poll.
	res := reconcileOnce(t, r)
	cr := getImage(t, kube)
	g.Expect(cr.Status.Phase).To(Equal(v1alpha1.PhaseProvisioning))
	g.Expect(cr.Status.UploadStatus).To(Equal("queued"))
	g.Expect(cr.Status.ImageID).To(Equal("img-1"))
	g.Expect(res.RequeueAfter).To(Equal(30 * time.Second))

	// First poll observes the import still saving.
	res = reconcileOnce(t, r)
	cr = getImage(t, kube)
	g.Expect(cr.Status.Phase).To(Equal(v1alpha1.PhaseProvisioning))
	g.Expect(cr.Status.UploadStatus).To(Equal("saving"))
	g.Expect(res.RequeueAfter).To(Equal(30 * time.Second))

	// Second poll sees it active: Ready, checksum and size populated.
	reconcileOnce(t, r)
	cr = getImage(t, kube)
	g.Expect(cr.Status.Phase).To(Equal(v1alpha1.PhaseReady))
	g.Expect(cr.Status.UploadStatus).To(Equal("active"))
	g.Expect(cr.Status.Checksum).To(Equal("d41d8cd98f00b204e9800998ecf8427e"))
	g.Expect(cr.Status.SizeBytes).To(Equal(int64(2361393152)))
}

func TestKilledImportIsPermanent(t *testing.T) {
	g := NewGomegaWithT(t)

	store := &imageStore{states: []string{"killed"}}
	r, kube := newTestReconciler(t, store, managedImage())

	reconcileOnce(t, r)

	res := reconcileOnce(t, r)
	cr := getImage(t, kube)
	g.Expect(cr.Status.Phase).To(Equal(v1alpha1.PhaseError))
	g.Expect(res.RequeueAfter).To(BeZero())
}

func TestExternalImageAbsentStaysPending(t *testing.T) {
	g := NewGomegaWithT(t)

	cr := managedImage()
	cr.Spec.External = true
	cr.Spec.Content.Source = nil

	store := &imageStore{}
	r, kube := newTestReconciler(t, store, cr)

	res := reconcileOnce(t, r)
	got := getImage(t, kube)
	g.Expect(got.Status.Phase).To(Equal(v1alpha1.PhasePending))
	g.Expect(res.RequeueAfter).NotTo(BeZero())

	cond := got.GetCondition(v1alpha1.TypeImageReady)
	g.Expect(string(cond.Reason)).To(Equal("TemporaryError"))
}

func TestExternalImageAppears(t *testing.T) {
	g := NewGomegaWithT(t)

	cr := managedImage()
	cr.Spec.External = true
	cr.Spec.Content.Source = nil

	store := &imageStore{}
	r, kube := newTestReconciler(t, store, cr)
	reconcileOnce(t, r)

	// The image shows up out of band.
	store.img = &osclient.Image{ID: "img-ext", Name: "ubuntu-24.04", Status: imageresource.StatusActive}

	reconcileOnce(t, r)
	got := getImage(t, kube)
	g.Expect(got.Status.Phase).To(Equal(v1alpha1.PhaseReady))
	g.Expect(got.Status.ImageID).To(Equal("img-ext"))
}
