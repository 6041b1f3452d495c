/*
Copyright 2022 Bitworks Media.

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

package v1alpha1_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"golang.org/x/net/context"
	"k8s.io/apimachinery/pkg/types"

	. "github.com/bitworks/wordpress-site-operator/pkg/apis/wordpress/v1alpha1"
)

var _ = Describe("WordpressSite CRUD", func() {
	var created *WordpressSite
	var key types.NamespacedName

	BeforeEach(func() {
		key = types.NamespacedName{Name: "foo", Namespace: "default"}

		created = &WordpressSite{}
		created.Name = key.Name
		created.Namespace = key.Namespace
		created.Spec.Domain = "example.com"
	})

	AfterEach(func() {
		// nolint: errcheck
		c.Delete(context.TODO(), created)
	})

	Describe("when sending a storage request", func() {
		Context("for a valid config", func() {
			It("should provide CRUD access to the object", func() {
				fetched := &WordpressSite{}

				By("returning success from the create request")
				Expect(c.Create(context.TODO(), created)).Should(Succeed())

				By("returning the same object as created")
				Expect(c.Get(context.TODO(), key, fetched)).Should(Succeed())
				Expect(fetched.Spec).To(Equal(created.Spec))

				By("allowing label updates")
				updated := fetched.DeepCopy()
				updated.Labels = map[string]string{"hello": "world"}
				Expect(c.Update(context.TODO(), updated)).Should(Succeed())
				Expect(c.Get(context.TODO(), key, fetched)).Should(Succeed())
				Expect(fetched.Labels).To(Equal(updated.Labels))

				By("deleting the fetched object")
				Expect(c.Delete(context.TODO(), fetched)).Should(Succeed())
				Expect(c.Get(context.TODO(), key, fetched)).To(HaveOccurred())
			})
		})

		Context("for the status subresource", func() {
			It("should persist phase updates", func() {
				Expect(c.Create(context.TODO(), created)).Should(Succeed())

				created.Status.Phase = SiteWaiting
				created.Status.Message = "waiting for a ready web pod"
				Expect(c.Status().Update(context.TODO(), created)).Should(Succeed())

				fetched := &WordpressSite{}
				Expect(c.Get(context.TODO(), key, fetched)).Should(Succeed())
				Expect(fetched.Status.Phase).To(Equal(SiteWaiting))
			})
		})
	})
})
