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

package wordpresssite

import (
	"fmt"
	"math/rand"
	"path"
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"golang.org/x/net/context"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	extv1beta1 "k8s.io/api/extensions/v1beta1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/manager"
	"sigs.k8s.io/controller-runtime/pkg/reconcile"

	wordpressv1alpha1 "github.com/bitworks/wordpress-site-operator/pkg/apis/wordpress/v1alpha1"
	"github.com/bitworks/wordpress-site-operator/pkg/controller/wordpresssite/internal/site"
	"github.com/bitworks/wordpress-site-operator/pkg/internal/wordpresssite"
	"github.com/bitworks/wordpress-site-operator/pkg/wpcli"
)

const timeout = time.Second * 2

// stockCLI stands in for the pod-exec client: an installed site carrying
// exactly the stock theme and plugin set, every plugin inactive.
type stockCLI struct{}

func (stockCLI) IsInstalled(ctx context.Context) (bool, error) { return true, nil }
func (stockCLI) CoreInstall(ctx context.Context, opts wpcli.InstallOptions) error {
	return nil
}
func (stockCLI) ListAddons(ctx context.Context, kind wpcli.AddonKind) ([]wpcli.AddonStatus, error) {
	sources := site.DefaultPlugins
	if kind == wpcli.Theme {
		sources = site.DefaultThemes
	}

	addons := make([]wpcli.AddonStatus, 0, len(sources))
	for _, source := range sources {
		addons = append(addons, wpcli.AddonStatus{Name: path.Base(source), Status: "inactive"})
	}

	return addons, nil
}
func (stockCLI) InstallAddon(ctx context.Context, kind wpcli.AddonKind, name string) error {
	return nil
}
func (stockCLI) UninstallAddon(ctx context.Context, kind wpcli.AddonKind, name string) error {
	return nil
}
func (stockCLI) ActivatePlugin(ctx context.Context, name string) error   { return nil }
func (stockCLI) DeactivatePlugin(ctx context.Context, name string) error { return nil }
func (stockCLI) UpdateOption(ctx context.Context, name, value string, format wpcli.OptionFormat) error {
	return nil
}
func (stockCLI) DeleteOption(ctx context.Context, name string) error { return nil }

var _ = Describe("WordpressSite controller", func() {
	var (
		// channel for incoming reconcile requests
		requests chan reconcile.Request
		// stops the controller manager
		stop context.CancelFunc
		// controller k8s client
		c client.Client
	)

	BeforeEach(func() {
		var recFn reconcile.Reconciler

		mgr, err := manager.New(cfg, manager.Options{MetricsBindAddress: "0"})
		Expect(err).NotTo(HaveOccurred())
		c = mgr.GetClient()

		r := newReconciler(mgr, func(target wpcli.Target) wpcli.Interface {
			return stockCLI{}
		}).(*ReconcileWordpressSite)
		r.probe = func(ctx context.Context, dsn string) error { return nil }

		recFn, requests = SetupTestReconcile(r)
		Expect(add(mgr, recFn)).To(Succeed())

		stop = StartTestManager(mgr)
	})

	AfterEach(func() {
		stop()
	})

	Describe("when creating a new WordpressSite resource", func() {
		var expectedRequest reconcile.Request
		var dependantKey types.NamespacedName
		var wp *wordpressv1alpha1.WordpressSite

		BeforeEach(func() {
			name := fmt.Sprintf("wp-%d", rand.Int31())

			expectedRequest = reconcile.Request{NamespacedName: types.NamespacedName{Name: name, Namespace: "default"}}
			dependantKey = types.NamespacedName{Name: name, Namespace: "default"}
			wp = &wordpressv1alpha1.WordpressSite{
				ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: "default"},
				Spec: wordpressv1alpha1.WordpressSiteSpec{
					Domain: wordpressv1alpha1.Domain(fmt.Sprintf("%s.example.com", name)),
				},
			}
		})

		It("reconciles the site secret", func() {
			Expect(c.Create(context.TODO(), wp)).To(Succeed())
			// nolint: errcheck
			defer c.Delete(context.TODO(), wp)

			Eventually(requests, timeout).Should(Receive(Equal(expectedRequest)))

			secretKey := types.NamespacedName{Name: fmt.Sprintf("%s-wp", wp.Name), Namespace: "default"}
			secret := &corev1.Secret{}
			Eventually(func() error { return c.Get(context.TODO(), secretKey, secret) }, timeout).Should(Succeed())

			By("generating the keys and salts")
			Expect(secret.Data["AUTH_KEY"]).To(HaveLen(64))
			Expect(secret.Data["NONCE_SALT"]).To(HaveLen(64))
			Expect(secret.Data["DEFAULT_ADMIN_PASSWORD"]).To(HaveLen(32))

			By("not rendering wp-config.php while database credentials are unknown")
			Expect(secret.Data).NotTo(HaveKey("wp-config.php"))
		})

		It("renders wp-config.php once database credentials are available", func() {
			passwordSecret := &corev1.Secret{
				ObjectMeta: metav1.ObjectMeta{Name: fmt.Sprintf("%s-db", wp.Name), Namespace: "default"},
				StringData: map[string]string{"password": "database-password"},
			}
			Expect(c.Create(context.TODO(), passwordSecret)).To(Succeed())
			// nolint: errcheck
			defer c.Delete(context.TODO(), passwordSecret)

			wp.Spec.Database = wordpressv1alpha1.DatabaseSpec{
				Host:              "mysql.default.svc",
				Name:              "wordpress",
				User:              "wordpress",
				PasswordSecretRef: wordpressv1alpha1.SecretRef(passwordSecret.Name),
			}

			Expect(c.Create(context.TODO(), wp)).To(Succeed())
			// nolint: errcheck
			defer c.Delete(context.TODO(), wp)

			Eventually(requests, timeout).Should(Receive(Equal(expectedRequest)))

			secretKey := types.NamespacedName{Name: fmt.Sprintf("%s-wp", wp.Name), Namespace: "default"}
			secret := &corev1.Secret{}
			Eventually(func() map[string][]byte {
				// nolint: errcheck
				c.Get(context.TODO(), secretKey, secret)
				return secret.Data
			}, timeout).Should(HaveKey("wp-config.php"))

			wpConfig := string(secret.Data["wp-config.php"])
			Expect(wpConfig).To(ContainSubstring("define( 'DB_HOST', 'mysql.default.svc' );"))
			Expect(wpConfig).To(ContainSubstring("define( 'DB_PASSWORD', 'database-password' );"))
		})

		It("reconciles the deployment", func() {
			Expect(c.Create(context.TODO(), wp)).To(Succeed())
			// nolint: errcheck
			defer c.Delete(context.TODO(), wp)

			Eventually(requests, timeout).Should(Receive(Equal(expectedRequest)))

			deploy := &appsv1.Deployment{}
			Eventually(func() error { return c.Get(context.TODO(), dependantKey, deploy) }, timeout).Should(Succeed())

			Expect(deploy.Spec.Template.Spec.Containers[0].Name).To(Equal("wordpress"))

			// Manually delete Deployment since GC isn't enabled in the test control plane
			Eventually(func() error { return c.Delete(context.TODO(), deploy) }, timeout).Should(Succeed())
		})

		It("reconciles the service", func() {
			Expect(c.Create(context.TODO(), wp)).To(Succeed())
			// nolint: errcheck
			defer c.Delete(context.TODO(), wp)

			Eventually(requests, timeout).Should(Receive(Equal(expectedRequest)))

			service := &corev1.Service{}
			Eventually(func() error { return c.Get(context.TODO(), dependantKey, service) }, timeout).Should(Succeed())

			Expect(service.Spec.Ports).To(HaveLen(1))
			Expect(service.Spec.Ports[0].Name).To(Equal("http"))

			// Manually delete Service since GC isn't enabled in the test control plane
			Eventually(func() error { return c.Delete(context.TODO(), service) }, timeout).Should(Succeed())
		})

		It("reconciles the ingress", func() {
			Expect(c.Create(context.TODO(), wp)).To(Succeed())
			// nolint: errcheck
			defer c.Delete(context.TODO(), wp)

			Eventually(requests, timeout).Should(Receive(Equal(expectedRequest)))

			ingress := &extv1beta1.Ingress{}
			Eventually(func() error { return c.Get(context.TODO(), dependantKey, ingress) }, timeout).Should(Succeed())

			Expect(ingress.Spec.Rules).To(HaveLen(1))
			Expect(ingress.Spec.Rules[0].Host).To(Equal(string(wp.Spec.Domain)))

			// Manually delete ingress since GC isn't enabled in the test control plane
			Eventually(func() error { return c.Delete(context.TODO(), ingress) }, timeout).Should(Succeed())
		})

		It("reports waiting for database credentials while they are incomplete", func() {
			wp.Spec.Database = wordpressv1alpha1.DatabaseSpec{
				Host: "mysql.default.svc",
				Name: "wordpress",
				User: "wordpress",
			}

			Expect(c.Create(context.TODO(), wp)).To(Succeed())
			// nolint: errcheck
			defer c.Delete(context.TODO(), wp)

			Eventually(requests, timeout).Should(Receive(Equal(expectedRequest)))

			fetched := &wordpressv1alpha1.WordpressSite{}
			Eventually(func() wordpressv1alpha1.SitePhase {
				// nolint: errcheck
				c.Get(context.TODO(), dependantKey, fetched)
				return fetched.Status.Phase
			}, timeout).Should(Equal(wordpressv1alpha1.SiteWaiting))

			Expect(fetched.Status.Message).To(ContainSubstring("database credentials"))
		})

		It("reports the waiting phase while no web pod is ready", func() {
			passwordSecret := &corev1.Secret{
				ObjectMeta: metav1.ObjectMeta{Name: fmt.Sprintf("%s-db", wp.Name), Namespace: "default"},
				StringData: map[string]string{"password": "database-password"},
			}
			Expect(c.Create(context.TODO(), passwordSecret)).To(Succeed())
			// nolint: errcheck
			defer c.Delete(context.TODO(), passwordSecret)

			wp.Spec.Database = wordpressv1alpha1.DatabaseSpec{
				Host:              "mysql.default.svc",
				Name:              "wordpress",
				User:              "wordpress",
				PasswordSecretRef: wordpressv1alpha1.SecretRef(passwordSecret.Name),
			}

			Expect(c.Create(context.TODO(), wp)).To(Succeed())
			// nolint: errcheck
			defer c.Delete(context.TODO(), wp)

			Eventually(requests, timeout).Should(Receive(Equal(expectedRequest)))

			fetched := &wordpressv1alpha1.WordpressSite{}
			Eventually(func() wordpressv1alpha1.SitePhase {
				// nolint: errcheck
				c.Get(context.TODO(), dependantKey, fetched)
				return fetched.Status.Phase
			}, timeout).Should(Equal(wordpressv1alpha1.SiteWaiting))

			Expect(fetched.Status.Message).To(ContainSubstring("web pod"))
		})

		It("reports the ready phase once the site converges", func() {
			passwordSecret := &corev1.Secret{
				ObjectMeta: metav1.ObjectMeta{Name: fmt.Sprintf("%s-db", wp.Name), Namespace: "default"},
				StringData: map[string]string{"password": "database-password"},
			}
			Expect(c.Create(context.TODO(), passwordSecret)).To(Succeed())
			// nolint: errcheck
			defer c.Delete(context.TODO(), passwordSecret)

			wp.Spec.Database = wordpressv1alpha1.DatabaseSpec{
				Host:              "mysql.default.svc",
				Name:              "wordpress",
				User:              "wordpress",
				PasswordSecretRef: wordpressv1alpha1.SecretRef(passwordSecret.Name),
			}

			// No kubelet runs under envtest, so the ready web pod is staged
			// by hand before the site is created.
			pod := &corev1.Pod{
				ObjectMeta: metav1.ObjectMeta{
					Name:      fmt.Sprintf("%s-web", wp.Name),
					Namespace: "default",
					Labels:    wordpresssite.New(wp).WebPodLabels(),
				},
				Spec: corev1.PodSpec{
					Containers: []corev1.Container{
						{Name: "wordpress", Image: "wordpress"},
					},
				},
			}
			Expect(c.Create(context.TODO(), pod)).To(Succeed())
			// nolint: errcheck
			defer c.Delete(context.TODO(), pod)

			pod.Status.Phase = corev1.PodRunning
			pod.Status.Conditions = []corev1.PodCondition{
				{Type: corev1.PodReady, Status: corev1.ConditionTrue},
			}
			Expect(c.Status().Update(context.TODO(), pod)).To(Succeed())

			Expect(c.Create(context.TODO(), wp)).To(Succeed())
			// nolint: errcheck
			defer c.Delete(context.TODO(), wp)

			Eventually(requests, timeout).Should(Receive(Equal(expectedRequest)))

			fetched := &wordpressv1alpha1.WordpressSite{}
			Eventually(func() wordpressv1alpha1.SitePhase {
				// nolint: errcheck
				c.Get(context.TODO(), dependantKey, fetched)
				return fetched.Status.Phase
			}, timeout).Should(Equal(wordpressv1alpha1.SiteReady))

			Expect(fetched.Status.InstalledAt).NotTo(BeNil())
		})

		It("preserves the generated secret material across reconciliations", func() {
			Expect(c.Create(context.TODO(), wp)).To(Succeed())
			// nolint: errcheck
			defer c.Delete(context.TODO(), wp)

			Eventually(requests, timeout).Should(Receive(Equal(expectedRequest)))

			secretKey := types.NamespacedName{Name: fmt.Sprintf("%s-wp", wp.Name), Namespace: "default"}
			secret := &corev1.Secret{}
			Eventually(func() error { return c.Get(context.TODO(), secretKey, secret) }, timeout).Should(Succeed())

			authKey := secret.Data["AUTH_KEY"]
			password := secret.Data["DEFAULT_ADMIN_PASSWORD"]
			Expect(authKey).NotTo(BeEmpty())
			Expect(password).NotTo(BeEmpty())

			By("triggering another reconciliation with a spec change")
			Eventually(func() error {
				if err := c.Get(context.TODO(), dependantKey, wp); err != nil {
					return err
				}
				wp.Spec.Labels = map[string]string{"environment": "test"}
				return c.Update(context.TODO(), wp)
			}, timeout).Should(Succeed())

			Eventually(requests, timeout).Should(Receive(Equal(expectedRequest)))

			resynced := &corev1.Secret{}
			Expect(c.Get(context.TODO(), secretKey, resynced)).To(Succeed())
			Expect(resynced.Data["AUTH_KEY"]).To(Equal(authKey))
			Expect(resynced.Data["DEFAULT_ADMIN_PASSWORD"]).To(Equal(password))
		})
	})
})
