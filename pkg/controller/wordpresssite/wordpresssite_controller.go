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
	"context"
	"time"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	extv1beta1 "k8s.io/api/extensions/v1beta1"
	"k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/client-go/tools/record"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/controller"
	"sigs.k8s.io/controller-runtime/pkg/handler"
	logf "sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/manager"
	"sigs.k8s.io/controller-runtime/pkg/reconcile"
	"sigs.k8s.io/controller-runtime/pkg/source"

	"github.com/go-logr/logr"

	"github.com/presslabs/controller-util/syncer"

	wordpressv1alpha1 "github.com/bitworks/wordpress-site-operator/pkg/apis/wordpress/v1alpha1"
	"github.com/bitworks/wordpress-site-operator/pkg/controller/wordpresssite/internal/site"
	"github.com/bitworks/wordpress-site-operator/pkg/controller/wordpresssite/internal/sync"
	"github.com/bitworks/wordpress-site-operator/pkg/internal/wordpresssite"
	"github.com/bitworks/wordpress-site-operator/pkg/wpcli"
)

const controllerName = "wordpresssite-controller"

const (
	// waitingRequeueInterval retries sites held back by a dependency that
	// produces no watch event, such as a database coming up
	waitingRequeueInterval = 30 * time.Second
	// blockedRequeueInterval retries sites blocked on something the user
	// has to fix
	blockedRequeueInterval = time.Minute
)

// CLIFactory builds a wp-cli client bound to a target pod
type CLIFactory func(target wpcli.Target) wpcli.Interface

// Add creates a new WordpressSite Controller and adds it to the Manager. The
// Manager will set fields on the Controller and Start it when the Manager is
// Started.
func Add(mgr manager.Manager) error {
	executor, err := wpcli.NewPodExecutor(mgr.GetConfig())
	if err != nil {
		return err
	}

	return add(mgr, newReconciler(mgr, func(target wpcli.Target) wpcli.Interface {
		return wpcli.New(executor, target)
	}))
}

// newReconciler returns a new reconcile.Reconciler
func newReconciler(mgr manager.Manager, cliFactory CLIFactory) reconcile.Reconciler {
	return &ReconcileWordpressSite{
		Client:     mgr.GetClient(),
		scheme:     mgr.GetScheme(),
		recorder:   mgr.GetEventRecorderFor(controllerName),
		log:        logf.Log.WithName(controllerName),
		cliFactory: cliFactory,
	}
}

// add adds a new Controller to mgr with r as the reconcile.Reconciler
func add(mgr manager.Manager, r reconcile.Reconciler) error {
	c, err := controller.New(controllerName, mgr, controller.Options{Reconciler: r})
	if err != nil {
		return err
	}

	// Watch for changes to WordpressSite
	err = c.Watch(&source.Kind{Type: &wordpressv1alpha1.WordpressSite{}}, &handler.EnqueueRequestForObject{})
	if err != nil {
		return err
	}

	subresources := []client.Object{
		&corev1.Secret{},
		&appsv1.Deployment{},
		&corev1.Service{},
		&extv1beta1.Ingress{},
	}

	for _, subresource := range subresources {
		err = c.Watch(&source.Kind{Type: subresource}, &handler.EnqueueRequestForOwner{
			IsController: true,
			OwnerType:    &wordpressv1alpha1.WordpressSite{},
		})
		if err != nil {
			return err
		}
	}

	return nil
}

var _ reconcile.Reconciler = &ReconcileWordpressSite{}

// ReconcileWordpressSite reconciles a WordpressSite object
type ReconcileWordpressSite struct {
	client.Client
	scheme     *runtime.Scheme
	recorder   record.EventRecorder
	log        logr.Logger
	cliFactory CLIFactory

	// probe overrides the database connectivity check, used in tests
	probe site.DBProber
}

// Reconcile reads the state of the cluster for a WordpressSite object and
// drives the cluster objects and the WordPress installation itself towards
// the declared state.
//
// +kubebuilder:rbac:groups=,resources=secrets;services;pods,verbs=get;list;watch;create;update;patch;delete
// +kubebuilder:rbac:groups=,resources=pods/exec,verbs=create
// +kubebuilder:rbac:groups=apps,resources=deployments,verbs=get;list;watch;create;update;patch;delete
// +kubebuilder:rbac:groups=extensions,resources=ingresses,verbs=get;list;watch;create;update;patch;delete
// +kubebuilder:rbac:groups=wordpress.bitworks.dev,resources=wordpresssites;wordpresssites/status,verbs=get;list;watch;create;update;patch;delete
func (r *ReconcileWordpressSite) Reconcile(ctx context.Context, request reconcile.Request) (reconcile.Result, error) {
	log := r.log.WithValues("wordpresssite", request.NamespacedName)

	wp := wordpresssite.New(&wordpressv1alpha1.WordpressSite{})
	err := r.Get(ctx, request.NamespacedName, wp.Unwrap())
	if err != nil {
		if errors.IsNotFound(err) {
			// Object not found, return. Created objects are automatically
			// garbage collected.
			return reconcile.Result{}, nil
		}

		return reconcile.Result{}, err
	}
	wp.SetDefaults()

	err = r.reconcile(ctx, log, wp)
	if err != nil {
		if statusErr, ok := site.AsStatusError(err); ok {
			log.Info("reconciliation incomplete", "phase", statusErr.Phase, "reason", statusErr.Message)
			recordReconciliation(resultIncomplete)

			if err = r.updateStatus(ctx, wp, statusErr.Phase, statusErr.Message); err != nil {
				return reconcile.Result{}, err
			}

			interval := waitingRequeueInterval
			if statusErr.Phase == wordpressv1alpha1.SiteBlocked {
				interval = blockedRequeueInterval
			}

			return reconcile.Result{RequeueAfter: interval}, nil
		}

		recordReconciliation(resultError)

		return reconcile.Result{}, err
	}

	recordReconciliation(resultSuccess)

	return reconcile.Result{}, r.updateStatus(ctx, wp, wordpressv1alpha1.SiteReady, "")
}

func (r *ReconcileWordpressSite) reconcile(ctx context.Context, log logr.Logger, wp *wordpresssite.WordpressSite) error {
	creds, err := r.resolveDatabaseCreds(ctx, wp)
	if err != nil {
		return err
	}

	in := site.Input{Creds: creds}
	if err = r.resolveSiteInput(ctx, wp, &in); err != nil {
		return err
	}

	secretSyncer := sync.NewSecretSyncer(wp, creds, in.ObjectStorage, r.Client)
	if err = syncer.Sync(ctx, secretSyncer, r.recorder); err != nil {
		return err
	}

	secret := &corev1.Secret{}
	secretKey := types.NamespacedName{
		Name:      wp.ComponentName(wordpresssite.WordpressSecret),
		Namespace: wp.Namespace,
	}
	if err = r.Get(ctx, secretKey, secret); err != nil {
		return err
	}
	in.Secrets = secret.Data

	syncers := []syncer.Interface{
		sync.NewDeploymentSyncer(wp, secret, r.Client),
		sync.NewServiceSyncer(wp, r.Client),
		sync.NewIngressSyncer(wp, r.Client),
	}
	for _, s := range syncers {
		if err = syncer.Sync(ctx, s, r.recorder); err != nil {
			return err
		}
	}

	// Without credentials the secret has no wp-config.php, the web pods
	// cannot mount their config and never turn ready. Report the actual
	// dependency instead of the pod readiness it cascades into.
	if !creds.Complete() {
		return site.Waitingf("waiting for database credentials")
	}

	pod, err := r.readyWebPod(ctx, wp)
	if err != nil {
		return err
	}

	conv := &site.Converger{
		CLI: r.cliFactory(wpcli.Target{
			Namespace: wp.Namespace,
			Pod:       pod.Name,
			Container: wordpresssite.WebContainerName,
		}),
		Probe: r.probe,
		Log:   log,
		Notify: func(phase wordpressv1alpha1.SitePhase, message string) {
			if err := r.updateStatus(ctx, wp, phase, message); err != nil {
				log.Error(err, "unable to publish transient status", "phase", phase)
			}
		},
	}

	return conv.Converge(ctx, wp, in)
}

// resolveDatabaseCreds computes the effective database credentials.
// Connection settings given inline in the spec win over the ones from the
// referenced secret.
func (r *ReconcileWordpressSite) resolveDatabaseCreds(ctx context.Context, wp *wordpresssite.WordpressSite) (wordpresssite.DatabaseCreds, error) {
	db := wp.Spec.Database
	creds := wordpresssite.DatabaseCreds{
		Host: db.Host,
		Name: db.Name,
		User: db.User,
	}

	if len(db.SecretRef) > 0 {
		secret, err := r.readSecret(ctx, wp.Namespace, db.SecretRef)
		if err != nil {
			return creds, err
		}

		if creds.Host == "" {
			creds.Host = string(secret.Data["host"])
		}
		if creds.Name == "" {
			creds.Name = string(secret.Data["database"])
		}
		if creds.User == "" {
			creds.User = string(secret.Data["user"])
		}
		creds.Password = string(secret.Data["password"])
	}

	if len(db.PasswordSecretRef) > 0 {
		secret, err := r.readSecret(ctx, wp.Namespace, db.PasswordSecretRef)
		if err != nil {
			return creds, err
		}
		creds.Password = string(secret.Data["password"])
	}

	return creds, nil
}

// resolveSiteInput reads the secret material the plugin integrations and the
// initial installation need
func (r *ReconcileWordpressSite) resolveSiteInput(ctx context.Context, wp *wordpresssite.WordpressSite, in *site.Input) error {
	if ref := wp.Spec.InitialSettings.AdminPasswordSecretRef; len(ref) > 0 {
		secret, err := r.readSecret(ctx, wp.Namespace, ref)
		if err != nil {
			return err
		}
		in.AdminPassword = string(secret.Data["password"])
	}

	integrations := wp.Spec.Integrations

	if integrations.Akismet != nil && len(integrations.Akismet.KeySecretRef) > 0 {
		secret, err := r.readSecret(ctx, wp.Namespace, integrations.Akismet.KeySecretRef)
		if err != nil {
			return err
		}
		in.AkismetKey = string(secret.Data["key"])
	}

	if integrations.OpenID != nil {
		in.TeamMap = integrations.OpenID.TeamMap
	}

	if integrations.ObjectStorage != nil && len(integrations.ObjectStorage.ConfigSecretRef) > 0 {
		secret, err := r.readSecret(ctx, wp.Namespace, integrations.ObjectStorage.ConfigSecretRef)
		if err != nil {
			return err
		}

		config, err := site.ParseObjectStorageConfig(secret.Data["config"])
		if err != nil {
			return err
		}
		in.ObjectStorage = config
	}

	return nil
}

// readSecret reads a referenced secret. A missing secret is a Waiting
// condition, not a hard failure, since it may simply not be created yet.
func (r *ReconcileWordpressSite) readSecret(ctx context.Context, namespace string, ref wordpressv1alpha1.SecretRef) (*corev1.Secret, error) {
	secret := &corev1.Secret{}
	err := r.Get(ctx, types.NamespacedName{Name: string(ref), Namespace: namespace}, secret)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, site.Waitingf("waiting for secret %q", ref)
		}

		return nil, err
	}

	return secret, nil
}

// readyWebPod picks a ready web pod to run wp-cli in
func (r *ReconcileWordpressSite) readyWebPod(ctx context.Context, wp *wordpresssite.WordpressSite) (*corev1.Pod, error) {
	podList := &corev1.PodList{}
	err := r.List(ctx, podList,
		client.InNamespace(wp.Namespace),
		client.MatchingLabels(wp.WebPodLabels()),
	)
	if err != nil {
		return nil, err
	}

	for i := range podList.Items {
		pod := &podList.Items[i]
		if pod.DeletionTimestamp != nil {
			continue
		}
		for _, cond := range pod.Status.Conditions {
			if cond.Type == corev1.PodReady && cond.Status == corev1.ConditionTrue {
				return pod, nil
			}
		}
	}

	return nil, site.Waitingf("waiting for a ready web pod")
}

func (r *ReconcileWordpressSite) updateStatus(ctx context.Context, wp *wordpresssite.WordpressSite, phase wordpressv1alpha1.SitePhase, message string) error {
	status := &wp.Status

	if status.Phase == phase && status.Message == message && status.ObservedGeneration == wp.Generation {
		return nil
	}

	status.Phase = phase
	status.Message = message
	status.ObservedGeneration = wp.Generation

	if phase == wordpressv1alpha1.SiteReady && status.InstalledAt == nil {
		now := metav1.Now()
		status.InstalledAt = &now
	}

	return r.Status().Update(ctx, wp.Unwrap())
}
