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

package v1alpha1

import (
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// SecretRef represents a reference to a Secret in the site's namespace
type SecretRef string

// Domain represents a valid domain name
type Domain string

// DatabaseSpec defines how the site connects to its MySQL database.
// Inline connection info takes precedence over the credentials secret, so
// that an explicitly configured database always wins over a bound one.
type DatabaseSpec struct {
	// Host is the MySQL server host
	// +optional
	Host string `json:"host,omitempty"`
	// Name is the database name
	// +optional
	Name string `json:"name,omitempty"`
	// User is the database user
	// +optional
	User string `json:"user,omitempty"`
	// PasswordSecretRef is a secret holding the password for User under the
	// "password" key
	// +optional
	PasswordSecretRef SecretRef `json:"passwordSecretRef,omitempty"`
	// SecretRef is a credentials secret, typically written by a MySQL
	// operator, holding "host", "database", "user" and "password" keys. It is
	// only consulted when the inline connection info is incomplete.
	// +optional
	SecretRef SecretRef `json:"secretRef,omitempty"`
}

// InitialSettingsSpec defines the settings used when installing WordPress
// for the first time
type InitialSettingsSpec struct {
	// AdminUser is the username of the administrator account. Changing it
	// after installation has no effect.
	// +optional
	AdminUser string `json:"adminUser,omitempty"`
	// AdminEmail is the email address of the administrator account
	// +optional
	AdminEmail string `json:"adminEmail,omitempty"`
	// AdminPasswordSecretRef is a secret holding the administrator password
	// under the "password" key. If unset, a password is generated and stored
	// in the site secret under DEFAULT_ADMIN_PASSWORD.
	// +optional
	AdminPasswordSecretRef SecretRef `json:"adminPasswordSecretRef,omitempty"`
}

// AkismetSpec configures the akismet plugin
type AkismetSpec struct {
	// KeySecretRef is a secret holding the akismet API key under the "key"
	// key. The plugin is activated while the secret is set and deactivated
	// when it is removed.
	KeySecretRef SecretRef `json:"keySecretRef"`
}

// OpenIDSpec configures the openid plugin
type OpenIDSpec struct {
	// TeamMap maps launchpad teams to WordPress roles, eg.
	// "site-sysadmins=administrator,site-editors=editor"
	TeamMap string `json:"teamMap"`
}

// ObjectStorageSpec configures the openstack-objectstorage-k8s plugin
type ObjectStorageSpec struct {
	// ConfigSecretRef is a secret holding a YAML document under the "config"
	// key with the swift connection settings (auth-url, bucket, password,
	// object-prefix, region, tenant, domain, swift-url, username,
	// copy-to-swift, serve-from-swift, remove-local-file).
	ConfigSecretRef SecretRef `json:"configSecretRef"`
}

// IntegrationsSpec groups the plugin integrations managed by the operator
type IntegrationsSpec struct {
	// +optional
	Akismet *AkismetSpec `json:"akismet,omitempty"`
	// +optional
	OpenID *OpenIDSpec `json:"openid,omitempty"`
	// +optional
	ObjectStorage *ObjectStorageSpec `json:"objectStorage,omitempty"`
}

// WordpressSiteSpec defines the desired state of WordpressSite
type WordpressSiteSpec struct {
	// Image is the WordPress image run by the web pods
	// +optional
	Image string `json:"image,omitempty"`
	// +optional
	ImagePullPolicy corev1.PullPolicy `json:"imagePullPolicy,omitempty"`
	// +optional
	ImagePullSecrets []corev1.LocalObjectReference `json:"imagePullSecrets,omitempty"`
	// ServiceAccountName is the name of the ServiceAccount used by the web
	// pods
	// +optional
	ServiceAccountName string `json:"serviceAccountName,omitempty"`
	// Number of desired web pods. This is a pointer to distinguish between
	// explicit zero and not specified. Defaults to 1.
	// +optional
	Replicas *int32 `json:"replicas,omitempty"`
	// Domain this site answers on. Defaults to the object name.
	// +optional
	Domain Domain `json:"domain,omitempty"`
	// TLSSecretRef is a secret containing the TLS certificate for Domain
	// +optional
	TLSSecretRef SecretRef `json:"tlsSecretRef,omitempty"`
	// IngressAnnotations for this site
	// +optional
	IngressAnnotations map[string]string `json:"ingressAnnotations,omitempty"`
	// Themes installed in addition to the stock ones. Themes removed from
	// this list get uninstalled.
	// +optional
	Themes []string `json:"themes,omitempty"`
	// Plugins installed in addition to the stock ones. Plugins removed from
	// this list get uninstalled.
	// +optional
	Plugins []string `json:"plugins,omitempty"`
	// +optional
	InitialSettings InitialSettingsSpec `json:"initialSettings,omitempty"`
	// +optional
	Database DatabaseSpec `json:"database,omitempty"`
	// +optional
	Integrations IntegrationsSpec `json:"integrations,omitempty"`
	// Env defines additional environment variables for the web pods
	// +optional
	// +patchMergeKey=name
	// +patchStrategy=merge
	Env []corev1.EnvVar `json:"env,omitempty" patchStrategy:"merge" patchMergeKey:"name"`
	// EnvFrom defines additional envFrom's for the web pods
	// +optional
	EnvFrom []corev1.EnvFromSource `json:"envFrom,omitempty"`
	// +optional
	Resources corev1.ResourceRequirements `json:"resources,omitempty"`
	// +optional
	NodeSelector map[string]string `json:"nodeSelector,omitempty"`
	// +optional
	Tolerations []corev1.Toleration `json:"tolerations,omitempty"`
	// Labels to apply to generated resources
	// +optional
	Labels map[string]string `json:"labels,omitempty"`
}

// SitePhase is a label for the current convergence state of the site
type SitePhase string

const (
	// SitePending means the site has not been reconciled yet
	SitePending SitePhase = "Pending"
	// SiteWaiting means the site waits on something outside the operator's
	// control, eg. the web pod coming up
	SiteWaiting SitePhase = "Waiting"
	// SiteBlocked means the site cannot converge without operator or user
	// intervention, eg. missing database credentials
	SiteBlocked SitePhase = "Blocked"
	// SiteMaintenance means a long running operation, eg. the WordPress
	// database install, is in flight
	SiteMaintenance SitePhase = "Maintenance"
	// SiteReady means the last convergence pass completed successfully
	SiteReady SitePhase = "Ready"
)

// WordpressSiteStatus defines the observed state of WordpressSite
type WordpressSiteStatus struct {
	// +optional
	Phase SitePhase `json:"phase,omitempty"`
	// Message holds details for the current phase
	// +optional
	Message string `json:"message,omitempty"`
	// +optional
	ObservedGeneration int64 `json:"observedGeneration,omitempty"`
	// InstalledAt is the time the WordPress database install completed
	// +optional
	InstalledAt *metav1.Time `json:"installedAt,omitempty"`
}

// +genclient
// +k8s:deepcopy-gen:interfaces=k8s.io/apimachinery/pkg/runtime.Object

// WordpressSite is the Schema for the wordpresssites API
// +k8s:openapi-gen=true
type WordpressSite struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   WordpressSiteSpec   `json:"spec,omitempty"`
	Status WordpressSiteStatus `json:"status,omitempty"`
}

// +k8s:deepcopy-gen:interfaces=k8s.io/apimachinery/pkg/runtime.Object

// WordpressSiteList contains a list of WordpressSite
type WordpressSiteList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []WordpressSite `json:"items"`
}

func init() {
	SchemeBuilder.Register(&WordpressSite{}, &WordpressSiteList{})
}
