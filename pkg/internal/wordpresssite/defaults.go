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
	corev1 "k8s.io/api/core/v1"

	wordpressv1alpha1 "github.com/bitworks/wordpress-site-operator/pkg/apis/wordpress/v1alpha1"
	"github.com/bitworks/wordpress-site-operator/pkg/cmd/options"
)

const (
	defaultAdminUser  = "admin_username"
	defaultAdminEmail = "name@example.com"
)

var oneReplica int32 = 1

// SetDefaults sets WordpressSite field defaults
func (o *WordpressSite) SetDefaults() {
	if len(o.Spec.Image) == 0 {
		o.Spec.Image = options.WordpressImage
	}

	if len(o.Spec.ImagePullPolicy) == 0 {
		o.Spec.ImagePullPolicy = corev1.PullIfNotPresent
	}

	if len(o.Spec.Domain) == 0 {
		o.Spec.Domain = wordpressv1alpha1.Domain(o.Name)
	}

	if o.Spec.Replicas == nil {
		o.Spec.Replicas = &oneReplica
	}

	if len(o.Spec.InitialSettings.AdminUser) == 0 {
		o.Spec.InitialSettings.AdminUser = defaultAdminUser
	}

	if len(o.Spec.InitialSettings.AdminEmail) == 0 {
		o.Spec.InitialSettings.AdminEmail = defaultAdminEmail
	}
}
