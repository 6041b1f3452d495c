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

package sync

import (
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/labels"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/presslabs/controller-util/rand"
	"github.com/presslabs/controller-util/syncer"

	"github.com/bitworks/wordpress-site-operator/pkg/controller/wordpresssite/internal/site"
	"github.com/bitworks/wordpress-site-operator/pkg/internal/wordpresssite"
)

const (
	saltLength          = 64
	adminPasswordLength = 32
)

// NewSecretSyncer returns a syncer for the site secret. The secret carries
// the generated keys and salts, the default administrator password and the
// rendered wp-config.php. Generated values are created once and then kept,
// so an existing site never loses its salts or its admin password.
func NewSecretSyncer(wp *wordpresssite.WordpressSite, creds wordpresssite.DatabaseCreds, storage *site.ObjectStorageConfig, c client.Client) syncer.Interface {
	objLabels := wp.ComponentLabels(wordpresssite.WordpressSecret)

	obj := &corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{
			Name:      wp.ComponentName(wordpresssite.WordpressSecret),
			Namespace: wp.Namespace,
		},
	}

	return syncer.NewObjectSyncer("Secret", wp.Unwrap(), obj, c, func() error {
		obj.Labels = labels.Merge(labels.Merge(labels.Set(wp.Spec.Labels), objLabels), controllerLabels)

		if len(obj.Data) == 0 {
			obj.Data = make(map[string][]byte)
		}

		for _, field := range wordpresssite.SecretFields {
			if len(obj.Data[field]) == 0 {
				random, err := rand.ASCIIString(saltLength)
				if err != nil {
					return err
				}
				obj.Data[field] = []byte(random)
			}
		}

		if len(obj.Data[wordpresssite.DefaultAdminPasswordKey]) == 0 {
			random, err := rand.AlphaNumericString(adminPasswordLength)
			if err != nil {
				return err
			}
			obj.Data[wordpresssite.DefaultAdminPasswordKey] = []byte(random)
		}

		// wp-config.php needs the effective database credentials. Until they
		// are known the key stays absent and the deployment cannot mount it,
		// which holds the web pods back as well.
		if creds.Complete() {
			wpConfig, err := wordpresssite.GenerateWPConfig(creds, obj.Data)
			if err != nil {
				return err
			}
			obj.Data[wordpresssite.WPConfigKey] = []byte(wpConfig)
		} else {
			delete(obj.Data, wordpresssite.WPConfigKey)
		}

		if storage != nil {
			obj.Data[wordpresssite.ObjectStorageProxyConfKey] = []byte(storage.ApacheProxyConf())
		} else {
			delete(obj.Data, wordpresssite.ObjectStorageProxyConfKey)
		}

		return nil
	})
}
