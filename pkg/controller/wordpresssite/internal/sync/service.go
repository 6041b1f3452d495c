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
	"k8s.io/apimachinery/pkg/util/intstr"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/presslabs/controller-util/syncer"

	"github.com/bitworks/wordpress-site-operator/pkg/internal/wordpresssite"
)

// NewServiceSyncer returns a syncer for the web Service
func NewServiceSyncer(wp *wordpresssite.WordpressSite, c client.Client) syncer.Interface {
	objLabels := wp.ComponentLabels(wordpresssite.WordpressService)

	obj := &corev1.Service{
		ObjectMeta: metav1.ObjectMeta{
			Name:      wp.ComponentName(wordpresssite.WordpressService),
			Namespace: wp.Namespace,
		},
	}

	return syncer.NewObjectSyncer("Service", wp.Unwrap(), obj, c, func() error {
		obj.Labels = labels.Merge(labels.Merge(labels.Set(wp.Spec.Labels), objLabels), controllerLabels)

		obj.Spec.Selector = wp.WebPodLabels()

		if len(obj.Spec.Ports) != 1 {
			obj.Spec.Ports = make([]corev1.ServicePort, 1)
		}
		obj.Spec.Ports[0].Name = "http"
		obj.Spec.Ports[0].Port = int32(80)
		obj.Spec.Ports[0].TargetPort = intstr.FromInt(wordpresssite.InternalHTTPPort)

		return nil
	})
}
