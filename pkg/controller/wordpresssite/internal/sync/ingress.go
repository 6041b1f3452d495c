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
	extv1beta1 "k8s.io/api/extensions/v1beta1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/apimachinery/pkg/util/intstr"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/presslabs/controller-util/syncer"

	"github.com/bitworks/wordpress-site-operator/pkg/internal/wordpresssite"
)

// upsertPath adds a path to the rule of the given host, creating the rule if
// the host has none yet. Existing paths are left in place.
func upsertPath(rules []extv1beta1.IngressRule, host, path string, bk extv1beta1.IngressBackend) []extv1beta1.IngressRule {
	for i := range rules {
		if rules[i].Host != host {
			continue
		}

		if rules[i].HTTP == nil {
			rules[i].HTTP = &extv1beta1.HTTPIngressRuleValue{}
		}
		for _, p := range rules[i].HTTP.Paths {
			if p.Path == path {
				return rules
			}
		}
		rules[i].HTTP.Paths = append(rules[i].HTTP.Paths, extv1beta1.HTTPIngressPath{
			Path:    path,
			Backend: bk,
		})

		return rules
	}

	return append(rules, extv1beta1.IngressRule{
		Host: host,
		IngressRuleValue: extv1beta1.IngressRuleValue{
			HTTP: &extv1beta1.HTTPIngressRuleValue{
				Paths: []extv1beta1.HTTPIngressPath{
					{Path: path, Backend: bk},
				},
			},
		},
	})
}

// NewIngressSyncer returns a syncer for the web Ingress
func NewIngressSyncer(wp *wordpresssite.WordpressSite, c client.Client) syncer.Interface {
	objLabels := wp.ComponentLabels(wordpresssite.WordpressIngress)

	obj := &extv1beta1.Ingress{
		ObjectMeta: metav1.ObjectMeta{
			Name:      wp.ComponentName(wordpresssite.WordpressIngress),
			Namespace: wp.Namespace,
		},
	}

	return syncer.NewObjectSyncer("Ingress", wp.Unwrap(), obj, c, func() error {
		obj.Labels = labels.Merge(labels.Merge(labels.Set(wp.Spec.Labels), objLabels), controllerLabels)

		if len(obj.ObjectMeta.Annotations) == 0 {
			obj.ObjectMeta.Annotations = make(map[string]string)
		}
		for k, v := range wp.Spec.IngressAnnotations {
			obj.ObjectMeta.Annotations[k] = v
		}

		bk := extv1beta1.IngressBackend{
			ServiceName: wp.ComponentName(wordpresssite.WordpressService),
			ServicePort: intstr.FromString("http"),
		}

		obj.Spec.Rules = upsertPath(nil, wp.MainDomain(), "/", bk)

		if len(wp.Spec.TLSSecretRef) > 0 {
			obj.Spec.TLS = []extv1beta1.IngressTLS{
				{
					Hosts:      []string{wp.MainDomain()},
					SecretName: string(wp.Spec.TLSSecretRef),
				},
			}
		} else {
			obj.Spec.TLS = nil
		}

		return nil
	})
}
