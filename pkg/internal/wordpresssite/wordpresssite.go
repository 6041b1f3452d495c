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

	"github.com/cooleo/slugify"
	"k8s.io/apimachinery/pkg/labels"

	wordpressv1alpha1 "github.com/bitworks/wordpress-site-operator/pkg/apis/wordpress/v1alpha1"
)

// WordpressSite embeds wordpressv1alpha1.WordpressSite and adds utility functions
type WordpressSite struct {
	*wordpressv1alpha1.WordpressSite
}

type component struct {
	name       string // eg. web, exporter
	objNameFmt string
}

var (
	// WordpressSecret component holds the generated salts, the default admin
	// password and the rendered wp-config.php
	WordpressSecret = component{name: "web", objNameFmt: "%s-wp"}
	// WordpressDeployment component
	WordpressDeployment = component{name: "web", objNameFmt: "%s"}
	// WordpressService component
	WordpressService = component{name: "web", objNameFmt: "%s"}
	// WordpressIngress component
	WordpressIngress = component{name: "web", objNameFmt: "%s"}
)

// New wraps a wordpressv1alpha1.WordpressSite into a WordpressSite object
func New(obj *wordpressv1alpha1.WordpressSite) *WordpressSite {
	return &WordpressSite{obj}
}

// Unwrap returns the wrapped wordpressv1alpha1.WordpressSite object
func (o *WordpressSite) Unwrap() *wordpressv1alpha1.WordpressSite {
	return o.WordpressSite
}

// Labels returns default label set for wordpressv1alpha1.WordpressSite
func (o *WordpressSite) Labels() labels.Set {
	partOf := "wordpress"
	if o.ObjectMeta.Labels != nil && len(o.ObjectMeta.Labels["app.kubernetes.io/part-of"]) > 0 {
		partOf = o.ObjectMeta.Labels["app.kubernetes.io/part-of"]
	}

	l := labels.Set{
		"app.kubernetes.io/name":     "wordpress",
		"app.kubernetes.io/part-of":  partOf,
		"app.kubernetes.io/instance": o.ObjectMeta.Name,
	}

	return l
}

// ComponentLabels returns labels for a label set for a
// wordpressv1alpha1.WordpressSite component
func (o *WordpressSite) ComponentLabels(component component) labels.Set {
	l := o.Labels()
	l["app.kubernetes.io/component"] = component.name

	return l
}

// ComponentName returns the object name for a component
func (o *WordpressSite) ComponentName(component component) string {
	return fmt.Sprintf(component.objNameFmt, o.ObjectMeta.Name)
}

// ImageTagVersion returns the version from the image tag in a format suitable
// for kubernetes object names and labels
func (o *WordpressSite) ImageTagVersion() string {
	return slugify.Slugify(o.Spec.Image)
}

// WebPodLabels return labels to apply to web pods
func (o *WordpressSite) WebPodLabels() labels.Set {
	l := o.Labels()
	l["app.kubernetes.io/component"] = "web"
	return l
}

// MainDomain returns the domain this site answers on
func (o *WordpressSite) MainDomain() string {
	if len(o.Spec.Domain) > 0 {
		return string(o.Spec.Domain)
	}
	return o.Name
}

// SiteTitle returns the title used when installing WordPress
func (o *WordpressSite) SiteTitle() string {
	return fmt.Sprintf("The %s Blog", o.MainDomain())
}
