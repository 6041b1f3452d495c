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

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/util/intstr"

	"github.com/bitworks/wordpress-site-operator/pkg/cmd/options"
)

const (
	// InternalHTTPPort is the port the WordPress (apache) container serves on
	InternalHTTPPort = 80
	// ApacheExporterPort is the port the apache metrics exporter listens on
	ApacheExporterPort = 9117

	// WebContainerName is the name of the WordPress container inside the web
	// pod, the one wp-cli commands are executed in
	WebContainerName = "wordpress"

	// WPConfigPath is where the rendered wp-config.php gets mounted
	WPConfigPath = "/var/www/html/wp-config.php"
	// WPConfigKey is the site secret key holding the rendered wp-config.php
	WPConfigKey = "wp-config.php"

	// ObjectStorageProxyConfPath is where the apache uploads proxy config
	// gets mounted when the object storage integration is enabled
	ObjectStorageProxyConfPath = "/etc/apache2/conf-enabled/object-storage-proxy.conf"
	// ObjectStorageProxyConfKey is the site secret key holding the apache
	// uploads proxy config
	ObjectStorageProxyConfKey = "object-storage-proxy.conf"

	configVolumeName = "wordpress-config"
)

func (o *WordpressSite) configVolume() corev1.Volume {
	var configMode int32 = 0o420

	return corev1.Volume{
		Name: configVolumeName,
		VolumeSource: corev1.VolumeSource{
			Secret: &corev1.SecretVolumeSource{
				SecretName:  o.ComponentName(WordpressSecret),
				DefaultMode: &configMode,
			},
		},
	}
}

func (o *WordpressSite) configVolumeMounts() []corev1.VolumeMount {
	out := []corev1.VolumeMount{
		{
			Name:      configVolumeName,
			MountPath: WPConfigPath,
			SubPath:   WPConfigKey,
			ReadOnly:  true,
		},
	}

	if o.Spec.Integrations.ObjectStorage != nil {
		out = append(out, corev1.VolumeMount{
			Name:      configVolumeName,
			MountPath: ObjectStorageProxyConfPath,
			SubPath:   ObjectStorageProxyConfKey,
			ReadOnly:  true,
		})
	}

	return out
}

func (o *WordpressSite) webContainer() corev1.Container {
	return corev1.Container{
		Name:            WebContainerName,
		Image:           o.Spec.Image,
		ImagePullPolicy: o.Spec.ImagePullPolicy,
		VolumeMounts:    o.configVolumeMounts(),
		Env:             o.Spec.Env,
		EnvFrom:         o.Spec.EnvFrom,
		Resources:       o.Spec.Resources,
		Ports: []corev1.ContainerPort{
			{
				Name:          "http",
				ContainerPort: int32(InternalHTTPPort),
			},
		},
	}
}

func (o *WordpressSite) exporterContainer() corev1.Container {
	return corev1.Container{
		Name:  "apache-exporter",
		Image: options.ApacheExporterImage,
		Args: []string{
			fmt.Sprintf("--scrape_uri=http://localhost:%d/server-status?auto", InternalHTTPPort),
		},
		Ports: []corev1.ContainerPort{
			{
				Name:          "metrics",
				ContainerPort: int32(ApacheExporterPort),
			},
		},
		LivenessProbe: &corev1.Probe{
			Handler: corev1.Handler{
				HTTPGet: &corev1.HTTPGetAction{
					Path: "/metrics",
					Port: intstr.FromInt(ApacheExporterPort),
				},
			},
		},
	}
}

// WebPodTemplateSpec generates a pod template spec suitable for use in the
// site Deployment
func (o *WordpressSite) WebPodTemplateSpec() (out corev1.PodTemplateSpec) {
	out = corev1.PodTemplateSpec{}
	out.ObjectMeta.Labels = o.WebPodLabels()
	out.ObjectMeta.Annotations = map[string]string{
		"prometheus.io/scrape": "true",
		"prometheus.io/port":   fmt.Sprintf("%d", ApacheExporterPort),
	}

	out.Spec.ImagePullSecrets = o.Spec.ImagePullSecrets
	if len(o.Spec.ServiceAccountName) > 0 {
		out.Spec.ServiceAccountName = o.Spec.ServiceAccountName
	}

	out.Spec.Containers = []corev1.Container{
		o.webContainer(),
		o.exporterContainer(),
	}

	out.Spec.Volumes = []corev1.Volume{o.configVolume()}

	if len(o.Spec.NodeSelector) > 0 {
		out.Spec.NodeSelector = o.Spec.NodeSelector
	}

	if len(o.Spec.Tolerations) > 0 {
		out.Spec.Tolerations = o.Spec.Tolerations
	}

	return out
}
