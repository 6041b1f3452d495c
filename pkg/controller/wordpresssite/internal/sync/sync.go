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

// Package sync contains the syncers for the Kubernetes objects that make up
// a WordPress site deployment.
package sync

import (
	"k8s.io/apimachinery/pkg/labels"
)

var controllerLabels = labels.Set{
	"app.kubernetes.io/managed-by": "wordpress-site-operator.bitworks.dev",
}
