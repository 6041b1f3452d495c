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

package site

import (
	"errors"
	"fmt"

	wordpressv1alpha1 "github.com/bitworks/wordpress-site-operator/pkg/apis/wordpress/v1alpha1"
)

// StatusError signals the early termination of a convergence pass. Early
// terminations are expected in the early life of a site (credentials not
// bound yet, pod still coming up) and translate to a status phase rather
// than a requeue with backoff.
type StatusError struct {
	Phase   wordpressv1alpha1.SitePhase
	Message string
}

func (e *StatusError) Error() string {
	return e.Message
}

// Blockedf returns a StatusError that puts the site in the Blocked phase
func Blockedf(format string, a ...interface{}) *StatusError {
	return &StatusError{Phase: wordpressv1alpha1.SiteBlocked, Message: fmt.Sprintf(format, a...)}
}

// Waitingf returns a StatusError that puts the site in the Waiting phase
func Waitingf(format string, a ...interface{}) *StatusError {
	return &StatusError{Phase: wordpressv1alpha1.SiteWaiting, Message: fmt.Sprintf(format, a...)}
}

// AsStatusError extracts a StatusError from err, if there is one
func AsStatusError(err error) (*StatusError, bool) {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr, true
	}

	return nil, false
}
