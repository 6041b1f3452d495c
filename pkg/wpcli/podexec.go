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

package wpcli

import (
	"bytes"
	"context"
	"errors"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/kubernetes/scheme"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/remotecommand"
	utilexec "k8s.io/client-go/util/exec"
)

// PodExecutor runs commands through the pod exec subresource
type PodExecutor struct {
	config *rest.Config
	client kubernetes.Interface
}

// NewPodExecutor returns an Executor backed by the exec subresource of the
// given cluster
func NewPodExecutor(config *rest.Config) (*PodExecutor, error) {
	client, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, err
	}

	return &PodExecutor{config: config, client: client}, nil
}

var _ Executor = &PodExecutor{}

// Exec runs cmd inside the target container over SPDY. The remote exit code
// is reported in the result; only transport failures are errors.
func (e *PodExecutor) Exec(ctx context.Context, target Target, cmd []string) (ExecResult, error) {
	req := e.client.CoreV1().RESTClient().Post().
		Resource("pods").
		Namespace(target.Namespace).
		Name(target.Pod).
		SubResource("exec").
		VersionedParams(&corev1.PodExecOptions{
			Container: target.Container,
			Command:   cmd,
			Stdout:    true,
			Stderr:    true,
		}, scheme.ParameterCodec)

	executor, err := remotecommand.NewSPDYExecutor(e.config, "POST", req.URL())
	if err != nil {
		return ExecResult{}, err
	}

	var stdout, stderr bytes.Buffer

	// Stream has no context support, so the wait gets cut short here when
	// the caller's deadline passes. The remote process is left to finish on
	// its own.
	done := make(chan error, 1)
	go func() {
		done <- executor.Stream(remotecommand.StreamOptions{
			Stdout: &stdout,
			Stderr: &stderr,
		})
	}()

	select {
	case <-ctx.Done():
		return ExecResult{}, ctx.Err()
	case err = <-done:
	}

	result := ExecResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		var exitErr utilexec.CodeExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.Code
			return result, nil
		}
		return ExecResult{}, err
	}

	return result, nil
}
