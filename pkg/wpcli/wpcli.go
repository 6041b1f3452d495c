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

// Package wpcli runs wp-cli commands inside the WordPress container of a
// site's web pod and parses their results.
package wpcli

import (
	"context"
	"fmt"
	"strings"
)

// AddonKind is the kind of a WordPress addon
type AddonKind string

const (
	// Theme addon kind
	Theme AddonKind = "theme"
	// Plugin addon kind
	Plugin AddonKind = "plugin"
)

// OptionFormat is the serialization format of a WordPress option value
type OptionFormat string

const (
	// Plaintext option format
	Plaintext OptionFormat = "plaintext"
	// JSON option format
	JSON OptionFormat = "json"
)

// AddonStatus is one entry of `wp theme list` / `wp plugin list`
type AddonStatus struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Update  string `json:"update"`
	Version string `json:"version"`
}

// InstallOptions are the settings used for `wp core install`
type InstallOptions struct {
	URL           string
	Title         string
	AdminUser     string
	AdminEmail    string
	AdminPassword string
}

// Target identifies the pod and container commands run in
type Target struct {
	Namespace string
	Pod       string
	Container string
}

// ExecResult is the raw outcome of a command run inside the container
type ExecResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Executor runs a command inside a container and returns its outcome. A
// non-zero exit code is not an error at this level.
type Executor interface {
	Exec(ctx context.Context, target Target, cmd []string) (ExecResult, error)
}

// ExecError is returned when a wp-cli command exits non-zero
type ExecError struct {
	Cmd      []string
	ExitCode int
	Output   string
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("command %q failed with exit code %d", strings.Join(e.Cmd, " "), e.ExitCode)
}

// Interface is the wp-cli command surface used by the convergence loops
type Interface interface {
	IsInstalled(ctx context.Context) (bool, error)
	CoreInstall(ctx context.Context, opts InstallOptions) error
	ListAddons(ctx context.Context, kind AddonKind) ([]AddonStatus, error)
	InstallAddon(ctx context.Context, kind AddonKind, name string) error
	UninstallAddon(ctx context.Context, kind AddonKind, name string) error
	ActivatePlugin(ctx context.Context, name string) error
	DeactivatePlugin(ctx context.Context, name string) error
	UpdateOption(ctx context.Context, name, value string, format OptionFormat) error
	DeleteOption(ctx context.Context, name string) error
}
