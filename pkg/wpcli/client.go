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
	"context"
	"encoding/json"
	"fmt"
	"time"
)

const (
	wordpressRoot = "/var/www/html"
	wordpressUser = "www-data"

	commandTimeout = 60 * time.Second
	// addon installs download from wordpress.org and can be slow
	addonTimeout = 10 * time.Minute
)

// Client implements Interface by running wp-cli inside the site's web pod
type Client struct {
	exec   Executor
	target Target
}

// New returns a wp-cli client bound to the given pod and container
func New(exec Executor, target Target) *Client {
	return &Client{exec: exec, target: target}
}

var _ Interface = &Client{}

// command builds the full command line for a wp-cli invocation. Commands run
// as the wordpress user and are pinned to the WordPress root, since pod exec
// offers no working directory or user selection.
func command(args ...string) []string {
	cmd := []string{"runuser", "-u", wordpressUser, "--", "wp"}
	cmd = append(cmd, args...)
	cmd = append(cmd, "--path="+wordpressRoot)

	return cmd
}

func (c *Client) run(ctx context.Context, timeout time.Duration, args ...string) (ExecResult, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := command(args...)

	return c.exec.Exec(ctx, c.target, cmd)
}

// runChecked runs a wp-cli command and converts a non-zero exit into an
// ExecError carrying the combined output
func (c *Client) runChecked(ctx context.Context, timeout time.Duration, args ...string) error {
	result, err := c.run(ctx, timeout, args...)
	if err != nil {
		return err
	}
	if result.ExitCode != 0 {
		return &ExecError{
			Cmd:      command(args...),
			ExitCode: result.ExitCode,
			Output:   result.Stdout + result.Stderr,
		}
	}

	return nil
}

// IsInstalled checks whether the WordPress tables exist in the connected
// database
func (c *Client) IsInstalled(ctx context.Context) (bool, error) {
	result, err := c.run(ctx, commandTimeout, "core", "is-installed")
	if err != nil {
		return false, err
	}

	return result.ExitCode == 0, nil
}

// CoreInstall creates the WordPress tables and the initial administrator
// account
func (c *Client) CoreInstall(ctx context.Context, opts InstallOptions) error {
	return c.runChecked(ctx, commandTimeout, "core", "install",
		"--url="+opts.URL,
		"--title="+opts.Title,
		"--admin_user="+opts.AdminUser,
		"--admin_email="+opts.AdminEmail,
		"--admin_password="+opts.AdminPassword,
	)
}

// ListAddons returns the status of the currently installed themes or plugins
func (c *Client) ListAddons(ctx context.Context, kind AddonKind) ([]AddonStatus, error) {
	result, err := c.run(ctx, addonTimeout, string(kind), "list", "--format=json")
	if err != nil {
		return nil, err
	}
	if result.ExitCode != 0 {
		return nil, fmt.Errorf("wp %s list command failed with exit code %d", kind, result.ExitCode)
	}

	var addons []AddonStatus
	if err := json.Unmarshal([]byte(result.Stdout), &addons); err != nil {
		return nil, fmt.Errorf("wp %s list command failed, stdout is not json: %w", kind, err)
	}

	return addons, nil
}

// InstallAddon installs a theme or plugin
func (c *Client) InstallAddon(ctx context.Context, kind AddonKind, name string) error {
	if kind == Theme {
		// --force overwrites any installed version of the theme without
		// prompting for confirmation
		return c.runChecked(ctx, addonTimeout, "theme", "install", name, "--force")
	}

	return c.runChecked(ctx, addonTimeout, "plugin", "install", name)
}

// UninstallAddon removes a theme or plugin
func (c *Client) UninstallAddon(ctx context.Context, kind AddonKind, name string) error {
	if kind == Theme {
		return c.runChecked(ctx, addonTimeout, "theme", "delete", name, "--force")
	}

	return c.runChecked(ctx, addonTimeout, "plugin", "uninstall", name, "--deactivate")
}

// ActivatePlugin activates an installed plugin
func (c *Client) ActivatePlugin(ctx context.Context, name string) error {
	return c.runChecked(ctx, commandTimeout, "plugin", "activate", name)
}

// DeactivatePlugin deactivates an installed plugin
func (c *Client) DeactivatePlugin(ctx context.Context, name string) error {
	return c.runChecked(ctx, commandTimeout, "plugin", "deactivate", name)
}

// UpdateOption creates or updates a WordPress option value
func (c *Client) UpdateOption(ctx context.Context, name, value string, format OptionFormat) error {
	return c.runChecked(ctx, commandTimeout, "option", "update", name, value, "--format="+string(format))
}

// DeleteOption deletes a WordPress option. Deleting a non-existent option
// only draws a warning from wp-cli, so deletes can run on every pass.
func (c *Client) DeleteOption(ctx context.Context, name string) error {
	return c.runChecked(ctx, commandTimeout, "option", "delete", name)
}
