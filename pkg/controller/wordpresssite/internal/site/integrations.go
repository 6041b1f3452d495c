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
	"context"
	"fmt"

	"github.com/bitworks/wordpress-site-operator/pkg/wpcli"
)

// pluginOption is a WordPress option managed alongside a plugin activation
type pluginOption struct {
	Name   string
	Value  string
	Format wpcli.OptionFormat
}

// convergeIntegrations drives the three managed plugins (akismet, openid and
// openstack object storage) to the state requested by the site spec
func (c *Converger) convergeIntegrations(ctx context.Context, in Input) error {
	if err := c.convergeAkismet(ctx, in.AkismetKey); err != nil {
		return err
	}
	if err := c.convergeOpenID(ctx, in.TeamMap); err != nil {
		return err
	}

	return c.convergeObjectStorage(ctx, in.ObjectStorage)
}

func (c *Converger) convergeAkismet(ctx context.Context, key string) error {
	if key == "" {
		err := c.deactivatePlugin(ctx, "akismet", []string{
			"akismet_strictness",
			"akismet_show_user_comments_approved",
			"wordpress_api_key",
		})
		if err != nil {
			return Blockedf("unable to configure akismet plugin: %s", err)
		}

		return nil
	}

	err := c.activatePlugin(ctx, "akismet", []pluginOption{
		{Name: "akismet_strictness", Value: "0", Format: wpcli.Plaintext},
		{Name: "akismet_show_user_comments_approved", Value: "0", Format: wpcli.Plaintext},
		{Name: "wordpress_api_key", Value: key, Format: wpcli.Plaintext},
	})
	if err != nil {
		return Blockedf("unable to configure akismet plugin: %s", err)
	}

	return nil
}

func (c *Converger) convergeOpenID(ctx context.Context, teamMap string) error {
	if teamMap == "" {
		err := c.deactivatePlugin(ctx, "openid", []string{
			"openid_required_for_registration",
			"openid_teams_trust_list",
		})
		if err != nil {
			return Blockedf("unable to configure openid plugin: %s", err)
		}

		return nil
	}

	trustList, err := EncodeTeamMap(teamMap)
	if err != nil {
		return Blockedf("unable to configure openid plugin: %s", err)
	}

	err = c.activatePlugin(ctx, "openid", []pluginOption{
		{Name: "openid_required_for_registration", Value: "1", Format: wpcli.Plaintext},
		{Name: "openid_teams_trust_list", Value: trustList, Format: wpcli.Plaintext},
	})
	if err != nil {
		return Blockedf("unable to configure openid plugin: %s", err)
	}

	return nil
}

// convergeObjectStorage manages the openstack-objectstorage-k8s plugin. The
// apache proxy that serves uploads from Swift is part of the pod template,
// not handled here.
func (c *Converger) convergeObjectStorage(ctx context.Context, config *ObjectStorageConfig) error {
	if config == nil {
		err := c.deactivatePlugin(ctx, "openstack-objectstorage-k8s", []string{"object_storage"})
		if err != nil {
			return Blockedf("unable to configure openstack-objectstorage-k8s plugin: %s", err)
		}

		return nil
	}

	value, err := config.OptionValue()
	if err != nil {
		return err
	}

	err = c.activatePlugin(ctx, "openstack-objectstorage-k8s", []pluginOption{
		{Name: "object_storage", Value: value, Format: wpcli.JSON},
	})
	if err != nil {
		return Blockedf("unable to configure openstack-objectstorage-k8s plugin: %s", err)
	}

	return nil
}

// pluginStatus looks a plugin up in the installed plugin list. An empty
// status means the plugin is not installed.
func (c *Converger) pluginStatus(ctx context.Context, name string) (string, error) {
	plugins, err := c.CLI.ListAddons(ctx, wpcli.Plugin)
	if err != nil {
		return "", fmt.Errorf("failed to list installed plugins: %w", err)
	}

	for _, plugin := range plugins {
		if plugin.Name == name {
			return plugin.Status, nil
		}
	}

	return "", nil
}

// activatePlugin activates an installed plugin, then writes its options.
// Activating an already active plugin is a no-op, but its options are still
// rewritten so option changes converge.
func (c *Converger) activatePlugin(ctx context.Context, name string, options []pluginOption) error {
	status, err := c.pluginStatus(ctx, name)
	if err != nil {
		return err
	}
	if status == "" {
		return fmt.Errorf("cannot activate a plugin that is not installed: %q", name)
	}

	if status != "active" {
		c.log().Info("activating plugin", "plugin", name)
		if err := c.CLI.ActivatePlugin(ctx, name); err != nil {
			return fmt.Errorf("failed to activate plugin %q: %w", name, err)
		}
	}

	for _, option := range options {
		if err := c.CLI.UpdateOption(ctx, option.Name, option.Value, option.Format); err != nil {
			return fmt.Errorf("failed to update option %q of plugin %q: %w", option.Name, name, err)
		}
	}

	return nil
}

// deactivatePlugin deactivates a plugin and deletes its options. An already
// inactive plugin is not deactivated again, but its options are still
// deleted so values left behind by an interrupted pass converge away.
func (c *Converger) deactivatePlugin(ctx context.Context, name string, options []string) error {
	status, err := c.pluginStatus(ctx, name)
	if err != nil {
		return err
	}
	if status == "" {
		return fmt.Errorf("cannot deactivate a plugin that is not installed: %q", name)
	}

	if status == "active" {
		c.log().Info("deactivating plugin", "plugin", name)
		if err := c.CLI.DeactivatePlugin(ctx, name); err != nil {
			return fmt.Errorf("failed to deactivate plugin %q: %w", name, err)
		}
	}

	for _, option := range options {
		if err := c.CLI.DeleteOption(ctx, option); err != nil {
			return fmt.Errorf("failed to delete option %q of plugin %q: %w", option, name, err)
		}
	}

	return nil
}
