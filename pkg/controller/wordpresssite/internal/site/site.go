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

// Package site drives a running WordPress installation towards the state
// declared in a WordpressSite spec. Everything in here acts through wp-cli
// inside the site's web pod; the Kubernetes objects of a site are handled
// by the object syncers.
package site

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-logr/logr"

	// mysql driver, used to probe database connectivity before install
	_ "github.com/go-sql-driver/mysql"

	logf "sigs.k8s.io/controller-runtime/pkg/log"

	wordpressv1alpha1 "github.com/bitworks/wordpress-site-operator/pkg/apis/wordpress/v1alpha1"
	"github.com/bitworks/wordpress-site-operator/pkg/internal/wordpresssite"
	"github.com/bitworks/wordpress-site-operator/pkg/wpcli"
)

const (
	defaultDBProbeAttempts = 3
	defaultDBProbeInterval = time.Second
)

// DBProber checks that a database accepts connections
type DBProber func(ctx context.Context, dsn string) error

// ProbeMySQL connects to a MySQL server and pings it
func ProbeMySQL(ctx context.Context, dsn string) error {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	return db.PingContext(ctx)
}

// Input carries the resolved external state a convergence pass works
// against: effective database credentials and the secret material referenced
// by the site spec, already read from their secrets by the controller.
type Input struct {
	Creds wordpresssite.DatabaseCreds

	// Secrets is the data of the site secret: generated keys and salts
	// plus the default administrator password
	Secrets map[string][]byte

	// AdminPassword is the explicitly configured administrator password.
	// When empty the generated default from Secrets is used.
	AdminPassword string

	AkismetKey    string
	TeamMap       string
	ObjectStorage *ObjectStorageConfig
}

// Converger reconciles the in-database state of a WordPress installation
type Converger struct {
	CLI   wpcli.Interface
	Probe DBProber
	Log   logr.Logger

	// Notify publishes transient phase changes during long operations
	Notify func(phase wordpressv1alpha1.SitePhase, message string)

	DBProbeAttempts int
	DBProbeInterval time.Duration
}

func (c *Converger) log() logr.Logger {
	if c.Log == nil {
		return logf.Log
	}

	return c.Log
}

func (c *Converger) notify(phase wordpressv1alpha1.SitePhase, message string) {
	if c.Notify != nil {
		c.Notify(phase, message)
	}
}

// Converge runs a full convergence pass: core installation first, then
// themes, plugins and the managed plugin integrations. The first failure
// aborts the pass; a StatusError describes the phase the site should report.
func (c *Converger) Converge(ctx context.Context, wp *wordpresssite.WordpressSite, in Input) error {
	if err := c.convergeCore(ctx, wp, in); err != nil {
		return err
	}
	if err := c.convergeAddons(ctx, wpcli.Theme, wp.Spec.Themes); err != nil {
		return err
	}
	if err := c.convergeAddons(ctx, wpcli.Plugin, wp.Spec.Plugins); err != nil {
		return err
	}

	return c.convergeIntegrations(ctx, in)
}

func (c *Converger) convergeCore(ctx context.Context, wp *wordpresssite.WordpressSite, in Input) error {
	if !in.Creds.Complete() {
		return Waitingf("waiting for database credentials")
	}
	for _, field := range wordpresssite.SecretFields {
		if len(in.Secrets[field]) == 0 {
			return Waitingf("waiting for the site secret")
		}
	}

	if err := c.probeDatabase(ctx, in.Creds); err != nil {
		return err
	}

	installed, err := c.CLI.IsInstalled(ctx)
	if err != nil {
		return fmt.Errorf("failed to check the WordPress installation: %w", err)
	}
	if installed {
		return nil
	}

	password := in.AdminPassword
	if password == "" {
		password = string(in.Secrets[wordpresssite.DefaultAdminPasswordKey])
	}
	if password == "" {
		return Waitingf("waiting for the initial administrator password")
	}

	c.notify(wordpressv1alpha1.SiteMaintenance, "initializing the WordPress database")
	c.log().Info("installing WordPress", "title", wp.SiteTitle())

	// The canonical URL is derived from the request host in wp-config.php,
	// so the install-time URL is never served to visitors
	err = c.CLI.CoreInstall(ctx, wpcli.InstallOptions{
		URL:           "localhost",
		Title:         wp.SiteTitle(),
		AdminUser:     wp.Spec.InitialSettings.AdminUser,
		AdminEmail:    wp.Spec.InitialSettings.AdminEmail,
		AdminPassword: password,
	})
	if err != nil {
		return fmt.Errorf("wordpress installation failed: %w", err)
	}

	return nil
}

// probeDatabase verifies the database accepts connections before anything
// touches it. Freshly provisioned databases take a moment to come up, so the
// probe retries briefly before declaring the site blocked.
func (c *Converger) probeDatabase(ctx context.Context, creds wordpresssite.DatabaseCreds) error {
	attempts := c.DBProbeAttempts
	if attempts <= 0 {
		attempts = defaultDBProbeAttempts
	}
	interval := c.DBProbeInterval
	if interval <= 0 {
		interval = defaultDBProbeInterval
	}
	probe := c.Probe
	if probe == nil {
		probe = ProbeMySQL
	}

	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(interval):
			}
		}
		if err = probe(ctx, creds.DSN()); err == nil {
			return nil
		}
	}

	return Blockedf("failed to connect to the database: %s", err)
}

func (c *Converger) convergeAddons(ctx context.Context, kind wpcli.AddonKind, extra []string) error {
	current, err := c.CLI.ListAddons(ctx, kind)
	if err != nil {
		return fmt.Errorf("failed to list installed %ss: %w", kind, err)
	}

	install, uninstall := addonDiff(desiredAddons(kind, extra), current)

	for _, source := range install {
		c.log().Info("installing addon", "kind", string(kind), "name", source)
		if err := c.CLI.InstallAddon(ctx, kind, source); err != nil {
			return Blockedf("failed to install %s %q", kind, source)
		}
	}
	for _, name := range uninstall {
		c.log().Info("uninstalling addon", "kind", string(kind), "name", name)
		if err := c.CLI.UninstallAddon(ctx, kind, name); err != nil {
			return Blockedf("failed to uninstall %s %q", kind, name)
		}
	}

	return nil
}
