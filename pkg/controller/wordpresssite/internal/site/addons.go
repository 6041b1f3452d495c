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
	"path"
	"sort"

	"github.com/bitworks/wordpress-site-operator/pkg/wpcli"
)

// Stock themes and plugins are installed at image build time and are never
// uninstalled by the convergence loop.
var (
	// DefaultThemes shipped with the WordPress image. Entries may carry a
	// slash-separated install source; the installed theme is named by the
	// last path segment.
	DefaultThemes = []string{
		"fruitful",
		"launchpad",
		"light-wordpress-theme",
		"mscom",
		"thematic",
		"twentyeleven",
		"twentynineteen",
		"twentytwenty",
		"twentytwentyone",
		"ubuntu-cloud-website",
		"ubuntu-community-wordpress-theme/ubuntu-community",
		"ubuntu-community/ubuntu-community",
		"ubuntu-fi",
		"ubuntu-light",
		"ubuntustudio-wp/ubuntustudio-wp",
		"xubuntu-website/xubuntu-eighteen",
		"xubuntu-website/xubuntu-fifteen",
		"xubuntu-website/xubuntu-fourteen",
		"xubuntu-website/xubuntu-thirteen",
	}

	// DefaultPlugins shipped with the WordPress image
	DefaultPlugins = []string{
		"404page",
		"akismet",
		"all-in-one-event-calendar",
		"powerpress",
		"coschedule-by-todaymade",
		"elementor",
		"essential-addons-for-elementor-lite",
		"favicon-by-realfavicongenerator",
		"feedwordpress",
		"fruitful-shortcodes",
		"genesis-columns-advanced",
		"hello",
		"line-break-shortcode",
		"wp-mastodon-share",
		"no-category-base-wpml",
		"openid",
		"wordpress-launchpad-integration",
		"wordpress-teams-integration",
		"openstack-objectstorage-k8s",
		"post-grid",
		"redirection",
		"relative-image-urls",
		"rel-publisher",
		"safe-svg",
		"show-current-template",
		"simple-301-redirects",
		"simple-custom-css",
		"so-widgets-bundle",
		"social-media-buttons-toolbar",
		"svg-support",
		"syntaxhighlighter",
		"wordpress-importer",
		"wp-markdown",
		"wp-polls",
		"wp-font-awesome",
		"wp-lightbox-2",
		"wp-statistics",
		"xubuntu-team-members",
		"wordpress-seo",
	}
)

func defaultAddons(kind wpcli.AddonKind) []string {
	if kind == wpcli.Theme {
		return DefaultThemes
	}

	return DefaultPlugins
}

// desiredAddons returns the addons a site should have installed, keyed by
// installed name (the last segment of the install source) with the install
// source as value. Keying by installed name keeps slash-sourced entries from
// being reinstalled on every pass.
func desiredAddons(kind wpcli.AddonKind, extra []string) map[string]string {
	desired := map[string]string{}
	for _, source := range defaultAddons(kind) {
		desired[path.Base(source)] = source
	}
	for _, source := range extra {
		if source == "" {
			continue
		}
		desired[path.Base(source)] = source
	}

	return desired
}

// addonDiff computes the install and uninstall work needed to make current
// match desired, in deterministic order
func addonDiff(desired map[string]string, current []wpcli.AddonStatus) (install, uninstall []string) {
	installed := map[string]bool{}
	for _, addon := range current {
		installed[addon.Name] = true
	}

	for name, source := range desired {
		if !installed[name] {
			install = append(install, source)
		}
	}
	for name := range installed {
		if _, ok := desired[name]; !ok {
			uninstall = append(uninstall, name)
		}
	}

	sort.Strings(install)
	sort.Strings(uninstall)

	return install, uninstall
}
