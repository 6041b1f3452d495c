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
	"strings"
)

// DBCharset is the charset WordPress tables get created with
const DBCharset = "utf8mb4"

// SecretFields are the names of the generated WordPress keys and salts, in
// the order they appear in wp-config.php
var SecretFields = []string{
	"AUTH_KEY",
	"SECURE_AUTH_KEY",
	"LOGGED_IN_KEY",
	"NONCE_KEY",
	"AUTH_SALT",
	"SECURE_AUTH_SALT",
	"LOGGED_IN_SALT",
	"NONCE_SALT",
}

// DefaultAdminPasswordKey is the site secret key holding the generated
// password of the initial administrator account
const DefaultAdminPasswordKey = "DEFAULT_ADMIN_PASSWORD"

// DatabaseCreds is the effective database connection info for a site
type DatabaseCreds struct {
	Host     string
	Name     string
	User     string
	Password string
}

// Complete returns true if every connection field is set
func (c DatabaseCreds) Complete() bool {
	return c.Host != "" && c.Name != "" && c.User != "" && c.Password != ""
}

// DSN returns the go-sql-driver data source name for probing the database
func (c DatabaseCreds) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?timeout=5s", c.User, c.Password, c.Host, c.Name)
}

const wpConfigHeader = `<?php
# This file is managed by the wordpress-site-operator. Do not make local changes.
if (strpos($_SERVER['HTTP_X_FORWARDED_PROTO'], 'https') !== false) {
    $_SERVER['HTTPS']='on';
}
$table_prefix = 'wp_';
$_w_p_http_protocol = 'http://';
if (!empty($_SERVER['HTTPS']) && 'off' != $_SERVER['HTTPS']) {
    $_w_p_http_protocol = 'https://';
}
define( 'WP_PLUGIN_URL', $_w_p_http_protocol . $_SERVER['HTTP_HOST'] . '/wp-content/plugins' );
define( 'WP_CONTENT_URL', $_w_p_http_protocol . $_SERVER['HTTP_HOST'] . '/wp-content' );
define( 'WP_SITEURL', $_w_p_http_protocol . $_SERVER['HTTP_HOST'] );
define( 'WP_URL', $_w_p_http_protocol . $_SERVER['HTTP_HOST'] );
define( 'WP_HOME', $_w_p_http_protocol . $_SERVER['HTTP_HOST'] );`

const wpConfigFooter = `if ( ! defined( 'ABSPATH' ) ) {
    define( 'ABSPATH', __DIR__ . '/' );
}

/** Sets up WordPress vars and included files. */
require_once ABSPATH . 'wp-settings.php';
`

// phpQuote escapes a value for use inside a single quoted PHP string
func phpQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return s
}

func phpDefine(name, value string) string {
	return fmt.Sprintf("define( '%s', '%s' );", name, phpQuote(value))
}

// GenerateWPConfig renders the wp-config.php for a site from the effective
// database credentials and the generated keys and salts. Secret values must
// be present for every field in SecretFields; the site must never come up
// without its keys in place.
func GenerateWPConfig(db DatabaseCreds, secrets map[string][]byte) (string, error) {
	wpConfig := []string{wpConfigHeader}

	wpConfig = append(wpConfig,
		phpDefine("DB_HOST", db.Host),
		phpDefine("DB_NAME", db.Name),
		phpDefine("DB_USER", db.User),
		phpDefine("DB_PASSWORD", db.Password),
		fmt.Sprintf("define( 'DB_CHARSET',  '%s' );", DBCharset),
	)

	for _, field := range SecretFields {
		value := secrets[field]
		if len(value) == 0 {
			return "", fmt.Errorf("%s value is empty", field)
		}
		wpConfig = append(wpConfig, phpDefine(field, string(value)))
	}

	// The site is immutable from the admin panel: no plugin or theme
	// installs, no automatic updates. All changes go through the declared
	// spec.
	wpConfig = append(wpConfig,
		"define( 'DISALLOW_FILE_MODS', true );",
		"define( 'AUTOMATIC_UPDATER_DISABLED', true );",
		"define( 'WP_CACHE', true );",
		wpConfigFooter,
	)

	return strings.Join(wpConfig, "\n"), nil
}
