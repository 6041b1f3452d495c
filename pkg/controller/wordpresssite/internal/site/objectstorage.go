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
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// objectStorageKeys are the settings the openstack-objectstorage-k8s plugin
// requires. All of them must be present in the storage configuration.
var objectStorageKeys = []string{
	"auth-url",
	"bucket",
	"password",
	"object-prefix",
	"region",
	"tenant",
	"domain",
	"swift-url",
	"username",
	"copy-to-swift",
	"serve-from-swift",
	"remove-local-file",
}

// ObjectStorageConfig is the Swift object storage configuration for a site,
// parsed from the YAML document in the referenced secret
type ObjectStorageConfig struct {
	AuthURL         string `yaml:"auth-url" json:"auth-url"`
	Bucket          string `yaml:"bucket" json:"bucket"`
	Password        string `yaml:"password" json:"password"`
	ObjectPrefix    string `yaml:"object-prefix" json:"object-prefix"`
	Region          string `yaml:"region" json:"region"`
	Tenant          string `yaml:"tenant" json:"tenant"`
	Domain          string `yaml:"domain" json:"domain"`
	SwiftURL        string `yaml:"swift-url" json:"swift-url"`
	Username        string `yaml:"username" json:"username"`
	CopyToSwift     string `yaml:"copy-to-swift" json:"copy-to-swift"`
	ServeFromSwift  string `yaml:"serve-from-swift" json:"serve-from-swift"`
	RemoveLocalFile string `yaml:"remove-local-file" json:"remove-local-file"`
}

// ParseObjectStorageConfig parses and validates a YAML object storage
// configuration. A missing key is a configuration error the user has to fix,
// reported as a Blocked status.
func ParseObjectStorageConfig(data []byte) (*ObjectStorageConfig, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, Blockedf("invalid object storage configuration: %s", err)
	}

	for _, key := range objectStorageKeys {
		if _, ok := raw[key]; !ok {
			return nil, Blockedf("missing %q in object storage configuration", key)
		}
	}

	config := &ObjectStorageConfig{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, Blockedf("invalid object storage configuration: %s", err)
	}

	return config, nil
}

// OptionValue renders the configuration as the JSON document stored in the
// object_storage WordPress option
func (c *ObjectStorageConfig) OptionValue() (string, error) {
	value, err := json.Marshal(c)
	if err != nil {
		return "", err
	}

	return string(value), nil
}

// UploadsURL is the Swift URL uploaded media is served from when
// serve-from-swift is enabled
func (c *ObjectStorageConfig) UploadsURL() string {
	parts := []string{strings.TrimRight(c.SwiftURL, "/")}
	if c.Bucket != "" {
		parts = append(parts, strings.Trim(c.Bucket, "/"))
	}
	if c.ObjectPrefix != "" {
		parts = append(parts, strings.Trim(c.ObjectPrefix, "/"))
	}

	return strings.Join(parts, "/")
}

// ApacheProxyConf renders the apache snippet that reverse proxies the
// wp-content/uploads tree to Swift
func (c *ObjectStorageConfig) ApacheProxyConf() string {
	url := c.UploadsURL()

	return fmt.Sprintf(`SSLProxyEngine on
ProxyPass /wp-content/uploads/ %[1]s
ProxyPassReverse /wp-content/uploads/ %[1]s
Timeout 300
`, url)
}
