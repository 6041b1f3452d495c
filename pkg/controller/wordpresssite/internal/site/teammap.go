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
	"fmt"
	"strings"
)

// EncodeTeamMap converts a launchpad team map of the form
// "<team>=<role>,<team2>=<role2>" into the PHP-serialized structure the
// wordpress-teams-integration plugin stores in its openid_teams_trust_list
// option.
//
// The plugin reads an array of stdClass objects with id, team, role and
// server fields, one-indexed, serialized by PHP's serialize(). We produce
// the exact byte layout here since there is no PHP runtime to lean on.
func EncodeTeamMap(teamMap string) (string, error) {
	var b strings.Builder

	mappings := strings.Split(teamMap, ",")

	for i, mapping := range mappings {
		parts := strings.Split(mapping, "=")
		if len(parts) != 2 {
			return "", fmt.Errorf("malformed team map entry %q, want <launchpad team>=<wordpress role>", mapping)
		}

		team, role := parts[0], parts[1]

		id := i + 1
		fmt.Fprintf(&b, "i:%d;O:8:\"stdClass\":4:{", id)
		fmt.Fprintf(&b, "s:2:\"id\";i:%d;", id)
		fmt.Fprintf(&b, "s:4:\"team\";s:%d:\"%s\";", len(team), team)
		fmt.Fprintf(&b, "s:4:\"role\";s:%d:\"%s\";", len(role), role)
		b.WriteString("s:6:\"server\";s:1:\"0\";}")
	}

	return fmt.Sprintf("a:%d:{%s}", len(mappings), b.String()), nil
}
