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
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Team map encoding", func() {
	It("serializes a single mapping the way PHP would", func() {
		encoded, err := EncodeTeamMap("site-sysadmins=administrator")

		Expect(err).To(Succeed())
		Expect(encoded).To(Equal(
			`a:1:{i:1;O:8:"stdClass":4:{` +
				`s:2:"id";i:1;` +
				`s:4:"team";s:14:"site-sysadmins";` +
				`s:4:"role";s:13:"administrator";` +
				`s:6:"server";s:1:"0";}}`))
	})

	It("numbers multiple mappings from one", func() {
		encoded, err := EncodeTeamMap("site-sysadmins=administrator,site-editors=editor")

		Expect(err).To(Succeed())
		Expect(encoded).To(Equal(
			`a:2:{i:1;O:8:"stdClass":4:{` +
				`s:2:"id";i:1;` +
				`s:4:"team";s:14:"site-sysadmins";` +
				`s:4:"role";s:13:"administrator";` +
				`s:6:"server";s:1:"0";}` +
				`i:2;O:8:"stdClass":4:{` +
				`s:2:"id";i:2;` +
				`s:4:"team";s:12:"site-editors";` +
				`s:4:"role";s:6:"editor";` +
				`s:6:"server";s:1:"0";}}`))
	})

	It("rejects an entry without a role", func() {
		_, err := EncodeTeamMap("just-a-team")
		Expect(err).To(HaveOccurred())
	})

	It("rejects an entry with too many separators", func() {
		_, err := EncodeTeamMap("team=role=extra")
		Expect(err).To(HaveOccurred())
	})
})
