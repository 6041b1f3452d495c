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
	"errors"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

// fakeExecutor records commands and replays canned results
type fakeExecutor struct {
	lastTarget Target
	lastCmd    []string
	result     ExecResult
	err        error
}

func (f *fakeExecutor) Exec(ctx context.Context, target Target, cmd []string) (ExecResult, error) {
	f.lastTarget = target
	f.lastCmd = cmd

	return f.result, f.err
}

var _ = Describe("wp-cli client", func() {
	var (
		exec   *fakeExecutor
		target Target
		cli    *Client
	)

	BeforeEach(func() {
		exec = &fakeExecutor{}
		target = Target{Namespace: "default", Pod: "my-site-0", Container: "wordpress"}
		cli = New(exec, target)
	})

	It("runs commands as the wordpress user, pinned to the wordpress root", func() {
		_, err := cli.IsInstalled(context.TODO())

		Expect(err).To(Succeed())
		Expect(exec.lastTarget).To(Equal(target))
		Expect(exec.lastCmd).To(Equal([]string{
			"runuser", "-u", "www-data", "--",
			"wp", "core", "is-installed", "--path=/var/www/html",
		}))
	})

	Describe("IsInstalled", func() {
		It("maps a zero exit code to installed", func() {
			installed, err := cli.IsInstalled(context.TODO())
			Expect(err).To(Succeed())
			Expect(installed).To(BeTrue())
		})

		It("maps a non-zero exit code to not installed", func() {
			exec.result = ExecResult{ExitCode: 1}

			installed, err := cli.IsInstalled(context.TODO())
			Expect(err).To(Succeed())
			Expect(installed).To(BeFalse())
		})

		It("propagates transport errors", func() {
			exec.err = errors.New("pod went away")

			_, err := cli.IsInstalled(context.TODO())
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("CoreInstall", func() {
		It("passes the installation settings", func() {
			err := cli.CoreInstall(context.TODO(), InstallOptions{
				URL:           "localhost",
				Title:         "The blog.example.com Blog",
				AdminUser:     "admin",
				AdminEmail:    "admin@example.com",
				AdminPassword: "s3cret",
			})

			Expect(err).To(Succeed())
			Expect(exec.lastCmd).To(ContainElements(
				"core", "install",
				"--url=localhost",
				"--title=The blog.example.com Blog",
				"--admin_user=admin",
				"--admin_email=admin@example.com",
				"--admin_password=s3cret",
			))
		})

		It("returns an ExecError carrying the output on failure", func() {
			exec.result = ExecResult{ExitCode: 1, Stdout: "Error: ", Stderr: "table creation failed"}

			err := cli.CoreInstall(context.TODO(), InstallOptions{})

			var execErr *ExecError
			Expect(errors.As(err, &execErr)).To(BeTrue())
			Expect(execErr.ExitCode).To(Equal(1))
			Expect(execErr.Output).To(Equal("Error: table creation failed"))
		})
	})

	Describe("ListAddons", func() {
		It("parses the json listing", func() {
			exec.result = ExecResult{
				Stdout: `[{"name":"twentytwenty","status":"active","update":"none","version":"1.5"}]`,
			}

			addons, err := cli.ListAddons(context.TODO(), Theme)

			Expect(err).To(Succeed())
			Expect(addons).To(HaveLen(1))
			Expect(addons[0].Name).To(Equal("twentytwenty"))
			Expect(addons[0].Status).To(Equal("active"))
			Expect(exec.lastCmd).To(ContainElements("theme", "list", "--format=json"))
		})

		It("fails on a non-zero exit code", func() {
			exec.result = ExecResult{ExitCode: 1}

			_, err := cli.ListAddons(context.TODO(), Plugin)
			Expect(err).To(HaveOccurred())
		})

		It("fails when stdout is not json", func() {
			exec.result = ExecResult{Stdout: "PHP Warning: something"}

			_, err := cli.ListAddons(context.TODO(), Plugin)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("addon management", func() {
		It("force installs themes", func() {
			Expect(cli.InstallAddon(context.TODO(), Theme, "astra")).To(Succeed())
			Expect(exec.lastCmd).To(ContainElements("theme", "install", "astra", "--force"))
		})

		It("installs plugins without force", func() {
			Expect(cli.InstallAddon(context.TODO(), Plugin, "classic-editor")).To(Succeed())
			Expect(exec.lastCmd).To(ContainElements("plugin", "install", "classic-editor"))
			Expect(exec.lastCmd).NotTo(ContainElement("--force"))
		})

		It("force deletes themes", func() {
			Expect(cli.UninstallAddon(context.TODO(), Theme, "astra")).To(Succeed())
			Expect(exec.lastCmd).To(ContainElements("theme", "delete", "astra", "--force"))
		})

		It("deactivates plugins on uninstall", func() {
			Expect(cli.UninstallAddon(context.TODO(), Plugin, "classic-editor")).To(Succeed())
			Expect(exec.lastCmd).To(ContainElements("plugin", "uninstall", "classic-editor", "--deactivate"))
		})
	})

	Describe("options", func() {
		It("updates options in the requested format", func() {
			Expect(cli.UpdateOption(context.TODO(), "object_storage", `{"bucket":"b"}`, JSON)).To(Succeed())
			Expect(exec.lastCmd).To(ContainElements(
				"option", "update", "object_storage", `{"bucket":"b"}`, "--format=json",
			))
		})

		It("deletes options", func() {
			Expect(cli.DeleteOption(context.TODO(), "wordpress_api_key")).To(Succeed())
			Expect(exec.lastCmd).To(ContainElements("option", "delete", "wordpress_api_key"))
		})
	})
})
