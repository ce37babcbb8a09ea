// SPDX-FileCopyrightText: 2023 The ipv6watch authors
//
// SPDX-License-Identifier: MIT

package config_test

import (
	"os"
	"path/filepath"
	"time"

	"github.com/ipv6watch/ipv6watch/config"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	. "github.com/thediveo/success"
)

// writeConfig drops the specified YAML into a fresh temporary config file.
func writeConfig(yaml string) string {
	GinkgoHelper()
	path := filepath.Join(GinkgoT().TempDir(), "ipv6watch.yaml")
	Expect(os.WriteFile(path, []byte(yaml), 0644)).To(Succeed())
	return path
}

var _ = Describe("run configuration", func() {

	It("returns defaults without a config file", func() {
		cfg := Successful(config.Load(""))
		Expect(cfg.Resolver).To(Equal("9.9.9.9:53"))
		Expect(cfg.Net).To(Equal("udp"))
		Expect(cfg.Workers).To(Equal(16))
		Expect(cfg.Timeout.Duration()).To(Equal(5 * time.Second))
		Expect(cfg.LogLevel).To(Equal("info"))
	})

	It("loads settings and fills in the gaps", func() {
		cfg := Successful(config.Load(writeConfig(`
resolver: "127.0.0.53:53"
net: tcp
timeout: 250ms
history_path: /var/lib/ipv6watch/history.db
`)))
		Expect(cfg.Resolver).To(Equal("127.0.0.53:53"))
		Expect(cfg.Net).To(Equal("tcp"))
		Expect(cfg.Timeout.Duration()).To(Equal(250 * time.Millisecond))
		Expect(cfg.HistoryPath).To(Equal("/var/lib/ipv6watch/history.db"))
		// absent values come from the defaults.
		Expect(cfg.Workers).To(Equal(16))
		Expect(cfg.LogLevel).To(Equal("info"))
	})

	It("rejects unworkable settings", func() {
		Expect(config.Load(writeConfig(`net: carrier-pigeon`))).Error().To(
			MatchError(ContainSubstring("net must be")))
		Expect(config.Load(writeConfig(`workers: -1`))).Error().To(
			MatchError(ContainSubstring("workers must be")))
		Expect(config.Load(writeConfig(`timeout: soonish`))).Error().To(
			MatchError(ContainSubstring("invalid duration")))
	})

	It("fails on unreadable config files", func() {
		Expect(config.Load(filepath.Join(GinkgoT().TempDir(), "missing.yaml"))).
			Error().To(HaveOccurred())
	})

})
