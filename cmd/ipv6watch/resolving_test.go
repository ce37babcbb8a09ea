// SPDX-FileCopyrightText: 2023 The ipv6watch authors
//
// SPDX-License-Identifier: MIT

package main

import (
	"os"
	"path/filepath"

	"github.com/ipv6watch/ipv6watch/census"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// writeCatalog drops the specified catalog into a fresh temporary file with
// the specified name.
func writeCatalog(name, contents string) string {
	GinkgoHelper()
	path := filepath.Join(GinkgoT().TempDir(), name)
	Expect(os.WriteFile(path, []byte(contents), 0644)).To(Succeed())
	return path
}

var _ = Describe("catalog loading", func() {

	It("loads JSON catalogs", func() {
		source := census.NewSource()
		Expect(loadCatalog(source, writeCatalog("catalog.json",
			`[{"country": "xx", "category": "tests", "main_host": "example.com"}]`))).
			To(Succeed())
		Expect(source.EntityCount()).To(Equal(1))
	})

	It("loads YAML catalogs", func() {
		source := census.NewSource()
		Expect(loadCatalog(source, writeCatalog("catalog.yaml", `
- country: xx
  category: tests
  main_host: example.com
  additional_hosts:
    - static.example.com
`))).To(Succeed())
		Expect(source.EntityCount()).To(Equal(1))
		entity := source.Countries["xx"].Categories["tests"].Entities[0]
		Expect(entity.AdditionalHosts).To(HaveLen(1))
	})

	It("reports missing and broken catalogs", func() {
		source := census.NewSource()
		Expect(loadCatalog(source, filepath.Join(GinkgoT().TempDir(), "nope.json"))).
			NotTo(Succeed())
		Expect(loadCatalog(source, writeCatalog("broken.json", `]`))).NotTo(Succeed())
		Expect(loadCatalog(source, writeCatalog("broken.yaml", `:`))).NotTo(Succeed())
	})

})
