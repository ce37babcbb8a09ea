// SPDX-FileCopyrightText: 2023 The ipv6watch authors
//
// SPDX-License-Identifier: MIT

package census

import (
	"github.com/ipv6watch/ipv6watch/countrynames"
	"github.com/ipv6watch/ipv6watch/types"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("country aggregation", func() {

	It("creates categories lazily and extends them on repeat registration", func() {
		country := NewCountryData("xx")
		country.Register(readyEntity("one", types.Present))
		Expect(country.Categories).To(HaveLen(1))
		Expect(country.Categories).To(HaveKey("tests"))

		country.Register(readyEntity("two", types.Absent))
		Expect(country.Categories).To(HaveLen(1))
		Expect(country.Categories["tests"].TotalCount()).To(Equal(2))
	})

	It("resolves the sentinel code to its fixed name", func() {
		Expect(NewCountryData("xx").CountryName()).To(Equal("Validation Test"))
	})

	It("resolves real country codes to their names", func() {
		Expect(NewCountryData("de").CountryName()).To(Equal("Germany"))
	})

	It("fails on unrecognized country codes", func() {
		Expect(NewCountryData("zz").CountryName()).
			Error().To(MatchError(countrynames.ErrUnknownCountry))
	})

})
