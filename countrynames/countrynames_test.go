// SPDX-FileCopyrightText: 2023 The ipv6watch authors
//
// SPDX-License-Identifier: MIT

package countrynames

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("country code lookup", func() {

	It("resolves alpha-2 codes regardless of case", func() {
		Expect(Name("de")).To(Equal("Germany"))
		Expect(Name("DE")).To(Equal("Germany"))
	})

	It("maps the reserved validation sentinel to its fixed name", func() {
		Expect(Name("xx")).To(Equal("Validation Test"))
		Expect(Name("XX")).To(Equal("Validation Test"))
	})

	It("fails on unrecognized codes", func() {
		Expect(Name("zz")).Error().To(MatchError(ErrUnknownCountry))
		Expect(Name("")).Error().To(MatchError(ErrUnknownCountry))
	})

})
