// SPDX-FileCopyrightText: 2023 The ipv6watch authors
//
// SPDX-License-Identifier: MIT

package types

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("tri-state presence", func() {

	It("stringifies", func() {
		Expect(Unknown.String()).To(Equal("unknown"))
		Expect(Absent.String()).To(Equal("absent"))
		Expect(Present.String()).To(Equal("present"))
		Expect(Presence(42).String()).To(Equal("Presence(42)"))
	})

	It("defaults to unknown", func() {
		var p Presence
		Expect(p).To(Equal(Unknown))
		Expect(p.Known()).To(BeFalse())
		Expect(Absent.Known()).To(BeTrue())
		Expect(Present.Known()).To(BeTrue())
	})

	DescribeTable("three-valued conjunction",
		func(a, b, expected Presence) {
			Expect(a.And(b)).To(Equal(expected))
			Expect(b.And(a)).To(Equal(expected))
		},
		Entry("present∧present", Present, Present, Present),
		Entry("present∧absent", Present, Absent, Absent),
		Entry("present∧unknown", Present, Unknown, Unknown),
		Entry("absent∧absent", Absent, Absent, Absent),
		Entry("absent dominates unknown", Absent, Unknown, Absent),
		Entry("unknown∧unknown", Unknown, Unknown, Unknown),
	)

	DescribeTable("marshalling as nullable boolean",
		func(p Presence, expected string) {
			data, err := json.Marshal(p)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(Equal(expected))

			var back Presence
			Expect(json.Unmarshal(data, &back)).To(Succeed())
			Expect(back).To(Equal(p))
		},
		Entry("unknown is null", Unknown, "null"),
		Entry("absent is false", Absent, "false"),
		Entry("present is true", Present, "true"),
	)

	It("rejects non-boolean JSON", func() {
		var p Presence
		Expect(json.Unmarshal([]byte(`"yes"`), &p)).NotTo(Succeed())
	})

})
