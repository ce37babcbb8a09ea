// SPDX-FileCopyrightText: 2023 The ipv6watch authors
//
// SPDX-License-Identifier: MIT

package census

import (
	"github.com/ipv6watch/ipv6watch/types"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// readyEntity returns a minimal entity with a predetermined readiness
// verdict, for aggregation tests that don't care about resolution.
func readyEntity(name string, ready types.Presence) *Entity {
	return &Entity{
		Country:         "xx",
		Category:        "tests",
		Name:            name,
		MainHost:        NewHost(name),
		AdditionalHosts: []*Host{},
		IPv6Ready:       ready,
	}
}

var _ = Describe("category aggregation", func() {

	It("counts ready entities and formats the ratio", func() {
		category := NewCategory("tests")
		category.Register(readyEntity("one", types.Present))
		category.Register(readyEntity("two", types.Present))
		category.Register(readyEntity("three", types.Absent))
		Expect(category.ReadyCount()).To(Equal(2))
		Expect(category.TotalCount()).To(Equal(3))
		Expect(category.ReadyPercentage()).To(Equal("67%"))
	})

	It("does not count unknown verdicts as ready", func() {
		category := NewCategory("tests")
		category.Register(readyEntity("pending", types.Unknown))
		category.Register(readyEntity("done", types.Present))
		Expect(category.ReadyCount()).To(Equal(1))
		Expect(category.ReadyPercentage()).To(Equal("50%"))
	})

	It("refuses the undefined ratio of an empty category", func() {
		category := NewCategory("void")
		Expect(category.ReadyPercentage()).Error().To(MatchError(ErrNoEntities))
	})

	It("preserves registration order", func() {
		category := NewCategory("tests")
		for _, name := range []string{"c", "a", "b"} {
			category.Register(readyEntity(name, types.Present))
		}
		names := []string{}
		for _, entity := range category.Entities {
			names = append(names, entity.Name)
		}
		Expect(names).To(Equal([]string{"c", "a", "b"}))
	})

})
