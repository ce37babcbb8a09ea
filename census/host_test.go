// SPDX-FileCopyrightText: 2023 The ipv6watch authors
//
// SPDX-License-Identifier: MIT

package census

import (
	"context"
	"encoding/json"

	"github.com/ipv6watch/ipv6watch/metrics"
	"github.com/ipv6watch/ipv6watch/types"

	"github.com/miekg/dns"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("resolving hosts", func() {

	var sink *metrics.Recorder

	BeforeEach(func() {
		sink = &metrics.Recorder{}
	})

	It("judges a host answering only the A query as IPv4-only", func(ctx context.Context) {
		q := &fakeQuerier{answers: map[string]map[uint16][]string{
			"v4only.example.org": a4("192.0.2.10"),
		}}
		host := NewHost("v4only.example.org")
		host.Resolve(ctx, q, sink)
		Expect(host.HasIPv4).To(Equal(types.Present))
		Expect(host.HasIPv6).To(Equal(types.Absent))
		Expect(sink.IPv4Successes()).To(Equal(int64(1)))
		Expect(sink.IPv6Failures()).To(Equal(int64(1)))
	})

	It("does not count AAAA answers full of IPv4-mapped addresses as IPv6", func(ctx context.Context) {
		q := &fakeQuerier{answers: map[string]map[uint16][]string{
			"mapped.example.org": a46(
				[]string{"192.0.2.10"},
				[]string{"::ffff:192.0.2.10", "::ffff:192.0.2.11"}),
		}}
		host := NewHost("mapped.example.org")
		host.Resolve(ctx, q, sink)
		Expect(host.HasIPv6).To(Equal(types.Absent))
		// the AAAA lookup itself still succeeded.
		Expect(sink.IPv6Successes()).To(Equal(int64(1)))
		Expect(sink.IPv6Failures()).To(BeZero())
	})

	It("accepts a single genuine IPv6 address among mapped ones", func(ctx context.Context) {
		q := &fakeQuerier{answers: map[string]map[uint16][]string{
			"dual.example.org": a6("::ffff:192.0.2.10", "2001:db8::1"),
		}}
		host := NewHost("dual.example.org")
		host.Resolve(ctx, q, sink)
		Expect(host.HasIPv6).To(Equal(types.Present))
	})

	It("keeps a failed AAAA lookup from affecting the IPv4 verdict", func(ctx context.Context) {
		q := &fakeQuerier{answers: map[string]map[uint16][]string{
			"v4.example.org": a4("192.0.2.20"),
		}}
		host := NewHost("v4.example.org")
		host.Resolve(ctx, q, sink)
		Expect(host.HasIPv4).To(Equal(types.Present))
		Expect(host.HasIPv6).To(Equal(types.Absent))
	})

	It("absorbs total lookup failure into definite negative flags", func(ctx context.Context) {
		q := &fakeQuerier{}
		host := NewHost("void.example.org")
		host.Resolve(ctx, q, sink)
		Expect(host.HasIPv4).To(Equal(types.Absent))
		Expect(host.HasIPv6).To(Equal(types.Absent))
		Expect(sink.IPv4Failures()).To(Equal(int64(1)))
		Expect(sink.IPv6Failures()).To(Equal(int64(1)))
	})

	It("leaves both flags unknown when the run was already aborted", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		q := &fakeQuerier{answers: map[string]map[uint16][]string{
			"aborted.example.org": a46([]string{"192.0.2.40"}, []string{"2001:db8::3"}),
		}}
		host := NewHost("aborted.example.org")
		host.Resolve(ctx, q, sink)
		Expect(host.HasIPv4).To(Equal(types.Unknown))
		Expect(host.HasIPv6).To(Equal(types.Unknown))
		Expect(sink.IPv4Failures()).To(BeZero())
		Expect(sink.IPv6Failures()).To(BeZero())
	})

	It("keeps the IPv4 verdict when the run aborts before the AAAA lookup", func() {
		ctx, cancel := context.WithCancel(context.Background())
		q := querierFunc(func(ctx context.Context, name string, rtype uint16) ([]string, error) {
			if rtype == dns.TypeA {
				cancel()
				return []string{"192.0.2.50"}, nil
			}
			return nil, ctx.Err()
		})
		host := NewHost("halfway.example.org")
		host.Resolve(ctx, q, sink)
		Expect(host.HasIPv4).To(Equal(types.Present))
		Expect(host.HasIPv6).To(Equal(types.Unknown))
		Expect(sink.IPv4Successes()).To(Equal(int64(1)))
		Expect(sink.IPv6Failures()).To(BeZero())
	})

	It("serializes unresolved flags as null and resolved flags as booleans", func(ctx context.Context) {
		host := NewHost("pending.example.org")
		Expect(json.Marshal(host)).To(MatchJSON(
			`{"name":"pending.example.org","has_ipv4_address":null,"has_ipv6_address":null}`))

		q := &fakeQuerier{answers: map[string]map[uint16][]string{
			"pending.example.org": a46([]string{"192.0.2.1"}, []string{"2001:db8::2"}),
		}}
		host.Resolve(ctx, q, &metrics.Recorder{})
		Expect(json.Marshal(host)).To(MatchJSON(
			`{"name":"pending.example.org","has_ipv4_address":true,"has_ipv6_address":true}`))
	})

})
