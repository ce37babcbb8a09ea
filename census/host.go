// SPDX-FileCopyrightText: 2023 The ipv6watch authors
//
// SPDX-License-Identifier: MIT

package census

import (
	"context"
	"errors"
	"strings"

	"github.com/ipv6watch/ipv6watch/metrics"
	"github.com/ipv6watch/ipv6watch/types"

	"github.com/miekg/dns"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("component", "census")

// Querier issues a single DNS query of the given record type for the given
// name, returning the resolved addresses in textual format. One shared
// Querier instance serves all lookups of a run; [dnsworker.DnsPool]
// implements it.
//
// [dnsworker.DnsPool]: github.com/ipv6watch/ipv6watch/dnsworker
type Querier interface {
	Query(ctx context.Context, name string, rtype uint16) ([]string, error)
}

// mappedPrefix marks IPv4-mapped IPv6 addresses in their textual form. An
// AAAA record carrying such an address proves only IPv4 connectivity
// tunneled through an IPv6-capable resolver, not genuine IPv6 reachability.
const mappedPrefix = "::ffff:"

// Host is a single DNS name whose A and AAAA record presence is checked.
// Both flags stay unknown until the Host's one and only Resolve call
// completes; they are never touched afterwards.
type Host struct {
	Name    string         `json:"name"`
	HasIPv4 types.Presence `json:"has_ipv4_address"`
	HasIPv6 types.Presence `json:"has_ipv6_address"`
}

// NewHost returns a yet unresolved Host for the specified DNS name.
func NewHost(name string) *Host {
	return &Host{Name: name}
}

// Resolve queries the A and then the AAAA record for this host's name,
// turning both presence flags from unknown into a definite verdict and
// feeding the outcome counters of the specified sink. Lookup failures are
// fully absorbed here: they downgrade into a negative flag plus a logged
// warning, and never propagate to the caller. A single attempt is made per
// record type.
//
// Run abortion is not a lookup failure: when the context gets cancelled or
// runs out, Resolve returns immediately, leaving the not yet resolved flags
// unknown and the sink counters untouched.
//
// The two queries are independent: the A outcome never affects the AAAA
// step. For AAAA, addresses textually prefixed "::ffff:" are discarded
// before judging IPv6 presence.
func (h *Host) Resolve(ctx context.Context, q Querier, sink metrics.Sink) {
	if _, err := q.Query(ctx, h.Name, dns.TypeA); err != nil {
		if aborted(err) {
			return
		}
		log.WithField("host", h.Name).Warnf("IPv4 DNS record not found either: %v", err)
		sink.IPv4Failure()
		h.HasIPv4 = types.Absent
	} else {
		sink.IPv4Success()
		h.HasIPv4 = types.Present
	}

	addrs, err := q.Query(ctx, h.Name, dns.TypeAAAA)
	if err != nil {
		if aborted(err) {
			return
		}
		sink.IPv6Failure()
		h.HasIPv6 = types.Absent
		return
	}
	log.WithField("host", h.Name).Debugf("resolved to %v", addrs)
	sink.IPv6Success()
	genuine := false
	for _, addr := range addrs {
		if !strings.HasPrefix(addr, mappedPrefix) {
			genuine = true
			break
		}
	}
	h.HasIPv6 = types.FromBool(genuine)
}

// aborted tells run abortion apart from an actual lookup failure.
func aborted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
