// SPDX-FileCopyrightText: 2023 The ipv6watch authors
//
// SPDX-License-Identifier: MIT

package census

import (
	"context"
	"sync"

	"github.com/ipv6watch/ipv6watch/metrics"
	"github.com/ipv6watch/ipv6watch/types"
)

// Entity is a named organization whose IPv6 readiness is being assessed. It
// exclusively owns its main host and any additional hosts; no Host is ever
// shared between entities. IPv6Ready stays unknown until all owned hosts
// have been resolved, and is computed exactly once.
type Entity struct {
	Country         string         `json:"-"`
	Category        string         `json:"-"`
	Name            string         `json:"name"`
	MainHost        *Host          `json:"main_host"`
	AdditionalHosts []*Host        `json:"additional_hosts"`
	IPv6Ready       types.Presence `json:"-"`
}

// newEntity constructs an Entity from a validated catalog record. The
// entity name defaults to the main host's name when absent.
func newEntity(rec EntityRecord) *Entity {
	name := rec.Name
	if name == "" {
		name = rec.MainHost
	}
	additional := make([]*Host, 0, len(rec.AdditionalHosts))
	for _, host := range rec.AdditionalHosts {
		additional = append(additional, NewHost(host))
	}
	return &Entity{
		Country:         rec.Country,
		Category:        rec.Category,
		Name:            name,
		MainHost:        NewHost(rec.MainHost),
		AdditionalHosts: additional,
	}
}

// Resolve resolves all of this entity's hosts and then derives its single
// readiness verdict. The main host resolves strictly first, as it
// establishes whether the organization's canonical name is reachable at
// all; all additional hosts then resolve concurrently, joined before the
// verdict is computed. The order of AdditionalHosts is preserved as
// registered, regardless of completion order.
//
// Readiness is the three-valued conjunction over the main host's and every
// additional host's IPv6 presence: an entity without additional hosts is
// ready iff its main host is (the empty conjunction holds). Should a host
// still be unknown here, because the surrounding batch was aborted,
// readiness stays indeterminate rather than claiming "not ready".
func (e *Entity) Resolve(ctx context.Context, q Querier, sink metrics.Sink) {
	e.MainHost.Resolve(ctx, q, sink)

	var wg sync.WaitGroup
	for _, host := range e.AdditionalHosts {
		wg.Add(1)
		go func(h *Host) {
			defer wg.Done()
			h.Resolve(ctx, q, sink)
		}(host)
	}
	wg.Wait()

	ready := e.MainHost.HasIPv6
	for _, host := range e.AdditionalHosts {
		ready = ready.And(host.HasIPv6)
	}
	e.IPv6Ready = ready
}
