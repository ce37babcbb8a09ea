// SPDX-FileCopyrightText: 2023 The ipv6watch authors
//
// SPDX-License-Identifier: MIT

/*
Package census implements the concurrent resolution-and-aggregation engine
at the heart of ipv6watch: a tree of countries, categories, and entities
(named organizations), where each entity owns a main DNS host and optional
additional hosts. Resolving the tree determines for every host whether A
and AAAA records exist, derives a per-entity IPv6 readiness verdict, and
lets the aggregates expose ready counts and ratios over the resolved tree.

An entity counts as IPv6 ready only when its main host and every additional
host resolve to at least one genuine IPv6 address; AAAA answers carrying
IPv4-mapped "::ffff:" addresses do not qualify, as they merely encode IPv4
connectivity behind a translating resolver.

Resolution fans out one task per entity onto a bounded worker pool and all
DNS lookups of a run share a single [Querier]. Within one entity the main
host always resolves before any additional host; additional hosts resolve
concurrently. Host and entity state is partitioned per resolution task, so
no locking is needed on the tree itself.

Lookup failures never abort anything: they are absorbed at the host level
into negative presence flags, a logged warning, and a metrics count.
*/
package census
