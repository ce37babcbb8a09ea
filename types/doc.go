// SPDX-FileCopyrightText: 2023 The ipv6watch authors
//
// SPDX-License-Identifier: MIT

/*
Package types defines ipv6watch's information model, which revolves around a
single tri-state [Presence] value: whether a DNS address family has not yet
been resolved, was resolved as absent, or was resolved as present.

"Not yet resolved" must remain distinguishable from "resolved as absent",
both for serializing reports (unknown renders as JSON null) and for judging
IPv6 readiness over partially resolved entities. A plain bool silently
defaulting to false cannot express this, hence the explicit three-valued
type together with its Kleene-style [Presence.And] conjunction.
*/
package types
