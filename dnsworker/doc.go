// SPDX-FileCopyrightText: 2023 The ipv6watch authors
//
// SPDX-License-Identifier: MIT

/*
Package dnsworker implements a simple limiting DNS client-request execution
pool. ipv6watch uses one shared [DnsPool] per run for all of its A/AAAA
lookups, so the pool size caps the number of concurrently outstanding DNS
requests no matter how many hosts are being resolved.

Usage

	dnsclnt := dns.Client{}
	pool, err := dnsworker.New(
	    context.Background(),
	    4,                    // number of parallel DNS connections and thus workers
	    &dnsclnt,             // DNS client
	    "9.9.9.9:53",         // address of server/resolver
	)
	addrs, err := pool.Query(ctx, "example.com", dns.TypeAAAA)

Queries are single-shot: one attempt per record type, no retries, no
caching. Failures surface as [*LookupError] values for the caller to absorb.

# Acknowledgements

Under its hood, [DnsPool] leverages [github.com/gammazero/workerpool] as the
limiting goroutine pool.

[github.com/gammazero/workerpool]: https://github.com/gammazero/workerpool
*/
package dnsworker
