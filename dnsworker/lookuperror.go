// SPDX-FileCopyrightText: 2023 The ipv6watch authors
//
// SPDX-License-Identifier: MIT

package dnsworker

import (
	"fmt"

	"github.com/miekg/dns"
)

// LookupError reports a single failed DNS query: either the exchange itself
// failed (Err is set), the server answered negatively (Rcode is not
// NOERROR), or a NOERROR response carried no address records of the queried
// type.
type LookupError struct {
	Name  string // queried FQDN
	Rtype uint16 // queried record type, such as dns.TypeA
	Rcode int    // response code, if a response was received
	Err   error  // underlying exchange error, if any
}

// Error returns the clear-text description of the failed lookup.
func (e *LookupError) Error() string {
	rtype := dns.TypeToString[e.Rtype]
	if e.Err != nil {
		return fmt.Sprintf("lookup %s %q: %v", rtype, e.Name, e.Err)
	}
	if e.Rcode != dns.RcodeSuccess {
		return fmt.Sprintf("lookup %s %q: %s", rtype, e.Name, dns.RcodeToString[e.Rcode])
	}
	return fmt.Sprintf("lookup %s %q: no answers", rtype, e.Name)
}

// Unwrap returns the underlying exchange error, if any.
func (e *LookupError) Unwrap() error {
	return e.Err
}
