// SPDX-FileCopyrightText: 2023 The ipv6watch authors
//
// SPDX-License-Identifier: MIT

package dnsworker

import (
	"context"
	"net"
	"sync"

	"github.com/gammazero/workerpool"
	"github.com/miekg/dns"
)

// DnsPool is a (size-limited) pool of DNS client connections talking with
// the same DNS resolver address. All queries of a single run are funnelled
// through one shared DnsPool, which thus also caps the number of in-flight
// DNS requests.
type DnsPool struct {
	clnt    *dns.Client
	workers *workerpool.WorkerPool
	mu      sync.Mutex // protects the pool of DNS connections
	free    []*dns.Conn
}

// New returns a pool of the specified size of DNS client connections, with
// each connection talking to the same DNS resolver address.
//
// The passed context is used for creating (dialing) the DNS client
// connections only; queries later capture their own context.
func New(ctx context.Context, size int, dnsclnt *dns.Client, addr string) (*DnsPool, error) {
	free := make([]*dns.Conn, 0, size)
	for i := 0; i < size; i++ {
		conn, err := dnsclnt.DialContext(ctx, addr)
		if err != nil {
			// Immediately release all connections created so far.
			for _, conn := range free {
				conn.Close()
			}
			return nil, err
		}
		free = append(free, conn)
	}
	return &DnsPool{
		clnt:    dnsclnt,
		workers: workerpool.New(size),
		free:    free,
	}, nil
}

// Submit a task to the DNS client connection pool, where it gets enqueued
// to be executed on an available DNS client connection.
func (p *DnsPool) Submit(task func(conn *dns.Conn)) {
	p.workers.Submit(func() { p.task(task) })
}

// Query issues a single DNS query of the specified record type (such as
// [dns.TypeA] and [dns.TypeAAAA]) for the specified name, blocking until a
// pooled connection has exchanged the query or the context is done. It
// returns the resolved addresses in textual format, or a [*LookupError] if
// the exchange failed, the response was negative, or the answer section
// carried no address records of the queried type.
//
// AAAA answers encoding IPv4-mapped addresses are rendered with their
// "::ffff:" prefix restored, as Go's net.IP formats such addresses in plain
// dotted-quad form.
func (p *DnsPool) Query(ctx context.Context, name string, rtype uint16) ([]string, error) {
	type result struct {
		addrs []string
		err   error
	}
	resch := make(chan result, 1) // buffered: never block the worker on bail-out.
	p.Submit(func(conn *dns.Conn) {
		addrs, err := p.exchange(ctx, conn, name, rtype)
		resch <- result{addrs: addrs, err: err}
	})
	select {
	case res := <-resch:
		return res.addrs, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// exchange runs a single query on the given connection, gathering the
// address records of the queried type from the answer section.
func (p *DnsPool) exchange(ctx context.Context, conn *dns.Conn, name string, rtype uint16) ([]string, error) {
	// Don't fire off the query if the context was cancelled while the task
	// sat in the queue.
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	fqdn := dns.Fqdn(name)
	msg := dns.Msg{
		MsgHdr: dns.MsgHdr{Id: dns.Id()},
	}
	msg.SetQuestion(fqdn, rtype)
	r, _, err := p.clnt.ExchangeWithConn(&msg, conn)
	if err != nil {
		return nil, &LookupError{Name: fqdn, Rtype: rtype, Err: err}
	}
	if r.Rcode != dns.RcodeSuccess {
		return nil, &LookupError{Name: fqdn, Rtype: rtype, Rcode: r.Rcode}
	}
	var addrs []string
	for _, rr := range r.Answer {
		switch addrRR := rr.(type) {
		case *dns.A:
			if rtype == dns.TypeA {
				addrs = append(addrs, addrRR.A.String())
			}
		case *dns.AAAA:
			if rtype == dns.TypeAAAA {
				addrs = append(addrs, v6text(addrRR.AAAA))
			}
		}
	}
	// A NOERROR response without any address records of the queried type is
	// a negative result for this address family.
	if len(addrs) == 0 {
		return nil, &LookupError{Name: fqdn, Rtype: rtype, Rcode: dns.RcodeSuccess}
	}
	return addrs, nil
}

// v6text renders an AAAA record address, restoring the "::ffff:" prefix of
// IPv4-mapped addresses.
func v6text(ip net.IP) string {
	if ip4 := ip.To4(); ip4 != nil {
		return "::ffff:" + ip4.String()
	}
	return ip.String()
}

// task grabs the next free DNS client connection and passes it to the
// specified function. After the function returns, the connection is put back
// into the free list.
func (p *DnsPool) task(task func(conn *dns.Conn)) {
	// pop off a free DNS client connection,
	// https://ueokande.github.io/go-slice-tricks/,
	p.mu.Lock()
	if len(p.free) == 0 {
		// pool size and worker count are identical, so a worker always
		// finds a free connection.
		panic("no free DNS client connection available")
	}
	last := len(p.free) - 1
	conn := p.free[last]
	p.free = p.free[:last]
	p.mu.Unlock()
	task(conn)
	// ...and push the DNS client connection back into the free list.
	p.mu.Lock()
	p.free = append(p.free, conn)
	p.mu.Unlock()
}

// StopWait waits for all enqueued queries or generic DNS request tasks to
// finish, and then shuts down the pool, closing its connections.
func (p *DnsPool) StopWait() {
	p.workers.StopWait()
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, conn := range p.free {
		conn.Close()
	}
	p.free = nil
}
