// SPDX-FileCopyrightText: 2023 The ipv6watch authors
//
// SPDX-License-Identifier: MIT

package metrics

import "sync/atomic"

// Recorder is a Sink counting in memory. It primarily serves deterministic
// testing, where asserting on counter values must not require a Prometheus
// registry.
type Recorder struct {
	ipv4Successes atomic.Int64
	ipv4Failures  atomic.Int64
	ipv6Successes atomic.Int64
	ipv6Failures  atomic.Int64
}

var _ Sink = (*Recorder)(nil)

func (r *Recorder) IPv4Success() { r.ipv4Successes.Add(1) }
func (r *Recorder) IPv4Failure() { r.ipv4Failures.Add(1) }
func (r *Recorder) IPv6Success() { r.ipv6Successes.Add(1) }
func (r *Recorder) IPv6Failure() { r.ipv6Failures.Add(1) }

// IPv4Successes returns the number of successful A resolutions counted.
func (r *Recorder) IPv4Successes() int64 { return r.ipv4Successes.Load() }

// IPv4Failures returns the number of failed A resolutions counted.
func (r *Recorder) IPv4Failures() int64 { return r.ipv4Failures.Load() }

// IPv6Successes returns the number of successful AAAA resolutions counted.
func (r *Recorder) IPv6Successes() int64 { return r.ipv6Successes.Load() }

// IPv6Failures returns the number of failed AAAA resolutions counted.
func (r *Recorder) IPv6Failures() int64 { return r.ipv6Failures.Load() }
