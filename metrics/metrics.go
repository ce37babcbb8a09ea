// SPDX-FileCopyrightText: 2023 The ipv6watch authors
//
// SPDX-License-Identifier: MIT

package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Sink counts DNS resolution outcomes per address family. A Sink is passed
// explicitly into the resolution call tree instead of living as a
// process-wide singleton, so tests can substitute a [Recorder] and batch
// runs can wire a [PromSink].
//
// All four counters are monotonically increasing; implementations must be
// safe for concurrent use.
type Sink interface {
	IPv4Success()
	IPv4Failure()
	IPv6Success()
	IPv6Failure()
}

// Label values used by the Prometheus-backed sink.
const (
	familyIPv4 = "ipv4"
	familyIPv6 = "ipv6"

	outcomeSuccess = "success"
	outcomeFailure = "failure"
)

// PromSink feeds resolution outcomes into a Prometheus counter vector,
// partitioned by address family and outcome.
type PromSink struct {
	resolutions *prometheus.CounterVec
}

var _ Sink = (*PromSink)(nil)

// NewPromSink creates a Prometheus-backed Sink and registers its metrics
// with the specified registerer.
func NewPromSink(reg prometheus.Registerer) (*PromSink, error) {
	resolutions := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ipv6watch",
			Name:      "dns_resolutions_total",
			Help:      "Total number of DNS resolution attempts by address family and outcome",
		},
		[]string{"family", "outcome"},
	)
	if err := reg.Register(resolutions); err != nil {
		return nil, fmt.Errorf("cannot register resolution metrics: %w", err)
	}
	// Initialize all label combinations so the counters are visible from
	// the very first scrape on.
	for _, family := range []string{familyIPv4, familyIPv6} {
		for _, outcome := range []string{outcomeSuccess, outcomeFailure} {
			resolutions.WithLabelValues(family, outcome)
		}
	}
	return &PromSink{resolutions: resolutions}, nil
}

func (s *PromSink) IPv4Success() { s.resolutions.WithLabelValues(familyIPv4, outcomeSuccess).Inc() }
func (s *PromSink) IPv4Failure() { s.resolutions.WithLabelValues(familyIPv4, outcomeFailure).Inc() }
func (s *PromSink) IPv6Success() { s.resolutions.WithLabelValues(familyIPv6, outcomeSuccess).Inc() }
func (s *PromSink) IPv6Failure() { s.resolutions.WithLabelValues(familyIPv6, outcomeFailure).Inc() }

// Nop is a Sink discarding all counts.
type Nop struct{}

var _ Sink = Nop{}

func (Nop) IPv4Success() {}
func (Nop) IPv4Failure() {}
func (Nop) IPv6Success() {}
func (Nop) IPv6Failure() {}
