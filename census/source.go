// SPDX-FileCopyrightText: 2023 The ipv6watch authors
//
// SPDX-License-Identifier: MIT

package census

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ipv6watch/ipv6watch/metrics"

	"github.com/gammazero/workerpool"
)

// DefaultMaxWorkers is the default cap on concurrently resolving entities.
const DefaultMaxWorkers = 16

// Source is the root of the country → category → entity tree; one instance
// per run. Countries are created lazily as records register, and
// LastResolved is set exactly once, after the whole tree has finished
// resolving.
type Source struct {
	Countries    map[string]*CountryData
	LastResolved *time.Time
}

// NewSource returns an empty Source.
func NewSource() *Source {
	return &Source{
		Countries: map[string]*CountryData{},
	}
}

// Extend registers the specified catalog records into the country/category
// tree, creating intermediate nodes lazily as needed. Repeated calls extend
// existing countries and categories rather than replacing them. A
// structurally broken record aborts ingestion with an error before any
// resolution can happen.
func (s *Source) Extend(records []EntityRecord) error {
	for _, rec := range records {
		if err := rec.validate(); err != nil {
			return err
		}
		entity := newEntity(rec)
		country, ok := s.Countries[entity.Country]
		if !ok {
			country = NewCountryData(entity.Country)
			s.Countries[entity.Country] = country
		}
		country.Register(entity)
	}
	return nil
}

// ExtendFromJSON parses a JSON catalog (an array of entity records) and
// registers its records, as [Source.Extend] does.
func (s *Source) ExtendFromJSON(data []byte) error {
	var records []EntityRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("cannot parse catalog: %w", err)
	}
	return s.Extend(records)
}

// entities flattens the country → category → entity tree.
func (s *Source) entities() []*Entity {
	var entities []*Entity
	for _, country := range s.Countries {
		for _, category := range country.Categories {
			entities = append(entities, category.Entities...)
		}
	}
	return entities
}

// resolveOptions collects the configuration of a ResolveAll run.
type resolveOptions struct {
	maxWorkers int
	sink       metrics.Sink
	progress   func(*Entity)
}

// ResolveOption can be passed to [Source.ResolveAll] to configure a
// resolution run.
type ResolveOption func(*resolveOptions)

// WithMaxWorkers caps the number of entities resolving concurrently.
// Bounding the fan-out keeps large catalogs from exhausting sockets and
// file descriptors, without changing any per-entity result.
func WithMaxWorkers(max int) ResolveOption {
	return func(o *resolveOptions) {
		o.maxWorkers = max
	}
}

// WithMetrics wires the sink receiving the per-lookup outcome counts.
func WithMetrics(sink metrics.Sink) ResolveOption {
	return func(o *resolveOptions) {
		o.sink = sink
	}
}

// WithProgress registers a callback invoked after each entity finishes
// resolving. Callbacks run on worker goroutines and thus must be safe for
// concurrent invocation.
func WithProgress(fn func(*Entity)) ResolveOption {
	return func(o *resolveOptions) {
		o.progress = fn
	}
}

// ResolveAll resolves every entity of the tree through the one shared
// Querier, scheduling one resolution task per entity onto a size-limited
// worker pool and waiting on a single global barrier until all of them have
// finished. Only then is the completion timestamp recorded.
//
// Per-lookup failures never abort the batch; they have already been
// absorbed at the host level. Cancelling the context makes pending lookups
// fail fast, leaving their presence flags unknown, but ResolveAll still
// waits for every scheduled task to wind down.
func (s *Source) ResolveAll(ctx context.Context, q Querier, options ...ResolveOption) {
	opts := resolveOptions{
		maxWorkers: DefaultMaxWorkers,
		sink:       metrics.Nop{},
	}
	for _, opt := range options {
		opt(&opts)
	}

	workers := workerpool.New(opts.maxWorkers)
	for _, entity := range s.entities() {
		entity := entity
		workers.Submit(func() {
			entity.Resolve(ctx, q, opts.sink)
			if opts.progress != nil {
				opts.progress(entity)
			}
		})
	}
	workers.StopWait()

	now := time.Now()
	s.LastResolved = &now
}

// EntityCount returns the total number of registered entities.
func (s *Source) EntityCount() int {
	return len(s.entities())
}

// MarshalJSON serializes the whole tree into the nested report mapping
// country codes to category tags to entity report sequences, with all
// tri-state flags rendered as boolean-or-null.
func (s *Source) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Countries)
}
