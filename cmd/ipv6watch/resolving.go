// SPDX-FileCopyrightText: 2023 The ipv6watch authors
//
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/ipv6watch/ipv6watch/census"
	"github.com/ipv6watch/ipv6watch/config"
	"github.com/ipv6watch/ipv6watch/dnsworker"
	"github.com/ipv6watch/ipv6watch/history"
	"github.com/ipv6watch/ipv6watch/metrics"

	"github.com/gosuri/uilive"
	"github.com/miekg/dns"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ResolveAndReport loads the specified catalog files into a fresh census
// tree, resolves the whole tree against the configured DNS resolver while
// rendering live progress, and finally writes the JSON report plus a
// per-country readiness summary. Optionally it serves Prometheus metrics
// during the run and appends the run to the history database.
func ResolveAndReport(ctx context.Context, cfg *config.Config, catalogs []string, output string) error {
	source := census.NewSource()
	for _, catalog := range catalogs {
		if err := loadCatalog(source, catalog); err != nil {
			return err
		}
	}

	registry := prometheus.NewRegistry()
	sink, err := metrics.NewPromSink(registry)
	if err != nil {
		return err
	}
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		go func() {
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
				logrus.Warnf("metrics endpoint failed: %v", err)
			}
		}()
	}

	dnsclnt := dns.Client{
		Net:     cfg.Net,
		Timeout: cfg.Timeout.Duration(),
	}
	pool, err := dnsworker.New(ctx, cfg.Workers, &dnsclnt, cfg.Resolver)
	if err != nil {
		return fmt.Errorf("cannot connect to resolver %s: %w", cfg.Resolver, err)
	}
	defer pool.StopWait()

	// Live progress: the workers only bump a counter, a ticker goroutine
	// renders it. Rendering stops with a final update after the global
	// resolution barrier has fallen.
	total := source.EntityCount()
	var resolved atomic.Int64
	term := uilive.New()
	renderer := newRenderer(term, total)
	resolvingDone := make(chan struct{})
	renderingDone := make(chan struct{})
	go func() {
		defer close(renderingDone)
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				renderer.RenderProgress(int(resolved.Load()))
				term.Flush()
			case <-resolvingDone:
				renderer.RenderProgress(int(resolved.Load()))
				term.Flush()
				return
			}
		}
	}()

	source.ResolveAll(ctx, pool,
		census.WithMaxWorkers(cfg.Workers),
		census.WithMetrics(sink),
		census.WithProgress(func(*census.Entity) {
			resolved.Add(1)
		}))
	close(resolvingDone)
	<-renderingDone

	renderer.RenderSummary(source)
	term.Flush()

	if cfg.HistoryPath != "" {
		store, err := history.Open(cfg.HistoryPath)
		if err != nil {
			return err
		}
		defer store.Close()
		runID, err := store.RecordRun(ctx, source)
		if err != nil {
			return err
		}
		logrus.Infof("recorded run %d in %s", runID, cfg.HistoryPath)
	}

	return writeReport(source, output)
}

// loadCatalog parses one catalog file, JSON or YAML depending on the file
// extension, and registers its records.
func loadCatalog(source *census.Source, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot read catalog: %w", err)
	}
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		var records []census.EntityRecord
		if err := yaml.Unmarshal(data, &records); err != nil {
			return fmt.Errorf("cannot parse catalog %s: %w", path, err)
		}
		return source.Extend(records)
	default:
		if err := source.ExtendFromJSON(data); err != nil {
			return fmt.Errorf("catalog %s: %w", path, err)
		}
		return nil
	}
}

// writeReport marshals the resolved tree and writes it to the specified
// file, or to stdout if no file was given.
func writeReport(source *census.Source, output string) error {
	report, err := json.MarshalIndent(source, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot serialize report: %w", err)
	}
	report = append(report, '\n')
	if output == "" {
		_, err = os.Stdout.Write(report)
		return err
	}
	return os.WriteFile(output, report, 0644)
}
