// SPDX-FileCopyrightText: 2023 The ipv6watch authors
//
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"

	"github.com/ipv6watch/ipv6watch/config"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	configPath   *string
	resolverAddr *string
	workerNumber *uint
	outputPath   *string
	metricsAddr  *string
	historyPath  *string
	debug        *bool
)

func newRootCmd() (rootCmd *cobra.Command) {
	rootCmd = &cobra.Command{
		Use:     "ipv6watch [flags] catalog...",
		Short:   "ipv6watch resolves the hosts of cataloged organizations and reports their IPv6 readiness",
		Version: "0.9",
		Args:    cobra.MinimumNArgs(1),
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			// 0 means unset, deferring to the configuration file.
			if *workerNumber > 256 {
				return fmt.Errorf("--workers out of range [1..256]")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			// Flags override whatever the config file says.
			if *resolverAddr != "" {
				cfg.Resolver = *resolverAddr
			}
			if *workerNumber != 0 {
				cfg.Workers = int(*workerNumber)
			}
			if *metricsAddr != "" {
				cfg.MetricsAddr = *metricsAddr
			}
			if *historyPath != "" {
				cfg.HistoryPath = *historyPath
			}
			if *debug {
				cfg.LogLevel = "debug"
			}
			level, err := logrus.ParseLevel(cfg.LogLevel)
			if err != nil {
				return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
			}
			logrus.SetLevel(level)
			return ResolveAndReport(context.Background(), cfg, args, *outputPath)
		},
	}
	// Sets up the flags.
	configPath = rootCmd.PersistentFlags().String(
		"config", "", "path to YAML configuration file")
	resolverAddr = rootCmd.PersistentFlags().String(
		"resolver", "", "host:port address of the DNS resolver to query")
	workerNumber = rootCmd.PersistentFlags().Uint(
		"workers", 0, "number of concurrently resolving entities (and DNS connections), in range [1..256]; 0 defers to the configuration")
	outputPath = rootCmd.PersistentFlags().String(
		"output", "", "write the JSON report to this file instead of stdout")
	metricsAddr = rootCmd.PersistentFlags().String(
		"metrics-addr", "", "serve Prometheus metrics on this address during the run")
	historyPath = rootCmd.PersistentFlags().String(
		"history", "", "append the run to this SQLite history database")
	debug = rootCmd.PersistentFlags().Bool(
		"debug", false, "enable debugging output")
	return
}
