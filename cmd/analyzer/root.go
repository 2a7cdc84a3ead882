// Copyright 2025 AdScope, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/adscope/ad-media-analysis/internal/config"
	"github.com/adscope/ad-media-analysis/internal/core/workflow"
	"github.com/adscope/ad-media-analysis/internal/insight"
	"github.com/adscope/ad-media-analysis/internal/telemetry"
)

// Version is the application version.
const Version = "0.1.0"

var (
	// analyzers is the registry shared by subcommands, built in the root's
	// PersistentPreRunE.
	analyzers *workflow.Registry

	// shutdownTelemetry flushes buffered telemetry; called in
	// PersistentPostRun.
	shutdownTelemetry func(context.Context) error

	configPrefix string
)

var rootCmd = &cobra.Command{
	Use:     "analyzer",
	Short:   "Ad media feature extraction and reporting",
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		telemetry.SetupLogging()

		if configPrefix != "" {
			if err := os.Setenv(config.EnvConfigFilePrefix, configPrefix); err != nil {
				return err
			}
		}
		cfg := config.NewConfig()
		config.Load(cfg)

		var err error
		shutdownTelemetry, err = telemetry.SetupOpenTelemetry(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("failed to setup telemetry: %w", err)
		}

		insightClients, err := insight.NewClients(cmd.Context(), cfg)
		if err != nil {
			slog.Warn("generative model unavailable, insight analyzer disabled", "error", err)
			insightClients = nil
		}

		analyzers = workflow.NewRegistry(cfg, insightClients)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if shutdownTelemetry != nil {
			// Background: the command context may already be canceled and
			// the buffered telemetry still has to flush.
			if err := shutdownTelemetry(context.Background()); err != nil {
				slog.Error("failed to shutdown telemetry", "error", err)
			}
		}
	},
}

// Execute runs the root command under a signal-aware context.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPrefix, "config-dir", "configs", "Directory holding .env.toml configuration files")
}
